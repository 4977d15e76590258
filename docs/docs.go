// ReelMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package docs registers the OpenAPI description served at /swagger/doc.json.
// Regenerate with: swag init -g cmd/server/main.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "AGPL-3.0-or-later",
            "url": "https://www.gnu.org/licenses/agpl-3.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/titles": {
            "get": {
                "description": "Returns every movie title in catalog order. These are the valid values of the title parameter.",
                "produces": ["application/json"],
                "tags": ["Recommendations"],
                "summary": "List titles",
                "responses": {
                    "200": {"description": "Titles", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "503": {"description": "Catalog not loaded", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/api/v1/recommendations": {
            "get": {
                "description": "Ranks the catalog by content similarity to title and returns up to count movies that have a poster.",
                "produces": ["application/json"],
                "tags": ["Recommendations"],
                "summary": "Recommend similar movies",
                "parameters": [
                    {"type": "string", "description": "Exact catalog title", "name": "title", "in": "query", "required": true},
                    {"type": "integer", "default": 5, "description": "Number of results", "name": "count", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Recommendations; insufficient is set when no candidate had a poster", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "400": {"description": "Invalid parameters", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "404": {"description": "Movie not found in the dataset.", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "503": {"description": "Catalog not loaded or query timed out", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/api/v1/featured": {
            "get": {
                "description": "Without ids, returns the current sampled showcase. With ids, enriches those catalog ids in order and keeps the ones with a poster.",
                "produces": ["application/json"],
                "tags": ["Recommendations"],
                "summary": "Featured movies",
                "parameters": [
                    {"type": "string", "description": "Comma-separated TMDb ids", "name": "ids", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Featured movies", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "400": {"description": "Invalid ids", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "503": {"description": "Catalog not loaded", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/api/v1/stats/performance": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Observability"],
                "summary": "Request latency statistics",
                "responses": {
                    "200": {"description": "Latency window", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/health/live": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "Alive", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/health/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "Ready", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "503": {"description": "Catalog not loaded", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        }
    },
    "definitions": {
        "api.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "details": {},
                "message": {"type": "string"}
            }
        },
        "api.APIMeta": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "query_time_ms": {"type": "integer"},
                "request_id": {"type": "string"},
                "timestamp": {"type": "string"}
            }
        },
        "api.APIResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "error": {"$ref": "#/definitions/api.APIError"},
                "meta": {"$ref": "#/definitions/api.APIMeta"},
                "success": {"type": "boolean"}
            }
        },
        "recommend.EnrichedResult": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "overview": {"type": "string"},
                "poster_url": {"type": "string"},
                "rank": {"type": "integer"},
                "score": {"type": "number"},
                "title": {"type": "string"}
            }
        },
        "recommend.RecommendationResponse": {
            "type": "object",
            "properties": {
                "candidates": {"type": "integer"},
                "insufficient": {"type": "boolean"},
                "message": {"type": "string"},
                "query": {"type": "string"},
                "requested": {"type": "integer"},
                "results": {"type": "array", "items": {"$ref": "#/definitions/recommend.EnrichedResult"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "ReelMatch API",
	Description:      "Content-based movie recommendations with TMDb posters.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
