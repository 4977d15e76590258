// ReelMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package validation validates HTTP request parameter structs with
// go-playground/validator v10.
//
// A single validator instance is shared process-wide; it caches struct
// metadata and is safe for concurrent use. Failed fields are reported by
// their `query` tag name so error messages match what the client sent.
//
// Custom tags:
//   - notblank: string is non-empty after trimming whitespace
//   - title: string contains no control characters
//
// Example:
//
//	type recommendationsRequest struct {
//	    Title string `query:"title" validate:"required,notblank,max=300,title"`
//	    Count int    `query:"count" validate:"min=0,max=20"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    // write 400 with apiErr.Code, apiErr.Message, apiErr.Details
//	}
package validation
