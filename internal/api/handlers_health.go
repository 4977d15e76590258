// ReelMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"net/http"
	"time"
)

// HealthStatus is the body of the health probes.
type HealthStatus struct {
	Status        string      `json:"status"`
	UptimeSeconds float64     `json:"uptime_seconds"`
	Info          *HealthInfo `json:"info,omitempty"`
}

// HealthLive reports that the process is serving HTTP.
//
// @Summary Liveness probe
// @Tags Health
// @Produce json
// @Success 200 {object} APIResponse{data=HealthStatus} "Alive"
// @Router /health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(HealthStatus{
		Status:        "alive",
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	})
}

// HealthReady reports whether the catalog is loaded.
//
// @Summary Readiness probe
// @Tags Health
// @Produce json
// @Success 200 {object} APIResponse{data=HealthStatus} "Ready"
// @Failure 503 {object} APIResponse "Catalog not loaded"
// @Router /health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if !h.ready() {
		rw.ServiceUnavailable("Catalog not loaded")
		return
	}

	status := HealthStatus{Status: "ready", UptimeSeconds: time.Since(h.startTime).Seconds()}
	if h.health != nil {
		info := h.health()
		status.Info = &info
	}
	rw.Success(status)
}
