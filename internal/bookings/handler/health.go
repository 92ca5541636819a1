package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"massbook/pkg/client"
	httputil "massbook/pkg/http"
	"massbook/pkg/logger"
)

type HealthHandler struct {
	mongo *client.MongoClient
	log   *logger.Logger
}

func NewHealthHandler(mongo *client.MongoClient, log *logger.Logger) *HealthHandler {
	return &HealthHandler{mongo: mongo, log: log}
}

func (h *HealthHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
}

// Health reports process liveness only.
func (h *HealthHandler) Health(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	_ = httputil.WriteSuccess(w, map[string]string{"status": "ok"})
}

// Ready additionally verifies the store is reachable.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.mongo == nil || h.mongo.Client == nil {
		h.unready(w, "mongo client not initialized")
		return
	}

	if err := h.mongo.Client.Ping(ctx, nil); err != nil {
		h.log.Warn("Readiness check failed", "error", err)
		h.unready(w, "mongo unreachable")
		return
	}

	_ = httputil.WriteSuccess(w, map[string]string{"status": "ready"})
}

func (h *HealthHandler) unready(w http.ResponseWriter, reason string) {
	_ = httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
		"status": "unavailable",
		"reason": reason,
	})
}
