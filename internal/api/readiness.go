package api

import (
	"context"
	"net/http"
	"time"

	"github.com/p-sree-sai-pavan/CFSpeed/internal/service/catalog_service"
	log "github.com/sirupsen/logrus"
)

func (a *Api) HandlerReadiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var userCount int64
	err := a.DB.Ping(ctx)
	if err == nil {
		userCount, err = a.UserServiceConfig.CountUsers(ctx)
	}
	if err != nil {
		log.Errorf("health check failed, %v", err)
		respondWithJsonValue(w, http.StatusInternalServerError, map[string]any{
			"status":    "error",
			"db":        "disconnected",
			"timestamp": time.Now().UTC(),
		})
		return
	}

	respondWithJsonValue(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"db":         "connected",
		"user_count": userCount,
		"timestamp":  time.Now().UTC(),
	})
}

func (a *Api) HandlerGetStages(w http.ResponseWriter, r *http.Request) {
	respondWithJsonValue(w, http.StatusOK, stagesResponse{
		Stages: catalog_service.Stages(),
		Levels: catalog_service.Levels(),
	})
}
