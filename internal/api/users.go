package api

import (
	"net/http"
	"time"

	"github.com/p-sree-sai-pavan/CFSpeed/internal/service/solved_service"
	"github.com/p-sree-sai-pavan/CFSpeed/internal/service/user_service"
)

func (a *Api) HandlerGetMe(w http.ResponseWriter, r *http.Request) {
	user, err := a.UserServiceConfig.GetMe(r.Context())
	if err != nil {
		handlerError(err, w)
		return
	}
	respondWithJsonValue(w, http.StatusOK, user)
}

func (a *Api) HandlerLinkHandle(w http.ResponseWriter, r *http.Request) {
	var request user_service.LinkHandleRequest
	if err := decodeJsonBody(r.Body, &request); err != nil {
		handlerError(err, w)
		return
	}

	user, err := a.UserServiceConfig.LinkHandle(r.Context(), request)
	if err != nil {
		handlerError(err, w)
		return
	}
	respondWithJsonValue(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    user,
	})
}

func (a *Api) HandlerSyncSolved(w http.ResponseWriter, r *http.Request) {
	user, err := a.UserServiceConfig.EnsureUser(r.Context())
	if err != nil {
		handlerError(err, w)
		return
	}

	result, err := a.SolvedServiceConfig.SyncUser(r.Context(), user.ID)
	if err != nil {
		handlerError(err, w)
		return
	}
	respondWithJsonValue(w, http.StatusOK, map[string]any{
		"success":      true,
		"synced_count": result.SyncedCount,
		"inserted":     result.Inserted,
		"timestamp":    result.Timestamp.Format(time.RFC3339),
	})
}

func (a *Api) HandlerIssueExtensionToken(w http.ResponseWriter, r *http.Request) {
	token, err := a.UserServiceConfig.IssueExtensionToken(r.Context())
	if err != nil {
		handlerError(err, w)
		return
	}
	respondWithJsonValue(w, http.StatusCreated, token)
}

func (a *Api) HandlerExtensionSync(w http.ResponseWriter, r *http.Request) {
	type Params struct {
		Token string `json:"token"`
		solved_service.RecordVerdictRequest
	}

	var params Params
	if err := decodeJsonBody(r.Body, &params); err != nil {
		handlerError(err, w)
		return
	}

	user, err := a.UserServiceConfig.AuthenticateExtensionToken(r.Context(), params.Token)
	if err != nil {
		handlerError(err, w)
		return
	}

	result, err := a.SolvedServiceConfig.RecordVerdict(r.Context(), user.ID, params.RecordVerdictRequest)
	if err != nil {
		handlerError(err, w)
		return
	}
	respondWithJsonValue(w, http.StatusOK, map[string]any{
		"success":  true,
		"received": result,
	})
}
