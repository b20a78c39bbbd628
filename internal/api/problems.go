package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/p-sree-sai-pavan/CFSpeed/internal/cfspeed_errors"
	"github.com/p-sree-sai-pavan/CFSpeed/internal/service/catalog_service"
)

// firstOf returns the first non empty query value among keys
func firstOf(query url.Values, keys ...string) string {
	for _, key := range keys {
		if v := query.Get(key); v != "" {
			return v
		}
	}
	return ""
}

func intParam(query url.Values, key string) (int, error) {
	raw := query.Get(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w, %s must be an integer", cfspeed_errors.ErrInvalidRequest, key)
	}
	return n, nil
}

func (a *Api) HandlerListProblems(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, err := intParam(query, "page")
	if err != nil {
		handlerError(err, w)
		return
	}
	limit, err := intParam(query, "limit")
	if err != nil {
		handlerError(err, w)
		return
	}

	user, err := a.UserServiceConfig.CurrentUser(r.Context())
	if err != nil {
		handlerError(err, w)
		return
	}
	status := a.SolvedServiceConfig.ResolveForUser(r.Context(), user)

	result, err := a.CatalogServiceConfig.ListProblems(catalog_service.ListProblemsRequest{
		Page:      page,
		Limit:     limit,
		Search:    query.Get("search"),
		Level:     query.Get("level"),
		Stage:     query.Get("stage"),
		SortBy:    firstOf(query, "sort_by", "sortBy"),
		SortOrder: firstOf(query, "sort_order", "sortOrder"),
	}, status.Solved, status.Attempted)
	if err != nil {
		handlerError(err, w)
		return
	}

	respondWithJsonValue(w, http.StatusOK, listProblemsResponse{
		Problems:   result.Items,
		Total:      result.Total,
		Page:       result.Page,
		TotalPages: result.TotalPages,
	})
}

func (a *Api) HandlerNextProblem(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	stage, level := query.Get("stage"), query.Get("level")
	if stage == "" || level == "" {
		handlerError(fmt.Errorf("%w, missing stage or level", cfspeed_errors.ErrInvalidRequest), w)
		return
	}

	user, err := a.UserServiceConfig.CurrentUser(r.Context())
	if err != nil {
		handlerError(err, w)
		return
	}
	status := a.SolvedServiceConfig.ResolveForUser(r.Context(), user)

	problem, err := a.CatalogServiceConfig.DrawForLevel(stage, level, status.Solved)
	if err != nil {
		handlerError(err, w)
		return
	}
	respondWithJsonValue(w, http.StatusOK, problem)
}
