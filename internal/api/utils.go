package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/p-sree-sai-pavan/CFSpeed/internal/cfspeed_errors"
	log "github.com/sirupsen/logrus"
)

const maxBodyBytes = 1 << 20

var errorStatuses = []struct {
	err    error
	status int
	code   string
}{
	{cfspeed_errors.ErrInvalidInput, http.StatusBadRequest, "invalid_input"},
	{cfspeed_errors.ErrInvalidRequest, http.StatusBadRequest, "invalid_request"},
	{cfspeed_errors.ErrUnAuthorized, http.StatusUnauthorized, "unauthorized"},
	{cfspeed_errors.ErrNoCandidates, http.StatusNotFound, "no_candidates"},
	{cfspeed_errors.ErrStageNotFound, http.StatusNotFound, "stage_not_found"},
	{cfspeed_errors.ErrNotFound, http.StatusNotFound, "not_found"},
	{cfspeed_errors.ErrEntityAlreadyExist, http.StatusConflict, "already_exists"},
	{cfspeed_errors.ErrUpstreamUnavailable, http.StatusBadGateway, "upstream_unavailable"},
	{cfspeed_errors.ErrDatasetUnavailable, http.StatusInternalServerError, "dataset_unavailable"},
}

// errorStatus maps a service error to its http status and a stable code.
// Anything unknown is internal and its message is not exposed.
func errorStatus(err error) (int, string, string) {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			msg := err.Error()
			if e.status == http.StatusInternalServerError {
				msg = e.err.Error()
			}
			return e.status, e.code, msg
		}
	}
	return http.StatusInternalServerError, "internal", cfspeed_errors.ErrInternal.Error()
}

func handlerError(err error, w http.ResponseWriter) {
	status, code, msg := errorStatus(err)
	if status == http.StatusInternalServerError {
		log.Error(err)
	}
	respondWithJsonValue(w, status, errorResponse{Error: msg, Code: code})
}

func respondWithJson(w http.ResponseWriter, status int, payload []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(payload); err != nil {
		log.Errorf("cannot write response, %v", err)
	}
}

func respondWithJsonValue(w http.ResponseWriter, status int, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		log.Errorf("cannot marshal %T, %v", v, err)
		payload, _ = json.Marshal(errorResponse{Error: cfspeed_errors.ErrInternal.Error(), Code: "internal"})
		status = http.StatusInternalServerError
	}
	respondWithJson(w, status, payload)
}

func decodeJsonBody(body io.ReadCloser, v any) error {
	defer body.Close()
	dec := json.NewDecoder(io.LimitReader(body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w, invalid json body, %v", cfspeed_errors.ErrInvalidRequest, err)
	}
	return nil
}
