package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/convergent-research/scholarmatch/internal/model"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zap.L().Error("encode response", zap.Error(err))
	}
}

// writeError translates the domain error taxonomy to a status code once, at
// the request boundary. Unexpected errors are logged with detail but
// reported generically.
func writeError(w http.ResponseWriter, err error) {
	var (
		validation *model.ValidationError
		notFound   *model.NotFoundError
		timeout    *model.UpstreamTimeoutError
		upstream   *model.UpstreamError
	)

	switch {
	case errors.As(err, &validation):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: validation.Error()})
	case errors.As(err, &notFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: notFound.Error()})
	case errors.As(err, &timeout):
		writeJSON(w, http.StatusGatewayTimeout, errorBody{Error: timeout.Error()})
	case errors.As(err, &upstream):
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: upstream.Error()})
	default:
		zap.L().Error("unexpected handler error", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
	}
}
