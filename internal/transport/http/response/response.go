package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/courseplatform/recommendation-service/internal/domain"
	zlog "github.com/rs/zerolog/log"
)

type errorBody struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// JSON writes v with the given status. Encoding failures are logged; by the
// time they surface the status line is already on the wire.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zlog.Error().Err(err).Msg("response encoding failed")
	}
}

// Fail writes the service's error shape.
func Fail(w http.ResponseWriter, status int, message string) {
	JSON(w, status, errorBody{Message: message, Status: status})
}

// Err maps a domain error to an HTTP error response. Unclassified errors
// become opaque 500s; details stay in the logs.
func Err(w http.ResponseWriter, err error) {
	var ae *domain.AppError
	if errors.As(err, &ae) {
		Fail(w, statusFromCode(ae.Code), ae.Message)
		return
	}
	zlog.Error().Err(err).Msg("unhandled error")
	Fail(w, http.StatusInternalServerError, "Internal server error")
}

func statusFromCode(code domain.ErrCode) int {
	switch code {
	case domain.CodeValidation:
		return http.StatusBadRequest
	case domain.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
