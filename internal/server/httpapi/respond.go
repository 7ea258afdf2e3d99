package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/amanda-parkwaylabs/task-manager/internal/common"
)

const (
	msgUnauthorized = "unauthorized"
	msgForbidden    = "forbidden"
	msgInternal     = "internal error"
	msgBadBody      = "invalid request body"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// statusFromError maps the error taxonomy onto an HTTP status and the message
// shown to the client. Anything unclassified is a 500 with a generic body.
func statusFromError(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrInvalidToken):
		return http.StatusUnauthorized, msgUnauthorized
	case errors.Is(err, common.ErrorUnauthorized):
		return http.StatusUnauthorized, publicMessage(err)
	case errors.Is(err, common.ErrorForbidden):
		return http.StatusForbidden, msgForbidden
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, publicMessage(err)
	case errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest, publicMessage(err)
	default:
		return http.StatusInternalServerError, msgInternal
	}
}

var sentinelPrefixes = []string{
	common.ErrAlreadyExists.Error() + ": ",
	common.ErrorValidation.Error() + ": ",
	common.ErrorNotFound.Error() + ": ",
	common.ErrorUnauthorized.Error() + ": ",
}

// publicMessage drops the sentinel prefixes added by %w wrapping, leaving
// the specific part of the message.
func publicMessage(err error) string {
	msg := err.Error()
	for _, p := range sentinelPrefixes {
		msg = strings.TrimPrefix(msg, p)
	}
	return msg
}
