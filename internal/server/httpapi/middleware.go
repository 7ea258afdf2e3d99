package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/amanda-parkwaylabs/task-manager/internal/common"
	"github.com/amanda-parkwaylabs/task-manager/internal/logging"
	"github.com/amanda-parkwaylabs/task-manager/internal/server/auth"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-Id"

type requestIDKey struct{}

func requestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(statusCode int) {
	r.status = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

func loggingMiddleware(log logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := strings.TrimSpace(r.Header.Get(requestIDHeader))
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, reqID)
		r = r.WithContext(context.WithValue(r.Context(), requestIDKey{}, reqID))

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		log.Info(r.Context(), "request",
			"request_id", reqID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

// extractBearerToken returns the token of an "Authorization: Bearer <token>"
// header. The scheme is matched case-insensitively.
func extractBearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, common.BearerScheme) {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// authenticate rejects requests without a valid bearer token and binds the
// token's identity into the request context otherwise.
func authenticate(tokens TokenVerifier, log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := extractBearerToken(r.Header.Get(common.AuthorizationHeaderName))
			if !ok {
				log.Warn(r.Context(), "missing bearer token", "request_id", requestIDFromContext(r.Context()))
				writeError(w, http.StatusUnauthorized, msgUnauthorized)
				return
			}
			id, err := tokens.Verify(token)
			if err != nil {
				log.Warn(r.Context(), "token rejected", "request_id", requestIDFromContext(r.Context()))
				writeError(w, http.StatusUnauthorized, msgUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
		})
	}
}

// requireRole lets the request through only if policy permits the bound
// identity's role to perform op.
func requireRole(policy auth.Policy, op auth.Operation, log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := auth.IdentityFromContext(r.Context())
			if !ok {
				log.Error(r.Context(), "authorization guard reached without identity", "operation", string(op))
				writeError(w, http.StatusInternalServerError, msgInternal)
				return
			}
			if err := policy.Authorize(id, op); err != nil {
				log.Warn(r.Context(), "operation forbidden",
					"request_id", requestIDFromContext(r.Context()),
					"user_id", id.SubjectID, "role", string(id.Role), "operation", string(op))
				writeError(w, http.StatusForbidden, msgForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
