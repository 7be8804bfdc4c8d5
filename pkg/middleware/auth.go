package middleware

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"canteen/pkg/auth"
	apperrors "canteen/pkg/errors"
	httputil "canteen/pkg/http"
	"canteen/pkg/logger"
)

type TokenVerifier interface {
	Verify(token string) (auth.Principal, error)
}

// Authenticate validates the bearer token once and stores the caller's
// principal in the request context.
func Authenticate(verifier TokenVerifier, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := httputil.BearerToken(r)
			if !ok {
				reject(w, log, r, apperrors.Unauthorized("Missing bearer token"))
				return
			}

			principal, err := verifier.Verify(token)
			if err != nil {
				log.Warn("Token rejected",
					"request_id", RequestIDFromContext(r.Context()),
					"path", r.URL.Path,
					"error", err,
				)
				reject(w, log, r, apperrors.Unauthorized("Invalid or expired token"))
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), principal)))
		})
	}
}

// RequireRole lets the request through only when the authenticated principal
// holds one of roles.
func RequireRole(log *logger.Logger, roles ...auth.Role) func(http.Handler) http.Handler {
	permit := roleGate(log, roles)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if permit(w, r) {
				next.ServeHTTP(w, r)
			}
		})
	}
}

// RequireRoleHandle is RequireRole for a single route, for services whose
// routes differ in who may call them.
func RequireRoleHandle(log *logger.Logger, roles ...auth.Role) func(httprouter.Handle) httprouter.Handle {
	permit := roleGate(log, roles)
	return func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			if permit(w, r) {
				next(w, r, ps)
			}
		}
	}
}

// roleGate writes the rejection itself and returns false when the caller may
// not proceed.
func roleGate(log *logger.Logger, roles []auth.Role) func(w http.ResponseWriter, r *http.Request) bool {
	allowed := make(map[auth.Role]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(w http.ResponseWriter, r *http.Request) bool {
		principal, ok := auth.FromContext(r.Context())
		if !ok {
			reject(w, log, r, apperrors.Unauthorized("Authentication required"))
			return false
		}
		if !allowed[principal.Role] {
			log.Warn("Role not permitted",
				"request_id", RequestIDFromContext(r.Context()),
				"subject", principal.Subject,
				"role", principal.Role,
				"path", r.URL.Path,
			)
			reject(w, log, r, apperrors.Forbidden("Insufficient role"))
			return false
		}
		return true
	}
}

func reject(w http.ResponseWriter, log *logger.Logger, r *http.Request, err *apperrors.AppError) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		log.Error("failed to write error response",
			"request_id", RequestIDFromContext(r.Context()),
			"error", writeErr,
		)
	}
}
