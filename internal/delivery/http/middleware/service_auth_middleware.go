package middleware

import (
	"crypto/subtle"
	"net/http"

	"go-health-companion/pkg/response"
)

// ServiceTokenHeader carries the shared secret on service-to-service calls.
const ServiceTokenHeader = "X-Service-Token"

// ServiceAuthMiddleware guards endpoints that are called by this service
// itself rather than by end users.
type ServiceAuthMiddleware struct {
	secret []byte
}

func NewServiceAuthMiddleware(secret string) *ServiceAuthMiddleware {
	return &ServiceAuthMiddleware{secret: []byte(secret)}
}

// Authenticate rejects requests whose service token does not match. An
// empty secret rejects everything.
func (m *ServiceAuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(ServiceTokenHeader)
		if len(m.secret) == 0 || subtle.ConstantTimeCompare([]byte(token), m.secret) != 1 {
			response.Unauthorized(w, "Invalid service token")
			return
		}

		next.ServeHTTP(w, r)
	})
}
