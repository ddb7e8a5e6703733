package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/workhive-app/workhive-backend-go/internal/handler/http/response"
)

// EmployerOnly restricts a route to employer tokens.
func EmployerOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Forbidden(w, "Employer access required")
			return
		}

		role, ok := claims["role"].(string)
		if !ok || role != "employer" {
			response.Forbidden(w, "Employer access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// WorkerOnly restricts a route to worker tokens.
func WorkerOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Forbidden(w, "Worker access required")
			return
		}

		role, ok := claims["role"].(string)
		if !ok || role != "worker" {
			response.Forbidden(w, "Worker access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
