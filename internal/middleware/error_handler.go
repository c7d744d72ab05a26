// File: internal/middleware/error_handler.go
package middleware

import (
	"fmt"
	"net/http"

	"learnhub/internal/response"
	"learnhub/internal/services"
)

// NotFoundHandler answers unmatched routes with the JSON error body
func NotFoundHandler(builder *response.Builder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		builder.WriteError(w, r, services.NewNotFoundError(
			fmt.Sprintf("Route %s %s not found", r.Method, r.URL.Path)).
			WithDetail("path", r.URL.Path))
	})
}

// MethodNotAllowedHandler answers known paths called with the wrong method
func MethodNotAllowedHandler(builder *response.Builder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		builder.WriteError(w, r, &services.ServiceError{
			Type:       "METHOD_NOT_ALLOWED",
			Message:    fmt.Sprintf("Method %s not allowed on %s", r.Method, r.URL.Path),
			StatusCode: http.StatusMethodNotAllowed,
		})
	})
}
