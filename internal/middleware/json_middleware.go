package middleware

import "net/http"

// JSONMiddleware defaults the response content type to JSON. Handlers that
// write other content set their own header.
func JSONMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}
