package utils

import (
	"encoding/json"
	"net/http"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// JSONError writes {"message": msg} with the given status code.
func JSONError(w http.ResponseWriter, msg string, status int) {
	JSON(w, ErrorResponse{Message: msg}, status)
}
