package httpx

import (
	"encoding/json"
	"net/http"
)

// WriteJSON writes v as a JSON response with the given status code. Session
// tokens travel in these bodies, so caching is always disabled.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteErrorMessage writes a portal-convention error body. The upstream
// DVSPortal reports domain rejections as {"ErrorMessage": "..."} and clients
// key off that field, so every error response uses this shape.
func WriteErrorMessage(w http.ResponseWriter, code int, msg string) {
	WriteJSON(w, code, map[string]string{"ErrorMessage": msg})
}

// NoCache sets Cache-Control and Pragma headers to prevent caching.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}
