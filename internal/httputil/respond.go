package httputil

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the JSON error envelope returned by every handler.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Respond writes v as JSON with the given status code.
func Respond(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// RespondError writes the error envelope with the given status code.
func RespondError(w http.ResponseWriter, status int, code, message string) {
	Respond(w, status, ErrorBody{Code: code, Message: message})
}
