package render

import (
	"encoding/json"
	"net/http"
)

type H map[string]interface{}

// JSON writes v as a JSON response with status 200.
func JSON(w http.ResponseWriter, v interface{}) {
	JSONStatus(w, http.StatusOK, v)
}

// JSONStatus writes v as a JSON response with the given status.
func JSONStatus(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// HTML writes a rendered page.
func HTML(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// Error writes an error message as JSON.
func Error(w http.ResponseWriter, statusCode int, err error) {
	JSONStatus(w, statusCode, H{"code": statusCode, "msg": err.Error()})
}

// NotFound writes a 404 error.
func NotFound(w http.ResponseWriter, err error) {
	Error(w, http.StatusNotFound, err)
}

// InternalError writes a 500 error.
func InternalError(w http.ResponseWriter, err error) {
	Error(w, http.StatusInternalServerError, err)
}
