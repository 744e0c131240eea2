package handler

import (
	"encoding/json"
	"net/http"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func errorResponse(msg string) map[string]string {
	return map[string]string{"error": msg}
}

func successResponse(msg string) map[string]string {
	return map[string]string{"success": msg}
}

func tooLarge(err error) bool {
	return err != nil && err.Error() == "http: request body too large"
}
