package utils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-story-sync/models"
)

// WriteJSON serializes the given data to JSON and writes it to the HTTP response
// with the given status code.
//
// If marshaling fails, it responds with 500 Internal Server Error
// and returns a wrapped error.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

// WriteAPIError writes the story API rejection envelope
// {"error": true, "message": msg}.
func WriteAPIError(w http.ResponseWriter, msg string, statusCode int) {
	_, _ = WriteJSON(w, models.APIResponse{Error: true, Message: msg}, statusCode)
}
