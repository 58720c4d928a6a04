package utils

import (
	"encoding/json"
	"log"
	"net/http"
)

// ErrorResponse is the JSON body of a failed status request.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondWithError sends a JSON error response with the given status code.
func RespondWithError(writer http.ResponseWriter, statusCode int, code, message string) {
	RespondWithJSON(writer, statusCode, ErrorResponse{Code: code, Message: message})
}

// RespondWithJSON sends a JSON response.
func RespondWithJSON(writer http.ResponseWriter, statusCode int, payload interface{}) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(statusCode)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(writer).Encode(payload); err != nil {
		log.Printf("Failed to encode JSON response: %v", err)
	}
}
