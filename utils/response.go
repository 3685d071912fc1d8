package utils

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Error("writing response")
	}
}

// WriteEnvelope writes a success/message envelope merged with extra fields.
func WriteEnvelope(w http.ResponseWriter, status int, success bool, message string, extra map[string]interface{}) {
	body := map[string]interface{}{
		"success": success,
	}
	if message != "" {
		body["message"] = message
	}
	for k, v := range extra {
		body[k] = v
	}
	WriteJSON(w, status, body)
}

// Fail writes a success-false envelope for validation and conflict responses.
func Fail(w http.ResponseWriter, status int, message string) {
	WriteEnvelope(w, status, false, message, nil)
}

// Internal logs err under a fresh correlation id and answers 500 with a
// generic message plus the id. The raw error never reaches the client.
func Internal(w http.ResponseWriter, err error, message string) string {
	correlationID := uuid.NewString()
	logrus.WithError(err).WithField("correlation_id", correlationID).Error(message)
	WriteEnvelope(w, http.StatusInternalServerError, false, message, map[string]interface{}{
		"correlation_id": correlationID,
	})
	return correlationID
}
