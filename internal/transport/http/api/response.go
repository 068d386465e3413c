package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"
)

type Error struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

type Envelope struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Error     *Error `json:"error,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

// WriteJSON encodes payload before touching the response, so a value that
// cannot be encoded turns into a 500 envelope instead of a truncated body.
func WriteJSON(w http.ResponseWriter, status int, payload Envelope) {
	body, err := json.Marshal(payload)
	if err != nil {
		logrus.WithError(err).WithField("requestId", payload.RequestID).Warn("encode json failed")
		status = http.StatusInternalServerError
		body, _ = json.Marshal(Envelope{
			Error:     &Error{Code: "internal_error", Message: "response could not be encoded"},
			RequestID: payload.RequestID,
		})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(body, '\n')); err != nil {
		logrus.WithError(err).WithField("requestId", payload.RequestID).Warn("write json failed")
	}
}

func Success(w http.ResponseWriter, data any, requestID string) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Data: data, RequestID: requestID})
}

func Fail(w http.ResponseWriter, status int, code, message, requestID string) {
	WriteJSON(w, status, Envelope{Success: false, Error: &Error{Code: code, Message: message}, RequestID: requestID})
}

func FailWithDetails(w http.ResponseWriter, status int, code, message string, details map[string]any, requestID string) {
	WriteJSON(w, status, Envelope{Success: false, Error: &Error{Code: code, Message: message, Details: details}, RequestID: requestID})
}

// Attachment writes data as a download named filename.
func Attachment(w http.ResponseWriter, contentType, filename string, data []byte) {
	headers := w.Header()
	headers.Set("Content-Type", contentType)
	headers.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	headers.Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
