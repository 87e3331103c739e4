package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"socialnetwork/internal/apperror"
)

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse carries a human-readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

func WriteError(w http.ResponseWriter, message string, statusCode int) {
	writeSuccess(w, ErrorResponse{Error: message}, statusCode)
}

func writeSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logrus.WithError(err).Error("Failed to encode response")
	}
}

// writeAppError maps the error's kind to a status. Internal errors are logged
// and never leak their cause.
func writeAppError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperror.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		logrus.WithError(err).WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).Error("Request failed")
	}
	WriteError(w, apperror.Message(err), status)
}

func MethodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	WriteError(w, "Method \""+r.Method+"\" not allowed.", http.StatusMethodNotAllowed)
}

func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	WriteError(w, "Not found.", http.StatusNotFound)
}
