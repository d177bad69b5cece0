// Package response writes the JSON envelope every endpoint answers with:
//
//	{"status":201,"message":"Order added successfully","data":{...}}
//	{"status":404,"code":"NOT_FOUND","message":"User not found"}
package response

import (
	"encoding/json"
	"net/http"

	"github.com/holisticagro/agromart/pkg/apperr"
	"github.com/holisticagro/agromart/pkg/logger"
)

type envelope struct {
	Status  int         `json:"status"`
	Code    apperr.Code `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

func write(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

// Success sends a 200 JSON response with data.
func Success(w http.ResponseWriter, data interface{}) {
	write(w, http.StatusOK, envelope{Status: http.StatusOK, Data: data})
}

// Message sends a 200 with a human-readable message and optional data.
func Message(w http.ResponseWriter, message string, data interface{}) {
	write(w, http.StatusOK, envelope{Status: http.StatusOK, Message: message, Data: data})
}

// Created sends a 201 JSON response.
func Created(w http.ResponseWriter, message string, data interface{}) {
	write(w, http.StatusCreated, envelope{Status: http.StatusCreated, Message: message, Data: data})
}

// Error sends a JSON error response with an explicit status.
func Error(w http.ResponseWriter, status int, message string) {
	write(w, status, envelope{Status: status, Message: message})
}

// ValidationError sends a 422 with a field-level error map.
func ValidationError(w http.ResponseWriter, errs map[string]string) {
	write(w, http.StatusUnprocessableEntity, envelope{
		Status:  http.StatusUnprocessableEntity,
		Code:    apperr.CodeValidation,
		Message: "Validation failed",
		Errors:  errs,
	})
}

// Fail renders err. Typed errors keep their code, message and details;
// anything else is reported as a generic STORE_FAILURE. Every failure is
// logged through the request-scoped logger.
func Fail(w http.ResponseWriter, r *http.Request, err error) {
	e := apperr.As(err)
	if e == nil {
		e = apperr.Store(err, "")
	}
	status := e.HTTPStatus()

	log := logger.WithCtx(r.Context())
	attrs := []any{"code", e.Code(), "status", status, "method", r.Method, "path", r.URL.Path, "error", err.Error()}
	switch {
	case status >= http.StatusInternalServerError:
		log.Error("request failed", attrs...)
	default:
		log.Warn("request rejected", attrs...)
	}

	write(w, status, envelope{
		Status:  status,
		Code:    e.Code(),
		Message: e.Message(),
		Errors:  e.Details(),
	})
}
