// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the GiveHub JSON API.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"givehub/internal/textpost"
)

// maxBodyBytes caps request body size. Post bodies are the largest input.
const maxBodyBytes = 1 << 20

// errorPayload is the standardized error response body.
type errorPayload struct {
	Error errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON serializes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

// writeError writes a standardized JSON error response without leaking
// internal details.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorPayload{Error: errorEnvelope{Code: code, Message: message}})
}

// writeGenerationError maps a textpost pipeline failure onto the API
// envelope, preserving its classified code and safe message.
func writeGenerationError(w http.ResponseWriter, err error) {
	var e *textpost.Error
	if errors.As(err, &e) {
		writeError(w, e.Code.HTTPStatus(), string(e.Code), e.Message)
		return
	}
	slog.Error("unclassified generation error", "error", err)
	writeError(w, http.StatusInternalServerError, "internal", "internal server error")
}

// decodeJSON parses a request body into dst, enforcing the size cap.
func decodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
