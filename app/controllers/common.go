package controllers

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"postfeed/app/repositories"
	"postfeed/app/services"

	"golang.org/x/crypto/blake2b"
)

// Helper functions for consistent response handling

func isAPIRequest(r *http.Request) bool {
	return r.Header.Get("Accept") == "application/json" || strings.HasPrefix(r.URL.Path, "/api")
}

func sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func sendError(w http.ResponseWriter, r *http.Request, message string, status int) {
	if isAPIRequest(r) {
		sendJSON(w, status, map[string]string{"error": message})
	} else {
		http.Error(w, message, status)
	}
}

// statusFor maps service errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, repositories.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, services.ErrInvalidComment):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// etag fingerprints rendered markup. Identical state renders identical
// markup, so the tag changes only when the page does.
func etag(body []byte) string {
	sum := blake2b.Sum256(body)
	return `"` + hex.EncodeToString(sum[:16]) + `"`
}

// sendHTML renders into a buffer first so template errors never reach the
// client half-written, then answers conditional requests with 304.
func sendHTML(w http.ResponseWriter, r *http.Request, status int, render func(io.Writer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		sendError(w, r, "Template error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	tag := etag(buf.Bytes())
	w.Header().Set("ETag", tag)
	w.Header().Set("Cache-Control", "no-cache")
	if status == http.StatusOK && r.Header.Get("If-None-Match") == tag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}
