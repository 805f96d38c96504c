package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/schema"

	"chat-backend/internal/relay"
	"chat-backend/pkg/api"
)

type codedError struct {
	err  error
	code int
}

func (e *codedError) Error() string {
	return e.err.Error()
}

func (e *codedError) Unwrap() error {
	return e.err
}

func CodedError(code int, err error) error {
	return &codedError{err: err, code: code}
}

func CodedErrorf(code int, format string, args ...any) error {
	return &codedError{err: fmt.Errorf(format, args...), code: code}
}

// ParseRequest decodes the request body leniently: an absent, truncated, or
// malformed body yields the zero value instead of an error, and the handler
// substitutes its literal defaults for the missing fields.
func ParseRequest[T any](r *http.Request) T {
	var data T
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil && err != io.EOF {
		slog.Warn("unparseable request body, falling back to defaults", "error", err)
	}
	return data
}

func ParseRequestQueryParams[T any](r *http.Request) (T, error) {
	var data T
	if err := r.ParseForm(); err != nil {
		slog.Error("error parsing form", "error", err)
		return data, CodedErrorf(http.StatusBadRequest, "unable to parse request query params")
	}

	err := schema.NewDecoder().Decode(&data, r.Form)
	if err != nil {
		slog.Error("error decoding query params", "error", err)
		return data, CodedErrorf(http.StatusBadRequest, "unable to parse request query params")
	}

	return data, nil
}

func RestHandler(handler func(r *http.Request) (any, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := handler(r)
		if err != nil {
			var cerr *codedError
			if errors.As(err, &cerr) {
				writeJSONError(w, cerr.code, err.Error())
				if cerr.code == http.StatusInternalServerError {
					slog.Error("internal server error received in endpoint", "error", err)
				}
			} else {
				slog.Error("received non coded error from endpoint", "error", err)
				writeJSONError(w, http.StatusInternalServerError, "Something went wrong!")
			}
			return
		}

		if res == nil {
			res = struct{}{}
		}

		WriteJsonResponse(w, res)
	}
}

// RestStreamHandler writes each frame of the returned stream as one JSON
// value per line, flushing after every frame so the client observes chunks
// as they arrive.
func RestStreamHandler(handler func(r *http.Request) (relay.FrameStream, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stream, err := handler(r)
		if err != nil {
			var cerr *codedError
			if errors.As(err, &cerr) {
				writeJSONError(w, cerr.code, err.Error())
			} else {
				slog.Error("received non coded error from endpoint", "error", err)
				writeJSONError(w, http.StatusInternalServerError, "Something went wrong!")
			}
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			slog.Error("response writer does not support flushing")
			writeJSONError(w, http.StatusInternalServerError, "streaming not supported")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		encoder := json.NewEncoder(w)
		stream(func(frame any) bool {
			if writeErr := encoder.Encode(frame); writeErr != nil {
				slog.Error("error writing stream frame", "error", writeErr)
				return false
			}
			flusher.Flush()
			return true
		})
	}
}

func WriteJsonResponse(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("error serializing response body", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(api.ErrorResponse{Error: message}); err != nil {
		slog.Error("error serializing error body", "error", err)
	}
}
