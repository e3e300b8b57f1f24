package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrijs2005/jobtracker/internal/server/httpapi"
	"github.com/dmitrijs2005/jobtracker/internal/server/validation"
)

const (
	msgInternal         = "Internal server error"
	msgInvalidJSON      = "Invalid JSON body"
	msgBodyTooLarge     = "Request body too large"
	msgNotFound         = "Not found"
	msgMethodNotAllowed = "Method not allowed"
	msgTimeout          = "Request timeout"
	msgTooManyRequests  = "Too many requests, please try again later."
	msgAuthRequired     = "Authentication required"
	msgMissingCSRF      = "Missing X-Requested-With header"
)

// HTTPError is an error with a status code and a message that is safe to
// show to the client. Err, when set, is logged and exposed as detail
// outside production only.
type HTTPError struct {
	Status  int
	Message string
	Err     error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func httpError(status int, message string) *HTTPError {
	return &HTTPError{Status: status, Message: message}
}

func internalError(message string, err error) *HTTPError {
	return &HTTPError{Status: http.StatusInternalServerError, Message: message, Err: err}
}

// handlerFunc is an http.HandlerFunc that reports failures instead of
// writing them.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

func (s *HTTPServer) handle(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			s.writeError(w, r, err)
		}
	}
}

// writeError renders err as the JSON error envelope. Anything that is not
// an *HTTPError becomes a 500. Server errors are logged here and only here.
func (s *HTTPServer) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var he *HTTPError
	if !errors.As(err, &he) {
		he = internalError(msgInternal, err)
	}

	body := httpapi.ErrorBody{Message: he.Message}
	if he.Status >= http.StatusInternalServerError {
		s.logger.Error(r.Context(), he.Message, "method", r.Method, "path", r.URL.Path, "error", err)
		if !s.config.IsProduction() && he.Err != nil {
			body.Detail = he.Err.Error()
		}
	}

	writeJSON(w, he.Status, httpapi.ErrorResponse{Error: body})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON reads one JSON value from the request body into dst. An empty
// body decodes as an empty object so validation reports the missing fields.
func decodeJSON(r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	var tooLarge *http.MaxBytesError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &tooLarge):
		return httpError(http.StatusRequestEntityTooLarge, msgBodyTooLarge)
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return httpError(http.StatusBadRequest, fmt.Sprintf("%s has an invalid type", typeErr.Field))
	default:
		return httpError(http.StatusBadRequest, msgInvalidJSON)
	}
}

// bind decodes and validates a request payload.
func (s *HTTPServer) bind(r *http.Request, dst any) error {
	if err := decodeJSON(r, dst); err != nil {
		return err
	}
	if err := s.validator.Struct(dst); err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			return httpError(http.StatusBadRequest, verr.Error())
		}
		return internalError(msgInternal, err)
	}
	return nil
}
