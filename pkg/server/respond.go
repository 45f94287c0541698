package server

import (
	"encoding/json"
	"net/http"

	errs "github.com/matzehuels/pathfinder/pkg/errors"
)

// errorBody is the JSON shape of every failed response.
type errorBody struct {
	Code      errs.Code `json:"code"`
	Error     string    `json:"error"`
	RequestID string    `json:"request_id,omitempty"`
}

// StatusFor maps an error code to an HTTP status.
func StatusFor(code errs.Code) int {
	switch code {
	case errs.ErrCodeInvalidInput, errs.ErrCodeInvalidAlgorithm, errs.ErrCodeInvalidFormat,
		errs.ErrCodeInvalidName, errs.ErrCodeInvalidPath, errs.ErrCodeInvalidDistance,
		errs.ErrCodeUnknownNode, errs.ErrCodeUnknownLink:
		return http.StatusBadRequest
	case errs.ErrCodeNotFound, errs.ErrCodeGraphNotFound, errs.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errs.ErrCodeDataIntegrity, errs.ErrCodeMissingEndpoints:
		return http.StatusUnprocessableEntity
	case errs.ErrCodeIterationLimit:
		return http.StatusRequestEntityTooLarge
	case errs.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case errs.ErrCodeCanceled:
		return 499 // client closed request
	case errs.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	err = errs.FromDomain(err)
	code := errs.GetCode(err)
	writeJSON(w, StatusFor(code), errorBody{
		Code:      code,
		Error:     errs.UserMessage(err),
		RequestID: RequestID(r.Context()),
	})
}

func notFound(r *http.Request) error {
	return errs.New(errs.ErrCodeNotFound, "no route for %s %s", r.Method, r.URL.Path)
}

func methodNotAllowed(r *http.Request) error {
	return errs.New(errs.ErrCodeUnsupported, "method %s not allowed on %s", r.Method, r.URL.Path)
}
