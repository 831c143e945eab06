package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/khayaprop/khaya/internal/apperr"
	"github.com/khayaprop/khaya/internal/store"
)

// errorBody is the JSON error envelope.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    apperr.Code       `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError translates an error into the JSON envelope. Non-apperr errors
// surface as a bare 500.
func writeError(w http.ResponseWriter, err error) {
	var ae *apperr.Error
	if !errors.As(err, &ae) {
		ae = apperr.Wrap(apperr.CodeUnknown, "internal error", err)
	}
	writeJSON(w, ae.HTTPStatus(), errorBody{Error: errorDetail{
		Code:    ae.Code,
		Message: ae.Message,
		Fields:  ae.Fields,
	}})
}

// decode parses the request body into v, rejecting unknown fields.
func decode(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return apperr.Wrap(apperr.CodeBadRequest, "malformed request body", err)
	}
	return nil
}

// pathID extracts the {id} path segment as a uint.
func pathID(r *http.Request) (uint, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, apperr.New(apperr.CodeBadRequest, "invalid id")
	}
	return uint(id), nil
}

// queryUint parses an optional uint query parameter; absent or malformed
// values read as zero.
func queryUint(r *http.Request, key string) uint {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0
	}
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0
	}
	return uint(n)
}

func queryInt(r *http.Request, key string) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

// listParams reads the shared page/page_size/q parameters.
func listParams(r *http.Request) store.ListParams {
	return store.ListParams{
		Page:     queryInt(r, "page"),
		PageSize: queryInt(r, "page_size"),
		Query:    r.URL.Query().Get("q"),
	}
}
