package api

import (
	"encoding/json"
	"net/http"

	"github.com/kisan-depin/dmrv/pkg/errors"
)

// errorBody is the JSON error envelope shared by all endpoints.
type errorBody struct {
	Error struct {
		Code    errors.Code `json:"code"`
		Message string      `json:"message"`
	} `json:"error"`
}

// writeJSON serializes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps a structured error onto the JSON envelope. Internal
// errors are masked so backend details never leak to clients.
func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := errors.HTTPStatus(code)

	var body errorBody
	body.Error.Code = code
	if status >= 500 {
		body.Error.Message = "internal error"
	} else {
		body.Error.Message = err.Error()
	}
	writeJSON(w, status, body)
}
