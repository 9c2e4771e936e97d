package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/summitmls/reso-odata-gateway/internal/authsvc"
	"github.com/summitmls/reso-odata-gateway/internal/odata"
	"github.com/summitmls/reso-odata-gateway/internal/resource"
)

// errorEnvelope is the `{error:{code, message}}` shape spec §4.6
// requires for the OData entity-set error responses (the bearer-token
// middleware writes the same shape for its 401). The token endpoint
// uses the RFC 6749 shape instead, and the /r redirect route answers
// with plain-text errors.
type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError maps an internal error kind to the HTTP status and
// envelope spec §7 specifies, and is the one place that translation
// happens (spec §7 "Propagation policy").
func writeError(w http.ResponseWriter, resourceName, key string, err error) {
	var parseErr *odata.ParseError

	switch {
	case errors.As(err, &parseErr):
		// Preserved for compatibility with the source's behavior: a
		// parse rejection surfaces as 500, not 400 (spec §7 note).
		writeJSONError(w, http.StatusInternalServerError, "ServerError", parseErr.Message)
	case errors.Is(err, resource.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, "NotFound", notFoundMessage(resourceName, key))
	case errors.Is(err, authsvc.ErrUnauthorized):
		writeJSONError(w, http.StatusUnauthorized, "Unauthorized", "Missing or invalid bearer token")
	default:
		writeJSONError(w, http.StatusInternalServerError, "ServerError", err.Error())
	}
}

func notFoundMessage(resourceName, key string) string {
	if key == "" {
		return resourceName + " not found"
	}
	return resourceName + " with key '" + key + "' not found"
}

func writeJSONError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("OData-Version", "4.0")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorEnvelope{Error: errorBody{Code: code, Message: message}})
}
