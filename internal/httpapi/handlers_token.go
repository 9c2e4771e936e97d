package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/summitmls/reso-odata-gateway/internal/authsvc"
)

type oauthErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// handleToken implements the token endpoint (spec §4.8): both the
// client_credentials and refresh_token grants, responding with the
// RFC 6749 shapes on success and on failure.
func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeOAuthError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	grantType := r.PostFormValue("grant_type")

	switch grantType {
	case "client_credentials":
		clientID := r.PostFormValue("client_id")
		clientSecret := r.PostFormValue("client_secret")

		token, err := s.auth.IssueClientCredentials(r.Context(), clientID, clientSecret)
		if err != nil {
			writeOAuthErrorFromErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, token)

	case "refresh_token":
		refreshToken := r.PostFormValue("refresh_token")

		token, err := s.auth.RefreshAccessToken(r.Context(), refreshToken)
		if err != nil {
			writeOAuthErrorFromErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, token)

	default:
		writeOAuthError(w, http.StatusBadRequest, "unsupported_grant_type")
	}
}

func writeOAuthErrorFromErr(w http.ResponseWriter, err error) {
	var oauthErr *authsvc.OAuthError
	if errors.As(err, &oauthErr) {
		status := http.StatusBadRequest
		switch oauthErr.Slug {
		case "invalid_client", "invalid_grant":
			status = http.StatusUnauthorized
		}
		writeOAuthError(w, status, oauthErr.Slug)
		return
	}
	writeOAuthError(w, http.StatusInternalServerError, "server_error")
}

func writeOAuthError(w http.ResponseWriter, status int, slug string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("OData-Version", "4.0")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(oauthErrorResponse{Error: slug})
}
