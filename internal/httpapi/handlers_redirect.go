package httpapi

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/summitmls/reso-odata-gateway/internal/dbgateway"
)

// mlsLookupQuery resolves a public MLS number to the listing URL
// carried in the backend's mls_number_lookup view (spec §6B).
const mlsLookupQuery = `SELECT LISTING_URL FROM mls_number_lookup WHERE MLS_NUMBER = @mlsNumber`

// handleRedirect implements GET /r/{mlsNumber}: a short, unauthenticated
// link that 302s straight to the listing's public URL, for MLS numbers
// printed on yard signs and flyers (spec §6B).
func (s *Server) handleRedirect(w http.ResponseWriter, r *http.Request) {
	mlsNumber := mux.Vars(r)["mlsNumber"]

	result, err := s.gateway.QueryRow(r.Context(), mlsLookupQuery, map[string]interface{}{
		"mlsNumber": mlsNumber,
	})
	if err != nil {
		if errors.Is(err, dbgateway.ErrNotConnected) {
			http.Error(w, "service unavailable", http.StatusServiceUnavailable)
			return
		}
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	if len(result.Rows) == 0 {
		http.NotFound(w, r)
		return
	}

	listingURL, ok := result.Rows[0][0].(string)
	if !ok || listingURL == "" {
		http.NotFound(w, r)
		return
	}

	http.Redirect(w, r, listingURL, http.StatusFound)
}
