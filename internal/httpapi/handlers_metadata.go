package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/summitmls/reso-odata-gateway/internal/metadata"
)

// handleServiceDocument serves GET /odata/ (spec §4.6).
func (s *Server) handleServiceDocument(w http.ResponseWriter, r *http.Request) {
	doc := metadata.BuildServiceDocument(s.baseODataURL())
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("OData-Version", "4.0")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(doc)
}

// handleMetadata serves GET /odata/$metadata: the CSDL document
// describing every exposed entity type and set (spec §4.6).
func (s *Server) handleMetadata(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/xml")
	w.Header().Set("OData-Version", "4.0")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(metadata.BuildCSDL()))
}

func (s *Server) baseODataURL() string {
	return strings.TrimSuffix(s.config.BaseURL, "/") + "/odata"
}
