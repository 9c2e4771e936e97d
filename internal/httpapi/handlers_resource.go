package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/summitmls/reso-odata-gateway/internal/odata"
	"github.com/summitmls/reso-odata-gateway/internal/resource"
)

// handleList returns a handler that serves GET /odata/<Set> for the
// given entity-set configuration (spec §4.5 "list").
func (s *Server) handleList(cfg resource.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		q := r.URL.Query()

		rawQuery := odata.RawQuery{
			Select:  q.Get("$select"),
			Filter:  q.Get("$filter"),
			OrderBy: q.Get("$orderby"),
			Expand:  q.Get("$expand"),
			Top:     q.Get("$top"),
			Skip:    q.Get("$skip"),
			Count:   q.Get("$count"),
		}

		baseURL := s.resourceURL(cfg.Name)
		resp, err := s.driver.List(r.Context(), cfg, rawQuery, baseURL)
		status := http.StatusOK
		if err != nil {
			status = writeErrorStatus(w, cfg.Name, "", err)
			s.audit.Publish(cfg.Name, "list", status, time.Since(start))
			return
		}

		writeJSON(w, http.StatusOK, resp)
		s.audit.Publish(cfg.Name, "list", status, time.Since(start))
	}
}

// handleGet returns a handler that serves GET /odata/<Set>(<key>) for
// the given entity-set configuration (spec §4.5 "get").
func (s *Server) handleGet(cfg resource.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		key := mux.Vars(r)["key"]
		expand := r.URL.Query().Get("$expand")

		baseURL := s.resourceURL(cfg.Name)
		entity, err := s.driver.Get(r.Context(), cfg, key, expand, baseURL)
		status := http.StatusOK
		if err != nil {
			status = writeErrorStatus(w, cfg.Name, strings.Trim(key, "'"), err)
			s.audit.Publish(cfg.Name, "get", status, time.Since(start))
			return
		}

		writeJSON(w, http.StatusOK, entity)
		s.audit.Publish(cfg.Name, "get", status, time.Since(start))
	}
}

func (s *Server) resourceURL(name string) string {
	return strings.TrimSuffix(s.config.BaseURL, "/") + "/odata/" + name
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("OData-Version", "4.0")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeErrorStatus writes the error envelope and returns the status
// code written, so callers can pass it on to the audit bus.
func writeErrorStatus(w http.ResponseWriter, resourceName, key string, err error) int {
	rec := &statusRecorder{ResponseWriter: w}
	writeError(rec, resourceName, key, err)
	return rec.status
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
