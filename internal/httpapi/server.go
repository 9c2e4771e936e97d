// Package httpapi is the HTTP surface (C6): routing, OData headers,
// the service document and metadata endpoints, the token endpoint,
// the redirect handler, and the terminal error-shaping layer.
package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/summitmls/reso-odata-gateway/internal/auditbus"
	"github.com/summitmls/reso-odata-gateway/internal/authsvc"
	"github.com/summitmls/reso-odata-gateway/internal/config"
	"github.com/summitmls/reso-odata-gateway/internal/dbgateway"
	"github.com/summitmls/reso-odata-gateway/internal/resource"
)

// Server wires the configured collaborators into a gorilla/mux router
// wrapped in CORS, matching the toolbox's Server/Router split.
type Server struct {
	config  *config.Config
	router  *mux.Router
	gateway dbgateway.Gateway
	auth    *authsvc.Service
	audit   *auditbus.Bus
	driver  *resource.Driver
}

// NewServer builds the Server and registers every route up front.
func NewServer(cfg *config.Config, gateway dbgateway.Gateway, auth *authsvc.Service, audit *auditbus.Bus, driver *resource.Driver) *Server {
	s := &Server{
		config:  cfg,
		router:  mux.NewRouter(),
		gateway: gateway,
		auth:    auth,
		audit:   audit,
		driver:  driver,
	}
	s.setupRoutes()
	return s
}

// Router returns the CORS-wrapped handler to pass to http.Server.
func (s *Server) Router() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: s.config.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"OData-Version"},
		MaxAge:         300,
	})
	return c.Handler(s.router)
}

func (s *Server) setupRoutes() {
	odataRouter := s.router.PathPrefix("/odata").Subrouter()
	odataRouter.Use(odataVersionMiddleware)

	odataRouter.HandleFunc("/", s.handleServiceDocument).Methods("GET")
	odataRouter.HandleFunc("/$metadata", s.handleMetadata).Methods("GET")
	odataRouter.HandleFunc("/token", s.handleToken).Methods("POST")

	protected := odataRouter.PathPrefix("").Subrouter()
	protected.Use(s.auth.Middleware)

	protected.HandleFunc("/Property", s.handleList(resource.PropertyConfig)).Methods("GET")
	protected.HandleFunc("/Property({key})", s.handleGet(resource.PropertyConfig)).Methods("GET")
	protected.HandleFunc("/Member", s.handleList(resource.MemberConfig)).Methods("GET")
	protected.HandleFunc("/Member({key})", s.handleGet(resource.MemberConfig)).Methods("GET")
	protected.HandleFunc("/Office", s.handleList(resource.OfficeConfig)).Methods("GET")
	protected.HandleFunc("/Office({key})", s.handleGet(resource.OfficeConfig)).Methods("GET")

	s.router.HandleFunc("/r/{mlsNumber}", s.handleRedirect).Methods("GET")
}

// odataVersionMiddleware sets the header every OData response must
// carry, regardless of outcome (spec §4.6).
func odataVersionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("OData-Version", "4.0")
		next.ServeHTTP(w, r)
	})
}
