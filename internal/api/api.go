package api

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/susu3304/stockbot/internal/config"
	"github.com/susu3304/stockbot/internal/store"
)

// API serves a read-only view of the current stock plus process metrics.
// Mutations only happen through Discord interactions.
type API struct {
	router *mux.Router
	store  *store.Store
	config *config.Config
}

func New(cfg *config.Config, st *store.Store) *API {
	api := &API{
		router: mux.NewRouter(),
		store:  st,
		config: cfg,
	}

	api.setupRoutes()
	return api
}

func (a *API) setupRoutes() {
	a.router.HandleFunc("/api/health", a.handleHealth).Methods("GET")
	a.router.HandleFunc("/api/stock", a.handleAllStock).Methods("GET")
	a.router.HandleFunc("/api/stock/{category}", a.handleCategoryStock).Methods("GET")
	a.router.Handle("/metrics", promhttp.Handler()).Methods("GET")
}

func (a *API) Start() error {
	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: false,
	}

	handler := cors.New(corsOptions).Handler(a.router)

	log.Printf("API server listening on %s", a.config.WebBind)
	return http.ListenAndServe(a.config.WebBind, handler)
}
