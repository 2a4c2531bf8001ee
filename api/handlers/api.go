package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/dealerworks/dealer-engine-api/api"
	"github.com/dealerworks/dealer-engine-api/config"
	"github.com/dealerworks/dealer-engine-api/ingest"
	"github.com/dealerworks/dealer-engine-api/stores"
)

// App stores the router, registry and store, so it can be reused
type App struct {
	Router   *mux.Router
	Registry *stores.Registry
	Store    stores.Store
	Config   config.Config
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	r := api.New()

	d := Dealer{Registry: a.Registry, Store: a.Store}
	imp := Import{Importer: &ingest.Importer{Registry: a.Registry}}
	q := Queue{Registry: a.Registry}
	s := Settings{Store: a.Store}

	apiCreate := r.PathPrefix("/api/v1").Subrouter()

	apiCreate.Handle("/dealers", api.Middleware(http.HandlerFunc(d.ListDealersHandler))).Methods("GET")
	apiCreate.Handle("/dealers", api.Middleware(http.HandlerFunc(d.CreateDealerHandler))).Methods("POST")
	apiCreate.Handle("/dealers/{dealer_name}", api.Middleware(http.HandlerFunc(d.DealerByNameHandler))).Methods("GET")
	apiCreate.Handle("/dealers/{dealer_name}", api.Middleware(http.HandlerFunc(d.UpdateDealerHandler))).Methods("PUT")
	apiCreate.Handle("/dealers/{dealer_name}", api.Middleware(http.HandlerFunc(d.DeleteDealerHandler))).Methods("DELETE")
	apiCreate.Handle("/dealers/{dealer_name}/charges", api.Middleware(http.HandlerFunc(d.UpdateChargesHandler))).Methods("PUT")
	apiCreate.Handle("/dealers/{dealer_name}/unstage", api.Middleware(http.HandlerFunc(d.UnstageDealerHandler))).Methods("POST")
	apiCreate.Handle("/dealers/{dealer_name}/invoice", api.Middleware(http.HandlerFunc(d.InvoiceHandler))).Methods("GET")

	apiCreate.Handle("/imports", api.Middleware(http.HandlerFunc(imp.ImportHandler))).Methods("POST")

	apiCreate.Handle("/queue", api.Middleware(http.HandlerFunc(q.QueueSummaryHandler))).Methods("GET")
	apiCreate.Handle("/queue/reset", api.Middleware(http.HandlerFunc(q.ResetQueueHandler))).Methods("POST")

	apiCreate.Handle("/settings", api.Middleware(http.HandlerFunc(s.SettingsHandler))).Methods("GET")
	apiCreate.Handle("/settings", api.Middleware(http.HandlerFunc(s.UpdateSettingsHandler))).Methods("PUT")

	return r
}

// Initialize is invoked by main to load the persisted dealer configs and
// create a router
func (a *App) Initialize() error {
	store, err := stores.NewFileStore(a.Config.DataDir)
	if err != nil {
		zap.S().With(err).Error("failed to open data directory")
		return err
	}
	a.Store = store

	registry, err := store.LoadDealers()
	if err != nil {
		// A corrupt config file refuses to start rather than silently
		// replacing saved dealer data.
		zap.S().With(err).Error("failed to load dealer configs")
		return err
	}
	a.Registry = registry
	zap.S().Infow("dealer configs loaded", "dealers", len(registry.Dealers()))

	a.initializeRoutes()
	return nil
}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}
