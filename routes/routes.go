package routes

import (
	"net/http"

	"github.com/Chaukil/scanchi/config"
	"github.com/Chaukil/scanchi/controllers"
	"github.com/Chaukil/scanchi/jobs"
	auth "github.com/Chaukil/scanchi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Deps carries the wired controllers and worker into the router.
type Deps struct {
	Scans    *controllers.ScanController
	Sessions *controllers.SessionController
	Exports  *controllers.ExportController
	Worker   *jobs.ScanWorker
}

func SetupRouter(cfg *config.Config, deps Deps) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.AllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-API-Key"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"status": "ok"}`))
	})

	// Everything that mutates or reads session state is API-key protected.
	r.Group(func(r chi.Router) {
		r.Use(auth.APIKey(cfg.APIKey))

		r.Post("/scans", deps.Scans.CreateScan)
		r.Post("/scans/async", deps.Scans.CreateScanAsync)

		r.Post("/sessions", deps.Sessions.Create)
		r.Delete("/sessions/{session_id}", deps.Sessions.Remove)
		r.Get("/sessions/{session_id}/records", deps.Sessions.ListRecords)
		r.Post("/sessions/{session_id}/records", deps.Sessions.Confirm)
		r.Patch("/sessions/{session_id}/records/{index}", deps.Sessions.UpdateRecord)
		r.Delete("/sessions/{session_id}/records/{index}", deps.Sessions.DeleteRecord)
		r.Delete("/sessions/{session_id}/records", deps.Sessions.Clear)

		r.Get("/sessions/{session_id}/export", deps.Exports.Download)
	})

	// Server-Sent Events for async scan results.
	r.Get("/sse/scans", ScanSSE(deps.Worker))

	return r
}
