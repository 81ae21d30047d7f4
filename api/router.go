package api

import (
	"compress/flate"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	api_middleware "gitlab.uncharted.software/WM/wm-booking-predictor/api/middleware"
	"gitlab.uncharted.software/WM/wm-booking-predictor/api/metrics"
	"gitlab.uncharted.software/WM/wm-booking-predictor/api/routes"
	"gitlab.uncharted.software/WM/wm-booking-predictor/config"
)

// BuildInfo identifies the running binary on the status endpoint.
type BuildInfo struct {
	Version   string
	Timestamp string
}

// NewRouter returns a chi router with endpoints registered. collector is only
// mounted on /metrics when it is non-nil.
func NewRouter(cfg config.Config, predictor routes.Predictor, collector *metrics.Collector, build BuildInfo) (chi.Router, error) {

	// Setup the router and configure baseline middleware
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(api_middleware.Logger(cfg.Logger))
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(flate.DefaultCompression))

	// Configure CORS handling
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		AllowCredentials: true,
	})
	r.Use(c.Handler)

	// Presentation layer
	r.Get("/", routes.FormPage(&cfg, predictor))
	r.Post("/", routes.FormSubmit(&cfg, predictor))

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Post("/predict", routes.PredictRequest(&cfg, predictor))
		r.Get("/categories", routes.CategoriesRequest(&cfg, predictor))
	})

	r.With(render.SetContentType(render.ContentTypeJSON)).
		Get("/status", routes.StatusRequest(&cfg, predictor, build.Version, build.Timestamp))

	if collector != nil {
		r.Method("GET", "/metrics", collector.Handler())
	}

	return r, nil
}
