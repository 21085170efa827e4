package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fcv/porteria/internal/lib/api/response"
	"github.com/fcv/porteria/internal/lib/sl"
)

const requestTimeout = 5 * time.Second

var validate = validator.New()

// Dependencies are the collaborators NewServer wires into the router.
type Dependencies struct {
	Logger     *slog.Logger
	Addr       string
	Access     AccessChecker
	AccessLogs AccessLogger
	// Gatherer backs /metrics. Nil means the default registry.
	Gatherer prometheus.Gatherer
}

// Server is the public HTTP API.
type Server struct {
	httpServer *http.Server
	log        *slog.Logger
}

func NewServer(d Dependencies) *Server {
	log := d.Logger
	if log == nil {
		log = slog.Default()
	}
	gatherer := d.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(requestLogger(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(requestTimeout))

	router.NotFound(notFound)
	router.MethodNotAllowed(methodNotAllowed)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, response.Ok(nil))
	})
	router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	router.Route("/v1/access", func(v1 chi.Router) {
		v1.Post("/check", checkAccess(log, d.Access))
		v1.Post("/logs", recordLog(log, d.AccessLogs))
		v1.Get("/logs", listLogs(log, d.AccessLogs))
	})

	return &Server{
		log: log.With(sl.Module("http.server")),
		httpServer: &http.Server{
			Addr:              d.Addr,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
			ErrorLog:          slog.NewLogLogger(log.Handler(), slog.LevelError),
		},
	}
}

func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

func (s *Server) Start() error {
	s.log.Info("starting http server", slog.String("address", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
