package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/secmon-lab/isorisk/pkg/domain/model"
	"github.com/secmon-lab/isorisk/pkg/domain/types"
	"github.com/secmon-lab/isorisk/pkg/usecase"
)

// AssessmentUseCase is the application logic served over HTTP
type AssessmentUseCase interface {
	Catalog() *model.FactorCatalog
	Quantify(severity, likelihood, detectability types.Rating) *usecase.QuantifyResult
	ValidateStep(step types.StepID, a *model.RiskAssessment) *usecase.StepValidation
	Navigate(ctx context.Context, req usecase.NavigateRequest) (*usecase.NavigateResult, error)
	Submit(ctx context.Context, a *model.RiskAssessment) (*model.Assessment, error)
	Get(ctx context.Context, id model.AssessmentID) (*model.Assessment, error)
	List(ctx context.Context) ([]*model.Assessment, error)
	ListByLevel(ctx context.Context, level types.RiskLevel) ([]*model.Assessment, error)
	Payload(ctx context.Context, id model.AssessmentID) (*model.SubmissionPayload, error)
	Dashboard(ctx context.Context) (*model.Dashboard, error)
}

// RequestObserver records request latency
type RequestObserver interface {
	ObserveRequest(route, method string, code int, elapsed time.Duration)
}

// maxBodyBytes limits JSON request bodies
const maxBodyBytes = 1 << 20

type Server struct {
	router         *chi.Mux
	assessment     AssessmentUseCase
	metricsHandler http.Handler
	observer       RequestObserver
}

type Options func(*Server)

// WithMetrics serves handler on /metrics and records request latency with observer
func WithMetrics(handler http.Handler, observer RequestObserver) Options {
	return func(s *Server) {
		s.metricsHandler = handler
		s.observer = observer
	}
}

func New(assessment AssessmentUseCase, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router:     r,
		assessment: assessment,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	if s.observer != nil {
		r.Use(requestMetrics(s.observer))
	}
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler)

	if s.metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", s.metricsHandler)
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		r.Get("/factors", s.factorsHandler)

		r.Route("/risk", func(r chi.Router) {
			r.Post("/score", s.scoreHandler)
			r.Post("/classify", s.classifyHandler)
			r.Post("/legacy", s.legacyHandler)
		})

		r.Route("/assessments", func(r chi.Router) {
			r.Post("/validate", s.validateHandler)
			r.Post("/navigate", s.navigateHandler)
			r.Post("/", s.submitHandler)
			r.Get("/", s.listHandler)
			r.Get("/{id}", s.getHandler)
			r.Get("/{id}/payload", s.payloadHandler)
		})

		r.Get("/dashboard", s.dashboardHandler)
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok"})
}
