package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/isorisk/pkg/domain/model"
	"github.com/secmon-lab/isorisk/pkg/domain/types"
	"github.com/secmon-lab/isorisk/pkg/usecase"
	"github.com/secmon-lab/isorisk/pkg/utils/errutil"
	"github.com/secmon-lab/isorisk/pkg/utils/logging"
)

type errorResponse struct {
	Error   string       `json:"error"`
	Step    types.StepID `json:"step,omitempty"`
	Missing []string     `json:"missing,omitempty"`
}

type scoreRequest struct {
	Severity      types.Rating `json:"severity"`
	Likelihood    types.Rating `json:"likelihood"`
	Detectability types.Rating `json:"detectability"`
}

type classifyRequest struct {
	Score int `json:"score"`
}

type classifyResponse struct {
	Level types.RiskLevel `json:"level"`
}

type legacyRequest struct {
	Kind  string `json:"kind"`
	Label string `json:"label"`
}

type legacyResponse struct {
	Rating types.Rating `json:"rating"`
	Known  bool         `json:"known"`
}

type validateRequest struct {
	Step       types.StepID          `json:"step"`
	Assessment *model.RiskAssessment `json:"assessment"`
}

type factorsResponse struct {
	Factors map[types.FactorKind][]model.FactorLevel `json:"factors"`
}

// assessmentResponse adds the derived score and level to a stored assessment
type assessmentResponse struct {
	*model.Assessment
	Score int             `json:"score"`
	Level types.RiskLevel `json:"level"`
}

type assessmentListResponse struct {
	Assessments []assessmentResponse `json:"assessments"`
}

func toAssessmentResponse(a *model.Assessment) assessmentResponse {
	return assessmentResponse{
		Assessment: a,
		Score:      a.Score(),
		Level:      a.Level(),
	}
}

// decodeJSON reads a size-limited JSON body into v and writes 400 on failure
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := render.DecodeJSON(r.Body, v); err != nil {
		logging.From(r.Context()).Warn("malformed request body", "error", err.Error())
		writeError(w, r, http.StatusBadRequest, errorResponse{Error: "malformed JSON body"})
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, r *http.Request, status int, resp errorResponse) {
	render.Status(r, status)
	render.JSON(w, r, resp)
}

// handleUseCaseError maps use case and wizard errors to HTTP statuses. Anything not recognized
// is a server failure.
func handleUseCaseError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, usecase.ErrIncompleteAssessment):
		step, missing, _ := usecase.IncompleteDetail(err)
		writeError(w, r, http.StatusUnprocessableEntity, errorResponse{
			Error:   usecase.ErrIncompleteAssessment.Error(),
			Step:    step,
			Missing: missing,
		})

	case errors.Is(err, usecase.ErrAssessmentNotFound):
		writeError(w, r, http.StatusNotFound, errorResponse{Error: usecase.ErrAssessmentNotFound.Error()})

	case errors.Is(err, model.ErrUnknownStep), errors.Is(err, usecase.ErrUnknownAction):
		writeError(w, r, http.StatusBadRequest, errorResponse{Error: err.Error()})

	case errors.Is(err, model.ErrNoPreviousStep),
		errors.Is(err, model.ErrJumpAhead),
		errors.Is(err, model.ErrAlreadySubmitted):
		writeError(w, r, http.StatusConflict, errorResponse{Error: err.Error()})

	default:
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
	}
}

func (s *Server) factorsHandler(w http.ResponseWriter, r *http.Request) {
	catalog := s.assessment.Catalog()
	resp := factorsResponse{Factors: make(map[types.FactorKind][]model.FactorLevel)}
	for _, kind := range types.AllFactorKinds() {
		resp.Factors[kind] = catalog.Levels(kind)
	}
	render.JSON(w, r, resp)
}

func (s *Server) scoreHandler(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	render.JSON(w, r, s.assessment.Quantify(req.Severity, req.Likelihood, req.Detectability))
}

func (s *Server) classifyHandler(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	render.JSON(w, r, classifyResponse{Level: model.Classify(req.Score)})
}

func (s *Server) legacyHandler(w http.ResponseWriter, r *http.Request) {
	var req legacyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	kind, err := types.ParseFactorKind(req.Kind)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, errorResponse{Error: "unknown factor kind"})
		return
	}

	render.JSON(w, r, legacyResponse{
		Rating: model.MapLegacyLabel(kind, req.Label),
		Known:  model.IsKnownLegacyLabel(kind, req.Label),
	})
}

func (s *Server) validateHandler(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	render.JSON(w, r, s.assessment.ValidateStep(req.Step, req.Assessment))
}

func (s *Server) navigateHandler(w http.ResponseWriter, r *http.Request) {
	var req usecase.NavigateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := s.assessment.Navigate(r.Context(), req)
	if err != nil {
		handleUseCaseError(w, r, err)
		return
	}
	render.JSON(w, r, result)
}

func (s *Server) submitHandler(w http.ResponseWriter, r *http.Request) {
	var draft model.RiskAssessment
	if !decodeJSON(w, r, &draft) {
		return
	}

	created, err := s.assessment.Submit(r.Context(), &draft)
	if err != nil {
		handleUseCaseError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, toAssessmentResponse(created))
}

// listHandler lists every assessment, or only one risk level with ?level=
func (s *Server) listHandler(w http.ResponseWriter, r *http.Request) {
	var (
		assessments []*model.Assessment
		err         error
	)
	if raw := r.URL.Query().Get("level"); raw != "" {
		level, parseErr := types.ParseRiskLevel(raw)
		if parseErr != nil {
			writeError(w, r, http.StatusBadRequest, errorResponse{Error: "unknown risk level"})
			return
		}
		assessments, err = s.assessment.ListByLevel(r.Context(), level)
	} else {
		assessments, err = s.assessment.List(r.Context())
	}
	if err != nil {
		handleUseCaseError(w, r, goerr.Wrap(err, "failed to list assessments"))
		return
	}

	resp := assessmentListResponse{Assessments: make([]assessmentResponse, 0, len(assessments))}
	for _, a := range assessments {
		resp.Assessments = append(resp.Assessments, toAssessmentResponse(a))
	}
	render.JSON(w, r, resp)
}

func (s *Server) getHandler(w http.ResponseWriter, r *http.Request) {
	id := model.AssessmentID(chi.URLParam(r, "id"))
	assessment, err := s.assessment.Get(r.Context(), id)
	if err != nil {
		handleUseCaseError(w, r, err)
		return
	}
	render.JSON(w, r, toAssessmentResponse(assessment))
}

func (s *Server) payloadHandler(w http.ResponseWriter, r *http.Request) {
	id := model.AssessmentID(chi.URLParam(r, "id"))
	payload, err := s.assessment.Payload(r.Context(), id)
	if err != nil {
		handleUseCaseError(w, r, err)
		return
	}
	render.JSON(w, r, payload)
}

func (s *Server) dashboardHandler(w http.ResponseWriter, r *http.Request) {
	dashboard, err := s.assessment.Dashboard(r.Context())
	if err != nil {
		handleUseCaseError(w, r, err)
		return
	}
	render.JSON(w, r, dashboard)
}
