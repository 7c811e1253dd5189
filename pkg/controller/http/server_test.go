package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	httpctrl "github.com/secmon-lab/isorisk/pkg/controller/http"
	"github.com/secmon-lab/isorisk/pkg/domain/model"
	"github.com/secmon-lab/isorisk/pkg/domain/types"
	"github.com/secmon-lab/isorisk/pkg/repository/memory"
	"github.com/secmon-lab/isorisk/pkg/service/metrics"
	"github.com/secmon-lab/isorisk/pkg/usecase"
)

func completeDraft() map[string]any {
	return map[string]any{
		"organization_context":    "Brewery",
		"scope":                   "Bottling line",
		"stakeholders":            []string{"QA"},
		"risk_title":              "Glass fragments",
		"risk_description":        "Broken bottles contaminate product",
		"potential_causes":        []string{"Worn conveyor guides"},
		"potential_consequences":  []string{"Injury", "Recall"},
		"severity":                3,
		"likelihood":              4,
		"detectability":           2,
		"risk_treatment_strategy": "mitigate",
		"treatment_actions": []map[string]string{
			{"description": "Install glass detection camera", "responsible": "Engineering"},
		},
		"monitoring_methods":   []string{"Camera reject log"},
		"monitoring_frequency": "daily",
		"review_frequency":     "quarterly",
	}
}

func newServer(t *testing.T, opts ...httpctrl.Options) *httptest.Server {
	t.Helper()
	uc := usecase.New(memory.New())
	srv := httptest.NewServer(httpctrl.New(uc.Assessment, opts...))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	switch v := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(v)
	default:
		data, err := json.Marshal(v)
		gt.NoError(t, err).Required()
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, reader)
	gt.NoError(t, err).Required()
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	gt.NoError(t, err).Required()
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	gt.NoError(t, err).Required()

	var out map[string]any
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		gt.NoError(t, json.Unmarshal(raw, &out)).Required()
	}
	return resp, out
}

func TestHealth(t *testing.T) {
	srv := newServer(t)
	resp, body := doJSON(t, http.MethodGet, srv.URL+"/health", nil)
	gt.Value(t, resp.StatusCode).Equal(http.StatusOK)
	gt.Value(t, body["status"]).Equal("ok")
}

func TestFactors(t *testing.T) {
	srv := newServer(t)
	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/factors", nil)
	gt.Value(t, resp.StatusCode).Equal(http.StatusOK)

	factors := body["factors"].(map[string]any)
	for _, kind := range types.AllFactorKinds() {
		levels := factors[kind.String()].([]any)
		gt.Array(t, levels).Length(5)
	}
}

func TestScore(t *testing.T) {
	srv := newServer(t)

	tests := []struct {
		name    string
		body    any
		status  int
		score   float64
		level   string
		clamped bool
	}{
		{"ordinary", map[string]int{"severity": 3, "likelihood": 4, "detectability": 2}, http.StatusOK, 5, "medium", false},
		{"maximum", map[string]int{"severity": 5, "likelihood": 5, "detectability": 5}, http.StatusOK, 25, "critical", false},
		{"minimum rounds to zero", map[string]int{"severity": 1, "likelihood": 1, "detectability": 1}, http.StatusOK, 0, "low", false},
		{"out of range is clamped", map[string]int{"severity": 0, "likelihood": 9, "detectability": 5}, http.StatusOK, 5, "medium", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/risk/score", tt.body)
			gt.Value(t, resp.StatusCode).Equal(tt.status)
			gt.Value(t, body["score"]).Equal(tt.score)
			gt.Value(t, body["level"]).Equal(tt.level)
			gt.Value(t, body["clamped"]).Equal(tt.clamped)
		})
	}

	t.Run("malformed JSON", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/risk/score", `{"severity":`)
		gt.Value(t, resp.StatusCode).Equal(http.StatusBadRequest)
	})

	t.Run("fractional rating", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/risk/score", `{"severity":2.5,"likelihood":1,"detectability":1}`)
		gt.Value(t, resp.StatusCode).Equal(http.StatusBadRequest)
	})
}

func TestClassify(t *testing.T) {
	srv := newServer(t)
	for score, level := range map[int]string{4: "low", 5: "medium", 12: "medium", 13: "high", 20: "high", 21: "critical"} {
		resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/risk/classify", map[string]int{"score": score})
		gt.Value(t, resp.StatusCode).Equal(http.StatusOK)
		gt.Value(t, body["level"]).Equal(level)
	}
}

func TestLegacy(t *testing.T) {
	srv := newServer(t)

	t.Run("known label", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/risk/legacy", map[string]string{"kind": "severity", "label": "Major"})
		gt.Value(t, resp.StatusCode).Equal(http.StatusOK)
		gt.Value(t, body["rating"]).Equal(float64(4))
		gt.Value(t, body["known"]).Equal(true)
	})

	t.Run("unknown label defaults to 1", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/risk/legacy", map[string]string{"kind": "likelihood", "label": "sometimes"})
		gt.Value(t, resp.StatusCode).Equal(http.StatusOK)
		gt.Value(t, body["rating"]).Equal(float64(1))
		gt.Value(t, body["known"]).Equal(false)
	})

	t.Run("unknown kind", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/risk/legacy", map[string]string{"kind": "impact", "label": "high"})
		gt.Value(t, resp.StatusCode).Equal(http.StatusBadRequest)
	})
}

func TestValidate(t *testing.T) {
	srv := newServer(t)
	draft := completeDraft()
	draft["risk_title"] = ""

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/assessments/validate", map[string]any{
		"step":       "identification",
		"assessment": draft,
	})
	gt.Value(t, resp.StatusCode).Equal(http.StatusOK)
	gt.Value(t, body["valid"]).Equal(false)
	gt.Value(t, body["missing"]).Equal([]any{"risk_title"})
}

func TestNavigate(t *testing.T) {
	srv := newServer(t)

	t.Run("next advances", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/assessments/navigate", map[string]any{
			"current":    "context",
			"action":     "next",
			"assessment": completeDraft(),
		})
		gt.Value(t, resp.StatusCode).Equal(http.StatusOK)
		gt.Value(t, body["current"]).Equal("identification")
		gt.Value(t, body["completed"]).Equal([]any{"context"})
	})

	t.Run("next from monitoring submits", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/assessments/navigate", map[string]any{
			"current":    "monitoring",
			"action":     "next",
			"assessment": completeDraft(),
		})
		gt.Value(t, resp.StatusCode).Equal(http.StatusOK)
		gt.Value(t, body["submitted"]).Equal(true)
		gt.Value(t, body["current"]).Equal("submitted")
		gt.Bool(t, body["assessment_id"] != "").True()
	})

	t.Run("jump ahead conflicts", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/assessments/navigate", map[string]any{
			"current": "context",
			"action":  "jump",
			"target":  "treatment",
		})
		gt.Value(t, resp.StatusCode).Equal(http.StatusConflict)
	})

	t.Run("unknown action", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/assessments/navigate", map[string]any{
			"current": "context",
			"action":  "finish",
		})
		gt.Value(t, resp.StatusCode).Equal(http.StatusBadRequest)
	})
}

func TestSubmitAndRead(t *testing.T) {
	srv := newServer(t)

	resp, created := doJSON(t, http.MethodPost, srv.URL+"/api/assessments", completeDraft())
	gt.Value(t, resp.StatusCode).Equal(http.StatusCreated)
	gt.Value(t, created["score"]).Equal(float64(5))
	gt.Value(t, created["level"]).Equal("medium")
	id := created["id"].(string)

	t.Run("get", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/assessments/"+id, nil)
		gt.Value(t, resp.StatusCode).Equal(http.StatusOK)
		gt.Value(t, body["id"]).Equal(id)
		draft := body["assessment"].(map[string]any)
		gt.Value(t, draft["risk_title"]).Equal("Glass fragments")
	})

	t.Run("payload", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/assessments/"+id+"/payload", nil)
		gt.Value(t, resp.StatusCode).Equal(http.StatusOK)
		gt.Value(t, body["impact_score"]).Equal(float64(5))
		gt.Value(t, body["risk_level"]).Equal("medium")
		gt.Value(t, body["severity"]).Equal("medium")
		gt.Value(t, body["likelihood"]).Equal("likely")
		gt.Value(t, body["detectability"]).Equal("moderately_detectable")
		gt.Value(t, body["risk_treatment_strategy"]).Equal("mitigate")
		gt.Value(t, body["risk_treatment_plan"]).Equal("Install glass detection camera")
		gt.Value(t, body["monitoring_frequency"]).Equal("daily")
		gt.Value(t, body["review_frequency"]).Equal("quarterly")
	})

	t.Run("list", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/assessments", nil)
		gt.Value(t, resp.StatusCode).Equal(http.StatusOK)
		gt.Array(t, body["assessments"].([]any)).Length(1)
	})

	t.Run("list by level", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/assessments?level=medium", nil)
		gt.Value(t, resp.StatusCode).Equal(http.StatusOK)
		gt.Array(t, body["assessments"].([]any)).Length(1)

		resp, body = doJSON(t, http.MethodGet, srv.URL+"/api/assessments?level=high", nil)
		gt.Value(t, resp.StatusCode).Equal(http.StatusOK)
		gt.Array(t, body["assessments"].([]any)).Length(0)

		resp, body = doJSON(t, http.MethodGet, srv.URL+"/api/assessments?level=bogus", nil)
		gt.Value(t, resp.StatusCode).Equal(http.StatusBadRequest)
		gt.Value(t, body["error"]).Equal("unknown risk level")
	})

	t.Run("dashboard", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/dashboard", nil)
		gt.Value(t, resp.StatusCode).Equal(http.StatusOK)
		gt.Value(t, body["total"]).Equal(float64(1))
		byLevel := body["by_level"].(map[string]any)
		gt.Value(t, byLevel["medium"]).Equal(float64(1))
		gt.Value(t, byLevel["critical"]).Equal(float64(0))
	})

	t.Run("unknown id", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodGet, srv.URL+"/api/assessments/"+model.NewAssessmentID().String(), nil)
		gt.Value(t, resp.StatusCode).Equal(http.StatusNotFound)

		resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/assessments/"+model.NewAssessmentID().String()+"/payload", nil)
		gt.Value(t, resp.StatusCode).Equal(http.StatusNotFound)
	})
}

func TestSubmit_Incomplete(t *testing.T) {
	srv := newServer(t)
	draft := completeDraft()
	draft["treatment_actions"] = []map[string]string{{"description": "Install camera"}}

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/assessments", draft)
	gt.Value(t, resp.StatusCode).Equal(http.StatusUnprocessableEntity)
	gt.Value(t, body["step"]).Equal("treatment")
	gt.Value(t, body["missing"]).Equal([]any{"treatment_actions[0].responsible"})

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/assessments", "not json")
	gt.Value(t, resp.StatusCode).Equal(http.StatusBadRequest)
}

type failingUseCase struct {
	httpctrl.AssessmentUseCase
}

func (failingUseCase) List(ctx context.Context) ([]*model.Assessment, error) {
	return nil, errors.New("storage unavailable")
}

func (failingUseCase) Dashboard(ctx context.Context) (*model.Dashboard, error) {
	return nil, errors.New("storage unavailable")
}

func TestStorageFailure(t *testing.T) {
	srv := httptest.NewServer(httpctrl.New(failingUseCase{}))
	defer srv.Close()

	resp, _ := doJSON(t, http.MethodGet, srv.URL+"/api/assessments", nil)
	gt.Value(t, resp.StatusCode).Equal(http.StatusInternalServerError)

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/dashboard", nil)
	gt.Value(t, resp.StatusCode).Equal(http.StatusInternalServerError)
}

func TestMetricsEndpoint(t *testing.T) {
	m := metrics.New()
	uc := usecase.New(memory.New(), usecase.WithMetrics(m))
	srv := httptest.NewServer(httpctrl.New(uc.Assessment, httpctrl.WithMetrics(m.Handler(), m)))
	defer srv.Close()

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/risk/score", map[string]int{"severity": 5, "likelihood": 5, "detectability": 5})
	gt.Value(t, resp.StatusCode).Equal(http.StatusOK)

	mresp, err := http.Get(srv.URL + "/metrics")
	gt.NoError(t, err).Required()
	defer mresp.Body.Close()
	raw, err := io.ReadAll(mresp.Body)
	gt.NoError(t, err).Required()

	gt.String(t, string(raw)).Contains(`isorisk_quantifications_total{level="critical"} 1`)
	gt.String(t, string(raw)).Contains(`route="/api/risk/score"`)
}

func TestMetricsEndpoint_Disabled(t *testing.T) {
	srv := newServer(t)
	resp, err := http.Get(srv.URL + "/metrics")
	gt.NoError(t, err).Required()
	defer resp.Body.Close()
	gt.Value(t, resp.StatusCode).Equal(http.StatusNotFound)
}
