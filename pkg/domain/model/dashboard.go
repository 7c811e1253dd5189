package model

import "github.com/secmon-lab/isorisk/pkg/domain/types"

// Dashboard aggregates stored assessments for the overview screen
type Dashboard struct {
	Total        int                     `json:"total"`
	ByLevel      map[types.RiskLevel]int `json:"by_level"`
	AverageScore float64                 `json:"average_score"`
	// HeatMap[severity-1][likelihood-1] counts assessments per cell
	HeatMap [5][5]int `json:"heat_map"`
}

// NewDashboard aggregates assessments. Every level key is present even when zero.
func NewDashboard(assessments []*Assessment) *Dashboard {
	d := &Dashboard{
		ByLevel: make(map[types.RiskLevel]int, len(types.AllRiskLevels())),
	}
	for _, level := range types.AllRiskLevels() {
		d.ByLevel[level] = 0
	}

	sum := 0
	for _, a := range assessments {
		score := a.Score()
		sum += score
		d.Total++
		d.ByLevel[Classify(score)]++
		d.HeatMap[a.Draft.Severity.Clamp()-1][a.Draft.Likelihood.Clamp()-1]++
	}
	if d.Total > 0 {
		d.AverageScore = float64(sum) / float64(d.Total)
	}
	return d
}
