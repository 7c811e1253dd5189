package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/isorisk/pkg/domain/types"
)

// FactorLevel is the presentation metadata of one rating. It is never used in scoring.
type FactorLevel struct {
	Rating      types.Rating `json:"rating"`
	Label       string       `json:"label"`
	Description string       `json:"description"`
	Color       string       `json:"color"`
}

// FactorCatalog holds the five levels of each factor kind, indexed by rating-1
type FactorCatalog struct {
	levels map[types.FactorKind][5]FactorLevel
}

var ErrIncompleteCatalog = goerr.New("factor catalog must define all five ratings")

// NewFactorCatalog builds a catalog from per-kind level lists. Kinds not given keep the
// default levels. Each given kind must define every rating exactly once.
func NewFactorCatalog(levels map[types.FactorKind][]FactorLevel) (*FactorCatalog, error) {
	c := DefaultFactorCatalog()
	for kind, list := range levels {
		if !kind.IsValid() {
			return nil, goerr.New("unknown factor kind", goerr.V("kind", kind))
		}

		var arr [5]FactorLevel
		var seen [5]bool
		for _, lv := range list {
			if !lv.Rating.IsValid() {
				return nil, goerr.New("factor rating must be between 1 and 5",
					goerr.V("kind", kind), goerr.V("rating", lv.Rating))
			}
			i := lv.Rating.Int() - 1
			if seen[i] {
				return nil, goerr.New("duplicate factor rating",
					goerr.V("kind", kind), goerr.V("rating", lv.Rating))
			}
			seen[i] = true
			arr[i] = lv
		}
		for i, ok := range seen {
			if !ok {
				return nil, goerr.Wrap(ErrIncompleteCatalog, "missing factor rating",
					goerr.V("kind", kind), goerr.V("rating", i+1))
			}
		}
		c.levels[kind] = arr
	}
	return c, nil
}

// Levels returns the levels of kind in ascending rating order
func (c *FactorCatalog) Levels(kind types.FactorKind) []FactorLevel {
	arr, ok := c.levels[kind]
	if !ok {
		return nil
	}
	out := make([]FactorLevel, len(arr))
	copy(out, arr[:])
	return out
}

// Level returns the level of kind at rating, clamping the rating
func (c *FactorCatalog) Level(kind types.FactorKind, rating types.Rating) (FactorLevel, bool) {
	arr, ok := c.levels[kind]
	if !ok {
		return FactorLevel{}, false
	}
	return arr[rating.Clamp().Int()-1], true
}

// DefaultFactorCatalog returns the built-in labels and colors
func DefaultFactorCatalog() *FactorCatalog {
	return &FactorCatalog{
		levels: map[types.FactorKind][5]FactorLevel{
			types.FactorSeverity: {
				{1, "Negligible", "Minimal impact on operations or compliance", "#4CAF50"},
				{2, "Minor", "Limited impact, easily recoverable", "#8BC34A"},
				{3, "Moderate", "Noticeable impact requiring management attention", "#FFC107"},
				{4, "Major", "Significant impact on operations, customers or certification", "#FF9800"},
				{5, "Catastrophic", "Severe impact threatening business continuity", "#F44336"},
			},
			types.FactorLikelihood: {
				{1, "Rare", "May occur only in exceptional circumstances", "#4CAF50"},
				{2, "Unlikely", "Could occur at some time", "#8BC34A"},
				{3, "Possible", "Might occur at some time", "#FFC107"},
				{4, "Likely", "Will probably occur in most circumstances", "#FF9800"},
				{5, "Almost Certain", "Expected to occur in most circumstances", "#F44336"},
			},
			types.FactorDetectability: {
				{1, "Very High", "Very high chance of detection before impact", "#4CAF50"},
				{2, "High", "High chance of detection", "#8BC34A"},
				{3, "Moderate", "Moderate chance of detection", "#FFC107"},
				{4, "Low", "Low chance of detection", "#FF9800"},
				{5, "Very Low", "Very low chance of detection before impact", "#F44336"},
			},
		},
	}
}
