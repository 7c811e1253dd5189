package notion

import (
	"context"

	"github.com/secmon-lab/isorisk/pkg/domain/model"
)

// Exporter writes submitted assessments to a Notion risk register database
type Exporter interface {
	// ExportAssessment creates one page for the assessment and returns its URL
	ExportAssessment(ctx context.Context, assessment *model.Assessment) (string, error)
}

// Database property names of the risk register. The database must define them with the
// matching Notion property types.
const (
	PropertyTitle         = "Risk"           // title
	PropertyID            = "Assessment ID"  // rich_text
	PropertyLevel         = "Level"          // select
	PropertyScore         = "Score"          // number
	PropertySeverity      = "Severity"       // number
	PropertyLikelihood    = "Likelihood"     // number
	PropertyDetectability = "Detectability"  // number
	PropertyStrategy      = "Treatment"      // select
	PropertyPlan          = "Treatment Plan" // rich_text
	PropertyReview        = "Review"         // select
	PropertySubmittedAt   = "Submitted At"   // date
)
