package notion

import (
	"context"

	"github.com/jomei/notionapi"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/isorisk/pkg/domain/model"
)

// maxRichTextLength is the Notion limit of one rich text object
const maxRichTextLength = 2000

// client implements Exporter
type client struct {
	api        *notionapi.Client
	databaseID notionapi.DatabaseID
}

// New creates a Notion exporter writing into databaseID
func New(token, databaseID string) (Exporter, error) {
	if token == "" {
		return nil, goerr.New("Notion API token is required")
	}
	if databaseID == "" {
		return nil, goerr.New("Notion database ID is required")
	}

	return &client{
		api: notionapi.NewClient(
			notionapi.Token(token),
			notionapi.WithRetry(3), // Retry up to 3 times on rate limit (HTTP 429)
		),
		databaseID: notionapi.DatabaseID(databaseID),
	}, nil
}

func (c *client) ExportAssessment(ctx context.Context, assessment *model.Assessment) (string, error) {
	page, err := c.api.Page.Create(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: c.databaseID,
		},
		Properties: buildProperties(assessment),
	})
	if err != nil {
		return "", goerr.Wrap(err, "failed to create risk register page",
			goerr.V("assessment_id", assessment.ID),
			goerr.V("database_id", c.databaseID))
	}

	return page.URL, nil
}

func buildProperties(a *model.Assessment) notionapi.Properties {
	payload := model.NewSubmissionPayload(a.Draft)
	submittedAt := notionapi.Date(a.SubmittedAt)

	props := notionapi.Properties{
		PropertyTitle: notionapi.TitleProperty{
			Title: richText(a.Draft.RiskTitle),
		},
		PropertyID: notionapi.RichTextProperty{
			RichText: richText(a.ID.String()),
		},
		PropertyLevel: notionapi.SelectProperty{
			Select: notionapi.Option{Name: payload.RiskLevel.String()},
		},
		PropertyScore: notionapi.NumberProperty{
			Number: float64(payload.ImpactScore),
		},
		PropertySeverity: notionapi.NumberProperty{
			Number: float64(a.Draft.Severity.Clamp().Int()),
		},
		PropertyLikelihood: notionapi.NumberProperty{
			Number: float64(a.Draft.Likelihood.Clamp().Int()),
		},
		PropertyDetectability: notionapi.NumberProperty{
			Number: float64(a.Draft.Detectability.Clamp().Int()),
		},
		PropertySubmittedAt: notionapi.DateProperty{
			Date: &notionapi.DateObject{Start: &submittedAt},
		},
	}

	if payload.RiskTreatmentStrategy != "" {
		props[PropertyStrategy] = notionapi.SelectProperty{
			Select: notionapi.Option{Name: payload.RiskTreatmentStrategy.String()},
		}
	}
	if payload.RiskTreatmentPlan != "" {
		props[PropertyPlan] = notionapi.RichTextProperty{
			RichText: richText(payload.RiskTreatmentPlan),
		}
	}
	if payload.ReviewFrequency != "" {
		props[PropertyReview] = notionapi.SelectProperty{
			Select: notionapi.Option{Name: payload.ReviewFrequency},
		}
	}

	return props
}

// richText splits s into rich text objects within the Notion length limit
func richText(s string) []notionapi.RichText {
	runes := []rune(s)
	if len(runes) == 0 {
		return []notionapi.RichText{}
	}

	var out []notionapi.RichText
	for len(runes) > 0 {
		n := min(len(runes), maxRichTextLength)
		out = append(out, notionapi.RichText{
			Text: &notionapi.Text{Content: string(runes[:n])},
		})
		runes = runes[n:]
	}
	return out
}
