package slack

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/secmon-lab/isorisk/pkg/domain/model"
	"github.com/secmon-lab/isorisk/pkg/domain/types"
	"github.com/slack-go/slack"
)

// maxHeaderLength is the Slack limit of a header block's plain text in characters
const maxHeaderLength = 150

var levelEmoji = map[types.RiskLevel]string{
	types.RiskLevelLow:      ":large_green_circle:",
	types.RiskLevelMedium:   ":large_yellow_circle:",
	types.RiskLevelHigh:     ":large_orange_circle:",
	types.RiskLevelCritical: ":red_circle:",
}

// buildAssessmentBlocks constructs Block Kit blocks announcing a submitted assessment.
func buildAssessmentBlocks(a *model.Assessment, link string) []slack.Block {
	level := a.Level()
	blocks := []slack.Block{
		slack.NewHeaderBlock(
			slack.NewTextBlockObject(slack.PlainTextType, truncateText(levelEmoji[level]+" "+a.Draft.RiskTitle, maxHeaderLength), true, false),
		),
	}

	if a.Draft.RiskDescription != "" {
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, a.Draft.RiskDescription, false, false),
			nil, nil,
		))
	}

	blocks = append(blocks, slack.NewSectionBlock(nil, factorFields(a), nil))
	blocks = append(blocks, contextBlock(a, link))
	return blocks
}

// buildReviewDueBlocks constructs Block Kit blocks reminding a periodic review.
func buildReviewDueBlocks(a *model.Assessment, link string) []slack.Block {
	title := fmt.Sprintf(":calendar: Review due: %s", a.Draft.RiskTitle)
	return []slack.Block{
		slack.NewHeaderBlock(
			slack.NewTextBlockObject(slack.PlainTextType, truncateText(title, maxHeaderLength), true, false),
		),
		slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType,
				fmt.Sprintf("This assessment is reviewed *%s* and was submitted on %s.",
					a.Draft.ReviewFrequency, a.SubmittedAt.Format("2006-01-02")),
				false, false),
			factorFields(a), nil,
		),
		contextBlock(a, link),
	}
}

func factorFields(a *model.Assessment) []*slack.TextBlockObject {
	d := a.Draft
	field := func(name string, value any) *slack.TextBlockObject {
		return slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*%s*\n%v", name, value), false, false)
	}
	return []*slack.TextBlockObject{
		field("Severity", d.Severity.Clamp().Int()),
		field("Likelihood", d.Likelihood.Clamp().Int()),
		field("Detectability", d.Detectability.Clamp().Int()),
		field("Score", fmt.Sprintf("%d (%s)", a.Score(), a.Level())),
		field("Strategy", d.TreatmentStrategy),
		field("Review", d.ReviewFrequency),
	}
}

func contextBlock(a *model.Assessment, link string) *slack.ContextBlock {
	parts := []string{fmt.Sprintf("ID: `%s`", a.ID)}
	if len(a.Draft.Stakeholders) > 0 {
		parts = append(parts, "Stakeholders: "+strings.Join(a.Draft.Stakeholders, ", "))
	}
	if link != "" {
		parts = append(parts, fmt.Sprintf(":link: <%s|Open>", link))
	}
	return slack.NewContextBlock("",
		slack.NewTextBlockObject(slack.MarkdownType, strings.Join(parts, "  |  "), false, false),
	)
}

// truncateText cuts s to at most limit characters without splitting a UTF-8 sequence
func truncateText(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit-1]) + "…"
}
