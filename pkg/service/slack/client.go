package slack

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/isorisk/pkg/domain/model"
	"github.com/slack-go/slack"
)

// client implements Notifier interface
type client struct {
	api       *slack.Client
	channelID string
	baseURL   string
	apiURL    string
}

// Option is a functional option for client configuration
type Option func(*client)

// WithBaseURL sets the frontend URL used to link assessments from messages
func WithBaseURL(baseURL string) Option {
	return func(c *client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithAPIURL overrides the Slack Web API endpoint
func WithAPIURL(apiURL string) Option {
	return func(c *client) {
		c.apiURL = apiURL
	}
}

// New creates a new Slack notifier posting to channelID with the provided bot token
func New(token, channelID string, opts ...Option) (Notifier, error) {
	if token == "" {
		return nil, goerr.New("Slack bot token is required")
	}
	if channelID == "" {
		return nil, goerr.New("Slack channel ID is required")
	}

	c := &client{
		channelID: channelID,
	}
	for _, opt := range opts {
		opt(c)
	}

	var apiOpts []slack.Option
	if c.apiURL != "" {
		apiOpts = append(apiOpts, slack.OptionAPIURL(c.apiURL))
	}
	c.api = slack.New(token, apiOpts...)

	return c, nil
}

func (c *client) assessmentURL(id model.AssessmentID) string {
	if c.baseURL == "" {
		return ""
	}
	return fmt.Sprintf("%s/assessments/%s", c.baseURL, id)
}

// NotifyAssessment posts a Block Kit summary of the submitted assessment
func (c *client) NotifyAssessment(ctx context.Context, assessment *model.Assessment) error {
	blocks := buildAssessmentBlocks(assessment, c.assessmentURL(assessment.ID))
	text := fmt.Sprintf("New %s risk assessment: %s", assessment.Level(), assessment.Draft.RiskTitle)
	return c.post(ctx, blocks, text)
}

// NotifyReviewDue posts a review reminder for the assessment
func (c *client) NotifyReviewDue(ctx context.Context, assessment *model.Assessment) error {
	blocks := buildReviewDueBlocks(assessment, c.assessmentURL(assessment.ID))
	text := fmt.Sprintf("Risk assessment due for review: %s", assessment.Draft.RiskTitle)
	return c.post(ctx, blocks, text)
}

func (c *client) post(ctx context.Context, blocks []slack.Block, text string) error {
	_, _, err := c.api.PostMessageContext(ctx, c.channelID,
		slack.MsgOptionBlocks(blocks...),
		slack.MsgOptionText(text, false),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to post message to Slack", goerr.V("channelID", c.channelID))
	}
	return nil
}
