package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/secmon-lab/isorisk/pkg/domain/types"
)

// AssessmentID identifies a submitted assessment
type AssessmentID string

// NewAssessmentID returns a random ID
func NewAssessmentID() AssessmentID {
	return AssessmentID(uuid.NewString())
}

// String returns the string representation of AssessmentID
func (id AssessmentID) String() string {
	return string(id)
}

// Assessment is a submitted risk assessment. Score and level are always derived from Draft.
type Assessment struct {
	ID                   AssessmentID    `json:"id"`
	Draft                *RiskAssessment `json:"assessment"`
	SubmittedAt          time.Time       `json:"submitted_at"`
	LastReviewReminderAt time.Time       `json:"last_review_reminder_at,omitzero"`
}

// Score recomputes the risk score of the submitted draft
func (a *Assessment) Score() int {
	return a.Draft.Score()
}

// Level recomputes the risk level of the submitted draft
func (a *Assessment) Level() types.RiskLevel {
	return a.Draft.Level()
}

// Clone returns a deep copy
func (a *Assessment) Clone() *Assessment {
	c := *a
	c.Draft = a.Draft.Clone()
	return &c
}

// ReviewDue reports whether the review interval has elapsed at now, counting from the later
// of submission and the last reminder. Drafts without a scheduled frequency are never due.
func (a *Assessment) ReviewDue(now time.Time) bool {
	interval, ok := a.Draft.ReviewFrequency.Interval()
	if !ok {
		return false
	}
	since := a.SubmittedAt
	if a.LastReviewReminderAt.After(since) {
		since = a.LastReviewReminderAt
	}
	return !now.Before(since.Add(interval))
}
