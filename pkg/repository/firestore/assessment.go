package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/isorisk/pkg/domain/model"
	"github.com/secmon-lab/isorisk/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// AssessmentCollection is the collection name of submitted assessments without prefix
const AssessmentCollection = "assessments"

// CollectionName returns the assessment collection name for prefix
func CollectionName(prefix string) string {
	if prefix != "" {
		return prefix + "_" + AssessmentCollection
	}
	return AssessmentCollection
}

type treatmentActionDocument struct {
	Description  string `firestore:"description"`
	Responsible  string `firestore:"responsible"`
	Timeline     string `firestore:"timeline"`
	CostEstimate string `firestore:"cost_estimate"`
}

type draftDocument struct {
	OrganizationContext   string                    `firestore:"organization_context"`
	InternalContext       string                    `firestore:"internal_context"`
	ExternalContext       string                    `firestore:"external_context"`
	Scope                 string                    `firestore:"scope"`
	Stakeholders          []string                  `firestore:"stakeholders"`
	RiskTitle             string                    `firestore:"risk_title"`
	RiskDescription       string                    `firestore:"risk_description"`
	PotentialCauses       []string                  `firestore:"potential_causes"`
	PotentialConsequences []string                  `firestore:"potential_consequences"`
	ImpactAreas           []string                  `firestore:"impact_areas"`
	Severity              int64                     `firestore:"severity"`
	Likelihood            int64                     `firestore:"likelihood"`
	Detectability         int64                     `firestore:"detectability"`
	TreatmentStrategy     string                    `firestore:"risk_treatment_strategy"`
	EvaluationNotes       string                    `firestore:"evaluation_notes"`
	TreatmentActions      []treatmentActionDocument `firestore:"treatment_actions"`
	MonitoringMethods     []string                  `firestore:"monitoring_methods"`
	Indicators            []string                  `firestore:"indicators"`
	ResponsibleParties    []string                  `firestore:"responsible_parties"`
	MonitoringFrequency   string                    `firestore:"monitoring_frequency"`
	ReviewFrequency       string                    `firestore:"review_frequency"`
}

// assessmentDocument stores impact_score and risk_level only for querying. Reads recompute both.
type assessmentDocument struct {
	ID                   string        `firestore:"id"`
	Draft                draftDocument `firestore:"assessment"`
	ImpactScore          int64         `firestore:"impact_score"`
	RiskLevel            string        `firestore:"risk_level"`
	SubmittedAt          time.Time     `firestore:"submitted_at"`
	LastReviewReminderAt time.Time     `firestore:"last_review_reminder_at"`
}

func toAssessmentDocument(a *model.Assessment) *assessmentDocument {
	d := a.Draft
	actions := make([]treatmentActionDocument, 0, len(d.TreatmentActions))
	for _, action := range d.TreatmentActions {
		actions = append(actions, treatmentActionDocument(action))
	}

	return &assessmentDocument{
		ID: a.ID.String(),
		Draft: draftDocument{
			OrganizationContext:   d.OrganizationContext,
			InternalContext:       d.InternalContext,
			ExternalContext:       d.ExternalContext,
			Scope:                 d.Scope,
			Stakeholders:          d.Stakeholders,
			RiskTitle:             d.RiskTitle,
			RiskDescription:       d.RiskDescription,
			PotentialCauses:       d.PotentialCauses,
			PotentialConsequences: d.PotentialConsequences,
			ImpactAreas:           d.ImpactAreas,
			Severity:              int64(d.Severity),
			Likelihood:            int64(d.Likelihood),
			Detectability:         int64(d.Detectability),
			TreatmentStrategy:     d.TreatmentStrategy.String(),
			EvaluationNotes:       d.EvaluationNotes,
			TreatmentActions:      actions,
			MonitoringMethods:     d.MonitoringMethods,
			Indicators:            d.Indicators,
			ResponsibleParties:    d.ResponsibleParties,
			MonitoringFrequency:   d.MonitoringFrequency,
			ReviewFrequency:       d.ReviewFrequency.String(),
		},
		ImpactScore:          int64(a.Score()),
		RiskLevel:            a.Level().String(),
		SubmittedAt:          a.SubmittedAt,
		LastReviewReminderAt: a.LastReviewReminderAt,
	}
}

func (doc *assessmentDocument) toModel() *model.Assessment {
	d := doc.Draft
	var actions []model.TreatmentAction
	for _, action := range d.TreatmentActions {
		actions = append(actions, model.TreatmentAction(action))
	}

	return &model.Assessment{
		ID: model.AssessmentID(doc.ID),
		Draft: &model.RiskAssessment{
			OrganizationContext:   d.OrganizationContext,
			InternalContext:       d.InternalContext,
			ExternalContext:       d.ExternalContext,
			Scope:                 d.Scope,
			Stakeholders:          d.Stakeholders,
			RiskTitle:             d.RiskTitle,
			RiskDescription:       d.RiskDescription,
			PotentialCauses:       d.PotentialCauses,
			PotentialConsequences: d.PotentialConsequences,
			ImpactAreas:           d.ImpactAreas,
			Severity:              types.Rating(d.Severity),
			Likelihood:            types.Rating(d.Likelihood),
			Detectability:         types.Rating(d.Detectability),
			TreatmentStrategy:     types.TreatmentStrategy(d.TreatmentStrategy),
			EvaluationNotes:       d.EvaluationNotes,
			TreatmentActions:      actions,
			MonitoringMethods:     d.MonitoringMethods,
			Indicators:            d.Indicators,
			ResponsibleParties:    d.ResponsibleParties,
			MonitoringFrequency:   d.MonitoringFrequency,
			ReviewFrequency:       types.ReviewFrequency(d.ReviewFrequency),
		},
		SubmittedAt:          doc.SubmittedAt,
		LastReviewReminderAt: doc.LastReviewReminderAt,
	}
}

type assessmentRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newAssessmentRepository(client *firestore.Client) *assessmentRepository {
	return &assessmentRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *assessmentRepository) assessmentsCollection() string {
	return CollectionName(r.collectionPrefix)
}

func (r *assessmentRepository) docRef(id model.AssessmentID) *firestore.DocumentRef {
	return r.client.Collection(r.assessmentsCollection()).Doc(id.String())
}

func (r *assessmentRepository) Create(ctx context.Context, assessment *model.Assessment) (*model.Assessment, error) {
	if assessment.ID == "" {
		return nil, goerr.New("assessment ID is required")
	}

	created := assessment.Clone()
	if created.SubmittedAt.IsZero() {
		created.SubmittedAt = time.Now().UTC()
	}

	doc := toAssessmentDocument(created)
	if _, err := r.docRef(created.ID).Create(ctx, doc); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil, goerr.Wrap(ErrAlreadyExists, "assessment already exists", goerr.V("id", created.ID))
		}
		return nil, goerr.Wrap(err, "failed to create assessment", goerr.V("id", created.ID))
	}

	return doc.toModel(), nil
}

func (r *assessmentRepository) Get(ctx context.Context, id model.AssessmentID) (*model.Assessment, error) {
	doc, err := r.docRef(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "assessment not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get assessment", goerr.V("id", id))
	}

	var assessmentDoc assessmentDocument
	if err := doc.DataTo(&assessmentDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal assessment", goerr.V("id", id))
	}

	return assessmentDoc.toModel(), nil
}

func (r *assessmentRepository) List(ctx context.Context) ([]*model.Assessment, error) {
	return r.query(ctx, r.client.Collection(r.assessmentsCollection()).
		OrderBy("submitted_at", firestore.Desc))
}

// ListByLevel requires the composite index risk_level ASC, submitted_at DESC
func (r *assessmentRepository) ListByLevel(ctx context.Context, level types.RiskLevel) ([]*model.Assessment, error) {
	return r.query(ctx, r.client.Collection(r.assessmentsCollection()).
		Where("risk_level", "==", level.String()).
		OrderBy("submitted_at", firestore.Desc))
}

func (r *assessmentRepository) query(ctx context.Context, q firestore.Query) ([]*model.Assessment, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	var assessments []*model.Assessment
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate assessments")
		}

		var assessmentDoc assessmentDocument
		if err := doc.DataTo(&assessmentDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal assessment", goerr.V("docID", doc.Ref.ID))
		}

		assessments = append(assessments, assessmentDoc.toModel())
	}

	return assessments, nil
}

func (r *assessmentRepository) UpdateReviewReminder(ctx context.Context, id model.AssessmentID, at time.Time) error {
	_, err := r.docRef(id).Update(ctx, []firestore.Update{
		{Path: "last_review_reminder_at", Value: at.UTC()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "assessment not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to update review reminder", goerr.V("id", id))
	}
	return nil
}

func (r *assessmentRepository) Delete(ctx context.Context, id model.AssessmentID) error {
	docRef := r.docRef(id)

	_, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "assessment not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get assessment", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete assessment", goerr.V("id", id))
	}

	return nil
}
