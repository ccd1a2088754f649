package dishes

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/globetraiteurs/plats/pkg/airtable"
	"github.com/globetraiteurs/plats/pkg/defaults"
	apperrors "github.com/globetraiteurs/plats/pkg/errors"
	"github.com/globetraiteurs/plats/pkg/formula"
	"github.com/globetraiteurs/plats/pkg/sampler"
)

// Machine-readable reasons reported in the "detail" field.
const (
	ReasonMissingParams   = "missing_params"
	ReasonInvalidJSON     = "invalid_json"
	ReasonNotEnoughDishes = "not_enough_dishes"
)

// RecordFetcher reads records from the store. *airtable.Client implements it.
type RecordFetcher interface {
	FetchOne(ctx context.Context, table, filter string) (*airtable.Record, error)
	FetchMany(ctx context.Context, table, filter string) ([]airtable.Record, error)
	FetchByIDs(ctx context.Context, table string, ids []string) ([]airtable.Record, error)
}

// Tables names the store tables used by the pipeline. Cultures is optional.
type Tables struct {
	Tally    string
	Plats    string
	Dishes   string
	Cultures string
}

// Service runs the submission to dishes pipeline.
type Service struct {
	store  RecordFetcher
	tables Tables
	intn   func(int) int

	// timeout bounds one HTTP handler pipeline run.
	timeout time.Duration

	platsPolicy     sampler.Policy
	recommendPolicy sampler.Policy
}

// Option configures a Service.
type Option func(*Service)

// WithRandom replaces the random source used for sampling.
func WithRandom(intn func(int) int) Option {
	return func(s *Service) {
		if intn != nil {
			s.intn = intn
		}
	}
}

// WithTimeout sets the per-request pipeline budget used by the handlers.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithPolicies overrides the sampling policies of get_plats and
// recommendations/create.
func WithPolicies(plats, recommend sampler.Policy) Option {
	return func(s *Service) {
		s.platsPolicy = plats
		s.recommendPolicy = recommend
	}
}

// NewService returns a Service reading from store.
func NewService(store RecordFetcher, tables Tables, opts ...Option) *Service {
	s := &Service{
		store:           store,
		tables:          tables,
		intn:            rand.IntN,
		timeout:         defaults.DishesHandlerTimeout,
		platsPolicy:     sampler.Lenient(defaults.SampleSize),
		recommendPolicy: sampler.Strict(defaults.SampleSize),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Timeout returns the per-request pipeline budget.
func (s *Service) Timeout() time.Duration {
	return s.timeout
}

// Submission reads the submission with the given external identifier.
func (s *Service) Submission(ctx context.Context, submissionID string) (*Submission, error) {
	rec, err := s.store.FetchOne(ctx, s.tables.Tally, formula.Eq(fieldSubmissionID, submissionID))
	if err != nil {
		if apperrors.IsCode(err, apperrors.ErrCodeNotFound) {
			return nil, apperrors.NewWithContext(apperrors.ErrCodeNotFound, "submission_id not found",
				map[string]any{"submission_id": submissionID})
		}
		return nil, err
	}

	sub := &Submission{
		RecordID:     rec.ID,
		SubmissionID: submissionID,
		Fields:       rec.Fields,
	}

	raw, _ := rec.Value(fieldCulture)
	switch c := parseCategory(raw).(type) {
	case nil:
		return nil, apperrors.NewWithContext(apperrors.ErrCodeInvalidSubmissionState,
			"culture missing on submission", map[string]any{"submission_id": submissionID})
	case LinkedCategory:
		c.Names = rec.Strings(fieldCultureName)
		sub.Category = c
	default:
		sub.Category = c
	}
	return sub, nil
}

// Labels resolves the category of sub into de-duplicated labels. Linked
// categories without names are resolved through the Cultures table when one
// is configured.
func (s *Service) Labels(ctx context.Context, sub *Submission, fold bool) ([]string, error) {
	switch c := sub.Category.(type) {
	case PlainCategory:
		return NormalizeLabels(c.Labels, fold), nil
	case LinkedCategory:
		if len(c.Names) > 0 {
			return NormalizeLabels(c.Names, fold), nil
		}
		if s.tables.Cultures != "" {
			names, err := s.cultureNames(ctx, c.IDs)
			if err != nil {
				return nil, err
			}
			if len(names) > 0 {
				return NormalizeLabels(names, fold), nil
			}
		}
		return nil, apperrors.NewWithContext(apperrors.ErrCodeInvalidSubmissionState,
			"culture_name missing for linked record model", map[string]any{"submission_id": sub.SubmissionID})
	default:
		return nil, apperrors.New(apperrors.ErrCodeInvalidSubmissionState, "culture missing on submission")
	}
}

// cultureNames reads the name field of the linked culture records, in the
// order of ids.
func (s *Service) cultureNames(ctx context.Context, ids []string) ([]string, error) {
	recs, err := s.store.FetchByIDs(ctx, s.tables.Cultures, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]string, len(recs))
	for _, r := range recs {
		if name, ok := r.String(fieldName); ok {
			byID[r.ID] = name
		}
	}
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := byID[id]; ok {
			names = append(names, name)
		}
	}
	return names, nil
}

// Plats runs the get_plats pipeline for a submission.
func (s *Service) Plats(ctx context.Context, submissionID string) (*PlatsEnvelope, error) {
	env, err := s.plats(ctx, submissionID)
	if err != nil {
		pipelineFailures.WithLabelValues(opGetPlats, string(apperrors.CodeOf(err))).Inc()
		return nil, err
	}
	return env, nil
}

func (s *Service) plats(ctx context.Context, submissionID string) (*PlatsEnvelope, error) {
	submissionID = strings.TrimSpace(submissionID)
	if submissionID == "" {
		return nil, apperrors.New(apperrors.ErrCodeMissingParameter, "missing submission_id").
			WithReason(ReasonMissingParams)
	}

	sub, err := s.Submission(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	labels, err := s.Labels(ctx, sub, false)
	if err != nil {
		return nil, err
	}

	_, linked := sub.Category.(LinkedCategory)
	filter := formula.Match{Field: fieldCulture, Linked: linked}.Build(labels)

	recs, err := s.store.FetchMany(ctx, s.tables.Plats, filter)
	if err != nil {
		return nil, err
	}
	candidateDishes.WithLabelValues(opGetPlats).Observe(float64(len(recs)))

	chosen, err := sampler.SampleWith(s.intn, s.platsPolicy, recs)
	if err != nil {
		if apperrors.IsCode(err, apperrors.ErrCodeInsufficientResults) {
			return nil, apperrors.NewWithContext(apperrors.ErrCodeNotFound,
				fmt.Sprintf("No dishes found for culture '%s'", strings.Join(labels, ", ")),
				map[string]any{"cultures": labels, "found": len(recs)})
		}
		return nil, err
	}

	plats := make([]Plat, 0, len(chosen))
	for _, rec := range chosen {
		plats = append(plats, toPlat(rec, platCulture(rec, labels)))
	}

	slog.Debug("plats selected",
		"submission_id", submissionID,
		"cultures", labels,
		"candidates", len(recs),
		"selected", len(plats),
	)

	return &PlatsEnvelope{
		SubmissionID: submissionID,
		Cultures:     labels,
		Count:        len(plats),
		Plats:        plats,
	}, nil
}

// Recommend runs the recommendations/create pipeline. The culture is given
// by the caller; no submission lookup happens.
func (s *Service) Recommend(ctx context.Context, req RecommendRequest) (*Recommendation, error) {
	rec, err := s.recommend(ctx, req)
	if err != nil {
		pipelineFailures.WithLabelValues(opRecommend, string(apperrors.CodeOf(err))).Inc()
		return nil, err
	}
	return rec, nil
}

func (s *Service) recommend(ctx context.Context, req RecommendRequest) (*Recommendation, error) {
	submissionID := strings.TrimSpace(req.SubmissionID)
	culture := strings.TrimSpace(req.Culture)
	if submissionID == "" || culture == "" {
		return nil, apperrors.New(apperrors.ErrCodeMissingParameter, "missing submission_id or culture").
			WithReason(ReasonMissingParams)
	}

	labels := NormalizeLabels([]string{culture}, true)
	filter := formula.Match{Field: fieldCulture, CaseInsensitive: true}.Build(labels)

	recs, err := s.store.FetchMany(ctx, s.tables.Dishes, filter)
	if err != nil {
		return nil, err
	}
	candidateDishes.WithLabelValues(opRecommend).Observe(float64(len(recs)))

	chosen, err := sampler.SampleWith(s.intn, s.recommendPolicy, recs)
	if err != nil {
		if apperrors.IsCode(err, apperrors.ErrCodeInsufficientResults) {
			return nil, apperrors.NewWithContext(apperrors.ErrCodeInsufficientResults,
				fmt.Sprintf("not enough dishes for culture '%s'", culture),
				map[string]any{
					"culture":  culture,
					"required": s.recommendPolicy.Min,
					"found":    len(recs),
				}).WithReason(ReasonNotEnoughDishes)
		}
		return nil, err
	}

	dishes := make([]Dish, 0, len(chosen))
	ids := make([]string, 0, len(chosen))
	for _, r := range chosen {
		dishes = append(dishes, toDish(r))
		ids = append(ids, r.ID)
	}

	attrs := []any{
		"submission_id", submissionID,
		"culture", culture,
		"candidates", len(recs),
		"dish_ids", ids,
	}
	if req.Source != nil {
		attrs = append(attrs, "source", *req.Source)
	}
	if req.SubmittedAt != nil {
		attrs = append(attrs, "submitted_at", *req.SubmittedAt)
	}
	slog.InfoContext(ctx, "recommendation created", attrs...)

	return &Recommendation{
		OK:           true,
		SubmissionID: submissionID,
		Culture:      culture,
		Count:        len(dishes),
		Dishes:       dishes,
		DishIDs:      ids,
	}, nil
}
