package collection

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"changeset-manager/core/batch"
	"changeset-manager/core/changeset"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrInvalid is returned for malformed create requests.
	ErrInvalid = errors.New("invalid collection")
	// ErrArchiveDisabled is returned by plan lookups when archiving is off.
	ErrArchiveDisabled = errors.New("plan archive disabled")
)

// Store persists collections.
type Store interface {
	Create(ctx context.Context, c *Collection) error
	Get(ctx context.Context, id string) (*Collection, error)
	List(ctx context.Context) ([]Collection, error)
	Save(ctx context.Context, c *Collection, expected int64) error
}

// PlanArchive keeps the rendered plans of submitted batches.
type PlanArchive interface {
	Put(ctx context.Context, collectionID string, plan *batch.PlanDoc) error
	Get(ctx context.Context, collectionID, planID string) (*batch.PlanDoc, error)
	List(ctx context.Context, collectionID string) ([]string, error)
}

// Service applies batches to collections.
type Service struct {
	store   Store
	archive PlanArchive
	logger  *zap.Logger
	newKey  func() string
}

// NewService creates a collection service. archive may be nil to disable
// plan archiving.
func NewService(store Store, archive PlanArchive, logger *zap.Logger) *Service {
	return &Service{
		store:   store,
		archive: archive,
		logger:  logger,
		newKey:  uuid.NewString,
	}
}

// Create stores a new collection with counts[s] fresh items in section s.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Collection, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalid)
	}
	for sec, n := range req.Counts {
		if n < 0 {
			return nil, fmt.Errorf("%w: section %d has %d items", changeset.ErrNegativeCount, sec, n)
		}
	}

	layout := make([][]string, len(req.Counts))
	for sec, n := range req.Counts {
		layout[sec] = make([]string, n)
		for i := range layout[sec] {
			layout[sec][i] = s.newKey()
		}
	}

	c := &Collection{ID: uuid.NewString(), Name: name, Layout: layout}
	if err := s.store.Create(ctx, c); err != nil {
		return nil, err
	}
	s.logger.Info("Collection created", zap.String("id", c.ID), zap.Ints("counts", req.Counts))
	return c, nil
}

// Get loads a collection.
func (s *Service) Get(ctx context.Context, id string) (*Collection, error) {
	return s.store.Get(ctx, id)
}

// List loads all collections.
func (s *Service) List(ctx context.Context) ([]Collection, error) {
	return s.store.List(ctx)
}

// Submit validates a batch against the collection, applies it and stores the
// result under the next revision. The returned plan describes the update.
func (s *Service) Submit(ctx context.Context, id string, sub Submission) (*batch.PlanDoc, *Collection, error) {
	c, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if sub.Revision != c.Revision {
		return nil, nil, fmt.Errorf("%w: batch targets revision %d, collection is at %d",
			ErrRevisionConflict, sub.Revision, c.Revision)
	}

	oldCounts := changeset.Counts(c.Layout)
	b, err := batch.Build(oldCounts, &batch.Request{
		NewCounts:  sub.NewCounts,
		ReloadData: sub.ReloadData,
		Edits:      sub.Edits,
	})
	if err != nil {
		return nil, nil, err
	}
	res, err := b.Finalize(sub.NewCounts)
	if err != nil {
		return nil, nil, err
	}

	layout, err := changeset.Apply(c.Layout, res, func(changeset.ItemIndex) string { return s.newKey() })
	if err != nil {
		return nil, nil, fmt.Errorf("failed to apply batch to %s: %w", id, err)
	}

	c.Layout = layout
	if err := s.store.Save(ctx, c, sub.Revision); err != nil {
		return nil, nil, err
	}

	plan := batch.NewPlanDoc(res)
	summary := res.Summary()
	s.logger.Info("Batch applied",
		zap.String("collection", id),
		zap.String("plan", plan.ID),
		zap.Int64("revision", c.Revision),
		zap.Bool("reload_data", plan.ReloadData),
		zap.Int("deleted_sections", summary.DeletedSections),
		zap.Int("inserted_sections", summary.InsertedSections),
		zap.Int("deleted_items", summary.DeletedItems),
		zap.Int("inserted_items", summary.InsertedItems),
	)

	// The collection is already committed; a failed archive write only loses history.
	if s.archive != nil {
		if err := s.archive.Put(ctx, id, plan); err != nil {
			s.logger.Warn("Failed to archive plan", zap.String("collection", id), zap.String("plan", plan.ID), zap.Error(err))
		}
	}

	return plan, c, nil
}

// Plans lists the archived plan ids of a collection.
func (s *Service) Plans(ctx context.Context, id string) ([]string, error) {
	if s.archive == nil {
		return nil, ErrArchiveDisabled
	}
	if _, err := s.store.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.archive.List(ctx, id)
}

// Plan loads one archived plan of a collection.
func (s *Service) Plan(ctx context.Context, id, planID string) (*batch.PlanDoc, error) {
	if s.archive == nil {
		return nil, ErrArchiveDisabled
	}
	return s.archive.Get(ctx, id, planID)
}
