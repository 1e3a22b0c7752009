package integrity

import (
	"context"
	"errors"

	"changeset-manager/core/archive"
	"changeset-manager/core/reconcile"
	"changeset-manager/core/storage"
	"changeset-manager/feature/collection"
	"changeset-manager/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNoDatabase is returned by checks that need the database when it is
// unavailable.
var ErrNoDatabase = errors.New("database connection is nil")

// Service runs the infrastructure checks.
type Service struct {
	client storage.Client
	bucket string
	prefix string
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new integrity service. db may be nil when the
// database is unavailable.
func NewService(client storage.Client, bucket, prefix string, logger *zap.Logger, db *gorm.DB) *Service {
	return &Service{
		client: client,
		bucket: bucket,
		prefix: prefix,
		db:     db,
		logger: logger,
	}
}

// CheckStorage inspects the archive bucket.
func (s *Service) CheckStorage(ctx context.Context) (*checks.StorageReport, error) {
	return checks.CheckStorage(ctx, s.client, s.bucket, s.prefix)
}

// FixStorage creates the archive bucket if it is missing.
func (s *Service) FixStorage(ctx context.Context) error {
	if err := archive.NewStore(s.client, s.bucket, s.prefix).EnsureBucket(ctx); err != nil {
		return err
	}
	s.logger.Info("Archive bucket ready", zap.String("bucket", s.bucket))
	return nil
}

// CheckDatabase compares the database schema with the collection model.
func (s *Service) CheckDatabase() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.db, collection.Collection{})
}

// ReconcileArchive compares stored collections with archived plans. With
// purge set, orphaned plans are planned for deletion and, when confirm is
// also set, deleted. It returns the plan and the number of deleted plans.
func (s *Service) ReconcileArchive(ctx context.Context, purge, confirm bool) (*reconcile.Plan, int, error) {
	if s.db == nil {
		return nil, 0, ErrNoDatabase
	}

	// Indices are rebuilt on every call so purges never act on stale data.
	spec := &reconcile.Spec{
		Adapter: &archiveAdapter{
			repo:  collection.NewRepository(s.db),
			store: archive.NewStore(s.client, s.bucket, s.prefix),
		},
	}
	opts := reconcile.Options{DoPurge: purge, Confirmed: confirm}

	plan, executed, err := reconcile.ReconcileAndApply(ctx, spec, opts)
	if err != nil {
		return plan, executed, err
	}

	s.logger.Info("Archive reconciled",
		zap.Int("collections", plan.Summary.TotalCollections),
		zap.Int("orphaned", plan.Summary.Orphaned),
		zap.Int("mismatches", plan.Summary.Mismatches),
		zap.Int("purged", executed),
	)
	return plan, executed, nil
}
