package collection

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned for unknown collection ids.
	ErrNotFound = errors.New("collection not found")
	// ErrRevisionConflict is returned when a collection changed since the
	// revision a batch was computed against.
	ErrRevisionConflict = errors.New("collection revision conflict")
)

// Repository persists collections with GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a repository on db.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates or updates the collections table.
func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(&Collection{})
}

// Create inserts c at revision 1.
func (r *Repository) Create(ctx context.Context, c *Collection) error {
	c.Revision = 1
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}
	return nil
}

// Get loads a collection by id.
func (r *Repository) Get(ctx context.Context, id string) (*Collection, error) {
	var c Collection
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to load collection %s: %w", id, err)
	}
	return &c, nil
}

// List returns all collections, oldest first.
func (r *Repository) List(ctx context.Context) ([]Collection, error) {
	var cs []Collection
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&cs).Error; err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	return cs, nil
}

// Save writes c's name and layout if the stored revision still equals
// expected, and advances c to the next revision.
func (r *Repository) Save(ctx context.Context, c *Collection, expected int64) error {
	c.Revision = expected + 1

	res := r.db.WithContext(ctx).Model(c).
		Where("revision = ?", expected).
		Select("name", "layout", "revision", "updated_at").
		Updates(c)
	if res.Error != nil {
		c.Revision = expected
		return fmt.Errorf("failed to save collection %s: %w", c.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		c.Revision = expected
		return fmt.Errorf("%w: %s is no longer at revision %d", ErrRevisionConflict, c.ID, expected)
	}
	return nil
}
