package reconcile

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockAdapter struct {
	name    string
	db      map[string]Entry
	storage map[string][]string
	dbErr   error
	loads   atomic.Int32
	deleted []string
	failOn  string
}

func (m *mockAdapter) Name() string {
	if m.name == "" {
		return "mock"
	}
	return m.name
}

func (m *mockAdapter) LoadDBIndex(context.Context) (map[string]Entry, error) {
	m.loads.Add(1)
	return m.db, m.dbErr
}

func (m *mockAdapter) LoadStorageIndex(context.Context) (map[string][]string, error) {
	return m.storage, nil
}

func (m *mockAdapter) DeletePlan(_ context.Context, collectionID, planID string) error {
	if planID == m.failOn {
		return errors.New("remove failed")
	}
	m.deleted = append(m.deleted, collectionID+"/"+planID)
	return nil
}

// readOnly hides the Mutator implementation.
type readOnly struct{ inner *mockAdapter }

func (r readOnly) Name() string { return r.inner.Name() }

func (r readOnly) LoadDBIndex(ctx context.Context) (map[string]Entry, error) {
	return r.inner.LoadDBIndex(ctx)
}

func (r readOnly) LoadStorageIndex(ctx context.Context) (map[string][]string, error) {
	return r.inner.LoadStorageIndex(ctx)
}

func sampleAdapter() *mockAdapter {
	return &mockAdapter{
		db: map[string]Entry{
			"a": {Name: "alpha", Revision: 3},
			"b": {Name: "beta", Revision: 2},
			"c": {Name: "fresh", Revision: 1},
		},
		storage: map[string][]string{
			"a": {"p1", "p2"},
			"b": {"p3", "p4"},
			"z": {"p5", "p6"},
		},
	}
}

func TestEntry_ExpectedPlans(t *testing.T) {
	assert.Equal(t, 0, Entry{Revision: 0}.ExpectedPlans())
	assert.Equal(t, 0, Entry{Revision: 1}.ExpectedPlans())
	assert.Equal(t, 4, Entry{Revision: 5}.ExpectedPlans())
}

func TestReconcileAll(t *testing.T) {
	results, err := ReconcileAll(context.Background(), &Spec{Adapter: sampleAdapter()})
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.Equal(t, Result{ID: "a", Name: "alpha", DBPresent: true, StoragePresent: true, Revision: 3, Archived: 2, Mismatch: []string{}}, results[0])
	assert.Equal(t, []string{"plans: archived=2 expected=1"}, results[1].Mismatch)
	assert.Equal(t, "c", results[2].ID)
	assert.False(t, results[2].StoragePresent)
	assert.Empty(t, results[2].Mismatch)
	assert.Equal(t, Result{ID: "z", StoragePresent: true, Archived: 2, Mismatch: []string{}}, results[3])
}

func TestReconcileOne(t *testing.T) {
	spec := &Spec{Adapter: sampleAdapter()}

	r, err := ReconcileOne(context.Background(), spec, "b")
	require.NoError(t, err)
	assert.Equal(t, int64(2), r.Revision)

	_, err = ReconcileOne(context.Background(), spec, "missing")
	assert.ErrorContains(t, err, "not found")
}

func TestBuildCache_Error(t *testing.T) {
	adapter := sampleAdapter()
	adapter.dbErr = errors.New("db error")

	_, err := BuildCache(context.Background(), &Spec{Adapter: adapter})
	assert.ErrorContains(t, err, "db error")
}

func TestGetOrBuildCache_TTL(t *testing.T) {
	adapter := sampleAdapter()
	adapter.name = "ttl"
	spec := &Spec{Adapter: adapter, CacheTTL: time.Hour}
	t.Cleanup(func() { InvalidateCache(spec) })

	_, err := GetOrBuildCache(context.Background(), spec)
	require.NoError(t, err)
	_, err = GetOrBuildCache(context.Background(), spec)
	require.NoError(t, err)
	assert.Equal(t, int32(1), adapter.loads.Load())

	InvalidateCache(spec)
	_, err = GetOrBuildCache(context.Background(), spec)
	require.NoError(t, err)
	assert.Equal(t, int32(2), adapter.loads.Load())
}

func TestCache_IsExpired(t *testing.T) {
	assert.True(t, (&Cache{}).IsExpired())
	assert.False(t, (&Cache{Built: time.Now(), TTL: time.Minute}).IsExpired())
	assert.True(t, (&Cache{Built: time.Now().Add(-time.Hour), TTL: time.Minute}).IsExpired())
}
