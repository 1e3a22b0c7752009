package archive

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"testing"

	"changeset-manager/core/batch"
	"changeset-manager/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func samplePlan() *batch.PlanDoc {
	return &batch.PlanDoc{ID: "p-1", OldCounts: []int{1}, NewCounts: []int{2}, SectionMap: []int{0}}
}

func TestStore_Put(t *testing.T) {
	client := new(mocks.Client)
	store := NewStore(client, "changesets", "/plans/")
	plan := samplePlan()

	client.On("PutObject", mock.Anything, "changesets", "plans/c-1/"+plan.ID+".json", mock.Anything, mock.AnythingOfType("int64"),
		mock.MatchedBy(func(o minio.PutObjectOptions) bool { return o.ContentType == "application/json" })).
		Return(minio.UploadInfo{}, nil)

	require.NoError(t, store.Put(context.Background(), "c-1", plan))
	client.AssertExpectations(t)
}

func TestStore_PutError(t *testing.T) {
	client := new(mocks.Client)
	store := NewStore(client, "changesets", "plans")

	client.On("PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, errors.New("connection refused"))

	err := store.Put(context.Background(), "c-1", &batch.PlanDoc{ID: "p-1"})
	assert.ErrorContains(t, err, "connection refused")
}

func TestStore_Get(t *testing.T) {
	client := new(mocks.Client)
	store := NewStore(client, "changesets", "plans")

	want := &batch.PlanDoc{ID: "p-1", OldCounts: []int{2}, NewCounts: []int{3}, SectionMap: []int{0}}
	data, err := json.Marshal(want)
	require.NoError(t, err)

	client.On("GetObject", mock.Anything, "changesets", "plans/c-1/p-1.json", mock.Anything).
		Return(mocks.Body(string(data)), nil)

	got, err := store.Get(context.Background(), "c-1", "p-1")
	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.NewCounts, got.NewCounts)
	assert.Equal(t, want.SectionMap, got.SectionMap)
}

func TestStore_GetNotFound(t *testing.T) {
	client := new(mocks.Client)
	store := NewStore(client, "changesets", "plans")

	client.On("GetObject", mock.Anything, "changesets", "plans/c-1/missing.json", mock.Anything).
		Return(nil, minio.ErrorResponse{Code: "NoSuchKey"})

	_, err := store.Get(context.Background(), "c-1", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_GetCorrupt(t *testing.T) {
	client := new(mocks.Client)
	store := NewStore(client, "changesets", "plans")

	client.On("GetObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(mocks.Body("{not json"), nil)

	_, err := store.Get(context.Background(), "c-1", "p-1")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestStore_GetConcurrent(t *testing.T) {
	client := new(mocks.Client)
	store := NewStore(client, "changesets", "plans")

	body := func() io.ReadCloser { return mocks.Body(`{"id":"p-1"}`) }
	client.On("GetObject", mock.Anything, "changesets", "plans/c-1/p-1.json", mock.Anything).Return(body, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			plan, err := store.Get(context.Background(), "c-1", "p-1")
			assert.NoError(t, err)
			assert.Equal(t, "p-1", plan.ID)
		}()
	}
	wg.Wait()

	// Overlapping reads share one download; the count depends on scheduling.
	calls := 0
	for _, c := range client.Calls {
		if c.Method == "GetObject" {
			calls++
		}
	}
	assert.GreaterOrEqual(t, calls, 1)
	assert.LessOrEqual(t, calls, 8)
}

func TestStore_List(t *testing.T) {
	client := new(mocks.Client)
	store := NewStore(client, "changesets", "plans")

	client.On("ListObjects", mock.Anything, "changesets",
		mock.MatchedBy(func(o minio.ListObjectsOptions) bool { return o.Prefix == "plans/c-1/" && o.Recursive })).
		Return(mocks.Objects(
			minio.ObjectInfo{Key: "plans/c-1/b.json"},
			minio.ObjectInfo{Key: "plans/c-1/a.json"},
			minio.ObjectInfo{Key: "plans/c-1/notes.txt"},
		))

	ids, err := store.List(context.Background(), "c-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)
}

func TestStore_ListError(t *testing.T) {
	client := new(mocks.Client)
	store := NewStore(client, "changesets", "plans")

	client.On("ListObjects", mock.Anything, mock.Anything, mock.Anything).
		Return(mocks.Objects(minio.ObjectInfo{Err: errors.New("access denied")}))

	_, err := store.List(context.Background(), "c-1")
	assert.ErrorContains(t, err, "access denied")
}

func TestStore_Index(t *testing.T) {
	client := new(mocks.Client)
	store := NewStore(client, "changesets", "plans")

	client.On("ListObjects", mock.Anything, "changesets",
		mock.MatchedBy(func(o minio.ListObjectsOptions) bool { return o.Prefix == "plans/" && o.Recursive })).
		Return(mocks.Objects(
			minio.ObjectInfo{Key: "plans/c-2/z.json"},
			minio.ObjectInfo{Key: "plans/c-1/b.json"},
			minio.ObjectInfo{Key: "plans/c-1/a.json"},
			minio.ObjectInfo{Key: "plans/c-1/nested/x.json"},
			minio.ObjectInfo{Key: "plans/stray.json"},
		))

	index, err := store.Index(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{
		"c-1": {"a", "b"},
		"c-2": {"z"},
	}, index)
}

func TestStore_IndexNoPrefix(t *testing.T) {
	client := new(mocks.Client)
	store := NewStore(client, "changesets", "")

	client.On("ListObjects", mock.Anything, "changesets",
		mock.MatchedBy(func(o minio.ListObjectsOptions) bool { return o.Prefix == "" })).
		Return(mocks.Objects(minio.ObjectInfo{Key: "c-1/a.json"}))

	index, err := store.Index(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"c-1": {"a"}}, index)
}

func TestStore_EnsureBucket(t *testing.T) {
	t.Run("exists", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "changesets").Return(true, nil)

		require.NoError(t, NewStore(client, "changesets", "").EnsureBucket(context.Background()))
		client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("created", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "changesets").Return(false, nil)
		client.On("MakeBucket", mock.Anything, "changesets", mock.Anything).Return(nil)

		require.NoError(t, NewStore(client, "changesets", "").EnsureBucket(context.Background()))
		client.AssertExpectations(t)
	})

	t.Run("check fails", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "changesets").Return(false, errors.New("timeout"))

		assert.Error(t, NewStore(client, "changesets", "").EnsureBucket(context.Background()))
	})
}

func TestStore_Delete(t *testing.T) {
	client := new(mocks.Client)
	client.On("RemoveObject", mock.Anything, "changesets", "c-1/p-1.json", mock.Anything).Return(nil)

	require.NoError(t, NewStore(client, "changesets", "").Delete(context.Background(), "c-1", "p-1"))
	client.AssertExpectations(t)
}
