package checks

import (
	"context"
	"errors"
	"testing"

	"changeset-manager/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCheckStorage(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "changesets").Return(true, nil)
	client.On("ListObjects", mock.Anything, "changesets",
		mock.MatchedBy(func(o minio.ListObjectsOptions) bool { return o.Prefix == "plans/" })).
		Return(mocks.Objects(
			minio.ObjectInfo{Key: "plans/c-1/p-1.json"},
			minio.ObjectInfo{Key: "plans/c-1/p-2.json"},
			minio.ObjectInfo{Key: "plans/readme.txt"},
		))

	report, err := CheckStorage(context.Background(), client, "changesets", "/plans/")
	require.NoError(t, err)
	assert.Equal(t, &StorageReport{Bucket: "changesets", Exists: true, Plans: 2, Status: "ok"}, report)
}

func TestCheckStorage_MissingBucket(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "changesets").Return(false, nil)

	report, err := CheckStorage(context.Background(), client, "changesets", "plans")
	require.NoError(t, err)
	assert.False(t, report.Exists)
	assert.Equal(t, "missing", report.Status)
	client.AssertNotCalled(t, "ListObjects", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckStorage_Errors(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "down").Return(false, errors.New("dial tcp: refused"))
	client.On("BucketExists", mock.Anything, "denied").Return(true, nil)
	client.On("ListObjects", mock.Anything, "denied", mock.Anything).
		Return(mocks.Objects(minio.ObjectInfo{Err: errors.New("access denied")}))

	_, err := CheckStorage(context.Background(), client, "down", "plans")
	assert.ErrorContains(t, err, "refused")

	_, err = CheckStorage(context.Background(), client, "denied", "plans")
	assert.ErrorContains(t, err, "access denied")
}
