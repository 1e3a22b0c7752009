package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"changeset-manager/core/batch"
	"changeset-manager/core/storage"

	"github.com/minio/minio-go/v7"
	"golang.org/x/sync/singleflight"
)

// ErrNotFound is returned when a plan does not exist in the archive.
var ErrNotFound = errors.New("archive: plan not found")

// Store reads and writes plan documents.
type Store struct {
	client storage.Client
	bucket string
	prefix string
	sf     singleflight.Group
}

// NewStore creates a plan archive rooted at prefix inside bucket.
func NewStore(client storage.Client, bucket, prefix string) *Store {
	return &Store{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}
}

// Bucket returns the bucket the archive writes to.
func (s *Store) Bucket() string {
	return s.bucket
}

// EnsureBucket creates the archive bucket if it does not exist yet.
func (s *Store) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}
	return nil
}

// Put writes a plan for a collection.
func (s *Store) Put(ctx context.Context, collectionID string, plan *batch.PlanDoc) error {
	data, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to encode plan: %w", err)
	}

	_, err = s.client.PutObject(ctx, s.bucket, s.objectName(collectionID, plan.ID),
		bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("failed to upload plan %s: %w", plan.ID, err)
	}
	return nil
}

// Get reads a plan of a collection.
func (s *Store) Get(ctx context.Context, collectionID, planID string) (*batch.PlanDoc, error) {
	name := s.objectName(collectionID, planID)

	v, err, _ := s.sf.Do(name, func() (interface{}, error) {
		obj, err := s.client.GetObject(ctx, s.bucket, name, minio.GetObjectOptions{})
		if err != nil {
			return nil, translate(err, planID)
		}
		defer obj.Close()

		var plan batch.PlanDoc
		if err := json.NewDecoder(obj).Decode(&plan); err != nil {
			return nil, translate(err, planID)
		}
		return &plan, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*batch.PlanDoc), nil
}

// List returns the plan ids archived for a collection, sorted.
func (s *Store) List(ctx context.Context, collectionID string) ([]string, error) {
	prefix := s.collectionPrefix(collectionID)
	opts := minio.ListObjectsOptions{Prefix: prefix, Recursive: true}

	var ids []string
	for obj := range s.client.ListObjects(ctx, s.bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list plans: %w", obj.Err)
		}
		name := strings.TrimPrefix(obj.Key, prefix)
		if id, ok := strings.CutSuffix(name, ".json"); ok && id != "" {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// Index returns the archived plan ids of every collection found under the
// prefix, keyed by collection id.
func (s *Store) Index(ctx context.Context) (map[string][]string, error) {
	prefix := ""
	if s.prefix != "" {
		prefix = s.prefix + "/"
	}
	opts := minio.ListObjectsOptions{Prefix: prefix, Recursive: true}

	index := make(map[string][]string)
	for obj := range s.client.ListObjects(ctx, s.bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list plans: %w", obj.Err)
		}
		collectionID, name, ok := strings.Cut(strings.TrimPrefix(obj.Key, prefix), "/")
		if !ok || collectionID == "" {
			continue
		}
		if id, ok := strings.CutSuffix(name, ".json"); ok && id != "" && !strings.Contains(id, "/") {
			index[collectionID] = append(index[collectionID], id)
		}
	}
	for _, ids := range index {
		sort.Strings(ids)
	}
	return index, nil
}

// Delete removes a plan from the archive.
func (s *Store) Delete(ctx context.Context, collectionID, planID string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, s.objectName(collectionID, planID), minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove plan %s: %w", planID, err)
	}
	return nil
}

func (s *Store) collectionPrefix(collectionID string) string {
	return path.Join(s.prefix, collectionID) + "/"
}

func (s *Store) objectName(collectionID, planID string) string {
	return s.collectionPrefix(collectionID) + planID + ".json"
}

// translate maps a missing object to ErrNotFound. minio reports a missing
// key lazily, on the first read of the object.
func translate(err error, planID string) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return fmt.Errorf("%w: %s", ErrNotFound, planID)
	}
	return fmt.Errorf("failed to read plan %s: %w", planID, err)
}
