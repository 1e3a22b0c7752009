package checks

import (
	"context"
	"fmt"
	"strings"

	"changeset-manager/core/storage"

	"github.com/minio/minio-go/v7"
)

// StorageReport is the result of the archive bucket check.
type StorageReport struct {
	Bucket string `json:"bucket"`
	Exists bool   `json:"exists"`
	// Plans counts the archived plan documents under the prefix.
	Plans  int    `json:"plans"`
	Status string `json:"status"` // "ok", "missing"
}

// CheckStorage verifies that the archive bucket exists and counts the plans
// stored under prefix.
func CheckStorage(ctx context.Context, client storage.Client, bucket, prefix string) (*StorageReport, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}

	report := &StorageReport{Bucket: bucket, Exists: exists, Status: "missing"}
	if !exists {
		return report, nil
	}
	report.Status = "ok"

	opts := minio.ListObjectsOptions{Prefix: strings.Trim(prefix, "/") + "/", Recursive: true}
	for obj := range client.ListObjects(ctx, bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list plans: %w", obj.Err)
		}
		if strings.HasSuffix(obj.Key, ".json") {
			report.Plans++
		}
	}
	return report, nil
}
