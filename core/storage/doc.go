// Package storage provides an abstraction layer over S3 compatible object storage.
//
// It wraps the MinIO Go client behind the Client interface so that the plan
// archive (core/archive) and the integrity checks can be tested against the
// testify mock in core/storage/mocks.
//
// # Operations
//
//   - BucketExists / MakeBucket: bucket bootstrap for the archive.
//   - PutObject / GetObject: write and stream plan documents.
//   - ListObjects: prefix scans over a collection's history.
//   - RemoveObject: drop a single plan.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	exists, err := client.BucketExists(ctx, cfg.Storage.Bucket)
package storage
