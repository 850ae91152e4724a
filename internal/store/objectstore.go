package store

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/iqbaldf/chatline/internal/config"
	"github.com/iqbaldf/chatline/internal/types"
)

// AttachmentStore offloads attachment payloads to object storage so large
// files do not sit base64-encoded inside message records.
type AttachmentStore struct {
	client *minio.Client
	bucket string
}

// NewAttachmentStore connects to MinIO and makes sure the bucket exists
func NewAttachmentStore(ctx context.Context, cfg config.MinioConfig) (*AttachmentStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	s := &AttachmentStore{
		client: client,
		bucket: cfg.Bucket,
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.Bucket, err)
		}
	}
	return s, nil
}

// Offload moves the base64 payload of att into the bucket and rewrites the
// attachment to reference the stored object instead.
func (s *AttachmentStore) Offload(ctx context.Context, att *types.Attachment) error {
	payload, err := base64.StdEncoding.DecodeString(att.Data)
	if err != nil {
		return fmt.Errorf("failed to decode attachment payload: %w", err)
	}

	objectKey := fmt.Sprintf("attachments/%s/%s", att.ID, att.Filename)
	_, err = s.client.PutObject(ctx, s.bucket, objectKey, bytes.NewReader(payload), int64(len(payload)), minio.PutObjectOptions{
		ContentType: att.MimeType,
	})
	if err != nil {
		return fmt.Errorf("failed to store attachment object: %w", err)
	}

	att.ObjectKey = objectKey
	att.Data = ""
	return nil
}
