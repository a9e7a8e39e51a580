package protocols

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"protocolkb/internal/blob"
)

// BlobObjectStore adapts a blob.Store to the ObjectStore contract. Metadata
// values are flattened to strings on the way in.
type BlobObjectStore struct {
	store     blob.Store
	urlExpiry time.Duration
}

var _ ObjectStore = (*BlobObjectStore)(nil)

// NewBlobObjectStore wraps store; urlExpiry <= 0 uses the blob default.
func NewBlobObjectStore(store blob.Store, urlExpiry time.Duration) *BlobObjectStore {
	return &BlobObjectStore{store: store, urlExpiry: urlExpiry}
}

func (s *BlobObjectStore) Put(ctx context.Context, key string, payload []byte, contentType string, metadata map[string]any) (ExportArtifact, error) {
	info, err := s.store.Put(ctx, key, bytes.NewReader(payload), blob.PutOptions{
		ContentType: contentType,
		Metadata:    flattenMetadata(metadata),
	})
	if err != nil {
		return ExportArtifact{}, err
	}
	artifact := artifactFromInfo(info)
	url, err := s.store.PresignURL(ctx, key, blob.SignedURLOptions{Expiry: s.urlExpiry})
	switch {
	case err == nil:
		artifact.URL = url
	case !errors.Is(err, blob.ErrUnsupported):
		return ExportArtifact{}, fmt.Errorf("presign %s: %w", key, err)
	}
	return artifact, nil
}

func (s *BlobObjectStore) Get(ctx context.Context, key string) (ExportArtifact, []byte, error) {
	info, rc, err := s.store.Get(ctx, key)
	if err != nil {
		return ExportArtifact{}, nil, err
	}
	defer rc.Close()
	payload, err := io.ReadAll(rc)
	if err != nil {
		return ExportArtifact{}, nil, fmt.Errorf("read %s: %w", key, err)
	}
	return artifactFromInfo(info), payload, nil
}

func (s *BlobObjectStore) Delete(ctx context.Context, key string) (bool, error) {
	return s.store.Delete(ctx, key)
}

func (s *BlobObjectStore) List(ctx context.Context, prefix string) ([]ExportArtifact, error) {
	infos, err := s.store.List(ctx, prefix)
	if err != nil {
		return nil, err
	}
	out := make([]ExportArtifact, len(infos))
	for i, info := range infos {
		out[i] = artifactFromInfo(info)
	}
	return out, nil
}

func artifactFromInfo(info blob.Info) ExportArtifact {
	var md map[string]any
	if len(info.Metadata) > 0 {
		md = make(map[string]any, len(info.Metadata))
		for k, v := range info.Metadata {
			md[k] = v
		}
	}
	return ExportArtifact{
		ID:          info.Key,
		Key:         info.Key,
		ContentType: info.ContentType,
		SizeBytes:   info.Size,
		URL:         info.URL,
		Metadata:    md,
		CreatedAt:   info.LastModified,
	}
}

func flattenMetadata(in map[string]any) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = fmt.Sprint(v)
	}
	return out
}
