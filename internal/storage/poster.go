package storage

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-sdk-go/service/s3/s3manager/s3manageriface"
)

const posterPrefix = "posters/"

// PosterKey is the object key an event's poster is stored under.
func PosterKey(eventID string) string {
	return posterPrefix + eventID
}

type PosterStore interface {
	// Put stores body under key, replacing any previous object, and returns
	// its location.
	Put(ctx context.Context, key string, body []byte, contentType string) (string, error)
}

// NewSession creates an AWS session. A non-empty endpoint targets an
// S3-compatible store such as MinIO and forces path-style addressing.
func NewSession(region, endpoint string) (*session.Session, error) {
	cfg := aws.NewConfig().WithRegion(region)
	if endpoint != "" {
		cfg = cfg.WithEndpoint(endpoint).WithS3ForcePathStyle(true)
	}
	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, fmt.Errorf("aws session: %w", err)
	}
	return sess, nil
}

type S3PosterStore struct {
	bucket   string
	uploader s3manageriface.UploaderAPI
}

func NewS3PosterStore(uploader s3manageriface.UploaderAPI, bucket string) *S3PosterStore {
	return &S3PosterStore{bucket: bucket, uploader: uploader}
}

// NewS3PosterStoreFromSession wires an upload manager on sess.
func NewS3PosterStoreFromSession(sess *session.Session, bucket string) *S3PosterStore {
	return NewS3PosterStore(s3manager.NewUploader(sess), bucket)
}

func (s *S3PosterStore) Put(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	out, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("s3 upload %s: %w", key, err)
	}
	return out.Location, nil
}

type storedPoster struct {
	body        []byte
	contentType string
}

// MemoryPosterStore keeps posters in process memory.
type MemoryPosterStore struct {
	mu      sync.RWMutex
	objects map[string]storedPoster
}

func NewMemoryPosterStore() *MemoryPosterStore {
	return &MemoryPosterStore{objects: make(map[string]storedPoster)}
}

func (m *MemoryPosterStore) Put(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = storedPoster{body: append([]byte(nil), body...), contentType: contentType}
	return "mem://" + key, nil
}

// Get returns a copy of the stored object and whether it exists.
func (m *MemoryPosterStore) Get(key string) ([]byte, string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[key]
	if !ok {
		return nil, "", false
	}
	return append([]byte(nil), obj.body...), obj.contentType, true
}
