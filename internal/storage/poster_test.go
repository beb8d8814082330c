package storage

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-sdk-go/service/s3/s3manager/s3manageriface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock uploader ---

type mockUploader struct {
	s3manageriface.UploaderAPI
	uploadFn func(ctx aws.Context, input *s3manager.UploadInput) (*s3manager.UploadOutput, error)
}

func (m *mockUploader) UploadWithContext(ctx aws.Context, input *s3manager.UploadInput, _ ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error) {
	return m.uploadFn(ctx, input)
}

// --- Tests ---

func TestPosterKey(t *testing.T) {
	assert.Equal(t, "posters/abc", PosterKey("abc"))
}

func TestS3PosterStore_Put(t *testing.T) {
	var got *s3manager.UploadInput
	var body []byte
	up := &mockUploader{uploadFn: func(ctx aws.Context, input *s3manager.UploadInput) (*s3manager.UploadOutput, error) {
		got = input
		body, _ = io.ReadAll(input.Body)
		return &s3manager.UploadOutput{Location: "https://bucket.s3/posters/abc"}, nil
	}}

	loc, err := NewS3PosterStore(up, "evently-posters").Put(context.Background(), "posters/abc", []byte("img"), "image/png")

	require.NoError(t, err)
	assert.Equal(t, "https://bucket.s3/posters/abc", loc)
	assert.Equal(t, "evently-posters", aws.StringValue(got.Bucket))
	assert.Equal(t, "posters/abc", aws.StringValue(got.Key))
	assert.Equal(t, "image/png", aws.StringValue(got.ContentType))
	assert.Equal(t, []byte("img"), body)
}

func TestS3PosterStore_PutError(t *testing.T) {
	up := &mockUploader{uploadFn: func(ctx aws.Context, input *s3manager.UploadInput) (*s3manager.UploadOutput, error) {
		return nil, errors.New("access denied")
	}}

	_, err := NewS3PosterStore(up, "b").Put(context.Background(), "posters/x", nil, "image/png")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
}

func TestMemoryPosterStore(t *testing.T) {
	store := NewMemoryPosterStore()

	loc, err := store.Put(context.Background(), "posters/a", []byte("one"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "mem://posters/a", loc)

	_, err = store.Put(context.Background(), "posters/a", []byte("two"), "image/png")
	require.NoError(t, err)

	body, ct, ok := store.Get("posters/a")
	assert.True(t, ok)
	assert.Equal(t, []byte("two"), body)
	assert.Equal(t, "image/png", ct)

	_, _, ok = store.Get("posters/missing")
	assert.False(t, ok)
}

func TestMemoryPosterStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMemoryPosterStore().Put(ctx, "posters/a", []byte("x"), "image/png")

	assert.ErrorIs(t, err, context.Canceled)
}
