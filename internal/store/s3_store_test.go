package store

import (
	"context"
	"testing"
	"time"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignedURLUsesPresigner(t *testing.T) {
	origPresign := presignGetObject
	defer func() { presignGetObject = origPresign }()

	var gotBucket, gotKey string
	presignGetObject = func(_ *s3.PresignClient, _ context.Context, in *s3.GetObjectInput, _ ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		gotBucket = *in.Bucket
		gotKey = *in.Key
		return &v4.PresignedHTTPRequest{URL: "https://bucket.test/signed?sig=abc"}, nil
	}

	s := &S3EvidenceStore{bucket: "evidence"}
	url, err := s.SignedURL(context.Background(), "anon/1-a.jpg", 15*time.Minute)
	require.NoError(t, err)

	assert.Equal(t, "https://bucket.test/signed?sig=abc", url)
	assert.Equal(t, "evidence", gotBucket)
	assert.Equal(t, "anon/1-a.jpg", gotKey)
}

func TestDisabledEvidenceStore(t *testing.T) {
	var s EvidenceStore = DisabledEvidenceStore{}

	err := s.Upload(context.Background(), "k", nil, "image/jpeg")
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = s.SignedURL(context.Background(), "k", time.Minute)
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = s.List(context.Background(), "", 1)
	assert.ErrorIs(t, err, ErrNotConfigured)
}
