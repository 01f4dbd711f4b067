package server

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/tileforge/vtpost/internal/tilecoord"
)

// S3Fetcher retrieves an encoded tile object from an S3 bucket addressed
// by a z/x/y key layout, grounded on the object-storage tile source
// pattern in mumuon-tile-service's manifest.
type S3Fetcher struct {
	client     *s3.Client
	bucket     string
	keyPattern string // e.g. "tiles/{z}/{x}/{y}.mvt"
}

// NewS3Fetcher loads the default AWS config (environment, shared config
// file, or instance role, in that order) and builds an S3-backed Fetcher.
func NewS3Fetcher(ctx context.Context, bucket, keyPattern string) (*S3Fetcher, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("s3fetch: load aws config: %w", err)
	}
	return &S3Fetcher{
		client:     s3.NewFromConfig(cfg),
		bucket:     bucket,
		keyPattern: keyPattern,
	}, nil
}

func (f *S3Fetcher) Fetch(coord tilecoord.Coord) ([]byte, error) {
	key := expandTemplate(f.keyPattern, coord)
	out, err := f.client.GetObject(context.Background(), &s3.GetObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("s3fetch: get %s/%s: %w", f.bucket, key, err)
	}
	defer out.Body.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, out.Body); err != nil {
		return nil, fmt.Errorf("s3fetch: read %s/%s: %w", f.bucket, key, err)
	}
	return buf.Bytes(), nil
}

var _ Fetcher = (*S3Fetcher)(nil)
