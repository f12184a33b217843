package loader

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dwijnand/servo/internal/errors"
	"github.com/dwijnand/servo/pkg/link"
)

// S3API is the slice of the S3 client the loader needs. *s3.Client
// satisfies it.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3 loads stylesheets addressed as s3://bucket/key. Nested imports
// resolve against the stylesheet's s3 URL, so relative imports stay
// within the bucket.
type S3 struct {
	api      S3API
	logger   *slog.Logger
	maxDepth int
}

// S3Option configures an S3 loader.
type S3Option func(*S3)

// WithS3Logger sets the loader's logger.
func WithS3Logger(logger *slog.Logger) S3Option {
	return func(l *S3) {
		l.logger = logger
	}
}

// WithS3MaxDepth sets the nested-import depth limit (default 8).
func WithS3MaxDepth(depth int) S3Option {
	return func(l *S3) {
		l.maxDepth = depth
	}
}

// NewS3 creates an S3 loader backed by the given API client.
func NewS3(api S3API, opts ...S3Option) *S3 {
	l := &S3{
		api:      api,
		logger:   slog.Default(),
		maxDepth: 8,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load implements link.Loader.
func (l *S3) Load(req link.Request, owner link.Owner) {
	start(req, owner, l.fetch, l.logger, l.maxDepth)
}

func (l *S3) fetch(ctx context.Context, u *url.URL) ([]byte, error) {
	bucket := u.Host
	key := strings.TrimPrefix(u.Path, "/")
	out, err := l.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, errors.New("E025").WithDetail("s3://" + bucket + "/" + key).Wrap(err)
	}
	defer out.Body.Close()
	return io.ReadAll(out.Body)
}
