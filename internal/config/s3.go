package config

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/vroute/internal/errors"
	"github.com/vango-dev/vroute/pkg/router"
)

const s3Scheme = "s3://"

// maxObjectSize bounds how much of an S3 object is read.
const maxObjectSize = 8 << 20

// ObjectGetter is the subset of *s3.Client used to fetch documents.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Options configures the client built by NewS3Client.
type S3Options struct {
	// Region is the bucket region (e.g., "us-east-1").
	Region string

	// Endpoint overrides the service endpoint for S3-compatible stores.
	Endpoint string

	// AccessKeyID and SecretAccessKey are static credentials.
	// When empty, requests are sent anonymously.
	AccessKeyID     string
	SecretAccessKey string

	// PathStyle addresses buckets as endpoint/bucket instead of bucket.endpoint.
	PathStyle bool
}

// NewS3Client builds an S3 client from static settings.
func NewS3Client(o S3Options) *s3.Client {
	opts := s3.Options{
		Region:       o.Region,
		UsePathStyle: o.PathStyle,
	}
	if o.Endpoint != "" {
		opts.BaseEndpoint = aws.String(o.Endpoint)
	}
	if o.AccessKeyID != "" {
		creds := aws.Credentials{
			AccessKeyID:     o.AccessKeyID,
			SecretAccessKey: o.SecretAccessKey,
			Source:          "vroute",
		}
		opts.Credentials = aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
			return creds, nil
		})
	} else {
		opts.Credentials = aws.AnonymousCredentials{}
	}
	return s3.New(opts)
}

// ParseS3 splits an s3://bucket/key location.
func ParseS3(location string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(location, s3Scheme)
	if !ok {
		return "", "", errors.New("R042").
			WithPath(location).
			WithDetail("Location does not start with " + s3Scheme)
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return "", "", errors.New("R042").
			WithPath(location).
			WithSuggestion("Use the form s3://bucket/path/to/routes.yaml")
	}
	return bucket, key, nil
}

// LoadS3 fetches and decodes the document at an s3://bucket/key location.
// The format is taken from the key's extension.
func LoadS3(ctx context.Context, client ObjectGetter, location string) (router.Config, error) {
	bucket, key, err := ParseS3(location)
	if err != nil {
		return router.Config{}, err
	}
	format, err := FormatOf(path.Base(key))
	if err != nil {
		return router.Config{}, err
	}

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return router.Config{}, errors.New("R042").WithPath(location).Wrap(err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(io.LimitReader(out.Body, maxObjectSize+1))
	if err != nil {
		return router.Config{}, errors.New("R042").WithPath(location).Wrap(err)
	}
	if len(data) > maxObjectSize {
		return router.Config{}, errors.New("R042").
			WithPath(location).
			WithDetail(fmt.Sprintf("Object is larger than %d bytes.", maxObjectSize))
	}

	return Decode(data, format)
}

// Loader loads documents from local files or S3.
type Loader struct {
	// S3 fetches s3:// locations. Required only for those.
	S3 ObjectGetter
}

// Load dispatches on location: s3:// locations go to S3, anything else is
// read from disk.
func (l *Loader) Load(ctx context.Context, location string) (router.Config, error) {
	if !IsS3(location) {
		return LoadFile(location)
	}
	if l.S3 == nil {
		return router.Config{}, errors.New("R042").
			WithPath(location).
			WithDetail("No S3 client configured.")
	}
	return LoadS3(ctx, l.S3, location)
}
