// Package snapshot copies the knowledge files to an S3-compatible bucket so
// admin edits can be rolled back by hand.
package snapshot

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type Config struct {
	Bucket    string
	Prefix    string
	Region    string
	Endpoint  string // optional, e.g. MinIO
	AccessKey string // optional, falls back to the default credential chain
	SecretKey string
}

// ObjectPutter is the slice of the S3 client the uploader needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type Uploader struct {
	client ObjectPutter
	bucket string
	prefix string
	now    func() time.Time
}

// Result lists the object keys written by one Upload.
type Result struct {
	Bucket    string    `json:"bucket"`
	Keys      []string  `json:"keys"`
	CreatedAt time.Time `json:"created_at"`
}

func New(ctx context.Context, cfg Config) (*Uploader, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("snapshot bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.UsePathStyle = true
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return NewWithClient(client, cfg.Bucket, cfg.Prefix), nil
}

func NewWithClient(client ObjectPutter, bucket, prefix string) *Uploader {
	return &Uploader{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		now:    time.Now,
	}
}

// Upload reads every file (name to local path) and writes it under
// prefix/<timestamp>/<name>. Files are read before anything is written so a
// missing file uploads nothing.
func (u *Uploader) Upload(ctx context.Context, files map[string]string) (*Result, error) {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	contents := make(map[string][]byte, len(files))
	for _, name := range names {
		data, err := os.ReadFile(files[name])
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", files[name], err)
		}
		contents[name] = data
	}

	at := u.now().UTC()
	stamp := at.Format("20060102T150405Z")
	result := &Result{Bucket: u.bucket, CreatedAt: at}

	for _, name := range names {
		key := path.Join(u.prefix, stamp, name)
		_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(u.bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(contents[name]),
			ContentType: aws.String(contentType(name)),
		})
		if err != nil {
			return result, fmt.Errorf("failed to upload %s: %w", key, err)
		}
		result.Keys = append(result.Keys, key)
	}
	return result, nil
}

func contentType(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".json":
		return "application/json"
	case ".csv":
		return "text/csv"
	case ".yaml", ".yml":
		return "application/yaml"
	}
	return "application/octet-stream"
}
