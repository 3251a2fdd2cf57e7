package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/lshigami/storeaudit/config"
	"github.com/rs/zerolog/log"
)

// Object addresses a stored blob.
type Object struct {
	Bucket string
	Key    string
}

// ObjectStore uploads blobs and turns stored objects into links users can open.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) (Object, error)
	URL(ctx context.Context, obj Object) (string, error)
}

type s3Store struct {
	client        *s3.S3
	uploader      *s3manager.Uploader
	bucket        string
	publicBaseURL string
	signedURLTTL  time.Duration
}

// NewS3Store builds a store over any S3-compatible endpoint. With a public
// base URL configured links are plain URLs; otherwise they are presigned.
func NewS3Store(cfg *config.Config) (ObjectStore, error) {
	awsCfg := &aws.Config{
		Region:           aws.String(cfg.Storage.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.Storage.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Storage.Endpoint)
		awsCfg.DisableSSL = aws.Bool(strings.HasPrefix(cfg.Storage.Endpoint, "http://"))
	}
	if cfg.Storage.AccessKey != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(cfg.Storage.AccessKey, cfg.Storage.SecretKey, "")
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage session: %w", err)
	}
	client := s3.New(sess)

	ttl := cfg.Storage.SignedURLTTL
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	if cfg.Storage.PublicBaseURL == "" {
		log.Info().Str("bucket", cfg.Storage.Bucket).Dur("signedURLTTL", ttl).Msg("Object storage configured with signed links")
	}

	return &s3Store{
		client:        client,
		uploader:      s3manager.NewUploaderWithClient(client),
		bucket:        cfg.Storage.Bucket,
		publicBaseURL: strings.TrimRight(cfg.Storage.PublicBaseURL, "/"),
		signedURLTTL:  ttl,
	}, nil
}

func (s *s3Store) Put(ctx context.Context, key, contentType string, data []byte) (Object, error) {
	_, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		log.Error().Err(err).Str("bucket", s.bucket).Str("key", key).Msg("Object upload failed")
		return Object{}, fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return Object{Bucket: s.bucket, Key: key}, nil
}

func (s *s3Store) URL(ctx context.Context, obj Object) (string, error) {
	bucket := obj.Bucket
	if bucket == "" {
		bucket = s.bucket
	}
	key := strings.TrimLeft(obj.Key, "/")
	if key == "" {
		return "", fmt.Errorf("object key is empty")
	}

	if s.publicBaseURL != "" {
		link, err := url.JoinPath(s.publicBaseURL, bucket, key)
		if err != nil {
			return "", fmt.Errorf("failed to build public url for %s/%s: %w", bucket, key, err)
		}
		return link, nil
	}

	req, _ := s.client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	req.SetContext(ctx)
	link, err := req.Presign(s.signedURLTTL)
	if err != nil {
		return "", fmt.Errorf("failed to sign url for %s/%s: %w", bucket, key, err)
	}
	return link, nil
}
