// Package storage uploads images to S3-compatible object storage or to
// local disk and returns their public URL.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	appconfig "petcare/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Provider 存储提供者接口
type Provider interface {
	// Upload stores data and returns its public URL.
	Upload(ctx context.Context, data []byte, filename, contentType string) (string, error)
	Delete(ctx context.Context, url string) error
}

func New(ctx context.Context, cfg appconfig.StorageConfig) (Provider, error) {
	switch cfg.Provider {
	case "s3":
		return NewS3Storage(ctx, cfg)
	case "local", "":
		return NewLocalStorage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage provider: %s", cfg.Provider)
	}
}

// objectKey is basePath/yyyy/mm/dd/<uuid><ext>.
func objectKey(basePath, filename string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".jpg"
	}
	return path.Join(basePath, now.Format("2006/01/02"), uuid.New().String()+ext)
}

// DetectContentType sniffs the first 512 bytes.
func DetectContentType(data []byte) string {
	return http.DetectContentType(data)
}

// ==================== S3 实现 ====================

type S3Storage struct {
	client    *s3.Client
	bucket    string
	region    string
	endpoint  string
	cdnDomain string
	basePath  string
}

// NewS3Storage talks to AWS, or to any S3-compatible endpoint (MinIO, COS)
// with path-style addressing when Endpoint is set.
func NewS3Storage(ctx context.Context, cfg appconfig.StorageConfig) (*S3Storage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	endpoint := strings.TrimRight(cfg.Endpoint, "/")
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Storage{
		client:    client,
		bucket:    cfg.Bucket,
		region:    cfg.Region,
		endpoint:  endpoint,
		cdnDomain: strings.TrimRight(cfg.CDNDomain, "/"),
		basePath:  cfg.BasePath,
	}, nil
}

func (s *S3Storage) Upload(ctx context.Context, data []byte, filename, contentType string) (string, error) {
	key := objectKey(s.basePath, filename, time.Now())
	if contentType == "" {
		contentType = DetectContentType(data)
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("s3 put object: %w", err)
	}
	return s.publicURL(key), nil
}

func (s *S3Storage) Delete(ctx context.Context, url string) error {
	key := s.keyOf(url)
	if key == "" || key == url {
		return fmt.Errorf("url does not belong to bucket %s", s.bucket)
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

func (s *S3Storage) urlPrefix() string {
	switch {
	case s.cdnDomain != "":
		if strings.HasPrefix(s.cdnDomain, "http") {
			return s.cdnDomain + "/"
		}
		return "https://" + s.cdnDomain + "/"
	case s.endpoint != "":
		return s.endpoint + "/" + s.bucket + "/"
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", s.bucket, s.region)
	}
}

func (s *S3Storage) publicURL(key string) string {
	return s.urlPrefix() + key
}

func (s *S3Storage) keyOf(url string) string {
	return strings.TrimPrefix(url, s.urlPrefix())
}

// ==================== 本地磁盘实现 ====================

type LocalStorage struct {
	dir       string
	publicURL string
}

func NewLocalStorage(cfg appconfig.StorageConfig) (*LocalStorage, error) {
	if cfg.LocalDir == "" {
		return nil, fmt.Errorf("storage.local_dir is required for local storage")
	}
	if err := os.MkdirAll(cfg.LocalDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStorage{
		dir:       cfg.LocalDir,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
	}, nil
}

// Dir is served under the public URL by the router.
func (s *LocalStorage) Dir() string { return s.dir }

func (s *LocalStorage) Upload(_ context.Context, data []byte, filename, _ string) (string, error) {
	key := objectKey("", filename, time.Now())
	full := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return s.publicURL + "/" + key, nil
}

func (s *LocalStorage) Delete(_ context.Context, url string) error {
	key := strings.TrimPrefix(url, s.publicURL+"/")
	if key == url || strings.Contains(key, "..") {
		return fmt.Errorf("url is not a local upload: %s", url)
	}
	err := os.Remove(filepath.Join(s.dir, filepath.FromSlash(key)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
