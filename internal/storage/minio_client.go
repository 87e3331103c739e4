package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"

	"socialnetwork/internal/config"
)

const (
	ProfileImagesPrefix = "uploads/profiles"
	PostMediaPrefix     = "uploads/posts"
)

var ErrForeignURL = errors.New("url does not point into the media bucket")

// Object describes a stored upload.
type Object struct {
	Name        string
	URL         string
	ContentType string
}

// Upload is a file received from a client, not yet validated.
type Upload struct {
	FileName string
	Size     int64
	Body     io.Reader
}

type Storage interface {
	UploadProfileImage(ctx context.Context, fullName string, upload Upload) (*Object, error)
	UploadPostMedia(ctx context.Context, title string, upload Upload) (*Object, error)
	DeleteByURL(ctx context.Context, objectURL string) error
}

type MinIOClient struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

func NewMinIOClient(ctx context.Context, cfg config.MinIO) (*MinIOClient, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.BucketName, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.BucketName, err)
		}
		logrus.WithField("bucket", cfg.BucketName).Info("Created media bucket")
	}

	return &MinIOClient{
		client:  client,
		bucket:  cfg.BucketName,
		baseURL: strings.TrimSuffix(cfg.PublicURL, "/") + "/" + cfg.BucketName,
	}, nil
}

func (m *MinIOClient) UploadProfileImage(ctx context.Context, fullName string, upload Upload) (*Object, error) {
	return m.upload(ctx, ProfileImagesPrefix, fullName, upload, ImageTypes)
}

func (m *MinIOClient) UploadPostMedia(ctx context.Context, title string, upload Upload) (*Object, error) {
	return m.upload(ctx, PostMediaPrefix, title, upload, MediaTypes)
}

func (m *MinIOClient) upload(ctx context.Context, prefix, label string, upload Upload, allowed []string) (*Object, error) {
	mime, body, err := DetectContentType(upload.Body, allowed)
	if err != nil {
		return nil, err
	}

	objectName := ObjectName(prefix, label, upload.FileName, mime.Extension())

	_, err = m.client.PutObject(ctx, m.bucket, objectName, body, upload.Size,
		minio.PutObjectOptions{
			ContentType: mime.String(),
			UserMetadata: map[string]string{
				"original-filename": upload.FileName,
				"uploaded-at":       time.Now().Format(time.RFC3339),
			},
		})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to MinIO: %w", err)
	}

	return &Object{
		Name:        objectName,
		URL:         m.baseURL + "/" + objectName,
		ContentType: mime.String(),
	}, nil
}

func (m *MinIOClient) DeleteByURL(ctx context.Context, objectURL string) error {
	objectName, err := ObjectNameFromURL(m.baseURL, objectURL)
	if err != nil {
		return err
	}

	if err := m.client.RemoveObject(ctx, m.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete from MinIO: %w", err)
	}
	return nil
}

// ObjectName builds "<prefix>/<slug(label)>-<uuid><ext>". The extension of the
// detected content type wins; the client's file name is used only when detection
// has none.
func ObjectName(prefix, label, fileName, detectedExt string) string {
	ext := detectedExt
	if ext == "" {
		ext = strings.ToLower(filepath.Ext(fileName))
	}

	name := uuid.New().String() + ext
	if slug := Slugify(label); slug != "" {
		name = slug + "-" + name
	}

	return path.Join(prefix, name)
}

func ObjectNameFromURL(baseURL, objectURL string) (string, error) {
	prefix := strings.TrimSuffix(baseURL, "/") + "/"
	if !strings.HasPrefix(objectURL, prefix) || len(objectURL) == len(prefix) {
		return "", fmt.Errorf("%s: %w", objectURL, ErrForeignURL)
	}
	return strings.TrimPrefix(objectURL, prefix), nil
}
