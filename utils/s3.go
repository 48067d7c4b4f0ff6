package utils

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"os"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// StoredFile is the result of an upload: a public URL plus the object key
// needed to delete the file later.
type StoredFile struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// FileStore uploads and deletes binary attachments on S3-compatible storage
// (Cloudflare R2). It is constructed once and injected into the controllers.
type FileStore struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

// NewFileStore builds a FileStore from R2_* environment variables.
func NewFileStore() (*FileStore, error) {
	accountID := os.Getenv("R2_ACCOUNT_ID")
	accessKey := os.Getenv("R2_ACCESS_KEY_ID")
	secretKey := os.Getenv("R2_SECRET_ACCESS_KEY")
	bucket := os.Getenv("R2_BUCKET_NAME")
	baseURL := strings.TrimRight(os.Getenv("R2_PUBLIC_BASE_URL"), "/")

	if accountID == "" || accessKey == "" || secretKey == "" || bucket == "" {
		return nil, fmt.Errorf("R2_ACCOUNT_ID, R2_ACCESS_KEY_ID, R2_SECRET_ACCESS_KEY and R2_BUCKET_NAME must be set")
	}

	cfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion("auto"), // Required by SDK, R2 ignores this
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load R2 config: %w", err)
	}

	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID)
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})

	return &FileStore{client: client, bucket: bucket, baseURL: baseURL}, nil
}

// UploadBuffer stores data under folder with a random key derived from the
// original filename's extension and returns the public URL and object key.
func (fs *FileStore) UploadBuffer(ctx context.Context, data []byte, folder, filename string) (*StoredFile, error) {
	ext := strings.ToLower(path.Ext(filename))
	key := fmt.Sprintf("%s/%s%s", strings.Trim(folder, "/"), uuid.NewString(), ext)

	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := fs.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(fs.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}

	url := key
	if fs.baseURL != "" {
		url = fs.baseURL + "/" + key
	}
	return &StoredFile{URL: url, PublicID: key}, nil
}

// Delete removes a previously uploaded object by its key.
func (fs *FileStore) Delete(ctx context.Context, publicID string) error {
	_, err := fs.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(fs.bucket),
		Key:    aws.String(publicID),
	})
	if err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}
	return nil
}
