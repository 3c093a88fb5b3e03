// Package storage uploads ticket photos to an object storage API and hands
// back publicly dereferenceable URLs.
package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Uploader stores a binary blob under an object name and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, objectName, contentType string, data []byte) (string, error)
}

// HTTPUploader talks to a Supabase-style storage API: objects are created
// under /object/{bucket}/{name} and served from /object/public/{bucket}/{name}.
type HTTPUploader struct {
	client *resty.Client
	bucket string
	logger *zap.Logger
}

// NewHTTPUploader builds the uploader. Photo uploads are on the transactional
// path of ticket intake, so the timeout is generous compared to geocoding.
func NewHTTPUploader(baseURL, bucket, apiKey string, logger *zap.Logger) *HTTPUploader {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(30 * time.Second)
	if apiKey != "" {
		client.SetAuthToken(apiKey)
	}

	return &HTTPUploader{client: client, bucket: bucket, logger: logger}
}

// Upload stores the blob and returns its public URL. Any failure is returned
// to the caller: a ticket with a photo attached is never created without it.
func (u *HTTPUploader) Upload(ctx context.Context, objectName, contentType string, data []byte) (string, error) {
	resp, err := u.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", contentType).
		SetBody(data).
		Post(fmt.Sprintf("/object/%s/%s", u.bucket, objectName))
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", objectName, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("upload %s: storage returned %d", objectName, resp.StatusCode())
	}

	url := fmt.Sprintf("%s/object/public/%s/%s", u.client.BaseURL, u.bucket, objectName)
	u.logger.Debug("photo uploaded", zap.String("object", objectName), zap.String("url", url))
	return url, nil
}
