package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestUploadReturnsPublicURL(t *testing.T) {
	var gotPath, gotAuth, gotContentType string
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	uploader := NewHTTPUploader(server.URL, "ticket-images", "key-1", zap.NewNop())
	url, err := uploader.Upload(context.Background(), "abc.jpg", "image/jpeg", []byte{0xFF, 0xD8})
	require.NoError(t, err)

	assert.Equal(t, "/object/ticket-images/abc.jpg", gotPath)
	assert.Equal(t, "Bearer key-1", gotAuth)
	assert.Equal(t, "image/jpeg", gotContentType)
	assert.Equal(t, []byte{0xFF, 0xD8}, gotBody)
	assert.Equal(t, server.URL+"/object/public/ticket-images/abc.jpg", url)
}

func TestUploadStorageFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	uploader := NewHTTPUploader(server.URL, "ticket-images", "", zap.NewNop())
	_, err := uploader.Upload(context.Background(), "abc.jpg", "image/jpeg", []byte{0xFF})
	assert.Error(t, err)
}

func TestUploadUnreachableStorage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	uploader := NewHTTPUploader(server.URL, "ticket-images", "", zap.NewNop())
	_, err := uploader.Upload(context.Background(), "abc.jpg", "image/jpeg", nil)
	assert.Error(t, err)
}
