package supabase

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	storage "github.com/supabase-community/storage-go"
)

type StorageClient struct {
	client  *storage.Client
	bucket  string
	baseURL string
}

func NewStorageClient(supabaseURL, serviceRoleKey, bucket string) *StorageClient {
	baseURL := strings.TrimSuffix(supabaseURL, "/")
	client := storage.NewClient(baseURL+"/storage/v1", serviceRoleKey, nil)

	return &StorageClient{
		client:  client,
		bucket:  bucket,
		baseURL: baseURL,
	}
}

// Upload stores data under path without overwriting an existing object and
// returns its public URL.
func (s *StorageClient) Upload(path, contentType string, data []byte) (string, error) {
	upsert := false
	_, err := s.client.UploadFile(s.bucket, path, bytes.NewReader(data), storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return s.PublicURL(path), nil
}

func (s *StorageClient) Remove(path string) error {
	if _, err := s.client.RemoveFile(s.bucket, []string{path}); err != nil {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}

func (s *StorageClient) PublicURL(path string) string {
	return PublicURL(s.baseURL, s.bucket, path)
}

// PathFromURL recovers the object path from a public URL issued for this
// bucket.
func (s *StorageClient) PathFromURL(publicURL string) (string, error) {
	return PathFromURL(s.bucket, publicURL)
}

func PublicURL(baseURL, bucket, path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", strings.TrimSuffix(baseURL, "/"), bucket, path)
}

func PathFromURL(bucket, publicURL string) (string, error) {
	marker := "/storage/v1/object/public/" + bucket + "/"
	idx := strings.Index(publicURL, marker)
	if idx < 0 {
		return "", fmt.Errorf("url is not a public object in bucket %q", bucket)
	}

	path := publicURL[idx+len(marker):]
	if q := strings.IndexAny(path, "?#"); q >= 0 {
		path = path[:q]
	}
	if unescaped, err := url.PathUnescape(path); err == nil {
		path = unescaped
	}
	if path == "" {
		return "", fmt.Errorf("url has an empty object path")
	}
	return path, nil
}
