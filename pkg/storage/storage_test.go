package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	appconfig "petcare/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n0000")

func TestLocalStorage_UploadAndDelete(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(appconfig.StorageConfig{LocalDir: dir, PublicURL: "http://localhost:8080/uploads/"})
	require.NoError(t, err)

	url, err := s.Upload(context.Background(), pngHeader, "cat.PNG", "")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "http://localhost:8080/uploads/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	key := strings.TrimPrefix(url, "http://localhost:8080/uploads/")
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(key)))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, data)

	require.NoError(t, s.Delete(context.Background(), url))
	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(key)))
	assert.True(t, os.IsNotExist(err))

	assert.Error(t, s.Delete(context.Background(), "http://elsewhere/a.png"))
	assert.Error(t, s.Delete(context.Background(), "http://localhost:8080/uploads/../etc/passwd"))
}

func TestNew_UnknownProvider(t *testing.T) {
	_, err := New(context.Background(), appconfig.StorageConfig{Provider: "ftp"})
	assert.Error(t, err)
}

func TestS3Storage_UploadToCompatibleEndpoint(t *testing.T) {
	var (
		mu      sync.Mutex
		method  string
		path    string
		ctype   string
		payload []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		method = r.Method
		path = r.URL.Path
		ctype = r.Header.Get("Content-Type")
		payload, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s, err := NewS3Storage(context.Background(), appconfig.StorageConfig{
		Provider:  "s3",
		Bucket:    "pets",
		Region:    "us-east-1",
		Endpoint:  srv.URL,
		AccessKey: "ak",
		SecretKey: "sk",
		BasePath:  "images",
	})
	require.NoError(t, err)

	url, err := s.Upload(context.Background(), pngHeader, "dog.png", "")
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, http.MethodPut, method)
	assert.True(t, strings.HasPrefix(path, "/pets/images/"), path)
	assert.Equal(t, "image/png", ctype)
	assert.Equal(t, pngHeader, payload)
	assert.Equal(t, srv.URL+path, url)
	assert.Equal(t, strings.TrimPrefix(path, "/pets/"), s.keyOf(url))
}

func TestS3Storage_PublicURLPrefersCDN(t *testing.T) {
	s := &S3Storage{bucket: "pets", region: "ap-east-1", cdnDomain: "cdn.example.com"}
	assert.Equal(t, "https://cdn.example.com/a/b.png", s.publicURL("a/b.png"))

	s.cdnDomain = ""
	assert.Equal(t, "https://pets.s3.ap-east-1.amazonaws.com/a/b.png", s.publicURL("a/b.png"))
}
