package attach

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"petcare/config"
	"petcare/domain/shared"
	"petcare/infrastructure/persistence/mysql"
	"petcare/infrastructure/persistence/mysql/mysqltest"
	"petcare/pkg/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 最小的合法 PNG 头
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func newService(t *testing.T, maxSize int64) (*ApplicationService, string) {
	t.Helper()
	dir := t.TempDir()
	local, err := storage.NewLocalStorage(config.StorageConfig{LocalDir: dir, PublicURL: "http://localhost:8080/uploads/"})
	require.NoError(t, err)
	return NewApplicationService(mysql.NewBannerRepository(mysqltest.NewDB(t)), local, maxSize), dir
}

func TestUploadImage(t *testing.T) {
	svc, dir := newService(t, 0)

	res, err := svc.UploadImage(context.Background(), "u1", "cat.PNG", bytes.NewReader(pngHeader))
	require.NoError(t, err)
	assert.Equal(t, "image/png", res.ContentType)
	assert.True(t, strings.HasPrefix(res.URL, "http://localhost:8080/uploads/"))
	assert.True(t, strings.HasSuffix(res.URL, ".png"))

	key := strings.TrimPrefix(res.URL, "http://localhost:8080/uploads/")
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(key)))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, data)
}

func TestUploadImageRejects(t *testing.T) {
	svc, _ := newService(t, 64)
	ctx := context.Background()

	_, err := svc.UploadImage(ctx, "u1", "note.txt", strings.NewReader("plain text"))
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))

	_, err = svc.UploadImage(ctx, "u1", "empty.png", bytes.NewReader(nil))
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))

	big := append(append([]byte{}, pngHeader...), make([]byte, 100)...)
	_, err = svc.UploadImage(ctx, "u1", "big.png", bytes.NewReader(big))
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))
}

func TestBannersLiveWindow(t *testing.T) {
	svc, _ := newService(t, 0)
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	past := now.Add(-48 * time.Hour)
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)

	second, err := svc.CreateBanner(ctx, BannerRequest{Title: "second", Image: "/b.png", Sort: 2, IsActive: true})
	require.NoError(t, err)
	_, err = svc.CreateBanner(ctx, BannerRequest{Title: "first", Image: "/a.png", Sort: 1, IsActive: true, StartAt: &yesterday, EndAt: &tomorrow})
	require.NoError(t, err)
	_, err = svc.CreateBanner(ctx, BannerRequest{Title: "expired", Image: "/c.png", IsActive: true, StartAt: &past, EndAt: &yesterday})
	require.NoError(t, err)
	_, err = svc.CreateBanner(ctx, BannerRequest{Title: "off", Image: "/d.png", IsActive: false})
	require.NoError(t, err)
	_, err = svc.CreateBanner(ctx, BannerRequest{Title: "mall", Image: "/e.png", Position: "mall", IsActive: true})
	require.NoError(t, err)

	live, err := svc.ListLiveBanners(ctx, "")
	require.NoError(t, err)
	require.Len(t, live, 2)
	assert.Equal(t, "first", live[0].Title)
	assert.Equal(t, "second", live[1].Title)

	mall, err := svc.ListLiveBanners(ctx, "mall")
	require.NoError(t, err)
	assert.Len(t, mall, 1)

	_, err = svc.UpdateBanner(ctx, second.ID, BannerRequest{Title: "second", Image: "/b.png", IsActive: false})
	require.NoError(t, err)
	live, err = svc.ListLiveBanners(ctx, "home")
	require.NoError(t, err)
	assert.Len(t, live, 1)

	all, err := svc.ListBanners(ctx, shared.NewPageQuery(1, 20))
	require.NoError(t, err)
	assert.Equal(t, int64(5), all.Total)

	require.NoError(t, svc.DeleteBanner(ctx, second.ID))
	assert.True(t, errors.Is(svc.DeleteBanner(ctx, second.ID), shared.ErrNotFound))
}
