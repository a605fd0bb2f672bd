package application

import (
	"context"
	"errors"
	"testing"

	"playbook/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBannerFixture() (*BannerService, *fakeObjects, *fakeImages) {
	objects := newFakeObjects()
	images := &fakeImages{}
	return NewBannerService(objects, images, fakeThumbnailer{}, "play_banners", nil, nopLogger{}), objects, images
}

func TestEnsureBannerReturnsStoredBanner(t *testing.T) {
	service, objects, images := newBannerFixture()
	objects.objects["play_banners/747962/abc.png"] = []byte("png")

	ref := service.EnsureBanner(context.Background(), 747962, "abc", "prompt")

	assert.False(t, ref.Placeholder)
	assert.Equal(t, "/api/banners/747962/abc.png", ref.URL)
	assert.Zero(t, images.calls())
}

func TestEnsureBannerGeneratesAndUploads(t *testing.T) {
	service, objects, images := newBannerFixture()

	ref := service.EnsureBanner(context.Background(), 1, "p", "a diving catch")

	assert.False(t, ref.Placeholder)
	assert.Equal(t, []string{"a diving catch"}, images.prompts)
	assert.Equal(t, []byte("png:a diving catch"), objects.objects["play_banners/1/p.png"])

	// The second request is served from the store.
	service.EnsureBanner(context.Background(), 1, "p", "a diving catch")
	assert.Equal(t, 1, images.calls())
}

func TestEnsureBannerGenerationFailureFallsBack(t *testing.T) {
	service, objects, images := newBannerFixture()
	images.err = errors.New("blocked by safety filter")

	ref := service.EnsureBanner(context.Background(), 1, "p", "prompt")

	assert.True(t, ref.Placeholder)
	assert.Equal(t, models.PlaceholderBannerRef, ref.URL)
	assert.Zero(t, objects.count())

	images.err = nil
	ref = service.EnsureBanner(context.Background(), 1, "p", "prompt")
	assert.False(t, ref.Placeholder)
	assert.Equal(t, 1, objects.count())
}

func TestEnsureBannerUploadFailureFallsBack(t *testing.T) {
	service, objects, _ := newBannerFixture()
	objects.uploadErr = errors.New("permission denied")

	ref := service.EnsureBanner(context.Background(), 1, "p", "prompt")
	assert.True(t, ref.Placeholder)
	assert.Zero(t, objects.count())
}

func TestEnsureBannerWithoutPromptSkipsGeneration(t *testing.T) {
	service, _, images := newBannerFixture()

	ref := service.EnsureBanner(context.Background(), 1, "p", " ")
	assert.True(t, ref.Placeholder)
	assert.Zero(t, images.calls())
}

func TestEnsureBannerExistenceCheckFailureGenerates(t *testing.T) {
	service, objects, images := newBannerFixture()
	objects.existsErr = errors.New("timeout")

	ref := service.EnsureBanner(context.Background(), 1, "p", "prompt")
	assert.False(t, ref.Placeholder)
	assert.Equal(t, 1, images.calls())
}

func TestBannerDownload(t *testing.T) {
	service, objects, _ := newBannerFixture()
	objects.objects["play_banners/1/p.png"] = []byte("png")

	data, err := service.Banner(context.Background(), 1, "p", false)
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), data)

	data, err = service.Banner(context.Background(), 1, "p", true)
	require.NoError(t, err)
	assert.Equal(t, []byte("thumb:png"), data)

	_, err = service.Banner(context.Background(), 1, "missing", false)
	assert.ErrorIs(t, err, ErrBannerNotFound)
}

func TestBannerThumbnailFailureServesOriginal(t *testing.T) {
	objects := newFakeObjects()
	objects.objects["1/p.png"] = []byte("png")
	service := NewBannerService(objects, &fakeImages{}, fakeThumbnailer{err: errors.New("bad image")}, "", nil, nopLogger{})

	data, err := service.Banner(context.Background(), 1, "p", true)
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), data)
}
