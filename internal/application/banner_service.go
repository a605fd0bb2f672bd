package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"playbook/internal/integration"
	"playbook/internal/metrics"
	"playbook/internal/models"
)

// BannerService owns the image half of the artifact cache.
type BannerService struct {
	objects    ObjectStore
	images     ImageGenerator
	thumbnails Thumbnailer
	prefix     string
	metrics    *metrics.Recorder
	logger     Logger
}

func NewBannerService(objects ObjectStore, images ImageGenerator, thumbnails Thumbnailer, prefix string, recorder *metrics.Recorder, logger Logger) *BannerService {
	return &BannerService{
		objects:    objects,
		images:     images,
		thumbnails: thumbnails,
		prefix:     prefix,
		metrics:    recorder,
		logger:     logger,
	}
}

// EnsureBanner returns a reference to the stored banner of a play, generating
// and uploading it when absent. Every failure yields the placeholder and
// leaves the store untouched so a later request can retry.
func (s *BannerService) EnsureBanner(ctx context.Context, gamePK int, playID, imagePrompt string) models.BannerRef {
	name := models.BannerObjectName(s.prefix, gamePK, playID)

	exists, err := s.objects.Exists(ctx, name)
	if err != nil {
		s.logger.Warn("banner %s: existence check failed: %v", name, err)
	}
	if exists {
		s.metrics.RecordCacheLookup(metrics.ArtifactBanner, true)
		return models.StoredBanner(gamePK, playID)
	}
	s.metrics.RecordCacheLookup(metrics.ArtifactBanner, false)

	if strings.TrimSpace(imagePrompt) == "" {
		return models.PlaceholderBanner(gamePK, playID)
	}

	data, err := s.images.GenerateBanner(ctx, imagePrompt)
	if err != nil {
		s.logger.Warn("banner %s: generation failed: %v", name, err)
		return models.PlaceholderBanner(gamePK, playID)
	}
	if len(data) == 0 {
		s.logger.Warn("banner %s: generator returned no image", name)
		return models.PlaceholderBanner(gamePK, playID)
	}

	if err := s.objects.Upload(ctx, name, data); err != nil {
		s.logger.Error("banner %s: upload failed: %v", name, err)
		return models.PlaceholderBanner(gamePK, playID)
	}

	s.logger.Debug("banner %s: stored %d bytes", name, len(data))
	return models.StoredBanner(gamePK, playID)
}

// Banner reads a stored banner, optionally downsized for list views.
func (s *BannerService) Banner(ctx context.Context, gamePK int, playID string, thumbnail bool) ([]byte, error) {
	name := models.BannerObjectName(s.prefix, gamePK, playID)

	data, err := s.objects.Download(ctx, name)
	if errors.Is(err, integration.ErrObjectNotFound) {
		return nil, ErrBannerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("download banner: %w", err)
	}

	if !thumbnail || s.thumbnails == nil {
		return data, nil
	}
	thumb, err := s.thumbnails.Thumbnail(data)
	if err != nil {
		s.logger.Warn("banner %s: thumbnail failed, serving original: %v", name, err)
		return data, nil
	}
	return thumb, nil
}
