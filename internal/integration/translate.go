package integration

import (
	"context"
	"fmt"
	"time"

	"playbook/internal/metrics"
	"playbook/internal/models"

	"google.golang.org/api/option"
	"google.golang.org/api/translate/v3"
)

const translateMimeType = "text/plain"

// TranslateService wraps Cloud Translation v3.
type TranslateService struct {
	projects *translate.ProjectsLocationsService
	parent   string
	metrics  *metrics.Recorder
}

func NewTranslateService(ctx context.Context, projectID string, recorder *metrics.Recorder, opts ...option.ClientOption) (*TranslateService, error) {
	if projectID == "" {
		return nil, fmt.Errorf("translation project is required")
	}

	srv, err := translate.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve Translate client: %w", err)
	}

	return &TranslateService{
		projects: srv.Projects.Locations,
		parent:   fmt.Sprintf("projects/%s/locations/global", projectID),
		metrics:  recorder,
	}, nil
}

// Translate returns text in the target language. English is returned as is.
func (s *TranslateService) Translate(ctx context.Context, text string, target models.Language) (string, error) {
	if !target.Valid() {
		return "", models.ErrUnsupportedLanguage
	}
	if target == models.English || text == "" {
		return text, nil
	}

	start := time.Now()
	resp, err := s.projects.TranslateText(s.parent, &translate.TranslateTextRequest{
		Contents:           []string{text},
		TargetLanguageCode: target.Code(),
		MimeType:           translateMimeType,
	}).Context(ctx).Do()
	s.metrics.RecordExternalCall(metrics.ServiceTranslate, metrics.Outcome(err, nil), time.Since(start))
	if err != nil {
		return "", fmt.Errorf("translate to %s: %w", target.Code(), err)
	}
	if len(resp.Translations) == 0 {
		return "", fmt.Errorf("translate to %s: empty response", target.Code())
	}
	return resp.Translations[0].TranslatedText, nil
}
