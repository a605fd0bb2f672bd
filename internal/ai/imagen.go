package ai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"playbook/internal/metrics"

	"google.golang.org/api/aiplatform/v1"
	"google.golang.org/api/option"
)

type ImagenConfig struct {
	Project  string
	Location string
	Model    string
}

// ImagenClient renders banner images through the Vertex AI predict endpoint.
type ImagenClient struct {
	predictions *aiplatform.ProjectsLocationsPublishersModelsService
	endpoint    string
	metrics     *metrics.Recorder
}

type imagenInstance struct {
	Prompt string `json:"prompt"`
}

type imagenParameters struct {
	SampleCount      int    `json:"sampleCount"`
	AspectRatio      string `json:"aspectRatio"`
	PersonGeneration string `json:"personGeneration"`
	SafetySetting    string `json:"safetySetting"`
	Language         string `json:"language"`
}

type imagenPrediction struct {
	BytesBase64Encoded string `json:"bytesBase64Encoded"`
	MimeType           string `json:"mimeType"`
}

func NewImagenClient(ctx context.Context, cfg ImagenConfig, recorder *metrics.Recorder, opts ...option.ClientOption) (*ImagenClient, error) {
	if cfg.Project == "" {
		return nil, fmt.Errorf("imagen: project is required")
	}
	if cfg.Location == "" {
		cfg.Location = "us-central1"
	}
	if cfg.Model == "" {
		cfg.Model = defaultImageModel
	}

	regional := option.WithEndpoint(fmt.Sprintf("https://%s-aiplatform.googleapis.com/", cfg.Location))
	svc, err := aiplatform.NewService(ctx, append([]option.ClientOption{regional}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("create aiplatform service: %w", err)
	}

	return &ImagenClient{
		predictions: svc.Projects.Locations.Publishers.Models,
		endpoint:    fmt.Sprintf(imagePublisherEndpoint, cfg.Project, cfg.Location, cfg.Model),
		metrics:     recorder,
	}, nil
}

// GenerateBanner returns the PNG bytes of one square image for prompt.
// An empty prediction list means the safety filter rejected the prompt.
func (c *ImagenClient) GenerateBanner(ctx context.Context, prompt string) ([]byte, error) {
	start := time.Now()
	data, err := c.predict(ctx, prompt)
	c.metrics.RecordExternalCall(metrics.ServiceImage, metrics.Outcome(err, IsBlocked), time.Since(start))
	return data, err
}

func (c *ImagenClient) predict(ctx context.Context, prompt string) ([]byte, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, fmt.Errorf("imagen: empty prompt")
	}

	req := &aiplatform.GoogleCloudAiplatformV1PredictRequest{
		Instances: []interface{}{imagenInstance{Prompt: prompt}},
		Parameters: imagenParameters{
			SampleCount:      1,
			AspectRatio:      imageAspectRatio,
			PersonGeneration: imagePersonGeneration,
			SafetySetting:    imageSafetySetting,
			Language:         imagePromptLanguage,
		},
	}

	resp, err := c.predictions.Predict(c.endpoint, req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("imagen predict: %w", err)
	}
	if len(resp.Predictions) == 0 {
		return nil, ErrContentBlocked
	}

	// Predictions arrive as generic JSON values.
	raw, err := json.Marshal(resp.Predictions[0])
	if err != nil {
		return nil, err
	}
	var pred imagenPrediction
	if err := json.Unmarshal(raw, &pred); err != nil {
		return nil, fmt.Errorf("decode prediction: %w", err)
	}
	if pred.BytesBase64Encoded == "" {
		return nil, ErrContentBlocked
	}

	img, err := base64.StdEncoding.DecodeString(pred.BytesBase64Encoded)
	if err != nil {
		return nil, fmt.Errorf("decode image bytes: %w", err)
	}
	return img, nil
}
