package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"playbook/internal/metrics"
	"playbook/internal/models"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type GeminiConfig struct {
	APIKey       string
	SummaryModel string
	ChatModel    string
}

// GeminiClient produces play summaries and answers questions about plays.
type GeminiClient struct {
	client  *genai.Client
	summary *genai.GenerativeModel
	chat    *genai.GenerativeModel
	metrics *metrics.Recorder
}

func NewGeminiClient(ctx context.Context, cfg GeminiConfig, recorder *metrics.Recorder, opts ...option.ClientOption) (*GeminiClient, error) {
	opts = append([]option.ClientOption{option.WithAPIKey(cfg.APIKey)}, opts...)
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	summaryName := cfg.SummaryModel
	if summaryName == "" {
		summaryName = defaultSummaryModel
	}
	chatName := cfg.ChatModel
	if chatName == "" {
		chatName = defaultChatModel
	}

	return &GeminiClient{
		client:  client,
		summary: newSummaryModel(client.GenerativeModel(summaryName)),
		chat:    newChatModel(client.GenerativeModel(chatName)),
		metrics: recorder,
	}, nil
}

func newSummaryModel(model *genai.GenerativeModel) *genai.GenerativeModel {
	model.SystemInstruction = genai.NewUserContent(genai.Text(summarySystemInstruction))
	model.SetTemperature(summaryTemperature)
	model.SetTopP(summaryTopP)
	model.SetMaxOutputTokens(summaryMaxTokens)
	model.SafetySettings = summarySafetySettings()
	model.ResponseMIMEType = responseMIMEType
	model.ResponseSchema = summarySchema()
	return model
}

func newChatModel(model *genai.GenerativeModel) *genai.GenerativeModel {
	model.SystemInstruction = genai.NewUserContent(genai.Text(chatSystemInstruction))
	model.SetTemperature(chatTemperature)
	return model
}

func summarySafetySettings() []*genai.SafetySetting {
	return []*genai.SafetySetting{
		{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockOnlyHigh},
		{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockOnlyHigh},
		{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockLowAndAbove},
		{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockMediumAndAbove},
	}
}

func summarySchema() *genai.Schema {
	field := func(description string) *genai.Schema {
		return &genai.Schema{Type: genai.TypeString, Description: description}
	}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title":                     field("A concise title summarizing the play (no longer than 6-7 words)."),
			"setup":                     field("Describes the game context, batter-pitcher matchup, and pre-play strategies."),
			"summary_of_play_events":    field("Breaks down the play step-by-step, including pitch type, swing, and fielding actions."),
			"outcome":                   field("Describes the result of the play and its impact on the game."),
			"overall_strategy_insights": field("Analyzes the broader strategy behind the play and how it fits into the overall game strategy."),
			"image_prompt":              field("A prompt to generate an image summarizing the play events, including batting and pitching team names for accurate jersey representation."),
		},
		Required: []string{"setup", "summary_of_play_events", "outcome", "overall_strategy_insights", "image_prompt"},
	}
}

// GeneratePlaySummary asks the model for a structured English analysis of the play.
// The returned summary has passed Validate; GamePK, PlayID and Language are left to the caller.
func (g *GeminiClient) GeneratePlaySummary(ctx context.Context, play models.Play) (*models.PlaySummary, error) {
	data, err := playData(play)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := g.summary.GenerateContent(ctx, genai.Text(summaryPrompt(data)))
	var summary *models.PlaySummary
	if err == nil {
		summary, err = decodeSummary(resp)
	}
	g.metrics.RecordExternalCall(metrics.ServiceGenerate, metrics.Outcome(err, IsBlocked), time.Since(start))

	switch {
	case err == nil:
		return summary, nil
	case errors.Is(err, ErrContentBlocked):
		return nil, err
	case IsBlocked(err):
		return nil, fmt.Errorf("%w: %v", ErrContentBlocked, err)
	default:
		return nil, fmt.Errorf("generate summary: %w", err)
	}
}

// Ask answers a free-text question about a play in a fresh chat session.
func (g *GeminiClient) Ask(ctx context.Context, play models.Play, summary *models.PlaySummary, question string) (string, error) {
	data, err := playData(play)
	if err != nil {
		return "", err
	}

	summaryText := ""
	if summary != nil {
		raw, err := json.Marshal(summary)
		if err != nil {
			return "", err
		}
		summaryText = string(raw)
	}

	start := time.Now()
	session := g.chat.StartChat()
	resp, err := session.SendMessage(ctx, genai.Text(askPrompt(data, summaryText, question)))
	g.metrics.RecordExternalCall(metrics.ServiceChat, metrics.Outcome(err, IsBlocked), time.Since(start))
	if err != nil {
		if IsBlocked(err) {
			return "", fmt.Errorf("%w: %v", ErrContentBlocked, err)
		}
		return "", fmt.Errorf("ask about play: %w", err)
	}

	answer := responseText(resp)
	if answer == "" {
		return "", ErrEmptyResponse
	}
	return answer, nil
}

func (g *GeminiClient) Close() error {
	return g.client.Close()
}

func playData(play models.Play) ([]byte, error) {
	if len(play.Raw) > 0 {
		return play.Raw, nil
	}
	data, err := json.Marshal(play)
	if err != nil {
		return nil, fmt.Errorf("encode play: %w", err)
	}
	return data, nil
}

func decodeSummary(resp *genai.GenerateContentResponse) (*models.PlaySummary, error) {
	if resp != nil && len(resp.Candidates) > 0 && resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return nil, ErrContentBlocked
	}

	rawText := responseText(resp)
	if rawText == "" {
		return nil, ErrEmptyResponse
	}

	var summary models.PlaySummary
	if err := json.Unmarshal([]byte(rawText), &summary); err != nil {
		return nil, fmt.Errorf("json unmarshal error: %w", err)
	}
	if err := summary.Validate(); err != nil {
		return nil, err
	}
	return &summary, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return strings.TrimSpace(sb.String())
}
