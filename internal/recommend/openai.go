package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"alcyxob/wellness-coach/internal/domain"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const systemPrompt = `You are a cycling coach for a single athlete. You receive a JSON snapshot of
the athlete's training state: acute load (ATL), chronic load (CTL), form (TSB),
the current week within an 8-week training block, the next unmatched session
from this week's plan, and recent efficiency and fitness estimates.

Reply with ONLY a JSON object, no markdown fences, in exactly this shape:
{
  "sessionType": one of "vo2max","threshold","endurance","tempo","fun","recovery","off",
  "intensity": one of "hard","moderate","easy","rest",
  "durationMinutes": positive integer,
  "rationale": short string,
  "cautions": optional array of short strings
}

Respect the weekly plan unless form is poor. Week 8 of a block is a deload
week. Never prescribe a hard session when TSB is below -20.`

// openAIEngine asks a chat model for the day's session and validates the
// reply strictly before trusting it.
type openAIEngine struct {
	client openai.Client
	model  openai.ChatModel
}

// NewOpenAIEngine creates an Engine backed by the OpenAI chat completions API.
func NewOpenAIEngine(apiKey string, model string) Engine {
	if model == "" {
		model = openai.ChatModelGPT4o
	}
	return &openAIEngine{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  openai.ChatModel(model),
	}
}

// Recommend serializes the athlete snapshot into the prompt and decodes the
// model's JSON answer. A reply that fails validation returns
// ErrMalformedResponse so the caller can fall back.
func (e *openAIEngine) Recommend(ctx context.Context, rc Context) (*Recommendation, error) {
	snapshot, err := json.Marshal(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode coach context: %w", err)
	}

	completion, err := e.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: e.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(string(snapshot)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}
	if len(completion.Choices) == 0 {
		log.Println("WARN: recommendation reply had no choices")
		return nil, ErrMalformedResponse
	}

	rec, err := decodeRecommendation(completion.Choices[0].Message.Content)
	if err != nil {
		log.Printf("WARN: discarding malformed recommendation reply: %v", err)
		return nil, err
	}
	return rec, nil
}

// decodeRecommendation parses a model reply into a Recommendation. Unknown
// fields, missing required fields, and out-of-enum values all reject the
// reply. Models like to wrap JSON in markdown fences, so those are stripped
// first.
func decodeRecommendation(content string) (*Recommendation, error) {
	content = stripFences(content)

	var raw struct {
		SessionType     *string  `json:"sessionType"`
		Intensity       *string  `json:"intensity"`
		DurationMinutes *int     `json:"durationMinutes"`
		Rationale       *string  `json:"rationale"`
		Cautions        []string `json:"cautions"`
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(content)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if raw.SessionType == nil || raw.Intensity == nil || raw.DurationMinutes == nil || raw.Rationale == nil {
		return nil, fmt.Errorf("%w: missing required field", ErrMalformedResponse)
	}
	rec := &Recommendation{
		SessionType:     domain.SessionType(*raw.SessionType),
		Intensity:       Intensity(*raw.Intensity),
		DurationMinutes: *raw.DurationMinutes,
		Rationale:       *raw.Rationale,
		Cautions:        raw.Cautions,
	}
	if !validSessionType(rec.SessionType) {
		return nil, fmt.Errorf("%w: unknown session type %q", ErrMalformedResponse, *raw.SessionType)
	}
	if !validIntensity(rec.Intensity) {
		return nil, fmt.Errorf("%w: unknown intensity %q", ErrMalformedResponse, *raw.Intensity)
	}
	if rec.DurationMinutes <= 0 {
		return nil, fmt.Errorf("%w: non-positive duration", ErrMalformedResponse)
	}
	if strings.TrimSpace(rec.Rationale) == "" {
		return nil, fmt.Errorf("%w: empty rationale", ErrMalformedResponse)
	}
	return rec, nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}
