package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

var (
	ErrEmptyCompletion     = errors.New("empty completion from model")
	ErrMalformedCompletion = errors.New("malformed completion from model")
)

type Config struct {
	BaseURL         string
	APIKey          string
	ChatModel       string
	TranscribeModel string
	RequestTimeout  time.Duration
	RequestsPerMin  int
}

// Client talks to an OpenAI-compatible API. It implements both the
// speech-to-text and the status-extraction ports; each call is a single
// attempt with no retry, so a failed call simply leaves the
// transcription pending.
type Client struct {
	baseURL         string
	apiKey          string
	chatModel       string
	transcribeModel string
	httpClient      *http.Client
	limiter         *rate.Limiter
}

func New(cfg Config) *Client {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	chatModel := cfg.ChatModel
	if chatModel == "" {
		chatModel = "gpt-4o-mini"
	}
	transcribeModel := cfg.TranscribeModel
	if transcribeModel == "" {
		transcribeModel = "whisper-1"
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerMin > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMin)), cfg.RequestsPerMin)
	}

	return &Client{
		baseURL:         baseURL,
		apiKey:          cfg.APIKey,
		chatModel:       chatModel,
		transcribeModel: transcribeModel,
		httpClient:      &http.Client{Timeout: timeout},
		limiter:         limiter,
	}
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// ExtractStatus asks the chat model for the five status fields and
// returns the decoded JSON object. Values are untrusted; normalization
// happens downstream.
func (c *Client) ExtractStatus(ctx context.Context, text, projectName, clientName string) (map[string]any, error) {
	request := map[string]any{
		"model": c.chatModel,
		"messages": []map[string]string{
			{"role": "system", "content": extractionSystemPrompt},
			{"role": "user", "content": buildExtractionPrompt(text, projectName, clientName)},
		},
		"temperature":     0.3,
		"response_format": map[string]string{"type": "json_object"},
	}

	var response chatResponse
	if err := c.postJSON(ctx, "/chat/completions", request, &response, "extract_status"); err != nil {
		return nil, err
	}
	if len(response.Choices) == 0 {
		return nil, ErrEmptyCompletion
	}
	content := strings.TrimSpace(response.Choices[0].Message.Content)
	if content == "" {
		return nil, ErrEmptyCompletion
	}

	var extracted map[string]any
	if err := json.Unmarshal([]byte(extractJSONObject(content)), &extracted); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedCompletion, err)
	}
	return extracted, nil
}

// Transcribe sends the payload to the audio transcription endpoint with
// response_format=text and returns the plain transcript.
func (c *Client) Transcribe(ctx context.Context, data []byte, filename, contentType string) (string, error) {
	text, err := c.postTranscription(ctx, data, filename, contentType)
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}

// Some models wrap the object in prose despite JSON mode; take the
// outermost braces.
func extractJSONObject(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		return raw[start : end+1]
	}
	return raw
}
