// Package gemini provides the Google Generative Language API client used
// for all content generation: schema-constrained JSON, vision prompts and
// the multi-turn chat handle.
package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/culinaglass/core/internal/infrastructure/ai/schema"
	"go.uber.org/zap"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-2.0-flash"
)

// Client talks to the generateContent endpoint. It is stateless across
// calls and safe for concurrent use; one instance is shared process-wide.
type Client struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
	logger  *zap.Logger
}

// Option configures the Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint, used by tests and proxies.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithModel overrides the default model name.
func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

// WithHTTPTimeout sets the HTTP client timeout.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) { c.client.Timeout = d }
}

// NewClient creates a Gemini client authenticated with apiKey.
func NewClient(apiKey string, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		model:   defaultModel,
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  logger.Named("gemini"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Wire types for the generateContent endpoint.

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	ResponseMimeType string         `json:"responseMimeType,omitempty"`
	ResponseSchema   *schema.Schema `json:"responseSchema,omitempty"`
}

type generateRequest struct {
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	Contents          []content         `json:"contents"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
}

// Generate issues a single schema-constrained generation request. The
// returned text is whatever the provider produced; any JSON parsing and
// field validation happens in the caller.
func (c *Client) Generate(ctx context.Context, prompt string, contract *schema.Schema, imageJPEG []byte) (string, error) {
	parts := make([]part, 0, 2)
	if imageJPEG != nil {
		parts = append(parts, part{InlineData: &inlineData{
			MimeType: "image/jpeg",
			Data:     base64.StdEncoding.EncodeToString(imageJPEG),
		}})
	}
	parts = append(parts, part{Text: prompt})

	req := generateRequest{
		Contents: []content{{Role: "user", Parts: parts}},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   contract,
		},
	}

	resp, err := c.call(ctx, req)
	if err != nil {
		return "", err
	}
	return candidateText(resp), nil
}

// call performs one generateContent round trip.
func (c *Client) call(ctx context.Context, req generateRequest) (*generateResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("provider request failed: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("provider error %d: %s", httpResp.StatusCode, string(respBody))
	}

	var resp generateResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	c.logger.Debug("generateContent call succeeded",
		zap.String("model", c.model),
		zap.Int("prompt_tokens", resp.UsageMetadata.PromptTokenCount),
		zap.Int("candidate_tokens", resp.UsageMetadata.CandidatesTokenCount),
		zap.Int("total_tokens", resp.UsageMetadata.TotalTokenCount),
	)
	return &resp, nil
}

// candidateText concatenates the text parts of the first candidate.
// Returns "" when the provider produced no candidates.
func candidateText(resp *generateResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	var buf bytes.Buffer
	for _, p := range resp.Candidates[0].Content.Parts {
		buf.WriteString(p.Text)
	}
	return buf.String()
}

// ChatSession is a multi-turn conversation handle. It owns its turn
// history and replays it on every send; a failed send leaves the history
// exactly as it was.
type ChatSession struct {
	client            *Client
	systemInstruction string

	mu      sync.Mutex
	history []content
}

// StartChat opens a conversation with a fixed system instruction. Created
// once per assistant-panel lifetime.
func (c *Client) StartChat(systemInstruction string) *ChatSession {
	return &ChatSession{
		client:            c,
		systemInstruction: systemInstruction,
	}
}

// Send appends a user turn, requests the assistant reply and records it.
// On provider failure the pending user turn is rolled back so the handle
// never accumulates unanswered turns.
func (s *ChatSession) Send(ctx context.Context, message string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	turns := append(s.history, content{Role: "user", Parts: []part{{Text: message}}})

	req := generateRequest{
		SystemInstruction: &content{Parts: []part{{Text: s.systemInstruction}}},
		Contents:          turns,
	}
	resp, err := s.client.call(ctx, req)
	if err != nil {
		return "", err
	}

	reply := candidateText(resp)
	s.history = append(turns, content{Role: "model", Parts: []part{{Text: reply}}})
	return reply, nil
}
