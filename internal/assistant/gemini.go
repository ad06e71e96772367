package assistant

import (
	"bytes"
	"context"
	"encoding/json/v2"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// GeminiClient talks to the Google Generative Language API.
type GeminiClient struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      *slog.Logger

	apiKey  string
	model   string
	baseURL string
}

// NewGeminiClient creates a client for the given API key and model.
// Requests are rate limited to stay well inside the free-tier quota.
func NewGeminiClient(apiKey, model, baseURL string, logger *slog.Logger) *GeminiClient {
	return &GeminiClient{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		// 1 request per 2 seconds, burst of 3
		rateLimiter: rate.NewLimiter(rate.Every(2*time.Second), 3),
		logger:      logger,
		apiKey:      apiKey,
		model:       model,
		baseURL:     baseURL,
	}
}

// Request/response shapes for the generateContent endpoint.

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature float64 `json:"temperature"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent         `json:"systemInstruction,omitempty"`
	Contents          []geminiContent        `json:"contents"`
	GenerationConfig  geminiGenerationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Generate implements Client by calling the generateContent endpoint.
func (c *GeminiClient) Generate(ctx context.Context, systemInstruction string, history []Turn, message string) (string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	contents := make([]geminiContent, 0, len(history)+1)
	for _, turn := range history {
		contents = append(contents, geminiContent{
			Role:  turn.Role,
			Parts: []geminiPart{{Text: turn.Text}},
		})
	}
	contents = append(contents, geminiContent{
		Role:  "user",
		Parts: []geminiPart{{Text: message}},
	})

	reqBody := geminiRequest{
		SystemInstruction: &geminiContent{
			Parts: []geminiPart{{Text: systemInstruction}},
		},
		Contents:         contents,
		GenerationConfig: geminiGenerationConfig{Temperature: 0.7},
	}

	data, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call generateContent: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if c.logger != nil {
			c.logger.Warn("Assistant API returned an error",
				"status", resp.StatusCode,
				"body", string(body),
			)
		}
		return "", fmt.Errorf("generateContent returned status %d", resp.StatusCode)
	}

	var genResp geminiResponse
	if err := json.UnmarshalRead(resp.Body, &genResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if genResp.Error != nil {
		return "", fmt.Errorf("generateContent error %d: %s", genResp.Error.Code, genResp.Error.Message)
	}
	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("generateContent returned no candidates")
	}

	return genResp.Candidates[0].Content.Parts[0].Text, nil
}
