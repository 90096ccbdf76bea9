// Package genai is a minimal client for the Gemini generateContent REST
// API. Only the JSON-response mode the pantry features need is covered.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
)

// Part is one piece of a request or response content: either text or
// inline binary data (a base64-encoded image).
type Part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *InlineData `json:"inlineData,omitempty"`
}

// InlineData carries base64-encoded bytes with their MIME type.
type InlineData struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

type content struct {
	Parts []Part `json:"parts"`
}

type generationConfig struct {
	ResponseMIMEType string `json:"responseMimeType,omitempty"`
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Config holds client settings.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Client calls the generative AI backend over HTTP.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client. The API key is required.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("missing AI API key")
	}
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com"
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// GenerateJSON sends the given parts to a model with JSON response mode
// enabled and returns the raw response text, with any stray markdown code
// fences stripped, ready for json.Unmarshal.
func (c *Client) GenerateJSON(ctx context.Context, model string, parts []Part) ([]byte, error) {
	reqBody := generateRequest{
		Contents:         []content{{Parts: parts}},
		GenerationConfig: &generationConfig{ResponseMIMEType: "application/json"},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("AI request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read AI response: %w", err)
	}

	var decoded generateResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("failed to parse AI response (status %d): %w", resp.StatusCode, err)
	}
	if decoded.Error != nil {
		return nil, fmt.Errorf("AI backend error (status %d): %s", decoded.Error.Code, decoded.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("AI request failed with status %d", resp.StatusCode)
	}

	var texts []string
	for _, cand := range decoded.Candidates {
		for _, part := range cand.Content.Parts {
			if part.Text != "" {
				texts = append(texts, part.Text)
			}
		}
	}
	if len(texts) == 0 {
		return nil, fmt.Errorf("AI response contained no text")
	}

	return []byte(StripFences(strings.Join(texts, "\n"))), nil
}

var dataURIPattern = regexp.MustCompile(`^data:(image/[a-zA-Z0-9.+-]+)`)

// SplitDataURI splits a raw image string into MIME type and base64 data.
// Accepts both bare base64 and "data:image/...;base64," URIs, defaulting
// the MIME type to image/jpeg.
func SplitDataURI(raw string) (mimeType, data string) {
	prefix, rest, found := strings.Cut(raw, ",")
	if found {
		if m := dataURIPattern.FindStringSubmatch(prefix); m != nil {
			return m[1], rest
		}
		return "image/jpeg", rest
	}
	return "image/jpeg", raw
}

// StripFences removes markdown code fences some models wrap around JSON
// output despite the JSON response mode.
func StripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
