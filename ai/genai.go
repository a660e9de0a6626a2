package ai

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// InlineData carries media bytes (base64) inside a content part.
type InlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

// Part is one piece of a content-generation request: text or inline media.
type Part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *InlineData `json:"inlineData,omitempty"`
}

// GenerateRequest is a single call to the content-generation service.
type GenerateRequest struct {
	SystemInstruction string
	Parts             []Part
	// JSONResponse constrains the service to return a JSON object.
	JSONResponse bool
}

type requestContent struct {
	Parts []Part `json:"parts"`
}

type generateBody struct {
	Contents          []requestContent  `json:"contents"`
	SystemInstruction *requestContent   `json:"systemInstruction,omitempty"`
	GenerationConfig  map[string]string `json:"generationConfig,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Client talks to the generative content service. The service is a black
// box to the rest of the system: text and media parts in, either free text
// or a constrained JSON object out.
type Client struct {
	http    *resty.Client
	baseURL string
	apiKey  string
	model   string
}

// NewClient builds a client from explicit settings.
func NewClient(baseURL, apiKey, model string) *Client {
	return &Client{
		http:    resty.New().SetTimeout(30 * time.Second),
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
	}
}

// NewClientFromEnv reads GENAI_API_URL, GENAI_API_KEY and GENAI_MODEL.
func NewClientFromEnv() *Client {
	baseURL := os.Getenv("GENAI_API_URL")
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	model := os.Getenv("GENAI_MODEL")
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return NewClient(baseURL, os.Getenv("GENAI_API_KEY"), model)
}

// GenerateContent performs one request and returns the first candidate's
// text. Any transport or service failure is surfaced as an error; callers
// decide whether that is fatal for their step.
func (c *Client) GenerateContent(ctx context.Context, req GenerateRequest) (string, error) {
	body := generateBody{Contents: []requestContent{{Parts: req.Parts}}}
	if req.SystemInstruction != "" {
		body.SystemInstruction = &requestContent{Parts: []Part{{Text: req.SystemInstruction}}}
	}
	if req.JSONResponse {
		body.GenerationConfig = map[string]string{"responseMimeType": "application/json"}
	}

	var parsed generateResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetQueryParam("key", c.apiKey).
		SetBody(body).
		SetResult(&parsed).
		SetError(&parsed).
		ForceContentType("application/json").
		Post(fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model))
	if err != nil {
		return "", fmt.Errorf("content service request: %w", err)
	}
	if resp.IsError() {
		msg := resp.Status()
		if parsed.Error != nil && parsed.Error.Message != "" {
			msg = parsed.Error.Message
		}
		return "", fmt.Errorf("content service error: %s", msg)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("content service returned no candidates")
	}
	return strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text), nil
}

// stripFences removes a markdown code fence the service sometimes wraps
// JSON responses in.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}
