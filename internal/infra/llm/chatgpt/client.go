package chatgpt

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/linjia/ai-closet/pkg/metrics"
)

const defaultBaseURL = "https://api.openai.com/v1"

// Message is a chat message sent to the model. Content is either a plain
// string or a []ContentPart when the message carries an image.
type Message struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

// ContentPart is one element of a multimodal message.
type ContentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

// ImageURL carries an image as a data URI or remote URL.
type ImageURL struct {
	URL string `json:"url"`
}

// TextMessage builds a plain text message.
func TextMessage(role, text string) Message {
	return Message{Role: role, Content: text}
}

// ImageMessage builds a message carrying a prompt and an inline image.
func ImageMessage(role, text, mimeType string, image []byte) Message {
	if strings.TrimSpace(mimeType) == "" {
		mimeType = "image/jpeg"
	}
	uri := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image))
	return Message{
		Role: role,
		Content: []ContentPart{
			{Type: "text", Text: text},
			{Type: "image_url", ImageURL: &ImageURL{URL: uri}},
		},
	}
}

// ResponseFormat requests structured output from the model.
type ResponseFormat struct {
	Type       string      `json:"type"`
	JSONSchema *JSONSchema `json:"json_schema,omitempty"`
}

// JSONSchema names the expected response shape.
type JSONSchema struct {
	Name   string         `json:"name"`
	Strict bool           `json:"strict,omitempty"`
	Schema map[string]any `json:"schema"`
}

// ObjectSchema is a helper to declare a strict object schema where every
// listed property is required.
func ObjectSchema(name string, properties map[string]any) *ResponseFormat {
	required := make([]string, 0, len(properties))
	for key := range properties {
		required = append(required, key)
	}
	return &ResponseFormat{
		Type: "json_schema",
		JSONSchema: &JSONSchema{
			Name:   name,
			Strict: true,
			Schema: map[string]any{
				"type":                 "object",
				"properties":           properties,
				"required":             required,
				"additionalProperties": false,
			},
		},
	}
}

// ChatCompletionRequest is the payload sent to the chat completions API.
type ChatCompletionRequest struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	Temperature    float32         `json:"temperature,omitempty"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

// ChatCompletionResponse captures a non-streaming completion.
type ChatCompletionResponse struct {
	Choices []Choice           `json:"choices"`
	Usage   metrics.TokenUsage `json:"usage"`
}

// Choice is one completion candidate.
type Choice struct {
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
	FinishReason string `json:"finish_reason"`
}

// Content returns the text of the first choice, or "".
func (r ChatCompletionResponse) Content() string {
	if len(r.Choices) == 0 {
		return ""
	}
	return r.Choices[0].Message.Content
}

// EmbeddingRequest asks for vector embeddings. Input is a string or []string.
type EmbeddingRequest struct {
	Model string `json:"model"`
	Input any    `json:"input"`
}

// EmbeddingResponse carries the returned vectors.
type EmbeddingResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
	Usage metrics.TokenUsage `json:"usage"`
}

// Client performs HTTP requests against an OpenAI-compatible API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs an API client.
func NewClient(apiKey, baseURL string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("llm api key cannot be empty")
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

// CreateChatCompletion triggers a sync completion call.
func (c *Client) CreateChatCompletion(ctx context.Context, req ChatCompletionRequest) (ChatCompletionResponse, error) {
	var out ChatCompletionResponse
	body, err := c.doRequest(ctx, "/chat/completions", req)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return out, fmt.Errorf("decode chat completion: %w", err)
	}
	return out, nil
}

// CreateEmbedding requests embedding vectors.
func (c *Client) CreateEmbedding(ctx context.Context, req EmbeddingRequest) (EmbeddingResponse, error) {
	var out EmbeddingResponse
	body, err := c.doRequest(ctx, "/embeddings", req)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return out, fmt.Errorf("decode embedding response: %w", err)
	}
	return out, nil
}

func (c *Client) doRequest(ctx context.Context, path string, payload any) ([]byte, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode llm request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("build llm request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("llm request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("llm request failed: status=%d body=%s", resp.StatusCode, string(body))
	}

	return io.ReadAll(resp.Body)
}

// SanitizeJSON strips markdown fences models sometimes wrap around JSON.
func SanitizeJSON(raw string) string {
	sanitized := strings.TrimSpace(raw)
	sanitized = strings.TrimPrefix(sanitized, "```json")
	sanitized = strings.TrimSuffix(sanitized, "```")
	sanitized = strings.Trim(sanitized, "`")
	return strings.TrimSpace(strings.TrimPrefix(sanitized, "json"))
}
