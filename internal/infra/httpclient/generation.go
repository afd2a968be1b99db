package httpclient

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/smart-forensic-ai/sketch-api/internal/config"
	"go.uber.org/zap"
)

// GenerationClient talks to the external sketch generation webhook
// (transcription, attribute parsing, face + sketch generation, validation).
type GenerationClient struct {
	BaseURL     string
	WebhookPath string
	HTTPClient  *http.Client
	Logger      *zap.Logger
}

func NewGenerationClient(cfg *config.Config, log *zap.Logger) *GenerationClient {
	timeout := time.Duration(cfg.Generation.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &GenerationClient{
		BaseURL:     strings.TrimSuffix(cfg.Generation.BaseURL, "/"),
		WebhookPath: cfg.Generation.WebhookPath,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		Logger: log,
	}
}

// ConversationTurn is one prior message sent back to the collaborator for context.
type ConversationTurn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// DescribeRequest is the JSON body for a text description
type DescribeRequest struct {
	Message      string             `json:"message"`
	SessionID    string             `json:"sessionId"`
	Conversation []ConversationTurn `json:"conversation,omitempty"`
}

// AudioRequest carries a voice clip forwarded as multipart form data
type AudioRequest struct {
	SessionID string
	Filename  string
	Body      io.Reader
}

// GeneratedImage is the optional image part of a reply. Image is base64, optionally as a data URL.
type GeneratedImage struct {
	Category string `json:"category"`
	Image    string `json:"image"`
}

// DescribeResponse is the collaborator reply
type DescribeResponse struct {
	Text           string          `json:"text"`
	GeneratedImage *GeneratedImage `json:"generated_image,omitempty"`
}

// Decode returns the raw image bytes and their content type.
func (g *GeneratedImage) Decode() ([]byte, string, error) {
	payload := strings.TrimSpace(g.Image)
	contentType := "image/png"
	if rest, ok := strings.CutPrefix(payload, "data:"); ok {
		header, data, found := strings.Cut(rest, ",")
		if !found {
			return nil, "", fmt.Errorf("malformed data url")
		}
		if mt, _, _ := strings.Cut(header, ";"); mt != "" {
			contentType = mt
		}
		payload = data
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	if len(raw) == 0 {
		return nil, "", fmt.Errorf("empty image")
	}
	return raw, contentType, nil
}

func (c *GenerationClient) endpoint() string {
	return c.BaseURL + c.WebhookPath
}

// Describe posts a text description
func (c *GenerationClient) Describe(ctx context.Context, req DescribeRequest) (*DescribeResponse, error) {
	body, err := sonic.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	return c.do(httpReq, "describe")
}

// DescribeAudio posts a voice clip as the multipart "audio" field
func (c *GenerationClient) DescribeAudio(ctx context.Context, req AudioRequest) (*DescribeResponse, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("sessionId", req.SessionID); err != nil {
		return nil, fmt.Errorf("write sessionId field: %w", err)
	}
	filename := req.Filename
	if filename == "" {
		filename = "recording.webm"
	}
	part, err := mw.CreateFormFile("audio", filename)
	if err != nil {
		return nil, fmt.Errorf("create audio part: %w", err)
	}
	if _, err := io.Copy(part, req.Body); err != nil {
		return nil, fmt.Errorf("copy audio: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())

	return c.do(httpReq, "describe_audio")
}

func (c *GenerationClient) do(httpReq *http.Request, op string) (*DescribeResponse, error) {
	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.Logger.Error(op+" request failed",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", truncate(string(respBody), 512)))
		return nil, fmt.Errorf("request failed with status %d: %s", resp.StatusCode, truncate(string(respBody), 512))
	}

	var result DescribeResponse
	if len(bytes.TrimSpace(respBody)) == 0 {
		return &result, nil
	}
	if err := sonic.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	return &result, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
