package openaistt

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	langpkg "logscribe/internal/language"
)

const (
	defaultHTTPTimeout = 5 * time.Minute
	// DefaultModel is the hosted Whisper model name.
	DefaultModel = openai.Whisper1
)

// Config captures the runtime settings required to reach the endpoint.
type Config struct {
	APIKey         string
	BaseURL        string
	Model          string
	Language       string
	TimeoutSeconds int
}

// Client wraps the go-openai audio transcription API.
type Client struct {
	cfg        Config
	httpClient *http.Client
	api        *openai.Client
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New constructs a transcription client.
func New(cfg Config, opts ...Option) *Client {
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = DefaultModel
	}
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	apiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = cfg.BaseURL
	}
	apiCfg.HTTPClient = client.httpClient
	client.api = openai.NewClientWithConfig(apiCfg)
	return client
}

// Model returns the model sent with each request.
func (c *Client) Model() string {
	return c.cfg.Model
}

// Segment is one timed span of a transcription response.
type Segment struct {
	Text  string
	Start float64
	End   float64
}

// TranscribeFile uploads path and returns the transcribed segments.
func (c *Client) TranscribeFile(ctx context.Context, path string) ([]Segment, error) {
	if c == nil || c.api == nil {
		return nil, errors.New("openai transcription client unavailable")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("transcribe: source path required")
	}
	req := openai.AudioRequest{
		Model:    c.cfg.Model,
		FilePath: path,
		Format:   openai.AudioResponseFormatVerboseJSON,
	}
	if lang := strings.TrimSpace(c.cfg.Language); lang != "" && lang != langpkg.Auto {
		req.Language = lang
	}

	resp, err := c.api.CreateTranscription(ctx, req)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return nil, fmt.Errorf("openai transcription: status %d: %s", apiErr.HTTPStatusCode, apiErr.Message)
		}
		return nil, fmt.Errorf("openai transcription: %w", err)
	}

	if len(resp.Segments) == 0 {
		if strings.TrimSpace(resp.Text) == "" {
			return nil, nil
		}
		return []Segment{{Text: resp.Text, End: resp.Duration}}, nil
	}
	segments := make([]Segment, 0, len(resp.Segments))
	for _, seg := range resp.Segments {
		segments = append(segments, Segment{Text: seg.Text, Start: seg.Start, End: seg.End})
	}
	return segments, nil
}
