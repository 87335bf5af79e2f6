package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	stdhttp "net/http"
	"strings"
	"time"

	"vidtally/internal/core/dsl"

	perr "vidtally/internal/platform/errors"
	"vidtally/internal/platform/logger"
)

const (
	baseURLDefault = "https://openrouter.ai/api/v1"
	defaultTimeout = 20 * time.Second
	maxReplyBytes  = 1 << 20
)

// Options configures the OpenRouter client
type Options struct {
	BaseURL string
	APIKey  string
	Model   string

	// FallbackModel gets one retry after a transport or HTTP failure of the
	// primary. A reply that fails candidate validation is never retried
	FallbackModel string

	Timeout time.Duration
}

// Client calls an OpenRouter-compatible chat-completions endpoint
type Client struct {
	http *stdhttp.Client
	opts Options
	log  logger.Logger
}

// NewOpenRouter creates a Client with sane defaults
func NewOpenRouter(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	return &Client{
		http: &stdhttp.Client{Timeout: o.Timeout},
		opts: o,
		log:  *logger.Named("translate"),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Translate implements Translator against the configured models
func (c *Client) Translate(ctx context.Context, question string) (*dsl.Query, error) {
	if strings.TrimSpace(c.opts.APIKey) == "" || strings.TrimSpace(c.opts.Model) == "" {
		return nil, perr.Adapterf("translator not configured")
	}

	content, err := c.complete(ctx, c.opts.Model, question)
	if err != nil {
		fb := strings.TrimSpace(c.opts.FallbackModel)
		if fb == "" {
			return nil, err
		}
		c.log.Warn().Err(err).Str("model", c.opts.Model).Msg("primary model failed, trying fallback")
		if content, err = c.complete(ctx, fb, question); err != nil {
			return nil, err
		}
	}

	raw, ok := extractObject(content)
	if !ok {
		return nil, perr.Adapterf("no json object in model reply")
	}
	q, err := dsl.DecodeCandidate([]byte(raw))
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// complete runs one chat completion and returns the first choice content
func (c *Client) complete(ctx context.Context, model, question string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: question},
		},
		Temperature: 0,
	})
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeAdapter, "encode chat request")
	}

	req, err := stdhttp.NewRequestWithContext(
		ctx, stdhttp.MethodPost, c.opts.BaseURL+"/chat/completions", bytes.NewReader(body),
	)
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeAdapter, "new chat request")
	}
	req.Header.Set("Authorization", "Bearer "+c.opts.APIKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeAdapter, "chat request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug().
		Str("model", model).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("chat completion response")

	if resp.StatusCode != stdhttp.StatusOK {
		tail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", perr.Adapterf("chat completion status %d: %s", resp.StatusCode, strings.TrimSpace(string(tail)))
	}

	var out chatResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxReplyBytes)).Decode(&out); err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeAdapter, "decode chat response")
	}
	if len(out.Choices) == 0 || strings.TrimSpace(out.Choices[0].Message.Content) == "" {
		return "", perr.Adapterf("empty model reply")
	}
	return out.Choices[0].Message.Content, nil
}

// extractObject strips Markdown fences and returns the outermost {...} span
func extractObject(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if rest, ok := strings.CutPrefix(s, "```"); ok {
		if i := strings.IndexByte(rest, '\n'); i >= 0 {
			rest = rest[i+1:]
		}
		s = strings.TrimSuffix(strings.TrimSpace(rest), "```")
	}
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}
