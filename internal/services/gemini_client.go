package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"promptbuilder-backend/internal/apperr"
	"promptbuilder-backend/internal/utils"
	"promptbuilder-backend/pkg/logger"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	GenerateTimeout = 30 * time.Second

	SystemPromptGenerator = "You are an expert prompt engineer. Given a context from a user (who is not technical), " +
		"generate a clear, concise, and effective prompt for an LLM that will help the user achieve their goal. " +
		"Avoid technical jargon. If user details are provided, use them to personalize the prompt."

	generationErrorFormat = "[Error: Could not generate prompt: %s]"
)

// Generator turns a free-text context into a prompt. Implementations never
// fail: problems are reported inside the returned text.
type Generator interface {
	Generate(ctx context.Context, userContext string, userHint map[string]interface{}) string
}

// GeminiClient calls the Gemini generateContent endpoint.
type GeminiClient struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

func NewGeminiClient(apiKey, endpoint string) *GeminiClient {
	return &GeminiClient{
		apiKey:     apiKey,
		endpoint:   endpoint,
		httpClient: utils.NewHTTPClient(GenerateTimeout),
	}
}

// WithTimeout returns a copy of c whose requests give up after d.
func (c *GeminiClient) WithTimeout(d time.Duration) *GeminiClient {
	clone := *c
	clone.httpClient = utils.NewHTTPClient(d)
	return &clone
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent `json:"systemInstruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// Generate sends one request and returns the first candidate's text, or an
// "[Error: ...]" marker string when anything goes wrong.
func (c *GeminiClient) Generate(ctx context.Context, userContext string, userHint map[string]interface{}) string {
	text, err := c.generate(ctx, userContext, userHint)
	if err != nil {
		logger.Log.Error("Prompt generation failed",
			zap.String("endpoint", c.endpoint),
			zap.Error(err),
		)
		return fmt.Sprintf(generationErrorFormat, err.Error())
	}
	return text
}

func (c *GeminiClient) generate(ctx context.Context, userContext string, userHint map[string]interface{}) (string, error) {
	if c.apiKey == "" {
		return "", apperr.Wrap(apperr.ErrUpstream, "GEMINI_API_KEY is not configured")
	}

	body, err := json.Marshal(geminiRequest{
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: SystemInstruction(userHint)}}},
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: userContext}}},
		},
	})
	if err != nil {
		return "", apperr.Wrap(err, "encoding request")
	}

	endpoint, err := url.Parse(c.endpoint)
	if err != nil {
		return "", apperr.Wrap(err, "parsing endpoint")
	}
	q := endpoint.Query()
	q.Set("key", c.apiKey)
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return "", apperr.Wrap(err, "building request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// url.Error embeds the request URL, which carries the key
		var urlErr *url.Error
		if apperr.As(err, &urlErr) {
			err = urlErr.Err
		}
		return "", apperr.Mark(apperr.Wrap(err, "request failed"), apperr.ErrUpstream)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperr.Mark(apperr.Wrap(err, "reading response"), apperr.ErrUpstream)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", apperr.Mark(apperr.Newf("provider returned %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody))), apperr.ErrUpstream)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", apperr.Mark(apperr.Wrap(err, "decoding response"), apperr.ErrUpstream)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", apperr.Mark(apperr.New("response contained no candidates"), apperr.ErrUpstream)
	}

	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

// SystemInstruction renders the generator instruction, appending the user
// details in key order when any are given.
func SystemInstruction(userHint map[string]interface{}) string {
	if len(userHint) == 0 {
		return SystemPromptGenerator
	}

	keys := make([]string, 0, len(userHint))
	for k := range userHint {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	details := make([]string, 0, len(keys))
	for _, k := range keys {
		details = append(details, fmt.Sprintf("%s: %v", k, userHint[k]))
	}
	return SystemPromptGenerator + " User details: " + strings.Join(details, ", ") + "."
}
