// internal/assistant/generate/remote.go
package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"hr-assistant/internal/assistant/contexts"
	"hr-assistant/internal/common/config"
	"hr-assistant/internal/common/logger"
)

const chatCompletionsPath = "/openai/v1/chat/completions"

const systemPrompt = `You are an AI HR Assistant for Amrita Hospital HRMS.
You help HR managers and administrators analyze workforce data.

IMPORTANT RULES:
1. ONLY use the data provided in the context. Never make up or guess information.
2. If the data doesn't contain the answer, say "I don't have that information in the current data."
3. Be concise and professional.
4. Format numbers and lists clearly.
5. If asked about something not in the context, explain what data IS available.
6. Always mention the date when discussing attendance or leave data.

You are speaking to an HR professional who needs accurate, actionable insights.`

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// RemoteGenerator calls a hosted chat-completions endpoint with the user's
// question and the full retrieved context embedded in the prompt. One
// attempt, no retries: any failure hands the query to the next strategy.
type RemoteGenerator struct {
	client  *http.Client
	cfg     config.GenAIConfig
	logger  logger.Logger
	timeout time.Duration
}

func NewRemoteGenerator(cfg config.GenAIConfig, log logger.Logger) *RemoteGenerator {
	timeout := time.Duration(cfg.Timeout) * time.Millisecond
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &RemoteGenerator{
		client:  &http.Client{Timeout: timeout},
		cfg:     cfg,
		logger:  log.With(map[string]interface{}{"component": "remote_generator"}),
		timeout: timeout,
	}
}

func (g *RemoteGenerator) Name() string { return "remote" }

// Available reports whether the remote strategy is usable at all. Without a
// key every query goes straight to the deterministic renderer.
func (g *RemoteGenerator) Available() bool { return g.cfg.APIKey != "" }

func (g *RemoteGenerator) Generate(ctx context.Context, query string, snapshot contexts.Context) (string, error) {
	contextJSON, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal context: %w", err)
	}

	userMessage := fmt.Sprintf(
		"User Question: %s\n\nHR Database Context (this is the ONLY data you can use):\n%s\n\nPlease provide a helpful, accurate response based ONLY on the above data.",
		query, contextJSON,
	)

	body, err := json.Marshal(chatRequest{
		Model: g.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userMessage},
		},
		Temperature: g.cfg.Temperature,
		MaxTokens:   g.cfg.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.BaseURL+chatCompletionsPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat completions call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("chat completions call: unexpected status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("chat completions call: empty completion")
	}

	return parsed.Choices[0].Message.Content, nil
}
