package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// LLMService talks to an OpenAI-compatible chat completion endpoint. The
// endpoint, token and model come from LLM_BASE_URL / LLM_TOKEN / LLM_MODEL.
type LLMService struct {
	baseURL string
	token   string
	model   string
	client  *http.Client
}

var llmService *LLMService

// GetLLMService returns the singleton LLM client.
func GetLLMService() *LLMService {
	if llmService == nil {
		llmService = &LLMService{
			baseURL: os.Getenv("LLM_BASE_URL"),
			token:   os.Getenv("LLM_TOKEN"),
			model:   os.Getenv("LLM_MODEL"),
			client:  &http.Client{Timeout: 90 * time.Second},
		}
	}
	return llmService
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Model    string        `json:"model"`
	Messages []ChatMessage `json:"messages"`
}

type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (s *LLMService) chat(prompt string) (string, error) {
	if s.baseURL == "" {
		return "", fmt.Errorf("LLM_BASE_URL not configured")
	}

	payload, err := json.Marshal(ChatRequest{
		Model: s.model,
		Messages: []ChatMessage{
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequest("POST", s.baseURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("llm request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var chatResp ChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if chatResp.Error != nil {
		return "", fmt.Errorf("llm error: %s", chatResp.Error.Message)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("llm returned no choices")
	}

	return cleanModelOutput(chatResp.Choices[0].Message.Content), nil
}

// cleanModelOutput trims whitespace and markdown code fences the model tends
// to wrap JSON answers in.
func cleanModelOutput(text string) string {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```JSON")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}

// GeneratedComment is one model-written comment before it becomes a row.
type GeneratedComment struct {
	AuthorName   string `json:"author_name"`
	AuthorHandle string `json:"author_handle"`
	Content      string `json:"content"`
}

// GenerateComments asks the model for a batch of reader comments for an
// article, written by distinct personas.
func (s *LLMService) GenerateComments(title, summary string, count int) ([]GeneratedComment, error) {
	prompt := fmt.Sprintf(`You write reader comments for an editorial site covering AI across Asia.
Article title: %q
Article summary: %q
Write %d short comments from %d distinct personas (professionals, students, skeptics).
Vary tone and length. The occasional emoji is fine.
Answer with a JSON array only, each element: {"author_name": "...", "author_handle": "...", "content": "..."}`,
		title, summary, count, count)

	text, err := s.chat(prompt)
	if err != nil {
		return nil, err
	}
	return parseGeneratedComments(text)
}

func parseGeneratedComments(text string) ([]GeneratedComment, error) {
	var comments []GeneratedComment
	if err := json.Unmarshal([]byte(cleanModelOutput(text)), &comments); err != nil {
		return nil, fmt.Errorf("parse generated comments: %w", err)
	}
	out := comments[:0]
	for _, c := range comments {
		if strings.TrimSpace(c.Content) == "" {
			continue
		}
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("model returned no usable comments")
	}
	return out, nil
}

// SEOMetadata is the model-suggested search metadata for an article.
type SEOMetadata struct {
	Keywords    string `json:"keywords"`
	Description string `json:"description"`
}

// GenerateSEOMetadata asks the model for keywords and a meta description.
func (s *LLMService) GenerateSEOMetadata(title, content string) (*SEOMetadata, error) {
	excerpt := content
	if len(excerpt) > 2000 {
		excerpt = excerpt[:2000]
	}
	prompt := fmt.Sprintf(`Generate SEO metadata for this article.
Title: %q
Content: %q
Answer with JSON only: {"keywords": "comma, separated, keywords", "description": "under 160 characters"}`,
		title, excerpt)

	text, err := s.chat(prompt)
	if err != nil {
		return nil, err
	}

	var meta SEOMetadata
	if err := json.Unmarshal([]byte(cleanModelOutput(text)), &meta); err != nil {
		return nil, fmt.Errorf("parse seo metadata: %w", err)
	}
	return &meta, nil
}
