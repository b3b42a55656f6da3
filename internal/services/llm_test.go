package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
)

func newChatServer(t *testing.T, content string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("Expected POST request, got %s", r.Method)
		}
		if r.Header.Get("Authorization") != "Bearer test-token" {
			t.Errorf("Expected Bearer test-token, got %s", r.Header.Get("Authorization"))
		}

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": content}},
			},
		})
	}))
}

func withTestLLM(t *testing.T, server *httptest.Server) {
	t.Helper()
	os.Setenv("LLM_BASE_URL", server.URL)
	os.Setenv("LLM_TOKEN", "test-token")
	os.Setenv("LLM_MODEL", "test-model")
	// Reset the singleton so it picks up the test configuration
	llmService = nil
}

func TestGenerateComments(t *testing.T) {
	payload := "```json\n" + `[
		{"author_name": "Mei Lin", "author_handle": "@meilin", "content": "Solid overview 👍"},
		{"author_name": "Raj", "author_handle": "@rajtech", "content": "Curious how this lands in India."},
		{"author_name": "", "author_handle": "", "content": "   "}
	]` + "\n```"
	server := newChatServer(t, payload)
	defer server.Close()
	withTestLLM(t, server)

	comments, err := GetLLMService().GenerateComments("AI adoption in Singapore", "A look at the city-state's AI push", 3)
	if err != nil {
		t.Fatalf("GenerateComments failed: %v", err)
	}

	// The blank-content entry is dropped
	if len(comments) != 2 {
		t.Fatalf("expected 2 usable comments, got %d", len(comments))
	}
	if comments[0].AuthorName != "Mei Lin" {
		t.Errorf("unexpected first author: %s", comments[0].AuthorName)
	}
}

func TestGenerateCommentsBadPayload(t *testing.T) {
	server := newChatServer(t, "Sorry, I cannot help with that.")
	defer server.Close()
	withTestLLM(t, server)

	if _, err := GetLLMService().GenerateComments("t", "s", 3); err == nil {
		t.Fatal("expected an error for a non-JSON model answer")
	}
}

func TestGenerateSEOMetadata(t *testing.T) {
	server := newChatServer(t, `{"keywords": "ai, asia, policy", "description": "How Asia regulates AI."}`)
	defer server.Close()
	withTestLLM(t, server)

	meta, err := GetLLMService().GenerateSEOMetadata("AI policy", "Long article body")
	if err != nil {
		t.Fatalf("GenerateSEOMetadata failed: %v", err)
	}
	if meta.Keywords != "ai, asia, policy" {
		t.Errorf("unexpected keywords: %s", meta.Keywords)
	}
	if meta.Description != "How Asia regulates AI." {
		t.Errorf("unexpected description: %s", meta.Description)
	}
}

func TestParseGeneratedCommentsRejectsEmptyBatch(t *testing.T) {
	if _, err := parseGeneratedComments(`[]`); err == nil {
		t.Fatal("expected an error for an empty batch")
	}
	if _, err := parseGeneratedComments(`[{"author_name":"x","content":"  "}]`); err == nil {
		t.Fatal("expected an error when every comment is blank")
	}
}
