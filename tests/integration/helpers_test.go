//go:build integration
// +build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
)

func envOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func baseURL() string {
	return envOrDefault("INTEGRATION_BASE_URL", "http://localhost:5000")
}

// call sends an optional JSON payload and decodes the JSON response.
func call(t *testing.T, method, path string, payload interface{}) (int, map[string]interface{}) {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
	}

	req, err := http.NewRequest(method, fmt.Sprintf("%s%s", baseURL(), path), &body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	var out map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode %s %s response: %v", method, path, err)
	}
	return resp.StatusCode, out
}

func expectStatus(t *testing.T, got, want int, body map[string]interface{}) {
	t.Helper()
	if got != want {
		t.Fatalf("expected %d, got %d, body: %v", want, got, body)
	}
}

// createQuestion inserts a question and returns its id by searching for the unique text.
func createQuestion(t *testing.T, text string, category int) int {
	t.Helper()

	status, body := call(t, http.MethodPost, "/questions", map[string]interface{}{
		"question":   text,
		"answer":     "integration answer",
		"difficulty": 1,
		"category":   category,
	})
	expectStatus(t, status, http.StatusOK, body)

	status, body = call(t, http.MethodPost, "/questions/search", map[string]interface{}{"searchTerm": text})
	expectStatus(t, status, http.StatusOK, body)
	questions := body["questions"].([]interface{})
	if len(questions) != 1 {
		t.Fatalf("expected exactly one match for %q, got %d", text, len(questions))
	}
	return int(questions[0].(map[string]interface{})["id"].(float64))
}
