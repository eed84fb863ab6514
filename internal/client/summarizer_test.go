package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/doculens/SummarizeAPI/internal/api"
)

func TestSummarize_Success(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if r.Method != http.MethodPost || r.URL.Path != "/api/summarize" {
			t.Errorf("Unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req api.SummarizeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text != "hello" {
			t.Errorf("Bad request body: %v %+v", err, req)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"short":"s","medium":"m","long":"l","keyPoints":[],"mainIdeas":[],"improvements":[]}`))
	}))
	defer server.Close()

	summary, err := NewSummarizer(server.URL).Summarize(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if summary.Short != "s" || summary.Long != "l" {
		t.Errorf("Unexpected summary: %+v", summary)
	}
	if hits != 1 {
		t.Errorf("Expected exactly one attempt, got %d", hits)
	}
}

func TestSummarize_ServerErrorCarriesBodyMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":"all available credentials have failed"}`))
	}))
	defer server.Close()

	_, err := NewSummarizer(server.URL).Summarize(context.Background(), "hello")
	var serverErr *ServerError
	if !errors.As(err, &serverErr) {
		t.Fatalf("Expected ServerError, got %v", err)
	}
	if serverErr.Status != http.StatusServiceUnavailable {
		t.Errorf("Wrong status: %d", serverErr.Status)
	}
	if serverErr.Message != "all available credentials have failed" {
		t.Errorf("Wrong message: %q", serverErr.Message)
	}
}

func TestSummarize_ServerErrorFallsBackThroughMessageField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"message":"upstream timeout"}`))
	}))
	defer server.Close()

	_, err := NewSummarizer(server.URL).Summarize(context.Background(), "hello")
	var serverErr *ServerError
	if !errors.As(err, &serverErr) {
		t.Fatalf("Expected ServerError, got %v", err)
	}
	if serverErr.Message != "upstream timeout" {
		t.Errorf("Wrong message: %q", serverErr.Message)
	}
}

func TestSummarize_ServerErrorGenericMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	_, err := NewSummarizer(server.URL).Summarize(context.Background(), "hello")
	var serverErr *ServerError
	if !errors.As(err, &serverErr) {
		t.Fatalf("Expected ServerError, got %v", err)
	}
	if serverErr.Message != "summarization request failed" {
		t.Errorf("Wrong fallback message: %q", serverErr.Message)
	}
}

func TestSummarize_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := NewSummarizer(server.URL).Summarize(context.Background(), "hello")
	if !errors.Is(err, ErrUnreachable) {
		t.Fatalf("Expected ErrUnreachable, got %v", err)
	}
}

func TestSummarize_MalformedSuccessBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{{{`))
	}))
	defer server.Close()

	_, err := NewSummarizer(server.URL).Summarize(context.Background(), "hello")
	if !errors.Is(err, ErrRequestSetup) {
		t.Fatalf("Expected ErrRequestSetup, got %v", err)
	}
}
