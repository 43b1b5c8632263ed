package openaistt

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "call.wav")
	if err := os.WriteFile(path, []byte("RIFF0000WAVE"), 0o644); err != nil {
		t.Fatalf("write audio: %v", err)
	}
	return path
}

func TestTranscribeFileReturnsSegments(t *testing.T) {
	var gotModel, gotLanguage, gotFormat, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/audio/transcriptions" {
			http.NotFound(w, r)
			return
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		gotAuth = r.Header.Get("Authorization")
		gotModel = r.FormValue("model")
		gotLanguage = r.FormValue("language")
		gotFormat = r.FormValue("response_format")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"task":     "transcribe",
			"language": "english",
			"duration": 3.2,
			"text":     "Tower, ready for departure.",
			"segments": []map[string]any{
				{"id": 0, "start": 0.0, "end": 1.4, "text": " Tower,"},
				{"id": 1, "start": 1.4, "end": 3.2, "text": " ready for departure."},
			},
		})
	}))
	defer srv.Close()

	client := New(Config{APIKey: "sk-test", BaseURL: srv.URL + "/v1/", Language: "en"})
	segments, err := client.TranscribeFile(context.Background(), writeAudio(t))
	if err != nil {
		t.Fatalf("TranscribeFile: %v", err)
	}
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}
	if segments[1].Text != " ready for departure." || segments[1].End != 3.2 {
		t.Fatalf("unexpected segment: %+v", segments[1])
	}
	if gotModel != DefaultModel {
		t.Fatalf("expected model %q, got %q", DefaultModel, gotModel)
	}
	if gotLanguage != "en" {
		t.Fatalf("expected language en, got %q", gotLanguage)
	}
	if gotFormat != "verbose_json" {
		t.Fatalf("expected verbose_json, got %q", gotFormat)
	}
	if gotAuth != "Bearer sk-test" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
}

func TestTranscribeFileFallsBackToText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":"roger","duration":1.0}`))
	}))
	defer srv.Close()

	client := New(Config{BaseURL: srv.URL + "/v1", Model: "whisper-large-v3", Language: "auto"})
	segments, err := client.TranscribeFile(context.Background(), writeAudio(t))
	if err != nil {
		t.Fatalf("TranscribeFile: %v", err)
	}
	if len(segments) != 1 || segments[0].Text != "roger" {
		t.Fatalf("unexpected segments: %+v", segments)
	}
	if client.Model() != "whisper-large-v3" {
		t.Fatalf("unexpected model %q", client.Model())
	}
}

func TestTranscribeFileAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid api key","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	client := New(Config{APIKey: "bad", BaseURL: srv.URL + "/v1"})
	_, err := client.TranscribeFile(context.Background(), writeAudio(t))
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "401") || !strings.Contains(err.Error(), "invalid api key") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTranscribeFileRequiresPath(t *testing.T) {
	if _, err := New(Config{}).TranscribeFile(context.Background(), " "); err == nil {
		t.Fatal("expected error for empty path")
	}
}
