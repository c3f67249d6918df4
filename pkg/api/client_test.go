package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNormalizeError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{
			name:   "detail_string",
			status: 403,
			body:   `{"detail": "knowledge graph not found or not yours"}`,
			want:   "knowledge graph not found or not yours",
		},
		{
			name:   "detail_field_validation_array",
			status: 422,
			body:   `{"detail": [{"loc": ["body", "kg_name"], "msg": "field required", "type": "value_error.missing"}, {"loc": ["body", "file_ids"], "msg": "ensure this value has at least 1 items", "type": "value_error"}]}`,
			want:   "kg_name: field required; file_ids: ensure this value has at least 1 items",
		},
		{
			name:   "detail_nested_object_with_error",
			status: 500,
			body:   `{"detail": {"error": "query failed: timeout", "sql": "SELECT 1"}}`,
			want:   "query failed: timeout",
		},
		{
			name:   "message_variant",
			status: 500,
			body:   `{"code": 500, "message": "internal server error", "data": null}`,
			want:   "internal server error",
		},
		{
			name:   "error_variant",
			status: 400,
			body:   `{"error": "invalid connection id"}`,
			want:   "invalid connection id",
		},
		{
			name:   "empty_body_falls_back_to_status_text",
			status: 502,
			body:   "",
			want:   "Bad Gateway",
		},
		{
			name:   "non_json_body",
			status: 500,
			body:   "upstream exploded",
			want:   "upstream exploded",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := normalizeError(tc.status, []byte(tc.body))
			if got.Message != tc.want {
				t.Fatalf("got %q, want %q", got.Message, tc.want)
			}
			if got.StatusCode != tc.status {
				t.Fatalf("got status %d, want %d", got.StatusCode, tc.status)
			}
		})
	}
}

type staticToken string

func (s staticToken) Token() string { return string(s) }

func TestClient_AttachesBearerToken(t *testing.T) {
	t.Parallel()

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if r.URL.Path != "/api/v1/file/list" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]FileInfo{{FileID: "f1", FileName: "a.pdf"}})
	}))
	defer srv.Close()

	client := NewClient(ClientParams{BaseURL: srv.URL, Tokens: staticToken("tok-123")})
	files, err := client.ListFiles(context.Background())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("got auth header %q, want %q", gotAuth, "Bearer tok-123")
	}
	if len(files) != 1 || files[0].FileID != "f1" {
		t.Fatalf("unexpected files %+v", files)
	}
}

func TestClient_NoTokenMeansNoHeader(t *testing.T) {
	t.Parallel()

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]FileInfo{})
	}))
	defer srv.Close()

	client := NewClient(ClientParams{BaseURL: srv.URL, Tokens: staticToken("")})
	if _, err := client.ListFiles(context.Background()); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("expected no auth header, got %q", gotAuth)
	}
}

func TestClient_ServerErrorIsNormalized(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail": "task does not exist"}`))
	}))
	defer srv.Close()

	client := NewClient(ClientParams{BaseURL: srv.URL})
	_, err := client.FetchProgress(context.Background(), "t-missing")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	apiErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if apiErr.Message != "task does not exist" {
		t.Fatalf("got %q, want %q", apiErr.Message, "task does not exist")
	}
	if !IsNotFound(err) {
		t.Fatal("expected IsNotFound to report true")
	}
}

func TestClient_ProgressRoundTrip(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/kg/progress/t1" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(KGProgress{
			TaskID:   "t1",
			Progress: 45,
			Status:   TaskStatusProcessing,
			Stage:    "entity extraction",
		})
	}))
	defer srv.Close()

	client := NewClient(ClientParams{BaseURL: srv.URL})
	progress, err := client.FetchProgress(context.Background(), "t1")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if progress.Progress != 45 || progress.Status != TaskStatusProcessing {
		t.Fatalf("unexpected progress %+v", progress)
	}
}
