package common

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestPost(t *testing.T) {
	var gotAuth, gotContentType string
	var gotBody map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"abc-1"}`))
	}))
	defer server.Close()

	var out struct {
		ID string `json:"id"`
	}
	status, body, err := Post(server.URL, map[string]string{"name": "x"},
		map[string]string{"Authorization": "Bearer test_key"}, &out)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if status != http.StatusCreated {
		t.Errorf("Expected 201, got %d", status)
	}
	if gotAuth != "Bearer test_key" {
		t.Errorf("Authorization header not forwarded, got %q", gotAuth)
	}
	if gotContentType != "application/json" {
		t.Errorf("Expected JSON content type, got %q", gotContentType)
	}
	if gotBody["name"] != "x" {
		t.Errorf("Payload not serialized, got %v", gotBody)
	}
	if out.ID != "abc-1" {
		t.Errorf("Response not decoded, got %q", out.ID)
	}
	if !strings.Contains(string(body), "abc-1") {
		t.Errorf("Raw body missing, got %q", body)
	}
}

func TestGet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("Expected GET, got %s", r.Method)
		}
		if r.Header.Get("Authorization") != "Bearer test_key" {
			t.Errorf("Authorization header not forwarded")
		}
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	var out struct {
		Status string `json:"status"`
	}
	status, _, err := Get(server.URL, map[string]string{"Authorization": "Bearer test_key"}, &out)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if status != http.StatusOK {
		t.Errorf("Expected 200, got %d", status)
	}
	if out.Status != "ok" {
		t.Errorf("Response not decoded, got %q", out.Status)
	}
}

func TestGetDecodeFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer server.Close()

	var out map[string]interface{}
	status, body, err := Get(server.URL, nil, &out)
	if err == nil {
		t.Fatal("Expected a decode error for a non-JSON body")
	}
	// Status and raw body still come back so callers can log them
	if status != http.StatusOK {
		t.Errorf("Expected 200 alongside the error, got %d", status)
	}
	if string(body) != "not json at all" {
		t.Errorf("Raw body not returned, got %q", body)
	}
}
