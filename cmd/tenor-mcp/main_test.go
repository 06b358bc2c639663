package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestProxy(serverURL string) *StdioProxy {
	return &StdioProxy{
		serverURL:  serverURL + "/mcp",
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func TestRunWithIOForwardsRequests(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/mcp" {
			t.Errorf("Expected /mcp path, got %s", r.URL.Path)
		}
		fmt.Fprint(w, `{"jsonrpc":"2.0","id":1,"result":{"ok":true}}`)
	}))
	defer srv.Close()

	proxy := newTestProxy(srv.URL)

	in := strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}` + "\n")
	var out bytes.Buffer

	if err := proxy.RunWithIO(in, &out); err != nil {
		t.Fatalf("RunWithIO: %v", err)
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(out.Bytes(), &resp); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if resp["id"] != float64(1) {
		t.Errorf("id = %v, want 1", resp["id"])
	}
}

func TestRunWithIOSkipsBlankLines(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		fmt.Fprint(w, `{"jsonrpc":"2.0","id":1,"result":{}}`)
	}))
	defer srv.Close()

	proxy := newTestProxy(srv.URL)

	in := strings.NewReader("\n\n" + `{"jsonrpc":"2.0","id":1,"method":"ping"}` + "\n\n")
	var out bytes.Buffer

	if err := proxy.RunWithIO(in, &out); err != nil {
		t.Fatalf("RunWithIO: %v", err)
	}
	if requests != 1 {
		t.Errorf("requests = %d, want 1", requests)
	}
}

func TestRunWithIONotificationProducesNoOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	proxy := newTestProxy(srv.URL)

	in := strings.NewReader(`{"jsonrpc":"2.0","method":"notifications/initialized"}` + "\n")
	var out bytes.Buffer

	if err := proxy.RunWithIO(in, &out); err != nil {
		t.Fatalf("RunWithIO: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("expected no output for notification, got %q", out.String())
	}
}

func TestRunWithIOServerErrorBecomesJSONRPCError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal", http.StatusInternalServerError)
	}))
	defer srv.Close()

	proxy := newTestProxy(srv.URL)

	in := strings.NewReader(`{"jsonrpc":"2.0","id":7,"method":"tools/call"}` + "\n")
	var out bytes.Buffer

	if err := proxy.RunWithIO(in, &out); err != nil {
		t.Fatalf("RunWithIO: %v", err)
	}

	var resp struct {
		ID    json.RawMessage `json:"id"`
		Error *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(out.Bytes(), &resp); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if string(resp.ID) != "7" {
		t.Errorf("id = %s, want 7", resp.ID)
	}
	if resp.Error == nil || resp.Error.Code != -32000 {
		t.Errorf("expected -32000 error, got %+v", resp.Error)
	}
}

func TestExtractID(t *testing.T) {
	if got := extractID([]byte(`{"id":42}`)); string(got) != "42" {
		t.Errorf("extractID = %s, want 42", got)
	}
	if got := extractID([]byte(`not json`)); string(got) != "null" {
		t.Errorf("extractID = %s, want null", got)
	}
	if got := extractID([]byte(`{"method":"x"}`)); string(got) != "null" {
		t.Errorf("extractID = %s, want null", got)
	}
}
