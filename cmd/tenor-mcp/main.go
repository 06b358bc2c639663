// Command tenor-mcp bridges stdio MCP clients (Claude Desktop, editors) to a
// running tenor-server over Streamable HTTP. It speaks newline-delimited
// JSON-RPC on stdin/stdout and forwards each message to the server's /mcp
// endpoint.
package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const (
	defaultServerURL = "http://localhost:4343"
	requestTimeout   = 120 * time.Second

	// maxMessageSize bounds a single JSON-RPC line on stdin.
	maxMessageSize = 10 * 1024 * 1024
)

// StdioProxy forwards JSON-RPC messages from stdin to an HTTP MCP server
// and writes responses to stdout.
type StdioProxy struct {
	serverURL  string
	httpClient *http.Client
}

// NewStdioProxy creates a proxy targeting serverURL's /mcp endpoint.
func NewStdioProxy(serverURL string) *StdioProxy {
	return &StdioProxy{
		serverURL:  serverURL + "/mcp",
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

func main() {
	serverURL := os.Getenv("TENOR_SERVER_URL")
	if serverURL == "" {
		serverURL = defaultServerURL
	}

	proxy := NewStdioProxy(serverURL)
	if err := proxy.RunWithIO(os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "tenor-mcp: %v\n", err)
		os.Exit(1)
	}
}

// RunWithIO pumps newline-delimited JSON-RPC from r to the server and writes
// each response to w. A transport failure becomes a JSON-RPC error response
// on w; only a broken stdin stream terminates the loop.
func (p *StdioProxy) RunWithIO(r io.Reader, w io.Writer) error {
	if p.httpClient == nil {
		p.httpClient = &http.Client{Timeout: requestTimeout}
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxMessageSize)

	out := bufio.NewWriter(w)

	for scanner.Scan() {
		msg := bytes.TrimSpace(scanner.Bytes())
		if len(msg) == 0 {
			continue
		}

		resp, err := p.forward(msg)
		if err != nil {
			resp = jsonRPCError(extractID(msg), -32000, err.Error())
		}
		// Notifications produce no response body; nothing goes to stdout.
		if len(resp) == 0 {
			continue
		}

		out.Write(resp)
		out.WriteByte('\n')
		if err := out.Flush(); err != nil {
			return fmt.Errorf("stdout write: %w", err)
		}
	}

	return scanner.Err()
}

// forward posts one JSON-RPC message to the server and returns the trimmed
// response body, which is empty for notifications.
func (p *StdioProxy) forward(msg []byte) ([]byte, error) {
	resp, err := p.httpClient.Post(p.serverURL, "application/json", bytes.NewReader(msg))
	if err != nil {
		return nil, fmt.Errorf("server request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return bytes.TrimSpace(body), nil
	case http.StatusAccepted:
		// Stateless streamable HTTP acknowledges notifications with 202.
		return nil, nil
	default:
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}
}

// extractID pulls the "id" field from a JSON-RPC request for error responses.
func extractID(msg []byte) json.RawMessage {
	var req struct {
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(msg, &req); err != nil || req.ID == nil {
		return json.RawMessage("null")
	}
	return req.ID
}

// jsonRPCError builds a JSON-RPC error response for id.
func jsonRPCError(id json.RawMessage, code int, message string) []byte {
	resp := map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      id,
		"error": map[string]interface{}{
			"code":    code,
			"message": message,
		},
	}
	data, _ := json.Marshal(resp)
	return data
}
