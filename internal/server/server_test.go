package server

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/ironsheep/palette-tools-mcp/internal/config"
	"github.com/ironsheep/palette-tools-mcp/internal/logger"
	"github.com/ironsheep/palette-tools-mcp/internal/palette"
	"github.com/ironsheep/palette-tools-mcp/internal/session"
)

func TestNew(t *testing.T) {
	s := New(nil, nil)
	if s == nil {
		t.Fatal("New() returned nil")
	}
	if s.cache == nil {
		t.Fatal("New() did not initialize cache")
	}
	if s.session == nil {
		t.Fatal("New() did not initialize session")
	}
	if got := s.session.Base(); got != "#3b82f6" {
		t.Errorf("default base: got %s, want #3b82f6", got)
	}
}

func TestNew_UsesConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Palette.Base = "#ef4444"
	cfg.Palette.Scheme = "triadic"

	s := New(cfg, nil)
	if got := s.session.Base(); got != "#ef4444" {
		t.Errorf("base: got %s, want #ef4444", got)
	}
	if got := s.session.Scheme(); got != palette.Triadic {
		t.Errorf("scheme: got %v, want triadic", got)
	}
}

func TestMCPRequest_Unmarshal(t *testing.T) {
	tests := []struct {
		name     string
		json     string
		wantID   interface{}
		wantTool string
	}{
		{
			"string id",
			`{"jsonrpc":"2.0","id":"info-1","method":"tools/call","params":{"name":"color_info","arguments":{"color":"#3b82f6"}}}`,
			"info-1",
			"color_info",
		},
		{
			"number id",
			`{"jsonrpc":"2.0","id":42,"method":"tools/call","params":{"name":"palette_generate","arguments":{"scheme":"tetradic"}}}`,
			float64(42), // JSON numbers decode as float64
			"palette_generate",
		},
		{
			"null id",
			`{"jsonrpc":"2.0","id":null,"method":"tools/call","params":{"name":"image_pick_color","arguments":{"x":3.5,"y":7}}}`,
			nil,
			"image_pick_color",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req MCPRequest
			if err := json.Unmarshal([]byte(tt.json), &req); err != nil {
				t.Fatalf("Failed to unmarshal: %v", err)
			}
			if req.ID != tt.wantID {
				t.Errorf("ID: got %v (%T), want %v (%T)", req.ID, req.ID, tt.wantID, tt.wantID)
			}
			if req.Method != "tools/call" {
				t.Errorf("Method: got %s, want tools/call", req.Method)
			}

			var params ToolCallParams
			if err := json.Unmarshal(req.Params, &params); err != nil {
				t.Fatalf("Failed to unmarshal params: %v", err)
			}
			if params.Name != tt.wantTool {
				t.Errorf("tool: got %s, want %s", params.Name, tt.wantTool)
			}
			if len(params.Arguments) == 0 {
				t.Error("arguments should be kept as raw JSON")
			}
		})
	}
}

// roundTrip marshals resp as it goes over the wire and decodes it back.
func roundTrip(t *testing.T, resp *MCPResponse) MCPResponse {
	t.Helper()
	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}
	var decoded MCPResponse
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	return decoded
}

func TestMCPResponse_ToolResultOnTheWire(t *testing.T) {
	s := New(nil, nil)
	params := json.RawMessage(`{"name":"color_complementary","arguments":{"color":"#3b82f6"}}`)

	decoded := roundTrip(t, s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 7, Method: "tools/call", Params: params}))
	if decoded.JSONRPC != "2.0" || decoded.ID != float64(7) {
		t.Errorf("envelope: got %s / %v", decoded.JSONRPC, decoded.ID)
	}
	if decoded.Error != nil {
		t.Fatalf("Unexpected error: %+v", decoded.Error)
	}

	result := decoded.Result.(map[string]interface{})
	content := result["content"].([]interface{})
	text := content[0].(map[string]interface{})["text"].(string)

	var got colorResult
	if err := json.Unmarshal([]byte(text), &got); err != nil {
		t.Fatalf("tool text is not JSON: %v", err)
	}
	if got.Color != "#f6af3b" {
		t.Errorf("complementary of #3b82f6: got %s, want #f6af3b", got.Color)
	}
}

func TestMCPResponse_ToolErrorOnTheWire(t *testing.T) {
	s := New(nil, nil)
	params := json.RawMessage(`{"name":"session_apply_preset","arguments":{"name":"Neon Nights"}}`)

	decoded := roundTrip(t, s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 8, Method: "tools/call", Params: params}))
	if decoded.Error == nil {
		t.Fatal("unknown preset should be a tool error")
	}
	if decoded.Error.Code != -32000 {
		t.Errorf("Error.Code: got %d, want -32000", decoded.Error.Code)
	}
	if data, _ := decoded.Error.Data.(string); !strings.Contains(data, session.ErrUnknownPreset.Error()) {
		t.Errorf("Error.Data: got %v", decoded.Error.Data)
	}
	if decoded.Result != nil {
		t.Errorf("error response carries a result: %v", decoded.Result)
	}
	if s.session.Base() != "#3b82f6" {
		t.Errorf("failed preset changed the base to %s", s.session.Base())
	}
}

func TestHandleRequest_Initialize(t *testing.T) {
	s := New(nil, nil)

	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: "init-1", Method: "initialize"})
	if resp == nil || resp.Error != nil {
		t.Fatalf("initialize failed: %+v", resp)
	}
	if resp.ID != "init-1" {
		t.Errorf("ID: got %v, want init-1", resp.ID)
	}

	result := resp.Result.(map[string]interface{})
	if result["protocolVersion"] != "2024-11-05" {
		t.Errorf("protocolVersion: got %v", result["protocolVersion"])
	}
	if _, ok := result["capabilities"].(map[string]interface{})["tools"]; !ok {
		t.Error("capabilities should advertise tools")
	}
	serverInfo := result["serverInfo"].(map[string]interface{})
	if serverInfo["name"] != "palette-tools-mcp" || serverInfo["version"] != Version {
		t.Errorf("serverInfo: got %v", serverInfo)
	}
}

func TestHandleRequest_Ping(t *testing.T) {
	s := New(nil, nil)

	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: "ping-1", Method: "ping"})
	if resp == nil || resp.Error != nil {
		t.Fatalf("ping failed: %+v", resp)
	}
	if resp.ID != "ping-1" {
		t.Errorf("ID: got %v, want ping-1", resp.ID)
	}
}

func TestHandleRequest_ToolsList(t *testing.T) {
	s := New(nil, nil)

	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 1, Method: "tools/list"})
	if resp == nil || resp.Error != nil {
		t.Fatalf("tools/list failed: %+v", resp)
	}

	tools, ok := resp.Result.(map[string]interface{})["tools"].([]Tool)
	if !ok {
		t.Fatal("tools should be a slice of Tool")
	}
	if len(tools) != len(expectedTools) {
		t.Fatalf("expected %d tools, got %d", len(expectedTools), len(tools))
	}
	if tools[0].Name != "color_info" {
		t.Errorf("first tool: got %s, want color_info", tools[0].Name)
	}
}

func TestHandleRequest_NotificationsInitialized(t *testing.T) {
	s := New(nil, nil)

	if resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", Method: "notifications/initialized"}); resp != nil {
		t.Error("notifications/initialized should return nil response")
	}
}

func TestHandleRequest_MethodNotFound(t *testing.T) {
	s := New(nil, nil)

	// Tools are reached through tools/call, never as methods of their own.
	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 1, Method: "palette_generate"})
	if resp == nil || resp.Error == nil {
		t.Fatal("Expected error for unknown method")
	}
	if resp.Error.Code != -32601 {
		t.Errorf("Error code: got %d, want -32601", resp.Error.Code)
	}
	if !strings.Contains(resp.Error.Message, "palette_generate") {
		t.Errorf("Error message should name the method: %s", resp.Error.Message)
	}
}

func TestServe_SessionPersistsAcrossRequests(t *testing.T) {
	s := New(nil, nil)

	in := strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"session_apply_preset","arguments":{"name":"Sunset"}}}`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"session_set_base","arguments":{"scheme":"complementary"}}}`,
		`{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"palette_generate"}}`,
	}, "\n")

	var out bytes.Buffer
	if err := s.Serve(strings.NewReader(in), &out); err != nil {
		t.Fatalf("Serve failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 responses, got %d: %s", len(lines), out.String())
	}

	var resp MCPResponse
	if err := json.Unmarshal([]byte(lines[2]), &resp); err != nil {
		t.Fatalf("bad response line: %v", err)
	}
	text := resp.Result.(map[string]interface{})["content"].([]interface{})[0].(map[string]interface{})["text"].(string)

	var got paletteResult
	if err := json.Unmarshal([]byte(text), &got); err != nil {
		t.Fatalf("tool text is not JSON: %v", err)
	}
	want := palette.Generate("#f97316", palette.Complementary)
	if got.Base != "#f97316" || got.Scheme != "complementary" || !equalStrings(got.Colors, want) {
		t.Errorf("palette after preset and scheme change: got %+v, want %v", got, want)
	}
}

func TestServe_Stdio(t *testing.T) {
	var logs bytes.Buffer
	log, err := logger.New(logger.Options{Level: "debug", Writer: &logs})
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	s := New(nil, log)

	in := strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize"}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		``,
		`not json`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"palette_generate","arguments":{"color":"#3b82f6","scheme":"triadic"}}}`,
		`{"jsonrpc":"2.0","id":3,"method":"ping"}`,
	}, "\n")

	var out bytes.Buffer
	if err := s.Serve(strings.NewReader(in), &out); err != nil {
		t.Fatalf("Serve failed: %v", err)
	}

	var responses []MCPResponse
	sc := bufio.NewScanner(&out)
	for sc.Scan() {
		var resp MCPResponse
		if err := json.Unmarshal(sc.Bytes(), &resp); err != nil {
			t.Fatalf("bad response line %q: %v", sc.Text(), err)
		}
		responses = append(responses, resp)
	}

	// The notification and the malformed line produce no output.
	if len(responses) != 3 {
		t.Fatalf("expected 3 responses, got %d: %s", len(responses), out.String())
	}
	for i, want := range []float64{1, 2, 3} {
		if responses[i].ID != want {
			t.Errorf("response %d ID: got %v, want %v", i, responses[i].ID, want)
		}
	}
	if !strings.Contains(out.String(), "#f63b82") {
		t.Errorf("triadic palette missing from output: %s", out.String())
	}
	if !strings.Contains(logs.String(), "failed to parse request") {
		t.Errorf("malformed line was not logged: %s", logs.String())
	}
}
