package server

import (
	"bytes"
	"io"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/bastiangx/glyphserve/pkg/config"
	"github.com/bastiangx/glyphserve/pkg/suggest"
	"github.com/bastiangx/glyphserve/pkg/symbols"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

var testTable = symbols.NewTable([]symbols.Entry{
	{Glyph: "🔥", Codes: []string{"fire"}, Keywords: []string{"hot"}},
	{Glyph: "🧯", Codes: []string{"fire_extinguisher"}},
	{Glyph: "🍕", Codes: []string{"pizza"}},
	{Glyph: "🎉", Codes: []string{"tada"}},
})

// harness runs a server over pipes, the way a client process sees it.
type harness struct {
	t    *testing.T
	in   *io.PipeWriter
	enc  *msgpack.Encoder
	dec  *msgpack.Decoder
	done chan error
}

func newHarness(t *testing.T, cfg *config.Config, configPath string) *harness {
	t.Helper()
	inR, inW := io.Pipe()
	outR, outW := io.Pipe()

	srv := NewServerWithIO(testTable, cfg, configPath, inR, outW)
	h := &harness{
		t:    t,
		in:   inW,
		enc:  msgpack.NewEncoder(inW),
		dec:  msgpack.NewDecoder(outR),
		done: make(chan error, 1),
	}
	go func() {
		h.done <- srv.Start()
		outW.Close()
	}()
	t.Cleanup(h.stop)

	var ready StatusResponse
	h.next(&ready)
	if ready.Status != "ready" {
		t.Fatalf("expected ready, got %+v", ready)
	}
	return h
}

// quietConfig never fires the debounce timer within a test.
func quietConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Engine.DebounceMs = 60_000
	return cfg
}

func (h *harness) stop() {
	h.in.Close()
	select {
	case err := <-h.done:
		if err != nil {
			h.t.Errorf("Start returned %v", err)
		}
	case <-time.After(2 * time.Second):
		h.t.Error("server did not stop on EOF")
	}
}

func (h *harness) send(v any) {
	h.t.Helper()
	if err := h.enc.Encode(v); err != nil {
		h.t.Fatalf("encode request: %v", err)
	}
}

// next decodes the next response into v, zeroing it first: omitted fields
// must not keep values from an earlier response.
func (h *harness) next(v any) {
	h.t.Helper()
	rv := reflect.ValueOf(v).Elem()
	rv.Set(reflect.Zero(rv.Type()))
	if err := h.dec.Decode(v); err != nil {
		h.t.Fatalf("decode response: %v", err)
	}
}

func (h *harness) call(req Request, v any) {
	h.t.Helper()
	h.send(req)
	h.next(v)
}

func (h *harness) expectError(req Request, code int) ErrorResponse {
	h.t.Helper()
	var resp ErrorResponse
	h.call(req, &resp)
	if resp.Code != code || resp.Error == "" {
		h.t.Errorf("%s: expected error %d, got %+v", req.Op, code, resp)
	}
	return resp
}

func TestRender(t *testing.T) {
	h := newHarness(t, quietConfig(), "")

	var resp RenderResponse
	h.call(Request{ID: "r1", Op: "render", Markup: "# Hi\n- *one*"}, &resp)
	if resp.ID != "r1" {
		t.Errorf("id = %q", resp.ID)
	}
	if resp.HTML != "<h1>Hi</h1><ul><li><strong>one</strong></li></ul>" || resp.Placeholder {
		t.Errorf("render = %+v", resp)
	}

	h.call(Request{ID: "r2", Op: "render", Markup: "   "}, &resp)
	if !resp.Placeholder || !strings.Contains(resp.HTML, `class="empty"`) {
		t.Errorf("blank render = %+v", resp)
	}
}

func TestRenderTooLarge(t *testing.T) {
	cfg := quietConfig()
	cfg.Server.MaxMarkup = 8
	h := newHarness(t, cfg, "")

	h.expectError(Request{ID: "big", Op: "render", Markup: strings.Repeat("x", 9)}, CodeTooLarge)

	var resp RenderResponse
	h.call(Request{ID: "ok", Op: "render", Markup: "fits"}, &resp)
	if resp.HTML != "<p>fits</p>" {
		t.Errorf("render after error = %+v", resp)
	}
}

func TestSearch(t *testing.T) {
	h := newHarness(t, quietConfig(), "")

	var resp SearchResponse
	h.call(Request{ID: "q1", Op: "search", Query: "FIR"}, &resp)
	if resp.Count != 2 || len(resp.Candidates) != 2 {
		t.Fatalf("search = %+v", resp)
	}
	if resp.Candidates[0] != (Candidate{Glyph: "🔥", Code: "fire"}) {
		t.Errorf("first candidate = %+v", resp.Candidates[0])
	}

	h.call(Request{ID: "q2", Op: "search", Query: "fir", Limit: 1}, &resp)
	if resp.Count != 1 {
		t.Errorf("limited search = %+v", resp)
	}

	h.expectError(Request{ID: "q3", Op: "search"}, CodeBadRequest)
	h.expectError(Request{ID: "q4", Op: "search", Query: strings.Repeat("a", maxQuery+1)}, CodeBadRequest)
}

func TestEditSubstitutes(t *testing.T) {
	h := newHarness(t, quietConfig(), "")

	var resp SessionResponse
	h.call(Request{ID: "e1", Op: "edit", Session: "c", Text: "so :fire:", Cursor: 9}, &resp)
	if resp.Edit == nil || resp.Edit.Text != "so 🔥" || resp.Edit.Cursor != 4 {
		t.Fatalf("edit = %+v", resp)
	}
	if resp.Open {
		t.Error("session should be closed after substitution")
	}
}

func TestEditOpensSession(t *testing.T) {
	h := newHarness(t, quietConfig(), "")

	var resp SessionResponse
	h.call(Request{ID: "e1", Op: "edit", Session: "c", Text: "so :fir", Cursor: 7}, &resp)
	if !resp.Open || !resp.Pending {
		t.Fatalf("edit = %+v", resp)
	}
	if len(resp.Range) != 2 || resp.Range[0] != 3 || resp.Range[1] != 7 {
		t.Errorf("range = %v", resp.Range)
	}
	if len(resp.Anchor) != 2 || resp.Anchor[1] != 3 {
		t.Errorf("anchor = %v", resp.Anchor)
	}

	h.call(Request{ID: "e2", Op: "edit", Session: "c", Text: "so", Cursor: 2}, &resp)
	if resp.Open || resp.Range != nil {
		t.Errorf("session should close, got %+v", resp)
	}

	h.expectError(Request{ID: "e3", Op: "edit", Text: "x"}, CodeBadRequest)
}

func TestDebouncePushAndCommit(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Engine.DebounceMs = 20
	h := newHarness(t, cfg, "")

	var resp SessionResponse
	h.call(Request{ID: "e1", Op: "edit", Session: "c", Text: "so :fir", Cursor: 7}, &resp)
	if !resp.Pending {
		t.Fatalf("edit = %+v", resp)
	}

	var pushed SessionResponse
	h.next(&pushed)
	if !pushed.Push || pushed.ID != "" || pushed.Session != "c" {
		t.Fatalf("expected a push, got %+v", pushed)
	}
	if pushed.SearchTerm != "fir" || len(pushed.Candidates) != 2 {
		t.Fatalf("push = %+v", pushed)
	}

	h.call(Request{ID: "k1", Op: "key", Session: "c", Key: "right"}, &resp)
	if !resp.Handled || resp.Highlighted != 1 {
		t.Errorf("key = %+v", resp)
	}

	h.call(Request{ID: "k2", Op: "key", Session: "c", Key: "tab"}, &resp)
	if resp.Handled {
		t.Error("tab should pass through")
	}

	h.call(Request{ID: "c1", Op: "commit", Session: "c", Index: 0}, &resp)
	if resp.Edit == nil || resp.Edit.Text != "so 🔥" || resp.Edit.Cursor != 4 || resp.Open {
		t.Errorf("commit = %+v", resp)
	}

	h.expectError(Request{ID: "c2", Op: "commit", Session: "c", Index: 0}, CodeBadRequest)
}

func TestEnterKeyCommits(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Engine.DebounceMs = 20
	h := newHarness(t, cfg, "")

	var resp, pushed SessionResponse
	h.call(Request{ID: "e1", Op: "edit", Session: "c", Text: ":piz", Cursor: 4}, &resp)
	h.next(&pushed)

	h.call(Request{ID: "k1", Op: "key", Session: "c", Key: "Enter"}, &resp)
	if resp.Edit == nil || resp.Edit.Text != "🍕" || !resp.Handled {
		t.Errorf("enter = %+v", resp)
	}
}

func TestUnknownSession(t *testing.T) {
	h := newHarness(t, quietConfig(), "")

	for _, op := range []string{"key", "commit", "blur", "close"} {
		h.expectError(Request{ID: op, Op: op, Session: "ghost", Key: "escape"}, CodeNotFound)
	}
}

func TestBlurAndClose(t *testing.T) {
	h := newHarness(t, quietConfig(), "")

	var resp SessionResponse
	h.call(Request{ID: "e1", Op: "edit", Session: "c", Text: ":fi", Cursor: 3}, &resp)

	h.call(Request{ID: "b1", Op: "blur", Session: "c"}, &resp)
	if resp.Open || resp.Pending {
		t.Errorf("blur = %+v", resp)
	}

	var status StatusResponse
	h.call(Request{ID: "h1", Op: "health"}, &status)
	if status.Status != "ok" || status.Sessions != 1 || status.Symbols != testTable.Len() {
		t.Errorf("health = %+v", status)
	}

	h.call(Request{ID: "x1", Op: "close", Session: "c"}, &status)
	if status.Status != "closed" || status.Sessions != 0 {
		t.Errorf("close = %+v", status)
	}
	h.expectError(Request{ID: "x2", Op: "key", Session: "c", Key: "left"}, CodeNotFound)
}

func TestSessionLimit(t *testing.T) {
	cfg := quietConfig()
	cfg.Server.MaxSessions = 1
	h := newHarness(t, cfg, "")

	var resp SessionResponse
	h.call(Request{ID: "a", Op: "edit", Session: "one", Text: "hi"}, &resp)
	h.expectError(Request{ID: "b", Op: "edit", Session: "two", Text: "hi"}, CodeBadRequest)

	h.call(Request{ID: "c", Op: "edit", Session: "one", Text: "hi again"}, &resp)
	if resp.Session != "one" {
		t.Errorf("existing session should still work, got %+v", resp)
	}
}

func TestBadRequests(t *testing.T) {
	h := newHarness(t, quietConfig(), "")

	h.expectError(Request{ID: "1", Op: "dance"}, CodeBadRequest)
	h.expectError(Request{ID: "2"}, CodeBadRequest)

	// A well-formed value of the wrong shape does not break the stream.
	h.send(42)
	var resp ErrorResponse
	h.next(&resp)
	if resp.Code != CodeBadRequest {
		t.Errorf("expected 400 for a non-map request, got %+v", resp)
	}

	var status StatusResponse
	h.call(Request{ID: "3", Op: "health"}, &status)
	if status.Status != "ok" {
		t.Errorf("health after bad request = %+v", status)
	}
}

func TestConfigUpdate(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.FileName)
	cfg := quietConfig()
	h := newHarness(t, cfg, path)

	columns, limit := 4, 1
	var status StatusResponse
	h.call(Request{ID: "cfg", Op: "config", GridColumns: &columns, MaxCandidates: &limit}, &status)
	if status.Status != "ok" {
		t.Fatalf("config = %+v", status)
	}

	saved, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if saved.Engine.GridColumns != 4 || saved.Engine.MaxCandidates != 1 {
		t.Errorf("saved engine = %+v", saved.Engine)
	}

	var resp SearchResponse
	h.call(Request{ID: "q", Op: "search", Query: "fir"}, &resp)
	if resp.Count != 1 {
		t.Errorf("search should use the new max_candidates, got %d", resp.Count)
	}
}

func TestConfigWithoutFile(t *testing.T) {
	h := newHarness(t, quietConfig(), "")
	columns := 3
	h.expectError(Request{ID: "cfg", Op: "config", GridColumns: &columns}, CodeBadRequest)
}

func TestStalePushIsDropped(t *testing.T) {
	var out bytes.Buffer
	srv := NewServerWithIO(testTable, quietConfig(), "", strings.NewReader(""), &out)
	defer srv.Close()

	e, err := srv.session("c", true)
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	e.HandleChange(suggest.ChangeEvent{Text: "so :fi", Cursor: 6})
	pushed := e.Flush()

	var resp SessionResponse
	if err := msgpack.NewDecoder(bytes.NewReader(out.Bytes())).Decode(&resp); err != nil {
		t.Fatalf("decode push: %v", err)
	}
	if !resp.Push || len(resp.Candidates) != 2 {
		t.Fatalf("push = %+v", resp)
	}

	out.Reset()
	e.HandleChange(suggest.ChangeEvent{Text: "so :fi ", Cursor: 7})
	srv.push(e, "c", pushed)
	if out.Len() != 0 {
		t.Errorf("a push superseded by a closing edit was sent (%d bytes)", out.Len())
	}
}
