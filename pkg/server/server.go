package server

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/bastiangx/glyphserve/internal/logger"
	"github.com/bastiangx/glyphserve/internal/utils"
	"github.com/bastiangx/glyphserve/pkg/config"
	"github.com/bastiangx/glyphserve/pkg/mrkdwn"
	"github.com/bastiangx/glyphserve/pkg/suggest"
	"github.com/bastiangx/glyphserve/pkg/symbols"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// maxQuery bounds one-shot search terms, in runes.
const maxQuery = 64

// Server handles the IPC for shortcode completion and markup preview
type Server struct {
	table      *symbols.Table
	renderer   *mrkdwn.Renderer
	cfg        *config.Config
	configPath string

	dec *msgpack.Decoder

	// writeMu serializes responses with debounce pushes from timer goroutines
	writeMu sync.Mutex
	enc     *msgpack.Encoder

	mu       sync.Mutex
	sessions map[string]*suggest.Engine
	closed   bool

	logger *log.Logger
}

// NewServer creates a server using stdin/stdout for IPC.
// configPath may be empty when the config is not backed by a file.
func NewServer(table *symbols.Table, cfg *config.Config, configPath string) *Server {
	return NewServerWithIO(table, cfg, configPath, os.Stdin, os.Stdout)
}

// NewServerWithIO creates a server over arbitrary streams.
func NewServerWithIO(table *symbols.Table, cfg *config.Config, configPath string, in io.Reader, out io.Writer) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Server{
		table:      table,
		renderer:   mrkdwn.NewRenderer(mrkdwn.Options{Placeholder: cfg.Render.Placeholder}),
		cfg:        cfg,
		configPath: configPath,
		dec:        msgpack.NewDecoder(in),
		enc:        msgpack.NewEncoder(out),
		sessions:   make(map[string]*suggest.Engine),
		logger:     logger.New("ipc"),
	}
}

// Start begins listening for IPC requests. It returns nil on EOF and an error
// when the stream can no longer be framed.
func (s *Server) Start() error {
	defer s.Close()
	s.logger.Debug("Starting Server.")

	s.send(map[string]string{"status": "ready"})

	for {
		raw, err := s.dec.DecodeRaw()
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.logger.Debug("stdin closed, stopping")
				return nil
			}
			s.logger.Errorf("Reading from stdin: %v", err)
			return fmt.Errorf("failed to read request: %w", err)
		}
		s.handleRequest(raw)
	}
}

// Close tears down every session. Pending pushes are dropped.
func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, e := range s.sessions {
		e.Close()
		delete(s.sessions, id)
	}
	s.closed = true
}

// handleRequest processes one framed request
func (s *Server) handleRequest(raw msgpack.RawMessage) {
	var req Request
	if err := msgpack.Unmarshal(raw, &req); err != nil {
		s.logger.Errorf("Unmarshaling request: %v", err)
		s.sendError("", "invalid msgpack request", CodeBadRequest)
		return
	}

	switch req.Op {
	case "render":
		s.handleRender(req)
	case "search":
		s.handleSearch(req)
	case "edit":
		s.handleEdit(req)
	case "key":
		s.handleKey(req)
	case "commit":
		s.handleCommit(req)
	case "blur":
		s.handleBlur(req)
	case "close":
		s.handleClose(req)
	case "config":
		s.handleConfig(req)
	case "health":
		s.send(StatusResponse{
			ID:       req.ID,
			Status:   "ok",
			Sessions: s.sessionCount(),
			Symbols:  s.table.Len(),
		})
	case "":
		s.sendError(req.ID, "missing 'op'", CodeBadRequest)
	default:
		s.sendError(req.ID, fmt.Sprintf("unknown op: %s", req.Op), CodeBadRequest)
	}
}

func (s *Server) handleRender(req Request) {
	if len(req.Markup) > s.cfg.Server.MaxMarkup {
		s.sendError(req.ID, fmt.Sprintf("markup exceeds %d bytes", s.cfg.Server.MaxMarkup), CodeTooLarge)
		return
	}
	start := time.Now()
	html, placeholder := s.renderer.Display(req.Markup)
	s.send(RenderResponse{
		ID:          req.ID,
		HTML:        html,
		Placeholder: placeholder,
		TimeTaken:   time.Since(start).Microseconds(),
	})
}

func (s *Server) handleSearch(req Request) {
	if req.Query == "" {
		s.sendError(req.ID, "missing 'q' parameter", CodeBadRequest)
		return
	}
	if utils.RuneLen(req.Query) > maxQuery {
		s.sendError(req.ID, fmt.Sprintf("query exceeds maximum length of %d characters", maxQuery), CodeBadRequest)
		return
	}

	limit := req.Limit
	if limit < 1 {
		limit = s.cfg.Engine.MaxCandidates
	}

	start := time.Now()
	entries := s.table.Search(req.Query)
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	elapsed := time.Since(start)

	candidates := make([]Candidate, len(entries))
	for i, e := range entries {
		candidates[i] = Candidate{Glyph: e.Glyph, Code: e.Code()}
	}
	s.send(SearchResponse{
		ID:         req.ID,
		Candidates: candidates,
		Count:      len(candidates),
		TimeTaken:  elapsed.Microseconds(),
	})
}

func (s *Server) handleEdit(req Request) {
	if req.Session == "" {
		s.sendError(req.ID, "missing 's' parameter", CodeBadRequest)
		return
	}
	e, err := s.session(req.Session, true)
	if err != nil {
		s.sendError(req.ID, err.Error(), CodeBadRequest)
		return
	}
	res := e.HandleChange(suggest.ChangeEvent{Text: req.Text, Cursor: req.Cursor})
	s.send(sessionResponse(req.ID, req.Session, res))
}

func (s *Server) handleKey(req Request) {
	e, ok := s.existing(req)
	if !ok {
		return
	}
	res := e.HandleKey(suggest.KeyEvent{Key: suggest.ParseKey(req.Key)})
	s.send(sessionResponse(req.ID, req.Session, res))
}

func (s *Server) handleCommit(req Request) {
	e, ok := s.existing(req)
	if !ok {
		return
	}
	res, ok := e.CommitIndex(req.Index)
	if !ok {
		s.sendError(req.ID, fmt.Sprintf("no candidate %d in session %s", req.Index, req.Session), CodeBadRequest)
		return
	}
	s.send(sessionResponse(req.ID, req.Session, res))
}

func (s *Server) handleBlur(req Request) {
	e, ok := s.existing(req)
	if !ok {
		return
	}
	e.Blur()
	s.send(sessionResponse(req.ID, req.Session, suggest.Result{Snapshot: e.Snapshot()}))
}

func (s *Server) handleClose(req Request) {
	s.mu.Lock()
	e, ok := s.sessions[req.Session]
	delete(s.sessions, req.Session)
	s.mu.Unlock()

	if !ok {
		s.sendError(req.ID, fmt.Sprintf("unknown session: %s", req.Session), CodeNotFound)
		return
	}
	e.Close()
	s.logger.Debugf("Closed session %s", req.Session)
	s.send(StatusResponse{ID: req.ID, Status: "closed", Sessions: s.sessionCount()})
}

func (s *Server) handleConfig(req Request) {
	if s.configPath == "" {
		s.sendError(req.ID, "config is not backed by a file", CodeBadRequest)
		return
	}
	s.mu.Lock()
	err := s.cfg.Update(s.configPath, req.DebounceMs, req.GridColumns, req.MaxCandidates)
	s.mu.Unlock()
	if err != nil {
		s.logger.Errorf("Updating config: %v", err)
		s.sendError(req.ID, "failed to save config", CodeInternalError)
		return
	}
	s.logger.Debugf("Config updated: %+v", s.cfg.Engine)
	s.send(StatusResponse{ID: req.ID, Status: "ok"})
}

// existing looks up the session of req, answering 404 when it is unknown.
func (s *Server) existing(req Request) (*suggest.Engine, bool) {
	e, err := s.session(req.Session, false)
	if err != nil {
		s.sendError(req.ID, err.Error(), CodeNotFound)
		return nil, false
	}
	return e, true
}

func (s *Server) session(id string, create bool) (*suggest.Engine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.sessions[id]; ok {
		return e, nil
	}
	if !create {
		return nil, fmt.Errorf("unknown session: %s", id)
	}
	if s.closed {
		return nil, errors.New("server is shutting down")
	}
	if len(s.sessions) >= s.cfg.Server.MaxSessions {
		return nil, fmt.Errorf("session limit of %d reached", s.cfg.Server.MaxSessions)
	}

	var e *suggest.Engine
	opts := append(suggest.ConfigOptions(s.cfg.Engine), suggest.WithUpdateFunc(func(snap suggest.Snapshot) {
		s.push(e, id, snap)
	}))
	e = suggest.NewEngine(s.table, opts...)
	s.sessions[id] = e
	s.logger.Debugf("Opened session %s (%d active)", id, len(s.sessions))
	return e, nil
}

func (s *Server) sessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// push reports a debounced recomputation to the client. The check runs under
// the write lock, so a view superseded by an answered request is never sent
// after that answer.
func (s *Server) push(e *suggest.Engine, session string, snap suggest.Snapshot) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if !e.Current(snap) {
		s.logger.Debugf("Dropped stale push for session %s", session)
		return
	}
	resp := sessionResponse("", session, suggest.Result{Snapshot: snap})
	resp.Push = true
	s.encodeLocked(resp)
}

// send encodes one response onto the stream.
func (s *Server) send(response any) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.encodeLocked(response)
}

func (s *Server) encodeLocked(response any) {
	if err := s.enc.Encode(response); err != nil {
		s.logger.Errorf("Encoding response: %v", err)
	}
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) {
	s.send(ErrorResponse{ID: id, Error: message, Code: code})
}
