package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zeusync/sceneedit/internal/core/observability/log"
	"github.com/zeusync/sceneedit/internal/editor"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Server is the remote control surface: a websocket endpoint taking editor
// intents and streaming view changes, plus a read-only scene endpoint.
type Server struct {
	ed     *editor.Editor
	listen string
	hub    *hub

	attach  sync.Once
	running atomic.Bool
	mu      sync.Mutex
	server  *http.Server
	addr    net.Addr
	logger  log.Log
}

func New(ed *editor.Editor, listen string, maxClients int, logger log.Log) *Server {
	logger = logger.Named("control")
	return &Server{
		ed:     ed,
		listen: listen,
		hub:    newHub(maxClients, logger),
		logger: logger,
	}
}

// Handler routes /ws to the control socket and /scene to the saved document.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/scene", s.handleScene)
	return mux
}

// Attach registers the server as an editor view. It is safe to call more
// than once.
func (s *Server) Attach(ctx context.Context) error {
	var err error
	s.attach.Do(func() {
		err = s.ed.Do(ctx, func(ed *editor.Editor) error {
			ed.GUI.AddView(s.hub)
			return nil
		})
	})
	return err
}

// Start attaches the server and begins accepting connections in the
// background.
func (s *Server) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrServerAlreadyRunning
	}

	if err := s.Attach(ctx); err != nil {
		s.running.Store(false)
		return err
	}

	ln, err := net.Listen("tcp", s.listen)
	if err != nil {
		s.running.Store(false)
		return fmt.Errorf("%w: %v", ErrListenerFailed, err)
	}

	srv := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: readHeaderTimeout}
	s.mu.Lock()
	s.server, s.addr = srv, ln.Addr()
	s.mu.Unlock()

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("control server stopped", log.Error(err))
		}
	}()

	s.logger.Info("control server listening", log.String("addr", ln.Addr().String()))
	return nil
}

// Stop shuts the listener down and disconnects every client.
func (s *Server) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return ErrServerNotRunning
	}

	s.mu.Lock()
	srv := s.server
	s.server = nil
	s.mu.Unlock()

	err := srv.Shutdown(ctx)
	s.hub.closeAll()
	s.logger.Info("control server stopped")
	return err
}

// Run starts the server and stops it once ctx is done.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.Stop(stopCtx)
}

// Addr is the bound listen address, or nil before Start.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

func (s *Server) Clients() int { return s.hub.len() }

func (s *Server) handleScene(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var doc string
	err := s.ed.Do(r.Context(), func(ed *editor.Editor) error {
		var err error
		doc, err = ed.State.Print(r.Context())
		return err
	})
	if err != nil {
		s.logger.Error("failed to read scene", log.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if doc == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(doc))
}

func encode(m Message, logger log.Log) []byte {
	b, err := json.Marshal(m)
	if err != nil {
		logger.Error("failed to encode message", log.Error(err))
		return nil
	}
	return b
}
