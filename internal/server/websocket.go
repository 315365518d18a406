package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/zeusync/sceneedit/internal/core/models"
	"github.com/zeusync/sceneedit/internal/core/observability/log"
	"github.com/zeusync/sceneedit/internal/editor"
)

const maxMessageSize = 4096

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("websocket upgrade failed", log.Error(err))
		return
	}

	c := newClient(conn)
	if err := s.hub.add(c); err != nil {
		s.logger.Warn("rejecting control client", log.String("remote", conn.RemoteAddr().String()), log.Error(err))
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseTryAgainLater, err.Error()))
		c.close()
		return
	}
	defer s.hub.remove(c)

	go c.writeLoop()

	logger := s.logger.With(log.String("remote", conn.RemoteAddr().String()))
	logger.Info("control client connected")
	defer logger.Info("control client disconnected")

	conn.SetReadLimit(maxMessageSize)
	for {
		_, p, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var req Request
		if err = json.Unmarshal(p, &req); err != nil {
			c.push(encode(Message{Type: TypeResponse, Error: fmt.Sprintf("%v: %v", ErrInvalidMessage, err)}, logger))
			continue
		}

		resp := s.execute(r.Context(), req)
		if resp.Error != "" {
			logger.Debug("intent failed", log.String("intent", string(req.Intent)), log.String("error", resp.Error))
		}
		if !c.push(encode(resp, logger)) {
			return
		}
	}
}

// execute runs req on the loop thread and builds the reply.
func (s *Server) execute(ctx context.Context, req Request) Message {
	resp := Message{Type: TypeResponse, ID: req.ID}

	// result is only read after Do returns nil, which means fn has finished.
	var result Message
	err := s.ed.Do(ctx, func(ed *editor.Editor) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return apply(ctx, ed, req, &result)
	})
	if err != nil {
		resp.Error = err.Error()
		return resp
	}

	resp.OK = true
	resp.Entity = result.Entity
	resp.Document = result.Document
	return resp
}

// apply runs req on the loop thread.
func apply(ctx context.Context, ed *editor.Editor, req Request, out *Message) error {
	switch req.Intent {
	case IntentGenerate:
		kind, err := models.ParseEntityKind(req.Kind)
		if err != nil {
			return err
		}
		e, err := ed.GUI.Generate(ctx, kind)
		if e != nil {
			out.Entity = e.ID()
		}
		return err
	case IntentSelect:
		return ed.GUI.Select(req.Entity)
	case IntentToggleBehaviour:
		kind, err := models.ParseBehaviourKind(req.Kind)
		if err != nil {
			return err
		}
		return ed.GUI.ToggleBehaviour(ctx, kind, req.On)
	case IntentSetTestMode:
		return ed.GUI.SetTestMode(ctx, req.On)
	case IntentRestart:
		return ed.GUI.Restart(ctx)
	case IntentSave:
		return ed.GUI.Save(ctx)
	case IntentPrint:
		doc, err := ed.State.Print(ctx)
		out.Document = doc
		return err
	default:
		return fmt.Errorf("%w: %q", ErrUnknownIntent, req.Intent)
	}
}
