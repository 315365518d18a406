package server

import (
	"github.com/zeusync/sceneedit/internal/gui"
)

// Intent names a request a control client can make.
type Intent string

const (
	IntentGenerate        Intent = "generate"
	IntentSelect          Intent = "select"
	IntentToggleBehaviour Intent = "toggle_behaviour"
	IntentSetTestMode     Intent = "set_test_mode"
	IntentRestart         Intent = "restart"
	IntentSave            Intent = "save"
	IntentPrint           Intent = "print"
)

type MessageType string

const (
	TypeResponse MessageType = "response"
	TypeView     MessageType = "view"
)

// Request is sent by clients. Kind carries an entity kind for generate and a
// behaviour kind for toggle_behaviour.
type Request struct {
	ID     string `json:"id,omitempty"`
	Intent Intent `json:"intent"`
	Kind   string `json:"kind,omitempty"`
	Entity string `json:"entity,omitempty"`
	On     bool   `json:"on,omitempty"`
}

// Message is sent to clients, either in reply to a Request or whenever the
// editor view changes.
type Message struct {
	Type     MessageType `json:"type"`
	ID       string      `json:"id,omitempty"`
	OK       bool        `json:"ok,omitempty"`
	Error    string      `json:"error,omitempty"`
	Entity   string      `json:"entity,omitempty"`
	Document string      `json:"document,omitempty"`
	State    *gui.State  `json:"state,omitempty"`
}
