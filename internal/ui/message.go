package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/agenda/internal/book"
	"github.com/desertthunder/agenda/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgLookupDone MsgKind = iota
	MsgNotificationExpired
)

type lookupResult struct {
	input    book.Input
	location *models.Location
	err      error
}

// lookupDoneMsg is the constructor for [MsgLookupDone]
func lookupDoneMsg(in book.Input, loc *models.Location, err error) Msg {
	return Msg{kind: MsgLookupDone, data: lookupResult{in, loc, err}}
}

// notificationExpiredMsg is the constructor for [MsgNotificationExpired]
//
// seq identifies the notification so a newer one is not cleared by an older timer.
func notificationExpiredMsg(seq int) Msg {
	return Msg{kind: MsgNotificationExpired, data: seq}
}
