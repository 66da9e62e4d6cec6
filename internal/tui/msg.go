package tui

import "github.com/runoshun/taskboard/internal/domain"

// Msg is the sealed interface for all TUI messages.
//
// go-sumtype:decl Msg
type Msg interface {
	sealed()
}

// MsgAgendaLoaded is sent when the agenda has been read from the store.
type MsgAgendaLoaded struct {
	Items []domain.Summary
}

func (MsgAgendaLoaded) sealed() {}

// MsgHistoryLoaded is sent when the history has been read from the store.
type MsgHistoryLoaded struct {
	Items []domain.Summary
}

func (MsgHistoryLoaded) sealed() {}

// MsgError is sent when loading fails.
type MsgError struct {
	Err error
}

func (MsgError) sealed() {}
