package ui

import (
	"autosuggest/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// clearStatusMsg clears a transient status message
type clearStatusMsg struct{}

// pagerMsg contains the result of a pager command
type pagerMsg struct {
	err error
}
