package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSuggestionsShown   EventType = "SuggestionsShown"
	EventSuggestionSelected EventType = "SuggestionSelected"
	EventSessionCleared     EventType = "SessionCleared"
	EventFetchDiscarded     EventType = "FetchDiscarded"
	EventFetchFailed        EventType = "FetchFailed"
	EventConfigLoaded       EventType = "ConfigLoaded"
	EventConfigSaved        EventType = "ConfigSaved"
	EventCorpusReloaded     EventType = "CorpusReloaded"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SuggestionsShownEvent is emitted when a fetch result is installed and rendered
type SuggestionsShownEvent struct {
	ControllerID string
	Text         string
	Count        int
}

func (e SuggestionsShownEvent) Type() EventType { return EventSuggestionsShown }

// SuggestionSelectedEvent is emitted when a suggestion is committed
type SuggestionSelectedEvent struct {
	ControllerID string
	Suggestion   Suggestion
}

func (e SuggestionSelectedEvent) Type() EventType { return EventSuggestionSelected }

// SessionClearedEvent is emitted whenever the session is reset
type SessionClearedEvent struct {
	ControllerID string
	Reason       string
}

func (e SessionClearedEvent) Type() EventType { return EventSessionCleared }

// FetchDiscardedEvent is emitted when a stale fetch result arrives
type FetchDiscardedEvent struct {
	ControllerID string
	Generation   uint64
	Current      uint64
}

func (e FetchDiscardedEvent) Type() EventType { return EventFetchDiscarded }

// FetchFailedEvent is emitted when the fetch collaborator returns an error
type FetchFailedEvent struct {
	ControllerID string
	Text         string
	Err          error
}

func (e FetchFailedEvent) Type() EventType { return EventFetchFailed }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// CorpusReloadedEvent is emitted when a provider reloads its source
type CorpusReloadedEvent struct {
	Path  string
	Count int
}

func (e CorpusReloadedEvent) Type() EventType { return EventCorpusReloaded }
