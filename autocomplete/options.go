package autocomplete

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/log"
	zone "github.com/lrstanley/bubblezone"

	"autosuggest/internal/domain"
	"autosuggest/internal/eventbus"
	"autosuggest/internal/fetch"
	"autosuggest/internal/keys"
	"autosuggest/internal/panel"
)

// DefaultBlurDelay is how long after losing focus the dropdown is cleared.
// A click on a row commits before the delayed clear runs.
const DefaultBlurDelay = 200 * time.Millisecond

var (
	ErrNoInput    = errors.New("no input bound")
	ErrNoFetcher  = errors.New("no fetch collaborator")
	ErrNoOnSelect = errors.New("no onSelect callback")
)

type (
	Suggestion      = domain.Suggestion
	Item            = domain.Item
	Geometry        = domain.Geometry
	Rect            = domain.Rect
	Placement       = domain.Placement
	Fetcher         = fetch.Fetcher
	FetchFunc       = fetch.FetchFunc
	Continuation    = fetch.Continuation
	RenderFunc      = panel.RenderFunc
	GroupRenderFunc = panel.GroupRenderFunc
	Styles          = panel.Styles
	Class           = panel.Class
	KeyMap          = keys.KeyMap
	EventBus        = eventbus.EventBus
)

// NewItem creates an ungrouped suggestion
func NewItem(text string) *Item { return domain.NewItem(text) }

// NewStyles returns the default panel styles
func NewStyles() *Styles { return panel.NewStyles() }

// DefaultKeyMap returns the arrow, escape and enter bindings
func DefaultKeyMap() KeyMap { return keys.DefaultKeyMap() }

// Options configures a Controller.
//
// The controller drives Input: route every message through
// Controller.Update instead of calling Input.Update directly.
type Options struct {
	Input     *textinput.Model
	MinLength int
	Fetch     Fetcher
	OnSelect  func(s Suggestion, input *textinput.Model)

	Render      RenderFunc
	RenderGroup GroupRenderFunc
	EmptyMsg    string
	ClassName   string

	// Locate reports where the input currently sits. When nil the input is
	// assumed to sit at the top left of the window.
	Locate func() Geometry

	BlurDelay    time.Duration
	FetchTimeout time.Duration

	Styles *Styles
	KeyMap *KeyMap
	Logger *log.Logger
	Bus    EventBus
	// Zones enables clicking rows. The host must pass its final view
	// through Zones.Scan.
	Zones *zone.Manager
}
