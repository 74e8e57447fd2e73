// Package autocomplete binds a suggestion dropdown to a bubbles text input.
//
// Every qualifying keystroke asks a fetch collaborator for suggestions.
// Results are fenced by a generation counter so that only the answer to the
// latest keystroke is shown; arrow keys move the selection, Enter or a click
// commits it and Escape or losing focus dismisses the dropdown.
package autocomplete

import (
	"fmt"
	"runtime/debug"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"

	"autosuggest/internal/domain"
	"autosuggest/internal/fetch"
	"autosuggest/internal/keys"
	"autosuggest/internal/panel"
	"autosuggest/internal/session"
)

// ScrollMsg tells the controller the host page scrolled to offset Y
type ScrollMsg struct {
	Y int
}

type blurCheckMsg struct {
	owner string
}

// Controller is one dropdown session bound to one input
type Controller struct {
	id        string
	input     *textinput.Model
	onSelect  func(Suggestion, *textinput.Model)
	locate    func() Geometry
	blurDelay time.Duration
	keyMap    KeyMap
	logger    *log.Logger
	bus       EventBus

	session *session.Session
	coord   *fetch.Coordinator
	panel   *panel.Panel

	width, height int
	scrollY       int

	inputFocused bool
	termFocused  bool
}

// New validates opts and creates a controller with a hidden dropdown
func New(opts Options) (*Controller, error) {
	var result *multierror.Error
	if opts.Input == nil {
		result = multierror.Append(result, ErrNoInput)
	}
	if opts.Fetch == nil {
		result = multierror.Append(result, ErrNoFetcher)
	}
	if opts.OnSelect == nil {
		result = multierror.Append(result, ErrNoOnSelect)
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, fmt.Errorf("autocomplete: %w", err)
	}

	id := uuid.NewString()

	logger := opts.Logger
	if logger == nil {
		logger = log.Default().WithPrefix("autocomplete")
	}
	logger = logger.With("id", id[:8])

	keyMap := keys.DefaultKeyMap()
	if opts.KeyMap != nil {
		keyMap = *opts.KeyMap
	}

	blurDelay := opts.BlurDelay
	if blurDelay <= 0 {
		blurDelay = DefaultBlurDelay
	}

	c := &Controller{
		id:           id,
		input:        opts.Input,
		onSelect:     opts.OnSelect,
		locate:       opts.Locate,
		blurDelay:    blurDelay,
		keyMap:       keyMap,
		logger:       logger,
		bus:          opts.Bus,
		session:      session.New(),
		inputFocused: opts.Input.Focused(),
		termFocused:  true,
	}

	c.coord = fetch.NewCoordinator(c.session, fetch.Options{
		Owner:     id,
		Fetcher:   opts.Fetch,
		MinLength: opts.MinLength,
		Timeout:   opts.FetchTimeout,
		Logger:    logger,
		OnClear:   func() { c.clear("short input") },
	})

	c.panel = panel.New(panel.Options{
		Render:      opts.Render,
		RenderGroup: opts.RenderGroup,
		EmptyMsg:    opts.EmptyMsg,
		ClassName:   opts.ClassName,
		Styles:      opts.Styles,
		Zones:       opts.Zones,
		ZonePrefix:  id + ":",
	})

	return c, nil
}

// ID returns the controller id carried by its events
func (c *Controller) ID() string {
	return c.id
}

// Init returns the cursor blink command of a focused input
func (c *Controller) Init() tea.Cmd {
	if c.coord.Closed() || !c.input.Focused() {
		return nil
	}
	return textinput.Blink
}

// Open reports whether the dropdown is visible
func (c *Controller) Open() bool {
	return !c.coord.Closed() && c.panel.Open()
}

// Items returns the current suggestion list
func (c *Controller) Items() []Suggestion {
	return c.session.Items()
}

// Selected returns the selected suggestion, or nil
func (c *Controller) Selected() Suggestion {
	return c.session.Selected()
}

// Placement returns where the dropdown was last drawn
func (c *Controller) Placement() Placement {
	return c.panel.Placement()
}

// KeyMap returns the bindings, for use with bubbles/help
func (c *Controller) KeyMap() KeyMap {
	return c.keyMap
}

// WantsKey reports whether the controller consumes msg instead of the input.
// Hosts use it to keep Enter or Escape from reaching their own handlers.
func (c *Controller) WantsKey(msg tea.KeyMsg) bool {
	if c.coord.Closed() || !c.input.Focused() {
		return false
	}
	switch c.keyMap.Press(msg) {
	case keys.IntentPrev, keys.IntentNext:
		return c.session.Len() > 0
	case keys.IntentCancel:
		return c.panel.Open()
	case keys.IntentCommit:
		return c.session.HasSelection()
	}
	return false
}

// Update routes msg through the controller and the bound input. After
// Destroy every message goes straight to the input.
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	if c.coord.Closed() {
		return c.updateInput(msg)
	}

	cmds := []tea.Cmd{c.trackFocus()}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmds = append(cmds, c.handleKey(msg))

	case fetch.ResultMsg:
		c.handleResult(msg)
		return tea.Batch(cmds...)

	case blurCheckMsg:
		if msg.owner == c.id && (!c.input.Focused() || !c.termFocused) {
			c.clear("blur")
		}
		return tea.Batch(cmds...)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			if s, ok := c.panel.HitTest(msg); ok {
				c.commit(s)
				return tea.Batch(cmds...)
			}
		}
		cmds = append(cmds, c.updateInput(msg))

	case tea.WindowSizeMsg:
		c.width, c.height = msg.Width, msg.Height
		c.renderIfOpen()

	case ScrollMsg:
		c.scrollY = msg.Y
		c.renderIfOpen()

	case tea.BlurMsg:
		c.termFocused = false
		cmds = append(cmds, c.scheduleBlurCheck())

	case tea.FocusMsg:
		c.termFocused = true

	default:
		cmds = append(cmds, c.updateInput(msg))
	}

	cmds = append(cmds, c.trackFocus())
	return tea.Batch(cmds...)
}

func (c *Controller) handleKey(msg tea.KeyMsg) tea.Cmd {
	if !c.input.Focused() {
		return nil
	}

	var cmds []tea.Cmd
	if !c.press(msg) {
		cmds = append(cmds, c.updateInput(msg))
	}
	cmds = append(cmds, c.release(msg))
	return tea.Batch(cmds...)
}

// press handles selection and commit keys. It reports whether the key was
// consumed and must not reach the input.
func (c *Controller) press(msg tea.KeyMsg) bool {
	switch c.keyMap.Press(msg) {
	case keys.IntentPrev:
		if c.session.Len() == 0 {
			return false
		}
		c.session.SelectPrev()
		c.render()
		return true
	case keys.IntentNext:
		if c.session.Len() == 0 {
			return false
		}
		c.session.SelectNext()
		c.render()
		return true
	case keys.IntentCancel:
		c.clear("cancel")
		return true
	case keys.IntentCommit:
		if s := c.session.Selected(); s != nil {
			c.commit(s)
			return true
		}
	}
	return false
}

// release feeds text-changing keys to the fetch coordinator. Every release
// advances the generation, so navigation keys also retire a fetch in flight.
func (c *Controller) release(msg tea.KeyMsg) tea.Cmd {
	if !keys.TriggersFetch(msg, c.panel.Open()) {
		c.coord.Touch()
		return nil
	}
	return c.coord.OnKeyInput(c.input.Value())
}

func (c *Controller) updateInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	*c.input, cmd = c.input.Update(msg)
	return cmd
}

func (c *Controller) handleResult(msg fetch.ResultMsg) {
	switch c.coord.Apply(msg) {
	case fetch.Installed:
		c.render()
		if c.panel.Open() {
			c.publish(domain.SuggestionsShownEvent{ControllerID: c.id, Text: msg.Text, Count: len(msg.Items)})
		}
	case fetch.Stale:
		c.publish(domain.FetchDiscardedEvent{ControllerID: c.id, Generation: msg.Generation, Current: c.session.Generation()})
	case fetch.Failed:
		if msg.Err != nil {
			c.publish(domain.FetchFailedEvent{ControllerID: c.id, Text: msg.Text, Err: msg.Err})
		}
	}
}

// trackFocus schedules a blur check when the input lost focus since the
// last message.
func (c *Controller) trackFocus() tea.Cmd {
	focused := c.input.Focused()
	was := c.inputFocused
	c.inputFocused = focused
	if was && !focused {
		return c.scheduleBlurCheck()
	}
	return nil
}

func (c *Controller) scheduleBlurCheck() tea.Cmd {
	owner := c.id
	return tea.Tick(c.blurDelay, func(time.Time) tea.Msg {
		return blurCheckMsg{owner: owner}
	})
}

func (c *Controller) commit(s Suggestion) {
	c.logger.Debug("committing suggestion", "label", s.Label())
	c.safely("onSelect", func() { c.onSelect(s, c.input) })
	c.publish(domain.SuggestionSelectedEvent{ControllerID: c.id, Suggestion: s})
	c.clear("commit")
}

func (c *Controller) render() {
	st := panel.State{
		Items:    c.session.Items(),
		Selected: c.session.Selected(),
		Text:     c.session.Text(),
	}
	shown := false
	ok := c.safely("render", func() { shown = c.panel.Render(st, c.geometry()) })
	if !ok || !shown {
		c.clear("empty")
	}
}

func (c *Controller) renderIfOpen() {
	if c.panel.Open() {
		c.render()
	}
}

func (c *Controller) clear(reason string) {
	hadState := c.panel.Open() || c.session.Len() > 0
	c.coord.Cancel()
	c.session.Clear()
	c.panel.Hide()
	if hadState {
		c.logger.Debug("session cleared", "reason", reason)
		c.publish(domain.SessionClearedEvent{ControllerID: c.id, Reason: reason})
	}
}

func (c *Controller) geometry() Geometry {
	if c.locate != nil {
		return c.locate()
	}
	width := c.input.Width
	if width > 0 {
		width += ansi.StringWidth(c.input.Prompt) + 1
	} else {
		width = c.width
	}
	return Geometry{
		Input:          Rect{Width: width, Height: 1},
		ScrollY:        c.scrollY,
		ViewportWidth:  c.width,
		ViewportHeight: c.height,
	}
}

// safely runs a caller-supplied callback. A panic is logged and reported
// as false.
func (c *Controller) safely(what string, fn func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("callback panicked", "callback", what, "panic", r, "stack", string(debug.Stack()))
			ok = false
		}
	}()
	fn()
	return true
}

func (c *Controller) publish(event domain.DomainEvent) {
	if c.bus != nil {
		c.bus.Publish(event)
	}
}

// View renders the dropdown on its own
func (c *Controller) View() string {
	if c.coord.Closed() {
		return ""
	}
	return c.panel.View()
}

// Overlay draws the dropdown onto the host view beneath the input.
// base must be in page coordinates.
func (c *Controller) Overlay(base string) string {
	if c.coord.Closed() {
		return base
	}
	return c.panel.Overlay(base)
}

// Destroy tears the controller down. Results still in flight are ignored
// and the input keeps working without a dropdown.
func (c *Controller) Destroy() {
	if c.coord.Closed() {
		return
	}
	c.clear("destroy")
	c.coord.Close()
	c.panel.Detach()
}
