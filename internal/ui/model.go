package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"

	"autosuggest/autocomplete"
	"autosuggest/internal/config"
	"autosuggest/internal/domain"
	"autosuggest/internal/eventbus"
)

// rows of the page above the input
const inputRow = 4

// footer rows: status and help
const footerHeight = 2

const pageText = `The field above asks the configured provider for suggestions once two characters are typed. Answers that arrive after a newer keystroke are dropped, so a slow provider never overwrites a fresher list.

Use the arrow keys to walk the list; it wraps at both ends and scrolls to keep the selection in view. Group headers come along when the first entry of a group is selected. Enter or a click accepts, escape dismisses.

Scroll the page with the mouse wheel or page keys. The list follows the input. Press tab to move focus away; the list closes shortly after.

Start the demo with --latency to slow every answer down and watch the stale answers being discarded in the status line below.`

// Options configures the demo screen
type Options struct {
	Bus     eventbus.EventBus
	Config  *config.Config
	Fetcher autocomplete.Fetcher
	Zones   *zone.Manager
	Logger  *log.Logger
	// Corpus returns the text shown by the browse key
	Corpus func() (string, error)
}

// Model represents the UI state
type Model struct {
	bus    eventbus.EventBus
	config *config.Config
	styles *Styles
	keys   keyMap
	help   help.Model
	zones  *zone.Manager
	logger *log.Logger
	corpus func() (string, error)

	input *textinput.Model
	ctrl  *autocomplete.Controller

	width   int
	height  int
	scrollY int

	status        string
	statusStyle   lipgloss.Style
	lastSelection string
	shown         int
	discarded     int
	submitted     []string

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates the demo screen with a focused input
func NewModel(opts Options) (*Model, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	zones := opts.Zones
	if zones == nil {
		zones = zone.New()
	}

	styles := autocomplete.NewStyles()
	for name, cc := range cfg.Classes {
		class, err := cc.Class()
		if err != nil {
			return nil, fmt.Errorf("class %s: %w", name, err)
		}
		styles.Classes[name] = class
	}

	ti := textinput.New()
	ti.Placeholder = "type to search"
	ti.Width = 40
	ti.Focus()

	m := &Model{
		bus:    opts.Bus,
		config: cfg,
		styles: NewStyles(),
		help:   help.New(),
		zones:  zones,
		logger: logger,
		corpus: opts.Corpus,
		input:  &ti,
	}

	ctrl, err := autocomplete.New(autocomplete.Options{
		Input:        m.input,
		MinLength:    cfg.Autocomplete.MinLength,
		Fetch:        opts.Fetcher,
		OnSelect:     m.onSelect,
		EmptyMsg:     cfg.Autocomplete.EmptyMsg,
		ClassName:    cfg.Autocomplete.ClassName,
		Locate:       m.geometry,
		BlurDelay:    cfg.Autocomplete.BlurDelay(),
		FetchTimeout: cfg.Autocomplete.FetchTimeout(),
		Styles:       styles,
		Logger:       logger.WithPrefix("autocomplete"),
		Bus:          opts.Bus,
		Zones:        zones,
	})
	if err != nil {
		return nil, err
	}
	m.ctrl = ctrl
	m.keys = newKeyMap(ctrl.KeyMap())

	return m, nil
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return m.ctrl.Init()
}

func (m *Model) onSelect(s autocomplete.Suggestion, input *textinput.Model) {
	value := s.Label()
	if item, ok := s.(*domain.Item); ok {
		value = item.InsertValue()
	}
	input.SetValue(value)
	input.CursorEnd()
}

// geometry reports the input position for the dropdown
func (m *Model) geometry() autocomplete.Geometry {
	return autocomplete.Geometry{
		Input: autocomplete.Rect{
			X:      0,
			Y:      inputRow - m.scrollY,
			Width:  ansi.StringWidth(m.input.Prompt) + m.input.Width + 1,
			Height: 1,
		},
		ScrollY:        m.scrollY,
		ViewportWidth:  m.width,
		ViewportHeight: m.viewportHeight(),
	}
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = max(10, min(60, msg.Width-4))
		m.scrollTo(m.scrollY)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.ctrl.Destroy()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			return m, m.pagerCmd(renderHelpContent())
		case key.Matches(msg, m.keys.Browse):
			return m, m.browseCmd()
		case key.Matches(msg, m.keys.PageUp):
			return m, m.scrollTo(m.scrollY - m.viewportHeight()/2)
		case key.Matches(msg, m.keys.PageDown):
			return m, m.scrollTo(m.scrollY + m.viewportHeight()/2)
		case key.Matches(msg, m.keys.Focus):
			if m.input.Focused() {
				m.input.Blur()
			} else {
				cmds = append(cmds, m.input.Focus())
			}
		case key.Matches(msg, m.keys.Submit) && m.input.Focused() && !m.ctrl.WantsKey(msg):
			cmds = append(cmds, m.submit())
		}

	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			return m, m.scrollTo(m.scrollY - 1)
		case tea.MouseButtonWheelDown:
			return m, m.scrollTo(m.scrollY + 1)
		}

	case EventMsg:
		return m, m.handleEvent(msg.Event)

	case clearStatusMsg:
		m.status = ""
		return m, nil

	case pagerMsg:
		if msg.err != nil {
			m.logger.Error("pager failed", "err", msg.err)
			return m, m.setStatus(fmt.Sprintf("pager failed: %v", msg.err), m.styles.StatusError)
		}
		return m, nil
	}

	cmds = append(cmds, m.ctrl.Update(msg))
	return m, tea.Batch(cmds...)
}

func (m *Model) submit() tea.Cmd {
	value := strings.TrimSpace(m.input.Value())
	if value == "" {
		return nil
	}
	m.submitted = append(m.submitted, value)
	m.input.SetValue("")
	m.logger.Info("submitted", "value", value)
	return m.setStatus(fmt.Sprintf("submitted %q", value), m.styles.StatusSuccess)
}

func (m *Model) browseCmd() tea.Cmd {
	if m.corpus == nil {
		return m.setStatus("nothing to browse", m.styles.StatusError)
	}
	content, err := m.corpus()
	if err != nil {
		return m.setStatus(fmt.Sprintf("failed to read corpus: %v", err), m.styles.StatusError)
	}
	return m.pagerCmd(content)
}

// scrollTo moves the page and tells the dropdown about it
func (m *Model) scrollTo(y int) tea.Cmd {
	maxScroll := max(0, len(m.document())-m.viewportHeight())
	y = max(0, min(y, maxScroll))
	if y == m.scrollY {
		return nil
	}
	m.scrollY = y
	return m.ctrl.Update(autocomplete.ScrollMsg{Y: y})
}

// handleEvent processes domain events forwarded from the bus
func (m *Model) handleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.SuggestionsShownEvent:
		m.shown++
	case eventbus.FetchDiscardedEvent:
		m.discarded++
	case eventbus.SuggestionSelectedEvent:
		m.lastSelection = e.Suggestion.Label()
	case eventbus.FetchFailedEvent:
		return m.setStatus(fmt.Sprintf("fetch failed: %v", e.Err), m.styles.StatusError)
	case eventbus.CorpusReloadedEvent:
		return m.setStatus(fmt.Sprintf("reloaded %d words from %s", e.Count, e.Path), m.styles.StatusSuccess)
	case eventbus.ConfigLoadedEvent:
		if e.Path != "" {
			return m.setStatus(fmt.Sprintf("loaded %s", e.Path), m.styles.Status)
		}
	}
	return nil
}

func (m *Model) setStatus(status string, style lipgloss.Style) tea.Cmd {
	m.status = status
	m.statusStyle = style
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

func (m *Model) viewportHeight() int {
	return max(1, m.height-footerHeight)
}

// document renders the whole page in page coordinates
func (m *Model) document() []string {
	width := max(20, m.width)
	lines := []string{
		m.styles.Title.Render("autosuggest"),
		m.styles.Dim.Render(fmt.Sprintf("provider: %s, min length %d", m.config.Provider.Kind, m.config.Autocomplete.MinLength)),
		"",
		m.styles.Label.Render("Search"),
		m.input.View(),
		"",
	}
	body := m.styles.Body.Width(width).Render(pageText)
	lines = append(lines, strings.Split(body, "\n")...)

	if len(m.submitted) > 0 {
		lines = append(lines, "", m.styles.Label.Render("Submitted"))
		for _, s := range m.submitted {
			lines = append(lines, "  "+s)
		}
	}
	return lines
}

func (m *Model) statusLine() string {
	if m.status != "" {
		return m.statusStyle.Render(m.status)
	}
	last := m.lastSelection
	if last == "" {
		last = "-"
	}
	focus := "focused"
	if !m.input.Focused() {
		focus = "blurred"
	}
	return m.styles.Status.Render(fmt.Sprintf("last: %s | shown: %d | discarded: %d | input %s", last, m.shown, m.discarded, focus))
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	page := m.ctrl.Overlay(strings.Join(m.document(), "\n"))
	lines := strings.Split(page, "\n")

	height := m.viewportHeight()
	start := min(m.scrollY, len(lines))
	end := min(start+height, len(lines))
	visible := append([]string(nil), lines[start:end]...)
	for len(visible) < height {
		visible = append(visible, "")
	}

	view := strings.Join(visible, "\n") + "\n" +
		ansi.Truncate(m.statusLine(), m.width, "…") + "\n" +
		m.help.View(m.keys)
	return m.zones.Scan(view)
}
