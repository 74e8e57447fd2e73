// Package panel is the presentation surface of the suggestion dropdown: a
// floating list rebuilt from the session on every state change and placed
// beneath the bound input.
package panel

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/truncate"

	"autosuggest/internal/domain"
)

// RenderFunc returns the display node for a suggestion. Returning false
// skips the suggestion.
type RenderFunc func(s domain.Suggestion, text string) (string, bool)

// GroupRenderFunc returns the header node for a group. Returning false skips
// the header.
type GroupRenderFunc func(group, text string) (string, bool)

// Options configures a Panel
type Options struct {
	Render      RenderFunc
	RenderGroup GroupRenderFunc
	EmptyMsg    string
	ClassName   string
	Styles      *Styles
	// Zones enables mouse hit testing. The host must pass its final view
	// through Zones.Scan.
	Zones      *zone.Manager
	ZonePrefix string
}

// State is the session snapshot a render pass is built from
type State struct {
	Items    []domain.Suggestion
	Selected domain.Suggestion
	Text     string
}

type rowKind int

const (
	rowItem rowKind = iota
	rowGroup
	rowEmpty
)

type row struct {
	kind       rowKind
	suggestion domain.Suggestion
	selected   bool
	lines      []string
	top        int
	zoneID     string
}

func (r row) height() int { return len(r.lines) }

// Panel is created once per controller and emptied and hidden between
// sessions.
type Panel struct {
	opts   Options
	styles *Styles

	rows          []row
	open          bool
	detached      bool
	placement     domain.Placement
	contentWidth  int
	contentHeight int
	visibleHeight int
	scrollTop     int
}

// New creates a hidden panel
func New(opts Options) *Panel {
	styles := opts.Styles
	if styles == nil {
		styles = NewStyles()
	}
	return &Panel{opts: opts, styles: styles}
}

// Open reports whether the panel is visible
func (p *Panel) Open() bool {
	return p.open && !p.detached
}

// Placement returns the geometry computed by the last render
func (p *Panel) Placement() domain.Placement {
	return p.placement
}

// ScrollTop returns the first visible content line
func (p *Panel) ScrollTop() int {
	return p.scrollTop
}

// VisibleHeight returns the number of content lines shown
func (p *Panel) VisibleHeight() int {
	return p.visibleHeight
}

// Hide empties and hides the panel
func (p *Panel) Hide() {
	p.rows = nil
	p.open = false
	p.scrollTop = 0
	p.contentHeight = 0
	p.visibleHeight = 0
}

// Detach hides the panel for good
func (p *Panel) Detach() {
	p.Hide()
	p.detached = true
}

// Render rebuilds the panel from st and places it using g. It returns false
// when there is nothing to show: the list is empty and no empty message is
// configured. The caller is expected to clear the session in that case.
func (p *Panel) Render(st State, g domain.Geometry) bool {
	if p.detached {
		return false
	}

	p.rows = p.rows[:0]

	if len(st.Items) == 0 && p.opts.EmptyMsg == "" {
		p.Hide()
		return false
	}

	p.placement = Place(g)
	root := p.styles.Root(p.opts.ClassName)
	p.contentWidth = max(1, p.placement.Width-root.GetHorizontalFrameSize())

	p.buildRows(st)

	p.contentHeight = 0
	for i := range p.rows {
		p.rows[i].top = p.contentHeight
		p.contentHeight += p.rows[i].height()
	}

	p.visibleHeight = p.contentHeight
	if p.placement.MaxHeight > 0 {
		limit := max(1, p.placement.MaxHeight-root.GetVerticalFrameSize())
		p.visibleHeight = min(p.visibleHeight, limit)
	}

	p.open = true
	p.updateScroll()
	return true
}

// Place computes the panel position for g: directly beneath the input, as
// wide as the input, no taller than the viewport space below it.
func Place(g domain.Geometry) domain.Placement {
	width := g.Input.Width
	if width <= 0 {
		width = g.ViewportWidth - g.Input.X
	}
	pl := domain.Placement{
		Top:   g.Input.Bottom() + g.ScrollY,
		Left:  g.Input.X,
		Width: max(1, width),
	}
	if g.ViewportHeight > 0 {
		pl.MaxHeight = max(1, g.ViewportHeight-g.Input.Bottom())
	}
	return pl
}

func (p *Panel) buildRows(st State) {
	grouping := false
	for _, s := range st.Items {
		if s.Group() != "" {
			grouping = true
			break
		}
	}

	render := p.opts.Render
	if render == nil {
		render = p.defaultRender
	}
	renderGroup := p.opts.RenderGroup
	if renderGroup == nil {
		renderGroup = p.defaultRenderGroup
	}

	prevGroup := ""
	for _, s := range st.Items {
		if grouping && s.Group() != "" && s.Group() != prevGroup {
			prevGroup = s.Group()
			if node, ok := renderGroup(s.Group(), st.Text); ok {
				p.rows = append(p.rows, row{
					kind:  rowGroup,
					lines: p.lines(p.styles.Group, node),
				})
			}
		}

		node, ok := render(s, st.Text)
		if !ok {
			continue
		}
		selected := st.Selected != nil && domain.Same(s, st.Selected)
		style := p.styles.Item
		if selected {
			style = p.styles.Selected
		}
		p.rows = append(p.rows, row{
			kind:       rowItem,
			suggestion: s,
			selected:   selected,
			lines:      p.lines(style, node),
		})
	}

	if len(st.Items) == 0 {
		p.rows = append(p.rows, row{
			kind:  rowEmpty,
			lines: p.lines(p.styles.Empty, p.opts.EmptyMsg),
		})
	}

	for i := range p.rows {
		if p.rows[i].kind == rowItem {
			p.rows[i].zoneID = p.opts.ZonePrefix + strconv.Itoa(i)
		}
	}
}

func (p *Panel) lines(style lipgloss.Style, node string) []string {
	return strings.Split(style.Width(p.contentWidth).Render(node), "\n")
}

func (p *Panel) defaultRender(s domain.Suggestion, _ string) (string, bool) {
	return truncate.StringWithTail(s.Label(), uint(p.contentWidth), "…"), true
}

func (p *Panel) defaultRenderGroup(group, _ string) (string, bool) {
	return truncate.StringWithTail(group, uint(p.contentWidth), "…"), true
}

// updateScroll moves the scroll window so that the selected row is visible.
// When the selected row is the first of its group the header is revealed
// with it.
func (p *Panel) updateScroll() {
	sel := -1
	for i, r := range p.rows {
		if r.selected {
			sel = i
			break
		}
	}

	if sel >= 0 {
		target := p.rows[sel]
		start := target.top
		if sel > 0 && p.rows[sel-1].kind == rowGroup {
			start = p.rows[sel-1].top
		}
		end := target.top + target.height()

		if start < p.scrollTop {
			p.scrollTop = start
		} else if end > p.scrollTop+p.visibleHeight {
			p.scrollTop += end - (p.scrollTop + p.visibleHeight)
		}
	}

	p.scrollTop = max(0, min(p.scrollTop, p.contentHeight-p.visibleHeight))
}

// View renders the visible window of the panel inside its frame
func (p *Panel) View() string {
	if !p.Open() {
		return ""
	}

	first, last := p.scrollTop, p.scrollTop+p.visibleHeight
	var visible []string
	for _, r := range p.rows {
		var chunk []string
		for j, line := range r.lines {
			if n := r.top + j; n >= first && n < last {
				chunk = append(chunk, line)
			}
		}
		if len(chunk) == 0 {
			continue
		}
		block := strings.Join(chunk, "\n")
		if p.opts.Zones != nil && r.zoneID != "" {
			block = p.opts.Zones.Mark(r.zoneID, block)
		}
		visible = append(visible, block)
	}

	root := p.styles.Root(p.opts.ClassName)
	return root.
		Width(p.contentWidth + root.GetHorizontalPadding()).
		Render(strings.Join(visible, "\n"))
}

// Overlay draws the panel onto base at its placement
func (p *Panel) Overlay(base string) string {
	if !p.Open() {
		return base
	}
	return PlaceOverlay(p.placement.Left, p.placement.Top, p.View(), base)
}

// HitTest returns the suggestion whose row contains the mouse position
func (p *Panel) HitTest(msg tea.MouseMsg) (domain.Suggestion, bool) {
	if !p.Open() || p.opts.Zones == nil {
		return nil, false
	}
	for _, r := range p.rows {
		if r.kind != rowItem {
			continue
		}
		if z := p.opts.Zones.Get(r.zoneID); z != nil && z.InBounds(msg) {
			return r.suggestion, true
		}
	}
	return nil, false
}
