package fetch

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"autosuggest/internal/domain"
	"autosuggest/internal/session"
)

// DefaultMinLength is the input length below which no fetch is issued
const DefaultMinLength = 2

// ResultMsg carries a fetch result back to the event loop
type ResultMsg struct {
	Owner      string
	Generation uint64
	Text       string
	Items      []domain.Suggestion
	Err        error
}

// OK reports whether the collaborator produced an answer
func (m ResultMsg) OK() bool {
	return m.Err == nil && m.Items != nil
}

// Outcome describes what Apply did with a result
type Outcome int

const (
	// Installed means the result replaced the session list
	Installed Outcome = iota
	// Stale means a newer request or a clear superseded the result
	Stale
	// Dead means the coordinator was closed
	Dead
	// Failed means the collaborator errored or gave no answer
	Failed
	// Foreign means the result belongs to another coordinator
	Foreign
)

func (o Outcome) String() string {
	switch o {
	case Installed:
		return "installed"
	case Stale:
		return "stale"
	case Dead:
		return "dead"
	case Failed:
		return "failed"
	case Foreign:
		return "foreign"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Options configures a Coordinator
type Options struct {
	Owner     string
	Fetcher   Fetcher
	MinLength int
	Timeout   time.Duration
	Logger    *log.Logger
	// OnClear is called when input shrinks below MinLength
	OnClear func()
}

// Coordinator issues one fetch per qualifying keystroke and fences results
// against the session generation.
type Coordinator struct {
	owner     string
	session   *session.Session
	fetcher   Fetcher
	minLength int
	timeout   time.Duration
	onClear   func()
	logger    *log.Logger

	root       context.Context
	rootCancel context.CancelFunc
	cancel     context.CancelFunc
	dead       bool
}

// NewCoordinator creates a coordinator bound to s
func NewCoordinator(s *session.Session, opts Options) *Coordinator {
	minLength := opts.MinLength
	if minLength <= 0 {
		minLength = DefaultMinLength
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	root, cancel := context.WithCancel(context.Background())
	return &Coordinator{
		owner:      opts.Owner,
		session:    s,
		fetcher:    opts.Fetcher,
		minLength:  minLength,
		timeout:    opts.Timeout,
		onClear:    opts.OnClear,
		logger:     logger,
		root:       root,
		rootCancel: cancel,
	}
}

// OnKeyInput handles a text-changing keystroke. Short input clears the
// session synchronously; otherwise a fetch command is returned.
func (c *Coordinator) OnKeyInput(text string) tea.Cmd {
	if c.dead {
		return nil
	}
	if utf8.RuneCountInString(text) < c.minLength {
		c.Cancel()
		if c.onClear != nil {
			c.onClear()
		} else {
			c.session.Clear()
		}
		return nil
	}
	return c.issue(text)
}

// Touch bumps the generation without issuing a fetch, invalidating any
// request in flight.
func (c *Coordinator) Touch() {
	c.Cancel()
	c.session.Bump()
}

func (c *Coordinator) issue(text string) tea.Cmd {
	c.Cancel()
	gen := c.session.Bump()

	var ctx context.Context
	var cancel context.CancelFunc
	if c.timeout > 0 {
		ctx, cancel = context.WithTimeout(c.root, c.timeout)
	} else {
		ctx, cancel = context.WithCancel(c.root)
	}
	c.cancel = cancel

	c.logger.Debug("issuing fetch", "owner", c.owner, "generation", gen, "text", text)

	fetcher, owner := c.fetcher, c.owner
	return func() (msg tea.Msg) {
		defer cancel()
		defer func() {
			if r := recover(); r != nil {
				msg = ResultMsg{
					Owner:      owner,
					Generation: gen,
					Text:       text,
					Err:        fmt.Errorf("fetch panicked: %v\n%s", r, debug.Stack()),
				}
			}
		}()
		items, err := fetcher.Fetch(ctx, text)
		return ResultMsg{Owner: owner, Generation: gen, Text: text, Items: items, Err: err}
	}
}

// Apply installs msg into the session if it is still current
func (c *Coordinator) Apply(msg ResultMsg) Outcome {
	if msg.Owner != c.owner {
		return Foreign
	}
	if c.dead {
		return Dead
	}
	if msg.Generation != c.session.Generation() {
		c.logger.Debug("discarding stale fetch", "owner", c.owner, "generation", msg.Generation, "current", c.session.Generation())
		return Stale
	}
	if !msg.OK() {
		if msg.Err != nil {
			c.logger.Warn("fetch failed", "owner", c.owner, "text", msg.Text, "err", msg.Err)
		}
		return Failed
	}
	c.session.Install(msg.Text, msg.Items)
	return Installed
}

// Cancel cancels the context of the request in flight, if any
func (c *Coordinator) Cancel() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// Close marks the coordinator dead; later results are ignored
func (c *Coordinator) Close() {
	c.dead = true
	c.Cancel()
	c.rootCancel()
}

// Closed reports whether Close was called
func (c *Coordinator) Closed() bool {
	return c.dead
}
