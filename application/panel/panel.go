// Package panel implements the interactive panel: prompt and script fields,
// a response field or activity log, and the operator buttons bound to them.
package panel

import (
	"context"
	stdErrors "errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/scenebridge/scenebridge/application/activity"
	"github.com/scenebridge/scenebridge/domain/entities"
	"github.com/scenebridge/scenebridge/domain/ports"
	"github.com/scenebridge/scenebridge/hostfuncs"
)

// Status texts shown in the panel header.
const (
	StatusNotConnected = "Not Connected"
	statusListening    = "Listening on %s"
)

// Operator ids.
const (
	OpCopyPrompt   = "claude.copy_prompt"
	OpRunScript    = "claude.run_script"
	OpSendPrompt   = "claude.send_prompt"
	OpCreateCube   = "claude.create_cube"
	OpGetSceneInfo = "claude.get_scene_info"
)

var (
	// ErrUnknownOperator is returned by Invoke for an id no operator has.
	ErrUnknownOperator = stdErrors.New("unknown operator")

	// ErrOperatorUnavailable is returned by Invoke for an operator the
	// panel variant does not offer.
	ErrOperatorUnavailable = stdErrors.New("operator unavailable in this panel variant")
)

// Operator describes a panel button.
type Operator struct {
	ID    string
	Label string
	Icon  string
}

// State is a point-in-time copy of the panel for rendering.
type State struct {
	Variant  string
	Status   string
	Prompt   string
	Script   string
	Response string
	Log      []string
}

type operatorEntry struct {
	Operator
	logOnly bool
	run     func(p *Panel, ctx context.Context)
}

// operators lists every operator in display order.
var operators = []operatorEntry{
	{Operator{OpSendPrompt, "Send Prompt", "FORWARD"}, true, (*Panel).sendPrompt},
	{Operator{OpRunScript, "Run Script", "PLAY"}, false, (*Panel).runScript},
	{Operator{OpCopyPrompt, "Copy Prompt to Clipboard", "COPYDOWN"}, false, (*Panel).copyPrompt},
	{Operator{OpCreateCube, "Create Cube", "MESH_CUBE"}, true, (*Panel).createCube},
	{Operator{OpGetSceneInfo, "Get Scene Info", "INFO"}, true, (*Panel).getSceneInfo},
}

// Panel holds the panel fields. Operators run on the caller's goroutine,
// which is the host's foreground context.
type Panel struct {
	eval    ports.Evaluator
	host    hostfuncs.Invoker
	log     *activity.Log
	logger  *slog.Logger
	variant string

	mu       sync.Mutex
	status   string
	prompt   string
	script   string
	response string
}

// New creates a panel that evaluates scripts with eval and reaches the host
// through inv.
func New(eval ports.Evaluator, inv hostfuncs.Invoker, opts ...Option) *Panel {
	p := &Panel{
		eval:    eval,
		host:    inv,
		logger:  slog.Default(),
		variant: entities.PanelVariantLog,
		status:  StatusNotConnected,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.log == nil {
		p.log = activity.New(entities.DefaultLogCapacity)
	}
	return p
}

// Variant returns the panel variant.
func (p *Panel) Variant() string { return p.variant }

// Log returns the panel's activity log.
func (p *Panel) Log() *activity.Log { return p.log }

// SetPrompt replaces the prompt field.
func (p *Panel) SetPrompt(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.prompt = text
}

// SetScript replaces the script field.
func (p *Panel) SetScript(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.script = text
}

// SetListening reports the listener address in the status field; an empty
// address means not connected.
func (p *Panel) SetListening(addr string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if addr == "" {
		p.status = StatusNotConnected
		return
	}
	p.status = fmt.Sprintf(statusListening, addr)
}

// Reset clears the fields and the activity log, as on a document reload.
// The connection status is kept.
func (p *Panel) Reset() {
	p.mu.Lock()
	p.prompt, p.script, p.response = "", "", ""
	p.mu.Unlock()
	p.log.Clear()
}

// Snapshot returns the current fields and log entries.
func (p *Panel) Snapshot() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return State{
		Variant:  p.variant,
		Status:   p.status,
		Prompt:   p.prompt,
		Script:   p.script,
		Response: p.response,
		Log:      p.log.Entries(),
	}
}

// Operators lists the operators this variant offers, in display order.
func (p *Panel) Operators() []Operator {
	out := make([]Operator, 0, len(operators))
	for _, op := range operators {
		if p.offers(op) {
			out = append(out, op.Operator)
		}
	}
	return out
}

func (p *Panel) offers(op operatorEntry) bool {
	return !op.logOnly || p.variant == entities.PanelVariantLog
}

// Invoke runs the operator with the given id. Operator failures are
// reported through the panel and host notifications, never returned; the
// only errors are for ids the panel cannot run.
func (p *Panel) Invoke(ctx context.Context, id string) error {
	for _, op := range operators {
		if op.ID != id {
			continue
		}
		if !p.offers(op) {
			return fmt.Errorf("%s: %w", id, ErrOperatorUnavailable)
		}
		p.logger.DebugContext(ctx, "panel operator", "operator", id)
		op.run(p, ctx)
		return nil
	}
	return fmt.Errorf("%s: %w", id, ErrUnknownOperator)
}

func (p *Panel) fields() (prompt, script string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.prompt, p.script
}

func (p *Panel) setResponse(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.response = text
}

// notify raises a host notification. A failing notifier is only logged.
func (p *Panel) notify(ctx context.Context, level entities.NotificationLevel, msg string) {
	_, err := hostfuncs.Call[hostfuncs.NotifyRequest, hostfuncs.NotifyResponse](
		hostfuncs.WithCaller(ctx, "panel"), p.host, hostfuncs.FuncNotify,
		hostfuncs.NotifyRequest{Level: string(level), Message: msg})
	if err != nil {
		p.logger.WarnContext(ctx, "notification failed", "level", level, "error", err)
	}
}

func (p *Panel) fail(ctx context.Context, op string, err error) {
	msg := err.Error()
	p.logger.WarnContext(ctx, "panel operator failed", "operator", op, "error", msg)
	if p.variant == entities.PanelVariantResponse {
		p.setResponse(msg)
	} else {
		p.log.Append("Error: " + msg)
	}
	p.notify(ctx, entities.LevelError, msg)
}
