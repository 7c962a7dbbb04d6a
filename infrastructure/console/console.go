// Package console drives the interactive panel from a line-oriented
// terminal. It plays the host's foreground event context in the
// standalone binary.
package console

import (
	"bufio"
	"context"
	stdErrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/scenebridge/scenebridge/application/panel"
	"github.com/scenebridge/scenebridge/domain/entities"
)

// scriptTerminator ends a multi-line script entered after "script".
const scriptTerminator = "."

// aliases maps short commands to operator ids.
var aliases = map[string]string{
	"copy":  panel.OpCopyPrompt,
	"run":   panel.OpRunScript,
	"send":  panel.OpSendPrompt,
	"cube":  panel.OpCreateCube,
	"scene": panel.OpGetSceneInfo,
}

// Console implements a panel front-end for CLI environments.
type Console struct {
	in     io.Reader
	out    io.Writer
	panel  *panel.Panel
	prompt string
	reload func()
}

// Option configures a Console.
type Option func(*Console)

// WithReload enables the "reload" command, which calls fn as the host
// does when a new document is loaded.
func WithReload(fn func()) Option {
	return func(c *Console) {
		c.reload = fn
	}
}

// New creates a Console reading commands from in and writing to out.
func New(p *panel.Panel, in io.Reader, out io.Writer, opts ...Option) *Console {
	c := &Console{in: in, out: out, panel: p, prompt: "> "}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsInteractive checks if the input is a terminal.
func (c *Console) IsInteractive() bool {
	if f, ok := c.in.(*os.File); ok {
		stat, err := f.Stat()
		if err != nil {
			return false
		}
		return (stat.Mode() & os.ModeCharDevice) != 0
	}
	return false
}

// Run reads commands until input ends, "quit" is entered or ctx is done.
func (c *Console) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	c.printHeader()
	next := func() (string, bool, error) {
		select {
		case <-ctx.Done():
			return "", false, ctx.Err()
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return "", false, err
				default:
					return "", false, nil
				}
			}
			return line, true, nil
		}
	}

	for {
		c.printf("%s", c.prompt)
		line, ok, err := next()
		if err != nil {
			if stdErrors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
		if !ok {
			return nil
		}

		cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
		switch cmd {
		case "":
		case "quit", "exit":
			return nil
		case "help":
			c.printHelp()
		case "show":
			c.printState()
		case "reload":
			if c.reload == nil {
				c.printf("reload is not available\n")
				break
			}
			c.reload()
			c.printf("Document reloaded.\n")
		case "prompt":
			c.panel.SetPrompt(arg)
		case "script":
			if arg != "" {
				c.panel.SetScript(arg)
				break
			}
			var body []string
			for {
				l, ok, err := next()
				if err != nil || !ok {
					c.panel.SetScript(strings.Join(body, "\n"))
					return err
				}
				if l == scriptTerminator {
					break
				}
				body = append(body, l)
			}
			c.panel.SetScript(strings.Join(body, "\n"))
		default:
			c.invoke(ctx, cmd)
		}
	}
}

func (c *Console) invoke(ctx context.Context, cmd string) {
	id := cmd
	if alias, ok := aliases[cmd]; ok {
		id = alias
	}

	log := c.panel.Log()
	before := log.Appended()
	if err := c.panel.Invoke(ctx, id); err != nil {
		c.printf("%v\n", err)
		return
	}

	state := c.panel.Snapshot()
	if state.Variant == entities.PanelVariantResponse && id == panel.OpRunScript {
		c.printf("Response: %s\n", state.Response)
		return
	}
	added := min(log.Appended()-before, len(state.Log))
	for _, entry := range state.Log[len(state.Log)-added:] {
		c.printf("%s\n", entry)
	}
}

func (c *Console) printHeader() {
	state := c.panel.Snapshot()
	c.printf("Claude MCP (%s)\n", state.Status)
	c.printf("Type \"help\" for commands.\n")
}

func (c *Console) printHelp() {
	c.printf("prompt <text>    set the prompt field\n")
	c.printf("script [code]    set the script field; without code, read lines until \"%s\"\n", scriptTerminator)
	c.printf("show             print the panel fields and log\n")
	if c.reload != nil {
		c.printf("reload           load a new document\n")
	}
	for _, op := range c.panel.Operators() {
		short := op.ID
		for alias, id := range aliases {
			if id == op.ID {
				short = alias
			}
		}
		c.printf("%-16s %s\n", short, op.Label)
	}
	c.printf("quit             leave the console\n")
}

func (c *Console) printState() {
	state := c.panel.Snapshot()
	c.printf("Status: %s\n", state.Status)
	c.printf("Prompt: %s\n", state.Prompt)
	c.printf("Script: %s\n", state.Script)
	if state.Variant == entities.PanelVariantResponse {
		c.printf("Response: %s\n", state.Response)
		return
	}
	c.printf("Log:\n")
	for _, entry := range state.Log {
		c.printf("  %s\n", entry)
	}
}

func (c *Console) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.out, format, args...)
}
