package main

import (
	"context"
	"encoding/json"
	stdErrors "errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/scenebridge/scenebridge/application/config"
	"github.com/scenebridge/scenebridge/application/plugin"
	"github.com/scenebridge/scenebridge/application/schema"
	"github.com/scenebridge/scenebridge/domain/entities"
	"github.com/scenebridge/scenebridge/infrastructure/appclient"
	"github.com/scenebridge/scenebridge/infrastructure/console"
	"github.com/scenebridge/scenebridge/infrastructure/memhost"
	"github.com/scenebridge/scenebridge/infrastructure/parser"
	"github.com/scenebridge/scenebridge/log"
)

// startupScene is the object set of a fresh host document.
var startupScene = []string{"Camera", "Cube", "Light"}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	os.Exit(run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	if len(args) == 0 {
		printUsage(errOut)
		return 2
	}

	switch args[0] {
	case "serve":
		return runServe(ctx, args[1:], in, out, errOut)
	case "schema":
		return runSchema(args[1:], out, errOut)
	case "exec":
		return runExec(ctx, args[1:], in, out, errOut)
	case "scene":
		return runScene(ctx, args[1:], out, errOut)
	case "help", "-h", "--help":
		printUsage(out)
		return 0
	default:
		printUsage(errOut)
		return 2
	}
}

func printUsage(w io.Writer) {
	_, _ = fmt.Fprint(w, `usage: scenebridge <command> [flags]

commands:
  serve    run an in-memory host with the listener and panel console
  schema   print JSON schemas of the listener wire types
  exec     submit a script to a running listener
  scene    list the scene objects of a running listener
`)
}

func runServe(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(errOut)
	configPath := fs.String("config", "", "YAML config file")
	port := fs.Int("port", 0, "listener port (overrides config)")
	noConsole := fs.Bool("no-console", false, "serve without the interactive panel console")
	logJSON := fs.Bool("log-json", false, "write JSON log records")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	var opts []entities.ConfigOption
	if *port != 0 {
		opts = append(opts, entities.WithPort(*port))
	}
	cfg, err := config.Load(parser.NewYamlConfigParser(), *configPath, opts...)
	if err != nil {
		_, _ = fmt.Fprintf(errOut, "error: %v\n", err)
		return 1
	}
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		_, _ = fmt.Fprintf(errOut, "error: %v\n", err)
		return 1
	}
	logger := log.New(errOut, log.WithLevel(level), log.WithJSON(*logJSON))

	h := memhost.New(memhost.WithObjects(startupScene...), memhost.WithLogger(logger))
	p := plugin.New(h, *cfg, plugin.WithLogger(logger))
	if err := p.Register(ctx); err != nil {
		_, _ = fmt.Fprintf(errOut, "error: %v\n", err)
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout+time.Second)
		defer cancel()
		if err := p.Unregister(shutdownCtx); err != nil {
			_, _ = fmt.Fprintf(errOut, "error: %v\n", err)
		}
	}()

	if *noConsole {
		<-ctx.Done()
		return 0
	}

	reload := func() {
		h.Reset(startupScene...)
		p.Reload()
	}
	c := console.New(p.Panel(), in, out, console.WithReload(reload))
	if err := c.Run(ctx); err != nil {
		_, _ = fmt.Fprintf(errOut, "error: %v\n", err)
		return 1
	}
	return 0
}

func runSchema(args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		b, err := schema.Wire(args[0])
		if err != nil {
			_, _ = fmt.Fprintf(errOut, "error: %v (known: %s)\n", err, strings.Join(schema.Names(), ", "))
			return 2
		}
		_, _ = fmt.Fprintf(out, "%s\n", b)
		return 0
	}

	all, err := schema.All()
	if err != nil {
		_, _ = fmt.Fprintf(errOut, "error: %v\n", err)
		return 1
	}
	b, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintf(errOut, "error: %v\n", err)
		return 1
	}
	_, _ = fmt.Fprintf(out, "%s\n", b)
	return 0
}

func clientFlags(name string, errOut io.Writer) (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(errOut)
	addr := fs.String("addr", entities.DefaultListenAddress+":"+strconv.Itoa(entities.DefaultPort), "listener address")
	return fs, addr
}

func runExec(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	fs, addr := clientFlags("exec", errOut)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	code := strings.Join(fs.Args(), " ")
	if fs.NArg() == 0 || code == "-" {
		b, err := io.ReadAll(in)
		if err != nil {
			_, _ = fmt.Fprintf(errOut, "error: read script: %v\n", err)
			return 1
		}
		code = string(b)
	}

	output, err := appclient.New(*addr).Execute(ctx, code)
	if err != nil {
		var reqErr *appclient.RequestError
		if stdErrors.As(err, &reqErr) && reqErr.Traceback != "" {
			_, _ = fmt.Fprintf(errOut, "%s\n", strings.TrimRight(reqErr.Traceback, "\n"))
		}
		_, _ = fmt.Fprintf(errOut, "error: %v\n", err)
		return 1
	}
	_, _ = fmt.Fprintf(out, "%s\n", output)
	return 0
}

func runScene(ctx context.Context, args []string, out, errOut io.Writer) int {
	fs, addr := clientFlags("scene", errOut)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	objects, err := appclient.New(*addr).SceneObjects(ctx)
	if err != nil {
		_, _ = fmt.Fprintf(errOut, "error: %v\n", err)
		return 1
	}
	for _, name := range objects {
		_, _ = fmt.Fprintf(out, "%s\n", name)
	}
	return 0
}
