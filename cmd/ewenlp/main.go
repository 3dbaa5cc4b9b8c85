// Command ewenlp runs Ewe dialect and tone analysis from the command line.
//
//	$ ewenlp detect "fifiɛ ŋdɔ egbea"
//	$ ewenlp convert -from inland -to anlo "zo egbea"
//	$ ewenlp scan -workers 8 ./corpus
//
// Text is read from the arguments, or from stdin when none are given.
// Every subcommand accepts -config <file>; see internal/config for keys.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"

	"github.com/az-ai-labs/ewe-lang-nlp/engine"
	"github.com/az-ai-labs/ewe-lang-nlp/internal/config"
	"github.com/az-ai-labs/ewe-lang-nlp/internal/logging"
	"github.com/az-ai-labs/ewe-lang-nlp/resource"
)

const maxStdinBytes = 1 << 20

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := &app{ctx: ctx, stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	if err := a.command().Dispatch(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "ewenlp: %v\n", err)
		os.Exit(1)
	}
}

// app carries the process streams so commands can be driven from tests.
type app struct {
	ctx    context.Context
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// session is the per-invocation state every subcommand builds from -config.
type session struct {
	cfg    *config.Config
	log    *slog.Logger
	engine *engine.Engine
}

func (a *app) command() *commander.Command {
	return &commander.Command{
		UsageLine: "ewenlp <command> [options] [text]",
		Short:     "Ewe dialect and tone analysis",
		Subcommands: []*commander.Command{
			a.detectCmd(),
			a.segmentCmd(),
			a.convertCmd(),
			a.mixCmd(),
			a.normalizeCmd(),
			a.sandhiCmd(),
			a.morphCmd(),
			a.distanceCmd(),
			a.scanCmd(),
			a.evalCmd(),
		},
		Flag: *flag.NewFlagSet("ewenlp", flag.ContinueOnError),
	}
}

// newCommand returns a subcommand with the shared -config flag registered.
func newCommand(name, usage, short string) (*commander.Command, *string) {
	cmd := &commander.Command{
		UsageLine: name + " " + usage,
		Short:     short,
		Flag:      *flag.NewFlagSet(name, flag.ContinueOnError),
	}
	path := cmd.Flag.String("config", "", "YAML config file (default $"+config.PathEnv+")")
	return cmd, path
}

func (a *app) setup(cfgPath string) (*session, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	log := logging.New(cfg.Log, a.stderr)

	var store *resource.Store
	if cfg.Resources.Dir != "" {
		store, err = resource.LoadDir(cfg.Resources.Dir, resource.WithLogger(log))
	} else {
		store, err = resource.Default()
	}
	if err != nil {
		return nil, err
	}
	if d := cfg.Resources.DefaultDialect; d != "" {
		if _, err := store.Profile(d); err != nil {
			return nil, err
		}
	}

	e, err := engine.New(store,
		engine.WithLogger(log),
		engine.WithMorphCache(cfg.Morph.CacheSize))
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, log: log, engine: e}, nil
}

// dialect returns name, or the configured default dialect when name is empty.
func (e *session) dialect(name string) string {
	if name != "" {
		return name
	}
	if d := e.cfg.Resources.DefaultDialect; d != "" {
		return d
	}
	return e.engine.Store().Default().Name
}

func (a *app) text(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	b, err := io.ReadAll(io.LimitReader(a.stdin, maxStdinBytes+1))
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	if len(b) > maxStdinBytes {
		return "", fmt.Errorf("stdin exceeds %d bytes", maxStdinBytes)
	}
	return strings.TrimRight(string(b), "\n"), nil
}

func (a *app) writeJSON(v any) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
