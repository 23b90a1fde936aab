// Package cmd implements the folio command line.
package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"

	"github.com/PaesslerAG/jsonpath"
	"github.com/charmbracelet/glamour"
	"github.com/etnz/folio"
	"github.com/etnz/folio/obs"
	"github.com/google/subcommands"
	"go.uber.org/zap"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&balanceCmd{}, "reports")
	c.Register(&balanceCmd{trial: true}, "reports")
	c.Register(&holdingsCmd{}, "reports")
	c.Register(&auditCmd{}, "reports")

	c.Register(&txCmd{}, "ledger")
	c.Register(&accountsCmd{}, "ledger")
	c.Register(&checkCmd{}, "ledger")
	c.Register(&fmtCmd{}, "ledger")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	ledgerFile  = flag.String("ledger-file", "main.jsonl", "Path to the ledger file (JSONL format). Env "+EnvLedgerFile)
	configFile  = flag.String("config", os.Getenv(EnvConfig), "Path to a TOML configuration file. Env "+EnvConfig)
	verbose     = flag.Bool("v", false, "Log debug traces to stderr")
	metricsFile = flag.String("metrics-file", "", "Write prometheus metrics to this file. Env "+EnvMetricsFile)
)

// settings returns the configuration: flags override the environment, which
// overrides the configuration file, which overrides defaults.
var settings = sync.OnceValues(func() (*Config, error) {
	cfg, err := LoadConfig(DefaultConfigFile, *configFile)
	if err != nil {
		return nil, err
	}
	set := make(map[string]string)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = f.Value.String() })
	applyFlags(cfg, set)
	return cfg, nil
})

// applyFlags overrides the configuration with the global flags explicitly set.
func applyFlags(cfg *Config, set map[string]string) {
	if v, ok := set["ledger-file"]; ok {
		cfg.LedgerFile = v
	}
	if v, ok := set["metrics-file"]; ok {
		cfg.MetricsFile = v
	}
	if v, ok := set["v"]; ok {
		if debug, _ := strconv.ParseBool(v); debug {
			cfg.LogLevel = "debug"
		}
	}
}

// newLogger returns a development logger when debug traces are enabled, and
// a no-op logger otherwise.
func newLogger(cfg *Config) *zap.Logger {
	if !cfg.Debug() {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot create logger: %v\n", err)
		return zap.NewNop()
	}
	return logger
}

// session is what report commands work on.
type session struct {
	cfg      *Config
	logger   *zap.Logger
	ledger   *folio.Ledger
	reporter *folio.Reporter
}

// openSession loads the configuration and the ledger, and prepares a reporter.
// Ledger errors are logged but do not prevent reports.
func openSession() (*session, error) {
	cfg, err := settings()
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg)
	ledger, err := folio.LoadLedger(cfg.LedgerFile)
	if err != nil {
		return nil, err
	}
	obs.SetLedgerErrors(len(ledger.Errors()))
	for _, err := range ledger.Errors() {
		logger.Debug("ledger error", zap.Error(err))
	}
	return &session{
		cfg:      cfg,
		logger:   logger,
		ledger:   ledger,
		reporter: folio.NewReporter(ledger, folio.WithLogger(logger)),
	}, nil
}

// WriteMetrics writes the metrics of the command to the configured textfile,
// if any.
func WriteMetrics() error { return writeMetrics(settings()) }

func writeMetrics(cfg *Config, err error) error {
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	if cfg.MetricsFile == "" {
		return nil
	}
	return obs.WriteTextfile(cfg.MetricsFile)
}

// Execute runs the command selected on the command line, or an extension
// when no such command is registered, then writes metrics.
func Execute(ctx context.Context, c *subcommands.Commander) subcommands.ExitStatus {
	if name := flag.Arg(0); name != "" && !registered(c, name) {
		if found, code := RunExtension(name, flag.Args()[1:]); found {
			return subcommands.ExitStatus(code)
		}
	}
	status := c.Execute(ctx)
	if err := WriteMetrics(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing metrics: %v\n", err)
	}
	return status
}

// registered reports whether a command name is known to the commander.
func registered(c *subcommands.Commander, name string) bool {
	found := false
	c.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) {
		if cmd.Name() == name {
			found = true
		}
	})
	return found
}

// printMarkdown renders markdown for the terminal, or prints it raw when it
// cannot be rendered.
func printMarkdown(doc string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err == nil {
		if out, err := r.Render(doc); err == nil {
			fmt.Print(out)
			return
		}
	}
	fmt.Print(doc)
}

// printJSON writes v as indented JSON. A non empty JSONPath query selects
// part of the document first.
func printJSON(w io.Writer, v any, query string) error {
	if query != "" {
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		var doc any
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.UseNumber()
		if err := dec.Decode(&doc); err != nil {
			return err
		}
		if v, err = jsonpath.Get(query, doc); err != nil {
			return fmt.Errorf("invalid query %q: %w", query, err)
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
