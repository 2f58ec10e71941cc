package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytmeta/internal/formatter"
	"github.com/desertthunder/ytmeta/internal/server"
	"github.com/desertthunder/ytmeta/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	svc        server.Querier
	metrics    *server.Metrics
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Service    server.Querier
	Metrics    *server.Metrics
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		svc:        opts.Service,
		metrics:    opts.Metrics,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

func (r *Runner) app() *cli.Command {
	return &cli.Command{
		Name:     "ytmeta",
		Usage:    "Normalized YouTube Music metadata over HTTP and the command line",
		Version:  "0.1.0",
		Commands: r.register(),
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		serveCommand, searchCommand, batchCommand, upNextCommand, relatedCommand, lyricsCommand,
		artistCommand, albumCommand, configCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) service() (server.Querier, error) {
	if r.svc == nil {
		return nil, fmt.Errorf("%w: query service not initialized", shared.ErrServiceUnavailable)
	}
	return r.svc, nil
}

// format reads the --format flag.
func (r *Runner) format(cmd *cli.Command) (formatter.Format, error) {
	return formatter.ParseFormat(cmd.String("format"))
}

// emit writes rendered output to --output when set, otherwise to the runner's writer.
func (r *Runner) emit(cmd *cli.Command, data []byte) error {
	if path := cmd.String("output"); path != "" {
		if err := formatter.WriteExport(path, data); err != nil {
			return err
		}
		r.logger.Info("output written", "path", path)
		return nil
	}

	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
