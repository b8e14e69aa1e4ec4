package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"linkstat/internal/config"
	"linkstat/internal/database"
	"linkstat/internal/logger"
	"linkstat/internal/models"
	"linkstat/internal/monitor"
	"linkstat/internal/probe"
	"linkstat/internal/report"
)

// errShowUsage asks Run to print the usage text and exit successfully
var errShowUsage = errors.New("show usage")

// App is the linkstat command line program
type App struct {
	Stdout io.Writer
	Stderr io.Writer

	// NewTransport creates the transport behind the probe session
	NewTransport func(opts probe.TransportOptions) (probe.Transport, error)
}

// New creates an App writing the result to stdout and logs to stderr
func New(stdout, stderr io.Writer) *App {
	return &App{
		Stdout: stdout,
		Stderr: stderr,
		NewTransport: func(opts probe.TransportOptions) (probe.Transport, error) {
			return probe.NewHTTPTransport(opts)
		},
	}
}

// Run executes the program for args, program name included, and returns
// the process exit code
func (a *App) Run(ctx context.Context, args []string) int {
	// Every option takes a value, so a valid command line has odd length
	if len(args)%2 == 0 {
		printUsage(a.Stdout)
		return 0
	}

	cmd := a.newRootCommand()
	cmd.SetArgs(args[1:])
	if err := cmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, errShowUsage) {
			printUsage(a.Stdout)
			return 0
		}
		fmt.Fprintf(a.Stderr, "linkstat: %v\n", err)
		return 1
	}
	return 0
}

func (a *App) newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "linkstat",
		Short:         "Measure HTTP connection quality to a remote server",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return errShowUsage
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			log, err := logger.New(cfg.Logger, a.Stderr)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer log.Close()

			return a.run(cmd.Context(), cfg, log)
		},
	}

	cmd.SetOut(a.Stdout)
	cmd.SetErr(a.Stderr)
	cmd.SetHelpFunc(func(*cobra.Command, []string) {
		printUsage(a.Stdout)
	})
	cmd.SetFlagErrorFunc(func(*cobra.Command, error) error {
		return errShowUsage
	})
	config.RegisterFlags(cmd.Flags())

	return cmd
}

// run drives one invocation: session, headers, aggregation, output, teardown
func (a *App) run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	transport, err := a.NewTransport(probe.TransportOptions{
		Timeout:         cfg.Timeout,
		MaxRedirects:    cfg.MaxRedirects,
		FailOnHTTPError: cfg.FailOnHTTPError,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize probe session: %w", err)
	}
	session := probe.NewSessionWithTransport(transport, log.WithComponent("probe"))
	defer func() {
		if err := session.Close(); err != nil {
			log.Warn("failed to close probe session", "error", err)
		}
	}()

	var headers *probe.HeaderSet
	if len(cfg.Headers) > 0 {
		headers = probe.NewHeaderSet()
		for _, h := range cfg.Headers {
			if err := headers.Add(h); err != nil {
				log.Warn("ignoring header", "header", h, "error", err)
			}
		}
	}

	db, err := database.New(database.MemoryPath)
	if err != nil {
		return fmt.Errorf("failed to open sample log: %w", err)
	}
	defer db.Close()
	if err := db.InitSchema(); err != nil {
		return fmt.Errorf("failed to initialize sample log: %w", err)
	}

	mon := monitor.New(session, db, log.WithComponent("monitor"))
	result := mon.Aggregate(ctx, cfg.URL, headers, cfg.Iterations())

	if err := report.WriteLine(a.Stdout, result.Metrics); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}

	if cfg.ReportDir != "" {
		var gen models.ReportGenerator = report.NewGenerator(db, log.WithComponent("report"))
		dir, err := gen.GenerateReport(cfg.ReportDir, result)
		if err != nil {
			log.Error("failed to generate report", "error", err)
		} else {
			log.Info("report written", "dir", dir)
		}
	}

	if headers != nil {
		if err := headers.Clear(); err != nil {
			log.Warn("failed to clear headers", "error", err)
		}
	}
	return nil
}

// Main runs the program against the process streams
func Main(ctx context.Context) int {
	return New(os.Stdout, os.Stderr).Run(ctx, os.Args)
}
