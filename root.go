package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dsmtools/syno-photos-util/internal/conf"
	"github.com/dsmtools/syno-photos-util/internal/syno"
)

// version is set at build time via ldflags.
var version = "dev"

// Global persistent flags, bound in newRootCmd().
var (
	flagTimeout int
	flagVerbose bool
	flagQuiet   bool
)

// Timeout bounds for the shared HTTP client. DSM can be slow to answer over
// WAN links, so the floor only rejects values that would break normal calls.
const (
	defaultTimeoutSeconds = 30
	minTimeoutSeconds     = 5
)

// newRootCmd builds and returns the fully-assembled root command with all
// subcommands registered. Called once from main().
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "syno-photos-util",
		Short:   "Synology Photos CLI helper",
		Long:    "Helper for a number of tasks unavailable in the Synology Photos web interface.",
		Version: version,
		// Silence cobra's default error/usage printing — we handle it ourselves.
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if flagTimeout < minTimeoutSeconds {
				return fmt.Errorf("--timeout must not be less than %d seconds", minTimeoutSeconds)
			}

			return nil
		},
	}

	cmd.PersistentFlags().IntVar(&flagTimeout, "timeout", defaultTimeoutSeconds,
		"HTTP request timeout in seconds")
	cmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	cmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress informational output")

	cmd.AddCommand(newLoginCmd())
	cmd.AddCommand(newLogoutCmd())
	cmd.AddCommand(newStatusCmd())
	cmd.AddCommand(newAlbumsCmd())
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newExportCmd())
	cmd.AddCommand(newCheckUpdateCmd())

	return cmd
}

// app bundles the state every command needs: the persisted session record,
// the optional defaults file, and the logger.
type app struct {
	conf     *conf.Conf
	confPath string
	settings conf.Settings
	logger   *slog.Logger
}

// newApp loads the session record and defaults file and builds the logger.
func newApp() (*app, error) {
	settings, err := conf.LoadSettings("")
	if err != nil {
		return nil, err
	}

	logger := buildLogger(settings.LogLevel)

	path, err := conf.Path("")
	if err != nil {
		return nil, err
	}

	return &app{
		conf:     conf.Load(path, logger),
		confPath: path,
		settings: settings,
		logger:   logger,
	}, nil
}

// httpClient returns an HTTP client with the effective timeout: the flag
// when set, else the defaults file, else 30 seconds.
func (a *app) httpClient() *http.Client {
	seconds := flagTimeout
	if seconds == defaultTimeoutSeconds && a.settings.TimeoutSeconds >= minTimeoutSeconds {
		seconds = a.settings.TimeoutSeconds
	}

	return &http.Client{Timeout: time.Duration(seconds) * time.Second}
}

// sessionClient builds an authenticated API client from the persisted
// session, failing with a sign-in hint when there is none.
func (a *app) sessionClient() (*syno.Client, error) {
	if !a.conf.SignedIn() {
		return nil, fmt.Errorf("you are not signed in to DSM, use the 'login' command (see '--help' for details)")
	}

	return syno.NewClient(a.conf.Session.URL, a.conf.Session.SID, a.httpClient(), a.logger), nil
}

// buildLogger creates an slog.Logger writing to stderr. The defaults file
// provides the baseline level; --verbose and --quiet override it because
// CLI flags always win.
func buildLogger(configLevel string) *slog.Logger {
	level := slog.LevelInfo

	switch configLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	if flagVerbose {
		level = slog.LevelDebug
	}

	if flagQuiet {
		level = slog.LevelError
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// exitOnError prints a user-friendly error message to stderr and exits.
func exitOnError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
