package cmd

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/spf13/cobra"

	"github.com/lukasbauer/voxbridge/internal/app"
)

var verbose bool

// cfg starts from the environment; persistent flags override it.
var cfg = app.LoadConfigFromEnv()

var rootCmd = &cobra.Command{
	Use:   "voxbridge",
	Short: "VOICEVOX text-to-speech from the command line",
	Long: `voxbridge drives a VOICEVOX core (native, built with -tags voicevox)
or a running VOICEVOX engine (VOICEVOX_BACKEND=http).

Settings are read from the same environment variables as the server;
flags override them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if cfg.SentryDSN == "" {
			return
		}
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: cfg.Environment,
		}); err != nil {
			newLogger(cmd).Printf("sentry init failed: %v", err)
		}
	},
}

// Execute runs the CLI and prints a returned error once to stderr.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "error: %v\n", err)
		if cfg.SentryDSN != "" {
			sentry.CaptureException(err)
		}
	}
	sentry.Flush(2 * time.Second)
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log engine and facade activity to stderr")
	rootCmd.PersistentFlags().StringVar(&cfg.Backend, "backend", cfg.Backend, "engine backend: native or http")
	rootCmd.PersistentFlags().StringVar(&cfg.EngineURL, "engine-url", cfg.EngineURL, "VOICEVOX engine URL for the http backend")
	rootCmd.PersistentFlags().StringVar(&cfg.OpenJTalkDict, "dict", cfg.OpenJTalkDict, "OpenJTalk dictionary directory, relative to the executable unless absolute")
	rootCmd.PersistentFlags().StringVar(&cfg.OutputDir, "out-dir", cfg.OutputDir, "directory for speech.wav (default: next to the executable)")
}

func newLogger(cmd *cobra.Command) *log.Logger {
	if !verbose {
		return log.New(io.Discard, "", 0)
	}
	return log.New(cmd.ErrOrStderr(), "", log.LstdFlags)
}
