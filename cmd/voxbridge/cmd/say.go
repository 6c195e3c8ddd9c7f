package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lukasbauer/voxbridge/internal/app"
	"github.com/lukasbauer/voxbridge/internal/core"
)

var sayCmd = &cobra.Command{
	Use:   "say [text]",
	Short: "Synthesize text into speech.wav",
	Long: `Initializes the engine, synthesizes the text with speaker 0 and writes
the result to speech.wav. Exits non-zero with the result name when either
step fails.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.New(cfg, newLogger(cmd))
		if err != nil {
			return fmt.Errorf("initialize: %w", err)
		}
		defer a.Close()

		f := a.Facade()
		text := strings.Join(args, " ")
		if code := f.GenerateVoice(text); code != core.ResultOK {
			return fmt.Errorf("generate voice: %w", code.Err())
		}

		size, err := fileSize(f.OutputWavePath())
		if err != nil {
			return errors.Join(errors.New("speech.wav was not written"), err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%d bytes)\n", f.OutputWavePath(), size)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sayCmd)
}

func fileSize(path string) (int64, error) {
	st, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return st.Size(), nil
}
