package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lukasbauer/voxbridge/internal/core"
)

var codesCmd = &cobra.Command{
	Use:   "codes",
	Short: "List result codes",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		for _, c := range core.Codes() {
			fmt.Fprintf(out, "%3d  %s\n", int32(c), c)
		}
	},
}

func init() {
	rootCmd.AddCommand(codesCmd)
}
