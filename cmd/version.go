package cmd

import (
	"fmt"
	"strings"

	"github.com/PolarWolf314/endec/internal/strategy"
	"github.com/PolarWolf314/endec/internal/ui"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		versions := strategy.Versions()
		names := make([]string, len(versions))
		for i, v := range versions {
			names[i] = v.String()
		}

		fmt.Printf("endec %s\n", ui.Highlight.Sprint(strategy.CurrentVersion))
		fmt.Printf("  writes format version %s\n", strategy.CurrentVersion)
		fmt.Printf("  reads format versions %s\n", strings.Join(names, ", "))
		if verbose || debug {
			fmt.Println()
			for _, v := range versions {
				st, err := strategy.Resolve(v)
				if err != nil {
					continue
				}
				fmt.Printf("  %s\n", st)
			}
		}
	},
}
