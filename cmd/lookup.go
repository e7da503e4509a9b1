package cmd

import (
	"github.com/spf13/cobra"

	"github.com/s0up4200/isgd/isgd"
)

// lookupCmd represents the lookup command
var lookupCmd = &cobra.Command{
	Use:     "lookup <short>...",
	Aliases: []string{"expand"},
	Short:   "Expand short links to their original URL",
	Long: `Expand is.gd or v.gd links. Either the full link or only its code can be
given, e.g. https://is.gd/example or example.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLookup,
}

func init() {
	rootCmd.AddCommand(lookupCmd)
}

func runLookup(cmd *cobra.Command, args []string) error {
	jobs := make([]job, len(args))
	for i, arg := range args {
		jobs[i] = job{arg: arg, op: isgd.OpLookup}
	}

	return process(cmd, jobs, requestOptions{}, "")
}
