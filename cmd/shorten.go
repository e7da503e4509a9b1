package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/isgd/isgd"
)

var (
	aliasFlag    string
	logStatsFlag bool
	callbackFlag string
	filterFlag   string
)

// filterExample is shown in the help text and must keep compiling
const filterExample = `scheme == "https" and !icontains(host, "example")`

// shortenCmd represents the shorten command
var shortenCmd = &cobra.Command{
	Use:   "shorten <url>...",
	Short: "Create short links",
	Long: `Create a short link for every URL given.

A custom alias of 5 to 30 letters, digits or underscores can be requested with
--alias when a single URL is given. --filter takes an expression such as

  ` + filterExample + `

and skips arguments that do not match. Expressions see url, scheme, host, path,
query, length and short, the expr operators (contains, matches, startsWith,
endsWith) and the case-insensitive helpers icontains, iprefix, isuffix and re.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runShorten,
}

func init() {
	rootCmd.AddCommand(shortenCmd)

	shortenCmd.Flags().StringVarP(&aliasFlag, "alias", "a", "", "custom short URL alias")
	shortenCmd.Flags().BoolVar(&logStatsFlag, "logstats", false, "enable detailed click statistics")
	shortenCmd.Flags().StringVar(&callbackFlag, "callback", "", "JSONP callback name (json format only)")
	shortenCmd.Flags().StringVarP(&filterFlag, "filter", "f", "", "only shorten URLs matching this expression")
}

func runShorten(cmd *cobra.Command, args []string) error {
	if aliasFlag != "" && len(args) > 1 {
		return fmt.Errorf("--alias can only be used with a single URL")
	}

	jobs := make([]job, len(args))
	for i, arg := range args {
		jobs[i] = job{arg: arg, op: isgd.OpShorten}
	}

	expression := cfg.CLI.Filter
	if cmd.Flags().Changed("filter") {
		expression = filterFlag
	}

	opts := requestOptions{
		alias:    aliasFlag,
		callback: callbackFlag,
		logStats: logStatsFlag,
	}

	logger.Debug().Int("count", len(jobs)).Str("filter", expression).Msg("Shortening URLs")

	return process(cmd, jobs, opts, expression)
}
