package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/isgd/config"
	"github.com/s0up4200/isgd/filter"
	"github.com/s0up4200/isgd/isgd"
)

// job is a single command line argument and the direction to resolve it in
type job struct {
	arg string
	op  isgd.Operation
}

// outcome holds the result of one job
type outcome struct {
	job
	result  *isgd.Result
	err     error
	skipped bool
}

// requestOptions are the per-command settings layered over the config file
type requestOptions struct {
	alias    string
	callback string
	logStats bool
}

// compiler caches filter programs between invocations in the same process
var compiler = filter.NewExprCompiler(filter.WithCache(16))

// isShortLink reports whether arg points at is.gd or v.gd
func isShortLink(arg string) bool {
	target := filter.NewTarget(arg)
	return target.Short && strings.Trim(target.Path, "/") != ""
}

// requestConfig builds the immutable request config for one job
func requestConfig(c *config.Config, opts requestOptions, j job) (isgd.Config, error) {
	format, err := isgd.ParseFormat(c.Isgd.Format)
	if err != nil {
		return isgd.Config{}, err
	}

	b := isgd.NewBuilder().
		Format(format).
		Vgd(c.Isgd.Vgd)

	if opts.callback != "" {
		b.Callback(opts.callback)
	}

	switch j.op {
	case isgd.OpLookup:
		b.ShortURL(j.arg)
	default:
		b.LongURL(j.arg).LogStats(opts.logStats || c.Isgd.LogStats)
		if opts.alias != "" {
			b.ShortURL(opts.alias)
		}
	}

	return b.Build()
}

// runJobs resolves every job with bounded concurrency. Results keep the input
// order and a failing job never cancels the others.
func runJobs(ctx context.Context, api isgd.API, c *config.Config, opts requestOptions, match filter.Filter, jobs []job) []outcome {
	outcomes := make([]outcome, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.CLI.Concurrency)

	for i, j := range jobs {
		outcomes[i].job = j

		g.Go(func() error {
			if match != nil {
				ok, err := match.Match(filter.NewTarget(j.arg))
				if err != nil {
					outcomes[i].err = err
					return nil
				}
				if !ok {
					outcomes[i].skipped = true
					return nil
				}
			}

			reqCfg, err := requestConfig(c, opts, j)
			if err != nil {
				outcomes[i].err = err
				return nil
			}

			if j.op == isgd.OpLookup {
				outcomes[i].result, outcomes[i].err = api.Lookup(ctx, "", &reqCfg)
			} else {
				outcomes[i].result, outcomes[i].err = api.Shorten(ctx, "", &reqCfg)
			}
			return nil
		})
	}

	// Jobs never return errors, failures are kept per outcome
	_ = g.Wait()

	return outcomes
}

// printOutcomes writes results to out and failures to errOut, returning the
// number of failures
func printOutcomes(out, errOut io.Writer, outcomes []outcome, log zerolog.Logger) int {
	var failed int
	for _, o := range outcomes {
		switch {
		case o.skipped:
			log.Info().Str("arg", o.arg).Msg("Skipping argument not matched by filter")
		case o.err != nil:
			failed++
			fmt.Fprintf(errOut, "%s: %v\n", o.arg, o.err)
		case o.op == isgd.OpLookup:
			fmt.Fprintf(out, "%s <-- %s\n", o.arg, o.result.Value)
		default:
			fmt.Fprintf(out, "%s --> %s\n", o.arg, o.result.Value)
		}
	}
	return failed
}

// process runs jobs through the client and prints the outcomes
func process(cmd *cobra.Command, jobs []job, opts requestOptions, expression string) error {
	var match filter.Filter
	if expression != "" {
		f, err := compiler.Compile(expression)
		if err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
		match = f
	}

	outcomes := runJobs(cmd.Context(), client, cfg, opts, match, jobs)
	failed := printOutcomes(cmd.OutOrStdout(), cmd.ErrOrStderr(), outcomes, logger)
	if failed > 0 {
		return fmt.Errorf("%d of %d requests failed", failed, len(jobs))
	}
	return nil
}

// logRequestStats logs the request counters gathered during the run
func logRequestStats(reg prometheus.Gatherer, log zerolog.Logger) {
	if log.GetLevel() > zerolog.DebugLevel {
		return
	}

	families, err := reg.Gather()
	if err != nil {
		log.Debug().Err(err).Msg("Failed to gather request metrics")
		return
	}

	for _, mf := range families {
		if mf.GetName() != "isgd_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			ev := log.Debug()
			for _, lp := range m.GetLabel() {
				ev = ev.Str(lp.GetName(), lp.GetValue())
			}
			ev.Float64("count", m.GetCounter().GetValue()).Msg("is.gd requests")
		}
	}
}
