package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"automata/internal/automaton"
	"automata/internal/pipeline"
	"automata/internal/table"
)

const usage = `usage:
  fa [flags] <input-table> <output>
  fa [flags] regex|table|grammar|moore|mealy <input> <output>
  fa [flags] -batch <jobs-file>`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one invocation and returns the exit code: 1 for a failed
// conversion, 2 for bad usage.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("fa", flag.ContinueOnError)
	fs.SetOutput(stderr)
	minimize := fs.Bool("min", false, "minimize the DFA")
	nfa := fs.Bool("nfa", false, "write the epsilon-NFA instead of the DFA")
	sentinel := fs.String("sentinel", table.NoTransition, `cell written for an absent transition: "-" or ""`)
	format := fs.String("format", "table", "output format: table or dot")
	batch := fs.String("batch", "", "run every job of a kind;input;output jobs file")
	workers := fs.Int("workers", 4, "parallel conversions in batch mode")
	verbose := fs.Bool("v", false, "debug logging")
	printRegexp := fs.Bool("regexp", false, "print a pattern equivalent to the result")
	fs.Usage = func() {
		fmt.Fprintln(stderr, usage)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger := newLogger(*verbose, stderr)
	automaton.SetLogger(logger)

	outFormat, err := pipeline.ParseFormat(*format)
	if err != nil {
		logger.Error(err)
		return 2
	}
	if err := table.CheckSentinel(*sentinel); err != nil {
		logger.Error(err)
		return 2
	}
	conv := pipeline.New(
		pipeline.WithLogger(logger),
		pipeline.WithMinimize(*minimize),
		pipeline.WithKeepNFA(*nfa),
		pipeline.WithSentinel(*sentinel),
		pipeline.WithFormat(outFormat),
	)

	rest := fs.Args()
	ctx := context.Background()

	if *batch != "" {
		if len(rest) != 0 {
			fs.Usage()
			return 2
		}
		jobs, err := pipeline.LoadJobs(*batch)
		if err != nil {
			return fail(conv.Logger(), err)
		}
		if err := conv.RunBatch(ctx, jobs, *workers); err != nil {
			return fail(conv.Logger(), err)
		}
		fmt.Fprintf(stdout, "%d conversions done\n", len(jobs))
		return 0
	}

	var job pipeline.Job
	switch len(rest) {
	case 2:
		job = pipeline.Job{Kind: pipeline.KindTable, Input: rest[0], Output: rest[1]}
	case 3:
		kind, err := pipeline.ParseKind(rest[0])
		if err != nil {
			logger.Error(err)
			fs.Usage()
			return 2
		}
		job = pipeline.Job{Kind: kind, Input: rest[1], Output: rest[2]}
	default:
		fs.Usage()
		return 2
	}

	res, err := conv.Convert(ctx, job)
	if err != nil {
		return fail(conv.Logger(), err)
	}
	fmt.Fprintf(stdout, "%d states written to %s\n", len(res.Output().Reachable()), job.Output)

	if *printRegexp {
		// The output is already committed; a missing pattern does not undo it.
		pattern, err := automaton.ToRegexp(res.Output())
		if err != nil {
			conv.Logger().Warnf("no equivalent pattern: %v", err)
			return 0
		}
		fmt.Fprintln(stdout, pattern)
	}
	return 0
}

func newLogger(verbose bool, w io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logger.SetLevel(logrus.WarnLevel)
	if lvl, err := logrus.ParseLevel(os.Getenv("FA_LOG_LEVEL")); err == nil {
		logger.SetLevel(lvl)
	}
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

func fail(logger logrus.FieldLogger, err error) int {
	logger.Errorf("conversion failed: %v", err)
	return 1
}
