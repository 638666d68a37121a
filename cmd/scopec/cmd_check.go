package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dhamidi/scopec/config"
	"github.com/dhamidi/scopec/lang/grammar"
	"github.com/dhamidi/scopec/lang/parser"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newCheckCmd(cfg *config.Config) *cobra.Command {
	var conform bool

	cmd := &cobra.Command{
		Use:   "check <files...>",
		Short: "Parse source files concurrently and report failures",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var m *grammar.Matcher
			if conform {
				g, err := grammar.Load()
				if err != nil {
					return err
				}
				m = grammar.NewMatcher(g)
			}
			results, err := checkFiles(cmd.Context(), args, cfg.Jobs, cfg.ParserOptions(), m)
			if err != nil {
				return err
			}
			if failed := reportResults(cmd.OutOrStdout(), results); failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&cfg.Jobs, "jobs", "j", cfg.Jobs, "number of files parsed in parallel")
	cmd.Flags().BoolVar(&conform, "grammar", false, "also check each token stream against the grammar")

	return cmd
}

type checkResult struct {
	File  string
	Nodes int
	Err   error
}

// checkFile parses one file with its own parser. With a non-nil matcher the
// token stream must also conform to the grammar's start production.
func checkFile(filename string, opts []parser.Option, m *grammar.Matcher) checkResult {
	data, err := os.ReadFile(filename)
	if err != nil {
		return checkResult{File: filename, Err: fmt.Errorf("read source file: %w", err)}
	}
	p, err := parser.ParseSource(data, filename, opts...)
	if err != nil {
		return checkResult{File: filename, Err: err}
	}
	defer p.Destroy()
	if m != nil {
		if err := m.Conforms(p.Stream(), grammar.Start); err != nil {
			return checkResult{File: filename, Err: err}
		}
	}
	return checkResult{File: filename, Nodes: p.Graph().Len()}
}

// checkFiles parses files with at most jobs parsers running at once. Results
// are in argument order. Only cancellation of ctx is returned as an error;
// parse failures are reported per file.
func checkFiles(ctx context.Context, files []string, jobs int, opts []parser.Option, m *grammar.Matcher) ([]checkResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if jobs <= 0 {
		jobs = config.DefaultJobs
	}
	results := make([]checkResult, len(files))
	semaphore := make(chan struct{}, jobs)

	g, gctx := errgroup.WithContext(ctx)

	for i, file := range files {
		g.Go(func() error {
			select {
			case semaphore <- struct{}{}:
			case <-gctx.Done():
				return gctx.Err()
			}
			defer func() { <-semaphore }()

			results[i] = checkFile(file, opts, m)
			log.Debugf("checked %s", file)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// reportResults prints one line per failure and returns the failure count.
func reportResults(w io.Writer, results []checkResult) int {
	failed := 0
	for _, r := range results {
		if r.Err == nil {
			continue
		}
		failed++
		fmt.Fprintln(w, r.Err)
	}
	return failed
}
