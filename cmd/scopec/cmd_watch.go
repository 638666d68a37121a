package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/dhamidi/scopec/config"
	"github.com/dhamidi/scopec/lang/parser"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// sourceExt is the extension watched inside directories.
const sourceExt = ".sc"

func newWatchCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <paths...>",
		Short: "Re-check source files whenever they are written",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			w, err := fsnotify.NewWatcher()
			if err != nil {
				return fmt.Errorf("create watcher: %w", err)
			}
			defer w.Close()

			var files []string
			for _, path := range args {
				if err := w.Add(path); err != nil {
					return fmt.Errorf("watch %s: %w", path, err)
				}
				found, err := sourceFiles(path)
				if err != nil {
					return err
				}
				files = append(files, found...)
			}

			results, err := checkFiles(ctx, files, cfg.Jobs, cfg.ParserOptions(), nil)
			if err != nil {
				return err
			}
			reportWatch(cmd.OutOrStdout(), results...)

			return watchLoop(ctx, w, cmd.OutOrStdout(), args, cfg.ParserOptions())
		},
	}
}

// sourceFiles lists the files a watched path stands for: the path itself,
// or the source files directly inside a directory.
func sourceFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	return filepath.Glob(filepath.Join(path, "*"+sourceExt))
}

func watchLoop(ctx context.Context, w *fsnotify.Watcher, out io.Writer, roots []string, opts []parser.Option) error {
	explicit := make(map[string]bool, len(roots))
	for _, root := range roots {
		explicit[filepath.Clean(root)] = true
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			name := filepath.Clean(ev.Name)
			if !explicit[name] && filepath.Ext(name) != sourceExt {
				continue
			}
			log.Debugf("%s: %s", ev.Op, name)
			reportWatch(out, checkFile(name, opts, nil))
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Errorf("watch: %s", err)
		}
	}
}

func reportWatch(w io.Writer, results ...checkResult) {
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintln(w, r.Err)
			continue
		}
		fmt.Fprintf(w, "%s: ok (%d nodes)\n", r.File, r.Nodes)
	}
}
