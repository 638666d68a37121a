package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/scopec/config"
	"github.com/dhamidi/scopec/format"
	"github.com/dhamidi/scopec/lang/parser"
	"github.com/spf13/cobra"
)

func newParseCmd(cfg *config.Config) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a source file and dump its node graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]

			encoder, err := format.NewGraphEncoder(outputFormat, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read source file: %w", err)
			}

			p, err := parser.ParseSource(data, filename, cfg.ParserOptions()...)
			if err != nil {
				return err
			}
			defer p.Destroy()

			if err := encoder.Encode(p.Graph()); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			if outputFormat == "json" {
				fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (json, text)")

	return cmd
}
