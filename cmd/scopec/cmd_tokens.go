package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/scopec/format"
	"github.com/dhamidi/scopec/lang/grammar"
	"github.com/dhamidi/scopec/lang/lexer"
	"github.com/spf13/cobra"
)

func newTokensCmd() *cobra.Command {
	var outputFormat string
	var verify bool

	cmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "Tokenize a source file and dump the token stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]

			encoder, err := format.NewTokenEncoder(outputFormat, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read source file: %w", err)
			}
			stream := lexer.Tokenize(data, filename)

			if err := encoder.Encode(stream); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			if outputFormat == "json" {
				fmt.Fprintln(cmd.OutOrStdout())
			}

			if err := stream.Err(); err != nil {
				return err
			}
			if verify {
				return verifyTokens(cmd, stream)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (json, text)")
	cmd.Flags().BoolVar(&verify, "verify", false, "check every token against the lexical grammar")

	return cmd
}

func verifyTokens(cmd *cobra.Command, stream *lexer.Stream) error {
	g, err := grammar.Load()
	if err != nil {
		return err
	}
	errs := grammar.NewMatcher(g).CheckStream(stream)
	for _, err := range errs {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s: %d tokens do not match the grammar", stream.File(), len(errs))
	}
	return nil
}
