package main

import (
	"fmt"
	"reflect"

	"github.com/dhamidi/scopec/lang/grammar"
	"github.com/spf13/cobra"
	"golang.org/x/exp/ebnf"
)

func newGrammarCmd() *cobra.Command {
	var verify bool
	var startProduction string
	var grammarFile string

	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Print or verify the EBNF grammar of the language",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !verify {
				_, err := cmd.OutOrStdout().Write(grammar.Source())
				return err
			}

			var g ebnf.Grammar
			var err error
			if grammarFile != "" {
				g, err = grammar.LoadFile(grammarFile)
			} else {
				g, err = grammar.Load()
			}
			if err != nil {
				printErrors(cmd, err)
				return err
			}

			if err := grammar.Verify(g, startProduction); err != nil {
				printErrors(cmd, err)
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d productions, all reachable from %s\n", len(g), startProduction)
			return nil
		},
	}

	cmd.Flags().BoolVar(&verify, "verify", false, "parse and verify the grammar instead of printing it")
	cmd.Flags().StringVar(&startProduction, "start", grammar.Start, "start production for verification")
	cmd.Flags().StringVar(&grammarFile, "file", "", "verify this grammar file instead of the built-in one")

	return cmd
}

// printErrors prints each element of an ebnf error list on its own line.
func printErrors(cmd *cobra.Command, err error) {
	for {
		unwrapped, ok := err.(interface{ Unwrap() error })
		if !ok || unwrapped.Unwrap() == nil {
			break
		}
		err = unwrapped.Unwrap()
	}
	v := reflect.ValueOf(err)
	if v.Kind() == reflect.Slice {
		for i := 0; i < v.Len(); i++ {
			fmt.Fprintln(cmd.ErrOrStderr(), v.Index(i).Interface())
		}
	} else {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
	}
}
