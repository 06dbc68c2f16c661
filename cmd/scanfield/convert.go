package main

import (
	"fmt"
	"io"

	"github.com/Veraticus/scanfield/internal/scanner"
	"github.com/spf13/cobra"
	"golang.org/x/text/transform"
)

func convertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert [text...]",
		Short: "Convert AZERTY scanner symbols to digits",
		Long: `Convert the symbols a scanner sends when it types digits on an AZERTY
layout without shift (& é " ' ( § è ! ç à) back into 1234567890.

Each argument is printed converted on its own line. Without arguments stdin
is converted as a stream.`,
		Example: `  scanfield convert '&é"'"'"'(§è!'
  cat codes.txt | scanfield convert`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				r := transform.NewReader(cmd.InOrStdin(), scanner.Converter())
				if _, err := io.Copy(out, r); err != nil {
					return fmt.Errorf("failed to convert input: %w", err)
				}
				return nil
			}

			for _, arg := range args {
				if _, err := fmt.Fprintln(out, scanner.Convert(arg)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
