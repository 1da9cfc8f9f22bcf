package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/cybergodev/jwtkit"
)

func newInspectCmd() *cobra.Command {
	var encoding string

	cmd := &cobra.Command{
		Use:   "inspect [TOKEN]",
		Short: "Show header and claims without verifying the signature",
		Example: `  jwtkit inspect "$TOKEN"
  pbpaste | jwtkit inspect`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := readToken(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			enc, err := jwtkit.ParseEncoding(encoding)
			if err != nil {
				return err
			}
			decoded, err := jwtkit.DecodeEncoded(token, enc)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, color.YellowString("! Signature not verified"))
			fmt.Fprintln(out, color.New(color.Bold).Sprint("\n── Header ──"))
			renderClaims(out, decoded.Header())
			fmt.Fprintln(out, color.New(color.Bold).Sprint("\n── Payload ──"))
			renderClaims(out, decoded.Claims())
			fmt.Fprintf(out, "  %s: %d bytes\n", color.New(color.Faint).Sprint("Signature"), len(decoded.Signature()))
			return nil
		},
	}

	cmd.Flags().StringVar(&encoding, "encoding", jwtkit.Base64URL.String(), "Signature encoding (base64url, base16, base32)")
	return cmd
}
