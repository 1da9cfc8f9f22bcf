package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/cybergodev/jwtkit"
)

type verifyOptions struct {
	keys       keyOptions
	configFile string
	issuers    []string
	audience   []string
	subject    string
	leeway     time.Duration
	encoding   string
}

func newVerifyCmd() *cobra.Command {
	var o verifyOptions

	cmd := &cobra.Command{
		Use:   "verify [TOKEN]",
		Short: "Verify a token and print its claims",
		Long: `Checks the signature and the claims of a token. Requirements can be read
from a YAML verifier config and are extended by the flags.

The token is read from stdin when omitted or given as "-".`,
		Example: `  jwtkit verify --alg HS256 --secret "$SECRET" --iss auth0 "$TOKEN"
  jwtkit verify --alg RS256 --key public.pem --config verifier.yaml < token.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := readToken(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			alg, err := o.keys.algorithm(false)
			if err != nil {
				return err
			}
			verification, err := o.verification(alg)
			if err != nil {
				return err
			}
			verifier, err := verification.WithLogger(log.Logger).Build()
			if err != nil {
				return err
			}

			decoded, err := verifier.Verify(token)
			if err != nil {
				return fmt.Errorf("token rejected: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s token signed with %s\n",
				color.GreenString("✓ Valid"), color.New(color.Bold).Sprint(decoded.Algorithm()))
			renderClaims(cmd.OutOrStdout(), decoded.Claims())
			return nil
		},
	}

	addKeyFlags(cmd, &o.keys, "PEM encoded public key file")
	cmd.Flags().StringVarP(&o.configFile, "config", "f", "", "Verifier config file (YAML)")
	cmd.Flags().StringSliceVar(&o.issuers, "iss", nil, "Accepted issuer (repeat for several)")
	cmd.Flags().StringSliceVar(&o.audience, "aud", nil, "Required audience (repeat for several)")
	cmd.Flags().StringVar(&o.subject, "sub", "", "Required subject")
	cmd.Flags().DurationVar(&o.leeway, "leeway", 0, "Leeway for exp, nbf and iat")
	cmd.Flags().StringVar(&o.encoding, "encoding", "", "Signature encoding (base64url, base16, base32)")
	return cmd
}

// verification merges the config file with the flags. Flags win.
func (o *verifyOptions) verification(alg jwtkit.Algorithm) (*jwtkit.Verification, error) {
	cfg := jwtkit.DefaultVerifierConfig()
	if o.configFile != "" {
		loaded, err := jwtkit.LoadVerifierConfig(o.configFile)
		if err != nil {
			return nil, err
		}
		log.Debug().Msgf("using verifier config: %s", o.configFile)
		cfg = *loaded
	}

	if len(o.issuers) > 0 {
		cfg.Issuers = o.issuers
	}
	if len(o.audience) > 0 {
		cfg.Audience = o.audience
	}
	if o.subject != "" {
		cfg.Subject = o.subject
	}
	if o.leeway != 0 {
		cfg.Leeway = o.leeway
	}
	if o.encoding != "" {
		cfg.Encoding = o.encoding
	}
	cfg.AllowNone = cfg.AllowNone || o.keys.allowNone
	return cfg.Verification(alg)
}

func readToken(in io.Reader, args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		return strings.TrimSpace(args[0]), nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read token from stdin: %w", err)
	}
	token := strings.TrimSpace(line)
	if token == "" {
		return "", errors.New("no token given")
	}
	return token, nil
}
