package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/cybergodev/jwtkit"
)

type signOptions struct {
	keys      keyOptions
	issuers   []string
	subject   string
	audience  []string
	expiresIn time.Duration
	notBefore time.Duration
	jwtID     string
	randomID  bool
	claims    []string
	encoding  string
}

func newSignCmd() *cobra.Command {
	var o signOptions

	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Create a signed token",
		Long: `Creates a compact token carrying the given claims and prints it to stdout.
iat is always set to the current time; exp and nbf are relative to it.

Custom claims are given as name=value. Values that look like booleans or
numbers are written as such, everything else as a string.`,
		Example: `  jwtkit sign --alg HS256 --secret "$SECRET" --iss auth0 --sub user --exp 1h
  jwtkit sign --alg ES256 --key ec.pem --kid 2024-01 --claim role=admin --claim level=3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			alg, err := o.keys.algorithm(true)
			if err != nil {
				return err
			}
			enc, err := jwtkit.ParseEncoding(o.encoding)
			if err != nil {
				return err
			}

			creator, err := o.creator(time.Now())
			if err != nil {
				return err
			}
			token, err := creator.SignEncoded(alg, enc)
			if err != nil {
				return err
			}
			log.Debug().Str("alg", alg.Name()).Str("encoding", enc.String()).Msg("Token signed")

			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	addKeyFlags(cmd, &o.keys, "PEM encoded private key file")
	cmd.Flags().StringVar(&o.keys.keyID, "kid", "", "Key id written to the header")
	cmd.Flags().StringSliceVar(&o.issuers, "iss", nil, "Issuer (repeat for several)")
	cmd.Flags().StringVar(&o.subject, "sub", "", "Subject")
	cmd.Flags().StringSliceVar(&o.audience, "aud", nil, "Audience (repeat for several)")
	cmd.Flags().DurationVar(&o.expiresIn, "exp", 0, "Lifetime of the token, e.g. 15m")
	cmd.Flags().DurationVar(&o.notBefore, "nbf", 0, "Delay before the token becomes valid")
	cmd.Flags().StringVar(&o.jwtID, "jti", "", "Token id")
	cmd.Flags().BoolVar(&o.randomID, "random-jti", false, "Generate a random token id")
	cmd.Flags().StringArrayVar(&o.claims, "claim", nil, "Custom claim as name=value (repeatable)")
	cmd.Flags().StringVar(&o.encoding, "encoding", jwtkit.Base64URL.String(), "Signature encoding (base64url, base16, base32)")
	return cmd
}

func addKeyFlags(cmd *cobra.Command, o *keyOptions, keyUsage string) {
	cmd.Flags().StringVarP(&o.alg, "alg", "a", "HS256", "Signing algorithm")
	cmd.Flags().StringVar(&o.secret, "secret", "", "HMAC secret")
	cmd.Flags().StringVarP(&o.keyFile, "key", "k", "", keyUsage)
	cmd.Flags().BoolVar(&o.allowNone, "allow-none", false, "Allow the unsigned none algorithm")
}

func (o *signOptions) creator(now time.Time) (*jwtkit.Creator, error) {
	c := jwtkit.NewCreator().WithIssuedAt(now).AllowNone(o.keys.allowNone)
	if o.keys.keyID != "" {
		c.WithKeyID(o.keys.keyID)
	}
	if len(o.issuers) > 0 {
		c.WithIssuer(o.issuers...)
	}
	if o.subject != "" {
		c.WithSubject(o.subject)
	}
	if len(o.audience) > 0 {
		c.WithAudience(o.audience...)
	}
	if o.expiresIn != 0 {
		c.WithExpiresAt(now.Add(o.expiresIn))
	}
	if o.notBefore != 0 {
		c.WithNotBefore(now.Add(o.notBefore))
	}
	switch {
	case o.jwtID != "":
		c.WithJWTID(o.jwtID)
	case o.randomID:
		c.WithRandomJWTID()
	}

	for _, raw := range o.claims {
		name, value, err := parseClaim(raw)
		if err != nil {
			return nil, err
		}
		c.WithClaim(name, value)
	}
	return c, c.Err()
}

func parseClaim(raw string) (string, any, error) {
	name, value, ok := strings.Cut(raw, "=")
	if !ok || name == "" {
		return "", nil, fmt.Errorf("invalid claim %q, expected name=value", raw)
	}
	return name, claimValue(value), nil
}

func claimValue(s string) any {
	if b, err := strconv.ParseBool(s); err == nil && (s == "true" || s == "false") {
		return b
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !strings.ContainsAny(s, "xXnN") {
		return f
	}
	return s
}
