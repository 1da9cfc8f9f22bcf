package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	LogLevelKey   = "log.level"
	LogNoColorKey = "log.no_color"

	// SecretKey is read from JWTKIT_SECRET when --secret is not given.
	SecretKey = "secret"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jwtkit",
		Short: "Sign, verify and inspect JSON Web Tokens",
		Long: `jwtkit creates and checks compact JSON Web Tokens signed with HMAC, RSA,
RSA-PSS, ECDSA or Ed25519 keys.

Flags can also be provided through JWTKIT_* environment variables,
for example JWTKIT_SECRET or JWTKIT_LOG_LEVEL.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initLogging(viper.GetString(LogLevelKey), viper.GetBool(LogNoColorKey))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	_ = viper.BindPFlag(LogLevelKey, cmd.PersistentFlags().Lookup("log-level"))

	cmd.PersistentFlags().Bool("no-color", false, "Disable color output")
	_ = viper.BindPFlag(LogNoColorKey, cmd.PersistentFlags().Lookup("no-color"))

	viper.SetEnvPrefix("JWTKIT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	viper.AutomaticEnv()

	cmd.AddCommand(newSignCmd(), newVerifyCmd(), newInspectCmd())
	return cmd
}
