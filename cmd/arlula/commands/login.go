package commands

import (
	"bufio"
	"fmt"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/fivetwenty-io/arlula-client/internal/constants"
	"github.com/fivetwenty-io/arlula-client/pkg/arlulaclient"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var (
		apiKey    string
		apiSecret string
		skipTest  bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store API credentials",
		Long:  "Verify an API key and secret against the Arlula API and save them to the configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			if apiKey == "" {
				apiKey = config.APIKey
			}

			if apiKey == "" {
				reader := bufio.NewReader(cmd.InOrStdin())
				_, _ = fmt.Fprint(cmd.OutOrStdout(), "API key: ")
				apiKey, _ = reader.ReadString('\n')
				apiKey = strings.TrimSpace(apiKey)
			}

			if apiSecret == "" {
				_, _ = fmt.Fprint(cmd.OutOrStdout(), "API secret: ")

				secretBytes, err := term.ReadPassword(int(syscall.Stdin))
				if err != nil {
					return fmt.Errorf("failed to read secret: %w", err)
				}

				_, _ = fmt.Fprintln(cmd.OutOrStdout())
				apiSecret = strings.TrimSpace(string(secretBytes))
			}

			if apiSecret == "" {
				return constants.ErrSecretRequired
			}

			config.APIKey = apiKey
			config.APISecret = apiSecret

			if !skipTest {
				clientConfig, err := clientConfig(config, cmd.ErrOrStderr())
				if err != nil {
					return err
				}

				client, err := arlulaclient.New(cmd.Context(), clientConfig)
				if err != nil {
					return fmt.Errorf("failed to create client: %w", err)
				}

				err = client.Test(cmd.Context())
				if err != nil {
					return fmt.Errorf("credentials rejected: %w", err)
				}
			}

			err := saveConfig(config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged in to %s\n", arlulaclient.NormalizeEndpoint(config.API))

			return nil
		},
	}

	cmd.Flags().StringVarP(&apiKey, "key", "k", "", "API key")
	cmd.Flags().StringVarP(&apiSecret, "secret", "s", "", "API secret (prompted when omitted)")
	cmd.Flags().BoolVar(&skipTest, "skip-test", false, "save credentials without verifying them")

	return cmd
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove stored API credentials",
		Long:  "Remove the API key and secret from the configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			config.APIKey = ""
			config.APISecret = ""

			err := saveConfig(config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Logged out")

			return nil
		},
	}
}

// NewTestCommand creates the test command.
func NewTestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "test",
		Short: "Verify the configured credentials",
		Long:  "Call the API test endpoint with the configured credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context(), cmd)
			if err != nil {
				return err
			}

			err = client.Test(cmd.Context())
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Credentials OK")

			return nil
		},
	}
}
