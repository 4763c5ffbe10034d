package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/arlula-client/internal/constants"
)

// NewRootCommand creates the arlula command tree.
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "arlula",
		Short: "Arlula satellite imagery CLI",
		Long: `A command-line interface for the Arlula satellite imagery marketplace.

Search archive imagery and tasking opportunities, place orders, track the
campaigns and datasets they produce, download resources and organise
datasets into STAC collections.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "config file (default is $HOME/.arlula/config.yml)")
	flags.StringP("api", "a", "", "API endpoint URL")
	flags.StringP("output", "o", constants.FormatTable, "output format (table, json, yaml)")
	flags.BoolP("verbose", "v", false, "log HTTP traffic to stderr")
	flags.Int("retry", 0, "retry failed requests this many times")
	flags.String("cache", "", "response cache backend (memory, redis, nats)")
	flags.String("redis-addr", "", "Redis address for the redis cache, host:port")
	flags.String("nats-url", "", "NATS URL for the nats cache")

	_ = viper.BindPFlag("config", flags.Lookup("config"))
	_ = viper.BindPFlag("api", flags.Lookup("api"))
	_ = viper.BindPFlag("output", flags.Lookup("output"))
	_ = viper.BindPFlag("verbose", flags.Lookup("verbose"))
	_ = viper.BindPFlag("retry", flags.Lookup("retry"))
	_ = viper.BindPFlag("cache", flags.Lookup("cache"))
	_ = viper.BindPFlag("redis_addr", flags.Lookup("redis-addr"))
	_ = viper.BindPFlag("nats_url", flags.Lookup("nats-url"))

	rootCmd.AddCommand(NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(NewLoginCommand())
	rootCmd.AddCommand(NewLogoutCommand())
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewTestCommand())
	rootCmd.AddCommand(NewArchiveCommand())
	rootCmd.AddCommand(NewTaskingCommand())
	rootCmd.AddCommand(NewOrdersCommand())
	rootCmd.AddCommand(NewCampaignsCommand())
	rootCmd.AddCommand(NewDatasetsCommand())
	rootCmd.AddCommand(NewResourcesCommand())
	rootCmd.AddCommand(NewCollectionsCommand())

	return rootCmd
}

// initConfig reads ~/.arlula/config.yml, or the --config file, and the
// ARLULA_ environment variables.
func initConfig(cmd *cobra.Command) error {
	cfgFile := viper.GetString("config")

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("%w: %w", constants.ErrConfigDirNotFound, err)
		}

		viper.AddConfigPath(filepath.Join(home, configDirName))
		viper.SetConfigType("yml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("ARLULA")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err == nil && viper.GetBool("verbose") {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Using config file:", viper.ConfigFileUsed())
	}

	return nil
}
