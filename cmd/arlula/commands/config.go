package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/arlula-client/internal/constants"
	"github.com/fivetwenty-io/arlula-client/internal/logger"
	"github.com/fivetwenty-io/arlula-client/pkg/arlula"
	"github.com/fivetwenty-io/arlula-client/pkg/arlulaclient"
)

const (
	configDirName  = ".arlula"
	configFileName = "config.yml"
	natsBucket     = "arlula"
)

// Config is the persisted CLI configuration.
type Config struct {
	API       string `json:"api,omitempty"        yaml:"api,omitempty"`
	APIKey    string `json:"api_key,omitempty"    yaml:"api_key,omitempty"`
	APISecret string `json:"api_secret,omitempty" yaml:"api_secret,omitempty"`
	Output    string `json:"output,omitempty"     yaml:"output,omitempty"`
	Cache     string `json:"cache,omitempty"      yaml:"cache,omitempty"`
	RedisAddr string `json:"redis_addr,omitempty" yaml:"redis_addr,omitempty"`
	NATSURL   string `json:"nats_url,omitempty"   yaml:"nats_url,omitempty"`
}

func loadConfig() *Config {
	return &Config{
		API:       viper.GetString("api"),
		APIKey:    viper.GetString("api_key"),
		APISecret: viper.GetString("api_secret"),
		Output:    viper.GetString("output"),
		Cache:     viper.GetString("cache"),
		RedisAddr: viper.GetString("redis_addr"),
		NATSURL:   viper.GetString("nats_url"),
	}
}

// configFilePath returns the file in use, or the default location.
func configFilePath() (string, error) {
	if used := viper.ConfigFileUsed(); used != "" {
		return used, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("%w: %w", constants.ErrConfigDirNotFound, err)
	}

	return filepath.Join(home, configDirName, configFileName), nil
}

func saveConfig(config *Config) error {
	path, err := configFilePath()
	if err != nil {
		return err
	}

	err = os.MkdirAll(filepath.Dir(path), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	err = os.WriteFile(path, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// cacheConfig maps the --cache backend name to a client cache configuration.
func cacheConfig(config *Config) (*arlula.CacheConfig, error) {
	switch arlula.CacheType(strings.ToLower(config.Cache)) {
	case "", arlula.CacheTypeNone:
		return nil, nil //nolint:nilnil // no cache configured
	case arlula.CacheTypeMemory:
		return arlula.DefaultCacheConfig(), nil
	case arlula.CacheTypeRedis:
		if config.RedisAddr == "" {
			return nil, arlula.ErrRedisConfigRequired
		}

		return &arlula.CacheConfig{
			Type:    arlula.CacheTypeRedis,
			Redis:   &arlula.RedisCacheConfig{Addr: config.RedisAddr, KeyPrefix: natsBucket},
			Options: arlula.DefaultCacheOptions(),
		}, nil
	case arlula.CacheTypeNATS:
		if config.NATSURL == "" {
			return nil, arlula.ErrNATSConfigRequired
		}

		return &arlula.CacheConfig{
			Type:    arlula.CacheTypeNATS,
			NATS:    &arlula.NATSKVConfig{URL: config.NATSURL, Bucket: natsBucket, TTL: constants.DefaultCacheTTL},
			Options: arlula.DefaultCacheOptions(),
		}, nil
	default:
		return nil, fmt.Errorf("%w: %s", arlula.ErrUnsupportedCacheType, config.Cache)
	}
}

// clientConfig builds the client configuration from flags, environment and
// the config file. Debug logging goes to logOut.
func clientConfig(config *Config, logOut io.Writer) (*arlula.Config, error) {
	if config.APIKey == "" || config.APISecret == "" {
		return nil, constants.ErrNoCredentials
	}

	cache, err := cacheConfig(config)
	if err != nil {
		return nil, err
	}

	clientConfig := &arlula.Config{
		APIEndpoint: config.API,
		APIKey:      config.APIKey,
		APISecret:   config.APISecret,
		RetryMax:    viper.GetInt("retry"),
		Cache:       cache,
	}

	if viper.GetBool("verbose") {
		clientConfig.Debug = true
		clientConfig.Logger = logger.New(logger.Config{Level: "debug", Console: true, Component: "arlula"}, logOut)
	}

	return clientConfig, nil
}

func createClient(ctx context.Context, cmd *cobra.Command) (arlula.Client, error) {
	config, err := clientConfig(loadConfig(), cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	client, err := arlulaclient.New(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and modify the arlula CLI configuration stored in ~/.arlula/config.yml.",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current configuration",
		Long:  "Print the effective configuration. The API secret is masked.",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			if config.APISecret != "" {
				config.APISecret = constants.MaskedSecret
			}

			path, _ := configFilePath()

			return render(cmd.OutOrStdout(), config, func(table *tablewriter.Table) {
				table.Header("Property", "Value")
				_ = table.Append("Config File", orNotAvailable(path))
				_ = table.Append("API", orNotAvailable(arlulaclient.NormalizeEndpoint(config.API)))
				_ = table.Append("API Key", orNotAvailable(config.APIKey))
				_ = table.Append("API Secret", orNotAvailable(config.APISecret))
				_ = table.Append("Output", orNotAvailable(config.Output))
				_ = table.Append("Cache", orNotAvailable(config.Cache))
				_ = table.Append("Redis Address", orNotAvailable(config.RedisAddr))
				_ = table.Append("NATS URL", orNotAvailable(config.NATSURL))
			})
		},
	}
}

// settableKeys lists the keys config set accepts.
var settableKeys = map[string]func(*Config, string){
	"api":        func(c *Config, v string) { c.API = v },
	"output":     func(c *Config, v string) { c.Output = v },
	"cache":      func(c *Config, v string) { c.Cache = v },
	"redis_addr": func(c *Config, v string) { c.RedisAddr = v },
	"nats_url":   func(c *Config, v string) { c.NATSURL = v },
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Persist a configuration value. Keys: api, output, cache, redis_addr, nats_url.",
		Args:  cobra.ExactArgs(2), //nolint:mnd // key and value
		RunE: func(cmd *cobra.Command, args []string) error {
			set, ok := settableKeys[args[0]]
			if !ok {
				return fmt.Errorf("%w: %s", ErrUnknownConfigKey, args[0])
			}

			config := loadConfig()
			set(config, args[1])

			err := saveConfig(config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s\n", args[0])

			return nil
		},
	}
}
