//go:build integration

package integration

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// TestConfig holds configuration for integration tests.
type TestConfig struct {
	APIEndpoint string
	APIKey      string
	APISecret   string
	BinaryPath  string
	Verbose     bool
}

// LoadTestConfig loads configuration from environment variables.
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		APIEndpoint: os.Getenv("ARLULA_API"),
		APIKey:      os.Getenv("ARLULA_API_KEY"),
		APISecret:   os.Getenv("ARLULA_API_SECRET"),
		BinaryPath:  getBinaryPath(),
		Verbose:     os.Getenv("ARLULA_VERBOSE") == "true",
	}
}

// getBinaryPath determines the path to the arlula binary.
func getBinaryPath() string {
	if path := os.Getenv("ARLULA_BINARY_PATH"); path != "" {
		return path
	}

	for _, candidate := range []string{"../../arlula", "./arlula", "../arlula"} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "arlula"
}

// SkipIfMissingConfig skips the test when credentials or the binary are missing.
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.APIKey == "" || config.APISecret == "" {
		t.Skip("ARLULA_API_KEY or ARLULA_API_SECRET not set, skipping integration test")
	}

	if _, err := exec.LookPath(config.BinaryPath); err != nil {
		t.Skipf("arlula binary not found at %s, skipping integration test", config.BinaryPath)
	}
}

// CommandRunner runs the arlula binary with an isolated config file.
type CommandRunner struct {
	config     *TestConfig
	configFile string
	t          *testing.T
}

// NewCommandRunner creates a new command runner.
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	t.Helper()

	return &CommandRunner{
		config:     config,
		configFile: filepath.Join(t.TempDir(), "config.yml"),
		t:          t,
	}
}

// Run executes an arlula command and returns its output.
func (runner *CommandRunner) Run(args ...string) (string, string, error) {
	args = append(args, "--config", runner.configFile)
	if runner.config.APIEndpoint != "" {
		args = append(args, "--api", runner.config.APIEndpoint)
	}

	cmd := exec.Command(runner.config.BinaryPath, args...) //nolint:gosec // test binary
	cmd.Env = append(os.Environ(),
		"ARLULA_API_KEY="+runner.config.APIKey,
		"ARLULA_API_SECRET="+runner.config.APISecret,
	)

	var stdoutBuf, stderrBuf bytes.Buffer

	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.BinaryPath, strings.Join(args, " "))
	}

	err := cmd.Run()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdoutBuf.String(), stderrBuf.String())
	}

	return stdoutBuf.String(), stderrBuf.String(), err
}

// GenerateTestName creates a unique test resource name.
func GenerateTestName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().Unix())
}

// CleanupCollection attempts to delete a test collection.
func (runner *CommandRunner) CleanupCollection(id string) {
	stdout, stderr, err := runner.Run("collections", "delete", id)
	if err != nil && runner.config.Verbose {
		runner.t.Logf("Cleanup warning for collection %s: %s\nStderr: %s", id, stdout, stderr)
	}
}

// AssertJSONOutput verifies command output is valid JSON.
func AssertJSONOutput(t *testing.T, output string) {
	t.Helper()

	if !json.Valid([]byte(strings.TrimSpace(output))) {
		t.Errorf("Output is not valid JSON: %s", output)
	}
}

// AssertYAMLOutput verifies command output is valid YAML.
func AssertYAMLOutput(t *testing.T, output string) {
	t.Helper()

	var doc any

	if err := yaml.Unmarshal([]byte(output), &doc); err != nil || doc == nil {
		t.Errorf("Output is not valid YAML: %s", output)
	}
}
