package commands

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const orderJSON = `{
	"id": "ord-1",
	"createdAt": "2024-03-01T10:00:00Z",
	"updatedAt": "2024-03-01T10:05:00Z",
	"status": "pending",
	"total": 120000,
	"discount": 0,
	"tax": 12000
}`

const datasetJSON = `{
	"id": "ds-1",
	"createdAt": "2024-03-01T10:00:00Z",
	"updatedAt": "2024-03-02T10:00:00Z",
	"type": "archive",
	"status": "complete",
	"supplier": "landsat",
	"orderingID": "scene-1-ordering",
	"sceneID": "scene-1",
	"bundle": "default",
	"eula": "https://api.arlula.com/eula/standard",
	"total": 120000,
	"discount": 0,
	"tax": 12000,
	"order": "ord-1",
	"aoi": [[[151.21, -33.85], [151.21, -33.86], [151.22, -33.86], [151.21, -33.85]]]
}`

const resourceJSON = `{
	"id": "res-1",
	"createdAt": "2024-03-02T10:00:00Z",
	"updatedAt": "2024-03-02T10:00:00Z",
	"order": "ord-1",
	"name": "scene-1.tif",
	"type": "ortho_rgb",
	"size": 13,
	"format": "image/tiff",
	"checksum": "abc123",
	"roles": ["data"]
}`

const searchResponseJSON = `{
	"state": "complete",
	"errors": [{"supplier": "maxar", "message": "supplier timed out"}],
	"results": [{
		"sceneID": "scene-1",
		"supplier": "landsat",
		"platform": "landsat-8",
		"date": "2024-02-28T00:00:00Z",
		"thumbnail": "https://example.com/thumb.png",
		"cloud": 12.5,
		"offNadir": 4,
		"annotations": [],
		"area": 100.5,
		"center": {"lat": -33.855, "long": 151.215},
		"bounding": [[[151.2, -33.8], [151.2, -33.9], [151.3, -33.9], [151.2, -33.8]]],
		"overlap": {
			"area": 10,
			"percent": {"scene": 10, "search": 100},
			"polygon": [[[151.21, -33.85], [151.21, -33.86], [151.22, -33.86], [151.21, -33.85]]]
		},
		"gsd": 15,
		"orderingID": "scene-1-ordering",
		"bands": [{"name": "Red", "id": "red", "min": 630, "max": 680}],
		"bundles": [{"key": "default", "name": "Default", "bands": ["red"], "price": 120000}],
		"licenses": [{"name": "Standard", "href": "https://api.arlula.com/eula/standard", "loadingPercent": 0, "loadingAmount": 0}]
	}]
}`

// findSubcommand finds a subcommand by name within a cobra command.
func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, c := range cmd.Commands() {
		if c.Name() == name {
			return c
		}
	}

	return nil
}

// cliResult captures one command execution.
type cliResult struct {
	stdout     string
	stderr     string
	configFile string
	err        error
}

// runCLI executes the root command against handler. Credentials are set
// unless anonymous is true. The config file lives in a temp directory.
func runCLI(t *testing.T, handler http.Handler, anonymous bool, args ...string) cliResult {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	configFile := filepath.Join(t.TempDir(), "config.yml")

	root := NewRootCommand("1.2.3", "abc123", "2024-03-01")

	if !anonymous {
		viper.Set("api_key", "key")
		viper.Set("api_secret", "secret")
	}

	var stdout, stderr bytes.Buffer

	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append(args, "--config", configFile, "--api", server.URL))

	err := root.ExecuteContext(t.Context())

	return cliResult{stdout: stdout.String(), stderr: stderr.String(), configFile: configFile, err: err}
}

// routes serves fixed bodies by request path.
func routes(bodies map[string]string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := bodies[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message": "not found"}`))

			return
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	})
}
