//go:build integration

package integration

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestWorkflow_Credentials(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	runner := NewCommandRunner(config, t)

	stdout, stderr, err := runner.Run("test")
	require.NoError(t, err, "credential check failed: %s", stderr)
	assert.Contains(t, stdout, "Credentials OK")
}

func TestWorkflow_OutputFormats(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	runner := NewCommandRunner(config, t)

	stdout, stderr, err := runner.Run("orders", "list", "--output", "json")
	require.NoError(t, err, "orders list failed: %s", stderr)
	AssertJSONOutput(t, stdout)

	stdout, stderr, err = runner.Run("orders", "list", "--output", "yaml")
	require.NoError(t, err, "orders list failed: %s", stderr)
	AssertYAMLOutput(t, stdout)

	stdout, stderr, err = runner.Run("orders", "list")
	require.NoError(t, err, "orders list failed: %s", stderr)
	assert.NotEmpty(t, stdout)
}

func TestWorkflow_ArchiveSearch(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	runner := NewCommandRunner(config, t)

	date := time.Now().AddDate(0, -1, 0).Format("2006-01-02")

	stdout, stderr, err := runner.Run("archive", "search",
		"--date", date,
		"--point", "151.2093,-33.8688",
		"--gsd", "100",
		"--output", "json")
	require.NoError(t, err, "archive search failed: %s", stderr)

	var resp struct {
		Results []struct {
			OrderingID string `json:"orderingID"`
		} `json:"results"`
	}

	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))

	for _, result := range resp.Results {
		assert.NotEmpty(t, result.OrderingID)
	}
}

// CollectionSuite creates, updates and deletes a collection.
type CollectionSuite struct {
	suite.Suite

	runner *CommandRunner
	id     string
}

func (s *CollectionSuite) SetupSuite() {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(s.T())

	s.runner = NewCommandRunner(config, s.T())
}

func (s *CollectionSuite) TearDownSuite() {
	if s.id != "" {
		s.runner.CleanupCollection(s.id)
	}
}

func (s *CollectionSuite) TestLifecycle() {
	title := GenerateTestName("integration")

	stdout, stderr, err := s.runner.Run("collections", "create",
		"--title", title,
		"--description", "Created by the integration suite",
		"--keyword", "integration",
		"--output", "json")
	s.Require().NoError(err, "create failed: %s", stderr)

	var created struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}

	s.Require().NoError(json.Unmarshal([]byte(stdout), &created))
	s.Require().NotEmpty(created.ID)
	s.Equal(title, created.Title)

	s.id = created.ID

	stdout, stderr, err = s.runner.Run("collections", "update", s.id,
		"--title", title+"-updated",
		"--description", "Updated by the integration suite")
	s.Require().NoError(err, "update failed: %s", stderr)
	s.Contains(stdout, title+"-updated")

	stdout, stderr, err = s.runner.Run("collections", "items", s.id, "--output", "json")
	s.Require().NoError(err, "items failed: %s", stderr)
	AssertJSONOutput(s.T(), stdout)

	stdout, stderr, err = s.runner.Run("collections", "delete", s.id)
	s.Require().NoError(err, "delete failed: %s", stderr)
	s.Contains(stdout, "Deleted collection")

	s.id = ""
}

func TestCollectionSuite(t *testing.T) {
	suite.Run(t, new(CollectionSuite))
}
