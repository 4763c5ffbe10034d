package arlula_test

import (
	"math"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/arlula-client/pkg/arlula"
)

const (
	licenseA = "https://api.arlula.com/eula/a"
	licenseB = "https://api.arlula.com/eula/b"
	licenseC = "https://api.arlula.com/eula/c"
)

func offeringResult() *arlula.SearchResult {
	return &arlula.SearchResult{
		OrderingID: "scene-1-ordering",
		Licenses:   []arlula.License{{Name: "A", Href: licenseA}, {Name: "B", Href: licenseB}},
		Bundles:    []arlula.BundleOption{{Key: "default", Bands: []string{"red"}, Price: 100}},
	}
}

func TestOrderRequest_Valid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		req  arlula.OrderRequest
		want bool
	}{
		{name: "complete", req: arlula.NewOrderRequest("scene-1", licenseC, "default"), want: true},
		{name: "zero value", req: arlula.OrderRequest{}, want: false},
		{name: "no id", req: arlula.NewOrderRequest("", licenseA, "default"), want: false},
		{name: "no eula", req: arlula.NewOrderRequest("scene-1", "", "default"), want: false},
		{name: "no bundle", req: arlula.NewOrderRequest("scene-1", licenseA, ""), want: false},
		{name: "offered license", req: arlula.NewOrderRequestFromResult(offeringResult(), licenseB, "default"), want: true},
		{name: "license not offered", req: arlula.NewOrderRequestFromResult(offeringResult(), licenseC, "default"), want: false},
		{name: "switched to offered license", req: arlula.NewOrderRequestFromResult(offeringResult(), licenseC, "default").WithEULA(licenseA), want: true},
		{name: "nil result", req: arlula.NewOrderRequestFromResult(nil, licenseA, "default"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.req.Valid())

			if !tt.want {
				assert.Nil(t, tt.req.Payload())
			}
		})
	}
}

func TestOrderRequest_Payload(t *testing.T) {
	t.Parallel()

	req := arlula.NewOrderRequestFromResult(offeringResult(), licenseA, "default").
		WithWebhooks("https://hooks.example.com/a").
		WithWebhooks("https://hooks.example.com/b").
		WithEmails("ops@example.com").
		WithTeam("team-1").
		WithCoupon("LAUNCH").
		WithPayment("acct-1")

	assert.Equal(t, "scene-1-ordering", req.ID())

	data, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "scene-1-ordering",
		"eula": "`+licenseA+`",
		"bundleKey": "default",
		"webhooks": ["https://hooks.example.com/a", "https://hooks.example.com/b"],
		"emails": ["ops@example.com"],
		"team": "team-1",
		"coupon": "LAUNCH",
		"payment": "acct-1"
	}`, string(data))

	minimal, err := json.Marshal(arlula.NewOrderRequest("scene-1", licenseA, "default"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"scene-1","eula":"`+licenseA+`","bundleKey":"default"}`, string(minimal))

	invalid, err := json.Marshal(arlula.OrderRequest{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(invalid))
}

func TestOrderRequest_WithDoesNotAlias(t *testing.T) {
	t.Parallel()

	base := arlula.NewOrderRequest("scene-1", licenseA, "default").WithEmails("a@example.com")
	first := base.WithEmails("b@example.com")
	second := base.WithEmails("c@example.com")

	firstData, err := json.Marshal(first)
	require.NoError(t, err)

	secondData, err := json.Marshal(second)
	require.NoError(t, err)

	assert.Contains(t, string(firstData), "b@example.com")
	assert.NotContains(t, string(secondData), "b@example.com")
	assert.Contains(t, string(secondData), "c@example.com")
}

func TestTaskingOrderRequest(t *testing.T) {
	t.Parallel()

	result := &arlula.TaskingSearchResult{
		OrderingID: "task-1",
		Licenses:   []arlula.License{{Href: licenseA}},
	}

	t.Run("payload", func(t *testing.T) {
		t.Parallel()

		req := arlula.NewTaskingOrderRequestFromResult(result, licenseA, "default", "standard", 30).WithEmails("ops@example.com")
		require.True(t, req.Valid())
		assert.Equal(t, "task-1", req.ID())

		data, err := json.Marshal(req)
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"id": "task-1",
			"eula": "`+licenseA+`",
			"bundleKey": "default",
			"emails": ["ops@example.com"],
			"priority": "standard",
			"cloud": 30
		}`, string(data))
	})

	t.Run("validation", func(t *testing.T) {
		t.Parallel()

		base := arlula.NewTaskingOrderRequest("task-1", licenseA, "default", "standard", 0)

		assert.True(t, base.Valid())
		assert.False(t, base.WithPriority("").Valid())
		assert.False(t, base.WithCloud(-1).Valid())
		assert.False(t, base.WithCloud(math.NaN()).Valid())
		assert.False(t, base.WithCloud(math.Inf(1)).Valid())
		assert.False(t, base.WithBundle("").Valid())
		assert.False(t, arlula.NewTaskingOrderRequestFromResult(result, licenseB, "default", "standard", 10).Valid())
	})
}
