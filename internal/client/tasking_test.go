package client_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/arlula-client/pkg/arlula"
)

const taskingResultJSON = `{
	"polygons": [[[[151.21, -33.85], [151.21, -33.86], [151.22, -33.86], [151.21, -33.85]]]],
	"areas": {"target": 1.5, "scene": 25},
	"startDate": "2024-04-01T00:00:00Z",
	"endDate": "2024-04-08T00:00:00Z",
	"gsd": 0.5,
	"supplier": "capella",
	"orderingID": "task-1",
	"offNadir": 20,
	"bands": [],
	"bundles": [{"key": "default", "bands": ["pan"], "price": 500000}],
	"licenses": [{"name": "Standard", "href": "https://api.arlula.com/eula/standard", "loadingPercent": 0, "loadingAmount": 0}],
	"platforms": ["capella-7"],
	"priorities": [{"key": "standard", "name": "Standard", "loadingPercent": 0, "loadingAmount": 0}],
	"cloudLevels": [{"max": 30, "name": "Clear", "loadingPercent": 10, "loadingAmount": 0}]
}`

func TestTaskingClient_Search(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(7 * 24 * time.Hour)

	t.Run("posts window and decodes opportunities", func(t *testing.T) {
		t.Parallel()

		c, _ := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, http.MethodPost, request.Method)
			assert.Equal(t, "/api/tasking/search", request.URL.Path)

			var body map[string]interface{}
			assert.NoError(t, json.NewDecoder(request.Body).Decode(&body))
			assert.Equal(t, "2024-04-01T00:00:00Z", body["start"])
			assert.Equal(t, "2024-04-08T00:00:00Z", body["end"])
			assert.InDelta(t, 30.0, body["offNadir"], 0.0001)

			writeJSON(writer, `{"results":[`+taskingResultJSON+`]}`)
		})

		req := arlula.NewTaskingSearchRequest(start, end, 1).
			WithPoint(151.215, -33.855).
			WithMaximumOffNadir(-30)

		resp, err := c.Tasking().Search(context.Background(), req)
		require.NoError(t, err)
		require.Len(t, resp.Results, 1)
		assert.Equal(t, "task-1", resp.Results[0].OrderingID)
	})

	t.Run("start after end makes no call", func(t *testing.T) {
		t.Parallel()

		c, hits := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
			writeJSON(writer, `{"results":[]}`)
		})

		req := arlula.NewTaskingSearchRequest(end, start, 1).WithPoint(151.215, -33.855)

		_, err := c.Tasking().Search(context.Background(), req)
		require.ErrorIs(t, err, arlula.ErrInvalidSearchRequest)
		assert.Zero(t, hits.Load())
	})
}

func TestTaskingClient_Order(t *testing.T) {
	t.Parallel()
	t.Run("posts priority and cloud", func(t *testing.T) {
		t.Parallel()

		c, _ := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/api/tasking/order", request.URL.Path)

			var body map[string]interface{}
			assert.NoError(t, json.NewDecoder(request.Body).Decode(&body))
			assert.Equal(t, "task-1", body["id"])
			assert.Equal(t, "standard", body["priority"])
			assert.InDelta(t, 30.0, body["cloud"], 0.0001)

			writeJSON(writer, orderJSON)
		})

		req := arlula.NewTaskingOrderRequest("task-1", "https://api.arlula.com/eula/standard", "default", "standard", 30)

		order, err := c.Tasking().Order(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "ord-1", order.ID)
	})

	t.Run("missing priority makes no call", func(t *testing.T) {
		t.Parallel()

		c, hits := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
			writeJSON(writer, orderJSON)
		})

		req := arlula.NewTaskingOrderRequest("task-1", "eula", "default", "", 30)

		_, err := c.Tasking().Order(context.Background(), req)
		require.ErrorIs(t, err, arlula.ErrInvalidOrderRequest)
		assert.Zero(t, hits.Load())
	})

	t.Run("batch", func(t *testing.T) {
		t.Parallel()

		c, _ := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/api/tasking/order/batch", request.URL.Path)
			writeJSON(writer, orderJSON)
		})

		req := arlula.NewTaskingBatchOrderRequest(
			arlula.NewTaskingOrderRequest("task-1", "eula", "default", "standard", 30),
		)

		order, err := c.Tasking().BatchOrder(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "ord-1", order.ID)

		_, err = c.Tasking().BatchOrder(context.Background(), arlula.NewTaskingBatchOrderRequest())
		require.ErrorIs(t, err, arlula.ErrInvalidBatchOrderRequest)
	})
}
