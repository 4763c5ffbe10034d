package client_test

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/arlula-client/pkg/arlula"
)

func TestOrdersClient_List(t *testing.T) {
	t.Parallel()
	t.Run("decodes every order", func(t *testing.T) {
		t.Parallel()

		second := strings.Replace(orderJSON, `"ord-1"`, `"ord-2"`, 1)

		c, _ := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/api/order/list", request.URL.Path)
			assert.Equal(t, "2", request.URL.Query().Get("page"))

			writeJSON(writer, listJSON(orderJSON, second))
		})

		list, err := c.Orders().List(context.Background(), 2)
		require.NoError(t, err)
		require.Len(t, list.Content, 2)
		assert.Equal(t, "ord-1", list.Content[0].ID)
		assert.Equal(t, "ord-2", list.Content[1].ID)
		assert.Equal(t, 2, list.Count)
		assert.False(t, list.HasMore())
	})

	t.Run("one malformed order fails the list", func(t *testing.T) {
		t.Parallel()

		c, _ := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
			writeJSON(writer, listJSON(orderJSON, `{"id":"ord-2"}`))
		})

		_, err := c.Orders().List(context.Background(), 0)
		require.Error(t, err)
		assert.True(t, arlula.IsDecodeError(err))
		assert.Contains(t, err.Error(), "content[1]")
	})
}

func TestOrdersClient_Get(t *testing.T) {
	t.Parallel()
	t.Run("embedded datasets need no fetch", func(t *testing.T) {
		t.Parallel()

		embedded := strings.TrimSuffix(strings.TrimSpace(orderJSON), "}") + `,"datasets":[` + datasetJSON + `]}`

		c, hits := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/api/order/ord-1", request.URL.Path)
			writeJSON(writer, embedded)
		})

		order, err := c.Orders().Get(context.Background(), "ord-1")
		require.NoError(t, err)
		assert.True(t, order.DatasetsLoaded())

		datasets, err := order.Datasets(context.Background())
		require.NoError(t, err)
		assert.Len(t, datasets, 1)
		assert.Equal(t, int32(1), hits.Load())
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		c, _ := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusNotFound)
		})

		_, err := c.Orders().Get(context.Background(), "missing")
		require.Error(t, err)
		assert.True(t, arlula.IsNotFound(err))
	})

	t.Run("empty id makes no call", func(t *testing.T) {
		t.Parallel()

		c, hits := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {})

		_, err := c.Orders().Get(context.Background(), "")
		require.ErrorIs(t, err, arlula.ErrIDRequired)
		assert.Zero(t, hits.Load())
	})
}

func TestOrdersClient_DatasetResources(t *testing.T) {
	t.Parallel()
	t.Run("concurrent callers share one fetch", func(t *testing.T) {
		t.Parallel()

		detailed := strings.TrimSuffix(strings.TrimSpace(datasetJSON), "}") + `,"resources":[` + resourceJSON + `]}`

		c, hits := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
			if request.URL.Path == "/api/order/ds-1/datasets" {
				writeJSON(writer, `[`+datasetJSON+`]`)

				return
			}

			assert.Equal(t, "/api/order/dataset/ds-1", request.URL.Path)
			time.Sleep(50 * time.Millisecond)
			writeJSON(writer, detailed)
		})

		datasets, err := c.Orders().OrderDatasets(context.Background(), "ds-1")
		require.NoError(t, err)
		require.Len(t, datasets, 1)

		dataset := datasets[0]
		assert.False(t, dataset.Detailed())

		var wg sync.WaitGroup

		for range 8 {
			wg.Add(1)

			go func() {
				defer wg.Done()

				resources, err := dataset.Resources(context.Background())
				assert.NoError(t, err)
				assert.Len(t, resources, 1)
			}()
		}

		wg.Wait()

		assert.True(t, dataset.Detailed())
		assert.Equal(t, int32(2), hits.Load())
	})

	t.Run("incomplete dataset never fetches", func(t *testing.T) {
		t.Parallel()

		pending := strings.Replace(datasetJSON, `"complete"`, `"processing"`, 1)

		c, hits := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
			writeJSON(writer, pending)
		})

		dataset, err := c.Orders().GetDataset(context.Background(), "ds-1")
		require.NoError(t, err)

		resources, err := dataset.Resources(context.Background())
		require.NoError(t, err)
		assert.Empty(t, resources)
		assert.Equal(t, int32(1), hits.Load())
	})

	t.Run("failed fetch is retried on next call", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex

		datasetCalls := 0

		c, _ := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
			if request.URL.Path == "/api/order/campaign/camp-1" {
				writeJSON(writer, campaignJSON)

				return
			}

			assert.Equal(t, "/api/order/campaign/camp-1/datasets", request.URL.Path)

			mu.Lock()
			datasetCalls++
			first := datasetCalls == 1
			mu.Unlock()

			if first {
				writer.WriteHeader(http.StatusInternalServerError)

				return
			}

			writeJSON(writer, `[`+datasetJSON+`]`)
		})

		campaign, err := c.Orders().GetCampaign(context.Background(), "camp-1")
		require.NoError(t, err)

		_, err = campaign.Datasets(context.Background())
		require.Error(t, err)
		assert.False(t, campaign.DatasetsLoaded())

		datasets, err := campaign.Datasets(context.Background())
		require.NoError(t, err)
		assert.Len(t, datasets, 1)
		assert.True(t, campaign.DatasetsLoaded())
	})
}

func TestOrdersClient_GetResource(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		switch request.URL.Path {
		case "/api/order/resource/res-1":
			writeJSON(writer, resourceJSON)
		case "/api/order/resource/res-1/data":
			_, _ = writer.Write([]byte("GeoTIFF bytes"))
		default:
			writer.WriteHeader(http.StatusNotFound)
		}
	})

	resource, err := c.Orders().GetResource(context.Background(), "res-1")
	require.NoError(t, err)
	assert.Equal(t, arlula.ResourceTypeOrthoRGB, resource.Type)

	var buf bytes.Buffer

	written, err := c.Orders().DownloadResource(context.Background(), "res-1", &buf)
	require.NoError(t, err)
	assert.Equal(t, resource.Size, written)
	assert.Equal(t, "GeoTIFF bytes", buf.String())
}
