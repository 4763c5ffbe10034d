package client_test

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/fivetwenty-io/arlula-client/internal/client"
	internalhttp "github.com/fivetwenty-io/arlula-client/internal/http"
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

const searchResultJSON = `{
	"sceneID": "scene-1",
	"supplier": "landsat",
	"platform": "landsat-8",
	"date": "2024-02-28T00:00:00Z",
	"thumbnail": "https://example.com/thumb.png",
	"cloud": 12.5,
	"offNadir": 4,
	"gsd": 15,
	"annotations": [],
	"area": 100.5,
	"center": {"lat": -33.855, "long": 151.215},
	"bounding": [[[151.2, -33.8], [151.2, -33.9], [151.3, -33.9], [151.2, -33.8]]],
	"overlap": {
		"area": 10,
		"percent": {"scene": 10, "search": 100},
		"polygon": [[[151.21, -33.85], [151.21, -33.86], [151.22, -33.86], [151.21, -33.85]]]
	},
	"orderingID": "scene-1-ordering",
	"bundles": [{"key": "default", "name": "Default", "bands": ["red", "green", "blue"], "price": 120000}],
	"licenses": [{"name": "Standard", "href": "https://api.arlula.com/eula/standard", "loadingPercent": 0, "loadingAmount": 0}]
}`

const collectionJSON = `{
	"id": "col-1",
	"type": "Collection",
	"stac_version": "1.0.0",
	"title": "Sydney",
	"description": "Harbour captures",
	"license": "proprietary",
	"extent": {
		"spatial": {"bbox": [[151.2, -33.9, 151.3, -33.8]]},
		"temporal": {"interval": [["2024-01-01T00:00:00Z", null]]}
	},
	"summaries": {"platform": ["landsat-8"], "gsd": {"minimum": 15, "maximum": 30}},
	"links": [{"href": "https://api.arlula.com/api/collections/col-1", "rel": "self"}]
}`

const itemJSON = `{
	"id": "ds-1",
	"type": "Feature",
	"stac_version": "1.0.0",
	"geometry": {"type": "Polygon", "coordinates": [[[151.21, -33.85], [151.21, -33.86], [151.22, -33.86], [151.21, -33.85]]]},
	"properties": {"datetime": "2024-02-28T00:00:00Z"},
	"links": [{"href": "https://api.arlula.com/api/collections/col-1/items/ds-1", "rel": "self"}],
	"assets": {"ortho": {"href": "https://api.arlula.com/api/order/resource/res-1/data", "roles": ["data"]}},
	"collection": "col-1"
}`

func listJSON(items ...string) string {
	return `{"page":0,"length":20,"count":` + strconv.Itoa(len(items)) + `,"content":[` + strings.Join(items, ",") + `]}`
}

// newTestClient starts a server and returns a client against it with a
// counter of the requests the server received.
func newTestClient(t *testing.T, handler http.HandlerFunc) (*client.Client, *atomic.Int32) {
	t.Helper()

	var hits atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		hits.Add(1)
		handler(writer, request)
	}))
	t.Cleanup(server.Close)

	return client.NewWithHTTPClient(internalhttp.NewClient(server.URL, nil)), &hits
}

func writeJSON(writer http.ResponseWriter, body string) {
	writer.Header().Set("Content-Type", "application/json")
	_, _ = writer.Write([]byte(body))
}

const campaignJSON = `{
	"id": "camp-1",
	"createdAt": "2024-03-01T10:00:00Z",
	"updatedAt": "2024-03-01T10:00:00Z",
	"status": "processing",
	"orderingID": "task-1",
	"bundle": "default",
	"license": "https://api.arlula.com/eula/standard",
	"priority": "standard",
	"total": 500000,
	"discount": 0,
	"tax": 50000,
	"refunded": 0,
	"order": "ord-1",
	"start": "2024-04-01T00:00:00Z",
	"end": "2024-04-08T00:00:00Z",
	"aoi": [[[151.21, -33.85], [151.21, -33.86], [151.22, -33.86], [151.21, -33.85]]],
	"cloud": 30,
	"offNadir": 20,
	"supplier": "capella",
	"platforms": ["capella-7"],
	"gsd": 0.5
}`
