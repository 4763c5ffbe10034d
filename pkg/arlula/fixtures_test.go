package arlula_test

import (
	"strings"
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

// searchResultFields are the fields shared by modern and legacy search results.
const searchResultFields = `
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
	},`

const searchResultJSON = `{` + searchResultFields + `
	"gsd": 15,
	"orderingID": "scene-1-ordering",
	"bands": [
		{"name": "Red", "id": "red", "min": 630, "max": 680},
		{"name": "Green", "id": "green", "min": 525, "max": 600}
	],
	"bundles": [{"key": "default", "name": "Default", "bands": ["red", "green"], "price": 120000}],
	"licenses": [
		{"name": "Standard", "href": "https://api.arlula.com/eula/standard", "loadingPercent": 0, "loadingAmount": 0},
		{"name": "Enterprise", "href": "https://api.arlula.com/eula/enterprise", "loadingPercent": 50, "loadingAmount": 0}
	]
}`

const legacySearchResultJSON = `{` + searchResultFields + `
	"resolution": 30,
	"id": "legacy-ordering",
	"bands": [{"name": "Red", "id": "red", "min": 630, "max": 680}],
	"price": {"base": 5000},
	"eula": "https://api.arlula.com/eula/legacy"
}`

const taskingResultJSON = `{
	"polygons": [[[[151.2, -33.8], [151.2, -33.9], [151.3, -33.9], [151.2, -33.8]]]],
	"areas": {"target": 25, "scene": 100},
	"startDate": "2024-04-01T00:00:00Z",
	"endDate": "2024-04-08T00:00:00Z",
	"gsd": 0.5,
	"supplier": "capella",
	"orderingID": "task-1",
	"offNadir": 20,
	"bands": [{"name": "X", "id": "x", "min": 24000000, "max": 37500000}],
	"bundles": [{"key": "default", "bands": ["x"], "price": 500000}],
	"licenses": [{"name": "Standard", "href": "https://api.arlula.com/eula/standard", "loadingPercent": 0, "loadingAmount": 0}],
	"platforms": ["capella-7"],
	"priorities": [{"key": "standard", "name": "Standard", "loadingPercent": 0, "loadingAmount": 0}],
	"cloudLevels": [{"max": 30, "name": "Clear", "loadingPercent": 10, "loadingAmount": 0}]
}`

// withField returns body with one more top-level field.
func withField(body, field string) string {
	return strings.Replace(body, "{", "{"+field+",", 1)
}

// withoutField returns body with the top-level line carrying key removed.
func withoutField(body, key string) string {
	lines := strings.Split(body, "\n")
	out := lines[:0]

	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), `"`+key+`":`) {
			continue
		}

		out = append(out, line)
	}

	return strings.Join(out, "\n")
}
