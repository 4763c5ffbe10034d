// Package arlula provides types, interfaces, and helpers for working with the
// Arlula satellite imagery API.
//
// # Overview
//
// The arlula package defines the domain types (e.g., SearchResult, Order,
// Campaign, Dataset, Resource, Collection, Item) and the interfaces for the
// API facades (ArchiveClient, TaskingClient, OrdersClient, CollectionsClient).
// A concrete implementation is provided by the arlulaclient package, which
// wires credentials, transport, caching and metrics. Most consumers should
// import arlulaclient to construct a client and then work with the facade
// interfaces exposed here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//	  "time"
//
//	  "github.com/fivetwenty-io/arlula-client/pkg/arlula"
//	  "github.com/fivetwenty-io/arlula-client/pkg/arlulaclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := arlulaclient.NewWithCredentials(ctx, "key", "secret")
//	  if err != nil { log.Fatal(err) }
//
//	  req := arlula.NewSearchRequest(time.Now().AddDate(0, 0, -30), 10).
//	    WithBoundingBox(151.1, -33.7, 151.3, -33.9).
//	    WithMaximumCloudCover(20)
//
//	  results, err := cli.Archive().Search(ctx, req)
//	  if err != nil { log.Fatal(err) }
//	  _ = results
//	}
//
// # Building requests
//
// Search, order and collection requests are immutable values. Every With
// method returns a modified copy, so a base request can be shared and
// specialised freely. Valid reports whether the server would accept a
// request; facades reject invalid requests before any network call and
// Payload returns nil for them.
//
// Orders built with NewOrderRequestFromResult only accept a EULA that the
// result offers:
//
//	order := arlula.NewOrderRequestFromResult(results.Results[0], results.Results[0].Licenses[0].Href, "default")
//	placed, err := cli.Archive().Order(ctx, order)
//
// # Decoding
//
// Responses are decoded field by field. A missing field, a wrong type or an
// unknown enumeration value fails the whole entity with a *DecodeError, and
// IsDecodeError distinguishes these from transport failures. Older search
// payloads (flat "price", "eula", "resolution" and "id" fields) are still
// understood.
//
// # Sub-resources
//
// Orders, campaigns and datasets fetch their children on first use:
//
//	datasets, err := placed.Datasets(ctx)
//
// The fetch happens at most once per entity. Concurrent first callers share a
// single request, and a failed fetch is retried on the next call.
//
// # Errors
//
// Non-2xx responses are represented by ResponseError. Helpers such as
// IsNotFound, IsUnauthorized, and IsForbidden make it easy to branch on common
// cases.
//
// # Caching
//
// MemoryCache, NATSKVCache and RedisCache implement Cache. NewCacheFromConfig
// builds one from a CacheConfig; a memory tier configured alongside a shared
// backend is layered in front of it with TieredCache. The transport reaches
// the backend through a CacheManager, which applies CacheOptions.
package arlula
