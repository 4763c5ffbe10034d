// Package arlulaclient is the entry point for constructing an API client that
// implements the arlula.Client interface.
//
// It wires credentials, the HTTP transport and the optional response cache and
// metrics on top of the types and interfaces defined in the arlula package.
//
// Quick start
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
//
//	  cli, err := arlulaclient.New(ctx, &arlula.Config{
//	    APIKey:    "key",
//	    APISecret: "secret",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  req := arlula.NewSearchRequest(time.Now().AddDate(0, -1, 0), 10).
//	    WithPoint(151.2093, -33.8688)
//
//	  results, err := cli.Archive().Search(ctx, req)
//	  if err != nil { log.Fatal(err) }
//	  _ = results
//	}
//
// # Endpoints
//
// Config.APIEndpoint defaults to arlula.DefaultAPIEndpoint. A trailing slash is
// trimmed and "https://" is added when the endpoint has no scheme.
//
// # Caching
//
// Setting Config.Cache serves repeated GET requests from a memory, NATS
// JetStream or Redis cache. Cache keys include the credentials, so clients
// sharing a backend never see each other's responses.
package arlulaclient
