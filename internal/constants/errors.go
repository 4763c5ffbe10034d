package constants

import "errors"

// Configuration errors.
var (
	ErrNoCredentials     = errors.New("no API credentials configured, use 'arlula login' to store them")
	ErrNoAPIEndpoint     = errors.New("no API endpoint configured")
	ErrConfigDirNotFound = errors.New("could not determine configuration directory")
)

// Flag and argument errors.
var (
	ErrInvalidOutputFormat = errors.New("invalid output format, expected table, json or yaml")
	ErrInvalidDate         = errors.New("invalid date, expected YYYY-MM-DD")
	ErrAreaRequired        = errors.New("one of --point, --bbox or --polygon is required")
	ErrAreaConflict        = errors.New("only one of --point, --bbox or --polygon may be given")
	ErrInvalidPoint        = errors.New("invalid --point, expected LONG,LAT")
	ErrInvalidBBox         = errors.New("invalid --bbox, expected WEST,NORTH,EAST,SOUTH")
	ErrInvalidPolygon      = errors.New("invalid --polygon, expected WKT text")
	ErrEULARequired        = errors.New("--eula flag is required")
	ErrBundleRequired      = errors.New("--bundle flag is required")
	ErrPriorityRequired    = errors.New("--priority flag is required")
	ErrSecretRequired      = errors.New("API secret is required")
)

// File system errors.
var (
	ErrDirectoryTraversalDetected = errors.New("directory traversal detected in file path")
	ErrNotRegularFile             = errors.New("path is not a regular file")
)
