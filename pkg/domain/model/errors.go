package model

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for catalog operations
var (
	ErrCatalogDataNotFound = goerr.New("catalog data not found")
	ErrCatalogEmpty        = goerr.New("catalog source returned no records")
)
