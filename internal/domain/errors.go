package domain

import "errors"

// Lookup errors
var (
	ErrItemNotFound = errors.New("item not found")
)

// Catalog import errors
var (
	ErrCatalogFileMissing = errors.New("catalog file missing")
	ErrMalformedCatalog   = errors.New("malformed catalog data")
)
