package config

import "errors"

var (
	ErrPostgresDSNRequired = errors.New("POSTGRES_DSN is required for the postgres store driver")
	ErrUnknownStoreDriver  = errors.New("STORE_DRIVER must be postgres or memory")
)
