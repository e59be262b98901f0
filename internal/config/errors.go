package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, empty DSN or an unsupported driver name).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, a missing token sign key).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidCacheConfigs indicates the cache is enabled without an address.
	ErrInvalidCacheConfigs = errors.New("invalid cache configuration")
	// ErrInvalidMailConfigs indicates mail is enabled without SMTP settings.
	ErrInvalidMailConfigs = errors.New("invalid mail configuration")
)
