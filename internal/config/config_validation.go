package config

import "time"

// applyDefaults fills in values the application can reasonably assume when
// no source provided them. Secrets never receive defaults.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = "localhost:8080"
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = 30 * time.Second
	}
	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = "plate-up"
	}
	if cfg.App.TokenDuration == 0 {
		cfg.App.TokenDuration = 24 * time.Hour
	}
	if cfg.Storage.DB.Driver == "" {
		cfg.Storage.DB.Driver = "pgx"
	}
	if cfg.Provider.BatchSize == 0 {
		cfg.Provider.BatchSize = 100
	}
	if cfg.Provider.FetchInterval == 0 {
		cfg.Provider.FetchInterval = time.Hour
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = 15 * time.Minute
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a sentinel error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}
	if cfg.Storage.DB.Driver != "pgx" && cfg.Storage.DB.Driver != "sqlite3" {
		return ErrInvalidStorageConfigs
	}

	if cfg.App.TokenSignKey == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.Cache.Enabled && cfg.Cache.Addr == "" {
		return ErrInvalidCacheConfigs
	}

	if cfg.Mail.Enabled && (cfg.Mail.Host == "" || cfg.Mail.Sender == "") {
		return ErrInvalidMailConfigs
	}

	return nil
}
