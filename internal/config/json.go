package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	App struct {
		TokenSignKey  string   `json:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer"`
		TokenDuration Duration `json:"token_duration"`
	} `json:"app,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Storage struct {
		DB struct {
			Driver string `json:"driver"`
			DSN    string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Cache struct {
		Enabled bool     `json:"enabled"`
		Addr    string   `json:"addr"`
		TTL     Duration `json:"ttl"`
	} `json:"cache,omitempty"`

	Provider struct {
		BaseURL       string   `json:"base_url"`
		APIKey        string   `json:"api_key"`
		BatchSize     int      `json:"batch_size"`
		FetchInterval Duration `json:"fetch_interval"`
	} `json:"provider,omitempty"`

	Mail struct {
		Enabled  bool   `json:"enabled"`
		Host     string `json:"host"`
		Port     int    `json:"port"`
		Sender   string `json:"sender"`
		Password string `json:"password"`
	} `json:"mail,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:  jsonCfg.App.TokenSignKey,
			TokenIssuer:   jsonCfg.App.TokenIssuer,
			TokenDuration: time.Duration(jsonCfg.App.TokenDuration),
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Storage: Storage{
			DB: DB{
				Driver: jsonCfg.Storage.DB.Driver,
				DSN:    jsonCfg.Storage.DB.DSN,
			},
		},
		Cache: Cache{
			Enabled: jsonCfg.Cache.Enabled,
			Addr:    jsonCfg.Cache.Addr,
			TTL:     time.Duration(jsonCfg.Cache.TTL),
		},
		Provider: Provider{
			BaseURL:       jsonCfg.Provider.BaseURL,
			APIKey:        jsonCfg.Provider.APIKey,
			BatchSize:     jsonCfg.Provider.BatchSize,
			FetchInterval: time.Duration(jsonCfg.Provider.FetchInterval),
		},
		Mail: Mail{
			Enabled:  jsonCfg.Mail.Enabled,
			Host:     jsonCfg.Mail.Host,
			Port:     jsonCfg.Mail.Port,
			Sender:   jsonCfg.Mail.Sender,
			Password: jsonCfg.Mail.Password,
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
