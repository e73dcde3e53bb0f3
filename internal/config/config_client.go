package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
)

// Transport defaults. Downloads and uploads against field servers are
// long-running by nature, so the read and write bounds are generous.
const (
	DefaultConnectTimeout = 60 * time.Second
	DefaultReadTimeout    = 180 * time.Second
	DefaultWriteTimeout   = 600 * time.Second

	DefaultResyncInterval = 30 * time.Minute
)

// ClientRemote holds network settings used by the remote session client.
type ClientRemote struct {
	// BaseURL is the data-collection server endpoint.
	BaseURL string `validate:"required,url"`
	// ConnectTimeout bounds TCP connection establishment.
	ConnectTimeout time.Duration `validate:"gt=0"`
	// ReadTimeout bounds a whole download request.
	ReadTimeout time.Duration `validate:"gt=0"`
	// WriteTimeout bounds a whole upload request.
	WriteTimeout time.Duration `validate:"gt=0"`
}

// ClientStorage groups client storage settings.
type ClientStorage struct {
	// Dir is the directory holding per-account SQLite stores, preference
	// namespaces, and the remote engine's local cache.
	Dir string `validate:"required"`
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// ResyncInterval defines how often the resident sync worker re-runs a
	// background sync while a session is active.
	ResyncInterval time.Duration `validate:"gt=0"`
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	Remote  ClientRemote
	Storage ClientStorage
	Workers ClientWorkers
}

// GetClientConfig builds and validates the client configuration.
//
// It loads the base config from environment variables and the optional JSON
// file (jsonOverride wins over the CONFIG env variable when non-empty),
// applies defaults for everything the sources left unset, and validates the
// result.
func GetClientConfig(jsonOverride string) (*ClientConfig, error) {
	cfg, err := getStructuredConfig(jsonOverride)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		Remote: ClientRemote{
			BaseURL:        cfg.Remote.BaseURL,
			ConnectTimeout: cfg.Remote.ConnectTimeout,
			ReadTimeout:    cfg.Remote.ReadTimeout,
			WriteTimeout:   cfg.Remote.WriteTimeout,
		},
		Storage: ClientStorage{Dir: cfg.Storage.Dir},
		Workers: ClientWorkers{ResyncInterval: cfg.Workers.ResyncInterval},
	}
	clientCfg.applyDefaults()

	return clientCfg, clientCfg.validate()
}

func (cfg *ClientConfig) applyDefaults() {
	if cfg.Remote.ConnectTimeout == 0 {
		cfg.Remote.ConnectTimeout = DefaultConnectTimeout
	}
	if cfg.Remote.ReadTimeout == 0 {
		cfg.Remote.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Remote.WriteTimeout == 0 {
		cfg.Remote.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Workers.ResyncInterval == 0 {
		cfg.Workers.ResyncInterval = DefaultResyncInterval
	}
	if cfg.Storage.Dir == "" {
		cfg.Storage.Dir = defaultStorageDir()
	}
}

// validate checks the assembled client config against the declarative rules
// on the struct tags.
func (cfg *ClientConfig) validate() error {
	validate := validator.New()

	if err := validate.Struct(cfg.Remote); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRemoteConfigs, err)
	}
	if err := validate.Struct(cfg.Storage); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidStorageConfigs, err)
	}
	if err := validate.Struct(cfg.Workers); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidWorkerConfigs, err)
	}

	return nil
}

func defaultStorageDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", "fieldsync")
	}
	return filepath.Join(base, "fieldsync")
}
