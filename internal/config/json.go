package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and
// string-friendly durations ("3m", "45s").
type StructuredJSONConfig struct {
	Remote struct {
		BaseURL        string   `json:"base_url"`
		ConnectTimeout Duration `json:"connect_timeout"`
		ReadTimeout    Duration `json:"read_timeout"`
		WriteTimeout   Duration `json:"write_timeout"`
	} `json:"remote,omitempty"`

	Storage struct {
		Dir string `json:"dir"`
	} `json:"storage,omitempty"`

	Workers struct {
		ResyncInterval Duration `json:"resync_interval"`
	} `json:"workers,omitempty"`
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
		Remote: Remote{
			BaseURL:        jsonCfg.Remote.BaseURL,
			ConnectTimeout: time.Duration(jsonCfg.Remote.ConnectTimeout),
			ReadTimeout:    time.Duration(jsonCfg.Remote.ReadTimeout),
			WriteTimeout:   time.Duration(jsonCfg.Remote.WriteTimeout),
		},
		Storage: Storage{
			Dir: jsonCfg.Storage.Dir,
		},
		Workers: Workers{
			ResyncInterval: time.Duration(jsonCfg.Workers.ResyncInterval),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s".
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
