package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/filekeeper/internal/flagx"
	"github.com/spf13/cast"
)

// jsonDuration accepts "3s" style strings and integer nanoseconds.
type jsonDuration time.Duration

func (d *jsonDuration) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	v, err := cast.ToDurationE(raw)
	if err != nil {
		return err
	}
	*d = jsonDuration(v)
	return nil
}

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent keys
// leave earlier values untouched.
type JsonConfig struct {
	ServerURL   *string       `json:"server_url"`
	Timeout     *jsonDuration `json:"timeout"`
	SessionFile *string       `json:"session_file"`
}

// parseJson overlays Config with values loaded from the file named by -c or
// -config. Without either flag nothing is loaded.
func parseJson(cfg *Config) error {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	if jc.ServerURL != nil {
		cfg.ServerURL = *jc.ServerURL
	}
	if jc.Timeout != nil {
		cfg.Timeout = time.Duration(*jc.Timeout)
	}
	if jc.SessionFile != nil {
		cfg.SessionFile = *jc.SessionFile
	}
	return nil
}
