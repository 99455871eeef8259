package config

import (
	"encoding/json"
	"os"

	"github.com/kaptinlin/jsonrepair"
)

// loadFile reads and parses one config source. The files tolerate a JSONC
// dialect: // and /* */ comments plus trailing commas, which jsonrepair
// normalizes into strict JSON before decoding.
//
// A missing, unreadable, or malformed file never fails resolution; it just
// contributes nothing, so every error path returns the zero fileConfig.
func loadFile(path string) fileConfig {
	var cfg fileConfig
	if path == "" {
		return cfg
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}

	repaired, err := jsonrepair.JSONRepair(string(data))
	if err != nil {
		return cfg
	}

	if err := json.Unmarshal([]byte(repaired), &cfg); err != nil {
		return fileConfig{}
	}
	return cfg
}
