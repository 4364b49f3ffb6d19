package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/natefinch/atomic"
	"github.com/tailscale/hujson"
)

// ConfigFileName is the optional server config file read from the working
// directory at startup.
const ConfigFileName = ".fileserver.json"

// Config holds the tunables a deployment may override via ConfigFileName.
// None of these are ever read from the environment — the server has no
// environment-variable surface, per its CLI contract.
//
// Fields here never include port or worker count: those are supplied on the
// command line and a config file value must not be able to silently
// override an operator's explicit invocation.
type Config struct {
	// QueueCapacity is the bounded queue's capacity. Defaults to the
	// worker count when zero.
	QueueCapacity int `json:"queue_capacity,omitempty"`

	// NWayFairness is the reader/writer lock's fairness parameter N.
	// Defaults to 1 (strict alternation) when zero.
	NWayFairness int `json:"n_way_fairness,omitempty"`

	// ReadTimeoutMillis bounds header and body reads on an accepted
	// socket, in milliseconds. Defaults to 5000 when zero.
	ReadTimeoutMillis int `json:"read_timeout_ms,omitempty"`

	// BufferSize is the minimum header-read buffer size. Defaults to 4096
	// when below that floor.
	BufferSize int `json:"buffer_size,omitempty"`
}

// ReadTimeout returns the configured read timeout as a [time.Duration].
func (c Config) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutMillis) * time.Millisecond
}

// DefaultConfig returns the config used when no config file is present.
func DefaultConfig() Config {
	return Config{
		NWayFairness:      1,
		ReadTimeoutMillis: 5000,
		BufferSize:        4096,
	}
}

// LoadConfig reads ConfigFileName from dir, if present, applying it over
// [DefaultConfig]. A missing file is not an error. The file is parsed with
// hujson so operators may annotate it with comments and trailing commas.
func LoadConfig(dir string) (Config, error) {
	cfg := DefaultConfig()

	raw, err := os.ReadFile(dir + string(os.PathSeparator) + ConfigFileName)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}

		return Config{}, err
	}

	std, err := hujson.Standardize(raw)
	if err != nil {
		return Config{}, fmt.Errorf("server: parsing %s: %w", ConfigFileName, err)
	}

	var onDisk Config
	if err := json.Unmarshal(std, &onDisk); err != nil {
		return Config{}, fmt.Errorf("server: parsing %s: %w", ConfigFileName, err)
	}

	if onDisk.QueueCapacity > 0 {
		cfg.QueueCapacity = onDisk.QueueCapacity
	}

	if onDisk.NWayFairness > 0 {
		cfg.NWayFairness = onDisk.NWayFairness
	}

	if onDisk.ReadTimeoutMillis > 0 {
		cfg.ReadTimeoutMillis = onDisk.ReadTimeoutMillis
	}

	if onDisk.BufferSize >= 4096 {
		cfg.BufferSize = onDisk.BufferSize
	}

	return cfg, nil
}

// WriteConfig durably writes cfg to dir/ConfigFileName, for the optional
// --write-config admin flag. It uses an atomic rename so a crash or a
// concurrent reader never observes a half-written config file — unlike the
// core PUT path, which must keep its literal create/truncate semantics to
// preserve the 201-vs-200 status contract, this is a pure admin convenience
// with no such constraint.
func WriteConfig(dir string, cfg Config) error {
	raw, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return atomic.WriteFile(dir+string(os.PathSeparator)+ConfigFileName, bytes.NewReader(raw))
}
