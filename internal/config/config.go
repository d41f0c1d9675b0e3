// Package config loads the processor configuration: which reader and which
// writer to build, and the options passed to each.
//
// Two file formats are accepted. YAML (the default):
//
//	processor:
//	  reader:
//	    type: xml
//	    path: input.xml
//	  writer:
//	    type: csv
//	    path: output.csv
//
// and an INI-style .conf file:
//
//	[reader]
//	type=xml
//	path=input.xml
//
//	[writer]
//	type=csv
//	path=output.csv
package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/FocuswithJustin/xml2csv/core/errors"
	"github.com/FocuswithJustin/xml2csv/internal/logging"
)

// DefaultPath is the config file read when none is given.
const DefaultPath = "configs/config.yaml"

// TypeKey is the option naming the registered client type.
const TypeKey = "type"

// Config is the top-level configuration document.
type Config struct {
	Processor Processor `yaml:"processor"`
}

// Processor selects the reader and writer of a run.
type Processor struct {
	Reader ClientConfig `yaml:"reader"`
	Writer ClientConfig `yaml:"writer"`
}

// ClientConfig is the option map of one client. It must contain TypeKey;
// every other key is passed to the client's factory.
type ClientConfig map[string]string

// Type returns the registered type name of the client.
func (c ClientConfig) Type() string {
	return strings.TrimSpace(c[TypeKey])
}

// Options returns a copy of the map without TypeKey.
func (c ClientConfig) Options() map[string]string {
	out := make(map[string]string, len(c))
	for k, v := range c {
		if k == TypeKey {
			continue
		}
		out[k] = v
	}
	return out
}

// Keys returns the option keys in sorted order.
func (c ClientConfig) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Load reads and validates the config file at path. Files ending in .conf
// or .ini use the INI grammar; anything else is parsed as YAML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewIO("read config", path, err)
	}
	logging.Info("reading config file", "path", path)

	var cfg *Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".conf", ".ini":
		cfg, err = ParseConf(data)
	default:
		cfg, err = ParseYAML(data)
	}
	if err != nil {
		var pe *errors.ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseYAML decodes a YAML config document.
func ParseYAML(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, &errors.ParseError{Format: "config", Message: err.Error(), Err: err}
	}
	return &cfg, nil
}

// Validate checks that both clients name a type.
func (c *Config) Validate() error {
	if c.Processor.Reader.Type() == "" {
		return errors.NewValidation("processor.reader.type", "is required")
	}
	if c.Processor.Writer.Type() == "" {
		return errors.NewValidation("processor.writer.type", "is required")
	}
	return nil
}
