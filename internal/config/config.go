// Package config loads aliasdex settings from an optional YAML file.
//
// The file is decoded strictly (unknown keys are errors), checked against an
// embedded CUE schema, and then overridden by command-line flags.
//
//	database: ./pokemons.db
//	remote:
//	  url: https://drive.google.com/file/d/<id>/view
//	  credentials: credentials.json
//	  version_prefix: pokemons
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE string

// DefaultFile is read when no --config flag is given. Its absence is not an error.
const DefaultFile = "aliasdex.yaml"

// DefaultCredentials is the service-account file looked up when none is configured.
const DefaultCredentials = "credentials.json"

// DefaultVersionPrefix names versions published with push --new.
const DefaultVersionPrefix = "pokemons"

// ErrNoDatabase is returned by Validate when neither a local file nor a
// remote URL is configured.
var ErrNoDatabase = errors.New("no database configured: set --db or --remote")

// Config is the resolved configuration for one invocation.
type Config struct {
	Database string `yaml:"database"`
	Remote   Remote `yaml:"remote"`
}

// Remote configures the Drive-hosted database.
type Remote struct {
	URL           string `yaml:"url"`
	Credentials   string `yaml:"credentials"`
	VersionPrefix string `yaml:"version_prefix"`
}

// Overrides carries flag values. Empty fields leave the file value alone.
type Overrides struct {
	Database    string
	RemoteURL   string
	Credentials string
}

// Load reads path and returns the validated configuration with defaults
// applied. An empty path reads DefaultFile if it exists.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			cfg := &Config{}
			cfg.applyDefaults()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates config YAML, then applies defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	if err := checkSchema(cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// checkSchema unifies the set fields of cfg with #Config.
func checkSchema(cfg Config) error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE).LookupPath(cue.ParsePath("#Config"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("config schema: %w", err)
	}

	value := ctx.Encode(cfg.fields())
	if err := schema.Unify(value).Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("invalid config: %s", cueerrors.Details(err, nil))
	}
	return nil
}

// fields returns only the keys that were set, so absent keys stay optional.
func (c Config) fields() map[string]any {
	m := map[string]any{}
	if c.Database != "" {
		m["database"] = c.Database
	}
	remote := map[string]any{}
	if c.Remote.URL != "" {
		remote["url"] = c.Remote.URL
	}
	if c.Remote.Credentials != "" {
		remote["credentials"] = c.Remote.Credentials
	}
	if c.Remote.VersionPrefix != "" {
		remote["version_prefix"] = c.Remote.VersionPrefix
	}
	if len(remote) > 0 {
		m["remote"] = remote
	}
	return m
}

func (c *Config) applyDefaults() {
	if c.Remote.Credentials == "" {
		c.Remote.Credentials = DefaultCredentials
	}
	if c.Remote.VersionPrefix == "" {
		c.Remote.VersionPrefix = DefaultVersionPrefix
	}
}

// Apply overrides file values with flags. A database flag selects local
// mode and a remote flag selects remote mode, whatever the file said.
func (c *Config) Apply(o Overrides) {
	if o.Database != "" {
		c.Database = o.Database
		c.Remote.URL = ""
	}
	if o.RemoteURL != "" {
		c.Remote.URL = o.RemoteURL
		c.Database = ""
	}
	if o.Credentials != "" {
		c.Remote.Credentials = o.Credentials
	}
}

// Validate checks that exactly one database source is configured.
func (c *Config) Validate() error {
	switch {
	case c.Database == "" && c.Remote.URL == "":
		return ErrNoDatabase
	case c.Database != "" && c.Remote.URL != "":
		return errors.New("database and remote.url are mutually exclusive")
	}
	return nil
}

// IsRemote reports whether the database is fetched from Drive.
func (c *Config) IsRemote() bool {
	return c.Remote.URL != ""
}
