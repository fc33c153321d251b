package config

import (
	_ "embed"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/andyballingall/cppfmt/internal/format"
	"github.com/andyballingall/cppfmt/internal/fs"
	"github.com/andyballingall/cppfmt/internal/source"
	"github.com/andyballingall/cppfmt/internal/validator"
)

// ConfigFile is looked up in the root of the tree being formatted.
const ConfigFile = ".cppfmt.yml"

// ConfigEnvVar names a config file to use instead of the one in the tree.
const ConfigEnvVar = "CPPFMT_CONFIG"

const schemaID = "https://github.com/andyballingall/cppfmt/config.schema.json"

//go:embed config.schema.json
var schemaJSON []byte

type Config struct {
	Style            string   `yaml:"style"`
	Extensions       []string `yaml:"extensions"`
	Formatter        string   `yaml:"formatter"`
	FailOnError      bool     `yaml:"failOnError"`
	RespectGitignore bool     `yaml:"respectGitignore"`
	Path             string   `yaml:"-"` // file the config came from; empty for built-in defaults
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Style:      format.DefaultStyle,
		Extensions: source.DefaultExtensions(),
		Formatter:  format.DefaultBinary,
	}
}

// ExtensionSet returns the configured extensions as a validated set.
func (c *Config) ExtensionSet() (source.Extensions, error) {
	return source.NewExtensions(c.Extensions)
}

// Loader reads and validates configuration files.
type Loader struct {
	validator validator.Validator
	env       fs.EnvProvider
}

// NewLoader compiles the configuration schema with compiler.
func NewLoader(compiler validator.Compiler, env fs.EnvProvider) (*Loader, error) {
	v, err := validator.CompileJSON(compiler, schemaID, schemaJSON)
	if err != nil {
		return nil, err
	}
	if env == nil {
		env = fs.NewEnvProvider()
	}
	return &Loader{validator: v, env: env}, nil
}

// Discover picks the configuration for a run over rootDir. An explicit path
// wins, then CPPFMT_CONFIG, then rootDir/.cppfmt.yml. Without any of these
// the built-in defaults are returned.
func (l *Loader) Discover(explicit, rootDir string) (*Config, error) {
	if explicit != "" {
		return l.Load(explicit)
	}
	if p := l.env.Get(ConfigEnvVar); p != "" {
		return l.Load(p)
	}

	candidate := filepath.Join(rootDir, ConfigFile)
	if _, err := os.Stat(candidate); err == nil {
		return l.Load(candidate)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	return Default(), nil
}

// Load reads the YAML file at path. Keys missing from the file keep their
// default values.
func (l *Loader) Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &MissingConfigError{Path: path}
		}
		return nil, err
	}

	var doc interface{}
	if err = yaml.Unmarshal(data, &doc); err != nil {
		return nil, &InvalidYAMLError{Path: path, Wrapped: err}
	}

	cfg := Default()
	cfg.Path = path
	if doc == nil {
		return cfg, nil
	}

	if err = l.validate(path, doc); err != nil {
		return nil, err
	}

	if err = yaml.Unmarshal(data, cfg); err != nil {
		return nil, &InvalidYAMLError{Path: path, Wrapped: err}
	}
	return cfg, nil
}

// validate checks a decoded YAML document against the schema by way of its
// JSON form.
func (l *Loader) validate(path string, doc interface{}) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return &InvalidYAMLError{Path: path, Wrapped: err}
	}
	jsonDoc, err := validator.DecodeJSON(raw)
	if err != nil {
		return &InvalidYAMLError{Path: path, Wrapped: err}
	}
	if err = l.validator.Validate(jsonDoc); err != nil {
		return &SchemaViolationError{Path: path, Wrapped: err}
	}
	return nil
}
