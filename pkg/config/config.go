// Package config loads the optional krbticket configuration file and
// resolves host defaults such as the realm from krb5.conf.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	krb5conf "github.com/jcmturner/gokrb5/v8/config"
	"gopkg.in/yaml.v3"
)

// DefaultKrb5Conf is consulted for the default realm when no realm is
// configured anywhere else.
const DefaultKrb5Conf = "/etc/krb5.conf"

// DefaultTimeout bounds each request when the config does not say
// otherwise.
const DefaultTimeout = 30 * time.Second

// ToolPaths overrides where the krb5 binaries are found. Empty fields
// fall back to PATH lookup.
type ToolPaths struct {
	Klist    string `yaml:"klist,omitempty"`
	Kinit    string `yaml:"kinit,omitempty"`
	Kdestroy string `yaml:"kdestroy,omitempty"`
}

// Config holds the loaded configuration.
type Config struct {
	// Realm is the default realm applied when a request omits one.
	Realm string `yaml:"realm,omitempty"`

	// Forwardable, when set, is the default forwardability preference.
	Forwardable *bool `yaml:"forwardable,omitempty"`

	// Timeout bounds the whole request, including primitive calls.
	Timeout Duration `yaml:"timeout,omitempty"`

	// Krb5Conf is the krb5.conf consulted for realm defaulting.
	Krb5Conf string `yaml:"krb5conf,omitempty"`

	Tools ToolPaths `yaml:"tools,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Timeout:  Duration(DefaultTimeout),
		Krb5Conf: DefaultKrb5Conf,
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "krbticket", "config.yaml")
}

// Load reads configuration from a file path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses configuration from YAML bytes and applies defaults for
// unset fields.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Timeout < 0 {
		return nil, fmt.Errorf("timeout must not be negative: %s", cfg.Timeout.Duration())
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = Duration(DefaultTimeout)
	}
	if cfg.Krb5Conf == "" {
		cfg.Krb5Conf = DefaultKrb5Conf
	}
	return cfg, nil
}

// DefaultRealm resolves the realm to use when a request omits one: the
// configured realm first, then the libdefaults default_realm from
// krb5.conf. An empty result means no default exists.
func (c *Config) DefaultRealm() string {
	if c.Realm != "" {
		return c.Realm
	}
	realm, err := realmFromKrb5Conf(c.Krb5Conf)
	if err != nil {
		return ""
	}
	return realm
}

func realmFromKrb5Conf(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	kc, err := krb5conf.Load(path)
	if err != nil {
		return "", fmt.Errorf("parsing %s: %w", path, err)
	}
	return kc.LibDefaults.DefaultRealm, nil
}

// Duration wraps time.Duration for YAML marshaling.
type Duration time.Duration

func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// UnmarshalYAML implements custom YAML unmarshaling for Duration.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return errors.New("duration must be a string like \"30s\"")
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(dur)
	return nil
}

// MarshalYAML implements custom YAML marshaling for Duration.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}
