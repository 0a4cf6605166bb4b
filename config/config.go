// Package config loads pgshift settings from an optional yaml file with ENV
// variable fallbacks for the connection parameters.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pgshift/pgshift/e"
	"github.com/pgshift/pgshift/sql"
)

const (
	// DefaultFile the config file looked up when --config is not passed
	DefaultFile = "pgshift.yaml"
	// DefaultDir the migrations directory used when neither the config
	// file nor --dir provide one
	DefaultDir = "db/migrations"

	ECode010101 = e.Code0101 + "01"
	ECode010102 = e.Code0101 + "02"
)

// Config pgshift settings
type Config struct {
	// Dir the migrations directory
	Dir string `yaml:"dir"`

	// Database connection parameters; any value left empty falls back to
	// the corresponding ENV variable (DBHOST, DBPORT, DBUSER, DBPASS,
	// DBNAME, SSLMODE)
	Database struct {
		Host     string `yaml:"host"`
		Port     string `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		DBName   string `yaml:"dbname"`
		SSLMode  string `yaml:"sslmode"`
	} `yaml:"database"`
}

// Load reads the config file at path. A missing file is not an error when
// path is the default location - everything then comes from ENV/flags.
func Load(path string) (cfg *Config, err error) {
	cfg = &Config{}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && path == DefaultFile {
			return cfg, nil
		}
		return nil, e.W(err, ECode010101, fmt.Sprintf("file: %s", path))
	}

	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, e.W(err, ECode010102, fmt.Sprintf("file: %s", path))
	}

	return cfg, nil
}

// ConnParam merges the config file values over the ENV derived connection
// parameters
func (cfg *Config) ConnParam() (cp *sql.ConnParam) {
	cp = sql.GetConnParamFromENV()

	if cfg.Database.Host != "" {
		cp.Host = cfg.Database.Host
	}
	if cfg.Database.Port != "" {
		cp.Port = cfg.Database.Port
	}
	if cfg.Database.User != "" {
		cp.User = cfg.Database.User
	}
	if cfg.Database.Password != "" {
		cp.Password = cfg.Database.Password
	}
	if cfg.Database.DBName != "" {
		cp.DBName = cfg.Database.DBName
	}
	if cfg.Database.SSLMode != "" {
		cp.SSLMode = cfg.Database.SSLMode
	}

	return cp
}

// MigrationsDir resolves the migrations directory: flag value first, then
// config file, then the default
func (cfg *Config) MigrationsDir(flagDir string) (dir string) {
	if flagDir != "" {
		return flagDir
	}
	if cfg.Dir != "" {
		return cfg.Dir
	}
	if d := os.Getenv("PGSHIFT_DIR"); d != "" {
		return d
	}

	return DefaultDir
}
