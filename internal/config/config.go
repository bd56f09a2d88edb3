package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"
	defaultPort       = 3500
	defaultEnv        = "development"
	defaultDBHost     = "127.0.0.1"
	defaultDBPort     = 3306
	defaultDBUser     = "root"
	defaultDBName     = "inkstream"
	defaultDBCharset  = "utf8mb4"
	defaultRedisURL   = "redis://localhost:6379/0"
)

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	Port           int            `yaml:"port"`
	Env            string         `yaml:"env"` // "development" | "production"
	DSN            string         `yaml:"dsn"` // overrides the database block when set
	Database       DatabaseConfig `yaml:"database"`
	RedisURL       string         `yaml:"redis_url"`
	JWTSecret      string         `yaml:"jwt_secret"`
	AllowedOrigins []string       `yaml:"allowed_origins"`
	Storage        StorageConfig  `yaml:"storage"`
	Bootstrap      BootstrapAdmin `yaml:"bootstrap_admin"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	Charset  string `yaml:"charset"`
}

// StorageConfig configures the S3-compatible bucket used for signed uploads.
// Endpoint is required for R2/CEPH style providers; empty disables uploads.
type StorageConfig struct {
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	Bucket          string `yaml:"bucket"`
	PublicURL       string `yaml:"public_url"`
}

// BootstrapAdmin seeds a superadmin account on first startup when no admin
// exists yet.
type BootstrapAdmin struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Username string `yaml:"username"`
}

// Load reads the YAML config file and fills defaults. A missing file is not
// an error; defaults apply.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *AppConfig) applyDefaults() {
	if c.Port == 0 {
		c.Port = defaultPort
	}
	if c.Env == "" {
		c.Env = defaultEnv
	}
	if c.RedisURL == "" {
		c.RedisURL = defaultRedisURL
	}
	if c.Database.Host == "" {
		c.Database.Host = defaultDBHost
	}
	if c.Database.Port == 0 {
		c.Database.Port = defaultDBPort
	}
	if c.Database.User == "" {
		c.Database.User = defaultDBUser
	}
	if c.Database.Name == "" {
		c.Database.Name = defaultDBName
	}
	if c.Database.Charset == "" {
		c.Database.Charset = defaultDBCharset
	}
	if c.DSN == "" {
		c.DSN = fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
			c.Database.User, c.Database.Password,
			c.Database.Host, c.Database.Port,
			c.Database.Name, c.Database.Charset)
	}
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool { return c.Env != "production" }
