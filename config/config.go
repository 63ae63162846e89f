package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Log      Log
	Database Database
	Storage  Storage
	Upload   Upload
}

type Server struct {
	Port         string
	Mode         string
	AllowOrigins []string
}

type Log struct {
	Level  string
	Pretty bool
}

type Database struct {
	Driver   string // postgres, mysql, sqlite
	Host     string
	Port     string
	User     string
	Password string `json:"-"`
	Name     string
	SSLMode  string
	Path     string // sqlite only
}

type Storage struct {
	Driver       string // local, s3, memory
	LocalRoot    string
	PublicPrefix string
	S3           S3
}

type S3 struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string `json:"-"`
	UsePathStyle    bool
	PublicACL       bool
}

type Upload struct {
	FilenameStrategy string // timestamp, uuid
	MaxBytes         int64
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("CORS_ALLOW_ORIGINS", "*")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PRETTY", false)

	v.SetDefault("DATABASE_DRIVER", "postgres")
	v.SetDefault("DATABASE_HOST", "localhost")
	v.SetDefault("DATABASE_PORT", "5432")
	v.SetDefault("DATABASE_USER", "postgres")
	v.SetDefault("DATABASE_NAME", "redaction")
	v.SetDefault("DATABASE_SSLMODE", "disable")
	v.SetDefault("DATABASE_PATH", "redaction.db")

	v.SetDefault("STORAGE_DRIVER", "local")
	v.SetDefault("STORAGE_LOCAL_ROOT", "storage/app/public")
	v.SetDefault("STORAGE_PUBLIC_PREFIX", "/storage")
	v.SetDefault("S3_REGION", "us-east-1")

	v.SetDefault("FILENAME_STRATEGY", "timestamp")
	v.SetDefault("UPLOAD_MAX_BYTES", 10<<20)
}

func NewConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	var config Config

	config.Server.Port = v.GetString("SERVER_PORT")
	config.Server.Mode = v.GetString("GIN_MODE")
	config.Server.AllowOrigins = splitList(v.GetString("CORS_ALLOW_ORIGINS"))

	config.Log.Level = v.GetString("LOG_LEVEL")
	config.Log.Pretty = v.GetBool("LOG_PRETTY")

	config.Database.Driver = strings.ToLower(v.GetString("DATABASE_DRIVER"))
	config.Database.Host = v.GetString("DATABASE_HOST")
	config.Database.Port = v.GetString("DATABASE_PORT")
	config.Database.User = v.GetString("DATABASE_USER")
	config.Database.Password = v.GetString("DATABASE_PASSWORD")
	config.Database.Name = v.GetString("DATABASE_NAME")
	config.Database.SSLMode = v.GetString("DATABASE_SSLMODE")
	config.Database.Path = v.GetString("DATABASE_PATH")

	config.Storage.Driver = strings.ToLower(v.GetString("STORAGE_DRIVER"))
	config.Storage.LocalRoot = v.GetString("STORAGE_LOCAL_ROOT")
	config.Storage.PublicPrefix = v.GetString("STORAGE_PUBLIC_PREFIX")
	config.Storage.S3.Bucket = v.GetString("S3_BUCKET")
	config.Storage.S3.Region = v.GetString("S3_REGION")
	config.Storage.S3.Endpoint = v.GetString("S3_ENDPOINT")
	config.Storage.S3.AccessKeyID = v.GetString("S3_ACCESS_KEY_ID")
	config.Storage.S3.SecretAccessKey = v.GetString("S3_SECRET_ACCESS_KEY")
	config.Storage.S3.UsePathStyle = v.GetBool("S3_USE_PATH_STYLE")
	config.Storage.S3.PublicACL = v.GetBool("S3_PUBLIC_ACL")

	config.Upload.FilenameStrategy = strings.ToLower(v.GetString("FILENAME_STRATEGY"))
	config.Upload.MaxBytes = v.GetInt64("UPLOAD_MAX_BYTES")

	if err := config.Validate(); err != nil {
		return nil, err
	}

	log.Info().Interface("config", config).Msg("Config loaded")
	return &config, nil
}

// Validate rejects unknown drivers and incomplete backend settings.
func (c *Config) Validate() error {
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("unsupported GIN_MODE %q", c.Server.Mode)
	}
	if len(c.Server.AllowOrigins) == 0 {
		return fmt.Errorf("CORS_ALLOW_ORIGINS must list at least one origin")
	}

	switch c.Database.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.Database.Driver)
	}

	switch c.Storage.Driver {
	case "local":
		if c.Storage.LocalRoot == "" {
			return fmt.Errorf("STORAGE_LOCAL_ROOT is required for the local storage driver")
		}
	case "s3":
		if c.Storage.S3.Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required for the s3 storage driver")
		}
	case "memory":
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.Storage.Driver)
	}

	switch c.Upload.FilenameStrategy {
	case "timestamp", "uuid":
	default:
		return fmt.Errorf("unsupported FILENAME_STRATEGY %q", c.Upload.FilenameStrategy)
	}

	if c.Upload.MaxBytes <= 0 {
		return fmt.Errorf("UPLOAD_MAX_BYTES must be positive, got %d", c.Upload.MaxBytes)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
