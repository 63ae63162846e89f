package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowOrigins)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "local", cfg.Storage.Driver)
	assert.Equal(t, "storage/app/public", cfg.Storage.LocalRoot)
	assert.Equal(t, "timestamp", cfg.Upload.FilenameStrategy)
	assert.Equal(t, int64(10<<20), cfg.Upload.MaxBytes)
}

func TestNewConfig_FromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_DRIVER", "SQLite")
	t.Setenv("DATABASE_PATH", "/tmp/test.db")
	t.Setenv("STORAGE_DRIVER", "s3")
	t.Setenv("S3_BUCKET", "exam-images")
	t.Setenv("S3_USE_PATH_STYLE", "true")
	t.Setenv("FILENAME_STRATEGY", "uuid")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://a.test, http://b.test")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "/tmp/test.db", cfg.Database.Path)
	assert.Equal(t, "s3", cfg.Storage.Driver)
	assert.Equal(t, "exam-images", cfg.Storage.S3.Bucket)
	assert.True(t, cfg.Storage.S3.UsePathStyle)
	assert.Equal(t, "uuid", cfg.Upload.FilenameStrategy)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.AllowOrigins)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]map[string]any{
		"unknown database driver": {"DATABASE_DRIVER": "oracle"},
		"unknown storage driver":  {"STORAGE_DRIVER": "ftp"},
		"s3 without bucket":       {"STORAGE_DRIVER": "s3"},
		"unknown strategy":        {"FILENAME_STRATEGY": "sequence"},
		"zero upload limit":       {"UPLOAD_MAX_BYTES": 0},
		"unknown gin mode":        {"GIN_MODE": "chatty"},
		"no cors origins":         {"CORS_ALLOW_ORIGINS": " , "},
	}

	for name, values := range cases {
		t.Run(name, func(t *testing.T) {
			v := viper.New()
			setDefaults(v)
			for k, val := range values {
				v.Set(k, val)
			}
			_, err := load(v)
			assert.Error(t, err)
		})
	}
}
