package config

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	apperrors "github.com/jjenkins/bulletin/internal/errors"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env  string `validate:"oneof=development production"`
	Port string `validate:"required,numeric"`

	// MongoURI is the storage connection string. Despite the name it may also be a
	// postgres:// URI; the scheme picks the backend.
	MongoURI string `validate:"required"`

	Log LogConfig
}

type LogConfig struct {
	Level  string `validate:"oneof=debug info warn error"`
	Format string `validate:"oneof=console json"`
}

var validate = validator.New()

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile is Load with an explicit env file path. The file is optional and
// never overrides variables already set in the environment.
func LoadFile(path string) (*Config, error) {
	_ = godotenv.Load(path)

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	cfg := &Config{
		Env:      strings.ToLower(v.GetString("ENV")),
		Port:     v.GetString("PORT"),
		MongoURI: strings.TrimSpace(v.GetString("MONGODB_URI")),
		Log: LogConfig{
			Level:  strings.ToLower(v.GetString("LOG_LEVEL")),
			Format: strings.ToLower(v.GetString("LOG_FORMAT")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks every field against its tag rules.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			if fe.Field() == "MongoURI" {
				return apperrors.Config(nil, "MONGODB_URI environment variable is required")
			}
			return apperrors.Config(nil, "invalid value %q for %s", fe.Value(), fe.Namespace())
		}
		return apperrors.Config(err, "invalid configuration")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", "8080")
	v.SetDefault("MONGODB_URI", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
}
