package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Config carries the server settings. Values come from an optional
// config.yaml in the working directory and POS_* environment variables
// (POS_DATABASE_URL, POS_REDIS_ADDR, ...), environment taking precedence.
type Config struct {
	Addr            string
	DatabaseURL     string
	RedisAddr       string
	JWTSecret       string
	LoginRatePerSec float64
	LoginBurst      int
	LockoutStrikes  int
	LockoutMinutes  int
}

func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("pos")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("addr", ":8080")
	v.SetDefault("database.url", "")
	v.SetDefault("redis.addr", "")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("login.rate", 1.0)
	v.SetDefault("login.burst", 3)
	v.SetDefault("lockout.strikes", 5)
	v.SetDefault("lockout.minutes", 15)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, err
		}
	}

	return Config{
		Addr:            v.GetString("addr"),
		DatabaseURL:     v.GetString("database.url"),
		RedisAddr:       v.GetString("redis.addr"),
		JWTSecret:       v.GetString("jwt.secret"),
		LoginRatePerSec: v.GetFloat64("login.rate"),
		LoginBurst:      v.GetInt("login.burst"),
		LockoutStrikes:  v.GetInt("lockout.strikes"),
		LockoutMinutes:  v.GetInt("lockout.minutes"),
	}, nil
}
