package config

import (
	"errors"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Server      struct {
		Port            string `env:"PORT" envDefault:"8080"`
		ReadTimeout     int    `env:"READ_TIMEOUT" envDefault:"10"`
		WriteTimeout    int    `env:"WRITE_TIMEOUT" envDefault:"15"`
		IdleTimeout     int    `env:"IDLE_TIMEOUT" envDefault:"60"`
		ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"10"`
	} `envPrefix:"SERVER_"`
	API struct {
		BaseURL string `env:"BASE_URL,required"`
		Timeout int    `env:"TIMEOUT" envDefault:"10"`
	} `envPrefix:"API_"`
	Session struct {
		CookieName string `env:"COOKIE_NAME" envDefault:"__course_manager_session"`
		HashKey    string `env:"HASH_KEY,required"`
		BlockKey   string `env:"BLOCK_KEY"`
		MaxAge     int    `env:"MAX_AGE" envDefault:"1209600"` // 14 天
	} `envPrefix:"SESSION_"`
	Redis struct {
		Host             string `env:"HOST" envDefault:"localhost"`
		Port             int    `env:"PORT" envDefault:"6379"`
		Password         string `env:"PASSWORD,required"`
		ConnectTimeout   int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
		OperationTimeout int    `env:"OPERATION_TIMEOUT" envDefault:"10"`
	} `envPrefix:"REDIS_"`
	Payment struct {
		ScriptURL   string `env:"SCRIPT_URL" envDefault:"https://cdn.omise.co/omise.js"`
		VaultURL    string `env:"VAULT_URL" envDefault:"https://vault.omise.co"`
		PublicKey   string `env:"PUBLIC_KEY,required"`
		LoadTimeout int    `env:"LOAD_TIMEOUT" envDefault:"10"`
	} `envPrefix:"PAYMENT_"`
}

func LoadConfig() (*Config, error) {
	// 本地开发时先加载 .env，不存在则忽略
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok {
			// 只返回第一个错误使得日志更清晰
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}

	return cfg, nil
}
