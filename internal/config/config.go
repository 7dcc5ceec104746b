// Package config loads application configuration from file and environment.
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/fx"
)

type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

type DatabaseConfig struct {
	// Driver selects the gorm dialector: "mysql" or "sqlite".
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

// Operator is the invoicing party printed on rendered invoices.
type Operator struct {
	Name    string `mapstructure:"name"`
	Address string `mapstructure:"address"`
	Email   string `mapstructure:"email"`
	Phone   string `mapstructure:"phone"`
	IBAN    string `mapstructure:"iban"`
	KvK     string `mapstructure:"kvk"`
}

type StorageConfig struct {
	// Dir is the root directory for rendered invoice documents.
	Dir string `mapstructure:"dir"`
}

type Config struct {
	Env           string         `mapstructure:"env"`
	HTTP          HTTPConfig     `mapstructure:"http"`
	Database      DatabaseConfig `mapstructure:"database"`
	SMTP          SMTPConfig     `mapstructure:"smtp"`
	Storage       StorageConfig  `mapstructure:"storage"`
	Operator      Operator       `mapstructure:"operator"`
	CustomersFile string         `mapstructure:"customers_file"`
}

// Load reads fatoura.yaml (working dir or ./config) plus FATOURA_* env vars.
// A missing config file is fine; defaults and environment carry a dev setup.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("fatoura")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.SetEnvPrefix("FATOURA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("env", "development")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "fatoura.db")
	v.SetDefault("smtp.host", "localhost")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("storage.dir", "storage/factuur")
	v.SetDefault("customers_file", "config/customers.json")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

var Module = fx.Module("config",
	fx.Provide(Load),
)
