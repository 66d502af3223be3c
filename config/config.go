package config

import (
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type PostgresConfig struct {
	URL string `mapstructure:"url"`
}

type NotifyConfig struct {
	QueueSize int `mapstructure:"queueSize"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	Notify   NotifyConfig   `mapstructure:"notify"`
}

// LoadConfig reads config.yaml from path and overlays environment variables.
// A missing file is fine, env alone is enough to run.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AutomaticEnv()

	viper.BindEnv("server.address", "SERVER_ADDRESS")
	viper.BindEnv("postgres.url", "POSTGRES_CONN")
	viper.BindEnv("notify.queueSize", "NOTIFY_QUEUE_SIZE")

	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("notify.queueSize", 256)

	err = viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		return
	}

	return
}
