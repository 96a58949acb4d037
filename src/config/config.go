package config

import (
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/kitbid/KitBidBackend/src/pkg/logger/xzap"
	"github.com/kitbid/KitBidBackend/src/pkg/stores/gdb"
)

type ApiConfig struct {
	Port string `toml:"port" mapstructure:"port"`
}

type RedisConfig struct {
	Host string `toml:"host" mapstructure:"host"`
	Type string `toml:"type" mapstructure:"type"`
	Pass string `toml:"pass" mapstructure:"pass"`
}

type KvConfig struct {
	Redis []RedisConfig `toml:"redis" mapstructure:"redis"`
}

type SweeperConfig struct {
	IntervalSeconds int `toml:"interval_seconds" mapstructure:"interval_seconds"`
}

type Config struct {
	Api     ApiConfig     `toml:"api" mapstructure:"api"`
	Log     xzap.Config   `toml:"log" mapstructure:"log"`
	DB      gdb.Config    `toml:"db" mapstructure:"db"`
	Kv      KvConfig      `toml:"kv" mapstructure:"kv"`
	Sweeper SweeperConfig `toml:"sweeper" mapstructure:"sweeper"`
}

// UnmarshalConfig loads and parses the TOML config at path.
func UnmarshalConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrap(err, "failed on read config file")
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.Wrap(err, "failed on unmarshal config")
	}
	if c.Sweeper.IntervalSeconds <= 0 {
		c.Sweeper.IntervalSeconds = 60
	}
	return &c, nil
}
