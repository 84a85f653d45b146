package config

import (
	"fmt"

	"github.com/spf13/viper"
)

func LoadConfig(filename string) (*Config, error) {
	viper.SetConfigName(filename)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	var config Config
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("cannot read the file %w", err)
	}
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error reading the config file %w", err)
	}
	return &config, nil
}

func GetDefaultConfig() *Config {
	return &Config{
		Corpus: CorpusConfig{
			NormalizeNFC: true,
		},
		Check: CheckConfig{
			AllowedTags: []string{"e", "s", "n"},
		},
		HMM: HMMConfig{
			States:     []string{"e", "s"},
			SkipStates: []string{"n"},
		},
		Freq: FreqConfig{
			BandSize:     32,
			MinCount:     1,
			DedupeFilter: "seen_lines",
		},
		Redis: RedisConfig{
			Host:  "localhost:6379",
			Port:  6379,
			Local: true,
			SSL:   false,
		},
		DB: PostgresConfig{
			Host:     "localhost",
			Port:     5433,
			User:     "admin",
			Password: "secret",
			DBName:   "codemix_db",
			SSL:      false,
			Local:    true,
		},
		Mongo: MongoConfig{
			URI:        "mongodb://localhost:27017",
			Local:      true,
			DBName:     "codemix",
			CorpusColl: "corpus_lines",
		},
		API: APIConfig{
			HTTPAddr:  ":8080",
			WarmCache: true,
		},
	}
}
