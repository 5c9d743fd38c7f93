package config

import (
	"flag"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env         string      `yaml:"env" env:"ENV" env-default:"local"`
	Mongo       MongoConfig `yaml:"mongo"`
	AdminEmails string      `yaml:"admin_emails" env:"NEXT_PUBLIC_ADMIN_EMAILS"`
	HTTP        HTTPConfig  `yaml:"http"`
	Redis       RedisConf   `yaml:"redis"`
}

type MongoConfig struct {
	// URL is required: the process cannot serve requests without a database.
	URL      string `yaml:"url" env:"MONGODB_URL" env-required:"true"`
	Database string `yaml:"database" env:"MONGODB_DB" env-default:"blog"`
}

type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
}

type RedisConf struct {
	RedisAddr     string `yaml:"redis_addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	RedisPassword string `yaml:"redis_password" env:"REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db" env:"REDIS_DB" env-default:"0"`
}

func MustLoad() *Config {
	path := fetchConfigPath()
	if path == "" {
		// env-only deployment: everything comes from the environment
		var cfg Config
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			panic("cannot read config from env: " + err.Error())
		}
		return &cfg
	}

	return MustLoadPath(path)
}

func MustLoadPath(configPath string) *Config {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("cannot read config: " + err.Error())
	}

	return &cfg
}

func fetchConfigPath() string {
	var res string

	// --config="path/to/config.yaml"
	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
