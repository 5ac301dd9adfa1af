package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

type Application struct {
	Listen   string   `koanf:"listen"`
	Frontend Frontend `koanf:"frontend"`
	Auth     Auth     `koanf:"auth"`
	Reminder Reminder `koanf:"reminder"`
	Database Database `koanf:"db"`
}

type Frontend struct {
	Enabled bool `koanf:"enabled"`
}

type Auth struct {
	// Secret signs session tokens. Must be overridden outside local development.
	Secret string `koanf:"secret"`
	// TokenTTLHours is the session token lifetime in hours.
	TokenTTLHours int `koanf:"tokenttlhours"`
}

type Reminder struct {
	Enabled bool `koanf:"enabled"`
	// Schedule is a cron expression for the due-expense scan.
	Schedule string `koanf:"schedule"`
}

type Database struct {
	// Driver selects the storage backend: "sqlite" (default) or "postgres".
	Driver string `koanf:"driver"`
	// Path is the sqlite database file location.
	Path   string `koanf:"path"`
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		Listen: ":8184",
		Frontend: Frontend{
			Enabled: true,
		},
		Auth: Auth{
			Secret:        "kharcha-dev-secret",
			TokenTTLHours: 72,
		},
		Reminder: Reminder{
			Enabled:  true,
			Schedule: "0 8 * * *",
		},
		Database: Database{
			Driver: "sqlite",
			Path:   "kharcha.db",
			Host:   "localhost",
			Port:   5432,
			User:   "kharcha",
			Pass:   "",
			Name:   "kharcha",
			Schema: "kharcha",
		},
	}, "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "KHARCHA_",
		TransformFunc: func(k, v string) (string, any) {
			// Transform the key.
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "KHARCHA_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}
