package config

import (
	"os"
	"strings"
	"time"

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
	Anki     Anki     `koanf:"anki"`
	Database Database `koanf:"db"`
	Widget   Widget   `koanf:"widget"`
	Refresh  Refresh  `koanf:"refresh"`
	Theme    Theme    `koanf:"theme"`
}

type Frontend struct {
	Enabled bool `koanf:"enabled"`
}

// Anki configures the connection to the AnkiConnect endpoint that exposes
// per-deck pending counts.
type Anki struct {
	URL     string        `koanf:"url"`
	Timeout time.Duration `koanf:"timeout"`
}

type Database struct {
	Path string `koanf:"path"`
}

// Widget holds defaults applied to newly created widget configurations.
type Widget struct {
	DayStartHour int `koanf:"daystarthour"`
	DaysToShow   int `koanf:"daystoshow"`
}

type Refresh struct {
	Interval time.Duration `koanf:"interval"`
}

// Theme optionally supplies host accent colors for the dynamic theme.
// Colors are hex strings like "#39D353". When empty, the dynamic theme falls
// back to the GitHub palette.
type Theme struct {
	DynamicLight DynamicColors `koanf:"dynamiclight"`
	DynamicDark  DynamicColors `koanf:"dynamicdark"`
}

type DynamicColors struct {
	Completed  string `koanf:"completed"`
	Incomplete string `koanf:"incomplete"`
	NoData     string `koanf:"nodata"`
	Background string `koanf:"background"`
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		Listen: ":8585",
		Frontend: Frontend{
			Enabled: true,
		},
		Anki: Anki{
			URL:     "http://localhost:8765",
			Timeout: 10 * time.Second,
		},
		Database: Database{
			Path: "./ankigrid.db",
		},
		Widget: Widget{
			DayStartHour: 4,
			DaysToShow:   98,
		},
		Refresh: Refresh{
			Interval: time.Hour,
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
		Prefix: "ANKIGRID_",
		TransformFunc: func(k, v string) (string, any) {
			// Transform the key.
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "ANKIGRID_")), "_", ".")
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
