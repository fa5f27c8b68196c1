package config

import (
	"fmt"
	"os"

	"github.com/gofrs/uuid"
	"github.com/pelletier/go-toml"
)

const (
	DefaultStoreDir = "~/.mixin/musesong/data"
	DefaultLogLevel = 2
)

type AppConfig struct {
	ClientId string `toml:"client-id"`
}

type StoreConfig struct {
	Dir string `toml:"dir"`
}

type LogConfig struct {
	Level *int `toml:"level"`
}

type Configuration struct {
	App   AppConfig   `toml:"app"`
	Store StoreConfig `toml:"store"`
	Log   LogConfig   `toml:"log"`
}

func Setup(path string) (*Configuration, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(f)
}

func Parse(data []byte) (*Configuration, error) {
	var conf Configuration
	err := toml.Unmarshal(data, &conf)
	if err != nil {
		return nil, err
	}
	id, err := uuid.FromString(conf.App.ClientId)
	if err != nil || id == uuid.Nil {
		return nil, fmt.Errorf("invalid app client-id %q", conf.App.ClientId)
	}
	if conf.Store.Dir == "" {
		conf.Store.Dir = DefaultStoreDir
	}
	if conf.Log.Level == nil {
		level := DefaultLogLevel
		conf.Log.Level = &level
	}
	return &conf, nil
}
