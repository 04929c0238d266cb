package main

import (
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sgostarter/libchart/curve"
	"github.com/sgostarter/libchart/history"
	"github.com/sgostarter/libchart/linegraph"
)

type Config struct {
	Graph linegraph.Config  `yaml:"graph" json:"graph"`
	Cache curve.CacheConfig `yaml:"cache" json:"cache"`

	HistoryRoot string         `yaml:"historyRoot" json:"historyRoot"`
	History     history.Config `yaml:"history" json:"history"`
}

const defaultDecimals = 2

func loadConfig(file string) (cfg Config, err error) {
	// zero is a valid precision, so the default goes in before decoding
	cfg.Graph.Decimals = defaultDecimals

	if file != "" {
		var d []byte

		d, err = os.ReadFile(file)
		if err != nil {
			return
		}

		err = yaml.Unmarshal(d, &cfg)
		if err != nil {
			return
		}
	}

	if cfg.Graph.Tolerance <= 0 {
		cfg.Graph.Tolerance = 3
	}

	if cfg.Graph.Density <= 0 {
		cfg.Graph.Density = 100
	}

	if cfg.Graph.Decimals < 0 {
		cfg.Graph.Decimals = defaultDecimals
	}

	if cfg.Graph.Locale == "" {
		cfg.Graph.Locale = "en"
	}

	return
}

func readSeries(file string, stdin io.Reader) ([]float64, error) {
	var (
		d   []byte
		err error
	)

	if file == "-" {
		d, err = io.ReadAll(stdin)
	} else {
		d, err = os.ReadFile(file)
	}

	if err != nil {
		return nil, err
	}

	return history.DecodeSeries(d)
}
