package history

import "time"

type Point struct {
	At    int64   `yaml:"at"`
	Value float64 `yaml:"v"`
}

type Storage interface {
	Load(key string) (ps []*Point, err error)
	Save(key string, ps []*Point) error
}

type Config struct {
	BaseDuration  time.Duration `yaml:"baseDuration" json:"baseDuration"`
	MaxPointCount int           `yaml:"maxPointCount" json:"maxPointCount"`
	Speeds        []int         `yaml:"speeds" json:"speeds"`
	// Keys are preloaded from storage on start.
	Keys []string `yaml:"keys" json:"keys"`
}
