package config

import (
	"os"

	"github.com/goccy/go-yaml"
)

// yamlFile is a koanf provider reading a YAML document from disk.
type yamlFile string

func (f yamlFile) ReadBytes() ([]byte, error) {
	return os.ReadFile(string(f))
}

func (f yamlFile) Read() (map[string]interface{}, error) {
	b, err := f.ReadBytes()
	if err != nil {
		return nil, err
	}
	out := map[string]interface{}{}
	if err := yaml.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}
