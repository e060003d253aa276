package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const DefaultConfigFilename = ".svclaunch.yaml"

type File struct {
	Terminal *Terminal `yaml:"terminal,omitempty"`
	Services []Service `yaml:"services"`
}

// Terminal overrides the per-platform terminal profile.
type Terminal struct {
	Program string   `yaml:"program"`
	Args    []string `yaml:"args,omitempty"`
	Shell   string   `yaml:"shell,omitempty"` // "posix" | "cmd"
}

type Service struct {
	ID          string `yaml:"id"`
	Path        string `yaml:"path"`
	Dev         string `yaml:"dev"`
	Start       string `yaml:"start"`
	Description string `yaml:"description,omitempty"`
}

func DefaultPath(root string) string {
	return filepath.Join(root, DefaultConfigFilename)
}

// Default is the workspace layout used when no config file exists.
func Default() *File {
	return &File{
		Services: []Service{
			{ID: "sa", Path: filepath.Join("apps", "sa"), Dev: "npm run dev", Start: "npm run start"},
			{ID: "sb", Path: filepath.Join("apps", "sb"), Dev: "npm run dev", Start: "npm run start"},
		},
	}
}

func LoadFromFile(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	var cfg File
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, errors.Wrap(err, "parse config yaml")
	}
	return &cfg, nil
}

func LoadOptional(path string) (*File, error) {
	_, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errors.Wrap(err, "stat config")
	}
	return LoadFromFile(path)
}
