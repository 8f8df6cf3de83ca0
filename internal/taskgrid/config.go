package taskgrid

import (
	"os"
	"path/filepath"
)

type Config struct {
	Version        int               `yaml:"version"`
	Port           int               `yaml:"port"`
	DataPath       string            `yaml:"data_path"`
	CategoryColors map[string]string `yaml:"category_colors"`
	AssigneeColors map[string]string `yaml:"assignee_colors"`
	CategoryOrder  []string          `yaml:"category_order"`
	AssigneeOrder  []string          `yaml:"assignee_order"`
}

func defaultConfig() Config {
	return Config{
		Version: 1,
		Port:    8050,
		CategoryColors: map[string]string{
			"Platform":  "#3498db",
			"UX":        "#9b59b6",
			"Content":   "#e74c3c",
			"Marketing": "#f39c12",
			"Data":      "#2ecc71",
		},
		AssigneeColors: map[string]string{
			"Mori": "#3498db",
			"Sato": "#e74c3c",
		},
		CategoryOrder: []string{"Platform", "UX", "Content", "Marketing", "Data"},
		AssigneeOrder: []string{"Mori", "Sato"},
	}
}

// loadConfigOrDefault reads .taskgrid/config.yaml, falling back to the
// default configuration when the file is missing or unversioned.
func loadConfigOrDefault(root string) (Config, error) {
	var cfg Config
	err := readYAMLFile(configPath(root), &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultConfig(), nil
		}
		return defaultConfig(), err
	}
	if cfg.Version == 0 {
		return defaultConfig(), nil
	}
	if cfg.DataPath == "" {
		cfg.DataPath = defaultDataPath(root)
	}
	return cfg, nil
}

func (c Config) dataPath(root string) string {
	if c.DataPath == "" {
		return defaultDataPath(root)
	}
	if filepath.IsAbs(c.DataPath) {
		return c.DataPath
	}
	return filepath.Join(root, c.DataPath)
}
