package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/coppahp/planner/internal/progress"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	StoreSQLite = "sqlite"
	StoreFile   = "file"
)

// Config represents the application configuration
type Config struct {
	Store       string  `yaml:"store"`
	DBPath      string  `yaml:"db_path"`
	ProjectsDir string  `yaml:"projects_dir"`
	ArchiveDir  string  `yaml:"archive_dir"`
	ForcesFile  string  `yaml:"forces_file"`
	RAGRed      float64 `yaml:"rag_red"`
	RAGAmber    float64 `yaml:"rag_amber"`
	LogUseCases bool    `yaml:"log_use_cases"`
}

// Default returns the configuration used when nothing else is set. Paths
// are left empty and filled by Load relative to the data directory.
func Default() *Config {
	t := progress.DefaultThresholds()
	return &Config{
		Store:    StoreSQLite,
		RAGRed:   t.Red,
		RAGAmber: t.Amber,
	}
}

// Load loads configuration from multiple sources with precedence:
// 1. Environment variables (AHP_*)
// 2. ./.env.local (dotenv) - walks up parent directories to find it
// 3. ~/.config/ahp/config.yaml (YAML)
func Load() (*Config, error) {
	cfg := Default()

	if envPath := findEnvLocal(); envPath != "" {
		_ = godotenv.Load(envPath)
	}

	if path := yamlConfigPath(); path != "" {
		if err := loadYAMLFile(cfg, path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.fillPaths(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Thresholds returns the configured RAG cut-offs.
func (c *Config) Thresholds() progress.Thresholds {
	return progress.Thresholds{Red: c.RAGRed, Amber: c.RAGAmber}
}

func (c *Config) Validate() error {
	switch c.Store {
	case StoreSQLite, StoreFile:
	default:
		return fmt.Errorf("unknown store %q (want %s or %s)", c.Store, StoreSQLite, StoreFile)
	}
	return c.Thresholds().Validate()
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("AHP_STORE"); v != "" {
		cfg.Store = strings.ToLower(v)
	}
	if v := getEnvOrFile("AHP_DB_PATH", "AHP_DB_PATH_FILE"); v != "" {
		cfg.DBPath = strings.TrimSpace(v)
	}
	if v := os.Getenv("AHP_PROJECTS_DIR"); v != "" {
		cfg.ProjectsDir = v
	}
	if v := os.Getenv("AHP_ARCHIVE_DIR"); v != "" {
		cfg.ArchiveDir = v
	}
	if v := os.Getenv("AHP_FORCES_FILE"); v != "" {
		cfg.ForcesFile = v
	}
	for _, f := range []struct {
		env string
		dst *float64
	}{
		{"AHP_RAG_RED", &cfg.RAGRed},
		{"AHP_RAG_AMBER", &cfg.RAGAmber},
	} {
		v := os.Getenv(f.env)
		if v == "" {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", f.env, err)
		}
		*f.dst = n
	}
	if v := os.Getenv("AHP_LOG_USE_CASES"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parsing AHP_LOG_USE_CASES: %w", err)
		}
		cfg.LogUseCases = b
	}
	// Explicit paths above win; the data dir fills the rest.
	if v := os.Getenv("AHP_DATA_DIR"); v != "" {
		cfg.applyDataDir(v)
	}
	return nil
}

// fillPaths defaults every unset path under ~/.local/share/ahp.
func (c *Config) fillPaths() error {
	if c.DBPath != "" && c.ProjectsDir != "" && c.ArchiveDir != "" && c.ForcesFile != "" {
		return nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	c.applyDataDir(filepath.Join(homeDir, ".local", "share", "ahp"))
	return nil
}

func (c *Config) applyDataDir(dataDir string) {
	if c.DBPath == "" {
		c.DBPath = filepath.Join(dataDir, "ahp.db")
	}
	if c.ProjectsDir == "" {
		c.ProjectsDir = filepath.Join(dataDir, "projects")
	}
	if c.ArchiveDir == "" {
		c.ArchiveDir = filepath.Join(dataDir, "archive")
	}
	if c.ForcesFile == "" {
		c.ForcesFile = filepath.Join(dataDir, "forces.json")
	}
}

func yamlConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config", "ahp", "config.yaml")
}

func loadYAMLFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// getEnvOrFile gets an environment variable value, or reads it from a file
// if the _FILE variant is set
func getEnvOrFile(envVar, fileVar string) string {
	if val := os.Getenv(envVar); val != "" {
		return val
	}
	if filePath := os.Getenv(fileVar); filePath != "" {
		data, err := os.ReadFile(filePath)
		if err == nil {
			return string(data)
		}
	}
	return ""
}

// findEnvLocal searches for .env.local starting from cwd and walking up
// parent directories. Stops at the user's home directory.
func findEnvLocal() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		if _, err := os.Stat(".env.local"); err == nil {
			return ".env.local"
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	homeDir = filepath.Clean(homeDir)
	dir := filepath.Clean(cwd)
	for {
		envPath := filepath.Join(dir, ".env.local")
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
		if dir == homeDir {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}
