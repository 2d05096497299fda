// Package config reads and writes lyn.toml, the project file that sets the
// module search paths and loader limits.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"lyn/internal/logging"
)

const (
	CONFIG_FILE = "lyn.toml"
	ENV_PREFIX  = "LYN"
)

var (
	ErrNotFound          = errors.New("project file not found")
	ErrExists            = errors.New("project file already exists")
	ErrInvalidDebug      = errors.New("debug level must be between 0 and 3")
	ErrInvalidMaxModules = errors.New("max_modules must not be negative")
	ErrEmptySearchPath   = errors.New("search path entries must not be empty")
)

type ProjectConfig struct {
	Name        string   `mapstructure:"name" toml:"name"`
	SearchPaths []string `mapstructure:"search_paths" toml:"search_paths"`
	Debug       int      `mapstructure:"debug" toml:"debug"`
	MaxModules  int      `mapstructure:"max_modules" toml:"max_modules"`

	// ProjectRoot is the directory holding the project file. Not stored.
	ProjectRoot string `mapstructure:"-" toml:"-"`
}

// Default is the configuration of a project without a project file.
func Default(projectRoot string) *ProjectConfig {
	name := filepath.Base(projectRoot)
	if name == "." || name == string(filepath.Separator) {
		name = "lyn-project"
	}
	return &ProjectConfig{
		Name:        name,
		SearchPaths: []string{"."},
		Debug:       logging.DebugQuiet,
		ProjectRoot: filepath.ToSlash(projectRoot),
	}
}

func setDefaults(v *viper.Viper, projectRoot string) {
	def := Default(projectRoot)
	v.SetDefault("name", def.Name)
	v.SetDefault("search_paths", def.SearchPaths)
	v.SetDefault("debug", def.Debug)
	v.SetDefault("max_modules", def.MaxModules)
}

// LoadProjectConfig reads lyn.toml from projectRoot.
func LoadProjectConfig(projectRoot string) (*ProjectConfig, error) {
	return LoadFile(filepath.Join(projectRoot, CONFIG_FILE))
}

// LoadFile reads a project file. LYN_* environment variables override its
// keys, e.g. LYN_DEBUG=3 or LYN_SEARCH_PATHS=src,lib.
func LoadFile(configPath string) (*ProjectConfig, error) {
	projectRoot := filepath.Dir(configPath)

	v := viper.New()
	setDefaults(v, projectRoot)
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	v.SetEnvPrefix(ENV_PREFIX)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.Is(err, os.ErrNotExist) || errors.As(err, &notFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, configPath)
		}
		return nil, fmt.Errorf("failed to read %s: %w", configPath, err)
	}

	var conf ProjectConfig
	if err := v.Unmarshal(&conf); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", configPath, err)
	}
	conf.ProjectRoot = filepath.ToSlash(projectRoot)

	if err := Validate(&conf); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", configPath, err)
	}
	return &conf, nil
}

func Validate(conf *ProjectConfig) error {
	if conf == nil {
		return errors.New("project configuration is nil")
	}
	if conf.Debug < logging.DebugQuiet || conf.Debug > logging.DebugVerbose {
		return fmt.Errorf("%w: %d", ErrInvalidDebug, conf.Debug)
	}
	if conf.MaxModules < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxModules, conf.MaxModules)
	}
	for i, path := range conf.SearchPaths {
		if strings.TrimSpace(path) == "" {
			return fmt.Errorf("%w: entry %d", ErrEmptySearchPath, i)
		}
	}
	return nil
}

// ResolvedSearchPaths returns the search paths with relative entries joined
// to the project root, in slash form.
func (conf *ProjectConfig) ResolvedSearchPaths() []string {
	paths := make([]string, 0, len(conf.SearchPaths))
	for _, path := range conf.SearchPaths {
		if !filepath.IsAbs(path) && conf.ProjectRoot != "" {
			path = filepath.Join(conf.ProjectRoot, path)
		}
		paths = append(paths, filepath.ToSlash(filepath.Clean(path)))
	}
	return paths
}

// Save writes the configuration to lyn.toml in its project root.
func (conf *ProjectConfig) Save() error {
	data, err := toml.Marshal(conf)
	if err != nil {
		return fmt.Errorf("failed to encode project file: %w", err)
	}
	configPath := filepath.Join(conf.ProjectRoot, CONFIG_FILE)
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", configPath, err)
	}
	return nil
}

// CreateDefault writes a default lyn.toml into projectRoot. An existing file
// is left alone and reported as ErrExists.
func CreateDefault(projectRoot string) (*ProjectConfig, error) {
	abs, err := filepath.Abs(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path of %s: %w", projectRoot, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", abs, err)
	}
	configPath := filepath.Join(abs, CONFIG_FILE)
	if _, err := os.Stat(configPath); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrExists, configPath)
	}

	conf := Default(abs)
	if err := conf.Save(); err != nil {
		return nil, err
	}
	return conf, nil
}

func IsProjectRoot(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, CONFIG_FILE))
	return err == nil && info.Mode().IsRegular()
}

// FindProjectRoot walks up from start (a file or a directory) to the first
// directory holding lyn.toml.
func FindProjectRoot(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path of %s: %w", start, err)
	}

	dir := abs
	if info, err := os.Stat(abs); err != nil || !info.IsDir() {
		dir = filepath.Dir(abs)
	}

	for {
		if IsProjectRoot(dir) {
			return filepath.ToSlash(dir), nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("%w: no %s from %s up to the filesystem root", ErrNotFound, CONFIG_FILE, abs)
}
