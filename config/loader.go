package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/kbukum/foldkit/errors"
)

// EnvPrefix prefixes every environment variable foldkit reads.
const EnvPrefix = "FOLDKIT"

// Flag names registered by RegisterFlags.
const (
	FlagConfig    = "config"
	FlagEnvFile   = "env-file"
	FlagInput     = "input"
	FlagStage     = "stage"
	FlagTerminal  = "terminal"
	FlagPredicate = "predicate"
	FlagLogLevel  = "log-level"
	FlagLogFormat = "log-format"
)

// flagKeys maps flags onto the configuration keys they override.
var flagKeys = map[string]string{
	FlagInput:     "inputs",
	FlagTerminal:  "pipeline.terminal.kind",
	FlagPredicate: "pipeline.terminal.expr",
	FlagLogLevel:  "log.level",
	FlagLogFormat: "log.format",
}

// RegisterFlags declares the configuration flags on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP(FlagConfig, "c", "", "path to a YAML config file")
	fs.String(FlagEnvFile, "", "path to a .env file")
	fs.StringSliceP(FlagInput, "i", nil, "input files, one value per line; - reads stdin")
	fs.StringArrayP(FlagStage, "s", nil, "pipeline stage as kind:expr (filter, transform, take_while); repeatable, applied in order")
	fs.StringP(FlagTerminal, "t", "", "terminal: copy, all_of, any_of, none_of, count, sum")
	fs.StringP(FlagPredicate, "p", "", "predicate for all_of, any_of and none_of")
	fs.String(FlagLogLevel, "", "log level")
	fs.String(FlagLogFormat, "", "log format: console or json")
}

// FileSystem interface for file operations (useful for testing).
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// RealFileSystem implements FileSystem using actual file operations.
type RealFileSystem struct{}

func (rfs *RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (rfs *RealFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// Resolver finds config and env files.
type Resolver struct {
	FileSystem FileSystem
}

// ResolvedFiles contains the resolved config and env file paths.
type ResolvedFiles struct {
	ConfigFile string
	EnvFile    string
}

// ResolveFiles returns the explicit paths in lc, searching standard locations
// for any that are missing.
func (r *Resolver) ResolveFiles(lc LoaderConfig) ResolvedFiles {
	resolved := ResolvedFiles{ConfigFile: lc.ConfigFile, EnvFile: lc.EnvFile}
	if resolved.ConfigFile == "" {
		resolved.ConfigFile = r.firstExisting(
			"./foldkit.yml",
			"./foldkit.yaml",
			"./config/foldkit.yml",
			"./cmd/foldkit/config.yml",
		)
	}
	if resolved.EnvFile == "" {
		resolved.EnvFile = r.firstExisting("./.env.foldkit", "./.env")
	}
	return resolved
}

func (r *Resolver) firstExisting(paths ...string) string {
	for _, p := range paths {
		if r.FileSystem.Exists(p) {
			return p
		}
	}
	return ""
}

// LoaderConfig holds dependencies and optional overrides.
type LoaderConfig struct {
	FileSystem FileSystem
	ConfigFile string // Direct config file path (optional)
	EnvFile    string // Direct env file path (optional)
	Flags      *pflag.FlagSet
}

// LoaderOption is a functional option for Load.
type LoaderOption func(*LoaderConfig)

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// WithFlags binds a flag set populated by RegisterFlags. Flags the user set
// override every other source.
func WithFlags(fs *pflag.FlagSet) LoaderOption {
	return func(lc *LoaderConfig) { lc.Flags = fs }
}

// Load builds, defaults and validates the configuration.
func Load(opts ...LoaderOption) (*Config, error) {
	var lc LoaderConfig
	for _, opt := range opts {
		opt(&lc)
	}
	if lc.FileSystem == nil {
		lc.FileSystem = &RealFileSystem{}
	}
	explicitConfig := lc.ConfigFile != ""
	if lc.Flags != nil {
		if path, _ := lc.Flags.GetString(FlagConfig); path != "" && lc.Flags.Changed(FlagConfig) {
			lc.ConfigFile, explicitConfig = path, true
		}
		if path, _ := lc.Flags.GetString(FlagEnvFile); path != "" && lc.Flags.Changed(FlagEnvFile) {
			lc.EnvFile = path
		}
	}

	resolver := &Resolver{FileSystem: lc.FileSystem}
	files := resolver.ResolveFiles(lc)

	v := viper.New()
	setDefaults(v)

	// 1. YAML config file
	if files.ConfigFile != "" {
		if explicitConfig && !lc.FileSystem.Exists(files.ConfigFile) {
			return nil, errors.InvalidConfig(fmt.Sprintf("config file %s not found", files.ConfigFile))
		}
		v.SetConfigFile(files.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.InvalidConfig(fmt.Sprintf("cannot read config file %s", files.ConfigFile)).WithCause(err)
		}
	}

	// 2. .env file, then environment variables
	if files.EnvFile != "" {
		if err := lc.FileSystem.LoadEnv(files.EnvFile); err != nil {
			return nil, errors.InvalidConfig(fmt.Sprintf("cannot load env file %s", files.EnvFile)).WithCause(err)
		}
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 3. Flags
	if lc.Flags != nil {
		for flag, key := range flagKeys {
			if f := lc.Flags.Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, errors.Internal(err)
				}
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.InvalidConfig("cannot decode configuration").WithCause(err)
	}

	if lc.Flags != nil && lc.Flags.Changed(FlagStage) {
		raw, _ := lc.Flags.GetStringArray(FlagStage)
		stages := make([]Stage, 0, len(raw))
		for _, s := range raw {
			stage, err := ParseStage(s)
			if err != nil {
				return nil, err
			}
			stages = append(stages, stage)
		}
		cfg.Pipeline.Stages = stages
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every scalar key so AutomaticEnv can override it.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stderr")
	v.SetDefault("log.no_color", false)
	v.SetDefault("log.timestamp", false)
	v.SetDefault("log.caller", false)
	v.SetDefault("inputs", []string{StdinInput})
	v.SetDefault("pipeline.terminal.kind", TerminalCopy)
	v.SetDefault("pipeline.terminal.expr", "")
}
