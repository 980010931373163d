// Package config loads foldkit run configuration.
//
// It uses Viper to merge, in increasing priority: built-in defaults, a YAML
// file, environment variables (optionally seeded from a .env file) and
// command-line flags. The result is validated before it is returned.
//
// # Usage
//
//	fs := pflag.NewFlagSet("foldkit", pflag.ContinueOnError)
//	config.RegisterFlags(fs)
//	_ = fs.Parse(os.Args[1:])
//	cfg, err := config.Load(config.WithFlags(fs))
//
// Environment variables use the FOLDKIT_ prefix with underscores for nesting
// (e.g., FOLDKIT_LOG_LEVEL, FOLDKIT_PIPELINE_TERMINAL_KIND).
package config
