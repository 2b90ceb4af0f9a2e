// Package config loads configuration structs from YAML files, .env files and
// environment variables.
//
// It uses Viper to read the file and godotenv to load .env files. Environment
// variables override file values; with WithEnvPrefix only prefixed variables
// are considered (DI_LOGGING_LEVEL binds logging.level).
//
// # Usage
//
//	var cfg di.Config
//	err := config.LoadConfig("di", &cfg, config.WithEnvPrefix("DI"))
package config
