// Package config loads reqkit configuration.
//
// LoadConfig reads config.yml, an optional .env file and the process
// environment through Viper and unmarshals the result into any struct with
// mapstructure tags. Environment variables carrying the service prefix win
// over file values: REQKIT_FETCH_BASE_URL sets fetch.base_url.
//
//	cfg, err := config.Load(config.WithConfigFile("config.yml"))
package config
