// Package config provides configuration management for the service.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file (via godotenv).
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings,
// divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Database: MySQL connection details (SQLite for local development)
//   - Storage: object storage credentials for the audit archive
//   - Redis: run lease backend
//   - Log: logging level and format
//   - Reconcile: job interval, batch limit, archive prefix
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
