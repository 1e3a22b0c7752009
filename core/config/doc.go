// Package config loads the application configuration.
//
// Values come from the environment, optionally seeded from a .env file via
// godotenv. Defaults live in the `default` struct tags of each package's
// Config and are registered with Viper by reflection, so every key can be
// overridden by an environment variable such as SERVER_PORT or ARCHIVE_PREFIX.
//
// # Sections
//
//   - Server: port, API key, body limit
//   - Storage: S3/MinIO credentials and bucket
//   - Database: driver and connection details
//   - Log: level and format
//   - Archive: plan archiving switch and key prefix
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
