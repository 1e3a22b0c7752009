package archive

// Config holds configuration for the plan archive.
type Config struct {
	// Enabled turns archiving of submitted plans on.
	Enabled bool `mapstructure:"enabled" default:"true"`
	// Prefix is the object key prefix under the storage bucket.
	Prefix string `mapstructure:"prefix" default:"plans"`
}
