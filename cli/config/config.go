// Package config handles YAML config file loading for the strata CLI.
package config

// Config represents a strata.yaml configuration file.
// All values are optional and act as defaults for strata flags.
// CLI flags always override config values.
type Config struct {
	// Dir is the session target directory.
	Dir string `yaml:"dir"`
	// AgentID is the session identifier embedded in artifact filenames.
	AgentID string `yaml:"agent_id"`
	// Encoding is the IANA name of the transcript text encoding.
	// Empty means UTF-8.
	Encoding string `yaml:"encoding"`
	// Mirror configures the optional artifact mirror.
	Mirror MirrorConfig `yaml:"mirror"`
}

// MirrorConfig holds mirror defaults from the config file.
type MirrorConfig struct {
	// Backend selects the mirror: "none" (default) or "s3".
	Backend string `yaml:"backend"`
	// Path is "bucket" or "bucket/prefix" for the s3 backend.
	Path string `yaml:"path"`
	// Region is the AWS region (optional).
	Region string `yaml:"region"`
	// Endpoint is a custom S3 endpoint for S3-compatible providers.
	Endpoint string `yaml:"endpoint"`
	// S3PathStyle forces path-style addressing.
	S3PathStyle bool `yaml:"s3_path_style"`
}
