// Package constants holds shared constant values used across layers.
package constants

// Supported Pub/Sub providers.
const (
	// PubSubProviderLocal publishes events over HTTP to a local worker,
	// simulating Pub/Sub push delivery for development.
	PubSubProviderLocal = "local"
	// PubSubProviderGoogle publishes events to Google Cloud Pub/Sub.
	PubSubProviderGoogle = "google"
)

// Deployment environments.
const (
	EnvDevelop    = "develop"
	EnvProduction = "production"
)
