// Package constants holds shared provider identifiers.
package constants

// State mirror providers.
const (
	MirrorProviderBolt  = "bolt"
	MirrorProviderRedis = "redis"
)

// Pub/Sub providers.
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)
