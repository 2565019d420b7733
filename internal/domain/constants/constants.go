// Package constants defines shared domain-level constant values.
package constants

// Backend collection names. These are part of the wire contract with the
// managed backend and must match the deployed security rules.
const (
	CollectionProfiles      = "users"
	CollectionAnnouncements = "announcements"
	CollectionArchive       = "pyqs"
)

// Backend client providers.
const (
	BackendProviderFirebase = "firebase"
	BackendProviderMemory   = "memory"
)

// Pub/Sub providers.
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Assistant context labels, as shown on the corresponding screens.
const (
	AssistantContextArchive = "PYQs"
	AssistantContextNotes   = "Smart Notes"
)
