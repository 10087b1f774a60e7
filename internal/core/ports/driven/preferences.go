package driven

// PreferenceStore is durable key-value storage for user preferences.
type PreferenceStore interface {
	// GetPreference returns the stored value and whether it exists.
	GetPreference(key string) (string, bool, error)

	// SetPreference stores a value. The write is synchronous.
	SetPreference(key, value string) error
}
