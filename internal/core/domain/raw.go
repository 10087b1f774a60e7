package domain

// RawDocument is the unprocessed file content handed to a normaliser.
type RawDocument struct {
	// Name is the file name shown to the user.
	Name string

	// Path is the local path the bytes were read from.
	Path string

	// MIMEType is the content type guessed from the extension.
	MIMEType string

	// Content is the raw bytes.
	Content []byte
}

// RawResult is the decoded "result" object of a triage service response.
// It is deliberately untyped: the service contract does not guarantee field
// presence or types, so shaping happens during normalisation.
type RawResult map[string]any
