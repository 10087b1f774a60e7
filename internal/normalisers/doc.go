// Package normalisers provides implementations of the Normaliser interface
// for the document formats a user can submit for triage. Each normaliser
// knows how to extract plain text from a specific MIME type.
//
// Normalisers are registered with the extract.Registry at startup.
package normalisers
