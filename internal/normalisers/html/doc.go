// Package html provides a Normaliser implementation for HTML documents.
// It drops scripts, styles and markup and decodes entities so only the
// readable text of the document is sent for triage.
package html
