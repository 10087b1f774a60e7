// Package extract reads uploaded files and turns them into plain text using
// the registered normalisers and the text clean-up pipeline.
package extract

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/minairva-cli/internal/core/domain"
	"github.com/custodia-labs/minairva-cli/internal/core/ports/driven"
	"github.com/custodia-labs/minairva-cli/internal/logger"
	"github.com/custodia-labs/minairva-cli/internal/normalisers/docx"
	"github.com/custodia-labs/minairva-cli/internal/normalisers/html"
	"github.com/custodia-labs/minairva-cli/internal/normalisers/markdown"
	"github.com/custodia-labs/minairva-cli/internal/normalisers/pdf"
	"github.com/custodia-labs/minairva-cli/internal/normalisers/plaintext"
	"github.com/custodia-labs/minairva-cli/internal/postprocessors"
)

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

// FallbackMIMEType is used for extensions with no registered normaliser.
const FallbackMIMEType = "text/plain"

// extensionTypes overrides the platform MIME table for the formats we read.
var extensionTypes = map[string]string{
	".docx":     docx.MIMEType,
	".pdf":      "application/pdf",
	".html":     "text/html",
	".htm":      "text/html",
	".xhtml":    "application/xhtml+xml",
	".md":       "text/markdown",
	".markdown": "text/markdown",
	".txt":      "text/plain",
}

// Extractor selects a normaliser by file extension and cleans its output.
type Extractor struct {
	byMIME   map[string][]driven.Normaliser
	pipeline *postprocessors.Pipeline
	readFile func(string) ([]byte, error)
}

// New creates an extractor over the given normalisers.
// A nil pipeline returns normaliser output unchanged.
func New(pipeline *postprocessors.Pipeline, normalisers ...driven.Normaliser) *Extractor {
	e := &Extractor{
		byMIME:   make(map[string][]driven.Normaliser),
		pipeline: pipeline,
		readFile: os.ReadFile,
	}
	for _, n := range normalisers {
		e.Register(n)
	}
	return e
}

// NewDefault creates an extractor with every built-in normaliser and the
// default clean-up pipeline.
func NewDefault() *Extractor {
	return New(postprocessors.DefaultPipeline(), Normalisers()...)
}

// Normalisers returns one of each built-in normaliser.
func Normalisers() []driven.Normaliser {
	return []driven.Normaliser{
		plaintext.New(),
		docx.New(),
		pdf.New(),
		html.New(),
		markdown.New(),
	}
}

// Register adds a normaliser for each of its MIME types.
func (e *Extractor) Register(n driven.Normaliser) {
	for _, mimeType := range n.SupportedMIMETypes() {
		list := append(e.byMIME[mimeType], n)
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Priority() > list[j].Priority()
		})
		e.byMIME[mimeType] = list
	}
}

// Extract reads the upload from disk and returns its text.
func (e *Extractor) Extract(ctx context.Context, upload domain.Upload) (string, error) {
	content, err := e.readFile(upload.Path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", upload.DisplayName(), err)
	}

	raw := &domain.RawDocument{
		Name:     upload.DisplayName(),
		Path:     upload.Path,
		MIMEType: MIMETypeFor(upload.Path),
		Content:  content,
	}

	normaliser, err := e.normaliserFor(raw.MIMEType)
	if err != nil {
		return "", err
	}
	logger.Debug("extract: %s (%s, %d bytes)", raw.Name, raw.MIMEType, len(content))

	text, err := normaliser.Normalise(ctx, raw)
	if err != nil {
		return "", fmt.Errorf("extracting %s: %w", raw.Name, err)
	}

	if e.pipeline != nil {
		text, err = e.pipeline.Process(ctx, text)
		if err != nil {
			return "", fmt.Errorf("cleaning %s: %w", raw.Name, err)
		}
	}
	return text, nil
}

func (e *Extractor) normaliserFor(mimeType string) (driven.Normaliser, error) {
	if list := e.byMIME[mimeType]; len(list) > 0 {
		return list[0], nil
	}
	if list := e.byMIME[FallbackMIMEType]; len(list) > 0 {
		return list[0], nil
	}
	return nil, fmt.Errorf("no normaliser for %s: %w", mimeType, domain.ErrUnsupportedType)
}

// MIMETypeFor guesses the content type of path from its extension.
// Unknown extensions map to text/plain.
func MIMETypeFor(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if t, ok := extensionTypes[ext]; ok {
		return t
	}
	if t := mime.TypeByExtension(ext); t != "" {
		if mediaType, _, err := mime.ParseMediaType(t); err == nil {
			return mediaType
		}
	}
	return FallbackMIMEType
}
