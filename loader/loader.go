// Package loader reads DICOM files and DICOMDIR media directories and
// turns them into model documents.
package loader

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/FrodeRanders/dicom-tools/dicom"
	"github.com/FrodeRanders/dicom-tools/model"
)

// Loader reads individual DICOM files.
type Loader struct {
	logger *zap.Logger
}

// Option configures a loader.
type Option func(*options)

type options struct {
	logger         *zap.Logger
	loadReferenced bool
}

// WithLogger sets the logger used during loading.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithReferencedFiles controls whether a DICOMDIR load also reads the
// files its directory records reference. Defaults to true.
func WithReferencedFiles(load bool) Option {
	return func(o *options) {
		o.loadReferenced = load
	}
}

func applyOptions(opts []Option) *options {
	o := &options{
		logger:         zap.NewNop(),
		loadReferenced: true,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// New creates a file loader.
func New(opts ...Option) *Loader {
	o := applyOptions(opts)
	return &Loader{logger: o.logger}
}

// Load reads a DICOM Part 10 file from disk and builds its document.
func (l *Loader) Load(path string) (*model.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: open %s: %w", path, err)
	}
	defer f.Close()
	return l.load(filepath.Base(path), path, f)
}

// LoadStream reads a DICOM Part 10 stream and builds its document.
// The name is used for the document and its root element.
func (l *Loader) LoadStream(name string, r io.Reader) (*model.Document, error) {
	return l.load(name, "", r)
}

func (l *Loader) load(name, sourcePath string, r io.Reader) (*model.Document, error) {
	set, err := dicom.ReadFile(r)
	if err != nil {
		return nil, fmt.Errorf("loader: read %s: %w", name, err)
	}

	root := model.Build(set, name, nil)
	doc := model.NewDocument(root, name, sourcePath)

	l.logger.Debug("loaded document",
		zap.String("name", name),
		zap.String("type", doc.Type()),
		zap.Int("elements", set.Len()))
	return doc, nil
}
