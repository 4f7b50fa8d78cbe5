package loader

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/FrodeRanders/dicom-tools/dicom"
	dcmerr "github.com/FrodeRanders/dicom-tools/errors"
	"github.com/FrodeRanders/dicom-tools/model"
)

// DirLoader reads DICOMDIR media directories. The files referenced by
// directory records are loaded as siblings of the DICOMDIR document
// and attached as children of its root element, so path queries over
// the DICOMDIR reach into the referenced documents.
type DirLoader struct {
	logger         *zap.Logger
	loadReferenced bool

	documents []*model.Document
}

// NewDirLoader creates a DICOMDIR loader.
func NewDirLoader(opts ...Option) *DirLoader {
	o := applyOptions(opts)
	return &DirLoader{
		logger:         o.logger,
		loadReferenced: o.loadReferenced,
	}
}

// Documents returns every document accumulated by prior loads. Each
// DICOMDIR document comes first, followed by the documents its records
// reference.
func (l *DirLoader) Documents() []*model.Document {
	return l.documents
}

// Load reads a DICOMDIR file from disk. Referenced files are resolved
// relative to the DICOMDIR's directory.
func (l *DirLoader) Load(path string) (*model.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: open %s: %w", path, err)
	}
	defer f.Close()
	return l.load(filepath.Base(path), path, filepath.Dir(path), f)
}

// LoadStream reads a DICOMDIR from a stream. Referenced files are
// resolved relative to baseDir; with an empty baseDir the current
// directory is used.
func (l *DirLoader) LoadStream(name, baseDir string, r io.Reader) (*model.Document, error) {
	return l.load(name, "", baseDir, r)
}

func (l *DirLoader) load(name, sourcePath, baseDir string, r io.Reader) (*model.Document, error) {
	set, err := dicom.ReadFile(r)
	if err != nil {
		return nil, fmt.Errorf("loader: read %s: %w", name, err)
	}

	root := model.Build(set, name, nil)
	doc := model.NewDocument(root, name, sourcePath)
	l.documents = append(l.documents, doc)

	if err := l.walkRecords(doc, set, baseDir); err != nil {
		return nil, err
	}
	return doc, nil
}

// walkRecords visits the directory record sequence, verifying that
// replicated identification values agree across records and loading
// the referenced files of leaf records.
func (l *DirLoader) walkRecords(doc *model.Document, set *dicom.DataSet, baseDir string) error {
	// A DICOMDIR without a record sequence is empty, not broken.
	records := set.GetSequence(dicom.TagDirectoryRecordSequence)

	keys := make(map[string]string)
	for _, record := range records {
		recordType := record.DirectoryRecordType()

		switch recordType {
		case "PATIENT":
			if err := assign(keys, "PatientID", record.PatientID()); err != nil {
				return err
			}

		case "STUDY":
			if err := assign(keys, "StudyInstanceUID", record.StudyInstanceUID()); err != nil {
				return err
			}

		case "SR DOCUMENT", "IMAGE":
			// Identification may be replicated on leaf records.
			if err := assign(keys, "PatientID", record.PatientID()); err != nil {
				return err
			}
			if err := assign(keys, "StudyInstanceUID", record.StudyInstanceUID()); err != nil {
				return err
			}
			l.loadReferencedFile(doc, record, baseDir)

		default:
			if err := assign(keys, "PatientID", record.PatientID()); err != nil {
				return err
			}
			if err := assign(keys, "StudyInstanceUID", record.StudyInstanceUID()); err != nil {
				return err
			}
		}
	}
	return nil
}

// loadReferencedFile resolves a record's ReferencedFileID against
// baseDir, loads the file and hooks the resulting document into the
// DICOMDIR. A missing or unreadable file is logged and skipped.
func (l *DirLoader) loadReferencedFile(doc *model.Document, record *dicom.DataSet, baseDir string) {
	if !l.loadReferenced {
		return
	}

	parts := record.GetStrings(dicom.TagReferencedFileID)
	if len(parts) == 0 {
		return
	}
	if baseDir == "" {
		baseDir = "."
	}
	path := filepath.Join(append([]string{baseDir}, parts...)...)

	f, err := os.Open(path)
	if err != nil {
		l.logger.Warn("referenced file is not readable",
			zap.Error(&dcmerr.ReferencedFileError{Path: path, Err: err}))
		return
	}
	defer f.Close()

	l.logger.Info("referencing file", zap.String("path", path))

	set, err := dicom.ReadFile(f)
	if err != nil {
		l.logger.Warn("referenced file could not be read",
			zap.Error(&dcmerr.ReferencedFileError{Path: path, Err: err}))
		return
	}

	owner := doc.Root()
	root := model.Build(set, filepath.Base(path), owner)
	referenced := model.NewDocument(root, filepath.Base(path), path)

	owner.Children = append(owner.Children, root)
	l.documents = append(l.documents, referenced)
}

// assign records key=value, verifying that a previously recorded value
// for the key is identical. Empty values are ignored.
func assign(data map[string]string, key, value string) error {
	if value == "" {
		return nil
	}
	if existing, ok := data[key]; ok {
		if existing != value {
			return dcmerr.NewInconsistencyError(key, existing, value)
		}
		return nil
	}
	data[key] = value
	return nil
}
