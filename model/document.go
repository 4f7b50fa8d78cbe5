package model

import (
	"github.com/FrodeRanders/dicom-tools/dicom"
)

// Document wraps one root element with document-level identity. It is
// created once after a full decode and never mutated. The document
// exclusively owns its element tree.
type Document struct {
	root       *Element
	name       string
	sourcePath string
	docType    string
}

// NewDocument wraps a built element tree. sourcePath may be "" for
// documents loaded from streams.
func NewDocument(root *Element, name, sourcePath string) *Document {
	return &Document{
		root:       root,
		name:       name,
		sourcePath: sourcePath,
		docType:    classify(root.Set()),
	}
}

// classify derives the document-level type description.
func classify(set *dicom.DataSet) string {
	if sopClassUID := set.SOPClassUID(); sopClassUID != "" {
		return dicom.DescribeSOPClass(sopClassUID)
	}
	if _, ok := set.Get(dicom.TagDirectoryRecordSequence); ok {
		return dicom.DescribeSOPClass(dicom.MediaStorageDirectoryStorage)
	}
	return "Unknown document type"
}

// Root returns the root element of the document tree.
func (d *Document) Root() *Element {
	return d.root
}

// Name returns the document name (typically the file name).
func (d *Document) Name() string {
	return d.name
}

// SourcePath returns the path the document was loaded from, or "".
func (d *Document) SourcePath() string {
	return d.sourcePath
}

// Type returns the document's classification description.
func (d *Document) Type() string {
	return d.docType
}

func (d *Document) String() string {
	return "Document {" + d.name + " : " + d.docType + "}"
}
