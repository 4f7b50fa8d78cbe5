// Package dicom provides the DICOM dataset model: tags, value
// representations, ordered data elements and the wire codec used to
// decode them from Part 10 files and streams.
package dicom

import (
	"fmt"
	"strings"
)

// VR (Value Representation) constants
const (
	VR_AE = "AE" // Application Entity
	VR_AS = "AS" // Age String
	VR_AT = "AT" // Attribute Tag
	VR_CS = "CS" // Code String
	VR_DA = "DA" // Date
	VR_DS = "DS" // Decimal String
	VR_DT = "DT" // Date Time
	VR_FL = "FL" // Floating Point Single
	VR_FD = "FD" // Floating Point Double
	VR_IS = "IS" // Integer String
	VR_LO = "LO" // Long String
	VR_LT = "LT" // Long Text
	VR_OB = "OB" // Other Byte
	VR_OD = "OD" // Other Double
	VR_OF = "OF" // Other Float
	VR_OW = "OW" // Other Word
	VR_PN = "PN" // Person Name
	VR_SH = "SH" // Short String
	VR_SL = "SL" // Signed Long
	VR_SQ = "SQ" // Sequence of Items
	VR_SS = "SS" // Signed Short
	VR_ST = "ST" // Short Text
	VR_TM = "TM" // Time
	VR_UC = "UC" // Unlimited Characters
	VR_UI = "UI" // Unique Identifier
	VR_UL = "UL" // Unsigned Long
	VR_UN = "UN" // Unknown
	VR_UR = "UR" // Universal Resource
	VR_US = "US" // Unsigned Short
	VR_UT = "UT" // Unlimited Text
)

// Tag represents a DICOM tag (group, element)
type Tag struct {
	Group   uint16
	Element uint16
}

// String returns the tag as a string in (gggg,eeee) format
func (t Tag) String() string {
	return fmt.Sprintf("(%04X,%04X)", t.Group, t.Element)
}

// Compare orders tags by group, then element.
func (t Tag) Compare(o Tag) int {
	switch {
	case t.Group != o.Group:
		if t.Group < o.Group {
			return -1
		}
		return 1
	case t.Element != o.Element:
		if t.Element < o.Element {
			return -1
		}
		return 1
	default:
		return 0
	}
}

// Well-known tags used by collaborators and the DICOMDIR walker.
var (
	TagSpecificCharacterSet    = Tag{0x0008, 0x0005}
	TagSOPClassUID             = Tag{0x0008, 0x0016}
	TagSOPInstanceUID          = Tag{0x0008, 0x0018}
	TagModality                = Tag{0x0008, 0x0060}
	TagPerformingPhysicianName = Tag{0x0008, 0x1050}
	TagSeriesDescription       = Tag{0x0008, 0x103E}
	TagPatientID               = Tag{0x0010, 0x0020}
	TagStudyInstanceUID        = Tag{0x0020, 0x000D}
	TagSeriesInstanceUID       = Tag{0x0020, 0x000E}

	TagDirectoryRecordSequence = Tag{0x0004, 0x1220}
	TagDirectoryRecordType     = Tag{0x0004, 0x1430}
	TagReferencedFileID        = Tag{0x0004, 0x1500}

	tagItem              = Tag{0xFFFE, 0xE000}
	tagItemDelimiter     = Tag{0xFFFE, 0xE00D}
	tagSequenceDelimiter = Tag{0xFFFE, 0xE0DD}
)

// DataElement represents a single decoded DICOM data element.
//
// Value holds the raw decoded form and may be one of:
//   - nil: the element carried no value (query placeholder)
//   - []byte: raw value bytes as read from the wire
//   - string or []string: values set programmatically
//   - []*DataSet: the items of a sequence (VR SQ)
type DataElement struct {
	Tag   Tag
	VR    string
	Value interface{}
}

// IsNull reports whether the element explicitly carries no value.
func (e *DataElement) IsNull() bool {
	return e.Value == nil
}

// Items returns the nested item datasets of a sequence element,
// or nil when the element is not a sequence.
func (e *DataElement) Items() []*DataSet {
	items, _ := e.Value.([]*DataSet)
	return items
}

// DataSet represents an ordered collection of DICOM data elements.
// Element order is decode order, which the document tree builder relies on.
type DataSet struct {
	elements []*DataElement
	index    map[Tag]int

	// CharacterSet is the value of SpecificCharacterSet (0008,0005),
	// governing how string values are decoded to text.
	CharacterSet string

	// BigEndian indicates the byte order of binary values.
	// Only little endian transfer syntaxes are produced by this package,
	// but the flag travels with the set so the value codec need not guess.
	BigEndian bool
}

// NewDataSet creates a new empty dataset
func NewDataSet() *DataSet {
	return &DataSet{
		index: make(map[Tag]int),
	}
}

// Add appends an element, or replaces it in place when the tag is
// already present.
func (d *DataSet) Add(element *DataElement) {
	if i, exists := d.index[element.Tag]; exists {
		d.elements[i] = element
		return
	}
	d.index[element.Tag] = len(d.elements)
	d.elements = append(d.elements, element)

	if element.Tag == TagSpecificCharacterSet {
		if s, ok := element.Value.(string); ok {
			d.CharacterSet = strings.TrimSpace(s)
		} else if b, ok := element.Value.([]byte); ok {
			d.CharacterSet = strings.TrimSpace(string(b))
		}
	}
}

// AddElement adds an element built from a tag, VR and value.
func (d *DataSet) AddElement(tag Tag, vr string, value interface{}) {
	d.Add(&DataElement{Tag: tag, VR: vr, Value: value})
}

// Get returns an element by tag
func (d *DataSet) Get(tag Tag) (*DataElement, bool) {
	i, exists := d.index[tag]
	if !exists {
		return nil, false
	}
	return d.elements[i], true
}

// Elements returns the elements in decode order. The returned slice
// must not be modified.
func (d *DataSet) Elements() []*DataElement {
	return d.elements
}

// Len returns the number of elements in the dataset.
func (d *DataSet) Len() int {
	return len(d.elements)
}

// GetString returns a single string value for a tag, trimmed of
// padding. Returns "" when the tag is absent or not string-valued.
func (d *DataSet) GetString(tag Tag) string {
	element, exists := d.Get(tag)
	if !exists {
		return ""
	}
	switch v := element.Value.(type) {
	case string:
		return trimPadding(v)
	case []byte:
		return trimPadding(DecodeText(v, d.CharacterSet))
	case []string:
		if len(v) > 0 {
			return trimPadding(v[0])
		}
	}
	return ""
}

// GetStrings returns all values for a multi-valued string tag.
func (d *DataSet) GetStrings(tag Tag) []string {
	element, exists := d.Get(tag)
	if !exists {
		return nil
	}
	var raw string
	switch v := element.Value.(type) {
	case string:
		raw = v
	case []byte:
		raw = DecodeText(v, d.CharacterSet)
	case []string:
		return v
	default:
		return nil
	}

	// Backslash separates values in multi-valued string VRs.
	parts := strings.Split(raw, "\\")
	result := make([]string, len(parts))
	for i, part := range parts {
		result[i] = trimPadding(part)
	}
	return result
}

// GetSequence returns the item datasets of a sequence tag, or nil.
func (d *DataSet) GetSequence(tag Tag) []*DataSet {
	element, exists := d.Get(tag)
	if !exists {
		return nil
	}
	return element.Items()
}

// Typed getters for well-known identifying fields. These operate
// directly on the raw dataset, independent of any built tree.

// PatientID returns PatientID (0010,0020).
func (d *DataSet) PatientID() string {
	return d.GetString(TagPatientID)
}

// StudyInstanceUID returns StudyInstanceUID (0020,000D).
func (d *DataSet) StudyInstanceUID() string {
	return d.GetString(TagStudyInstanceUID)
}

// SeriesInstanceUID returns SeriesInstanceUID (0020,000E).
func (d *DataSet) SeriesInstanceUID() string {
	return d.GetString(TagSeriesInstanceUID)
}

// SeriesDescription returns SeriesDescription (0008,103E).
func (d *DataSet) SeriesDescription() string {
	return d.GetString(TagSeriesDescription)
}

// SOPInstanceUID returns SOPInstanceUID (0008,0018).
func (d *DataSet) SOPInstanceUID() string {
	return d.GetString(TagSOPInstanceUID)
}

// SOPClassUID returns SOPClassUID (0008,0016).
func (d *DataSet) SOPClassUID() string {
	return d.GetString(TagSOPClassUID)
}

// Modality returns Modality (0008,0060).
func (d *DataSet) Modality() string {
	return d.GetString(TagModality)
}

// PerformingPhysicianName returns PerformingPhysicianName (0008,1050).
func (d *DataSet) PerformingPhysicianName() string {
	return d.GetString(TagPerformingPhysicianName)
}

// DirectoryRecordType returns DirectoryRecordType (0004,1430).
func (d *DataSet) DirectoryRecordType() string {
	return d.GetString(TagDirectoryRecordType)
}

// trimPadding removes the space and NUL padding DICOM uses to even out
// value lengths.
func trimPadding(s string) string {
	return strings.Trim(s, " \x00")
}

// DecodeText converts raw value bytes to a string honoring the
// dataset's specific character set. The default repertoire and
// ISO_IR 100 decode as Latin-1; ISO_IR 192 is UTF-8.
func DecodeText(b []byte, characterSet string) string {
	switch characterSet {
	case "ISO_IR 192", "ISO 2022 IR 192":
		return string(b)
	default:
		// Latin-1: every byte maps to the code point of the same value.
		runes := make([]rune, len(b))
		for i, c := range b {
			runes[i] = rune(c)
		}
		return string(runes)
	}
}
