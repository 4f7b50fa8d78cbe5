package dicom

import (
	"testing"
)

func TestTag_String(t *testing.T) {
	tests := []struct {
		name     string
		tag      Tag
		expected string
	}{
		{"Patient ID", Tag{0x0010, 0x0020}, "(0010,0020)"},
		{"Study Instance UID", Tag{0x0020, 0x000D}, "(0020,000D)"},
		{"Series Instance UID", Tag{0x0020, 0x000E}, "(0020,000E)"},
		{"Directory Record Sequence", Tag{0x0004, 0x1220}, "(0004,1220)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.tag.String()
			if result != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, result)
			}
		})
	}
}

func TestTag_Compare(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Tag
		expected int
	}{
		{"equal", Tag{0x0008, 0x0016}, Tag{0x0008, 0x0016}, 0},
		{"group before", Tag{0x0008, 0xFFFF}, Tag{0x0010, 0x0000}, -1},
		{"group after", Tag{0x0020, 0x0000}, Tag{0x0010, 0xFFFF}, 1},
		{"element before", Tag{0x0008, 0x0016}, Tag{0x0008, 0x0018}, -1},
		{"element after", Tag{0x0008, 0x0018}, Tag{0x0008, 0x0016}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := tt.a.Compare(tt.b); result != tt.expected {
				t.Errorf("Expected %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestNewDataSet(t *testing.T) {
	ds := NewDataSet()
	if ds == nil {
		t.Fatal("NewDataSet returned nil")
	}
	if ds.Len() != 0 {
		t.Errorf("Expected empty dataset, got %d elements", ds.Len())
	}
}

func TestDataSet_AddElement(t *testing.T) {
	ds := NewDataSet()

	tag := Tag{0x0010, 0x0010}
	vr := VR_PN
	value := "DOE^JOHN"

	ds.AddElement(tag, vr, value)

	element, exists := ds.Get(tag)
	if !exists {
		t.Fatal("Element not found after adding")
	}

	if element.Tag != tag {
		t.Errorf("Tag mismatch: expected %v, got %v", tag, element.Tag)
	}
	if element.VR != vr {
		t.Errorf("VR mismatch: expected %s, got %s", vr, element.VR)
	}
	if element.Value != value {
		t.Errorf("Value mismatch: expected %v, got %v", value, element.Value)
	}
}

func TestDataSet_PreservesDecodeOrder(t *testing.T) {
	ds := NewDataSet()
	ds.AddElement(Tag{0x0020, 0x000D}, VR_UI, "1.2.3")
	ds.AddElement(Tag{0x0008, 0x0060}, VR_CS, "SR")
	ds.AddElement(Tag{0x0010, 0x0020}, VR_LO, "12345")

	expected := []Tag{
		{0x0020, 0x000D},
		{0x0008, 0x0060},
		{0x0010, 0x0020},
	}
	elements := ds.Elements()
	if len(elements) != len(expected) {
		t.Fatalf("Expected %d elements, got %d", len(expected), len(elements))
	}
	for i, tag := range expected {
		if elements[i].Tag != tag {
			t.Errorf("Element %d: expected tag %v, got %v", i, tag, elements[i].Tag)
		}
	}
}

func TestDataSet_AddReplacesInPlace(t *testing.T) {
	ds := NewDataSet()
	ds.AddElement(TagModality, VR_CS, "CT")
	ds.AddElement(TagPatientID, VR_LO, "12345")
	ds.AddElement(TagModality, VR_CS, "SR")

	if ds.Len() != 2 {
		t.Fatalf("Expected 2 elements, got %d", ds.Len())
	}
	if ds.Modality() != "SR" {
		t.Errorf("Expected replaced value SR, got %q", ds.Modality())
	}
	// Position of the replaced element does not change.
	if ds.Elements()[0].Tag != TagModality {
		t.Errorf("Expected first element to still be Modality, got %v", ds.Elements()[0].Tag)
	}
}

func TestDataSet_GetString(t *testing.T) {
	ds := NewDataSet()
	ds.AddElement(TagPatientID, VR_LO, []byte("12345 "))
	ds.AddElement(TagStudyInstanceUID, VR_UI, "1.2.840.113619.2\x00")

	if got := ds.PatientID(); got != "12345" {
		t.Errorf("Expected padding-trimmed value, got %q", got)
	}
	if got := ds.StudyInstanceUID(); got != "1.2.840.113619.2" {
		t.Errorf("Expected NUL-trimmed value, got %q", got)
	}
	if got := ds.GetString(TagSeriesInstanceUID); got != "" {
		t.Errorf("Expected empty string for absent tag, got %q", got)
	}
}

func TestDataSet_GetStrings(t *testing.T) {
	ds := NewDataSet()
	ds.AddElement(TagReferencedFileID, VR_CS, []byte("SUBDIR\\IMAGE1 "))

	got := ds.GetStrings(TagReferencedFileID)
	expected := []string{"SUBDIR", "IMAGE1"}
	if len(got) != len(expected) {
		t.Fatalf("Expected %d values, got %d: %v", len(expected), len(got), got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("Value %d: expected %q, got %q", i, expected[i], got[i])
		}
	}
}

func TestDataSet_GetSequence(t *testing.T) {
	item := NewDataSet()
	item.AddElement(TagDirectoryRecordType, VR_CS, "PATIENT")

	ds := NewDataSet()
	ds.AddElement(TagDirectoryRecordSequence, VR_SQ, []*DataSet{item})

	items := ds.GetSequence(TagDirectoryRecordSequence)
	if len(items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(items))
	}
	if items[0].DirectoryRecordType() != "PATIENT" {
		t.Errorf("Expected record type PATIENT, got %q", items[0].DirectoryRecordType())
	}

	if ds.GetSequence(TagSOPClassUID) != nil {
		t.Error("Expected nil sequence for non-sequence tag")
	}
}

func TestDataSet_CharacterSetCapture(t *testing.T) {
	ds := NewDataSet()
	ds.AddElement(TagSpecificCharacterSet, VR_CS, []byte("ISO_IR 192"))

	if ds.CharacterSet != "ISO_IR 192" {
		t.Errorf("Expected character set to be captured, got %q", ds.CharacterSet)
	}
}

func TestDecodeText(t *testing.T) {
	tests := []struct {
		name         string
		input        []byte
		characterSet string
		expected     string
	}{
		{"ASCII default", []byte("DOE^JOHN"), "", "DOE^JOHN"},
		{"Latin-1 default", []byte{0x4D, 0xFC, 0x6C, 0x6C, 0x65, 0x72}, "", "Müller"},
		{"Latin-1 explicit", []byte{0xC5, 0x73, 0x61}, "ISO_IR 100", "Åsa"},
		{"UTF-8", []byte("Müller"), "ISO_IR 192", "Müller"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DecodeText(tt.input, tt.characterSet)
			if result != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, result)
			}
		})
	}
}
