package model

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FrodeRanders/dicom-tools/dicom"
	dcmerr "github.com/FrodeRanders/dicom-tools/errors"
)

func formatField(t *testing.T, vr string, value interface{}) string {
	t.Helper()
	set := dicom.NewDataSet()
	field := &dicom.DataElement{Tag: dicom.Tag{Group: 0x0008, Element: 0x0100}, VR: vr, Value: value}
	text, err := FormatValue(field, set)
	require.NoError(t, err)
	return text
}

func TestFormatValue_Null(t *testing.T) {
	assert.Equal(t, "<null>", formatField(t, dicom.VR_LO, nil))
}

func TestFormatValue_MultiValueStrings(t *testing.T) {
	tests := []struct {
		name     string
		vr       string
		value    interface{}
		expected string
	}{
		{"single code string", dicom.VR_CS, []byte("SR"), "SR"},
		{"padded", dicom.VR_CS, []byte("SR "), "SR"},
		{"two values", dicom.VR_CS, []byte("ORIGINAL\\PRIMARY"), "ORIGINAL, PRIMARY"},
		{"three values padded", dicom.VR_UI, []byte("1.2\\3.4\\5.6 "), "1.2, 3.4, 5.6"},
		{"programmatic strings", dicom.VR_SH, []string{"A", "B"}, "A, B"},
		{"person name", dicom.VR_PN, []byte("DOE^JOHN"), "DOE^JOHN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatField(t, tt.vr, tt.value))
		})
	}
}

func TestFormatValue_TextKeepsBackslash(t *testing.T) {
	// Text VRs treat backslash as content, not a value separator.
	assert.Equal(t, `line1\line2`, formatField(t, dicom.VR_LT, []byte(`line1\line2`)))
	assert.Equal(t, "  indented", formatField(t, dicom.VR_ST, []byte("  indented  ")))
}

func TestFormatValue_Numeric(t *testing.T) {
	tests := []struct {
		name     string
		vr       string
		value    []byte
		expected string
	}{
		{"unsigned short", dicom.VR_US, []byte{0x01, 0x00, 0x02, 0x00}, "1, 2"},
		{"signed short", dicom.VR_SS, []byte{0xFE, 0xFF}, "-2"},
		{"unsigned long", dicom.VR_UL, []byte{0x00, 0x01, 0x00, 0x00}, "256"},
		{"signed long", dicom.VR_SL, []byte{0xFF, 0xFF, 0xFF, 0xFF}, "-1"},
		{"float single", dicom.VR_FL, []byte{0x00, 0x00, 0xC0, 0x3F}, "1.5"},
		{"float double", dicom.VR_FD, []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xF8, 0x3F}, "1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatField(t, tt.vr, tt.value))
		})
	}
}

func TestFormatValue_NumericWidthMismatch(t *testing.T) {
	set := dicom.NewDataSet()
	field := &dicom.DataElement{
		Tag:   dicom.TagPatientID,
		VR:    dicom.VR_US,
		Value: []byte{0x01, 0x00, 0x02},
	}

	text, err := FormatValue(field, set)
	assert.Empty(t, text)

	var decodeErr *dcmerr.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, dicom.VR_US, decodeErr.VR)
}

func TestFormatValue_AttributeTag(t *testing.T) {
	// (0010,0020) encoded little endian.
	raw := []byte{0x10, 0x00, 0x20, 0x00}
	assert.Equal(t, "(0010,0020) (PatientID)", formatField(t, dicom.VR_AT, raw))

	// Unknown tags keep the bare numeric form.
	raw = []byte{0x77, 0x77, 0x01, 0x00}
	assert.Equal(t, "(7777,0001)", formatField(t, dicom.VR_AT, raw))
}

func TestFormatValue_OpaqueBinaryCap(t *testing.T) {
	small := bytes.Repeat([]byte{0xAB}, 3)
	assert.Equal(t, "171, 171, 171", formatField(t, dicom.VR_OB, small))

	atCap := bytes.Repeat([]byte{0x01}, 80)
	assert.Equal(t, strings.Repeat("1, ", 79)+"1", formatField(t, dicom.VR_OB, atCap))

	overCap := bytes.Repeat([]byte{0x01}, 81)
	assert.Equal(t, "<data size=81 B>", formatField(t, dicom.VR_OW, overCap))

	large := make([]byte, 2*1024*1024)
	assert.Equal(t, "<data size=2 MB>", formatField(t, dicom.VR_OB, large))
}

func TestFormatValue_Unknown(t *testing.T) {
	assert.Equal(t, "REPORT", formatField(t, dicom.VR_UN, []byte("REPORT ")))
	assert.Equal(t, "<data size=1 KB>", formatField(t, dicom.VR_UN, make([]byte, 1024)))
}

func TestFormatValue_SequenceIsEmpty(t *testing.T) {
	item := dicom.NewDataSet()
	assert.Empty(t, formatField(t, dicom.VR_SQ, []*dicom.DataSet{item}))
}

func TestFormatValue_CharacterSet(t *testing.T) {
	set := dicom.NewDataSet()
	set.AddElement(dicom.TagSpecificCharacterSet, dicom.VR_CS, []byte("ISO_IR 192"))

	field := &dicom.DataElement{
		Tag:   dicom.TagPerformingPhysicianName,
		VR:    dicom.VR_PN,
		Value: []byte("Müller^Jürgen"),
	}
	text, err := FormatValue(field, set)
	require.NoError(t, err)
	assert.Equal(t, "Müller^Jürgen", text)
}
