package model

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/FrodeRanders/dicom-tools/dicom"
	dcmerr "github.com/FrodeRanders/dicom-tools/errors"
)

// NullMarker is rendered for fields that explicitly carry no value
// (query placeholders).
const NullMarker = "<null>"

// multiValueDelimiter joins the components of multi-valued fields.
const multiValueDelimiter = ", "

// binarySizeCap bounds byte-by-byte rendering of opaque binary fields
// (OB, OW, UN). Larger payloads render as a size summary token so a
// pixel- or overlay-sized field can never produce unbounded text.
const binarySizeCap = 80

// FormatValue converts a single decoded field into its canonical
// display string.
//
// Text-like kinds decode through character-set-aware conversion and
// join multiple values with ", ". Numeric binary kinds decode through
// their binary accessor and are rendered element by element. Opaque
// binary kinds render byte by byte only while the total length is at
// most 80 bytes; beyond that a fixed summary token with a
// human-readable size is emitted. Sequence fields are never
// text-encoded; they are expanded by the tree builder instead.
//
// A decode failure returns the partial text built so far together with
// a *errors.DecodeError; callers log it and keep going.
func FormatValue(field *dicom.DataElement, set *dicom.DataSet) (string, error) {
	if field.IsNull() {
		return NullMarker, nil
	}

	switch field.VR {
	case dicom.VR_SQ:
		// Signals recursion, not a text value.
		return "", nil

	case dicom.VR_AE, dicom.VR_AS, dicom.VR_CS, dicom.VR_DA, dicom.VR_DS,
		dicom.VR_DT, dicom.VR_IS, dicom.VR_LO, dicom.VR_PN, dicom.VR_SH,
		dicom.VR_TM, dicom.VR_UC, dicom.VR_UI:
		return joinStrings(stringValues(field, set)), nil

	case dicom.VR_LT, dicom.VR_ST, dicom.VR_UT, dicom.VR_UR:
		// Text kinds: backslash is ordinary content, not a delimiter.
		return singleString(field, set), nil

	case dicom.VR_AT:
		return formatAttributeTags(field, set)

	case dicom.VR_US:
		return formatBinary(field, set, 2, func(b []byte, order binary.ByteOrder) string {
			return strconv.FormatUint(uint64(order.Uint16(b)), 10)
		})
	case dicom.VR_SS:
		return formatBinary(field, set, 2, func(b []byte, order binary.ByteOrder) string {
			return strconv.FormatInt(int64(int16(order.Uint16(b))), 10)
		})
	case dicom.VR_UL:
		return formatBinary(field, set, 4, func(b []byte, order binary.ByteOrder) string {
			return strconv.FormatUint(uint64(order.Uint32(b)), 10)
		})
	case dicom.VR_SL:
		return formatBinary(field, set, 4, func(b []byte, order binary.ByteOrder) string {
			return strconv.FormatInt(int64(int32(order.Uint32(b))), 10)
		})
	case dicom.VR_FL, dicom.VR_OF:
		return formatBinary(field, set, 4, func(b []byte, order binary.ByteOrder) string {
			return strconv.FormatFloat(float64(math.Float32frombits(order.Uint32(b))), 'g', -1, 32)
		})
	case dicom.VR_FD, dicom.VR_OD:
		return formatBinary(field, set, 8, func(b []byte, order binary.ByteOrder) string {
			return strconv.FormatFloat(math.Float64frombits(order.Uint64(b)), 'g', -1, 64)
		})

	case dicom.VR_OB, dicom.VR_OW:
		return formatOpaqueBytes(field), nil

	case dicom.VR_UN:
		return formatUnknown(field), nil

	default:
		return joinStrings(stringValues(field, set)), nil
	}
}

// stringValues produces the individual values of a string-valued field,
// decoded through the dataset's character set and stripped of padding.
func stringValues(field *dicom.DataElement, set *dicom.DataSet) []string {
	var raw string
	switch v := field.Value.(type) {
	case string:
		raw = v
	case []string:
		trimmed := make([]string, len(v))
		for i, s := range v {
			trimmed[i] = strings.Trim(s, " \x00")
		}
		return trimmed
	case []byte:
		raw = dicom.DecodeText(v, set.CharacterSet)
	default:
		raw = fmt.Sprintf("%v", v)
	}

	parts := strings.Split(raw, "\\")
	for i, part := range parts {
		parts[i] = strings.Trim(part, " \x00")
	}
	return parts
}

// singleString decodes a text-kind field as one value. Leading spaces
// are significant in text VRs; only trailing padding is removed.
func singleString(field *dicom.DataElement, set *dicom.DataSet) string {
	switch v := field.Value.(type) {
	case string:
		return strings.TrimRight(v, " \x00")
	case []string:
		return strings.TrimRight(strings.Join(v, "\\"), " \x00")
	case []byte:
		return strings.TrimRight(dicom.DecodeText(v, set.CharacterSet), " \x00")
	default:
		return fmt.Sprintf("%v", v)
	}
}

func joinStrings(values []string) string {
	return strings.Join(values, multiValueDelimiter)
}

// formatAttributeTags renders an AT field as (gggg,eeee) tag references
// with the symbolic keyword appended when resolvable.
func formatAttributeTags(field *dicom.DataElement, set *dicom.DataSet) (string, error) {
	raw, ok := field.Value.([]byte)
	if !ok {
		// Programmatic values hold hex strings, one per referenced tag.
		var parts []string
		for _, s := range stringValues(field, set) {
			tag, err := tagFromHex(s)
			if err != nil {
				return joinStrings(parts), dcmerr.NewDecodeError(field.Tag.String(), field.VR, err)
			}
			parts = append(parts, describeTag(tag))
		}
		return joinStrings(parts), nil
	}

	if len(raw)%4 != 0 {
		return "", dcmerr.NewDecodeError(field.Tag.String(), field.VR,
			fmt.Errorf("attribute tag value has %d bytes, not a multiple of 4", len(raw)))
	}

	order := byteOrder(set)
	var parts []string
	for i := 0; i+4 <= len(raw); i += 4 {
		tag := dicom.Tag{
			Group:   order.Uint16(raw[i : i+2]),
			Element: order.Uint16(raw[i+2 : i+4]),
		}
		parts = append(parts, describeTag(tag))
	}
	return joinStrings(parts), nil
}

func describeTag(tag dicom.Tag) string {
	if keyword := dicom.KeywordOf(tag); keyword != "" {
		return tag.String() + " (" + keyword + ")"
	}
	return tag.String()
}

func tagFromHex(s string) (dicom.Tag, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 16, 32)
	if err != nil {
		return dicom.Tag{}, err
	}
	return dicom.Tag{Group: uint16(v >> 16), Element: uint16(v)}, nil
}

// formatBinary renders a fixed-width numeric binary field element by
// element.
func formatBinary(field *dicom.DataElement, set *dicom.DataSet, width int,
	format func([]byte, binary.ByteOrder) string) (string, error) {

	raw, ok := field.Value.([]byte)
	if !ok {
		// Values constructed in memory are already strings.
		return joinStrings(stringValues(field, set)), nil
	}
	if len(raw)%width != 0 {
		return "", dcmerr.NewDecodeError(field.Tag.String(), field.VR,
			fmt.Errorf("value has %d bytes, not a multiple of %d", len(raw), width))
	}

	order := byteOrder(set)
	parts := make([]string, 0, len(raw)/width)
	for i := 0; i+width <= len(raw); i += width {
		parts = append(parts, format(raw[i:i+width], order))
	}
	return joinStrings(parts), nil
}

// formatOpaqueBytes renders OB/OW payloads byte by byte up to the size
// cap, and as a size summary token beyond it.
func formatOpaqueBytes(field *dicom.DataElement) string {
	raw := rawBytes(field)
	if len(raw) > binarySizeCap {
		return sizeToken(len(raw))
	}
	parts := make([]string, len(raw))
	for i, b := range raw {
		parts[i] = strconv.Itoa(int(b))
	}
	return joinStrings(parts)
}

// formatUnknown renders UN payloads as Latin-1 text up to the size cap.
func formatUnknown(field *dicom.DataElement) string {
	raw := rawBytes(field)
	if len(raw) > binarySizeCap {
		return sizeToken(len(raw))
	}
	return strings.TrimRight(dicom.DecodeText(raw, ""), " \x00")
}

func rawBytes(field *dicom.DataElement) []byte {
	switch v := field.Value.(type) {
	case []byte:
		return v
	case string:
		return []byte(v)
	default:
		return []byte(fmt.Sprintf("%v", v))
	}
}

func sizeToken(n int) string {
	return "<data size=" + humanSize(n) + ">"
}

// humanSize renders an approximate, human-readable magnitude.
func humanSize(n int) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	value, exp := n/unit, 0
	for value >= unit {
		value /= unit
		exp++
	}
	return fmt.Sprintf("%d %cB", value, "KMGTPE"[exp])
}

func byteOrder(set *dicom.DataSet) binary.ByteOrder {
	if set.BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}
