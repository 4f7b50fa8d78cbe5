package dicom

import (
	"encoding/binary"
	"fmt"
	"sort"
	"strings"
)

// Encode encodes the dataset to bytes (Explicit VR Little Endian).
// Elements are written in ascending tag order as DICOM requires;
// sequences are written with defined lengths.
func (d *DataSet) Encode() []byte {
	elements := make([]*DataElement, len(d.elements))
	copy(elements, d.elements)
	sort.SliceStable(elements, func(i, j int) bool {
		return elements[i].Tag.Compare(elements[j].Tag) < 0
	})

	var result []byte
	for _, element := range elements {
		result = append(result, encodeElement(element)...)
	}
	return result
}

func encodeElement(element *DataElement) []byte {
	var result []byte

	tagBytes := make([]byte, 4)
	binary.LittleEndian.PutUint16(tagBytes[0:2], element.Tag.Group)
	binary.LittleEndian.PutUint16(tagBytes[2:4], element.Tag.Element)
	result = append(result, tagBytes...)
	result = append(result, []byte(element.VR)...)

	valueBytes := encodeElementValue(element)

	if isLongVR(element.VR) {
		result = append(result, 0x00, 0x00) // reserved
		lengthBytes := make([]byte, 4)
		binary.LittleEndian.PutUint32(lengthBytes, uint32(len(valueBytes)))
		result = append(result, lengthBytes...)
	} else {
		if len(valueBytes) > 65535 {
			valueBytes = valueBytes[:65535]
		}
		lengthBytes := make([]byte, 2)
		binary.LittleEndian.PutUint16(lengthBytes, uint16(len(valueBytes)))
		result = append(result, lengthBytes...)
	}

	return append(result, valueBytes...)
}

// encodeElementValue encodes an element value to padded bytes.
func encodeElementValue(element *DataElement) []byte {
	var value []byte

	switch v := element.Value.(type) {
	case nil:
		return nil
	case []byte:
		value = v
	case string:
		value = []byte(strings.TrimRight(v, "\x00"))
	case []string:
		joined := strings.Join(v, "\\")
		value = []byte(strings.TrimRight(joined, "\x00"))
	case []*DataSet:
		for _, item := range v {
			itemBytes := item.Encode()
			header := make([]byte, 8)
			binary.LittleEndian.PutUint16(header[0:2], tagItem.Group)
			binary.LittleEndian.PutUint16(header[2:4], tagItem.Element)
			binary.LittleEndian.PutUint32(header[4:8], uint32(len(itemBytes)))
			value = append(value, header...)
			value = append(value, itemBytes...)
		}
		return value // item contents are already even-length
	case uint16:
		value = make([]byte, 2)
		binary.LittleEndian.PutUint16(value, v)
	case uint32:
		value = make([]byte, 4)
		binary.LittleEndian.PutUint32(value, v)
	case int:
		value = []byte(fmt.Sprintf("%d", v))
	default:
		value = []byte(fmt.Sprintf("%v", v))
	}

	// DICOM requires even value lengths.
	if len(value)%2 == 1 {
		if element.VR == VR_UI || element.VR == VR_OB || element.VR == VR_UN {
			value = append(value, 0x00)
		} else {
			value = append(value, ' ')
		}
	}
	return value
}
