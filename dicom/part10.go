package dicom

import (
	"encoding/binary"
	"io"
	"strings"

	"go.uber.org/zap"

	dcmerr "github.com/FrodeRanders/dicom-tools/errors"
)

// Common transfer syntax UIDs
const (
	TransferSyntaxImplicitVRLittleEndian = "1.2.840.10008.1.2"
	TransferSyntaxExplicitVRLittleEndian = "1.2.840.10008.1.2.1"
)

const (
	preambleSize = 128
	magicWord    = "DICM"
)

// ReadFile reads a complete DICOM Part 10 stream and parses its dataset.
//
// Part 10 files contain a 128 byte preamble, the "DICM" prefix, the File
// Meta Information elements (group 0x0002, always explicit VR little
// endian) and finally the dataset in the transfer syntax announced by
// (0002,0010).
func ReadFile(r io.Reader) (*DataSet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseFile(data)
}

// ParseFile parses a complete DICOM Part 10 file from memory.
func ParseFile(data []byte) (*DataSet, error) {
	dataset, transferSyntax, err := stripPart10Header(data)
	if err != nil {
		return nil, err
	}
	return ParseDataSetWithTransferSyntax(dataset, transferSyntax)
}

// stripPart10Header removes the preamble and File Meta Information,
// returning the dataset bytes and the negotiated transfer syntax UID.
func stripPart10Header(data []byte) ([]byte, string, error) {
	if len(data) < preambleSize+4 {
		return nil, "", dcmerr.ErrNotPart10
	}
	if string(data[preambleSize:preambleSize+4]) != magicWord {
		return nil, "", dcmerr.ErrNotPart10
	}

	offset := preambleSize + 4
	var transferSyntaxUID string

	// Skip all group 0x0002 elements (File Meta Information).
	for offset+8 <= len(data) {
		group := binary.LittleEndian.Uint16(data[offset : offset+2])
		if group != 0x0002 {
			break
		}
		element := binary.LittleEndian.Uint16(data[offset+2 : offset+4])
		vr := string(data[offset+4 : offset+6])

		var length uint32
		var valueOffset int
		if isLongVR(vr) {
			if offset+12 > len(data) {
				return nil, "", dcmerr.ErrTruncated
			}
			length = binary.LittleEndian.Uint32(data[offset+8 : offset+12])
			valueOffset = offset + 12
		} else {
			length = uint32(binary.LittleEndian.Uint16(data[offset+6 : offset+8]))
			valueOffset = offset + 8
		}
		if valueOffset+int(length) > len(data) {
			return nil, "", dcmerr.ErrTruncated
		}

		// (0002,0010) TransferSyntaxUID
		if element == 0x0010 {
			transferSyntaxUID = strings.Trim(string(data[valueOffset:valueOffset+int(length)]), " \x00")
			logger.Debug("Found Transfer Syntax UID in File Meta Information",
				zap.String("transfer_syntax", transferSyntaxUID))
		}

		offset = valueOffset + int(length)
	}

	return data[offset:], transferSyntaxUID, nil
}

// WriteFile writes a dataset as a DICOM Part 10 stream (Explicit VR
// Little Endian) with a minimal File Meta Information group.
func WriteFile(w io.Writer, dataset *DataSet) error {
	meta := NewDataSet()
	meta.AddElement(Tag{0x0002, 0x0002}, VR_UI, dataset.SOPClassUID())
	meta.AddElement(Tag{0x0002, 0x0003}, VR_UI, dataset.SOPInstanceUID())
	meta.AddElement(Tag{0x0002, 0x0010}, VR_UI, TransferSyntaxExplicitVRLittleEndian)

	preamble := make([]byte, preambleSize)
	if _, err := w.Write(preamble); err != nil {
		return err
	}
	if _, err := w.Write([]byte(magicWord)); err != nil {
		return err
	}
	if _, err := w.Write(meta.Encode()); err != nil {
		return err
	}
	_, err := w.Write(dataset.Encode())
	return err
}
