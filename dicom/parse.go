package dicom

import (
	"encoding/binary"

	"go.uber.org/zap"
)

// undefinedLength marks sequences and items whose extent is terminated
// by a delimitation item instead of an up-front length.
const undefinedLength = 0xFFFFFFFF

var logger = zap.NewNop()

// SetLogger installs the logger used by this package. The default is a
// no-op logger.
func SetLogger(l *zap.Logger) {
	if l != nil {
		logger = l
	}
}

// ParseDataSet parses a DICOM dataset from raw bytes (Explicit VR
// Little Endian). Parsing is lenient: a truncated trailing element ends
// the parse with the elements decoded so far.
func ParseDataSet(data []byte) (*DataSet, error) {
	p := &parser{data: data}
	return p.parseDataSet(len(data))
}

// ParseDataSetWithTransferSyntax parses a dataset using the provided
// transfer syntax UID.
func ParseDataSetWithTransferSyntax(data []byte, transferSyntaxUID string) (*DataSet, error) {
	switch transferSyntaxUID {
	case "", TransferSyntaxExplicitVRLittleEndian:
		return ParseDataSet(data)
	case TransferSyntaxImplicitVRLittleEndian:
		p := &parser{data: data, implicit: true}
		return p.parseDataSet(len(data))
	default:
		// Unknown transfer syntaxes are attempted as explicit VR.
		logger.Debug("Unknown transfer syntax, assuming explicit VR little endian",
			zap.String("transfer_syntax", transferSyntaxUID))
		return ParseDataSet(data)
	}
}

type parser struct {
	data     []byte
	pos      int
	implicit bool
}

func (p *parser) remaining() int {
	return len(p.data) - p.pos
}

func (p *parser) readTag() Tag {
	tag := Tag{
		Group:   binary.LittleEndian.Uint16(p.data[p.pos : p.pos+2]),
		Element: binary.LittleEndian.Uint16(p.data[p.pos+2 : p.pos+4]),
	}
	p.pos += 4
	return tag
}

func (p *parser) readUint32() uint32 {
	v := binary.LittleEndian.Uint32(p.data[p.pos : p.pos+4])
	p.pos += 4
	return v
}

// isLongVR reports whether an explicit VR uses the 12-byte header form
// (2 reserved bytes plus a 4-byte length).
func isLongVR(vr string) bool {
	switch vr {
	case VR_OB, VR_OD, VR_OF, VR_OW, VR_SQ, VR_UC, VR_UR, VR_UT, VR_UN:
		return true
	default:
		return false
	}
}

// readHeader reads a data element header, returning its tag, VR and
// value length. Item and delimitation tags carry no VR in any syntax.
func (p *parser) readHeader() (Tag, string, uint32, bool) {
	if p.remaining() < 8 {
		if p.remaining() > 0 {
			logger.Debug("Not enough data for element header", zap.Int("offset", p.pos))
		}
		return Tag{}, "", 0, false
	}

	tag := p.readTag()
	if tag.Group == 0xFFFE {
		length := p.readUint32()
		return tag, "", length, true
	}

	if p.implicit {
		length := p.readUint32()
		return tag, VROf(tag), length, true
	}

	vr := string(p.data[p.pos : p.pos+2])
	p.pos += 2
	if isLongVR(vr) {
		if p.remaining() < 6 {
			return Tag{}, "", 0, false
		}
		p.pos += 2 // reserved
		length := p.readUint32()
		return tag, vr, length, true
	}
	length := uint32(binary.LittleEndian.Uint16(p.data[p.pos : p.pos+2]))
	p.pos += 2
	return tag, vr, length, true
}

// parseDataSet decodes elements until the absolute offset end.
func (p *parser) parseDataSet(end int) (*DataSet, error) {
	dataset := NewDataSet()
	for p.pos < end {
		if !p.parseElement(dataset, Tag{}) {
			break
		}
	}
	return dataset, nil
}

// parseDataSetUntil decodes elements until the given delimitation tag.
func (p *parser) parseDataSetUntil(delimiter Tag) (*DataSet, error) {
	dataset := NewDataSet()
	for p.remaining() >= 8 {
		if !p.parseElement(dataset, delimiter) {
			break
		}
	}
	return dataset, nil
}

// parseElement decodes one element into dataset. It returns false when
// the stream ends, is truncated, or the delimiter tag is reached.
func (p *parser) parseElement(dataset *DataSet, delimiter Tag) bool {
	tag, vr, length, ok := p.readHeader()
	if !ok {
		return false
	}
	if delimiter != (Tag{}) && tag == delimiter {
		return false
	}

	if vr == VR_SQ || (vr == VR_UN && length == undefinedLength) {
		items, ok := p.parseSequence(length)
		if !ok {
			return false
		}
		dataset.Add(&DataElement{Tag: tag, VR: VR_SQ, Value: items})
		return true
	}

	if length == 0 {
		dataset.Add(&DataElement{Tag: tag, VR: vr, Value: nil})
		return true
	}
	if length == undefinedLength || p.remaining() < int(length) {
		logger.Warn("Element length exceeds remaining data, stopping parse",
			zap.Stringer("tag", tag),
			zap.Uint32("length", length))
		return false
	}

	value := make([]byte, length)
	copy(value, p.data[p.pos:p.pos+int(length)])
	p.pos += int(length)
	dataset.Add(&DataElement{Tag: tag, VR: vr, Value: value})
	return true
}

// parseSequence decodes the items of a sequence element. Handles both
// defined-length and delimited sequences, with items of either form.
func (p *parser) parseSequence(length uint32) ([]*DataSet, bool) {
	items := []*DataSet{}

	var end int
	if length == undefinedLength {
		end = len(p.data)
	} else {
		end = p.pos + int(length)
		if end > len(p.data) {
			logger.Warn("Sequence length exceeds remaining data", zap.Uint32("length", length))
			return nil, false
		}
	}

	for p.pos < end {
		itemTag, _, itemLength, ok := p.readHeader()
		if !ok {
			return nil, false
		}

		switch itemTag {
		case tagSequenceDelimiter:
			return items, true

		case tagItem:
			var item *DataSet
			var err error
			if itemLength == undefinedLength {
				item, err = p.parseDataSetUntil(tagItemDelimiter)
			} else {
				itemEnd := p.pos + int(itemLength)
				if itemEnd > len(p.data) {
					logger.Warn("Item length exceeds remaining data", zap.Uint32("length", itemLength))
					return nil, false
				}
				item, err = p.parseDataSet(itemEnd)
			}
			if err != nil {
				return nil, false
			}
			items = append(items, item)

		default:
			logger.Warn("Unexpected tag inside sequence", zap.Stringer("tag", itemTag))
			return nil, false
		}
	}
	return items, true
}
