// Package model builds navigable document trees out of decoded DICOM
// datasets. An Element represents one attribute-set level (the document
// root or an expanded sequence item); an Attribute is a single decoded
// field rendered to canonical text.
package model

import (
	"strings"

	"go.uber.org/zap"

	"github.com/FrodeRanders/dicom-tools/dicom"
)

var logger = zap.NewNop()

// SetLogger installs the logger used by this package. The default is a
// no-op logger.
func SetLogger(l *zap.Logger) {
	if l != nil {
		logger = l
	}
}

// Indent is the per-level indentation used by text rendering.
const Indent = "    "

// Node is either an *Element or an *Attribute. Path query evaluation
// operates on this interface.
type Node interface {
	// NodeName is the name used by path expression node tests.
	NodeName() string
	// Parent returns the enclosing element, or nil at the root.
	Parent() *Element
}

// Element represents one decoded attribute set: either the document
// root or an expanded item of a nested sequence.
//
// The tree is acyclic. Every element except the root has exactly one
// owner, and that owner's Children contains it exactly once. Owner is a
// non-owning back-reference used only for upward navigation.
type Element struct {
	// Tag identifies the sequence that produced this element.
	// Nil for the document root.
	Tag *dicom.Tag

	// Name is the sequence's symbolic name (inherited by every expanded
	// item), or the document's own name at the root.
	Name string

	// Description is a heuristic label, see Build.
	Description string

	Attributes []*Attribute
	Children   []*Element
	Owner      *Element

	set *dicom.DataSet
}

// Attribute is a single decoded field within an element. Immutable
// after construction.
type Attribute struct {
	Tag   dicom.Tag
	VR    string
	Text  string
	Owner *Element
}

// Name returns the symbolic keyword of the attribute's tag, falling
// back to the (gggg,eeee) form for tags outside the dictionary.
func (a *Attribute) Name() string {
	if keyword := dicom.KeywordOf(a.Tag); keyword != "" {
		return keyword
	}
	return a.Tag.String()
}

// Value returns the canonical decoded text of the attribute.
func (a *Attribute) Value() string {
	return a.Text
}

// NodeName implements Node.
func (a *Attribute) NodeName() string {
	return a.Name()
}

// Parent implements Node.
func (a *Attribute) Parent() *Element {
	return a.Owner
}

// AsText renders the attribute as a single line: tag name :: value.
func (a *Attribute) AsText(prefix string) string {
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString(a.Tag.String())
	b.WriteString(" ")
	b.WriteString(a.Name())
	b.WriteString(" :: ")
	b.WriteString(a.Text)
	b.WriteString("\n")
	return b.String()
}

// Build turns a raw dataset into an element tree. name becomes the
// element's name (for the root, typically the document or file name);
// owner is nil for the document root.
//
// Every non-sequence field of set becomes one Attribute, in decode
// order. Every sequence field is expanded: each of its item sets is
// built recursively into a child element named after the sequence
// field. Building performs no I/O and has no side effects beyond tree
// construction.
func Build(set *dicom.DataSet, name string, owner *Element) *Element {
	return build(nil, name, set, owner)
}

func build(tag *dicom.Tag, name string, set *dicom.DataSet, owner *Element) *Element {
	e := &Element{
		Tag:   tag,
		Name:  name,
		Owner: owner,
		set:   set,
	}
	e.Description = describe(e.ID(), name, set)

	for _, field := range set.Elements() {
		if field.VR == dicom.VR_SQ {
			sequenceTag := field.Tag
			sequenceName := dicom.KeywordOf(sequenceTag)
			if sequenceName == "" {
				sequenceName = sequenceTag.String()
			}
			for _, item := range field.Items() {
				child := build(&sequenceTag, sequenceName, item, e)
				e.Children = append(e.Children, child)
			}
			continue
		}

		text, err := FormatValue(field, set)
		if err != nil {
			logger.Warn("Could not determine value of field",
				zap.Stringer("tag", field.Tag),
				zap.String("keyword", dicom.KeywordOf(field.Tag)),
				zap.String("vr", field.VR),
				zap.Error(err))
		}
		e.Attributes = append(e.Attributes, &Attribute{
			Tag:   field.Tag,
			VR:    field.VR,
			Text:  text,
			Owner: e,
		})
	}
	return e
}

// describe derives the heuristic element description: the SOP class
// description when a SOP class UID is present, otherwise the directory
// record type, otherwise tag + name.
func describe(id, name string, set *dicom.DataSet) string {
	if sopClassUID := set.SOPClassUID(); sopClassUID != "" {
		return dicom.DescribeSOPClass(sopClassUID)
	}
	if recordType := set.DirectoryRecordType(); recordType != "" {
		return recordType
	}
	description := id
	if description != "" {
		description += " "
	}
	return description + name
}

// ID returns the sequence tag in (gggg,eeee) form, or "" at the root.
func (e *Element) ID() string {
	if e.Tag == nil {
		return ""
	}
	return e.Tag.String()
}

// NodeName implements Node.
func (e *Element) NodeName() string {
	return e.Name
}

// Parent implements Node.
func (e *Element) Parent() *Element {
	return e.Owner
}

// Set returns the raw dataset this element was built from. The typed
// getters on the dataset remain usable independently of the tree.
func (e *Element) Set() *dicom.DataSet {
	return e.set
}

// SOPClassUID returns the SOP class UID of the underlying dataset.
func (e *Element) SOPClassUID() string {
	return e.set.SOPClassUID()
}

// Attribute returns the first attribute with the given name, or nil.
func (e *Element) Attribute(name string) *Attribute {
	for _, a := range e.Attributes {
		if a.Name() == name {
			return a
		}
	}
	return nil
}

// AsText renders the element as an indented, line-oriented dump: a
// header line, one line per attribute, then, if recurse is set, each
// child one level deeper.
func (e *Element) AsText(recurse bool) string {
	return e.AsIndentedText(recurse, "")
}

// AsIndentedText is AsText with an initial prefix applied to every line.
func (e *Element) AsIndentedText(recurse bool, prefix string) string {
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString("[")
	if e.ID() == "" {
		b.WriteString(e.Name)
		b.WriteString(" : ")
	}
	b.WriteString(e.Description)
	b.WriteString("]\n")

	prefix += Indent
	for _, attribute := range e.Attributes {
		b.WriteString(attribute.AsText(prefix))
	}
	b.WriteString("\n")

	if recurse {
		for _, child := range e.Children {
			b.WriteString(child.AsIndentedText(true, prefix))
		}
	}
	return b.String()
}

func (e *Element) String() string {
	return "Element {" + e.Description + "}"
}
