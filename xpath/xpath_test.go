package xpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FrodeRanders/dicom-tools/dicom"
	"github.com/FrodeRanders/dicom-tools/model"
)

var (
	tagCodeValue               = dicom.Tag{Group: 0x0008, Element: 0x0100}
	tagCodingSchemeDesignator  = dicom.Tag{Group: 0x0008, Element: 0x0102}
	tagCodeMeaning             = dicom.Tag{Group: 0x0008, Element: 0x0104}
	tagConceptNameCodeSequence = dicom.Tag{Group: 0x0040, Element: 0xA043}
	tagContentSequence         = dicom.Tag{Group: 0x0040, Element: 0xA730}
)

func codedConcept(codeValue, designator, meaning string) *dicom.DataSet {
	set := dicom.NewDataSet()
	set.AddElement(tagCodeValue, dicom.VR_SH, codeValue)
	set.AddElement(tagCodingSchemeDesignator, dicom.VR_SH, designator)
	if meaning != "" {
		set.AddElement(tagCodeMeaning, dicom.VR_LO, meaning)
	}
	return set
}

// reportTree builds a structured report shaped like real SR content:
// two content items, each holding a ConceptNameCodeSequence. The two
// concept items share a code value and differ only in their coding
// scheme designator.
func reportTree() *model.Element {
	content1 := dicom.NewDataSet()
	content1.AddElement(tagConceptNameCodeSequence, dicom.VR_SQ, []*dicom.DataSet{
		codedConcept("45_01004001", "99_PHILIPS", "Physician reading study"),
	})

	content2 := dicom.NewDataSet()
	content2.AddElement(tagConceptNameCodeSequence, dicom.VR_SQ, []*dicom.DataSet{
		codedConcept("45_01004001", "DCM", ""),
	})

	set := dicom.NewDataSet()
	set.AddElement(dicom.TagSOPClassUID, dicom.VR_UI, dicom.BasicTextSRStorage)
	set.AddElement(dicom.TagPatientID, dicom.VR_LO, "12345")
	set.AddElement(tagContentSequence, dicom.VR_SQ, []*dicom.DataSet{content1, content2})

	return model.Build(set, "report.dcm", nil)
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name string
		expr string
	}{
		{"empty", ""},
		{"dangling slash", "//"},
		{"unterminated literal", "//A[@B='x]"},
		{"missing bracket", "//A[@B='x'"},
		{"bad axis", "//unknown-axis::A"},
		{"missing literal", "//A[@B=]"},
		{"missing predicate", "//A[]"},
		{"stray character", "//A#B"},
		{"single colon", "//A:B"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := Compile(tt.expr)
			assert.Nil(t, expr)

			var syntaxErr *SyntaxError
			require.ErrorAs(t, err, &syntaxErr)
			assert.Equal(t, tt.expr, syntaxErr.Expression)
		})
	}
}

func TestSelectNodes_Root(t *testing.T) {
	root := reportTree()

	nodes, err := SelectNodes("/", root)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Same(t, root, nodes[0].(*model.Element))

	// Absolute paths resolve from the root regardless of context.
	deep := root.Children[0].Children[0]
	nodes, err = SelectNodes("/", deep)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Same(t, root, nodes[0].(*model.Element))
}

func TestSelectNodes_DescendantsByName(t *testing.T) {
	root := reportTree()

	nodes, err := SelectNodes("//ConceptNameCodeSequence", root)
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	for _, n := range nodes {
		assert.Equal(t, "ConceptNameCodeSequence", n.NodeName())
	}

	// Document order: the item under the first content item comes first.
	first := nodes[0].(*model.Element)
	assert.Equal(t, "99_PHILIPS", first.Attribute("CodingSchemeDesignator").Value())
}

func TestSelectNodes_DocumentOrderAcrossDepths(t *testing.T) {
	// The first content item holds its concept two levels down, the
	// second holds one directly. Pre-order demands the deeper match of
	// the earlier subtree before the shallower match of the later one.
	inner := dicom.NewDataSet()
	inner.AddElement(tagConceptNameCodeSequence, dicom.VR_SQ, []*dicom.DataSet{
		codedConcept("DEEP", "DCM", ""),
	})

	content1 := dicom.NewDataSet()
	content1.AddElement(tagContentSequence, dicom.VR_SQ, []*dicom.DataSet{inner})

	content2 := dicom.NewDataSet()
	content2.AddElement(tagConceptNameCodeSequence, dicom.VR_SQ, []*dicom.DataSet{
		codedConcept("SHALLOW", "DCM", ""),
	})

	set := dicom.NewDataSet()
	set.AddElement(dicom.TagSOPClassUID, dicom.VR_UI, dicom.BasicTextSRStorage)
	set.AddElement(tagContentSequence, dicom.VR_SQ, []*dicom.DataSet{content1, content2})
	root := model.Build(set, "report.dcm", nil)

	nodes, err := SelectNodes("//ConceptNameCodeSequence", root)
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, "DEEP", nodes[0].(*model.Element).Attribute("CodeValue").Value())
	assert.Equal(t, "SHALLOW", nodes[1].(*model.Element).Attribute("CodeValue").Value())

	values, err := SelectNodes("//ConceptNameCodeSequence/@CodeValue", root)
	require.NoError(t, err)
	require.Len(t, values, 2)
	assert.Equal(t, "DEEP", values[0].(*model.Attribute).Text)
	assert.Equal(t, "SHALLOW", values[1].(*model.Attribute).Text)
}

func TestSelectNodes_AttributeOfDescendants(t *testing.T) {
	root := reportTree()

	nodes, err := SelectNodes("//ConceptNameCodeSequence/@CodeValue", root)
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	for _, n := range nodes {
		attr, ok := n.(*model.Attribute)
		require.True(t, ok)
		assert.Equal(t, "45_01004001", attr.Text)
	}
}

func TestSelectNodes_PredicateDisambiguatesSiblings(t *testing.T) {
	root := reportTree()

	// Code value alone matches both concept items.
	nodes, err := SelectNodes("//ConceptNameCodeSequence[@CodeValue='45_01004001']", root)
	require.NoError(t, err)
	assert.Len(t, nodes, 2)

	// The conjunction pins down exactly one.
	nodes, err = SelectNodes(
		"//ConceptNameCodeSequence[@CodeValue='45_01004001' and @CodingSchemeDesignator='99_PHILIPS']",
		root)
	require.NoError(t, err)
	require.Len(t, nodes, 1)

	elem := nodes[0].(*model.Element)
	assert.Equal(t, "99_PHILIPS", elem.Attribute("CodingSchemeDesignator").Value())
	assert.Equal(t, "Physician reading study", elem.Attribute("CodeMeaning").Value())
}

func TestSelectNodes_PredicateOr(t *testing.T) {
	root := reportTree()

	nodes, err := SelectNodes(
		"//ConceptNameCodeSequence[@CodingSchemeDesignator='DCM' or @CodingSchemeDesignator='99_PHILIPS']",
		root)
	require.NoError(t, err)
	assert.Len(t, nodes, 2)

	nodes, err = SelectNodes(
		"//ConceptNameCodeSequence[@CodingSchemeDesignator='DCM' and @CodingSchemeDesignator='99_PHILIPS']",
		root)
	require.NoError(t, err)
	assert.Empty(t, nodes)
}

func TestSelectNodes_ExistencePredicate(t *testing.T) {
	root := reportTree()

	// Only the Philips concept item carries a code meaning.
	nodes, err := SelectNodes("//ConceptNameCodeSequence[@CodeMeaning]", root)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "99_PHILIPS",
		nodes[0].(*model.Element).Attribute("CodingSchemeDesignator").Value())

	// Sub-path existence: content items owning a concept with a meaning.
	nodes, err = SelectNodes("//ContentSequence[ConceptNameCodeSequence/@CodeMeaning]", root)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
}

func TestSelectNodes_Wildcard(t *testing.T) {
	root := reportTree()

	nodes, err := SelectNodes("/*", root)
	require.NoError(t, err)
	assert.Len(t, nodes, 2) // the two content items

	nodes, err = SelectNodes("//ConceptNameCodeSequence/@*", root)
	require.NoError(t, err)
	assert.Len(t, nodes, 5) // 3 attributes on one item, 2 on the other
}

func TestSelectNodes_ParentAndAncestor(t *testing.T) {
	root := reportTree()

	concept := MustCompile("//ConceptNameCodeSequence[@CodeMeaning]").SelectSingleNode(root)
	require.NotNil(t, concept)

	parent, err := SelectNodes("..", concept)
	require.NoError(t, err)
	require.Len(t, parent, 1)
	assert.Equal(t, "ContentSequence", parent[0].NodeName())

	ancestors, err := SelectNodes("ancestor::*", concept)
	require.NoError(t, err)
	require.Len(t, ancestors, 2)
	// Nearest ancestor first.
	assert.Equal(t, "ContentSequence", ancestors[0].NodeName())
	assert.Same(t, root, ancestors[1].(*model.Element))

	named, err := SelectNodes("ancestor::ContentSequence", concept)
	require.NoError(t, err)
	assert.Len(t, named, 1)
}

func TestSelectNodes_Siblings(t *testing.T) {
	root := reportTree()
	first := root.Children[0]
	second := root.Children[1]

	after, err := SelectNodes("following-sibling::*", first)
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Same(t, second, after[0].(*model.Element))

	before, err := SelectNodes("preceding-sibling::*", second)
	require.NoError(t, err)
	require.Len(t, before, 1)
	assert.Same(t, first, before[0].(*model.Element))

	none, err := SelectNodes("following-sibling::*", second)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSelectNodes_SelfAndDescendantOrSelf(t *testing.T) {
	root := reportTree()

	self, err := SelectNodes(".", root)
	require.NoError(t, err)
	require.Len(t, self, 1)
	assert.Same(t, root, self[0].(*model.Element))

	all, err := SelectNodes("descendant-or-self::*", root)
	require.NoError(t, err)
	// Root, two content items, two concept items.
	assert.Len(t, all, 5)
}

func TestSelectNodes_RelativeFromContext(t *testing.T) {
	root := reportTree()
	content := root.Children[0]

	nodes, err := SelectNodes("ConceptNameCodeSequence/@CodeValue", content)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "45_01004001", nodes[0].(*model.Attribute).Text)

	// The same relative expression from the root matches nothing: the
	// concept items are not direct children of the root.
	nodes, err = SelectNodes("ConceptNameCodeSequence/@CodeValue", root)
	require.NoError(t, err)
	assert.Empty(t, nodes)
}

func TestSelectNodes_NoDuplicates(t *testing.T) {
	root := reportTree()

	// Both concept items share one grandparent; the ancestor step must
	// report the root only once.
	nodes, err := SelectNodes("//ConceptNameCodeSequence/ancestor::*", root)
	require.NoError(t, err)
	// Two content items plus the root.
	assert.Len(t, nodes, 3)
}

func TestSelectNodes_NilContext(t *testing.T) {
	expr := MustCompile("//ConceptNameCodeSequence")
	assert.Nil(t, expr.SelectNodes(nil))
	assert.Nil(t, expr.SelectSingleNode(nil))
}

func TestExpr_Reuse(t *testing.T) {
	expr := MustCompile("//ConceptNameCodeSequence/@CodeValue")

	first := reportTree()
	second := reportTree()

	assert.Len(t, expr.SelectNodes(first), 2)
	assert.Len(t, expr.SelectNodes(second), 2)
	assert.Len(t, expr.SelectNodes(first), 2)
	assert.Equal(t, "//ConceptNameCodeSequence/@CodeValue", expr.String())
}
