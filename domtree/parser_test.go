package domtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseString(t *testing.T, input string) []*Node {
	t.Helper()
	d := NewDocument()
	d.Parse([]byte(input))
	return d.Tags()
}

func TestParseEmptyAndWhitespaceInput(t *testing.T) {
	assert.Empty(t, parseString(t, ""))
	assert.Empty(t, parseString(t, "   \n\t\r  "))
}

func TestParseSimpleNesting(t *testing.T) {
	tags := parseString(t, "<div><p>hello</p></div>")
	require.Len(t, tags, 1)

	div := tags[0]
	assert.Equal(t, "div", div.Name)
	require.Len(t, div.Children, 1)

	p := div.Children[0]
	assert.Equal(t, "p", p.Name)
	require.Len(t, p.Children, 1)
	assert.Equal(t, "hello", p.Children[0].Value)
}

func TestParseVoidTagHasNoChildren(t *testing.T) {
	tags := parseString(t, "<div><br>after</div>")
	div := tags[0]
	require.Len(t, div.Children, 2)

	br := div.Children[0]
	assert.Equal(t, "br", br.Name)
	assert.Empty(t, br.Children)
	assert.Same(t, div, br.Parent)

	text := div.Children[1]
	assert.Equal(t, "after", text.Value)
}

func TestParseBlacklistedTagIsDropped(t *testing.T) {
	tags := parseString(t, "<div><align left>text</div>")
	div := tags[0]
	require.Len(t, div.Children, 1)
	assert.Equal(t, "text", div.Children[0].Value)
}

func TestParseDanglingParagraphNestsNextParagraph(t *testing.T) {
	// A <p> left open is not auto-closed when the next <p> starts: there
	// is no open-correctness rule for p, so the second <p> becomes a
	// child of the first. The single </p> closes the inner one, and
	// </div> then pops out of the still-open outer <p>.
	tags := parseString(t, "<div><p>one<p>two</p></div>")
	div := tags[0]
	require.Len(t, div.Children, 1)

	firstP := div.Children[0]
	assert.Equal(t, "p", firstP.Name)
	require.Len(t, firstP.Children, 2)
	assert.Equal(t, "one", firstP.Children[0].Value)

	secondP := firstP.Children[1]
	assert.Equal(t, "p", secondP.Name)
	require.Len(t, secondP.Children, 1)
	assert.Equal(t, "two", secondP.Children[0].Value)
}

func TestParseStrayClosingTagIsIgnored(t *testing.T) {
	tags := parseString(t, "<div></p>inside</div>")
	div := tags[0]
	require.Len(t, div.Children, 1)
	assert.Equal(t, "inside", div.Children[0].Value)
}

func TestParseTableCorrectnessAutoClosesCellAndRow(t *testing.T) {
	tags := parseString(t, "<table><tr><td>a<td>b<tr><td>c</table>")
	require.Len(t, tags, 1)
	table := tags[0]
	assert.Equal(t, "table", table.Name)
	require.Len(t, table.Children, 2, "two <tr> rows")

	firstRow := table.Children[0]
	require.Len(t, firstRow.Children, 2, "two <td> cells in the first row")
	assert.Equal(t, "a", firstRow.Children[0].Children[0].Value)
	assert.Equal(t, "b", firstRow.Children[1].Children[0].Value)

	secondRow := table.Children[1]
	require.Len(t, secondRow.Children, 1)
	assert.Equal(t, "c", secondRow.Children[0].Children[0].Value)
}

func TestParseNestedTableInsideCellSavesOuterState(t *testing.T) {
	tags := parseString(t, "<table><tr><td><table><tr><td>inner</td></tr></table></td></tr></table>")
	require.Len(t, tags, 1)
	outer := tags[0]
	require.Len(t, outer.Children, 1)
	outerTD := outer.Children[0].Children[0]
	require.Len(t, outerTD.Children, 1)

	inner := outerTD.Children[0]
	assert.Equal(t, "table", inner.Name)
	require.Len(t, inner.Children, 1)
	assert.Equal(t, "inner", inner.Children[0].Children[0].Children[0].Value)
}

func TestParseScriptContentIsOpaque(t *testing.T) {
	// script must not be the very first root-level tag: raw-text mode is
	// only armed when the element is attached as a child of an existing
	// current node.
	tags := parseString(t, "<div><script>if (a < b) { x() }</script>after</div>")
	div := tags[0]
	require.Len(t, div.Children, 2)

	script := div.Children[0]
	assert.Equal(t, "script", script.Name)
	require.Len(t, script.Children, 1)
	assert.Equal(t, "if (a < b) { x() }", script.Children[0].Value)

	assert.Equal(t, "after", div.Children[1].Value)
}

func TestParseSVGClosingTagIsCaseInsensitive(t *testing.T) {
	tags := parseString(t, "<div><svg><path/></SVG>after</div>")
	div := tags[0]
	require.Len(t, div.Children, 2)

	svg := div.Children[0]
	assert.Equal(t, "svg", svg.Name)
	require.Len(t, svg.Children, 1)
	assert.Equal(t, "<path/>", svg.Children[0].Value)

	assert.Equal(t, "after", div.Children[1].Value)
}

func TestParseAttributesPreserveQuoteAndCase(t *testing.T) {
	tags := parseString(t, `<div Class="a" id='b' disabled>text</div>`)
	div := tags[0]
	require.Len(t, div.Attributes, 3)

	assert.Equal(t, Attribute{Key: "Class", Value: "a", Quote: '"'}, div.Attributes[0])
	assert.Equal(t, Attribute{Key: "id", Value: "b", Quote: '\''}, div.Attributes[1])
	// disabled has no '=', so it keeps whatever quote char is currently in
	// scope from the previous attribute.
	assert.Equal(t, Attribute{Key: "disabled", Value: "", Quote: '\''}, div.Attributes[2])
}

func TestParseCommentNode(t *testing.T) {
	tags := parseString(t, "<div><!-- a comment --></div>")
	div := tags[0]
	require.Len(t, div.Children, 1)
	comment := div.Children[0]
	assert.Equal(t, KindSpecial, comment.Kind())
	assert.Equal(t, "!-- a comment --", comment.Name)
}

func TestParseDoctypeIsRootSibling(t *testing.T) {
	tags := parseString(t, "<!DOCTYPE html><html></html>")
	require.Len(t, tags, 2)
	assert.Equal(t, "!DOCTYPE html", tags[0].Name)
	assert.Equal(t, "html", tags[1].Name)
}
