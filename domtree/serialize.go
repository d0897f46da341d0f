package domtree

import "strings"

// Serialize renders the forest back to pretty-printed markup, tab-indented
// one level per nesting depth. It is the inverse companion to Parse: for
// well-formed input, parsing Serialize's output reproduces a forest of equal
// structure. Text values can differ in surrounding whitespace: trailing
// whitespace is trimmed, and raw-text content is re-read together with the
// line break and indentation placed around it.
func (d *Document) Serialize() []byte {
	return SerializeNodes(d.tags)
}

// SerializeNodes renders an arbitrary forest the same way Document.Serialize
// does. It is exported separately so trees built or edited by hand (not
// necessarily the result of Parse) can be rendered too.
func SerializeNodes(nodes []*Node) []byte {
	var buf strings.Builder
	printData(nodes, &buf, 0)
	buf.WriteString("\n")
	return []byte(buf.String())
}

func printData(nodes []*Node, buf *strings.Builder, level int) {
	for _, node := range nodes {
		if node.Name == "" {
			continue
		}
		if node.Kind() == KindSpecial {
			if buf.Len() > 0 {
				buf.WriteString("\n")
			}
			buf.WriteString(indent(level))
			buf.WriteString("<")
			buf.WriteString(node.Name)
			buf.WriteString(">")
			continue
		}
		printName(node, buf, level)
		printValue(node, buf, level)
		printClose(node, buf, level)
	}
}

func printName(node *Node, buf *strings.Builder, level int) {
	if buf.Len() > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString(indent(level))
	buf.WriteString("<")
	buf.WriteString(node.Name)
	for _, attr := range node.Attributes {
		buf.WriteString(" ")
		buf.WriteString(attr.Key)
		buf.WriteString("=")
		buf.WriteByte(attr.Quote)
		buf.WriteString(attr.Value)
		buf.WriteByte(attr.Quote)
	}
	if isVoidTag(node.Name) {
		buf.WriteString("/")
	}
	buf.WriteString(">")
}

func printValue(node *Node, buf *strings.Builder, level int) {
	if len(node.Children) == 0 {
		buf.WriteString(rtrim(node.Value))
		return
	}

	inline := len(node.Children) == 1 && node.Children[0].Name == "" && !isRawTextTag(node.Name)

	for _, child := range node.Children {
		if child.Name == "" {
			if inline {
				buf.WriteString(rtrim(child.Value))
			} else {
				buf.WriteString("\n")
				buf.WriteString(indent(level + 1))
				buf.WriteString(rtrim(child.Value))
			}
			continue
		}
		printData([]*Node{child}, buf, level+1)
	}
}

func printClose(node *Node, buf *strings.Builder, level int) {
	if isVoidTag(node.Name) {
		return
	}

	multiChild := len(node.Children) > 1
	firstIsElement := len(node.Children) != 0 && node.Children[0].Name != ""
	if multiChild || firstIsElement || isRawTextTag(node.Name) {
		buf.WriteString("\n")
		buf.WriteString(indent(level))
	}
	buf.WriteString("</")
	buf.WriteString(node.Name)
	buf.WriteString(">")
}

func rtrim(s string) string {
	return strings.TrimRight(s, whitespace)
}

func indent(level int) string {
	return strings.Repeat("\t", level)
}
