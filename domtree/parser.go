package domtree

// tagState is the two-valued flag used for the watched-tag and table
// save-stack bookkeeping.
type tagState int

const (
	closed tagState = iota
	opened
)

// tableSnapshot is one entry of the save-stack: the table/tr/td state
// triple saved when a <table> opens while a <td> is already open, and
// restored when the matching </table> closes. p/a/label are deliberately
// not part of this triple: they are document-flow state, not
// table-structural state, so they are never stacked across nested
// tables.
type tableSnapshot struct {
	table, tr, td tagState
}

// Document holds parser state across a single Parse call and owns the
// resulting forest. The zero value is ready to use.
type Document struct {
	buf []byte
	pos int

	tags    []*Node
	current *Node

	pState, aState, labelState   tagState
	tdState, trState, tableState tagState

	inScript, inStyle, inSVG bool

	saveStack []tableSnapshot
}

// NewDocument returns a ready-to-parse Document.
func NewDocument() *Document {
	return &Document{}
}

// Parse consumes data left to right and builds the forest, appending new
// root-level nodes to whatever the forest already contains. Calling Parse
// a second time resets the cursor and all watched/raw-text state, but
// does not clear Tags(); the new input's nodes are appended after the
// previous call's. The input slice is owned by the Document for the
// duration of the call.
func (d *Document) Parse(data []byte) {
	d.buf = data
	d.pos = 0
	d.current = nil
	d.pState, d.aState, d.labelState = closed, closed, closed
	d.tdState, d.trState, d.tableState = closed, closed, closed
	d.inScript, d.inStyle, d.inSVG = false, false, false
	d.saveStack = nil

	for d.pos < len(d.buf) {
		if !d.parseNextToken() {
			break
		}
	}
}

// Tags returns the root-level forest built by every Parse call so far.
func (d *Document) Tags() []*Node {
	return d.tags
}

func (d *Document) parseNextToken() bool {
	if d.pos >= len(d.buf) {
		return false
	}

	if !(d.inScript || d.inStyle || d.inSVG) {
		d.skipWhitespace()
	}

	if d.inSVG {
		return d.parseValue()
	}
	if d.pos < len(d.buf) && d.buf[d.pos] == '<' {
		return d.parseTag()
	}
	return d.parseValue()
}

func (d *Document) parseTag() bool {
	if d.pos >= len(d.buf) {
		return false
	}
	d.pos++ // consume '<'
	if d.pos >= len(d.buf) {
		return false
	}

	switch d.buf[d.pos] {
	case '/':
		d.pos++
		d.parseClosingTag()
	case '!', '?':
		if d.buf[d.pos] == '!' && d.pos+2 < len(d.buf) && d.buf[d.pos+1] == '-' && d.buf[d.pos+2] == '-' {
			d.parseCommentTag()
		} else {
			d.parseSpecialTag()
		}
	default:
		if !d.parseOpeningTag() {
			return false
		}
	}
	return true
}

// parseValue consumes a text run and attaches it as a text child of
// current. When a raw-text mode is active, it scans for the five-byte
// case-insensitive prefix of the matching closing tag ("</scr", "</sty",
// "</svg") rather than the full closing tag name — a well-formed
// document never has those five bytes appear inside the element's own
// content, so the shorter check is equivalent in practice and avoids
// re-checking bytes already scanned once a prefix match starts.
func (d *Document) parseValue() bool {
	if d.current == nil {
		return false
	}

	var value []byte
	switch {
	case d.inScript:
		for d.pos < len(d.buf)-5 && !closingPrefix(d.buf, d.pos, "scr") {
			value = append(value, d.buf[d.pos])
			d.pos++
		}
		d.inScript = false
	case d.inStyle:
		for d.pos < len(d.buf)-5 && !closingPrefix(d.buf, d.pos, "sty") {
			value = append(value, d.buf[d.pos])
			d.pos++
		}
		d.inStyle = false
	case d.inSVG:
		for d.pos < len(d.buf)-5 && !closingPrefix(d.buf, d.pos, "svg") {
			value = append(value, d.buf[d.pos])
			d.pos++
		}
		d.inSVG = false
	default:
		for d.pos < len(d.buf)-1 && d.buf[d.pos] != '<' {
			value = append(value, d.buf[d.pos])
			d.pos++
		}
	}

	d.current.AppendTextChild(string(value))
	return true
}

func closingPrefix(buf []byte, pos int, letters string) bool {
	if pos+4 >= len(buf) {
		return false
	}
	return buf[pos] == '<' && buf[pos+1] == '/' &&
		lowerByte(buf[pos+2]) == letters[0] &&
		lowerByte(buf[pos+3]) == letters[1] &&
		lowerByte(buf[pos+4]) == letters[2]
}

func lowerByte(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

func (d *Document) parseSpecialTag() {
	start := d.pos
	for d.pos < len(d.buf) && d.buf[d.pos] != '>' {
		d.pos++
	}
	d.attachSpecial(string(d.buf[start:d.pos]))

	if d.pos >= len(d.buf) || d.buf[d.pos] == '>' {
		d.pos++
	}
}

func (d *Document) parseCommentTag() {
	start := d.pos
	for d.pos < len(d.buf)-3 && !(d.buf[d.pos] == '>' && d.buf[d.pos-1] == '-' && d.buf[d.pos-2] == '-') {
		d.pos++
	}
	d.attachSpecial(string(d.buf[start:d.pos]))

	if d.pos >= len(d.buf) || d.buf[d.pos] == '>' {
		d.pos++
	}
}

func (d *Document) attachSpecial(name string) {
	node := &Node{Name: name}
	if len(d.tags) == 0 || d.current == nil {
		d.tags = append(d.tags, node)
	} else {
		d.current.AppendChild(node)
	}
}

func (d *Document) parseOpeningTag() bool {
	d.skipWhitespace()

	start := d.pos
	for d.pos < len(d.buf) && !isWhitespaceByte(d.buf[d.pos]) && d.buf[d.pos] != '>' && d.buf[d.pos] != '/' {
		d.pos++
	}
	name := toLowerASCII(string(d.buf[start:d.pos]))

	if isBlacklistedTag(name) {
		d.skipCurrentTag()
		return true
	}

	isVoid := isVoidTag(name)

	if len(d.tags) == 0 || d.current == nil {
		node := &Node{Name: name}
		d.tags = append(d.tags, node)
		d.current = node
	} else {
		if !isVoid && isWatchedTag(name) {
			d.performCorrectnessOnOpen(name)
		}
		if d.current != nil {
			node := &Node{Name: name}
			d.current.AppendChild(node)
			d.current = node
			d.setupRawTextMode()
		}
	}

	d.parseAttributes()

	if isVoid {
		if d.current != nil {
			d.current = d.current.Parent
		}
	} else if isWatchedTag(name) {
		d.updateWatched(name, opened)
	}

	if d.pos >= len(d.buf) || d.buf[d.pos] == '>' {
		d.pos++
	}
	return true
}

func (d *Document) parseClosingTag() {
	d.skipWhitespace()

	start := d.pos
	for d.pos < len(d.buf) && !isWhitespaceByte(d.buf[d.pos]) && d.buf[d.pos] != '>' {
		d.pos++
	}
	name := toLowerASCII(string(d.buf[start:d.pos]))

	if d.pos >= len(d.buf) || d.buf[d.pos] == '>' {
		d.pos++
	}

	if isBlacklistedTag(name) {
		return
	}
	if d.current == nil {
		return
	}

	validClose := true
	if isWatchedTag(name) {
		d.updateWatched(name, closed)
		d.performCorrectnessOnClose(name)
		validClose = d.closeParagraph(name)
	}
	if d.current != nil && validClose {
		d.current = d.current.Parent
	}
	if name == "table" && len(d.saveStack) > 0 {
		d.restoreTable()
	}
}

// performCorrectnessOnOpen auto-closes dangling cells/rows before a new
// one, and saves/resets table state across a <table> nested inside an
// open <td>.
func (d *Document) performCorrectnessOnOpen(name string) {
	switch name {
	case "td":
		if d.tdState == opened && d.current != nil {
			d.current = d.current.Parent
			d.tdState = closed
		}
	case "tr":
		if d.tdState == opened && d.current != nil {
			d.current = d.current.Parent
			d.tdState = closed
		}
		if d.trState == opened && d.current != nil {
			d.current = d.current.Parent
			d.trState = closed
		}
	case "table":
		if d.tdState == opened && d.current != nil {
			d.saveStack = append(d.saveStack, tableSnapshot{d.tableState, d.trState, d.tdState})
			d.trState = closed
			d.tdState = closed
			d.tableState = opened
		}
	}
}

// performCorrectnessOnClose force-closes a dangling cell/row when the
// enclosing table closes.
func (d *Document) performCorrectnessOnClose(name string) {
	if name != "table" {
		return
	}
	if d.tdState == opened && d.current != nil {
		d.current = d.current.Parent
		d.tdState = closed
	}
	if d.trState == opened && d.current != nil {
		d.current = d.current.Parent
		d.trState = closed
	}
}

// updateWatched applies an open/close asymmetry: p, a, and label only
// transition to opened here; their closed transition happens inside
// closeParagraph, which also decides whether a stray close should be
// ignored instead of popping current.
func (d *Document) updateWatched(name string, state tagState) {
	switch name {
	case "p":
		if state == opened {
			d.pState = state
		}
	case "a":
		if state == opened {
			d.aState = state
		}
	case "label":
		if state == opened {
			d.labelState = state
		}
	case "td":
		d.tdState = state
	case "tr":
		d.trState = state
	case "table":
		d.tableState = state
	}
}

// closeParagraph returns false when tagName is p/a/label and that tag's
// state was already closed, meaning the closing tag is stray and current
// should not be popped.
func (d *Document) closeParagraph(name string) bool {
	switch name {
	case "p":
		if d.pState == opened {
			d.pState = closed
		} else {
			return false
		}
	case "a":
		if d.aState == opened {
			d.aState = closed
		} else {
			return false
		}
	case "label":
		if d.labelState == opened {
			d.labelState = closed
		} else {
			return false
		}
	}
	return true
}

func (d *Document) restoreTable() {
	top := d.saveStack[len(d.saveStack)-1]
	d.saveStack = d.saveStack[:len(d.saveStack)-1]
	d.tableState = top.table
	d.trState = top.tr
	d.tdState = top.td
}

// setupRawTextMode clears all three raw-text flags and sets the one
// matching current's name, if any. Called right after current becomes
// the freshly opened element, before its attributes are parsed.
func (d *Document) setupRawTextMode() {
	d.inScript, d.inStyle, d.inSVG = false, false, false
	switch d.current.Name {
	case "script":
		d.inScript = true
	case "style":
		d.inStyle = true
	case "svg":
		d.inSVG = true
	}
}

// parseAttributes reads (key, value, quote) triples until '>' or EOF.
// The quote variable is intentionally declared once for the whole tag,
// not reset per attribute: an attribute with no value inherits whatever
// quote character the previous attribute in the same tag used.
func (d *Document) parseAttributes() {
	quote := byte('"')
	for d.pos < len(d.buf) && d.buf[d.pos] != '>' {
		d.skipWhitespace()

		if d.pos < len(d.buf) && d.buf[d.pos] != '>' && d.buf[d.pos] != '/' {
			keyStart := d.pos
			for d.pos < len(d.buf) && d.buf[d.pos] != '=' && d.buf[d.pos] != '>' && !isWhitespaceByte(d.buf[d.pos]) {
				d.pos++
			}
			key := string(d.buf[keyStart:d.pos])

			d.skipWhitespace()

			var value string
			if d.pos < len(d.buf) && d.buf[d.pos] == '=' {
				d.pos++
				d.skipWhitespace()
				if d.pos < len(d.buf) && (d.buf[d.pos] == '"' || d.buf[d.pos] == '\'') {
					quote = d.buf[d.pos]
					d.pos++
					valueStart := d.pos
					for d.pos < len(d.buf) && d.buf[d.pos] != quote {
						d.pos++
					}
					value = string(d.buf[valueStart:d.pos])
				}
			} else {
				d.pos--
			}

			d.current.AppendAttributes(Attribute{Key: key, Value: value, Quote: quote})
		}

		if d.pos < len(d.buf) && d.buf[d.pos] != '>' {
			d.pos++
		}
	}
}

func (d *Document) skipCurrentTag() {
	for d.pos < len(d.buf) && d.buf[d.pos] != '>' {
		d.pos++
	}
	if d.pos >= len(d.buf) || d.buf[d.pos] == '>' {
		d.pos++
	}
}

func (d *Document) skipWhitespace() {
	for d.pos < len(d.buf) && isWhitespaceByte(d.buf[d.pos]) {
		d.pos++
	}
}

func isWhitespaceByte(b byte) bool {
	return b == ' ' || b == '\r' || b == '\n' || b == '\t'
}

func toLowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
