package domtree

import "sort"

// voidTags lists the tags that never have a closing counterpart and whose
// nodes therefore never accept children. Kept sorted so isVoidTag can binary
// search it.
var voidTags = []string{
	"area", "base", "br", "col", "command", "embed", "hr", "img", "input",
	"keygen", "link", "meta", "param", "source", "track", "wbr",
}

// blacklistedTags are silently dropped by the parser: the tag is consumed
// but no node is created for it. Kept sorted for the same reason as
// voidTags, even though it currently holds a single entry.
var blacklistedTags = []string{
	"align",
}

// watchedTags trigger the open/close correctness rules in the tree
// builder. Checked via a short linear scan rather than a sorted table:
// 6 string comparisons is cheaper than sorting something this small.
var watchedTags = [...]string{"p", "a", "td", "tr", "table", "label"}

func isVoidTag(name string) bool {
	i := sort.SearchStrings(voidTags, name)
	return i < len(voidTags) && voidTags[i] == name
}

func isBlacklistedTag(name string) bool {
	i := sort.SearchStrings(blacklistedTags, name)
	return i < len(blacklistedTags) && blacklistedTags[i] == name
}

func isWatchedTag(name string) bool {
	for _, t := range watchedTags {
		if t == name {
			return true
		}
	}
	return false
}

func isRawTextTag(name string) bool {
	return name == "script" || name == "style" || name == "svg"
}
