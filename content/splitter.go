package content

import "strings"

// frontMatterDelimiter marks both ends of a front-matter block.
const frontMatterDelimiter = "---"

// SplitFrontMatter separates a raw document into its front-matter block and
// its body. The returned front matter includes the surrounding delimiters.
// When the document does not open with a delimiter, or opens with one that
// is never closed, the body is the original text and the front matter is
// empty; callers treat an empty block as missing front matter.
func SplitFrontMatter(raw string) (frontMatter, body string) {
	if !strings.HasPrefix(raw, frontMatterDelimiter) {
		return "", raw
	}
	rest := raw[len(frontMatterDelimiter):]
	end := strings.Index(rest, frontMatterDelimiter)
	if end < 0 {
		return "", raw
	}
	frontMatter = raw[:end+2*len(frontMatterDelimiter)]
	body = rest[end+len(frontMatterDelimiter):]
	return frontMatter, body
}
