// Package sniff describes the leading bytes of an input file: whether they
// look binary or textual and, for text, which language they resemble. The
// result is purely informational and never changes how files are compared.
package sniff

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"

	"github.com/yaklabco/qdiff/pkg/resync"
)

// HeadSize is the number of leading bytes Head reads by default.
const HeadSize = 8 * 1024

// Content kinds.
const (
	KindEmpty  = "empty"
	KindBinary = "binary"
	KindText   = "text"
)

const langText = "text"

// classifierCandidates limits the classifier to common file types.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "C", "C++", "Rust", "Java",
	"JSON", "YAML", "XML", "HTML", "Markdown", "SQL", "INI",
}

// Report is the description of one input.
type Report struct {
	Kind     string
	Language string
	MIME     string
}

// Head returns up to n leading bytes of s.
func Head(s resync.Stream, n int) []byte {
	limit := min(s.Size(), int64(n))
	out := make([]byte, limit)
	for i := range limit {
		out[i] = s.ByteAt(i)
	}
	return out
}

// Describe classifies head, the leading bytes of the file called name.
func Describe(name string, head []byte) Report {
	if len(head) == 0 {
		return Report{Kind: KindEmpty}
	}

	if enry.IsBinary(head) {
		return Report{Kind: KindBinary, MIME: "application/octet-stream"}
	}

	lang := detectLanguage(name, head)
	return Report{
		Kind:     KindText,
		Language: normalize(lang),
		MIME:     enry.GetMIMEType(name, lang),
	}
}

// detectLanguage returns a go-enry language name, or langText.
func detectLanguage(name string, head []byte) string {
	// Strategy 1: shebang.
	if lang, safe := enry.GetLanguageByShebang(head); safe {
		return lang
	}

	// Strategy 2: file name.
	if lang, safe := enry.GetLanguageByExtension(name); safe {
		return lang
	}

	// Strategy 3: highly indicative content.
	if lang := detectByPattern(head); lang != "" {
		return lang
	}

	// Strategy 4: classifier, only when it is confident.
	if lang, safe := enry.GetLanguageByClassifier(head, classifierCandidates); safe && lang != "" {
		return lang
	}

	return langText
}

// detectByPattern checks for a few unmistakable openings.
func detectByPattern(head []byte) string {
	trimmed := bytes.TrimSpace(head)
	lower := bytes.ToLower(trimmed)

	switch {
	case bytes.HasPrefix(trimmed, []byte("package ")):
		return "Go"
	case bytes.HasPrefix(trimmed, []byte("<?xml")):
		return "XML"
	case bytes.HasPrefix(lower, []byte("<!doctype html")), bytes.HasPrefix(lower, []byte("<html")):
		return "HTML"
	case (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
		bytes.Contains(trimmed, []byte(`"`)):
		return "JSON"
	case bytes.HasPrefix(trimmed, []byte("---\n")):
		return "YAML"
	}
	return ""
}

// normalize converts go-enry language names to short lowercase tags.
func normalize(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}
