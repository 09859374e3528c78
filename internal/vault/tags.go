package vault

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

var tagPattern = regexp.MustCompile(`#[\w-]+`)

// ExtractTags scans text for hashtag tokens and returns the tag names with
// the prefix stripped, lowercased, deduplicated, and sorted. Deterministic
// order keeps button layouts and confirmation messages reproducible.
func ExtractTags(text string) []string {
	seen := make(map[string]struct{})
	var tags []string
	for _, match := range tagPattern.FindAllString(text, -1) {
		tag := strings.ToLower(strings.TrimPrefix(match, "#"))
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// IsPureTagList reports whether text, with all whitespace removed, is exactly
// the concatenation of "#tag" for the given tags. Such messages declare empty
// categories instead of saving a note. The tags argument is expected to come
// from ExtractTags, so the reconstruction uses the sorted, deduplicated set.
func IsPureTagList(text string, tags []string) bool {
	if len(tags) == 0 {
		return false
	}
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)

	var b strings.Builder
	for _, tag := range tags {
		b.WriteByte('#')
		b.WriteString(tag)
	}
	return stripped == b.String()
}
