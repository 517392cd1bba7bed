package lang

import (
	"golang.org/x/text/language"
)

// MatchAcceptLanguage picks the best language for a request from the list of
// available template languages, honoring quality values in the Accept-Language
// header ("en-US,en;q=0.9,pl;q=0.8"). It returns the first available language
// when the header is empty or unparseable, and an empty string when no
// languages are available. The returned value is always one of the entries of
// available, spelled exactly as the caller passed it.
func MatchAcceptLanguage(header string, available []string) string {
	if len(available) == 0 {
		return ""
	}
	if header == "" {
		return available[0]
	}

	supported := make([]language.Tag, 0, len(available))
	indexes := make([]int, 0, len(available))
	for i, code := range available {
		tag, err := language.Parse(code)
		if err != nil {
			continue
		}
		supported = append(supported, tag)
		indexes = append(indexes, i)
	}
	if len(supported) == 0 {
		return available[0]
	}

	preferred, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(preferred) == 0 {
		return available[0]
	}

	_, idx, conf := language.NewMatcher(supported).Match(preferred...)
	if conf == language.No {
		return available[0]
	}
	return available[indexes[idx]]
}
