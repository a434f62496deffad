package sequence

import (
	"regexp"
	"strings"

	ferrors "github.com/fseq/fseq/internal/errors"
)

// matcherSource translates pattern into a regular expression recognizing
// the patterns of items that belong to the sequence it describes. '@' is an
// alias for the padding character, '.' is escaped, '*' becomes a wildcard.
// When the pattern carries exactly one padding character the run is made
// flexible ("#+") so it also matches sequences collated at a different
// width; wider runs stay literal and match their exact width only.
func matcherSource(pattern string) (string, error) {
	if pattern == "" {
		return "", ferrors.NewPatternError(ferrors.ErrorTypeMalformedPattern, "createMatcher", pattern)
	}

	src := strings.ReplaceAll(pattern, "@", string(PaddingChar))
	padding := strings.Count(src, string(PaddingChar))
	if padding == 0 {
		return "", ferrors.NewPatternError(ferrors.ErrorTypeMalformedPattern, "createMatcher", pattern)
	}

	src = strings.ReplaceAll(src, ".", `\.`)
	src = strings.ReplaceAll(src, "*", ".*")
	if padding == 1 {
		src = strings.ReplaceAll(src, string(PaddingChar), string(PaddingChar)+"+")
	}
	return src, nil
}

// NewMatcher compiles pattern into a regular expression that matches a
// candidate item's filename or pattern in full. ignoreCase makes the match
// case-insensitive.
func NewMatcher(pattern string, ignoreCase bool) (*regexp.Regexp, error) {
	src, err := matcherSource(pattern)
	if err != nil {
		return nil, err
	}
	anchored := "^" + src + "$"
	if ignoreCase {
		anchored = "(?i)" + anchored
	}
	return regexp.Compile(anchored)
}
