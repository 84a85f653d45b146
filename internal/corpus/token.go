// Package corpus decodes token/tag annotated text, one line per
// utterance, each token carrying a single-character language tag after
// the last slash ("word/e").
package corpus

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// SplitFunc decomposes one whitespace-delimited token into its surface
// form and single-character tag. Implementations signal malformed input
// with a *DecodeError.
type SplitFunc func(token string) (surface, tag string, err error)

// DecodeError reports a token that does not follow the token/tag encoding.
type DecodeError struct {
	Token  string
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cannot decode token %q: %s", e.Token, e.Reason)
}

// SplitToken splits on the last slash, so surface forms may themselves
// contain slashes ("and/or/e"). The surface may be empty; the tag must
// be exactly one rune.
func SplitToken(token string) (string, string, error) {
	i := strings.LastIndexByte(token, '/')
	if i < 0 {
		return "", "", &DecodeError{Token: token, Reason: "no tag delimiter"}
	}
	surface, tag := token[:i], token[i+1:]
	if utf8.RuneCountInString(tag) != 1 {
		return "", "", &DecodeError{Token: token, Reason: "tag must be a single character"}
	}
	return surface, tag, nil
}
