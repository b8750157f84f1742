package shortcut

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"keyhook/internal/keys"
)

// ErrInvalid is wrapped by every Parse failure.
var ErrInvalid = errors.New("invalid shortcut")

// Parse reads text such as "Ctrl + Shift + E" or "alt-f4". Tokens are
// separated by whitespace, '+' or '-'. Every token but the last must be a
// modifier name; the last names the key.
func Parse(text string, state keys.State) (Shortcut, error) {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return Shortcut{}, fmt.Errorf("%w: empty text", ErrInvalid)
	}

	var modifier keys.Modifier
	for _, token := range tokens[:len(tokens)-1] {
		mod, err := keys.ParseModifier(token)
		if err != nil {
			return Shortcut{}, fmt.Errorf("%w %q: %v", ErrInvalid, text, err)
		}
		modifier = modifier.With(mod)
	}

	key, err := keys.ParseKey(tokens[len(tokens)-1])
	if err != nil {
		return Shortcut{}, fmt.Errorf("%w %q: %v", ErrInvalid, text, err)
	}
	return New(key, modifier, state), nil
}

// TryParse is Parse without the error detail.
func TryParse(text string, state keys.State) (Shortcut, bool) {
	sc, err := Parse(text, state)
	if err != nil {
		return Shortcut{}, false
	}
	return sc, true
}

// MustParse is Parse for package-level literals. It panics on error.
func MustParse(text string, state keys.State) Shortcut {
	sc, err := Parse(text, state)
	if err != nil {
		panic(err)
	}
	return sc
}

func isSeparator(r rune) bool {
	return r == '+' || r == '-' || unicode.IsSpace(r)
}

// tokenize splits text on separators. A trailing '+' or '-' that directly
// follows a separator (or stands alone) is kept as the key token so that
// "Ctrl + -" names the Minus key.
func tokenize(text string) []string {
	trimmed := strings.TrimSpace(text)
	var trailing string
	if n := len(trimmed); n > 0 && (trimmed[n-1] == '+' || trimmed[n-1] == '-') {
		rest := strings.TrimRightFunc(trimmed[:n-1], unicode.IsSpace)
		if rest == "" || isSeparator(rune(rest[len(rest)-1])) {
			trailing = trimmed[n-1:]
			trimmed = rest
		}
	}
	tokens := strings.FieldsFunc(trimmed, isSeparator)
	if trailing != "" {
		tokens = append(tokens, trailing)
	}
	return tokens
}
