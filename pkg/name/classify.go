package name

import (
	"fmt"
	"regexp"
)

type kindRegex struct {
	Pattern *regexp.Regexp
	Raw     string
}

// Kind regex patterns. Classification is a pure function of spelling:
// the leading sigil (or its absence plus letter case) decides the kind.
var kindRegexes = map[Kind]kindRegex{
	TypeAttribute:     {regexp.MustCompile(`^@@[a-zA-Z_][a-zA-Z0-9_]*$`), `^@@[a-zA-Z_][a-zA-Z0-9_]*$`},
	InstanceAttribute: {regexp.MustCompile(`^@[a-zA-Z_][a-zA-Z0-9_]*$`), `^@[a-zA-Z_][a-zA-Z0-9_]*$`},
	Global:            {regexp.MustCompile(`^\$[a-zA-Z_][a-zA-Z0-9_]*$`), `^\$[a-zA-Z_][a-zA-Z0-9_]*$`},
	Constant:          {regexp.MustCompile(`^[A-Z][a-zA-Z0-9_]*$`), `^[A-Z][a-zA-Z0-9_]*$`},
	Local:             {regexp.MustCompile(`^[a-z_][a-zA-Z0-9_]*$`), `^[a-z_][a-zA-Z0-9_]*$`},
}

// Kind precedence order for matching (longer sigils first, so that
// "@@total" is a class variable rather than "@" + "@total").
var kindPrecedenceOrder = []Kind{
	TypeAttribute, InstanceAttribute, Global, Constant, Local,
}

// Get the regex pattern for a kind.
func (k Kind) Regex() *regexp.Regexp {
	if regex, ok := kindRegexes[k]; ok {
		return regex.Pattern
	}

	return nil
}

// Get the raw regex string for a kind.
func (k Kind) RawRegex() string {
	if regex, ok := kindRegexes[k]; ok {
		return regex.Raw
	}

	return ""
}

// InvalidNameError indicates a token that matches no scope-kind pattern.
type InvalidNameError struct {
	Token string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid name: %q matches no scope-kind pattern", e.Token)
}

// Classify maps a token to its scope kind by spelling alone.
// It never consults any execution context.
func Classify(token string) (Kind, error) {
	for _, kind := range kindPrecedenceOrder {
		if regex, ok := kindRegexes[kind]; ok {
			if regex.Pattern.MatchString(token) {
				return kind, nil
			}
		}
	}

	return Invalid, &InvalidNameError{Token: token}
}

// MustClassify is Classify for tokens already known to be well formed.
func MustClassify(token string) Kind {
	kind, err := Classify(token)
	if err != nil {
		panic(err)
	}

	return kind
}
