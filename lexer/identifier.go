package lexer

import "regexp"

// identifierRE is deliberately ASCII only: no uppercase, no underscore.
var identifierRE = regexp.MustCompile(`^[a-z][a-z0-9]*$`)

// IsIdentifier reports whether token is a lowercase ASCII letter followed by
// any number of lowercase ASCII letters or digits. The whole token has to
// match.
func IsIdentifier(token string) bool {
	return identifierRE.MatchString(token)
}
