package store

import "strings"

// Escape is appended to every LIKE predicate built from ContainsPattern.
const Escape = ` ESCAPE '\'`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern turns user input into a LIKE pattern that matches it as a
// literal substring. The predicate must declare Escape.
func ContainsPattern(q string) string {
	return "%" + likeEscaper.Replace(q) + "%"
}
