package postgres

import "strings"

// likeEscaper neutralizes the LIKE/ILIKE metacharacters so a search term
// matches literally. Backslash is Postgres's default escape character.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes \, % and _ in a term destined for a LIKE/ILIKE pattern.
func EscapeLike(term string) string {
	return likeEscaper.Replace(term)
}
