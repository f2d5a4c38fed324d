package repository

import "strings"

// orderClause maps a DRF-style ordering param ("likes", "-timestamp") onto a column
// from allowed. Unknown fields fall back to def.
func orderClause(ordering string, allowed map[string]string, def string) string {
	ordering = strings.TrimSpace(ordering)
	if ordering == "" {
		return def
	}
	desc := strings.HasPrefix(ordering, "-")
	column, ok := allowed[strings.TrimPrefix(ordering, "-")]
	if !ok {
		return def
	}
	if desc {
		return column + " DESC"
	}
	return column + " ASC"
}

func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.TrimSpace(s)) + "%"
}
