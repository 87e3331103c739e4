// Package filter turns optional list query parameters into SQL predicates.
// Every active filter is a case-insensitive substring match; active filters are ANDed.
// Predicates use '?' placeholders and are rebound by the repository for its driver.
package filter

import (
	"net/url"
	"strings"
)

// Conditions is an ordered list of predicates joined with AND.
type Conditions struct {
	clauses []string
	args    []any
}

func (c Conditions) And(clause string, args ...any) Conditions {
	return Conditions{
		clauses: append(append([]string(nil), c.clauses...), clause),
		args:    append(append([]any(nil), c.args...), args...),
	}
}

func (c Conditions) Merge(other Conditions) Conditions {
	return Conditions{
		clauses: append(append([]string(nil), c.clauses...), other.clauses...),
		args:    append(append([]any(nil), c.args...), other.args...),
	}
}

func (c Conditions) Empty() bool {
	return len(c.clauses) == 0
}

// Where renders " WHERE a AND b", or "" with no conditions.
func (c Conditions) Where() (string, []any) {
	if c.Empty() {
		return "", nil
	}
	return " WHERE " + strings.Join(c.clauses, " AND "), c.args
}

type ProfileFilter struct {
	Name    string
	Country string
	City    string
}

func ProfileFromQuery(q url.Values) ProfileFilter {
	return ProfileFilter{
		Name:    q.Get("name"),
		Country: q.Get("country"),
		City:    q.Get("city"),
	}
}

// Conditions expects profiles aliased as p and users as u.
func (f ProfileFilter) Conditions() Conditions {
	var c Conditions

	if f.Name != "" {
		pattern := Contains(f.Name)
		c = c.And("(u.first_name ILIKE ? OR u.last_name ILIKE ?)", pattern, pattern)
	}
	if f.Country != "" {
		c = c.And("p.country ILIKE ?", Contains(f.Country))
	}
	if f.City != "" {
		c = c.And("p.city ILIKE ?", Contains(f.City))
	}

	return c
}

type PostFilter struct {
	Title   string
	Hashtag string
}

func PostFromQuery(q url.Values) PostFilter {
	return PostFilter{
		Title:   q.Get("title"),
		Hashtag: q.Get("hashtag"),
	}
}

// Conditions expects posts aliased as p.
func (f PostFilter) Conditions() Conditions {
	var c Conditions

	if f.Title != "" {
		c = c.And("p.title ILIKE ?", Contains(f.Title))
	}
	if f.Hashtag != "" {
		c = c.And("p.content ILIKE ?", Contains(NormalizeHashtag(f.Hashtag)))
	}

	return c
}

// NormalizeHashtag makes "test" and "#test" equivalent.
func NormalizeHashtag(tag string) string {
	if strings.HasPrefix(tag, "#") {
		return tag
	}
	return "#" + tag
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Contains builds an ILIKE pattern matching s literally anywhere in the column.
func Contains(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
