package googlebooks

import (
	"sort"
	"strings"
)

// TermSet accumulates include and exclude terms for a single field scope
// and renders them in the provider's query syntax. A term can never be in
// both sets at once: the most recent Include or Exclude call wins.
type TermSet struct {
	scope   string // empty for the full-text scope
	include map[string]struct{}
	exclude map[string]struct{}
}

func newTermSet(scope string) *TermSet {
	return &TermSet{
		scope:   scope,
		include: make(map[string]struct{}),
		exclude: make(map[string]struct{}),
	}
}

// Include adds search terms to this scope. By default text is split on
// whitespace into independent terms; with exact the whole string becomes
// one quoted phrase.
func (t *TermSet) Include(text string, exact bool) {
	for _, term := range splitTerms(text, exact) {
		t.include[term] = struct{}{}
		delete(t.exclude, term)
	}
}

// Exclude adds negated search terms to this scope, so matching volumes
// will not contain them. Splitting behaves as in Include.
func (t *TermSet) Exclude(text string, exact bool) {
	for _, term := range splitTerms(text, exact) {
		t.exclude[term] = struct{}{}
		delete(t.include, term)
	}
}

func splitTerms(text string, exact bool) []string {
	if exact {
		return []string{`"` + text + `"`}
	}
	return strings.Fields(text)
}

// String renders the scope as +[scope:]term and -[scope:]term tokens with
// no separator. Terms are sorted within each set so output is stable.
func (t *TermSet) String() string {
	var b strings.Builder
	for _, term := range sortedTerms(t.include) {
		t.writeTerm(&b, "+", term)
	}
	for _, term := range sortedTerms(t.exclude) {
		t.writeTerm(&b, "-", term)
	}
	return b.String()
}

func (t *TermSet) writeTerm(b *strings.Builder, prefix, term string) {
	b.WriteString(prefix)
	if t.scope != "" {
		b.WriteString(t.scope)
		b.WriteString(":")
	}
	b.WriteString(term)
}

func sortedTerms(set map[string]struct{}) []string {
	terms := make([]string, 0, len(set))
	for term := range set {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}

// scopeOrder fixes the enumeration order of named scopes in the rendered
// query string.
var scopeOrder = []string{
	"intitle", "inauthor", "inpublisher", "subject", "isbn", "lccn", "oclc",
}

// Query composes a full-text term set with one term set per named field
// scope. The zero value is not usable; create one with NewQuery.
type Query struct {
	main   *TermSet
	scopes map[string]*TermSet
}

// NewQuery creates an empty query. An empty query renders to "" which
// places no constraint on the search.
func NewQuery() *Query {
	scopes := make(map[string]*TermSet, len(scopeOrder))
	for _, scope := range scopeOrder {
		scopes[scope] = newTermSet(scope)
	}
	return &Query{
		main:   newTermSet(""),
		scopes: scopes,
	}
}

// Include adds full-text search terms. See TermSet.Include.
func (q *Query) Include(text string, exact bool) {
	q.main.Include(text, exact)
}

// Exclude adds negated full-text search terms. See TermSet.Exclude.
func (q *Query) Exclude(text string, exact bool) {
	q.main.Exclude(text, exact)
}

// Title scopes terms to book titles.
func (q *Query) Title() *TermSet { return q.scopes["intitle"] }

// Author scopes terms to authors and editors.
func (q *Query) Author() *TermSet { return q.scopes["inauthor"] }

// Publisher scopes terms to publishers.
func (q *Query) Publisher() *TermSet { return q.scopes["inpublisher"] }

// Subject scopes terms to subject categories.
func (q *Query) Subject() *TermSet { return q.scopes["subject"] }

// ISBN scopes terms to ISBN identifiers.
func (q *Query) ISBN() *TermSet { return q.scopes["isbn"] }

// LCCN scopes terms to Library of Congress Control Numbers.
func (q *Query) LCCN() *TermSet { return q.scopes["lccn"] }

// OCLC scopes terms to Online Computer Library Center numbers.
func (q *Query) OCLC() *TermSet { return q.scopes["oclc"] }

// String renders the complete query: the full-text scope first, then each
// named scope in fixed order.
func (q *Query) String() string {
	var b strings.Builder
	b.WriteString(q.main.String())
	for _, scope := range scopeOrder {
		b.WriteString(q.scopes[scope].String())
	}
	return b.String()
}
