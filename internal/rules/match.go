package rules

import (
	"regexp"
	"sort"

	"github.com/mvisser/banknote/internal/record"
)

// Matcher is a compiled configuration ready for matching. Compiling once up
// front surfaces invalid patterns as a configuration error instead of a
// per-record failure.
type Matcher struct {
	categories []compiledCategory
}

type compiledCategory struct {
	name  string
	rules []compiledRule
}

// compiledRule is a conjunction: every condition must match.
type compiledRule []condition

type condition struct {
	field string
	re    *regexp.Regexp
}

// Compile validates and compiles every pattern in the configuration. The
// first invalid pattern is reported as an InvalidRulePatternError.
func Compile(cfg Config) (*Matcher, error) {
	m := &Matcher{categories: make([]compiledCategory, 0, len(cfg.Categories))}

	for _, cat := range cfg.Categories {
		cc := compiledCategory{name: cat.Name, rules: make([]compiledRule, 0, len(cat.Rules))}

		for _, rule := range cat.Rules {
			// Map iteration order is random; fix the field order so
			// compile errors are deterministic.
			fields := make([]string, 0, len(rule))
			for field := range rule {
				fields = append(fields, field)
			}

			sort.Strings(fields)

			cr := make(compiledRule, 0, len(rule))

			for _, field := range fields {
				pattern := rule[field]

				re, err := regexp.Compile(pattern)
				if err != nil {
					return nil, &InvalidRulePatternError{
						Category: cat.Name,
						Field:    field,
						Pattern:  pattern,
						Err:      err,
					}
				}

				cr = append(cr, condition{field: field, re: re})
			}

			cc.rules = append(cc.rules, cr)
		}

		m.categories = append(m.categories, cc)
	}

	return m, nil
}

// Match returns the name of the first category, in configuration order,
// with a rule whose every condition matches the record. Matching
// short-circuits: once a category claims the record no further categories
// are consulted, so a record matching rules in two categories files under
// whichever was declared first. The second return is false when no rule in
// any category matches.
func (m *Matcher) Match(r record.Record) (string, bool) {
	for _, cat := range m.categories {
		for _, rule := range cat.rules {
			if rule.matches(r) {
				return cat.name, true
			}
		}
	}

	return "", false
}

// matches reports whether every condition holds. A rule with no conditions
// is vacuously true and claims every record.
func (cr compiledRule) matches(r record.Record) bool {
	for _, cond := range cr {
		if !cond.re.MatchString(r.Field(cond.field)) {
			return false
		}
	}

	return true
}
