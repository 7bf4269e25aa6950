package assistant

import "strings"

// rule routes a normalized message to a category when match reports true
type rule struct {
	category Category
	match    func(normalized string) bool
}

// rules are evaluated in order and the first match wins. Anything that falls
// through every rule is general.
var rules = []rule{
	{CategoryGreeting, func(s string) bool {
		return containsAny(s, "hello", "hi", "greetings") || strings.HasPrefix(s, "hey")
	}},
	{CategorySymptoms, keywords("symptom", "sign", "feel", "experiencing")},
	{CategoryTreatment, keywords("treatment", "therapy", "medication", "doctor", "help me")},
	{CategoryCoping, keywords("cope", "manage", "deal with", "handle", "strategy")},
	{CategoryResources, keywords("resource", "website", "book", "contact", "hotline", "where can i")},
}

// Classify maps a user message to its topic category. Matching is plain
// substring containment on the lower-cased message, so "this" counts as "hi".
func Classify(message string) Category {
	normalized := normalize(message)

	for _, r := range rules {
		if r.match(normalized) {
			return r.category
		}
	}

	return CategoryGeneral
}

func normalize(message string) string {
	return strings.ToLower(message)
}

func keywords(triggers ...string) func(string) bool {
	return func(s string) bool {
		return containsAny(s, triggers...)
	}
}

func containsAny(s string, triggers ...string) bool {
	for _, t := range triggers {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
