package assistant

// Category is one of the fixed topic buckets a message is routed to
type Category string

const (
	CategoryGreeting  Category = "greeting"
	CategorySymptoms  Category = "symptoms"
	CategoryTreatment Category = "treatment"
	CategoryCoping    Category = "coping"
	CategoryResources Category = "resources"
	CategoryGeneral   Category = "general"
)

var categories = []Category{
	CategoryGreeting,
	CategorySymptoms,
	CategoryTreatment,
	CategoryCoping,
	CategoryResources,
	CategoryGeneral,
}

// Categories returns every category in rule order, general last
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	_, ok := responses[c]
	return ok
}

// NeedsDisclaimer reports whether replies in this category carry the medical disclaimer
func (c Category) NeedsDisclaimer() bool {
	return c == CategorySymptoms || c == CategoryTreatment
}
