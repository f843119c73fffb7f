package mapper

// synonyms holds the fixed per-field header synonym sets. Lookups are on
// normalized headers (trimmed, lowercased, whitespace collapsed).
var synonyms = map[Field]map[string]bool{
	FieldWebsite: set(
		"website", "web site", "site", "url", "website url", "web",
		"domain", "company url", "company website", "homepage", "home page",
		"web address", "link",
	),
	FieldEmail: set(
		"email", "e-mail", "email address", "e-mail address", "mail",
		"contact email", "work email", "business email",
	),
	FieldName: set(
		"name", "first name", "full name", "contact", "contact name",
		"first", "owner", "owner name", "person", "lead name",
	),
	FieldCompany: set(
		"company", "company name", "business", "business name",
		"organization", "organisation", "account", "account name", "firm",
	),
	FieldLinkedIn: set(
		"linkedin", "linkedin url", "linkedin profile", "linkedin link",
		"li profile", "li url",
	),
}

func set(keys ...string) map[string]bool {
	m := make(map[string]bool, len(keys))
	for _, k := range keys {
		m[k] = true
	}
	return m
}
