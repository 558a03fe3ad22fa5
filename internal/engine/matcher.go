package engine

import (
	"sort"
	"strings"
)

// FillPlan is the resolved mapping from a form's field identifiers to
// concrete values, plus coverage counters.
// Invariant: FieldsFilled + len(Unfilled) == TotalFields.
type FillPlan struct {
	Values       map[string]string `json:"values"`
	FieldsFilled int               `json:"fields_filled"`
	TotalFields  int               `json:"total_fields"`
	Unfilled     []string          `json:"unfilled"`
}

// synonymGroups is the fixed fallback table: canonical profile key -> the
// normalized identifier spellings that resolve to it. Groups must stay
// mutually exclusive (no spelling in two groups), checked by test.
var synonymGroups = map[string][]string{
	"first_name":         {"fname", "firstname", "givenname"},
	"last_name":          {"lname", "surname", "lastname", "familyname"},
	"full_name":          {"name", "fullname", "yourname"},
	"email":              {"email", "mail", "emailaddress"},
	"phone":              {"phone", "tel", "mobile", "phonenumber", "telephone"},
	"address":            {"address", "street", "streetaddress"},
	"city":               {"city", "town"},
	"state":              {"state", "province", "region"},
	"zip_code":           {"zip", "zipcode", "postal", "postalcode"},
	"country":            {"country", "nation"},
	"linkedin_url":       {"linkedin", "linkedinurl", "linkedinprofile"},
	"portfolio_url":      {"portfolio", "website", "portfoliourl", "personalwebsite"},
	"github_url":         {"github", "githuburl"},
	"current_company":    {"company", "currentcompany", "employer"},
	"current_title":      {"title", "currenttitle", "jobtitle", "role"},
	"years_experience":   {"experience", "yearsexperience", "yearsofexperience", "yoe"},
	"salary_expectation": {"salary", "salaryexpectation", "desiredsalary", "expectedsalary"},
	"cover_letter":       {"coverletter", "whyus", "motivation"},
}

// synonymIndex inverts synonymGroups for O(1) lookups. Built once at process
// start, read-only afterwards.
var synonymIndex = buildSynonymIndex()

func buildSynonymIndex() map[string]string {
	idx := make(map[string]string)
	for key, spellings := range synonymGroups {
		for _, s := range spellings {
			idx[s] = key
		}
	}
	return idx
}

// CanonicalKeys lists the profile field keys the fallback table knows about.
func CanonicalKeys() []string {
	keys := make([]string, 0, len(synonymGroups))
	for key := range synonymGroups {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// NormalizeIdentifier lowercases an identifier and strips everything that is
// not a letter or digit, so "#First-Name" and "first_name" compare equal.
func NormalizeIdentifier(identifier string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(identifier) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Resolve builds a fill-plan for the given form field identifiers.
// templateFields override profileFields for the same key; an explicit
// mapping entry always wins over the fallback synonym table. Identifiers
// that resolve to no known value are left unfilled, never an error.
// Pure function: no side effects, identical inputs give identical plans.
func Resolve(formFields []string, templateFields, profileFields map[string]string, fieldMappings map[string]string) FillPlan {
	plan := FillPlan{
		Values:      make(map[string]string),
		TotalFields: len(formFields),
		Unfilled:    []string{},
	}

	for _, identifier := range formFields {
		key, mapped := "", false
		if fieldMappings != nil {
			key, mapped = fieldMappings[identifier]
		}
		if !mapped {
			// fallback heuristic: first exact synonym-set match wins
			key, mapped = synonymIndex[NormalizeIdentifier(identifier)]
		}

		if mapped {
			if value, ok := lookupValue(key, templateFields, profileFields); ok {
				plan.Values[identifier] = value
				plan.FieldsFilled++
				continue
			}
		}
		plan.Unfilled = append(plan.Unfilled, identifier)
	}

	return plan
}

// lookupValue resolves a profile field key: template first, profile second.
func lookupValue(key string, templateFields, profileFields map[string]string) (string, bool) {
	if v, ok := templateFields[key]; ok && v != "" {
		return v, true
	}
	if v, ok := profileFields[key]; ok && v != "" {
		return v, true
	}
	return "", false
}
