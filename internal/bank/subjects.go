package bank

import "strings"

// Builtin subjects, in display order.
const (
	NursingAdministration = "Nursing Administration"
	NursingResearch       = "Nursing Research"
	HumanPhysiology       = "Human Physiology"
	Microbiology          = "Microbiology"
	Sociology             = "Sociology"
	HumanAnatomy          = "Human Anatomy"
	Fundamentals          = "Fundamentals of Nursing"
	MedicalSurgical       = "Medical Surgical Nursing"
	Psychiatric           = "Psychiatric Nursing"
	Pediatric             = "Pediatric Nursing"
	Obstetrics            = "Obstetrics and Gynecology Nursing"
	CommunityHealth       = "Community Health Nursing"
	Nutrition             = "Nutrition"
)

var builtinSubjects = []string{
	NursingAdministration,
	NursingResearch,
	HumanPhysiology,
	Microbiology,
	Sociology,
	HumanAnatomy,
	Fundamentals,
	MedicalSurgical,
	Psychiatric,
	Pediatric,
	Obstetrics,
	CommunityHealth,
	Nutrition,
}

var subjectKeywords = map[string][]string{
	NursingAdministration: {"management", "healthcare", "administration"},
	NursingResearch:       {"research", "statistics", "methodology"},
	HumanPhysiology:       {"biology", "physiology", "anatomy"},
	Microbiology:          {"biology", "microbiology", "infectious_diseases"},
	Sociology:             {"sociology", "social_sciences", "psychology"},
	HumanAnatomy:          {"anatomy", "biology", "medical"},
	Fundamentals:          {"nursing", "healthcare", "medical"},
	MedicalSurgical:       {"surgery", "medical", "nursing"},
	Psychiatric:           {"psychology", "psychiatry", "mental_health"},
	Pediatric:             {"pediatrics", "children", "nursing"},
	Obstetrics:            {"obstetrics", "gynecology", "women_health"},
	CommunityHealth:       {"public_health", "community", "epidemiology"},
	Nutrition:             {"nutrition", "dietetics", "food_science"},
}

// BuiltinSubjects returns the builtin subject list in display order.
func BuiltinSubjects() []string {
	return append([]string(nil), builtinSubjects...)
}

// IsBuiltinSubject reports whether subject ships with seed data.
func IsBuiltinSubject(subject string) bool {
	_, ok := subjectKeywords[subject]
	return ok
}

// Keywords returns the search keywords for subject. Unknown subjects fall
// back to their lowercased name.
func Keywords(subject string) []string {
	if kw, ok := subjectKeywords[subject]; ok {
		return append([]string(nil), kw...)
	}
	return []string{strings.ToLower(subject)}
}
