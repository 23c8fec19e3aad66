package replenish

import "github.com/ashmilgit15/nursing-mcq-website/internal/bank"

var fallbackTemplates = map[string][]bank.Question{
	bank.NursingAdministration: {
		{Text: "What is the primary goal of nursing leadership?", Options: []string{"Cost reduction", "Quality patient care", "Staff satisfaction", "Efficiency"}, CorrectIndex: 1},
		{Text: "Which leadership style involves shared decision-making?", Options: []string{"Autocratic", "Democratic", "Laissez-faire", "Bureaucratic"}, CorrectIndex: 1},
	},
	bank.NursingResearch: {
		{Text: "What does a p-value of 0.05 indicate?", Options: []string{"5% chance of Type I error", "95% confidence", "Significant result", "All of the above"}, CorrectIndex: 3},
		{Text: "A sample chosen so every member of the population has an equal chance is a", Options: []string{"Convenience sample", "Random sample", "Quota sample", "Snowball sample"}, CorrectIndex: 1},
	},
	bank.HumanPhysiology: {
		{Text: "What is the normal resting heart rate range?", Options: []string{"40-60 bpm", "60-100 bpm", "100-120 bpm", "120-140 bpm"}, CorrectIndex: 1},
		{Text: "Which organ produces bile?", Options: []string{"Gallbladder", "Pancreas", "Liver", "Spleen"}, CorrectIndex: 2},
	},
	bank.Microbiology: {
		{Text: "Which organism is gram-positive?", Options: []string{"E. coli", "Staphylococcus aureus", "Pseudomonas", "Salmonella"}, CorrectIndex: 1},
		{Text: "Which microorganism causes malaria?", Options: []string{"Bacterium", "Virus", "Protozoan", "Fungus"}, CorrectIndex: 2},
	},
	bank.Sociology: {
		{Text: "What are social determinants of health?", Options: []string{"Genetic factors", "Environmental and social factors", "Medical treatments", "Individual choices"}, CorrectIndex: 1},
	},
	bank.HumanAnatomy: {
		{Text: "Which bone protects the brain?", Options: []string{"Sternum", "Cranium", "Pelvis", "Scapula"}, CorrectIndex: 1},
	},
	bank.Fundamentals: {
		{Text: "The normal adult body temperature is approximately", Options: []string{"35.0 C", "37.0 C", "38.5 C", "39.0 C"}, CorrectIndex: 1},
	},
	bank.MedicalSurgical: {
		{Text: "A patient after surgery should be encouraged to use an incentive spirometer to prevent", Options: []string{"Atelectasis", "Hypertension", "Urinary retention", "Constipation"}, CorrectIndex: 0},
	},
	bank.Psychiatric: {
		{Text: "Which neurotransmitter is most associated with depression?", Options: []string{"Acetylcholine", "Serotonin", "Histamine", "Glycine"}, CorrectIndex: 1},
	},
	bank.Pediatric: {
		{Text: "A child usually begins walking independently at about", Options: []string{"6 months", "12 months", "24 months", "30 months"}, CorrectIndex: 1},
	},
	bank.Obstetrics: {
		{Text: "Quickening is first felt by a primigravida at about", Options: []string{"10 weeks", "18-20 weeks", "28 weeks", "36 weeks"}, CorrectIndex: 1},
	},
	bank.CommunityHealth: {
		{Text: "Which level of prevention is rehabilitation?", Options: []string{"Primordial", "Primary", "Secondary", "Tertiary"}, CorrectIndex: 3},
	},
	bank.Nutrition: {
		{Text: "Night blindness is caused by deficiency of", Options: []string{"Vitamin A", "Vitamin B12", "Vitamin D", "Vitamin K"}, CorrectIndex: 0},
	},
}

// Fallback returns up to limit builtin fallback questions for subject.
// Subjects without templates yield nil.
func Fallback(subject string, limit int) []bank.Question {
	templates := fallbackTemplates[subject]
	if limit >= 0 && len(templates) > limit {
		templates = templates[:limit]
	}
	if len(templates) == 0 {
		return nil
	}

	out := make([]bank.Question, len(templates))
	for i, t := range templates {
		t = t.Clone()
		t.Source = bank.SourceFallback
		out[i] = t
	}
	return out
}
