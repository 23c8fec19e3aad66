package bank

// seedData is the built-in question set every subject resets to.
var seedData = map[string][]Question{
	NursingAdministration: {
		{
			Text:         "Which management function involves setting goals and deciding how to achieve them?",
			Options:      []string{"Organizing", "Planning", "Directing", "Controlling"},
			CorrectIndex: 1,
			Explanation:  "Planning is the first management function: it sets objectives and the course of action to reach them.",
		},
		{
			Text:         "A nurse manager who lets staff make most decisions with little guidance uses which leadership style?",
			Options:      []string{"Autocratic", "Democratic", "Laissez-faire", "Transactional"},
			CorrectIndex: 2,
			Explanation:  "Laissez-faire leaders delegate nearly all decision-making to the group.",
		},
		{
			Text:         "Delegation of a task to unlicensed staff keeps which responsibility with the registered nurse?",
			Options:      []string{"None after handover", "Accountability for the outcome", "Only documentation", "Only the assessment of equipment"},
			CorrectIndex: 1,
			Explanation:  "The RN may delegate tasks but retains accountability for the delegated care.",
		},
	},
	NursingResearch: {
		{
			Text:         "Which research design provides the strongest evidence for cause and effect?",
			Options:      []string{"Case study", "Correlational study", "Randomized controlled trial", "Descriptive survey"},
			CorrectIndex: 2,
			Explanation:  "Randomization and control groups in an RCT minimize bias, supporting causal inference.",
		},
		{
			Text:         "Informed consent in research primarily protects which ethical principle?",
			Options:      []string{"Beneficence", "Autonomy", "Justice", "Fidelity"},
			CorrectIndex: 1,
			Explanation:  "Informed consent respects the participant's right to self-determination.",
		},
		{
			Text:         "The variable that the researcher manipulates is called the",
			Options:      []string{"Dependent variable", "Extraneous variable", "Independent variable", "Confounding variable"},
			CorrectIndex: 2,
			Explanation:  "The independent variable is manipulated to observe its effect on the dependent variable.",
		},
	},
	HumanPhysiology: {
		{
			Text:         "Which hormone lowers blood glucose levels?",
			Options:      []string{"Glucagon", "Insulin", "Cortisol", "Epinephrine"},
			CorrectIndex: 1,
			Explanation:  "Insulin promotes glucose uptake by cells and glycogen synthesis.",
		},
		{
			Text:         "Where does gas exchange take place in the lungs?",
			Options:      []string{"Bronchi", "Trachea", "Alveoli", "Bronchioles"},
			CorrectIndex: 2,
			Explanation:  "Oxygen and carbon dioxide diffuse across the thin alveolar-capillary membrane.",
		},
		{
			Text:         "The pacemaker of the heart is the",
			Options:      []string{"AV node", "SA node", "Bundle of His", "Purkinje fibers"},
			CorrectIndex: 1,
			Explanation:  "The sinoatrial node initiates each normal heartbeat.",
		},
	},
	Microbiology: {
		{
			Text:         "Which of these is the most effective way to prevent the spread of infection in hospitals?",
			Options:      []string{"Wearing masks at all times", "Hand hygiene", "Antibiotic prophylaxis", "Isolation of all patients"},
			CorrectIndex: 1,
			Explanation:  "Hand hygiene is the single most important measure against healthcare-associated infections.",
		},
		{
			Text:         "Tuberculosis is caused by which organism?",
			Options:      []string{"Mycobacterium tuberculosis", "Streptococcus pneumoniae", "Clostridium tetani", "Candida albicans"},
			CorrectIndex: 0,
			Explanation:  "Mycobacterium tuberculosis is an acid-fast bacillus transmitted by airborne droplets.",
		},
		{
			Text:         "Sterilization by autoclave uses",
			Options:      []string{"Dry heat", "Ethylene oxide", "Steam under pressure", "Ultraviolet light"},
			CorrectIndex: 2,
			Explanation:  "Autoclaves use saturated steam under pressure, typically 121 degrees Celsius.",
		},
	},
	Sociology: {
		{
			Text:         "A group of people sharing a common culture and territory is called a",
			Options:      []string{"Community", "Crowd", "Mob", "Audience"},
			CorrectIndex: 0,
			Explanation:  "A community shares territory, culture and a sense of belonging.",
		},
		{
			Text:         "The process by which individuals learn the norms of their society is",
			Options:      []string{"Acculturation", "Socialization", "Assimilation", "Stratification"},
			CorrectIndex: 1,
			Explanation:  "Socialization transmits norms and values, starting in the family.",
		},
		{
			Text:         "Which family type consists of parents and their unmarried children only?",
			Options:      []string{"Joint family", "Extended family", "Nuclear family", "Blended family"},
			CorrectIndex: 2,
			Explanation:  "A nuclear family is made up of two generations living together.",
		},
	},
	HumanAnatomy: {
		{
			Text:         "How many bones are in the adult human body?",
			Options:      []string{"186", "206", "226", "246"},
			CorrectIndex: 1,
			Explanation:  "The adult skeleton has 206 bones after fusion of several childhood bones.",
		},
		{
			Text:         "The longest bone in the human body is the",
			Options:      []string{"Tibia", "Humerus", "Femur", "Fibula"},
			CorrectIndex: 2,
			Explanation:  "The femur in the thigh is the longest and strongest bone.",
		},
		{
			Text:         "Which chamber of the heart pumps blood into the aorta?",
			Options:      []string{"Right atrium", "Right ventricle", "Left atrium", "Left ventricle"},
			CorrectIndex: 3,
			Explanation:  "The left ventricle ejects oxygenated blood into systemic circulation through the aorta.",
		},
	},
	Fundamentals: {
		{
			Text:         "What is the first step of the nursing process?",
			Options:      []string{"Planning", "Diagnosis", "Assessment", "Evaluation"},
			CorrectIndex: 2,
			Explanation:  "Assessment gathers the data every later step depends on.",
		},
		{
			Text:         "The normal adult respiratory rate is",
			Options:      []string{"8-10 breaths/min", "12-20 breaths/min", "22-28 breaths/min", "30-40 breaths/min"},
			CorrectIndex: 1,
			Explanation:  "A resting adult breathes 12 to 20 times per minute.",
		},
		{
			Text:         "Which position is best for a patient with dyspnea?",
			Options:      []string{"Supine", "Prone", "High Fowler's", "Trendelenburg"},
			CorrectIndex: 2,
			Explanation:  "High Fowler's lets the diaphragm descend and eases breathing.",
		},
	},
	MedicalSurgical: {
		{
			Text:         "An early sign of hypovolemic shock is",
			Options:      []string{"Bradycardia", "Tachycardia", "Hypertension", "Warm dry skin"},
			CorrectIndex: 1,
			Explanation:  "Compensatory tachycardia appears before blood pressure falls.",
		},
		{
			Text:         "Before surgery, a patient is kept NPO mainly to prevent",
			Options:      []string{"Infection", "Aspiration", "Dehydration", "Hypoglycemia"},
			CorrectIndex: 1,
			Explanation:  "An empty stomach reduces the risk of aspirating gastric contents under anesthesia.",
		},
		{
			Text:         "Which finding suggests a deep vein thrombosis?",
			Options:      []string{"Calf pain with swelling and warmth", "Bilateral pedal pulses", "Cool pale toes", "Capillary refill under 2 seconds"},
			CorrectIndex: 0,
			Explanation:  "Unilateral calf pain, swelling and warmth are classic DVT findings.",
		},
	},
	Psychiatric: {
		{
			Text:         "A false fixed belief not based on reality is a",
			Options:      []string{"Hallucination", "Illusion", "Delusion", "Obsession"},
			CorrectIndex: 2,
			Explanation:  "Delusions are fixed false beliefs that persist despite evidence.",
		},
		{
			Text:         "Lithium toxicity is most likely when serum levels exceed",
			Options:      []string{"0.5 mEq/L", "1.0 mEq/L", "1.5 mEq/L", "0.2 mEq/L"},
			CorrectIndex: 2,
			Explanation:  "Levels above 1.5 mEq/L are associated with toxicity.",
		},
		{
			Text:         "The priority nursing action for a patient expressing suicidal intent is",
			Options:      []string{"Ensure safety", "Teach coping skills", "Schedule therapy", "Encourage journaling"},
			CorrectIndex: 0,
			Explanation:  "Patient safety comes first when suicide risk is present.",
		},
	},
	Pediatric: {
		{
			Text:         "At what age does an infant typically double the birth weight?",
			Options:      []string{"2 months", "5 months", "9 months", "12 months"},
			CorrectIndex: 1,
			Explanation:  "Birth weight doubles around 5 months and triples by 12 months.",
		},
		{
			Text:         "The anterior fontanelle usually closes by",
			Options:      []string{"2-3 months", "6-8 months", "12-18 months", "3 years"},
			CorrectIndex: 2,
			Explanation:  "The anterior fontanelle closes between 12 and 18 months.",
		},
		{
			Text:         "Which vaccine is given at birth?",
			Options:      []string{"MMR", "BCG", "Varicella", "DPT booster"},
			CorrectIndex: 1,
			Explanation:  "BCG is given at birth in many national immunization schedules.",
		},
	},
	Obstetrics: {
		{
			Text:         "Normal duration of pregnancy is about",
			Options:      []string{"240 days", "280 days", "300 days", "320 days"},
			CorrectIndex: 1,
			Explanation:  "Pregnancy lasts about 280 days or 40 weeks from the last menstrual period.",
		},
		{
			Text:         "Painless vaginal bleeding in the third trimester suggests",
			Options:      []string{"Abruptio placentae", "Placenta previa", "Ectopic pregnancy", "Hydatidiform mole"},
			CorrectIndex: 1,
			Explanation:  "Placenta previa classically presents with painless bright red bleeding.",
		},
		{
			Text:         "The APGAR score is assessed at",
			Options:      []string{"1 and 5 minutes after birth", "10 and 20 minutes after birth", "Only at birth", "24 hours after birth"},
			CorrectIndex: 0,
			Explanation:  "APGAR is scored at 1 and 5 minutes, repeated at 10 if low.",
		},
	},
	CommunityHealth: {
		{
			Text:         "Primary prevention includes",
			Options:      []string{"Screening for cancer", "Immunization", "Rehabilitation", "Treating hypertension"},
			CorrectIndex: 1,
			Explanation:  "Primary prevention stops disease before it occurs, as immunization does.",
		},
		{
			Text:         "The number of new cases in a population over a period is the",
			Options:      []string{"Prevalence", "Incidence", "Mortality rate", "Attack rate"},
			CorrectIndex: 1,
			Explanation:  "Incidence counts new cases; prevalence counts all existing cases.",
		},
		{
			Text:         "Oral rehydration solution is mainly used to treat",
			Options:      []string{"Malaria", "Dehydration from diarrhea", "Anemia", "Scurvy"},
			CorrectIndex: 1,
			Explanation:  "ORS replaces fluid and electrolytes lost in diarrhea.",
		},
	},
	Nutrition: {
		{
			Text:         "Deficiency of vitamin C causes",
			Options:      []string{"Rickets", "Scurvy", "Beriberi", "Pellagra"},
			CorrectIndex: 1,
			Explanation:  "Vitamin C is needed for collagen synthesis; deficiency causes scurvy.",
		},
		{
			Text:         "Which nutrient provides the most energy per gram?",
			Options:      []string{"Carbohydrate", "Protein", "Fat", "Fiber"},
			CorrectIndex: 2,
			Explanation:  "Fat yields about 9 kcal per gram compared with 4 for carbohydrate and protein.",
		},
		{
			Text:         "Iron is best absorbed when taken with",
			Options:      []string{"Milk", "Tea", "Orange juice", "Antacids"},
			CorrectIndex: 2,
			Explanation:  "Vitamin C in orange juice enhances non-heme iron absorption.",
		},
	},
}

// Builtin returns a deep copy of the seed set, keyed by subject, with every
// question marked as builtin.
func Builtin() map[string][]Question {
	out := make(map[string][]Question, len(seedData))
	for subject := range seedData {
		out[subject] = builtinFor(subject)
	}
	return out
}

func builtinFor(subject string) []Question {
	seeds := seedData[subject]
	out := make([]Question, len(seeds))
	for i, q := range seeds {
		q = q.Clone()
		q.Source = SourceBuiltin
		out[i] = q
	}
	return out
}
