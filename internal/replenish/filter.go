package replenish

import (
	"strings"

	"github.com/ashmilgit15/nursing-mcq-website/internal/bank"
)

// DefaultGeneralKeywords mark a question as health related regardless of
// subject.
var DefaultGeneralKeywords = []string{
	"nurse", "nursing", "patient", "health", "medical", "medicine",
	"clinical", "hospital", "disease", "infection", "symptom", "treatment",
	"therapy", "drug", "blood", "organ", "vitamin", "human body",
}

// DefaultExclusionKeywords reject entertainment trivia that slips through
// broad source categories.
var DefaultExclusionKeywords = []string{
	"video game", "movie", "film", "celebrity", "album", "song", "rock band",
	"anime", "cartoon", "pokemon", "tv show", "television", "football",
	"soccer", "cricket",
}

// Filter decides whether candidate text is relevant to a subject.
type Filter struct {
	General []string
	Exclude []string
}

// DefaultFilter returns a Filter using the default keyword sets.
func DefaultFilter() Filter {
	return Filter{General: DefaultGeneralKeywords, Exclude: DefaultExclusionKeywords}
}

// Accept reports whether text matches a subject or general keyword and no
// exclusion keyword. Keywords match case-insensitively as substrings, with
// underscores read as spaces.
func (f Filter) Accept(subject, text string) bool {
	t := strings.ToLower(text)

	if containsAny(t, f.Exclude) {
		return false
	}
	return containsAny(t, bank.Keywords(subject)) || containsAny(t, f.General)
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		kw = strings.ToLower(strings.ReplaceAll(kw, "_", " "))
		if kw != "" && strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
