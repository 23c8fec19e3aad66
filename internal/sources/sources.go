package sources

import (
	"fmt"

	"github.com/ashmilgit15/nursing-mcq-website/internal/llm"
	"github.com/ashmilgit15/nursing-mcq-website/internal/replenish"
)

// Names accepted by Build.
const (
	NameOpenTDB   = "opentdb"
	NameTriviaAPI = "trivia-api"
	NameLLM       = "llm"
)

// DefaultNames is the source list used when none is configured.
var DefaultNames = []string{NameOpenTDB, NameTriviaAPI, NameLLM}

// Deps carries what the individual sources need.
type Deps struct {
	Provider llm.Provider // nil disables the llm source
	LLM      LLMConfig
	Prior    PriorQuestionsFunc
	HTTPOpts []Option
}

// Build instantiates the named sources in order. The llm source is skipped
// silently when no provider is available.
func Build(names []string, deps Deps) ([]replenish.Source, error) {
	out := make([]replenish.Source, 0, len(names))
	for _, name := range names {
		switch name {
		case NameOpenTDB:
			out = append(out, NewOpenTDB(deps.HTTPOpts...))
		case NameTriviaAPI:
			out = append(out, NewTriviaAPI(deps.HTTPOpts...))
		case NameLLM:
			if deps.Provider != nil {
				out = append(out, NewLLM(deps.Provider, deps.LLM, deps.Prior))
			}
		default:
			return nil, fmt.Errorf("unknown question source %q", name)
		}
	}
	return out, nil
}
