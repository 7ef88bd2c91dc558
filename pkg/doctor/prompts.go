package doctor

import (
	"encoding/json"
	"fmt"
	"strings"

	"baristabox-be/internal/mapper"
)

const (
	ApologyMessage        = "I'm having a little trouble communicating right now. Please try again."
	ExhaustedMessage      = "Hmm, I've gone through the common causes and couldn't find a match. It might be a more complex issue."
	UnknownProblemMessage = "I'm sorry, I don't know how to troubleshoot that problem yet. Could you describe what's wrong with your coffee in a different way?"
	LostTrackMessage      = "I seem to have lost my train of thought. Let's start over. What's the problem with your coffee?"
)

const askBeanPrompt = "You are 'The Coffee Doctor.' Start a diagnosis for a user by first asking what coffee bean they are brewing. Explain that this will help you give a more precise diagnosis."

const askMethodPrompt = "You are 'The Coffee Doctor.' Ask the user what brew method they are using."

func askQuestionPrompt(question string) string {
	return "You are 'The Coffee Doctor.' Ask the user the following diagnostic question clearly and concisely. Do not add extra greetings." +
		fmt.Sprintf("\nThe question to ask is: \"%s\"", question)
}

func interpretationPrompt(question, answer string) string {
	return fmt.Sprintf(`Analyze the user's response in the context of the question that was asked.
Question: "%s"
User's response: "%s"
Is the user confirming the premise of the question? Respond with ONLY one word: affirmative, negative, or unsure.`, question, answer)
}

func solutionPrompt(state State, solution string) string {
	bean := state.BeanName
	if bean == "" {
		bean = "this coffee"
	}
	method := state.BrewMethod
	if method == "" {
		method = "their brewer"
	}
	recipeContext := fmt.Sprintf("Context: User is brewing '%s' with a '%s'.", bean, method)
	if state.IdealRecipe != nil {
		if raw, err := json.Marshal(mapper.NewRecipeMapper().ToModel(state.IdealRecipe)); err == nil {
			recipeContext += " The ideal recipe is: " + string(raw)
		}
	}
	return fmt.Sprintf(`You are 'The Coffee Doctor.' The diagnosis is confirmed. Start with "Great, I think we've found the issue!".
Then, explain the following solution in a helpful and encouraging way.
Use the provided context to make your explanation more specific and tailored to the user's situation.

%s

The solution to explain is:
"%s"`, recipeContext, solution)
}

// Verdict is the interpreted meaning of a free-text answer.
type Verdict string

const (
	VerdictAffirmative Verdict = "affirmative"
	VerdictNegative    Verdict = "negative"
	VerdictUnsure      Verdict = "unsure"
	VerdictUnknown     Verdict = "unknown"
)

// ParseVerdict reads the generator's one-word classification. Only an
// affirmative verdict confirms a cause; everything else moves on.
func ParseVerdict(raw string) Verdict {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(s, string(VerdictAffirmative)):
		return VerdictAffirmative
	case strings.Contains(s, string(VerdictNegative)):
		return VerdictNegative
	case strings.Contains(s, string(VerdictUnsure)):
		return VerdictUnsure
	}
	return VerdictUnknown
}

func cleanPhrase(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), `"`, "")
}
