// Package doctor runs the multi-turn troubleshooting conversation: gather
// the bean and brew method, look up the ideal recipe, then walk the
// problem's causes one question at a time until the user confirms one.
package doctor

import (
	"context"

	"baristabox-be/internal/entity"
	"baristabox-be/internal/pkg/logger"
	"baristabox-be/internal/repository/unitofwork"
	"baristabox-be/pkg/llm"
)

const module = "DoctorEngine"

type Engine struct {
	uowFactory  unitofwork.RepositoryFactory
	llmProvider llm.LLMProvider
	logger      logger.ILogger
}

func NewEngine(uowFactory unitofwork.RepositoryFactory, llmProvider llm.LLMProvider, logger logger.ILogger) *Engine {
	return &Engine{
		uowFactory:  uowFactory,
		llmProvider: llmProvider,
		logger:      logger,
	}
}

// Start begins a diagnosis for problem. An unknown problem, a store error
// or a generator error all leave the caller without a state.
func (e *Engine) Start(ctx context.Context, problem, rawQuery string) Reply {
	p, err := e.uowFactory.NewUnitOfWork(ctx).ProblemRepository().FindOne(ctx, problem)
	if err != nil {
		e.logger.Error(module, "Failed to load problem", map[string]interface{}{"problem": problem, "error": err.Error()})
		return Reply{Text: ApologyMessage, Outcome: OutcomeFailed}
	}
	if p == nil {
		e.logger.Warn(module, "Unknown problem key", map[string]interface{}{"problem": problem})
		return Reply{Text: UnknownProblemMessage, Outcome: OutcomeUnknownProblem}
	}

	text, err := e.phrase(ctx, askBeanPrompt)
	if err != nil {
		return Reply{Text: ApologyMessage, Outcome: OutcomeFailed}
	}

	e.logger.Info(module, "Starting diagnosis flow", map[string]interface{}{"problem": problem})
	return Reply{
		Text: text,
		State: &State{
			Stage:         StageGatheringBean,
			Problem:       p.Key,
			OriginalQuery: rawQuery,
		},
		Outcome: OutcomeAsking,
	}
}

// Step performs exactly one transition from current. On a generator error
// the returned state equals current so the caller can retry the turn.
func (e *Engine) Step(ctx context.Context, current State, userText string) Reply {
	switch current.Stage {
	case StageGatheringBean:
		next := current.Clone()
		next.BeanName = userText
		next.Stage = StageGatheringMethod

		text, err := e.phrase(ctx, askMethodPrompt)
		if err != nil {
			return e.failed(current)
		}
		e.logger.Debug(module, "Context gathered", map[string]interface{}{"bean_name": userText})
		return Reply{Text: text, State: &next, Outcome: OutcomeAsking}

	case StageGatheringMethod:
		next := current.Clone()
		next.BrewMethod = userText
		next.Stage = StageDiagnosing

		recipe, err := e.ResolveRecipe(ctx, next.BeanName, next.BrewMethod)
		if err != nil {
			e.logger.Error(module, "Recipe resolution failed", map[string]interface{}{"error": err.Error()})
			return e.failed(current)
		}
		next.IdealRecipe = recipe

		problem, err := e.uowFactory.NewUnitOfWork(ctx).ProblemRepository().FindOne(ctx, next.Problem)
		if err != nil {
			e.logger.Error(module, "Failed to load problem", map[string]interface{}{"problem": next.Problem, "error": err.Error()})
			return e.failed(current)
		}
		if problem != nil {
			next.CauseKeys = problem.CauseKeys()
		}
		next.CauseCursor = 0
		return e.askNext(ctx, current, next)

	case StageDiagnosing:
		return e.interpret(ctx, current, userText)
	}

	return Reply{Text: LostTrackMessage, Outcome: OutcomeExhausted}
}

// ResolveRecipe finds the ideal recipe for free-text bean and method
// answers: the first bean whose name appears in beanText, then that bean's
// first recipe whose brew method appears in methodText. No match is not an
// error.
func (e *Engine) ResolveRecipe(ctx context.Context, beanText, methodText string) (*entity.Recipe, error) {
	uow := e.uowFactory.NewUnitOfWork(ctx)
	bean, err := uow.BeanRepository().FindFirstNamedIn(ctx, beanText)
	if err != nil {
		return nil, err
	}
	if bean == nil {
		e.logger.Debug(module, "No matching bean for diagnosis", map[string]interface{}{"bean_name": beanText})
		return nil, nil
	}
	recipe, err := uow.RecipeRepository().FindFirstByBeanAndMethodIn(ctx, bean.Id, methodText)
	if err != nil {
		return nil, err
	}
	if recipe != nil {
		e.logger.Debug(module, "Found ideal recipe", map[string]interface{}{"recipe_id": recipe.Id})
	}
	return recipe, nil
}

// askNext asks about the cause at next.CauseCursor, skipping keys that an
// admin removed mid-conversation. fallback is returned on generator error.
func (e *Engine) askNext(ctx context.Context, fallback State, next State) Reply {
	problem, err := e.uowFactory.NewUnitOfWork(ctx).ProblemRepository().FindOne(ctx, next.Problem)
	if err != nil {
		e.logger.Error(module, "Failed to load problem", map[string]interface{}{"problem": next.Problem, "error": err.Error()})
		return e.failed(fallback)
	}

	for next.CauseCursor < len(next.CauseKeys) {
		key := next.CauseKeys[next.CauseCursor]
		next.CauseCursor++

		if problem == nil {
			break
		}
		cause, ok := problem.Cause(key)
		if !ok {
			continue
		}

		question := AugmentQuestion(key, cause.Question, next.IdealRecipe)
		text, err := e.phrase(ctx, askQuestionPrompt(question))
		if err != nil {
			return e.failed(fallback)
		}
		next.CurrentCause = &cause
		e.logger.Debug(module, "Testing cause", map[string]interface{}{"cause": key})
		return Reply{Text: text, State: &next, Outcome: OutcomeAsking}
	}

	e.logger.Info(module, "Causes exhausted", map[string]interface{}{"problem": next.Problem})
	return Reply{Text: ExhaustedMessage, Outcome: OutcomeExhausted}
}

func (e *Engine) interpret(ctx context.Context, current State, userText string) Reply {
	if current.CurrentCause == nil {
		return e.askNext(ctx, current, current.Clone())
	}

	raw, err := e.phrase(ctx, interpretationPrompt(current.CurrentCause.Question, userText))
	if err != nil {
		return e.failed(current)
	}
	verdict := ParseVerdict(raw)
	e.logger.Debug(module, "Interpreted answer", map[string]interface{}{"verdict": string(verdict)})

	if verdict != VerdictAffirmative {
		next := current.Clone()
		next.CurrentCause = nil
		return e.askNext(ctx, current, next)
	}

	text, err := e.phrase(ctx, solutionPrompt(current, current.CurrentCause.Solution))
	if err != nil {
		return e.failed(current)
	}
	e.logger.Info(module, "Diagnosis confirmed", map[string]interface{}{
		"problem": current.Problem,
		"cause":   current.CurrentCause.Key,
	})
	return Reply{Text: text, Outcome: OutcomeSolved}
}

func (e *Engine) phrase(ctx context.Context, prompt string) (string, error) {
	out, err := e.llmProvider.Generate(ctx, prompt)
	if err != nil {
		e.logger.Error(module, "Generator call failed", map[string]interface{}{"error": err.Error()})
		return "", err
	}
	return cleanPhrase(out), nil
}

func (e *Engine) failed(current State) Reply {
	state := current.Clone()
	return Reply{Text: ApologyMessage, State: &state, Outcome: OutcomeFailed}
}
