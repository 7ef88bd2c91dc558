package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"baristabox-be/internal/dto"
	"baristabox-be/internal/pkg/logger"
	"baristabox-be/internal/repository/unitofwork"
	"baristabox-be/pkg/classifier"
)

const indexModule = "IndexService"

// FlavorIndex is the recommendation index.
type FlavorIndex interface {
	Rebuild(ctx context.Context) error
	Size() int
}

type TrainableClassifier interface {
	Train(ctx context.Context, examples []classifier.Example) error
	Size() int
}

// IIndexService owns every derived index: the flavor map and the
// embedding classifiers. Knowledge edits only mark it stale; a rebuild is
// an explicit admin action or a startup step.
type IIndexService interface {
	Rebuild(ctx context.Context) (*dto.IndexStatusResponse, error)
	MarkStale(kind string)
	Status() *dto.IndexStatusResponse
}

type indexService struct {
	uowFactory         unitofwork.RepositoryFactory
	flavors            FlavorIndex
	intents            TrainableClassifier // nil when intents are classified by the LLM
	problems           TrainableClassifier
	intentExamplesPath string
	logger             logger.ILogger

	rebuildMu sync.Mutex

	mu          sync.Mutex
	stale       map[string]bool
	lastBuiltAt *time.Time
}

func NewIndexService(
	uowFactory unitofwork.RepositoryFactory,
	flavors FlavorIndex,
	intents TrainableClassifier,
	problems TrainableClassifier,
	intentExamplesPath string,
	logger logger.ILogger,
) IIndexService {
	return &indexService{
		uowFactory:         uowFactory,
		flavors:            flavors,
		intents:            intents,
		problems:           problems,
		intentExamplesPath: intentExamplesPath,
		logger:             logger,
		stale:              make(map[string]bool),
	}
}

func (s *indexService) Rebuild(ctx context.Context) (*dto.IndexStatusResponse, error) {
	s.rebuildMu.Lock()
	defer s.rebuildMu.Unlock()

	// Snapshot which kinds were stale before reading, so edits that land
	// during the rebuild stay flagged.
	s.mu.Lock()
	pending := s.stale
	s.stale = make(map[string]bool)
	s.mu.Unlock()

	restore := func() {
		s.mu.Lock()
		for k := range pending {
			s.stale[k] = true
		}
		s.mu.Unlock()
	}

	start := time.Now()
	if err := s.flavors.Rebuild(ctx); err != nil {
		restore()
		return nil, fmt.Errorf("failed to rebuild flavor map: %w", err)
	}

	if s.intents != nil {
		examples, err := classifier.LoadIntentExamples(s.intentExamplesPath)
		if err != nil {
			restore()
			return nil, fmt.Errorf("failed to load intent examples: %w", err)
		}
		if err := s.intents.Train(ctx, examples); err != nil {
			restore()
			return nil, fmt.Errorf("failed to train intent classifier: %w", err)
		}
	}

	training, err := s.uowFactory.NewUnitOfWork(ctx).TrainingRepository().FindAll(ctx)
	if err != nil {
		restore()
		return nil, fmt.Errorf("failed to load training data: %w", err)
	}
	if err := s.problems.Train(ctx, classifier.FromTraining(training)); err != nil {
		restore()
		return nil, fmt.Errorf("failed to train problem classifier: %w", err)
	}

	now := time.Now()
	s.mu.Lock()
	s.lastBuiltAt = &now
	s.mu.Unlock()

	status := s.Status()
	s.logger.Info(indexModule, "Indexes rebuilt", map[string]interface{}{
		"beans":            status.FlavorMapBeans,
		"intent_examples":  status.IntentExamples,
		"problem_examples": status.ProblemExamples,
		"duration_ms":      time.Since(start).Milliseconds(),
	})
	return status, nil
}

func (s *indexService) MarkStale(kind string) {
	s.mu.Lock()
	s.stale[kind] = true
	s.mu.Unlock()
	s.logger.Info(indexModule, "Indexes marked stale", map[string]interface{}{"kind": kind})
}

func (s *indexService) Status() *dto.IndexStatusResponse {
	s.mu.Lock()
	kinds := make([]string, 0, len(s.stale))
	for k := range s.stale {
		kinds = append(kinds, k)
	}
	lastBuiltAt := s.lastBuiltAt
	s.mu.Unlock()
	sort.Strings(kinds)

	status := &dto.IndexStatusResponse{
		Stale:           len(kinds) > 0,
		StaleKinds:      kinds,
		LastBuiltAt:     lastBuiltAt,
		FlavorMapBeans:  s.flavors.Size(),
		ProblemExamples: s.problems.Size(),
	}
	if s.intents != nil {
		status.IntentExamples = s.intents.Size()
	}
	return status
}
