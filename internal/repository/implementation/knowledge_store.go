package implementation

import (
	"fmt"
	"sync"

	"baristabox-be/internal/model"
)

type knowledgeTables struct {
	beans           []model.BeanRecord
	recipes         []model.RecipeRecord
	troubleshooting *model.TroubleshootingKnowledgeBase
	training        [][]string
}

func (t *knowledgeTables) clone() *knowledgeTables {
	c := &knowledgeTables{
		beans:           make([]model.BeanRecord, len(t.beans)),
		recipes:         make([]model.RecipeRecord, len(t.recipes)),
		troubleshooting: model.NewTroubleshootingKnowledgeBase(),
		training:        make([][]string, len(t.training)),
	}
	for i, b := range t.beans {
		b.ExpertTags = append([]string(nil), b.ExpertTags...)
		c.beans[i] = b
	}
	copy(c.recipes, t.recipes)
	for i, row := range t.training {
		c.training[i] = append([]string(nil), row...)
	}
	for pair := t.troubleshooting.Oldest(); pair != nil; pair = pair.Next() {
		causes := model.NewCauseMap()
		if pair.Value.Causes != nil {
			for cause := pair.Value.Causes.Oldest(); cause != nil; cause = cause.Next() {
				causes.Set(cause.Key, cause.Value)
			}
		}
		c.troubleshooting.Set(pair.Key, model.ProblemRecord{
			Description: pair.Value.Description,
			Causes:      causes,
		})
	}
	return c
}

// TableAccess is how repositories reach the knowledge tables: either the
// live store, where every update is written through immediately, or a
// staged transaction that writes on commit.
type TableAccess interface {
	view(fn func(t *knowledgeTables) error) error
	update(file knowledgeFile, fn func(t *knowledgeTables) error) error
}

// KnowledgeStore keeps the knowledge files in memory behind a RWMutex.
// Mutations rewrite the affected file in full; last writer wins.
type KnowledgeStore struct {
	mu     sync.RWMutex
	files  KnowledgeFiles
	tables *knowledgeTables
}

// OpenKnowledgeStore reads all four files. Any missing or malformed file is
// an error.
func OpenKnowledgeStore(files KnowledgeFiles) (*KnowledgeStore, error) {
	s := &KnowledgeStore{files: files}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *KnowledgeStore) Files() KnowledgeFiles {
	return s.files
}

// Reload replaces the in-memory tables with the current file contents.
func (s *KnowledgeStore) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *KnowledgeStore) loadLocked() error {
	t := &knowledgeTables{troubleshooting: model.NewTroubleshootingKnowledgeBase()}

	if err := readJSONFile(s.files.BeansPath, &t.beans); err != nil {
		return fmt.Errorf("failed to load beans from %s: %w", s.files.BeansPath, err)
	}
	if err := readJSONFile(s.files.RecipesPath, &t.recipes); err != nil {
		return fmt.Errorf("failed to load recipes from %s: %w", s.files.RecipesPath, err)
	}
	if err := readJSONFile(s.files.TroubleshootingPath, t.troubleshooting); err != nil {
		return fmt.Errorf("failed to load troubleshooting knowledge base from %s: %w", s.files.TroubleshootingPath, err)
	}
	training, err := readTrainingFile(s.files.TrainingDataPath)
	if err != nil {
		return fmt.Errorf("failed to load training data from %s: %w", s.files.TrainingDataPath, err)
	}
	t.training = training

	s.tables = t
	return nil
}

func (s *KnowledgeStore) persist(t *knowledgeTables, file knowledgeFile) error {
	var err error
	switch file {
	case beansFile:
		beans := t.beans
		if beans == nil {
			beans = []model.BeanRecord{}
		}
		err = writeJSONFile(s.files.BeansPath, beans)
	case recipesFile:
		recipes := t.recipes
		if recipes == nil {
			recipes = []model.RecipeRecord{}
		}
		err = writeJSONFile(s.files.RecipesPath, recipes)
	case troubleshootingFile:
		err = writeJSONFile(s.files.TroubleshootingPath, t.troubleshooting)
	case trainingFile:
		err = writeTrainingFile(s.files.TrainingDataPath, t.training)
	}
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", file, err)
	}
	return nil
}

func (s *KnowledgeStore) view(fn func(t *knowledgeTables) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.tables)
}

func (s *KnowledgeStore) update(file knowledgeFile, fn func(t *knowledgeTables) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := s.tables.clone()
	if err := fn(staged); err != nil {
		return err
	}
	if err := s.persist(staged, file); err != nil {
		return err
	}
	s.tables = staged
	return nil
}

// BeginTx takes the write lock until Commit or Rollback. Reads through the
// store block meanwhile.
func (s *KnowledgeStore) BeginTx() *KnowledgeTx {
	s.mu.Lock()
	return &KnowledgeTx{
		store:  s,
		staged: s.tables.clone(),
		dirty:  make(map[knowledgeFile]bool),
	}
}

type KnowledgeTx struct {
	store  *KnowledgeStore
	staged *knowledgeTables
	dirty  map[knowledgeFile]bool
	done   bool
}

func (tx *KnowledgeTx) view(fn func(t *knowledgeTables) error) error {
	return fn(tx.staged)
}

func (tx *KnowledgeTx) update(file knowledgeFile, fn func(t *knowledgeTables) error) error {
	if err := fn(tx.staged); err != nil {
		return err
	}
	tx.dirty[file] = true
	return nil
}

// Commit writes every dirty file in persistOrder and publishes the staged
// tables. If a write fails the store reloads from disk so memory matches
// whatever was written.
func (tx *KnowledgeTx) Commit() error {
	if tx.done {
		return fmt.Errorf("transaction already finished")
	}
	tx.done = true
	defer tx.store.mu.Unlock()

	for _, file := range persistOrder {
		if !tx.dirty[file] {
			continue
		}
		if err := tx.store.persist(tx.staged, file); err != nil {
			if reloadErr := tx.store.loadLocked(); reloadErr != nil {
				return fmt.Errorf("%w (reload also failed: %v)", err, reloadErr)
			}
			return err
		}
	}
	tx.store.tables = tx.staged
	return nil
}

func (tx *KnowledgeTx) Rollback() error {
	if tx.done {
		return fmt.Errorf("transaction already finished")
	}
	tx.done = true
	tx.store.mu.Unlock()
	return nil
}
