package implementation_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"baristabox-be/internal/entity"
	"baristabox-be/internal/model"
	"baristabox-be/internal/repository/implementation"
	"baristabox-be/internal/repository/knowledgetest"
	"baristabox-be/internal/repository/unitofwork"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeKnowledge(t *testing.T, files implementation.KnowledgeFiles) {
	t.Helper()
	for path, content := range map[string]string{
		files.BeansPath:           knowledgetest.Beans,
		files.RecipesPath:         knowledgetest.Recipes,
		files.TroubleshootingPath: knowledgetest.Troubleshooting,
		files.TrainingDataPath:    knowledgetest.Training,
	} {
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func TestOpenKnowledgeStoreRequiresEveryFile(t *testing.T) {
	tests := []struct {
		name string
		path func(implementation.KnowledgeFiles) string
	}{
		{name: "beans", path: func(f implementation.KnowledgeFiles) string { return f.BeansPath }},
		{name: "recipes", path: func(f implementation.KnowledgeFiles) string { return f.RecipesPath }},
		{name: "troubleshooting", path: func(f implementation.KnowledgeFiles) string { return f.TroubleshootingPath }},
		{name: "training", path: func(f implementation.KnowledgeFiles) string { return f.TrainingDataPath }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := knowledgetest.Files(t)
			require.NoError(t, os.Remove(tt.path(files)))

			store, err := implementation.OpenKnowledgeStore(files)
			require.Error(t, err)
			assert.Nil(t, store)
			assert.ErrorIs(t, err, os.ErrNotExist)
		})
	}
}

func TestOpenKnowledgeStoreRejectsMalformedJSON(t *testing.T) {
	files := knowledgetest.Files(t)
	require.NoError(t, os.WriteFile(files.RecipesPath, []byte(`[{"recipe_id":`), 0o644))

	_, err := implementation.OpenKnowledgeStore(files)
	assert.ErrorContains(t, err, "recipes")
}

func TestTrainingHeader(t *testing.T) {
	store, factory := knowledgetest.Open(t)
	ctx := context.Background()
	training := factory.NewUnitOfWork(ctx).TrainingRepository()

	all, err := training.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 5)
	for _, ex := range all {
		assert.NotEqual(t, "text", ex.Text)
	}

	added, err := training.Add(ctx, []entity.TrainingExample{{Text: "harsh aftertaste", Problem: "bitter"}})
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	raw, err := os.ReadFile(store.Files().TrainingDataPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	assert.Equal(t, strings.Join(model.TrainingHeader, ","), lines[0])
	assert.Equal(t, "harsh aftertaste,bitter", lines[len(lines)-1])
	assert.Len(t, lines, 7)
}

func TestTrainingFileWithoutHeader(t *testing.T) {
	files := knowledgetest.Files(t)
	require.NoError(t, os.WriteFile(files.TrainingDataPath, []byte("bitter brew,bitter\nsour brew,sour\n"), 0o644))

	store, err := implementation.OpenKnowledgeStore(files)
	require.NoError(t, err)
	ctx := context.Background()
	all, err := unitofwork.NewRepositoryFactory(store).NewUnitOfWork(ctx).TrainingRepository().FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []entity.TrainingExample{{Text: "bitter brew", Problem: "bitter"}, {Text: "sour brew", Problem: "sour"}}, all)
}

func causeKeys(p *entity.Problem) []string {
	keys := make([]string, 0, len(p.Causes))
	for _, c := range p.Causes {
		keys = append(keys, c.Key)
	}
	return keys
}

func TestCauseOrderSurvivesRewrite(t *testing.T) {
	store, factory := knowledgetest.Open(t)
	ctx := context.Background()
	problems := factory.NewUnitOfWork(ctx).ProblemRepository()

	require.NoError(t, problems.Create(ctx, &entity.Problem{
		Key:         "muddy",
		Description: "Silty cup.",
		Causes: []entity.Cause{
			{Key: "zz_fines", Question: "Lots of fines?", Solution: "Sift."},
			{Key: "aa_agitation", Question: "Stirring hard?", Solution: "Stir less."},
			{Key: "mm_filter", Question: "Metal filter?", Solution: "Use paper."},
		},
	}))
	require.NoError(t, problems.UpdateDescription(ctx, "bitter", "Harsh and bitter."))

	reopened, err := implementation.OpenKnowledgeStore(store.Files())
	require.NoError(t, err)
	again := unitofwork.NewRepositoryFactory(reopened).NewUnitOfWork(ctx).ProblemRepository()

	bitter, err := again.FindOne(ctx, "bitter")
	require.NoError(t, err)
	assert.Equal(t, "Harsh and bitter.", bitter.Description)
	assert.Equal(t, []string{"grind_fine", "water_temp_high", "brew_time_long"}, causeKeys(bitter))

	muddy, err := again.FindOne(ctx, "muddy")
	require.NoError(t, err)
	assert.Equal(t, []string{"zz_fines", "aa_agitation", "mm_filter"}, causeKeys(muddy))

	keys, err := again.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"bitter", "sour", "weak", "muddy"}, keys)
}

func TestRollbackDiscardsStagedChanges(t *testing.T) {
	store, factory := knowledgetest.Open(t)
	ctx := context.Background()

	uow := factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.Begin(ctx))
	_, err := uow.RecipeRepository().DeleteByBeanId(ctx, "cb_001")
	require.NoError(t, err)
	require.NoError(t, uow.BeanRepository().Delete(ctx, "cb_001"))
	require.NoError(t, uow.Rollback())

	count, err := factory.NewUnitOfWork(ctx).RecipeRepository().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	raw, err := os.ReadFile(store.Files().BeansPath)
	require.NoError(t, err)
	assert.Equal(t, knowledgetest.Beans, string(raw))
}

// A beans file whose name leaves no room for the temp file suffix can be
// read but not rewritten, so a cascade commit fails after recipes were
// already written.
func TestCommitReloadsAfterFailedWrite(t *testing.T) {
	dir := t.TempDir()
	files := implementation.KnowledgeFiles{
		BeansPath:           filepath.Join(dir, strings.Repeat("b", 248)+".json"),
		RecipesPath:         filepath.Join(dir, "brew_recipes.json"),
		TroubleshootingPath: filepath.Join(dir, "troubleshooting_knowledge_base.json"),
		TrainingDataPath:    filepath.Join(dir, "doctor_problem_training_data.csv"),
	}
	writeKnowledge(t, files)
	store, err := implementation.OpenKnowledgeStore(files)
	require.NoError(t, err)
	factory := unitofwork.NewRepositoryFactory(store)
	ctx := context.Background()

	uow := factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.Begin(ctx))
	removed, err := uow.RecipeRepository().DeleteByBeanId(ctx, "cb_001")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	require.NoError(t, uow.BeanRepository().Delete(ctx, "cb_001"))
	assert.ErrorContains(t, uow.Commit(), "beans")

	var onDisk []model.RecipeRecord
	raw, err := os.ReadFile(files.RecipesPath)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &onDisk))
	assert.Len(t, onDisk, 1)

	// Memory follows disk: recipes are gone, the bean is still there.
	view := factory.NewUnitOfWork(ctx)
	recipes, err := view.RecipeRepository().FindAllByBeanId(ctx, "cb_001")
	require.NoError(t, err)
	assert.Empty(t, recipes)
	bean, err := view.BeanRepository().FindOne(ctx, "cb_001")
	require.NoError(t, err)
	assert.NotNil(t, bean)
}

func TestWriteThroughUpdateLeavesMemoryOnFailure(t *testing.T) {
	dir := t.TempDir()
	files := implementation.KnowledgeFiles{
		BeansPath:           filepath.Join(dir, strings.Repeat("b", 248)+".json"),
		RecipesPath:         filepath.Join(dir, "brew_recipes.json"),
		TroubleshootingPath: filepath.Join(dir, "troubleshooting_knowledge_base.json"),
		TrainingDataPath:    filepath.Join(dir, "doctor_problem_training_data.csv"),
	}
	writeKnowledge(t, files)
	store, err := implementation.OpenKnowledgeStore(files)
	require.NoError(t, err)
	ctx := context.Background()
	beans := unitofwork.NewRepositoryFactory(store).NewUnitOfWork(ctx).BeanRepository()

	assert.Error(t, beans.Delete(ctx, "cb_002"))

	count, err := beans.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}
