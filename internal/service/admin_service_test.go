package service

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"baristabox-be/internal/config"
	"baristabox-be/internal/constant"
	"baristabox-be/internal/dto"
	"baristabox-be/internal/entity"
	"baristabox-be/internal/pkg/logger"
	"baristabox-be/internal/pkg/serverutils"
	"baristabox-be/internal/repository/contract"
	"baristabox-be/internal/repository/implementation"
	"baristabox-be/internal/repository/knowledgetest"
	"baristabox-be/internal/repository/unitofwork"
	"baristabox-be/pkg/brewer"
	"baristabox-be/pkg/llm/llmtest"
	"baristabox-be/pkg/snapshot"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type change struct{ kind, action, key string }

type recordingEvents struct {
	mu      sync.Mutex
	changes []change
}

func (r *recordingEvents) Changed(_ context.Context, kind, action, key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changes = append(r.changes, change{kind, action, key})
}

type fakeIndex struct {
	rebuilds int
	err      error
}

func (f *fakeIndex) Rebuild(context.Context) (*dto.IndexStatusResponse, error) {
	f.rebuilds++
	if f.err != nil {
		return nil, f.err
	}
	return &dto.IndexStatusResponse{FlavorMapBeans: 3}, nil
}

func (f *fakeIndex) MarkStale(string) {}

func (f *fakeIndex) Status() *dto.IndexStatusResponse {
	return &dto.IndexStatusResponse{Stale: true}
}

type fakeSnapshotter struct {
	files map[string]string
}

func (f *fakeSnapshotter) Upload(_ context.Context, files map[string]string) (*snapshot.Result, error) {
	f.files = files
	return &snapshot.Result{Bucket: "knowledge", Keys: []string{"k/coffee_beans.json"}}, nil
}

type fakeLogs struct{}

func (fakeLogs) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	return []logger.LogEntry{{Id: "a", Level: level}}, nil
}

func (fakeLogs) GetLogById(id string) (*logger.LogEntry, error) {
	if id == "a" {
		return &logger.LogEntry{Id: "a"}, nil
	}
	return nil, logger.ErrLogNotFound
}

type adminFixture struct {
	svc     IAdminService
	factory unitofwork.RepositoryFactory
	files   implementation.KnowledgeFiles
	events  *recordingEvents
	index   *fakeIndex
}

func newAdminFixture(t *testing.T, snapshots Snapshotter) *adminFixture {
	return newAdminFixtureWith(t, snapshots, func(f unitofwork.RepositoryFactory) unitofwork.RepositoryFactory { return f })
}

func newAdminFixtureWith(t *testing.T, snapshots Snapshotter, wrap func(unitofwork.RepositoryFactory) unitofwork.RepositoryFactory) *adminFixture {
	store, factory := knowledgetest.Open(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("espresso"), bcrypt.MinCost)
	require.NoError(t, err)

	f := &adminFixture{factory: factory, files: store.Files(), events: &recordingEvents{}, index: &fakeIndex{}}
	f.svc = NewAdminService(
		wrap(factory),
		f.events,
		f.index,
		snapshots,
		nil,
		store.Files().Paths(),
		fakeLogs{},
		config.AdminConfig{Username: "admin", PasswordHash: string(hash), JwtSecret: "s3cret", TokenHours: 1},
		logger.NewNopLogger(),
	)
	return f
}

func validBean() *dto.BeanRequest {
	return &dto.BeanRequest{
		Name:         "Kenya AA",
		Origin:       "Kenya",
		Type:         "Arabica",
		RoastLevel:   2,
		Processing:   "Washed",
		TastingNotes: "Blackcurrant and tomato.",
		ExpertTags:   []string{"Bright", "Complex"},
	}
}

func validRecipe(beanId string) *dto.RecipeRequest {
	return &dto.RecipeRequest{
		BeanId:      beanId,
		BrewMethod:  "chemex",
		GrindSize:   "Medium-Coarse",
		CoffeeGrams: 30,
		WaterGrams:  500,
		WaterTempC:  95,
	}
}

func TestAdminLogin(t *testing.T) {
	f := newAdminFixture(t, nil)
	ctx := context.Background()

	res, err := f.svc.Login(ctx, &dto.AdminLoginRequest{Username: "admin", Password: "espresso"})
	require.NoError(t, err)
	assert.True(t, res.ExpiresAt.After(time.Now()))

	token, err := jwt.Parse(res.AccessToken, func(*jwt.Token) (interface{}, error) { return []byte("s3cret"), nil })
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, constant.RoleAdmin, claims["role"])

	_, err = f.svc.Login(ctx, &dto.AdminLoginRequest{Username: "admin", Password: "latte"})
	assert.ErrorIs(t, err, entity.ErrInvalidCredentials)
	_, err = f.svc.Login(ctx, &dto.AdminLoginRequest{Username: "root", Password: "espresso"})
	assert.ErrorIs(t, err, entity.ErrInvalidCredentials)
}

func TestCreateBean(t *testing.T) {
	f := newAdminFixture(t, nil)
	ctx := context.Background()

	res, err := f.svc.CreateBean(ctx, validBean())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.Id, entity.BeanIdPrefix))
	assert.Len(t, res.Id, len(entity.BeanIdPrefix)+8)

	got, err := f.svc.GetBean(ctx, res.Id)
	require.NoError(t, err)
	assert.Equal(t, "Kenya AA", got.Name)
	assert.Equal(t, []change{{constant.KnowledgeBeans, constant.ActionCreated, res.Id}}, f.events.changes)
}

func TestCreateBeanValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*dto.BeanRequest)
	}{
		{name: "unknown type", mutate: func(r *dto.BeanRequest) { r.Type = "Liberica" }},
		{name: "unknown processing", mutate: func(r *dto.BeanRequest) { r.Processing = "Anaerobic" }},
		{name: "roast too dark", mutate: func(r *dto.BeanRequest) { r.RoastLevel = 6 }},
		{name: "unknown tag", mutate: func(r *dto.BeanRequest) { r.ExpertTags = []string{"Smoky"} }},
		{name: "no tags", mutate: func(r *dto.BeanRequest) { r.ExpertTags = nil }},
		{name: "blank name", mutate: func(r *dto.BeanRequest) { r.Name = "  " }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAdminFixture(t, nil)
			req := validBean()
			tt.mutate(req)

			_, err := f.svc.CreateBean(context.Background(), req)
			assert.ErrorIs(t, err, entity.ErrValidation)
			assert.Empty(t, f.events.changes)
		})
	}
}

func TestUpdateMissingBean(t *testing.T) {
	f := newAdminFixture(t, nil)

	_, err := f.svc.UpdateBean(context.Background(), "cb_404", validBean())
	assert.ErrorIs(t, err, entity.ErrBeanNotFound)
}

func TestDeleteBeanCascadesToRecipes(t *testing.T) {
	f := newAdminFixture(t, nil)
	ctx := context.Background()

	res, err := f.svc.DeleteBean(ctx, "cb_001")
	require.NoError(t, err)
	assert.Equal(t, 2, res.RecipesRemoved)

	reopened, err := implementation.OpenKnowledgeStore(f.files)
	require.NoError(t, err)
	uow := unitofwork.NewRepositoryFactory(reopened).NewUnitOfWork(ctx)

	bean, err := uow.BeanRepository().FindOne(ctx, "cb_001")
	require.NoError(t, err)
	assert.Nil(t, bean)
	recipes, err := uow.RecipeRepository().FindAllByBeanId(ctx, "cb_001")
	require.NoError(t, err)
	assert.Empty(t, recipes)
	remaining, err := uow.RecipeRepository().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, remaining)

	assert.Equal(t, []change{
		{constant.KnowledgeBeans, constant.ActionDeleted, "cb_001"},
		{constant.KnowledgeRecipes, constant.ActionDeleted, "cb_001"},
	}, f.events.changes)

	_, err = f.svc.DeleteBean(ctx, "cb_001")
	assert.ErrorIs(t, err, entity.ErrBeanNotFound)
}

func TestCreateRecipe(t *testing.T) {
	f := newAdminFixture(t, nil)
	ctx := context.Background()

	res, err := f.svc.CreateRecipe(ctx, validRecipe("cb_003"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.RecipeId, entity.RecipeIdPrefix))
	assert.Equal(t, "Chemex", res.BrewMethod)
	assert.Equal(t, "Sumatra Mandheling", res.BeanName)

	_, err = f.svc.CreateRecipe(ctx, validRecipe("cb_003"))
	assert.ErrorIs(t, err, entity.ErrDuplicateRecipe)

	_, err = f.svc.CreateRecipe(ctx, validRecipe("cb_404"))
	assert.ErrorIs(t, err, entity.ErrBeanNotFound)

	bad := validRecipe("cb_003")
	bad.WaterTempC = 70
	_, err = f.svc.CreateRecipe(ctx, bad)
	assert.ErrorIs(t, err, entity.ErrValidation)

	all, err := f.svc.GetAllRecipes(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)
	assert.Equal(t, "Ethiopia Yirgacheffe", all[0].BeanName)
}

func TestAddCauseCreatesProblem(t *testing.T) {
	f := newAdminFixture(t, nil)
	ctx := context.Background()

	cause := &dto.AddCauseRequest{Key: "channeling", Question: "Do you see holes in the bed?", Solution: "Distribute evenly."}

	_, err := f.svc.AddCause(ctx, "uneven", cause)
	assert.ErrorIs(t, err, entity.ErrValidation)

	cause.ProblemDescription = "Cup tastes both sour and bitter."
	res, err := f.svc.AddCause(ctx, "uneven", cause)
	require.NoError(t, err)
	assert.Equal(t, "uneven", res.Key)
	require.Len(t, res.Causes, 1)
	assert.Equal(t, "channeling", res.Causes[0].Key)

	_, err = f.svc.AddCause(ctx, "uneven", cause)
	assert.ErrorIs(t, err, entity.ErrCauseExists)
}

func TestDeleteProblemDropsTraining(t *testing.T) {
	f := newAdminFixture(t, nil)
	ctx := context.Background()

	before, err := f.svc.GetTrainingData(ctx, "bitter")
	require.NoError(t, err)
	require.NotEmpty(t, before)

	res, err := f.svc.DeleteProblem(ctx, "bitter")
	require.NoError(t, err)
	assert.Equal(t, len(before), res.PhrasesRemoved)

	after, err := f.svc.GetTrainingData(ctx, "bitter")
	require.NoError(t, err)
	assert.Empty(t, after)
	_, err = f.svc.GetProblem(ctx, "bitter")
	assert.ErrorIs(t, err, entity.ErrProblemNotFound)
}

func TestAddTrainingPhrases(t *testing.T) {
	f := newAdminFixture(t, nil)
	ctx := context.Background()

	before, err := f.svc.GetTrainingData(ctx, "weak")
	require.NoError(t, err)

	res, err := f.svc.AddTrainingPhrases(ctx, &dto.AddTrainingRequest{
		Problem: "weak",
		Phrases: "  tastes like water \n\n thin and watery\ntastes like water",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Changed)
	assert.Equal(t, len(before)+2, res.Total)

	res, err = f.svc.AddTrainingPhrases(ctx, &dto.AddTrainingRequest{Problem: "weak", Phrases: "thin and watery"})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Changed)

	_, err = f.svc.AddTrainingPhrases(ctx, &dto.AddTrainingRequest{Problem: "muddy", Phrases: "gritty"})
	assert.ErrorIs(t, err, entity.ErrProblemNotFound)

	_, err = f.svc.AddTrainingPhrases(ctx, &dto.AddTrainingRequest{Problem: "weak", Phrases: " \n "})
	assert.ErrorIs(t, err, entity.ErrValidation)

	del, err := f.svc.DeleteTrainingExamples(ctx, &dto.DeleteTrainingRequest{
		Examples: []dto.TrainingExampleDto{{Text: "thin and watery", Problem: "weak"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, del.Changed)
}

func TestReindexAndLogs(t *testing.T) {
	f := newAdminFixture(t, nil)
	ctx := context.Background()

	status, err := f.svc.Reindex(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, status.FlavorMapBeans)
	assert.Equal(t, 1, f.index.rebuilds)

	f.index.err = errors.New("embedder down")
	_, err = f.svc.Reindex(ctx)
	assert.Error(t, err)

	logs, err := f.svc.GetSystemLogs(ctx, 0, 0, "warn")
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "WARN", logs[0].Level)

	_, err = f.svc.GetLogDetail(ctx, "missing")
	assert.ErrorIs(t, err, entity.ErrLogNotFound)
}

func TestSnapshot(t *testing.T) {
	f := newAdminFixture(t, nil)
	_, err := f.svc.Snapshot(context.Background())
	assert.ErrorIs(t, err, entity.ErrSnapshotsDisabled)

	uploader := &fakeSnapshotter{}
	f = newAdminFixture(t, uploader)
	res, err := f.svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "knowledge", res.Bucket)
	assert.Len(t, uploader.files, 4)
	for _, p := range uploader.files {
		_, err := os.Stat(p)
		assert.NoError(t, err)
	}
}

func TestTranscriptWithoutDatabase(t *testing.T) {
	f := newAdminFixture(t, nil)
	_, err := f.svc.GetTranscript(context.Background(), "b1f0c1de-0000-4000-8000-000000000000", 1, 50)
	assert.ErrorIs(t, err, entity.ErrTranscriptsDisabled)
}

// hookedFactory runs onBeanLookup once, right after the first bean lookup
// made through any of its units of work.
type hookedFactory struct {
	unitofwork.RepositoryFactory
	fired        atomic.Bool
	onBeanLookup func()
}

func (h *hookedFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &hookedUow{UnitOfWork: h.RepositoryFactory.NewUnitOfWork(ctx), factory: h}
}

type hookedUow struct {
	unitofwork.UnitOfWork
	factory *hookedFactory
}

func (u *hookedUow) BeanRepository() contract.BeanRepository {
	return &hookedBeans{BeanRepository: u.UnitOfWork.BeanRepository(), factory: u.factory}
}

type hookedBeans struct {
	contract.BeanRepository
	factory *hookedFactory
}

func (b *hookedBeans) FindOne(ctx context.Context, id string) (*entity.Bean, error) {
	bean, err := b.BeanRepository.FindOne(ctx, id)
	if b.factory.fired.CompareAndSwap(false, true) {
		b.factory.onBeanLookup()
	}
	return bean, err
}

func TestCreateRecipeRacingBeanDelete(t *testing.T) {
	ctx := context.Background()
	hook := &hookedFactory{}
	f := newAdminFixtureWith(t, nil, func(inner unitofwork.RepositoryFactory) unitofwork.RepositoryFactory {
		hook.RepositoryFactory = inner
		return hook
	})

	deleted := make(chan error, 1)
	hook.onBeanLookup = func() {
		go func() {
			_, err := f.svc.DeleteBean(ctx, "cb_003")
			deleted <- err
		}()
		// Give the delete a chance to run before the recipe is written.
		select {
		case err := <-deleted:
			deleted <- err
		case <-time.After(100 * time.Millisecond):
		}
	}

	_, createErr := f.svc.CreateRecipe(ctx, validRecipe("cb_003"))
	require.NoError(t, <-deleted)

	uow := f.factory.NewUnitOfWork(ctx)
	bean, err := uow.BeanRepository().FindOne(ctx, "cb_003")
	require.NoError(t, err)
	assert.Nil(t, bean)

	recipes, err := uow.RecipeRepository().FindAll(ctx)
	require.NoError(t, err)
	for _, r := range recipes {
		assert.NotEqual(t, "cb_003", r.BeanId, "recipe %s outlived its bean (create err: %v)", r.Id, createErr)
	}
}

func TestVocabularyMatchesRequestTags(t *testing.T) {
	for _, v := range entity.BeanTypes {
		req := validBean()
		req.Type = v
		assert.NoError(t, serverutils.ValidateRequest(req), v)
	}
	for _, v := range entity.ProcessingMethods {
		req := validBean()
		req.Processing = v
		assert.NoError(t, serverutils.ValidateRequest(req), v)
	}
	req := validBean()
	req.ExpertTags = entity.ExpertTags
	assert.NoError(t, serverutils.ValidateRequest(req))

	for _, v := range entity.BrewMethods {
		r := validRecipe("cb_001")
		r.BrewMethod = strings.ToLower(v)
		assert.NoError(t, serverutils.ValidateRequest(r), v)
	}
	for _, v := range entity.GrindSizes {
		r := validRecipe("cb_001")
		r.GrindSize = v
		assert.NoError(t, serverutils.ValidateRequest(r), v)
	}

	bad := validRecipe("cb_001")
	bad.GrindSize = "Powder"
	var verr *serverutils.ValidationError
	require.ErrorAs(t, serverutils.ValidateRequest(bad), &verr)
	assert.Contains(t, verr.Fields["GrindSize"], "must be one of")
}

func TestCreatedRecipeReachesBrewerVerbatim(t *testing.T) {
	f := newAdminFixture(t, nil)
	ctx := context.Background()

	req := validRecipe("cb_003")
	req.GrindSize = "Medium"
	req.CoffeeGrams = 18.5
	req.WaterGrams = 300
	req.WaterTempC = 92
	created, err := f.svc.CreateRecipe(ctx, req)
	require.NoError(t, err)

	b := brewer.NewBrewer(f.factory, &llmtest.Provider{}, logger.NewNopLogger())
	lookup, err := b.RetrievalContext(ctx, "How do I brew Sumatra Mandheling in a Chemex?")
	require.NoError(t, err)
	require.NotNil(t, lookup.Recipe)

	assert.Equal(t, created.RecipeId, lookup.Recipe.Id)
	assert.Equal(t, "Medium", lookup.Recipe.GrindSize)
	assert.Equal(t, 18.5, lookup.Recipe.CoffeeGrams)
	assert.Equal(t, 300, lookup.Recipe.WaterGrams)
	assert.Equal(t, 92, lookup.Recipe.WaterTempC)
	assert.Contains(t, lookup.Context, `"grind_size": "Medium"`)
	assert.Contains(t, lookup.Context, `"coffee_grams": 18.5`)
	assert.Contains(t, lookup.Context, `"water_grams": 300`)
	assert.Contains(t, lookup.Context, `"water_temp_c": 92`)
}
