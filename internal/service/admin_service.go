package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"baristabox-be/internal/config"
	"baristabox-be/internal/constant"
	"baristabox-be/internal/dto"
	"baristabox-be/internal/entity"
	"baristabox-be/internal/pkg/logger"
	"baristabox-be/internal/pkg/serverutils"
	"baristabox-be/internal/repository/unitofwork"
	"baristabox-be/pkg/snapshot"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const adminModule = "AdminService"

// LogReader reads back the structured log file.
type LogReader interface {
	GetLogs(level string, limit, offset int) ([]logger.LogEntry, error)
	GetLogById(id string) (*logger.LogEntry, error)
}

// Snapshotter uploads knowledge files, name to local path.
type Snapshotter interface {
	Upload(ctx context.Context, files map[string]string) (*snapshot.Result, error)
}

type IAdminService interface {
	Login(ctx context.Context, req *dto.AdminLoginRequest) (*dto.AdminLoginResponse, error)

	// Beans
	GetAllBeans(ctx context.Context) ([]*dto.BeanResponse, error)
	GetBean(ctx context.Context, id string) (*dto.BeanResponse, error)
	CreateBean(ctx context.Context, req *dto.BeanRequest) (*dto.BeanResponse, error)
	UpdateBean(ctx context.Context, id string, req *dto.BeanRequest) (*dto.BeanResponse, error)
	DeleteBean(ctx context.Context, id string) (*dto.DeleteBeanResponse, error)

	// Recipes
	GetAllRecipes(ctx context.Context) ([]*dto.RecipeResponse, error)
	GetRecipe(ctx context.Context, id string) (*dto.RecipeResponse, error)
	CreateRecipe(ctx context.Context, req *dto.RecipeRequest) (*dto.RecipeResponse, error)
	UpdateRecipe(ctx context.Context, id string, req *dto.RecipeRequest) (*dto.RecipeResponse, error)
	DeleteRecipe(ctx context.Context, id string) error

	// Troubleshooting
	GetAllProblems(ctx context.Context) ([]*dto.ProblemResponse, error)
	GetProblem(ctx context.Context, key string) (*dto.ProblemResponse, error)
	CreateProblem(ctx context.Context, req *dto.CreateProblemRequest) (*dto.ProblemResponse, error)
	UpdateProblem(ctx context.Context, key string, req *dto.UpdateProblemRequest) (*dto.ProblemResponse, error)
	DeleteProblem(ctx context.Context, key string) (*dto.DeleteProblemResponse, error)
	AddCause(ctx context.Context, problemKey string, req *dto.AddCauseRequest) (*dto.ProblemResponse, error)
	UpdateCause(ctx context.Context, problemKey, causeKey string, req *dto.UpdateCauseRequest) (*dto.ProblemResponse, error)
	DeleteCause(ctx context.Context, problemKey, causeKey string) (*dto.ProblemResponse, error)

	// Training data
	GetTrainingData(ctx context.Context, problem string) ([]*dto.TrainingExampleDto, error)
	AddTrainingPhrases(ctx context.Context, req *dto.AddTrainingRequest) (*dto.TrainingChangeResponse, error)
	DeleteTrainingExamples(ctx context.Context, req *dto.DeleteTrainingRequest) (*dto.TrainingChangeResponse, error)

	// Operations
	GetSystemLogs(ctx context.Context, page, limit int, level string) ([]*dto.LogListResponse, error)
	GetLogDetail(ctx context.Context, logId string) (*dto.LogListResponse, error)
	Reindex(ctx context.Context) (*dto.IndexStatusResponse, error)
	IndexStatus(ctx context.Context) *dto.IndexStatusResponse
	Snapshot(ctx context.Context) (*dto.SnapshotResponse, error)
	GetTranscript(ctx context.Context, sessionId string, page, limit int) (*dto.TranscriptResponse, error)
}

type adminService struct {
	uowFactory     unitofwork.RepositoryFactory
	events         IKnowledgeEventService
	index          IIndexService
	snapshots      Snapshotter        // nil when no bucket is configured
	transcripts    ITranscriptService // nil without a database
	knowledgeFiles map[string]string
	logs           LogReader
	cfg            config.AdminConfig
	logger         logger.ILogger
}

func NewAdminService(
	uowFactory unitofwork.RepositoryFactory,
	events IKnowledgeEventService,
	index IIndexService,
	snapshots Snapshotter,
	transcripts ITranscriptService,
	knowledgeFiles map[string]string,
	logs LogReader,
	cfg config.AdminConfig,
	logger logger.ILogger,
) IAdminService {
	return &adminService{
		uowFactory:     uowFactory,
		events:         events,
		index:          index,
		snapshots:      snapshots,
		transcripts:    transcripts,
		knowledgeFiles: knowledgeFiles,
		logs:           logs,
		cfg:            cfg,
		logger:         logger,
	}
}

func newKnowledgeId(prefix string) string {
	return prefix + uuid.NewString()[:8]
}

// ============================================================================
// Auth
// ============================================================================

func (s *adminService) Login(ctx context.Context, req *dto.AdminLoginRequest) (*dto.AdminLoginResponse, error) {
	if s.cfg.PasswordHash == "" {
		s.logger.Warn(adminModule, "Admin login attempted without ADMIN_PASSWORD_HASH configured", nil)
		return nil, entity.ErrInvalidCredentials
	}
	if subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.cfg.Username)) != 1 {
		return nil, entity.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.PasswordHash), []byte(req.Password)); err != nil {
		return nil, entity.ErrInvalidCredentials
	}

	hours := s.cfg.TokenHours
	if hours <= 0 {
		hours = 24
	}
	expiresAt := time.Now().Add(time.Duration(hours) * time.Hour)

	claims := jwt.MapClaims{
		"user_id": s.cfg.Username,
		"role":    constant.RoleAdmin,
		"exp":     expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.cfg.JwtSecret))
	if err != nil {
		return nil, err
	}

	s.logger.Info(adminModule, "Admin logged in", map[string]interface{}{"username": req.Username})
	return &dto.AdminLoginResponse{AccessToken: signedToken, ExpiresAt: expiresAt}, nil
}

// ============================================================================
// Beans
// ============================================================================

// validateBean applies the request tags; the HTTP layer runs them too, but
// the seeder and tests call the service directly.
func validateBean(req *dto.BeanRequest) error {
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Origin) == "" {
		return entity.NewValidationError("name and origin are required")
	}
	return nil
}

func beanFromRequest(id string, req *dto.BeanRequest) *entity.Bean {
	return &entity.Bean{
		Id:           id,
		Name:         strings.TrimSpace(req.Name),
		Origin:       strings.TrimSpace(req.Origin),
		Type:         req.Type,
		RoastLevel:   req.RoastLevel,
		Processing:   req.Processing,
		TastingNotes: strings.TrimSpace(req.TastingNotes),
		ExpertTags:   append([]string(nil), req.ExpertTags...),
	}
}

func toBeanResponse(b *entity.Bean) *dto.BeanResponse {
	return &dto.BeanResponse{
		Id:           b.Id,
		Name:         b.Name,
		Origin:       b.Origin,
		Type:         b.Type,
		RoastLevel:   b.RoastLevel,
		Processing:   b.Processing,
		TastingNotes: b.TastingNotes,
		ExpertTags:   b.ExpertTags,
	}
}

func (s *adminService) GetAllBeans(ctx context.Context) ([]*dto.BeanResponse, error) {
	beans, err := s.uowFactory.NewUnitOfWork(ctx).BeanRepository().FindAll(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]*dto.BeanResponse, 0, len(beans))
	for _, b := range beans {
		res = append(res, toBeanResponse(b))
	}
	return res, nil
}

func (s *adminService) GetBean(ctx context.Context, id string) (*dto.BeanResponse, error) {
	bean, err := s.uowFactory.NewUnitOfWork(ctx).BeanRepository().FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if bean == nil {
		return nil, entity.ErrBeanNotFound
	}
	return toBeanResponse(bean), nil
}

func (s *adminService) CreateBean(ctx context.Context, req *dto.BeanRequest) (*dto.BeanResponse, error) {
	if err := validateBean(req); err != nil {
		return nil, err
	}
	bean := beanFromRequest(newKnowledgeId(entity.BeanIdPrefix), req)
	if err := s.uowFactory.NewUnitOfWork(ctx).BeanRepository().Create(ctx, bean); err != nil {
		return nil, err
	}

	s.events.Changed(ctx, constant.KnowledgeBeans, constant.ActionCreated, bean.Id)
	s.logger.Info(adminModule, "Bean created", map[string]interface{}{"bean_id": bean.Id, "name": bean.Name})
	return toBeanResponse(bean), nil
}

func (s *adminService) UpdateBean(ctx context.Context, id string, req *dto.BeanRequest) (*dto.BeanResponse, error) {
	if err := validateBean(req); err != nil {
		return nil, err
	}
	bean := beanFromRequest(id, req)
	if err := s.uowFactory.NewUnitOfWork(ctx).BeanRepository().Update(ctx, bean); err != nil {
		return nil, err
	}

	s.events.Changed(ctx, constant.KnowledgeBeans, constant.ActionUpdated, id)
	s.logger.Info(adminModule, "Bean updated", map[string]interface{}{"bean_id": id})
	return toBeanResponse(bean), nil
}

// DeleteBean removes the bean together with every recipe that references it.
func (s *adminService) DeleteBean(ctx context.Context, id string) (*dto.DeleteBeanResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	bean, err := uow.BeanRepository().FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if bean == nil {
		return nil, entity.ErrBeanNotFound
	}

	removed, err := uow.RecipeRepository().DeleteByBeanId(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uow.BeanRepository().Delete(ctx, id); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		s.logger.Error(adminModule, "Failed to commit bean deletion", map[string]interface{}{"bean_id": id, "error": err.Error()})
		return nil, err
	}

	s.events.Changed(ctx, constant.KnowledgeBeans, constant.ActionDeleted, id)
	if removed > 0 {
		s.events.Changed(ctx, constant.KnowledgeRecipes, constant.ActionDeleted, id)
	}
	s.logger.Info(adminModule, "Bean deleted", map[string]interface{}{"bean_id": id, "recipes_removed": removed})
	return &dto.DeleteBeanResponse{Id: id, RecipesRemoved: removed}, nil
}

// ============================================================================
// Recipes
// ============================================================================

func (s *adminService) recipeFromRequest(ctx context.Context, uow unitofwork.UnitOfWork, id string, req *dto.RecipeRequest) (*entity.Recipe, *entity.Bean, error) {
	if err := serverutils.ValidateRequest(req); err != nil {
		return nil, nil, err
	}
	method := entity.BrewMethodDisplayName(strings.TrimSpace(req.BrewMethod))

	bean, err := uow.BeanRepository().FindOne(ctx, req.BeanId)
	if err != nil {
		return nil, nil, err
	}
	if bean == nil {
		return nil, nil, entity.ErrBeanNotFound
	}

	return &entity.Recipe{
		Id:             id,
		BeanId:         bean.Id,
		BrewMethod:     method,
		GrindSize:      req.GrindSize,
		CoffeeGrams:    req.CoffeeGrams,
		WaterGrams:     req.WaterGrams,
		WaterTempC:     req.WaterTempC,
		TechniqueNotes: strings.TrimSpace(req.TechniqueNotes),
	}, bean, nil
}

func toRecipeResponse(r *entity.Recipe, beanName string) *dto.RecipeResponse {
	return &dto.RecipeResponse{
		RecipeId:       r.Id,
		BeanId:         r.BeanId,
		BeanName:       beanName,
		BrewMethod:     r.BrewMethod,
		GrindSize:      r.GrindSize,
		CoffeeGrams:    r.CoffeeGrams,
		WaterGrams:     r.WaterGrams,
		WaterTempC:     r.WaterTempC,
		TechniqueNotes: r.TechniqueNotes,
	}
}

func (s *adminService) GetAllRecipes(ctx context.Context) ([]*dto.RecipeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	beans, err := uow.BeanRepository().FindAll(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(beans))
	for _, b := range beans {
		names[b.Id] = b.Name
	}

	recipes, err := uow.RecipeRepository().FindAll(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]*dto.RecipeResponse, 0, len(recipes))
	for _, r := range recipes {
		res = append(res, toRecipeResponse(r, names[r.BeanId]))
	}
	return res, nil
}

func (s *adminService) GetRecipe(ctx context.Context, id string) (*dto.RecipeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	recipe, err := uow.RecipeRepository().FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, entity.ErrRecipeNotFound
	}
	var beanName string
	if bean, err := uow.BeanRepository().FindOne(ctx, recipe.BeanId); err == nil && bean != nil {
		beanName = bean.Name
	}
	return toRecipeResponse(recipe, beanName), nil
}

// CreateRecipe checks the bean and writes the recipe under one transaction
// so a concurrent DeleteBean cannot orphan it.
func (s *adminService) CreateRecipe(ctx context.Context, req *dto.RecipeRequest) (*dto.RecipeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	recipe, bean, err := s.recipeFromRequest(ctx, uow, newKnowledgeId(entity.RecipeIdPrefix), req)
	if err != nil {
		return nil, err
	}
	if err := uow.RecipeRepository().Create(ctx, recipe); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		s.logger.Error(adminModule, "Failed to commit recipe", map[string]interface{}{"recipe_id": recipe.Id, "error": err.Error()})
		return nil, err
	}

	s.events.Changed(ctx, constant.KnowledgeRecipes, constant.ActionCreated, recipe.Id)
	s.logger.Info(adminModule, "Recipe created", map[string]interface{}{"recipe_id": recipe.Id, "bean_id": bean.Id, "brew_method": recipe.BrewMethod})
	return toRecipeResponse(recipe, bean.Name), nil
}

func (s *adminService) UpdateRecipe(ctx context.Context, id string, req *dto.RecipeRequest) (*dto.RecipeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	recipe, bean, err := s.recipeFromRequest(ctx, uow, id, req)
	if err != nil {
		return nil, err
	}
	if err := uow.RecipeRepository().Update(ctx, recipe); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		s.logger.Error(adminModule, "Failed to commit recipe", map[string]interface{}{"recipe_id": id, "error": err.Error()})
		return nil, err
	}

	s.events.Changed(ctx, constant.KnowledgeRecipes, constant.ActionUpdated, id)
	s.logger.Info(adminModule, "Recipe updated", map[string]interface{}{"recipe_id": id})
	return toRecipeResponse(recipe, bean.Name), nil
}

func (s *adminService) DeleteRecipe(ctx context.Context, id string) error {
	if err := s.uowFactory.NewUnitOfWork(ctx).RecipeRepository().Delete(ctx, id); err != nil {
		return err
	}
	s.events.Changed(ctx, constant.KnowledgeRecipes, constant.ActionDeleted, id)
	s.logger.Info(adminModule, "Recipe deleted", map[string]interface{}{"recipe_id": id})
	return nil
}

// ============================================================================
// Troubleshooting
// ============================================================================

func normalizeKey(key string) (string, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return "", entity.NewValidationError("key is required")
	}
	if strings.ContainsAny(key, " \t\n,") {
		return "", entity.NewValidationError("key %q must not contain whitespace or commas", key)
	}
	return key, nil
}

func (s *adminService) problemResponse(ctx context.Context, uow unitofwork.UnitOfWork, key string) (*dto.ProblemResponse, error) {
	problem, err := uow.ProblemRepository().FindOne(ctx, key)
	if err != nil {
		return nil, err
	}
	if problem == nil {
		return nil, entity.ErrProblemNotFound
	}
	phrases, err := uow.TrainingRepository().FindAllByProblem(ctx, key)
	if err != nil {
		return nil, err
	}
	return toProblemResponse(problem, len(phrases)), nil
}

func toProblemResponse(p *entity.Problem, phrases int) *dto.ProblemResponse {
	causes := make([]*dto.CauseResponse, 0, len(p.Causes))
	for _, c := range p.Causes {
		causes = append(causes, &dto.CauseResponse{Key: c.Key, Question: c.Question, Solution: c.Solution})
	}
	return &dto.ProblemResponse{
		Key:             p.Key,
		Description:     p.Description,
		Causes:          causes,
		TrainingPhrases: phrases,
	}
}

func (s *adminService) GetAllProblems(ctx context.Context) ([]*dto.ProblemResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	problems, err := uow.ProblemRepository().FindAll(ctx)
	if err != nil {
		return nil, err
	}
	examples, err := uow.TrainingRepository().FindAll(ctx)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, e := range examples {
		counts[e.Problem]++
	}

	res := make([]*dto.ProblemResponse, 0, len(problems))
	for _, p := range problems {
		res = append(res, toProblemResponse(p, counts[p.Key]))
	}
	return res, nil
}

func (s *adminService) GetProblem(ctx context.Context, key string) (*dto.ProblemResponse, error) {
	return s.problemResponse(ctx, s.uowFactory.NewUnitOfWork(ctx), key)
}

func (s *adminService) CreateProblem(ctx context.Context, req *dto.CreateProblemRequest) (*dto.ProblemResponse, error) {
	key, err := normalizeKey(req.Key)
	if err != nil {
		return nil, err
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	problem := &entity.Problem{Key: key, Description: strings.TrimSpace(req.Description)}
	if err := uow.ProblemRepository().Create(ctx, problem); err != nil {
		return nil, err
	}

	s.events.Changed(ctx, constant.KnowledgeTroubleshooting, constant.ActionCreated, key)
	s.logger.Info(adminModule, "Problem created", map[string]interface{}{"problem": key})
	return toProblemResponse(problem, 0), nil
}

func (s *adminService) UpdateProblem(ctx context.Context, key string, req *dto.UpdateProblemRequest) (*dto.ProblemResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ProblemRepository().UpdateDescription(ctx, key, strings.TrimSpace(req.Description)); err != nil {
		return nil, err
	}
	s.events.Changed(ctx, constant.KnowledgeTroubleshooting, constant.ActionUpdated, key)
	return s.problemResponse(ctx, uow, key)
}

// DeleteProblem drops the problem, its causes and its training phrases in
// one commit.
func (s *adminService) DeleteProblem(ctx context.Context, key string) (*dto.DeleteProblemResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ProblemRepository().Delete(ctx, key); err != nil {
		return nil, err
	}
	removed, err := uow.TrainingRepository().DeleteByProblem(ctx, key)
	if err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		s.logger.Error(adminModule, "Failed to commit problem deletion", map[string]interface{}{"problem": key, "error": err.Error()})
		return nil, err
	}

	s.events.Changed(ctx, constant.KnowledgeTroubleshooting, constant.ActionDeleted, key)
	if removed > 0 {
		s.events.Changed(ctx, constant.KnowledgeTraining, constant.ActionDeleted, key)
	}
	s.logger.Info(adminModule, "Problem deleted", map[string]interface{}{"problem": key, "phrases_removed": removed})
	return &dto.DeleteProblemResponse{Key: key, PhrasesRemoved: removed}, nil
}

func (s *adminService) AddCause(ctx context.Context, problemKey string, req *dto.AddCauseRequest) (*dto.ProblemResponse, error) {
	problemKey, err := normalizeKey(problemKey)
	if err != nil {
		return nil, err
	}
	causeKey, err := normalizeKey(req.Key)
	if err != nil {
		return nil, err
	}
	cause := entity.Cause{
		Key:      causeKey,
		Question: strings.TrimSpace(req.Question),
		Solution: strings.TrimSpace(req.Solution),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	existing, err := uow.ProblemRepository().FindOne(ctx, problemKey)
	if err != nil {
		return nil, err
	}
	created := false
	if existing == nil {
		description := strings.TrimSpace(req.ProblemDescription)
		if description == "" {
			return nil, entity.NewValidationError("a description is required when creating a new problem category")
		}
		if err := uow.ProblemRepository().Create(ctx, &entity.Problem{Key: problemKey, Description: description}); err != nil {
			return nil, err
		}
		created = true
	}
	if err := uow.ProblemRepository().AddCause(ctx, problemKey, cause); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	action := constant.ActionUpdated
	if created {
		action = constant.ActionCreated
	}
	s.events.Changed(ctx, constant.KnowledgeTroubleshooting, action, problemKey)
	s.logger.Info(adminModule, "Cause added", map[string]interface{}{"problem": problemKey, "cause": causeKey, "problem_created": created})
	return s.problemResponse(ctx, s.uowFactory.NewUnitOfWork(ctx), problemKey)
}

func (s *adminService) UpdateCause(ctx context.Context, problemKey, causeKey string, req *dto.UpdateCauseRequest) (*dto.ProblemResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	cause := entity.Cause{
		Key:      causeKey,
		Question: strings.TrimSpace(req.Question),
		Solution: strings.TrimSpace(req.Solution),
	}
	if err := uow.ProblemRepository().UpdateCause(ctx, problemKey, cause); err != nil {
		return nil, err
	}
	s.events.Changed(ctx, constant.KnowledgeTroubleshooting, constant.ActionUpdated, problemKey)
	return s.problemResponse(ctx, uow, problemKey)
}

func (s *adminService) DeleteCause(ctx context.Context, problemKey, causeKey string) (*dto.ProblemResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ProblemRepository().DeleteCause(ctx, problemKey, causeKey); err != nil {
		return nil, err
	}
	s.events.Changed(ctx, constant.KnowledgeTroubleshooting, constant.ActionUpdated, problemKey)
	s.logger.Info(adminModule, "Cause deleted", map[string]interface{}{"problem": problemKey, "cause": causeKey})
	return s.problemResponse(ctx, uow, problemKey)
}

// ============================================================================
// Training data
// ============================================================================

func (s *adminService) GetTrainingData(ctx context.Context, problem string) ([]*dto.TrainingExampleDto, error) {
	repo := s.uowFactory.NewUnitOfWork(ctx).TrainingRepository()

	var (
		examples []entity.TrainingExample
		err      error
	)
	if problem == "" {
		examples, err = repo.FindAll(ctx)
	} else {
		examples, err = repo.FindAllByProblem(ctx, problem)
	}
	if err != nil {
		return nil, err
	}

	res := make([]*dto.TrainingExampleDto, 0, len(examples))
	for _, e := range examples {
		res = append(res, &dto.TrainingExampleDto{Text: e.Text, Problem: e.Problem})
	}
	return res, nil
}

// AddTrainingPhrases takes one phrase per line. Blank lines and pairs that
// already exist are skipped.
func (s *adminService) AddTrainingPhrases(ctx context.Context, req *dto.AddTrainingRequest) (*dto.TrainingChangeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	problem, err := uow.ProblemRepository().FindOne(ctx, req.Problem)
	if err != nil {
		return nil, err
	}
	if problem == nil {
		return nil, entity.ErrProblemNotFound
	}

	var examples []entity.TrainingExample
	for _, line := range strings.Split(req.Phrases, "\n") {
		if phrase := strings.TrimSpace(line); phrase != "" {
			examples = append(examples, entity.TrainingExample{Text: phrase, Problem: problem.Key})
		}
	}
	if len(examples) == 0 {
		return nil, entity.NewValidationError("please enter at least one training phrase")
	}

	added, err := uow.TrainingRepository().Add(ctx, examples)
	if err != nil {
		return nil, err
	}
	all, err := uow.TrainingRepository().FindAllByProblem(ctx, problem.Key)
	if err != nil {
		return nil, err
	}

	if added > 0 {
		s.events.Changed(ctx, constant.KnowledgeTraining, constant.ActionCreated, problem.Key)
	}
	s.logger.Info(adminModule, "Training phrases added", map[string]interface{}{"problem": problem.Key, "added": added, "submitted": len(examples)})
	return &dto.TrainingChangeResponse{Changed: added, Total: len(all)}, nil
}

func (s *adminService) DeleteTrainingExamples(ctx context.Context, req *dto.DeleteTrainingRequest) (*dto.TrainingChangeResponse, error) {
	examples := make([]entity.TrainingExample, 0, len(req.Examples))
	for _, e := range req.Examples {
		examples = append(examples, entity.TrainingExample{Text: e.Text, Problem: e.Problem})
	}

	repo := s.uowFactory.NewUnitOfWork(ctx).TrainingRepository()
	removed, err := repo.Delete(ctx, examples)
	if err != nil {
		return nil, err
	}
	all, err := repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	if removed > 0 {
		s.events.Changed(ctx, constant.KnowledgeTraining, constant.ActionDeleted, "")
	}
	return &dto.TrainingChangeResponse{Changed: removed, Total: len(all)}, nil
}

// ============================================================================
// Operations
// ============================================================================

func toLogResponse(e *logger.LogEntry) *dto.LogListResponse {
	return &dto.LogListResponse{
		Id:        e.Id,
		Timestamp: e.Timestamp,
		Level:     e.Level,
		Module:    e.Module,
		Message:   e.Message,
		Details:   e.Details,
	}
}

func (s *adminService) GetSystemLogs(ctx context.Context, page, limit int, level string) ([]*dto.LogListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 500 {
		limit = 50
	}
	entries, err := s.logs.GetLogs(strings.ToUpper(level), limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	res := make([]*dto.LogListResponse, 0, len(entries))
	for i := range entries {
		res = append(res, toLogResponse(&entries[i]))
	}
	return res, nil
}

func (s *adminService) GetLogDetail(ctx context.Context, logId string) (*dto.LogListResponse, error) {
	entry, err := s.logs.GetLogById(logId)
	if errors.Is(err, logger.ErrLogNotFound) {
		return nil, entity.ErrLogNotFound
	}
	if err != nil {
		return nil, err
	}
	return toLogResponse(entry), nil
}

func (s *adminService) Reindex(ctx context.Context) (*dto.IndexStatusResponse, error) {
	status, err := s.index.Rebuild(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild indexes: %w", err)
	}
	return status, nil
}

func (s *adminService) IndexStatus(ctx context.Context) *dto.IndexStatusResponse {
	return s.index.Status()
}

func (s *adminService) Snapshot(ctx context.Context) (*dto.SnapshotResponse, error) {
	if s.snapshots == nil {
		return nil, entity.ErrSnapshotsDisabled
	}
	result, err := s.snapshots.Upload(ctx, s.knowledgeFiles)
	if err != nil {
		s.logger.Error(adminModule, "Knowledge snapshot failed", map[string]interface{}{"error": err.Error()})
		return nil, err
	}
	s.logger.Info(adminModule, "Knowledge snapshot uploaded", map[string]interface{}{"bucket": result.Bucket, "objects": len(result.Keys)})
	return &dto.SnapshotResponse{Bucket: result.Bucket, Keys: result.Keys, CreatedAt: result.CreatedAt}, nil
}

func (s *adminService) GetTranscript(ctx context.Context, sessionId string, page, limit int) (*dto.TranscriptResponse, error) {
	if s.transcripts == nil {
		return nil, entity.ErrTranscriptsDisabled
	}
	return s.transcripts.History(ctx, sessionId, page, limit)
}
