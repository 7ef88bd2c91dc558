package controller

import (
	"strconv"

	"baristabox-be/internal/dto"
	"baristabox-be/internal/pkg/serverutils"
	"baristabox-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	Login(ctx *fiber.Ctx) error

	GetAllBeans(ctx *fiber.Ctx) error
	GetBean(ctx *fiber.Ctx) error
	CreateBean(ctx *fiber.Ctx) error
	UpdateBean(ctx *fiber.Ctx) error
	DeleteBean(ctx *fiber.Ctx) error

	GetAllRecipes(ctx *fiber.Ctx) error
	GetRecipe(ctx *fiber.Ctx) error
	CreateRecipe(ctx *fiber.Ctx) error
	UpdateRecipe(ctx *fiber.Ctx) error
	DeleteRecipe(ctx *fiber.Ctx) error

	GetAllProblems(ctx *fiber.Ctx) error
	GetProblem(ctx *fiber.Ctx) error
	CreateProblem(ctx *fiber.Ctx) error
	UpdateProblem(ctx *fiber.Ctx) error
	DeleteProblem(ctx *fiber.Ctx) error
	AddCause(ctx *fiber.Ctx) error
	UpdateCause(ctx *fiber.Ctx) error
	DeleteCause(ctx *fiber.Ctx) error

	GetTrainingData(ctx *fiber.Ctx) error
	AddTrainingPhrases(ctx *fiber.Ctx) error
	DeleteTrainingExamples(ctx *fiber.Ctx) error

	GetLogs(ctx *fiber.Ctx) error
	GetLogDetail(ctx *fiber.Ctx) error
	Reindex(ctx *fiber.Ctx) error
	IndexStatus(ctx *fiber.Ctx) error
	Snapshot(ctx *fiber.Ctx) error
	GetTranscript(ctx *fiber.Ctx) error
}

type adminController struct {
	service   service.IAdminService
	jwtSecret string
}

func NewAdminController(service service.IAdminService, jwtSecret string) IAdminController {
	return &adminController{
		service:   service,
		jwtSecret: jwtSecret,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin")

	// Public Admin Route (Login)
	h.Post("/login", c.Login)

	// Protected Routes
	h.Use(serverutils.AdminJwtMiddleware(c.jwtSecret))

	// Beans
	h.Get("/beans", c.GetAllBeans)
	h.Post("/beans", c.CreateBean)
	h.Get("/beans/:id", c.GetBean)
	h.Put("/beans/:id", c.UpdateBean)
	h.Delete("/beans/:id", c.DeleteBean)

	// Recipes
	h.Get("/recipes", c.GetAllRecipes)
	h.Post("/recipes", c.CreateRecipe)
	h.Get("/recipes/:id", c.GetRecipe)
	h.Put("/recipes/:id", c.UpdateRecipe)
	h.Delete("/recipes/:id", c.DeleteRecipe)

	// Troubleshooting
	h.Get("/problems", c.GetAllProblems)
	h.Post("/problems", c.CreateProblem)
	h.Get("/problems/:key", c.GetProblem)
	h.Put("/problems/:key", c.UpdateProblem)
	h.Delete("/problems/:key", c.DeleteProblem)
	h.Post("/problems/:key/causes", c.AddCause)
	h.Put("/problems/:key/causes/:cause", c.UpdateCause)
	h.Delete("/problems/:key/causes/:cause", c.DeleteCause)

	// Training data
	h.Get("/training", c.GetTrainingData)
	h.Post("/training", c.AddTrainingPhrases)
	h.Delete("/training", c.DeleteTrainingExamples)

	// Operations
	h.Get("/logs", c.GetLogs)
	h.Get("/logs/:id", c.GetLogDetail)
	h.Get("/index", c.IndexStatus)
	h.Post("/reindex", c.Reindex)
	h.Post("/snapshot", c.Snapshot)
	h.Get("/transcripts/:id", c.GetTranscript)
}

// parse binds and validates a JSON body.
func parse(ctx *fiber.Ctx, req interface{}) error {
	if err := ctx.BodyParser(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	return serverutils.ValidateRequest(req)
}

func (c *adminController) Login(ctx *fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if err := parse(ctx, &req); err != nil {
		return err
	}
	res, err := c.service.Login(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Admin login successful", res))
}

// ============================================================================
// Beans
// ============================================================================

func (c *adminController) GetAllBeans(ctx *fiber.Ctx) error {
	res, err := c.service.GetAllBeans(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Bean list", res))
}

func (c *adminController) GetBean(ctx *fiber.Ctx) error {
	res, err := c.service.GetBean(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Bean detail", res))
}

func (c *adminController) CreateBean(ctx *fiber.Ctx) error {
	var req dto.BeanRequest
	if err := parse(ctx, &req); err != nil {
		return err
	}
	res, err := c.service.CreateBean(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Bean created", res))
}

func (c *adminController) UpdateBean(ctx *fiber.Ctx) error {
	var req dto.BeanRequest
	if err := parse(ctx, &req); err != nil {
		return err
	}
	res, err := c.service.UpdateBean(ctx.Context(), ctx.Params("id"), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Bean updated", res))
}

func (c *adminController) DeleteBean(ctx *fiber.Ctx) error {
	res, err := c.service.DeleteBean(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Bean deleted", res))
}

// ============================================================================
// Recipes
// ============================================================================

func (c *adminController) GetAllRecipes(ctx *fiber.Ctx) error {
	res, err := c.service.GetAllRecipes(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Recipe list", res))
}

func (c *adminController) GetRecipe(ctx *fiber.Ctx) error {
	res, err := c.service.GetRecipe(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Recipe detail", res))
}

func (c *adminController) CreateRecipe(ctx *fiber.Ctx) error {
	var req dto.RecipeRequest
	if err := parse(ctx, &req); err != nil {
		return err
	}
	res, err := c.service.CreateRecipe(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Recipe created", res))
}

func (c *adminController) UpdateRecipe(ctx *fiber.Ctx) error {
	var req dto.RecipeRequest
	if err := parse(ctx, &req); err != nil {
		return err
	}
	res, err := c.service.UpdateRecipe(ctx.Context(), ctx.Params("id"), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Recipe updated", res))
}

func (c *adminController) DeleteRecipe(ctx *fiber.Ctx) error {
	if err := c.service.DeleteRecipe(ctx.Context(), ctx.Params("id")); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Recipe deleted", nil))
}

// ============================================================================
// Troubleshooting
// ============================================================================

func (c *adminController) GetAllProblems(ctx *fiber.Ctx) error {
	res, err := c.service.GetAllProblems(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Problem list", res))
}

func (c *adminController) GetProblem(ctx *fiber.Ctx) error {
	res, err := c.service.GetProblem(ctx.Context(), ctx.Params("key"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Problem detail", res))
}

func (c *adminController) CreateProblem(ctx *fiber.Ctx) error {
	var req dto.CreateProblemRequest
	if err := parse(ctx, &req); err != nil {
		return err
	}
	res, err := c.service.CreateProblem(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Problem created", res))
}

func (c *adminController) UpdateProblem(ctx *fiber.Ctx) error {
	var req dto.UpdateProblemRequest
	if err := parse(ctx, &req); err != nil {
		return err
	}
	res, err := c.service.UpdateProblem(ctx.Context(), ctx.Params("key"), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Problem updated", res))
}

func (c *adminController) DeleteProblem(ctx *fiber.Ctx) error {
	res, err := c.service.DeleteProblem(ctx.Context(), ctx.Params("key"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Problem deleted", res))
}

func (c *adminController) AddCause(ctx *fiber.Ctx) error {
	var req dto.AddCauseRequest
	if err := parse(ctx, &req); err != nil {
		return err
	}
	res, err := c.service.AddCause(ctx.Context(), ctx.Params("key"), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Cause added", res))
}

func (c *adminController) UpdateCause(ctx *fiber.Ctx) error {
	var req dto.UpdateCauseRequest
	if err := parse(ctx, &req); err != nil {
		return err
	}
	res, err := c.service.UpdateCause(ctx.Context(), ctx.Params("key"), ctx.Params("cause"), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Cause updated", res))
}

func (c *adminController) DeleteCause(ctx *fiber.Ctx) error {
	res, err := c.service.DeleteCause(ctx.Context(), ctx.Params("key"), ctx.Params("cause"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Cause deleted", res))
}

// ============================================================================
// Training data
// ============================================================================

func (c *adminController) GetTrainingData(ctx *fiber.Ctx) error {
	res, err := c.service.GetTrainingData(ctx.Context(), ctx.Query("problem"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Training data", res))
}

func (c *adminController) AddTrainingPhrases(ctx *fiber.Ctx) error {
	var req dto.AddTrainingRequest
	if err := parse(ctx, &req); err != nil {
		return err
	}
	res, err := c.service.AddTrainingPhrases(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Training phrases added", res))
}

func (c *adminController) DeleteTrainingExamples(ctx *fiber.Ctx) error {
	var req dto.DeleteTrainingRequest
	if err := parse(ctx, &req); err != nil {
		return err
	}
	res, err := c.service.DeleteTrainingExamples(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Training examples deleted", res))
}

// ============================================================================
// Operations
// ============================================================================

func (c *adminController) GetLogs(ctx *fiber.Ctx) error {
	page, _ := strconv.Atoi(ctx.Query("page", "1"))
	limit, _ := strconv.Atoi(ctx.Query("limit", "50"))

	res, err := c.service.GetSystemLogs(ctx.Context(), page, limit, ctx.Query("level"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("System logs", res))
}

func (c *adminController) GetLogDetail(ctx *fiber.Ctx) error {
	res, err := c.service.GetLogDetail(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Log detail", res))
}

func (c *adminController) IndexStatus(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Index status", c.service.IndexStatus(ctx.Context())))
}

func (c *adminController) Reindex(ctx *fiber.Ctx) error {
	res, err := c.service.Reindex(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Indexes rebuilt", res))
}

func (c *adminController) Snapshot(ctx *fiber.Ctx) error {
	res, err := c.service.Snapshot(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Knowledge snapshot uploaded", res))
}

func (c *adminController) GetTranscript(ctx *fiber.Ctx) error {
	page, _ := strconv.Atoi(ctx.Query("page", "1"))
	limit, _ := strconv.Atoi(ctx.Query("limit", "50"))

	res, err := c.service.GetTranscript(ctx.Context(), ctx.Params("id"), page, limit)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Transcript", res))
}
