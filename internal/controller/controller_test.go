package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"baristabox-be/internal/dto"
	"baristabox-be/internal/entity"
	"baristabox-be/internal/pkg/serverutils"
	"baristabox-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "s3cret"

// stubAdmin implements only what the tests call; anything else panics on
// the nil embedded interface.
type stubAdmin struct {
	service.IAdminService
	created *dto.BeanRequest
}

func (s *stubAdmin) Login(_ context.Context, req *dto.AdminLoginRequest) (*dto.AdminLoginResponse, error) {
	if req.Password != "espresso" {
		return nil, entity.ErrInvalidCredentials
	}
	return &dto.AdminLoginResponse{AccessToken: "token"}, nil
}

func (s *stubAdmin) GetAllBeans(context.Context) ([]*dto.BeanResponse, error) {
	return []*dto.BeanResponse{{Id: "cb_001", Name: "Ethiopia Yirgacheffe"}}, nil
}

func (s *stubAdmin) CreateBean(_ context.Context, req *dto.BeanRequest) (*dto.BeanResponse, error) {
	s.created = req
	return &dto.BeanResponse{Id: "cb_12345678", Name: req.Name}, nil
}

func (s *stubAdmin) GetRecipe(_ context.Context, id string) (*dto.RecipeResponse, error) {
	return nil, entity.ErrRecipeNotFound
}

type stubChat struct {
	service.IChatbotService
}

func (stubChat) CreateSession(context.Context) (*dto.CreateSessionResponse, error) {
	return &dto.CreateSessionResponse{Id: "s-1", Mode: "intent_classifier"}, nil
}

func (stubChat) SendChat(_ context.Context, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	if req.ChatSessionId != "s-1" {
		return nil, entity.ErrSessionNotFound
	}
	return &dto.SendChatResponse{ChatSessionId: req.ChatSessionId, Reply: &dto.SendChatResponseChat{Chat: "hi"}}, nil
}

func newTestApp(admin service.IAdminService) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	api := app.Group("/api")
	NewChatbotController(stubChat{}, nil).RegisterRoutes(api)
	NewAdminController(admin, testSecret).RegisterRoutes(api)
	return app
}

func adminToken(t *testing.T, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "admin",
		"role":    role,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func do(t *testing.T, app *fiber.App, method, path, token, body string) (int, serverutils.BaseResponse) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)

	var out serverutils.BaseResponse
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

func TestAdminRoutes(t *testing.T) {
	admin := &stubAdmin{}
	app := newTestApp(admin)
	token := adminToken(t, "admin")

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   string
		want   int
	}{
		{name: "login", method: "POST", path: "/api/admin/login", body: `{"username":"admin","password":"espresso"}`, want: 200},
		{name: "wrong password", method: "POST", path: "/api/admin/login", body: `{"username":"admin","password":"latte"}`, want: 401},
		{name: "login missing fields", method: "POST", path: "/api/admin/login", body: `{}`, want: 400},
		{name: "no token", method: "GET", path: "/api/admin/beans", want: 401},
		{name: "not an admin", method: "GET", path: "/api/admin/beans", token: adminToken(t, "user"), want: 403},
		{name: "list beans", method: "GET", path: "/api/admin/beans", token: token, want: 200},
		{name: "missing recipe", method: "GET", path: "/api/admin/recipes/br_404", token: token, want: 404},
		{name: "malformed body", method: "POST", path: "/api/admin/beans", token: token, body: `{"name":`, want: 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := do(t, app, tt.method, tt.path, tt.token, tt.body)
			assert.Equal(t, tt.want, status)
		})
	}
}

func TestCreateBeanBindsBody(t *testing.T) {
	admin := &stubAdmin{}
	app := newTestApp(admin)

	body := `{"name":"Kenya Nyeri AA","origin":"Kenya","type":"Arabica","roast_level":2,"processing":"Washed",` +
		`"tasting_notes":"Blackcurrant","expert_tags":["Fruity","Bright"]}`
	status, res := do(t, app, "POST", "/api/admin/beans", adminToken(t, "admin"), body)

	require.Equal(t, 201, status)
	assert.True(t, res.Success)
	require.NotNil(t, admin.created)
	assert.Equal(t, "Kenya Nyeri AA", admin.created.Name)
	assert.Equal(t, []string{"Fruity", "Bright"}, admin.created.ExpertTags)
}

func TestChatRoutes(t *testing.T) {
	app := newTestApp(&stubAdmin{})

	status, res := do(t, app, "POST", "/api/chat/v1/session", "", "")
	assert.Equal(t, 201, status)
	assert.True(t, res.Success)

	status, _ = do(t, app, "POST", "/api/chat/v1/send", "", `{"chat_session_id":"s-1","chat":"hello"}`)
	assert.Equal(t, 200, status)

	status, res = do(t, app, "POST", "/api/chat/v1/send", "", `{"chat_session_id":"s-1"}`)
	assert.Equal(t, 400, status)
	assert.False(t, res.Success)

	status, _ = do(t, app, "POST", "/api/chat/v1/send", "", `{"chat_session_id":"gone","chat":"hello"}`)
	assert.Equal(t, 404, status)
}
