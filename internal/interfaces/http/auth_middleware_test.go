package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain/entity"
	apphttp "github.com/chauhanravicr7-netizen/dockside-backend/internal/interfaces/http"
	pkgjwt "github.com/chauhanravicr7-netizen/dockside-backend/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testCompanyID = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "dockside-test"
	testExpMin    = 60
)

// buildRoleApp: AuthMiddleware + RequireRole + handler que responde 200 si pasa.
func buildRoleApp(allowedRoles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"ok": true, "role": apphttp.GetRole(c)})
		},
	)
	return app
}

func tokenFor(t *testing.T, role string, expMin int) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, pkgjwt.Identity{
		UserID: testUserID, CompanyID: testCompanyID, Role: role, Email: "ana@acme.test",
	}, testIssuer, expMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func getProtected(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestRequireRole(t *testing.T) {
	cases := []struct {
		name    string
		allowed []string
		header  func(t *testing.T) string
		status  int
		code    string
	}{
		{
			name:    "admin en ruta de admin",
			allowed: []string{entity.RoleCompanyAdmin},
			header:  func(t *testing.T) string { return tokenFor(t, entity.RoleCompanyAdmin, testExpMin) },
			status:  http.StatusOK,
		},
		{
			name:    "manager en ruta admin o manager",
			allowed: []string{entity.RoleCompanyAdmin, entity.RoleManager},
			header:  func(t *testing.T) string { return tokenFor(t, entity.RoleManager, testExpMin) },
			status:  http.StatusOK,
		},
		{
			name:    "staff bloqueado en ruta de admin",
			allowed: []string{entity.RoleCompanyAdmin},
			header:  func(t *testing.T) string { return tokenFor(t, entity.RoleStaff, testExpMin) },
			status:  http.StatusForbidden,
			code:    "FORBIDDEN",
		},
		{
			name:    "token sin rol",
			allowed: []string{entity.RoleCompanyAdmin},
			header:  func(t *testing.T) string { return tokenFor(t, "", testExpMin) },
			status:  http.StatusUnauthorized,
			code:    "MISSING_ROLE",
		},
		{
			name:    "sin header",
			allowed: []string{entity.RoleCompanyAdmin},
			header:  func(*testing.T) string { return "" },
			status:  http.StatusUnauthorized,
			code:    "MISSING_TOKEN",
		},
		{
			name:    "esquema distinto de Bearer",
			allowed: []string{entity.RoleCompanyAdmin},
			header:  func(*testing.T) string { return "Basic abc" },
			status:  http.StatusUnauthorized,
			code:    "INVALID_TOKEN",
		},
		{
			name:    "token malformado",
			allowed: []string{entity.RoleCompanyAdmin},
			header:  func(*testing.T) string { return "Bearer token.invalido.aqui" },
			status:  http.StatusUnauthorized,
			code:    "INVALID_TOKEN",
		},
		{
			name:    "token expirado",
			allowed: []string{entity.RoleCompanyAdmin},
			header:  func(t *testing.T) string { return tokenFor(t, entity.RoleCompanyAdmin, -1) },
			status:  http.StatusUnauthorized,
			code:    "INVALID_TOKEN",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := getProtected(t, buildRoleApp(tc.allowed...), tc.header(t))
			defer resp.Body.Close()

			assert.Equal(t, tc.status, resp.StatusCode)
			if tc.code != "" {
				body, _ := io.ReadAll(resp.Body)
				assert.Contains(t, string(body), tc.code)
			}
		})
	}
}

func TestAuthMiddleware_ExtraeClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":    apphttp.GetUserID(c),
			"company_id": apphttp.GetCompanyID(c),
			"role":       apphttp.GetRole(c),
			"email":      apphttp.GetEmail(c),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenFor(t, entity.RoleCompanyAdmin, testExpMin))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testCompanyID, body["company_id"])
	assert.Equal(t, entity.RoleCompanyAdmin, body["role"])
	assert.Equal(t, "ana@acme.test", body["email"])
}

func TestAuthMiddleware_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate("otro-secret", pkgjwt.Identity{UserID: testUserID, CompanyID: testCompanyID, Role: entity.RoleStaff}, testIssuer, testExpMin)
	require.NoError(t, err)

	resp := getProtected(t, buildRoleApp(entity.RoleStaff), "Bearer "+tok)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
