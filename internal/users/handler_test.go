package users

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"recruit-backend/internal/shared/auth"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			if claims, err := auth.VerifyJWT(strings.TrimPrefix(header, "Bearer ")); err == nil {
				c.Set("userId", claims.Sub)
			}
		}
		c.Next()
	})
	NewHandler(NewService(NewMemoryRepo())).RegisterRoutes(router.Group("/api/v1"))
	return router
}

func TestRegisterLoginMeFlow(t *testing.T) {
	router := newTestRouter(t)

	registerBody := `{"email":"jane@example.com","password":"hunter22","name":"Jane Doe","companyName":"Acme"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(registerBody))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	if strings.Contains(resp.Body.String(), "passwordHash") {
		t.Fatalf("response must not leak password hash: %s", resp.Body.String())
	}

	loginBody := `{"email":"jane@example.com","password":"hunter22"}`
	reqLogin := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(loginBody))
	reqLogin.Header.Set("Content-Type", "application/json")
	respLogin := httptest.NewRecorder()
	router.ServeHTTP(respLogin, reqLogin)
	if respLogin.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", respLogin.Code, respLogin.Body.String())
	}

	var session AuthResult
	if err := json.NewDecoder(respLogin.Body).Decode(&session); err != nil {
		t.Fatalf("decode login: %v", err)
	}

	reqMe := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	reqMe.Header.Set("Authorization", "Bearer "+session.Token)
	respMe := httptest.NewRecorder()
	router.ServeHTTP(respMe, reqMe)
	if respMe.Code != http.StatusOK {
		t.Fatalf("me: expected 200, got %d: %s", respMe.Code, respMe.Body.String())
	}
	if !strings.Contains(respMe.Body.String(), "jane@example.com") {
		t.Fatalf("unexpected me response: %s", respMe.Body.String())
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":"ghost@example.com","password":"pw"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestRegisterConflict(t *testing.T) {
	router := newTestRouter(t)

	body := `{"email":"jane@example.com","password":"hunter22","name":"Jane"}`
	first := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(first, req)
	if first.Code != http.StatusCreated {
		t.Fatalf("first register: expected 201, got %d", first.Code)
	}

	second := httptest.NewRecorder()
	reqAgain := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	reqAgain.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(second, reqAgain)
	if second.Code != http.StatusConflict {
		t.Fatalf("second register: expected 409, got %d", second.Code)
	}
}
