package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hsaito/project-tracking-api/internal/auth"
	"github.com/hsaito/project-tracking-api/internal/config"
	"github.com/hsaito/project-tracking-api/internal/database"
	"github.com/hsaito/project-tracking-api/internal/middleware"
	"github.com/hsaito/project-tracking-api/internal/models"
	"github.com/hsaito/project-tracking-api/internal/repository"
	"github.com/hsaito/project-tracking-api/internal/services"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	db          *gorm.DB
	router      *gin.Engine
	authService *services.AuthService
}

func setupTestEnv(t *testing.T) testEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Task{},
		&models.BlacklistedToken{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	cfg := &config.Config{
		JWTSecret:       "test-secret",
		AccessTokenTTL:  30 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	tokenRepo := repository.NewTokenRepository(db)

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	authService := services.NewAuthService(userRepo, tokenRepo, tokens)
	projectService := services.NewProjectService(projectRepo)
	taskService := services.NewTaskService(taskRepo)

	authHandler := NewAuthHandler(authService, cfg)
	projectHandler := NewProjectHandler(projectService)
	taskHandler := NewTaskHandler(taskService)

	r := gin.New()

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/logout", authHandler.Logout)
		authGroup.POST("/refresh", authHandler.Refresh)
		authGroup.GET("/me", middleware.RequireAuth(tokens), authHandler.GetCurrentUser)
	}

	projects := r.Group("/projects")
	projects.Use(middleware.RequireAuth(tokens))
	{
		projects.GET("", projectHandler.ListProjects)
		projects.POST("", projectHandler.CreateProject)

		detail := projects.Group("/:project_id")
		detail.Use(middleware.RequireProjectAccess())
		{
			detail.GET("", projectHandler.GetProject)
			detail.PUT("", projectHandler.UpdateProject)
			detail.PATCH("", projectHandler.UpdateProject)
			detail.DELETE("", projectHandler.DeleteProject)

			tasks := detail.Group("/tasks")
			{
				tasks.GET("", taskHandler.ListTasks)
				tasks.POST("", taskHandler.CreateTask)

				taskDetail := tasks.Group("/:id")
				taskDetail.Use(middleware.RequireTaskAccess())
				{
					taskDetail.GET("", taskHandler.GetTask)
					taskDetail.PUT("", taskHandler.UpdateTask)
					taskDetail.PATCH("", taskHandler.UpdateTask)
					taskDetail.DELETE("", taskHandler.DeleteTask)
				}
			}
		}
	}

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return testEnv{
		db:          db,
		router:      r,
		authService: authService,
	}
}

// doJSON performs a request against the test router, carrying any session
// cookies along.
func (env testEnv) doJSON(t *testing.T, method, url string, payload any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, url, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// registerUser registers an account through the API and returns its session
// cookies.
func (env testEnv) registerUser(t *testing.T, email, password string) []*http.Cookie {
	t.Helper()

	w := env.doJSON(t, http.MethodPost, "/auth/register", map[string]string{
		"email":    email,
		"password": password,
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func findCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}
