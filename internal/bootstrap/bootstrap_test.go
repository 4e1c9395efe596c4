package bootstrap

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/institute/internal/app/models/dto"
	"github.com/yigit/institute/internal/config"
	"github.com/yigit/institute/internal/pkg/auth"
	"golang.org/x/crypto/bcrypt"
)

const (
	adminEmail    = "admin@institute.test"
	adminPassword = "admin-pass-123"
)

type envelope struct {
	Success bool             `json:"success"`
	Data    json.RawMessage  `json:"data"`
	Error   *dto.ErrorDetail `json:"error"`
}

type apiClient struct {
	t      *testing.T
	router *gin.Engine
}

func newAPI(t *testing.T) *apiClient {
	t.Helper()
	auth.BcryptCost = bcrypt.MinCost

	cfg := &config.Config{}
	cfg.Server.Mode = "production"
	cfg.Database.Driver = config.DriverMemory
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.AccessTokenExpiration = "1h"
	cfg.JWT.Issuer = "institute.test"
	cfg.Seed.Enabled = true
	cfg.Seed.AdminName = "Root"
	cfg.Seed.AdminEmail = adminEmail
	cfg.Seed.AdminPassword = adminPassword

	lgr := zerolog.Nop()
	database, err := SetupDatabase(cfg, lgr)
	require.NoError(t, err)
	require.Nil(t, database)

	deps, err := BuildDependencies(cfg, database, lgr)
	require.NoError(t, err)

	return &apiClient{t: t, router: SetupRouter(cfg, deps, lgr)}
}

func (a *apiClient) do(method, path, token string, body interface{}) (int, envelope) {
	a.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w.Code, env
}

func (a *apiClient) login(email, password string) string {
	a.t.Helper()
	status, env := a.do(http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{Email: email, Password: password})
	require.Equal(a.t, http.StatusOK, status)
	var resp dto.LoginResponse
	require.NoError(a.t, json.Unmarshal(env.Data, &resp))
	return resp.Token.AccessToken
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

func TestAPI_EndToEnd(t *testing.T) {
	api := newAPI(t)
	admin := api.login(adminEmail, adminPassword)

	status, env := api.do(http.MethodPost, "/api/v1/teachers", admin, map[string]interface{}{
		"user":                  map[string]string{"name": "Tess", "email": "tess@institute.test", "password": "password123"},
		"subjectSpecialization": "Physics",
	})
	require.Equal(t, http.StatusCreated, status)
	teacher := decode[dto.TeacherDTO](t, env)
	require.NotNil(t, teacher.User)

	status, env = api.do(http.MethodPost, "/api/v1/courses", admin, map[string]interface{}{
		"courseName": "Mechanics",
		"teacherId":  teacher.ID,
	})
	require.Equal(t, http.StatusCreated, status)
	course := decode[dto.CourseDTO](t, env)

	status, env = api.do(http.MethodPost, "/api/v1/batches", admin, map[string]interface{}{
		"batchName": "Evening A",
		"course":    map[string]int64{"courseId": course.ID},
	})
	require.Equal(t, http.StatusCreated, status)
	batch := decode[dto.BatchDTO](t, env)
	require.NotNil(t, batch.Course)
	require.NotNil(t, batch.Course.Teacher)
	assert.Equal(t, "Tess", batch.Course.Teacher.User.Name)

	status, env = api.do(http.MethodPost, "/api/v1/students", admin, map[string]interface{}{
		"user":    map[string]string{"name": "Sam", "email": "sam@institute.test", "password": "password123"},
		"batchId": batch.ID,
	})
	require.Equal(t, http.StatusCreated, status)
	student := decode[dto.StudentDTO](t, env)

	studentToken := api.login("sam@institute.test", "password123")

	status, _ = api.do(http.MethodPost, "/api/v1/students/enroll", studentToken, dto.EnrollRequest{StudentID: student.ID, CourseID: course.ID})
	require.Equal(t, http.StatusCreated, status)

	status, env = api.do(http.MethodGet, fmt.Sprintf("/api/v1/students/%d", student.ID), studentToken, nil)
	require.Equal(t, http.StatusOK, status)
	got := decode[dto.StudentDTO](t, env)
	require.Len(t, got.Enrollments, 1)
	require.NotNil(t, got.Batch)
	require.NotNil(t, got.Batch.Course)
	assert.Equal(t, "Sam", got.User.Name)
	assert.Equal(t, "Mechanics", got.Enrollments[0].Course.Name)

	status, env = api.do(http.MethodGet, fmt.Sprintf("/api/v1/students/%d/batches", student.ID), studentToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]dto.BatchDTO](t, env), 1)

	// partial update keeps the name
	status, env = api.do(http.MethodPut, fmt.Sprintf("/api/v1/courses/%d", course.ID), admin, map[string]string{"description": "Newton"})
	require.Equal(t, http.StatusOK, status)
	updated := decode[dto.CourseDTO](t, env)
	assert.Equal(t, "Mechanics", updated.Name)
	assert.Equal(t, "Newton", updated.Description)

	status, _ = api.do(http.MethodGet, "/api/v1/reports/students", studentToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, env = api.do(http.MethodGet, "/api/v1/admin/reports/students", admin, nil)
	require.Equal(t, http.StatusOK, status)
	report := decode[[]dto.StudentReportDTO](t, env)
	require.Len(t, report, 1)
	assert.Equal(t, int64(1), report[0].EnrolledCourses)
	require.NotNil(t, report[0].BatchName)
	assert.Equal(t, "Evening A", *report[0].BatchName)

	status, _ = api.do(http.MethodDelete, fmt.Sprintf("/api/v1/batches/%d", batch.ID), admin, nil)
	assert.Equal(t, http.StatusNoContent, status)
	status, env = api.do(http.MethodDelete, fmt.Sprintf("/api/v1/batches/%d", batch.ID), admin, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, dto.ErrorCodeResourceNotFound, env.Error.Code)

	status, env = api.do(http.MethodGet, fmt.Sprintf("/api/v1/students/%d", student.ID), admin, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Nil(t, decode[dto.StudentDTO](t, env).Batch)
}

func TestAPI_Errors(t *testing.T) {
	api := newAPI(t)
	admin := api.login(adminEmail, adminPassword)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   interface{}
		status int
		code   dto.ErrorCode
	}{
		{"no token", http.MethodGet, "/api/v1/students", "", nil, http.StatusUnauthorized, dto.ErrorCodeUnauthorized},
		{"bad id", http.MethodGet, "/api/v1/teachers/abc", admin, nil, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"missing course", http.MethodGet, "/api/v1/courses/42", admin, nil, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"unknown teacher", http.MethodPost, "/api/v1/courses", admin, map[string]interface{}{"courseName": "X", "teacherId": 999}, http.StatusBadRequest, dto.ErrorCodeDependencyMissing},
		{"course without teacher", http.MethodPost, "/api/v1/courses", admin, map[string]interface{}{"courseName": "X"}, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"register taken email", http.MethodPost, "/api/v1/auth/register", "", dto.RegisterRequest{Name: "A", Email: adminEmail, Password: "password123"}, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{"login unknown email", http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{Email: "ghost@institute.test", Password: "password123"}, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"login wrong password", http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{Email: adminEmail, Password: "wrong-pass"}, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := api.do(tt.method, tt.path, tt.token, tt.body)
			assert.Equal(t, tt.status, status)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.code, env.Error.Code)
			assert.False(t, env.Success)
		})
	}
}

func TestAPI_RoleGates(t *testing.T) {
	api := newAPI(t)
	admin := api.login(adminEmail, adminPassword)

	status, env := api.do(http.MethodPost, "/api/v1/auth/register", "", dto.RegisterRequest{
		Name: "Tom", Email: "tom@institute.test", Password: "password123", Role: "TEACHER",
	})
	require.Equal(t, http.StatusCreated, status)
	registered := decode[dto.RegisterResponse](t, env)
	teacher := api.login("tom@institute.test", "password123")

	status, env = api.do(http.MethodGet, "/api/v1/auth/teacher-data", teacher, nil)
	require.Equal(t, http.StatusOK, status)
	caller := decode[struct {
		Scope  string `json:"scope"`
		UserID int64  `json:"userId"`
		Role   string `json:"role"`
	}](t, env)
	assert.Equal(t, "teacher", caller.Scope)
	assert.Equal(t, registered.UserID, caller.UserID)
	assert.Equal(t, "TEACHER", caller.Role)
	status, _ = api.do(http.MethodGet, "/api/v1/auth/admin-data", teacher, nil)
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = api.do(http.MethodPost, "/api/v1/batches", teacher, map[string]string{"batchName": "B"})
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = api.do(http.MethodGet, "/api/v1/reports/students", teacher, nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = api.do(http.MethodGet, "/api/v1/students/courses", teacher, nil)
	assert.Equal(t, http.StatusOK, status)

	status, env = api.do(http.MethodGet, "/api/v1/auth/users", admin, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]dto.UserDTO](t, env), 2)
}

func TestHealthAndPing(t *testing.T) {
	api := newAPI(t)

	for _, path := range []string{"/api/v1/health", "/ping"} {
		w := httptest.NewRecorder()
		api.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}
