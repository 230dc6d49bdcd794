package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/blues/cfp/internal/config"
	"github.com/blues/cfp/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			Secret:          "test-secret",
			AccessTokenTTL:  1,
			RefreshTokenTTL: 24,
		},
		Validation: config.ValidationConfig{
			TitleDenylist:   []string{"scam", "fake", "fraud", "illegal"},
			MessageDenylist: []string{"spam", "scam", "fake", "fraud"},
		},
	}
}

func setupTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, repository.Migrate(db))

	return Setup(db, testConfig())
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func registerAndLogin(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()

	w, _ := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email":      email,
		"password":   "passw0rd1",
		"first_name": "Ann",
		"last_name":  "Lee",
		"phone":      "01012345678",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, resp := doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    email,
		"password": "passw0rd1",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var login struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &login))
	require.NotEmpty(t, login.AccessToken)
	return login.AccessToken
}

func createProject(t *testing.T, r *gin.Engine, token string, now time.Time) int64 {
	t.Helper()

	w, resp := doJSON(t, r, http.MethodPost, "/api/v1/projects", token, gin.H{
		"title":         "Community Solar Garden",
		"details":       "Bring shared solar power to the neighborhood rooftops and community center.",
		"target_amount": 50000,
		"start_date":    now.Format(time.RFC3339),
		"end_date":      now.AddDate(0, 0, 30).Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Project struct {
			Id     int64  `json:"id"`
			Status string `json:"status"`
		} `json:"project"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &created))
	require.NotZero(t, created.Project.Id)
	assert.Equal(t, "active", created.Project.Status)
	return created.Project.Id
}

func TestHealth(t *testing.T) {
	r := setupTestServer(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterLoginContributeFlow(t *testing.T) {
	r := setupTestServer(t)
	now := time.Now()

	owner := registerAndLogin(t, r, "owner@example.com")
	backer := registerAndLogin(t, r, "backer@example.com")
	projectId := createProject(t, r, owner, now)

	// 贡献后项目金额应更新
	w, _ := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/projects/%d/contributions", projectId), backer, gin.H{
		"amount":  400,
		"message": "good luck",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, resp := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/projects/%d", projectId), "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var detail struct {
		Project struct {
			CurrentAmount     int64   `json:"currentAmount"`
			FundingPercentage float64 `json:"fundingPercentage"`
		} `json:"project"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &detail))
	assert.Equal(t, int64(400), detail.Project.CurrentAmount)
	assert.InDelta(t, 0.8, detail.Project.FundingPercentage, 0.001)

	// 公开的贡献记录列表
	w, resp = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/projects/%d/contributions", projectId), "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list struct {
		Contributions []struct {
			Amount  int64  `json:"amount"`
			Message string `json:"message"`
		} `json:"contributions"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &list))
	require.Len(t, list.Contributions, 1)
	assert.Equal(t, int64(400), list.Contributions[0].Amount)
}

func TestAuthRequired(t *testing.T) {
	r := setupTestServer(t)
	now := time.Now()

	// 未登录不能创建项目
	w, _ := doJSON(t, r, http.MethodPost, "/api/v1/projects", "", gin.H{
		"title":         "Community Solar Garden",
		"details":       "Bring shared solar power to the neighborhood rooftops and community center.",
		"target_amount": 50000,
		"start_date":    now.Format(time.RFC3339),
		"end_date":      now.AddDate(0, 0, 30).Format(time.RFC3339),
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 伪造令牌同样被拒绝
	w, _ = doJSON(t, r, http.MethodGet, "/api/v1/my/projects", "bogus-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateProjectForbiddenForNonOwner(t *testing.T) {
	r := setupTestServer(t)
	now := time.Now()

	owner := registerAndLogin(t, r, "owner@example.com")
	other := registerAndLogin(t, r, "other@example.com")
	projectId := createProject(t, r, owner, now)

	w, _ := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/v1/projects/%d", projectId), other, gin.H{
		"title": "Community Solar Garden v2",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/v1/projects/%d", projectId), owner, gin.H{
		"title": "Community Solar Garden v2",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateProjectValidationErrors(t *testing.T) {
	r := setupTestServer(t)
	now := time.Now()
	owner := registerAndLogin(t, r, "owner@example.com")

	w, resp := doJSON(t, r, http.MethodPost, "/api/v1/projects", owner, gin.H{
		"title":         "Scam quick money",
		"details":       "Bring shared solar power to the neighborhood rooftops and community center.",
		"target_amount": 50000,
		"start_date":    now.Format(time.RFC3339),
		"end_date":      now.AddDate(0, 0, 30).Format(time.RFC3339),
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Errors map[string][]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &body))
	assert.NotEmpty(t, body.Errors["title"])
}

func TestContributeToInactiveProjectRejected(t *testing.T) {
	r := setupTestServer(t)
	now := time.Now()

	owner := registerAndLogin(t, r, "owner@example.com")
	backer := registerAndLogin(t, r, "backer@example.com")
	projectId := createProject(t, r, owner, now)

	// 下架项目
	w, _ := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/projects/%d/toggle", projectId), owner, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/projects/%d/contributions", projectId), backer, gin.H{
		"amount": 100,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestMyProjectsAndDashboard(t *testing.T) {
	r := setupTestServer(t)
	now := time.Now()

	owner := registerAndLogin(t, r, "owner@example.com")
	createProject(t, r, owner, now)

	w, resp := doJSON(t, r, http.MethodGet, "/api/v1/my/projects", owner, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var mine struct {
		Projects []struct {
			Title string `json:"title"`
		} `json:"projects"`
		Pagination struct {
			Total int64 `json:"total"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &mine))
	require.Len(t, mine.Projects, 1)
	assert.Equal(t, int64(1), mine.Pagination.Total)

	w, resp = doJSON(t, r, http.MethodGet, "/api/v1/my/dashboard", owner, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var dashboard struct {
		Stats map[string]interface{} `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &dashboard))
	assert.EqualValues(t, 1, dashboard.Stats["total_projects_created"])
}
