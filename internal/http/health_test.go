package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/database"
)

func TestHealthStatus_Healthy(t *testing.T) {
	dbPath := "./test_health.db"
	defer os.Remove(dbPath)

	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)
	defer db.Close()

	controller := NewHealthController(db, "1.0.0")

	router := gin.New()
	router.GET("/", controller.Status)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Book management API is running", response.Message)
	assert.Equal(t, "healthy", response.Status)
	assert.Equal(t, "1.0.0", response.Version)
	assert.Equal(t, "ok", response.Checks["database"])
	assert.NotEmpty(t, response.Time)
}

func TestHealthStatus_NoDatabase(t *testing.T) {
	controller := NewHealthController(nil, "1.0.0")

	router := gin.New()
	router.GET("/", controller.Status)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "healthy", response.Status)
	assert.Equal(t, "not configured", response.Checks["database"])
}

func TestHealthStatus_ClosedDatabase(t *testing.T) {
	dbPath := "./test_health_closed.db"
	defer os.Remove(dbPath)

	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	controller := NewHealthController(db, "")

	router := gin.New()
	router.GET("/", controller.Status)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var response HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "unhealthy", response.Status)
	assert.Contains(t, response.Checks["database"], "error")
}
