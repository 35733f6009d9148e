package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/database/authors"
	"github.com/mrlokans/bookshelf/internal/entities"
)

func setupAuthorsTest(t *testing.T) (*database.Database, *gin.Engine, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_authors_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	controller := NewAuthorsController(authors.NewRepository(db.DB), nil)

	router := gin.New()
	router.GET("/authors", controller.ListAuthors)
	router.POST("/authors", controller.CreateAuthor)
	router.GET("/authors/:id", controller.GetAuthor)
	router.PUT("/authors/:id", controller.UpdateAuthor)
	router.DELETE("/authors/:id", controller.DeleteAuthor)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return db, router, cleanup
}

func doJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestAuthorsController_List(t *testing.T) {
	db, router, cleanup := setupAuthorsTest(t)
	defer cleanup()

	t.Run("empty list", func(t *testing.T) {
		w := doJSON(router, "GET", "/authors", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
	})

	t.Run("paginated list", func(t *testing.T) {
		for _, name := range []string{"Herman Melville", "Jane Austen", "Mark Twain"} {
			require.NoError(t, db.DB.Create(&entities.Author{Name: name}).Error)
		}

		w := doJSON(router, "GET", "/authors", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var listed []entities.Author
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
		assert.Len(t, listed, 3)

		w = doJSON(router, "GET", "/authors?skip=1&limit=1", nil)
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
		require.Len(t, listed, 1)
		assert.Equal(t, "Jane Austen", listed[0].Name)
	})
}

func TestAuthorsController_Get(t *testing.T) {
	db, router, cleanup := setupAuthorsTest(t)
	defer cleanup()

	author := &entities.Author{Name: "Jane Austen", Bio: "English novelist"}
	require.NoError(t, db.DB.Create(author).Error)

	t.Run("returns the author", func(t *testing.T) {
		w := doJSON(router, "GET", fmt.Sprintf("/authors/%d", author.ID), nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var got entities.Author
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "Jane Austen", got.Name)
		assert.Equal(t, "English novelist", got.Bio)
	})

	t.Run("404 for missing author", func(t *testing.T) {
		w := doJSON(router, "GET", "/authors/9999", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Author not found")
	})
}

func TestAuthorsController_Create(t *testing.T) {
	db, router, cleanup := setupAuthorsTest(t)
	defer cleanup()

	t.Run("creates an author", func(t *testing.T) {
		w := doJSON(router, "POST", "/authors", gin.H{
			"name": "Ursula K. Le Guin",
			"bio":  "American author",
		})
		assert.Equal(t, http.StatusCreated, w.Code)

		var created entities.Author
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		assert.NotZero(t, created.ID)
		assert.Equal(t, "Ursula K. Le Guin", created.Name)

		var count int64
		require.NoError(t, db.DB.Model(&entities.Author{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("rejects missing name", func(t *testing.T) {
		w := doJSON(router, "POST", "/authors", gin.H{"bio": "Anonymous"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "validation failed")
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/authors", strings.NewReader("{not json"))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invalid request body")
	})
}

func TestAuthorsController_Update(t *testing.T) {
	db, router, cleanup := setupAuthorsTest(t)
	defer cleanup()

	author := &entities.Author{Name: "Original", Bio: "First bio"}
	require.NoError(t, db.DB.Create(author).Error)

	t.Run("updates only provided fields", func(t *testing.T) {
		w := doJSON(router, "PUT", fmt.Sprintf("/authors/%d", author.ID), gin.H{
			"bio": "Second bio",
		})
		assert.Equal(t, http.StatusOK, w.Code)

		var updated entities.Author
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
		assert.Equal(t, "Original", updated.Name)
		assert.Equal(t, "Second bio", updated.Bio)
	})

	t.Run("404 for missing author", func(t *testing.T) {
		w := doJSON(router, "PUT", "/authors/9999", gin.H{"name": "Nobody"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAuthorsController_Delete(t *testing.T) {
	db, router, cleanup := setupAuthorsTest(t)
	defer cleanup()

	author := &entities.Author{Name: "To Be Removed"}
	require.NoError(t, db.DB.Create(author).Error)

	w := doJSON(router, "DELETE", fmt.Sprintf("/authors/%d", author.ID), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = doJSON(router, "DELETE", fmt.Sprintf("/authors/%d", author.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
