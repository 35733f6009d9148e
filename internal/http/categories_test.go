package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/database/categories"
	"github.com/mrlokans/bookshelf/internal/entities"
)

func setupCategoriesTest(t *testing.T) (*database.Database, *gin.Engine, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_categories_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	controller := NewCategoriesController(categories.NewRepository(db.DB), nil)

	router := gin.New()
	router.GET("/categories", controller.ListCategories)
	router.POST("/categories", controller.CreateCategory)
	router.GET("/categories/:id", controller.GetCategory)
	router.PUT("/categories/:id", controller.UpdateCategory)
	router.DELETE("/categories/:id", controller.DeleteCategory)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return db, router, cleanup
}

func TestCategoriesController_CRUD(t *testing.T) {
	db, router, cleanup := setupCategoriesTest(t)
	defer cleanup()

	var categoryID uint

	t.Run("create", func(t *testing.T) {
		w := doJSON(router, "POST", "/categories", gin.H{
			"name":        "Science Fiction",
			"description": "Speculative futures",
		})
		assert.Equal(t, http.StatusCreated, w.Code)

		var created entities.Category
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		assert.NotZero(t, created.ID)
		categoryID = created.ID
	})

	t.Run("get", func(t *testing.T) {
		w := doJSON(router, "GET", fmt.Sprintf("/categories/%d", categoryID), nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var got entities.Category
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "Science Fiction", got.Name)
		assert.Equal(t, "Speculative futures", got.Description)
	})

	t.Run("list", func(t *testing.T) {
		require.NoError(t, db.DB.Create(&entities.Category{Name: "Poetry"}).Error)

		w := doJSON(router, "GET", "/categories", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var listed []entities.Category
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
		assert.Len(t, listed, 2)
	})

	t.Run("update keeps unset fields", func(t *testing.T) {
		w := doJSON(router, "PUT", fmt.Sprintf("/categories/%d", categoryID), gin.H{
			"name": "SF",
		})
		assert.Equal(t, http.StatusOK, w.Code)

		var updated entities.Category
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
		assert.Equal(t, "SF", updated.Name)
		assert.Equal(t, "Speculative futures", updated.Description)
	})

	t.Run("delete", func(t *testing.T) {
		w := doJSON(router, "DELETE", fmt.Sprintf("/categories/%d", categoryID), nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = doJSON(router, "GET", fmt.Sprintf("/categories/%d", categoryID), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Category not found")
	})
}

func TestCategoriesController_Validation(t *testing.T) {
	_, router, cleanup := setupCategoriesTest(t)
	defer cleanup()

	w := doJSON(router, "POST", "/categories", gin.H{"description": "nameless"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation failed")

	w = doJSON(router, "GET", "/categories/not-a-number", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid id")
}
