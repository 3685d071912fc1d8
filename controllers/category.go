package controllers

import (
	"encoding/json"
	"net/http"

	"go-storefront/models"
	"go-storefront/store"
	"go-storefront/utils"

	"github.com/gorilla/mux"
	"github.com/gosimple/slug"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CategoryController handles category management
type CategoryController struct {
	Categories store.CategoryStore
}

// NewCategoryController creates a new CategoryController
func NewCategoryController(categories store.CategoryStore) *CategoryController {
	return &CategoryController{Categories: categories}
}

// Create adds a new category with a slug derived from the name (admin).
func (cc *CategoryController) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Fail(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if req.Name == "" {
		utils.Fail(w, http.StatusBadRequest, "Category name is required")
		return
	}

	category := models.Category{
		Name: req.Name,
		Slug: slug.Make(req.Name),
	}
	err := cc.Categories.Insert(r.Context(), &category)
	if err == store.ErrDuplicate {
		utils.Fail(w, http.StatusBadRequest, "Category already exists")
		return
	}
	if err != nil {
		utils.Internal(w, err, "Error creating category")
		return
	}

	utils.WriteEnvelope(w, http.StatusCreated, true, "New category created successfully", map[string]interface{}{
		"category": category,
	})
}

// Update renames a category, re-deriving its slug (admin).
func (cc *CategoryController) Update(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		utils.Fail(w, http.StatusBadRequest, "Invalid category ID")
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Fail(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if req.Name == "" {
		utils.Fail(w, http.StatusBadRequest, "Category name is required")
		return
	}

	category, err := cc.Categories.Update(r.Context(), id, req.Name, slug.Make(req.Name))
	if err == store.ErrDuplicate {
		utils.Fail(w, http.StatusBadRequest, "Category already exists")
		return
	}
	if err == store.ErrNotFound {
		utils.Fail(w, http.StatusNotFound, "Category not found")
		return
	}
	if err != nil {
		utils.Internal(w, err, "Error updating category")
		return
	}

	utils.WriteEnvelope(w, http.StatusOK, true, "Category updated successfully", map[string]interface{}{
		"category": category,
	})
}

// GetAll lists every category.
func (cc *CategoryController) GetAll(w http.ResponseWriter, r *http.Request) {
	categories, err := cc.Categories.All(r.Context())
	if err != nil {
		utils.Internal(w, err, "Error fetching categories")
		return
	}
	utils.WriteEnvelope(w, http.StatusOK, true, "All categories", map[string]interface{}{
		"category": categories,
	})
}

// GetSingle retrieves one category by slug.
func (cc *CategoryController) GetSingle(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	category, err := cc.Categories.FindBySlug(r.Context(), params["slug"])
	if err == store.ErrNotFound {
		utils.Fail(w, http.StatusNotFound, "Category not found")
		return
	}
	if err != nil {
		utils.Internal(w, err, "Error fetching category")
		return
	}
	utils.WriteEnvelope(w, http.StatusOK, true, "Single category", map[string]interface{}{
		"category": category,
	})
}

// Delete removes a category (admin). Products referencing it are untouched.
func (cc *CategoryController) Delete(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		utils.Fail(w, http.StatusBadRequest, "Invalid category ID")
		return
	}

	err = cc.Categories.Delete(r.Context(), id)
	if err == store.ErrNotFound {
		utils.Fail(w, http.StatusNotFound, "Category not found")
		return
	}
	if err != nil {
		utils.Internal(w, err, "Error deleting category")
		return
	}
	utils.WriteEnvelope(w, http.StatusOK, true, "Category deleted successfully", nil)
}
