package controllers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"go-storefront/models"
	"go-storefront/store"
	"go-storefront/utils"

	"github.com/gorilla/mux"
	"github.com/gosimple/slug"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	listLimit    = 12
	pageSize     = 6
	relatedLimit = 4
)

// ProductController handles the product catalog
type ProductController struct {
	Products   store.ProductStore
	Categories store.CategoryStore
}

// NewProductController creates a new ProductController
func NewProductController(products store.ProductStore, categories store.CategoryStore) *ProductController {
	return &ProductController{Products: products, Categories: categories}
}

// productView is a product with its category reference populated.
type productView struct {
	models.Product
	Category *models.Category `json:"category"`
}

// withCategories resolves category refs for a product list in one pass.
func (pc *ProductController) withCategories(r *http.Request, products []models.Product) ([]productView, error) {
	categories, err := pc.Categories.All(r.Context())
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]models.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	views := make([]productView, 0, len(products))
	for _, p := range products {
		view := productView{Product: p}
		if c, ok := byID[p.Category]; ok {
			c := c
			view.Category = &c
		}
		views = append(views, view)
	}
	return views, nil
}

// parseProductForm reads the multipart product fields. It returns a
// human-readable validation message for the first missing or invalid field.
func parseProductForm(r *http.Request) (store.ProductFields, string) {
	var fields store.ProductFields

	if err := r.ParseMultipartForm(models.MaxPhotoSize * 2); err != nil {
		return fields, "Invalid form data"
	}

	fields.Name = r.FormValue("name")
	fields.Description = r.FormValue("description")
	priceStr := r.FormValue("price")
	categoryStr := r.FormValue("category")
	quantityStr := r.FormValue("quantity")

	switch {
	case fields.Name == "":
		return fields, "Name is required"
	case fields.Description == "":
		return fields, "Description is required"
	case priceStr == "":
		return fields, "Price is required"
	case categoryStr == "":
		return fields, "Category is required"
	case quantityStr == "":
		return fields, "Quantity is required"
	}

	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil || price < 0 {
		return fields, "Price must be a non-negative number"
	}
	fields.Price = price

	categoryID, err := primitive.ObjectIDFromHex(categoryStr)
	if err != nil {
		return fields, "Invalid category ID"
	}
	fields.Category = categoryID

	quantity, err := strconv.Atoi(quantityStr)
	if err != nil || quantity < 0 {
		return fields, "Quantity must be a non-negative number"
	}
	fields.Quantity = quantity

	if s := r.FormValue("shipping"); s != "" {
		shipping, err := strconv.ParseBool(s)
		if err != nil {
			return fields, "Shipping must be a boolean"
		}
		fields.Shipping = shipping
	}

	fields.Slug = slug.Make(fields.Name)

	file, header, err := r.FormFile("photo")
	if err == http.ErrMissingFile {
		return fields, ""
	}
	if err != nil {
		return fields, "Failed to read photo"
	}
	defer file.Close()

	if header.Size > models.MaxPhotoSize {
		return fields, "Photo should be less than 1mb"
	}
	data, err := io.ReadAll(io.LimitReader(file, models.MaxPhotoSize+1))
	if err != nil {
		return fields, "Failed to read photo"
	}
	if len(data) > models.MaxPhotoSize {
		return fields, "Photo should be less than 1mb"
	}
	fields.Photo = &models.Photo{
		Data:        data,
		ContentType: header.Header.Get("Content-Type"),
	}
	return fields, ""
}

// Create adds a new product from a multipart form (admin).
func (pc *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	fields, msg := parseProductForm(r)
	if msg != "" {
		utils.Fail(w, http.StatusBadRequest, msg)
		return
	}

	product := models.Product{
		Name:        fields.Name,
		Slug:        fields.Slug,
		Description: fields.Description,
		Price:       fields.Price,
		Category:    fields.Category,
		Quantity:    fields.Quantity,
		Shipping:    fields.Shipping,
	}
	if fields.Photo != nil {
		product.Photo = *fields.Photo
	}

	if err := pc.Products.Insert(r.Context(), &product); err != nil {
		utils.Internal(w, err, "Error creating product")
		return
	}

	product.Photo.Data = nil
	utils.WriteEnvelope(w, http.StatusCreated, true, "Product created successfully", map[string]interface{}{
		"products": product,
	})
}

// Update overwrites a product's fields from a multipart form (admin). The
// stored photo is kept when no new one is uploaded.
func (pc *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["pid"])
	if err != nil {
		utils.Fail(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	fields, msg := parseProductForm(r)
	if msg != "" {
		utils.Fail(w, http.StatusBadRequest, msg)
		return
	}

	product, err := pc.Products.Update(r.Context(), id, fields)
	if err == store.ErrNotFound {
		utils.Fail(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		utils.Internal(w, err, "Error updating product")
		return
	}

	utils.WriteEnvelope(w, http.StatusOK, true, "Product updated successfully", map[string]interface{}{
		"products": product,
	})
}

// GetAll lists the latest products without photos, categories populated.
func (pc *ProductController) GetAll(w http.ResponseWriter, r *http.Request) {
	products, err := pc.Products.Latest(r.Context(), listLimit)
	if err != nil {
		utils.Internal(w, err, "Error fetching products")
		return
	}
	views, err := pc.withCategories(r, products)
	if err != nil {
		utils.Internal(w, err, "Error fetching products")
		return
	}
	utils.WriteEnvelope(w, http.StatusOK, true, "All products", map[string]interface{}{
		"total_count": len(views),
		"products":    views,
	})
}

// GetSingle retrieves one product by slug, category populated.
func (pc *ProductController) GetSingle(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	product, err := pc.Products.FindBySlug(r.Context(), params["slug"])
	if err == store.ErrNotFound {
		utils.Fail(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		utils.Internal(w, err, "Error fetching product")
		return
	}

	views, err := pc.withCategories(r, []models.Product{*product})
	if err != nil {
		utils.Internal(w, err, "Error fetching product")
		return
	}
	utils.WriteEnvelope(w, http.StatusOK, true, "Single product fetched", map[string]interface{}{
		"product": views[0],
	})
}

// Photo serves a product's photo bytes with the stored content type.
func (pc *ProductController) Photo(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["pid"])
	if err != nil {
		utils.Fail(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	photo, err := pc.Products.PhotoByID(r.Context(), id)
	if err == store.ErrNotFound {
		utils.Fail(w, http.StatusNotFound, "Photo not found")
		return
	}
	if err != nil {
		utils.Internal(w, err, "Error fetching photo")
		return
	}

	w.Header().Set("Content-Type", photo.ContentType)
	w.WriteHeader(http.StatusOK)
	w.Write(photo.Data)
}

// Delete removes a product (admin).
func (pc *ProductController) Delete(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		utils.Fail(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	err = pc.Products.Delete(r.Context(), id)
	if err == store.ErrNotFound {
		utils.Fail(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		utils.Internal(w, err, "Error deleting product")
		return
	}
	utils.WriteEnvelope(w, http.StatusOK, true, "Product deleted successfully", nil)
}

// Filters returns products matching a category set and an inclusive price
// range, both optional.
func (pc *ProductController) Filters(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Checked []string  `json:"checked"`
		Radio   []float64 `json:"radio"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Fail(w, http.StatusBadRequest, "Invalid input")
		return
	}

	var filter store.ProductFilter
	for _, c := range req.Checked {
		id, err := primitive.ObjectIDFromHex(c)
		if err != nil {
			utils.Fail(w, http.StatusBadRequest, "Invalid category ID")
			return
		}
		filter.Categories = append(filter.Categories, id)
	}
	if len(req.Radio) >= 2 {
		filter.PriceMin = &req.Radio[0]
		filter.PriceMax = &req.Radio[1]
	}

	products, err := pc.Products.Filter(r.Context(), filter)
	if err != nil {
		utils.Internal(w, err, "Error filtering products")
		return
	}
	utils.WriteEnvelope(w, http.StatusOK, true, "", map[string]interface{}{
		"products": products,
	})
}

// Count reports the total number of products.
func (pc *ProductController) Count(w http.ResponseWriter, r *http.Request) {
	total, err := pc.Products.Count(r.Context())
	if err != nil {
		utils.Internal(w, err, "Error counting products")
		return
	}
	utils.WriteEnvelope(w, http.StatusOK, true, "", map[string]interface{}{
		"total": total,
	})
}

// List returns one page of products, six per page, newest first.
func (pc *ProductController) List(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	page, err := strconv.ParseInt(params["page"], 10, 64)
	if err != nil || page < 1 {
		page = 1
	}

	products, err := pc.Products.Page(r.Context(), page, pageSize)
	if err != nil {
		utils.Internal(w, err, "Error listing products")
		return
	}
	utils.WriteEnvelope(w, http.StatusOK, true, "", map[string]interface{}{
		"products": products,
	})
}

// Search matches the keyword case-insensitively against product names and
// descriptions.
func (pc *ProductController) Search(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	results, err := pc.Products.Search(r.Context(), params["keyword"])
	if err != nil {
		utils.Internal(w, err, "Error searching products")
		return
	}
	utils.WriteEnvelope(w, http.StatusOK, true, "", map[string]interface{}{
		"products": results,
	})
}

// Related lists up to four other products in the same category.
func (pc *ProductController) Related(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	pid, err := primitive.ObjectIDFromHex(params["pid"])
	if err != nil {
		utils.Fail(w, http.StatusBadRequest, "Invalid product ID")
		return
	}
	cid, err := primitive.ObjectIDFromHex(params["cid"])
	if err != nil {
		utils.Fail(w, http.StatusBadRequest, "Invalid category ID")
		return
	}

	products, err := pc.Products.Related(r.Context(), pid, cid, relatedLimit)
	if err != nil {
		utils.Internal(w, err, "Error fetching related products")
		return
	}
	views, err := pc.withCategories(r, products)
	if err != nil {
		utils.Internal(w, err, "Error fetching related products")
		return
	}
	utils.WriteEnvelope(w, http.StatusOK, true, "", map[string]interface{}{
		"products": views,
	})
}

// ByCategory lists a category's products by category slug.
func (pc *ProductController) ByCategory(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	category, err := pc.Categories.FindBySlug(r.Context(), params["slug"])
	if err == store.ErrNotFound {
		utils.Fail(w, http.StatusNotFound, "Category not found")
		return
	}
	if err != nil {
		utils.Internal(w, err, "Error fetching category")
		return
	}

	products, err := pc.Products.ByCategory(r.Context(), category.ID)
	if err != nil {
		utils.Internal(w, err, "Error fetching products")
		return
	}
	utils.WriteEnvelope(w, http.StatusOK, true, "", map[string]interface{}{
		"category": category,
		"products": products,
	})
}
