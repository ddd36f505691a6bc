package httphandler

import (
	"encoding/json"
	"net/http"

	"github.com/dsmarket/product-service/internal/core/port"
)

type CategoriesHandler struct {
	categories port.CategoryManager
}

func RegisterCategories(
	mux *http.ServeMux,
	categories port.CategoryManager,
	sellerOnly Middleware,
) {
	h := CategoriesHandler{categories}

	mux.HandleFunc("GET /api/v1/categories", h.GetCategories)
	mux.HandleFunc("GET /api/v1/categories/{id}", h.GetCategory)
	mux.HandleFunc("GET /api/v1/categories/sub/{id}", h.GetSubCategories)

	mux.Handle("POST /api/v1/categories",
		sellerOnly(http.HandlerFunc(h.PostCategory)))
	mux.Handle("PATCH /api/v1/categories/{id}",
		sellerOnly(http.HandlerFunc(h.PatchCategory)))
	mux.Handle("DELETE /api/v1/categories/{id}",
		sellerOnly(http.HandlerFunc(h.DeleteCategory)))
	mux.Handle("POST /api/v1/categories/sub/{id}",
		sellerOnly(http.HandlerFunc(h.PostSubCategory)))
	mux.Handle("PATCH /api/v1/categories/sub/{id}",
		sellerOnly(http.HandlerFunc(h.PatchSubCategory)))
	mux.Handle("DELETE /api/v1/categories/sub/{id}",
		sellerOnly(http.HandlerFunc(h.DeleteSubCategory)))
}

func (h CategoriesHandler) GetCategories(
	w http.ResponseWriter, r *http.Request,
) {
	cs, err := h.categories.FindAllCategories(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]Category, 0, len(cs))
	for _, c := range cs {
		out = append(out, toCategory(c))
	}
	writeJSON(w, http.StatusOK, categoriesResponse{
		Message:    "Categories found Successfully",
		Categories: out,
	})
}

func (h CategoriesHandler) GetCategory(
	w http.ResponseWriter, r *http.Request,
) {
	c, err := h.categories.FindCategoryByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, categoryResponse{
		Message:  "Category found Successfully",
		Category: toCategory(c),
	})
}

func (h CategoriesHandler) GetSubCategories(
	w http.ResponseWriter, r *http.Request,
) {
	subs, err := h.categories.SubCategories(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, subCategoriesResponse{
		Message:       "Subcategories found Successfully",
		SubCategories: subs,
	})
}

func (h CategoriesHandler) PostCategory(
	w http.ResponseWriter, r *http.Request,
) {
	var req struct {
		Name        string   `json:"name"`
		SubCategory []string `json:"subCategory"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeMessage(w, http.StatusBadRequest, "name is required")
		return
	}

	c, err := h.categories.AddCategory(r.Context(), req.Name, req.SubCategory)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, categoryResponse{
		Message:  "Category Added Successfully",
		Category: toCategory(c),
	})
}

func (h CategoriesHandler) PatchCategory(
	w http.ResponseWriter, r *http.Request,
) {
	var req struct {
		Name string `json:"name"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeMessage(w, http.StatusBadRequest, "name is required")
		return
	}

	c, err := h.categories.RenameCategory(
		r.Context(), r.PathValue("id"), req.Name,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, categoryResponse{
		Message:  "Category Updated Successfully",
		Category: toCategory(c),
	})
}

func (h CategoriesHandler) DeleteCategory(
	w http.ResponseWriter, r *http.Request,
) {
	c, err := h.categories.RemoveCategory(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, categoryResponse{
		Message:  "Category Deleted Successfully",
		Category: toCategory(c),
	})
}

func (h CategoriesHandler) PostSubCategory(
	w http.ResponseWriter, r *http.Request,
) {
	var req struct {
		Name string `json:"name"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeMessage(w, http.StatusBadRequest, "name is required")
		return
	}

	c, err := h.categories.AddSubCategory(
		r.Context(), r.PathValue("id"), req.Name,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, categoryResponse{
		Message:  "Subcategory Added Successfully",
		Category: toCategory(c),
	})
}

func (h CategoriesHandler) PatchSubCategory(
	w http.ResponseWriter, r *http.Request,
) {
	var req struct {
		OldName string `json:"oldName"`
		NewName string `json:"newName"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.OldName == "" || req.NewName == "" {
		writeMessage(w, http.StatusBadRequest,
			"oldName and newName are required")
		return
	}

	c, err := h.categories.RenameSubCategory(
		r.Context(), r.PathValue("id"), req.OldName, req.NewName,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, categoryResponse{
		Message:  "Subcategory Updated Successfully",
		Category: toCategory(c),
	})
}

func (h CategoriesHandler) DeleteSubCategory(
	w http.ResponseWriter, r *http.Request,
) {
	var req struct {
		Name string `json:"name"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeMessage(w, http.StatusBadRequest, "name is required")
		return
	}

	c, err := h.categories.RemoveSubCategory(
		r.Context(), r.PathValue("id"), req.Name,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, categoryResponse{
		Message:  "Subcategory Deleted Successfully",
		Category: toCategory(c),
	})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid JSON data")
		return false
	}
	return true
}
