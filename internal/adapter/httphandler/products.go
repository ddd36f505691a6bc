package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dsmarket/product-service/internal/adapter/objectstore"
	"github.com/dsmarket/product-service/internal/core/domain"
	"github.com/dsmarket/product-service/internal/core/port"
)

const (
	maxUploadImages = 6
	maxMultipartMem = 32 << 20
	imagesFormField = "images"
)

type ProductsHandler struct {
	catalog port.ProductCatalog
	files   port.FileStorage
}

// RegisterProducts wires the public and seller-only product routes.
// sellerOnly must authenticate the caller and check the seller/admin role.
func RegisterProducts(
	mux *http.ServeMux,
	catalog port.ProductCatalog,
	files port.FileStorage,
	sellerOnly Middleware,
) {
	h := ProductsHandler{catalog, files}

	mux.HandleFunc("GET /api/v1/products", h.GetProducts)
	mux.HandleFunc("GET /api/v1/products/newArrivals", h.GetNewArrivals)
	mux.HandleFunc("GET /api/v1/products/popular", h.GetPopular)
	mux.HandleFunc("GET /api/v1/products/{id}", h.GetProduct)

	mux.Handle("POST /api/v1/products",
		sellerOnly(http.HandlerFunc(h.PostProduct)))
	mux.Handle("GET /api/v1/products/seller/products",
		sellerOnly(http.HandlerFunc(h.GetSellerProducts)))
	mux.Handle("PATCH /api/v1/products/{id}",
		sellerOnly(http.HandlerFunc(h.PatchProduct)))
	mux.Handle("DELETE /api/v1/products/{id}",
		sellerOnly(http.HandlerFunc(h.DeleteProduct)))
}

func (h ProductsHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	q := parseProductQuery(r)

	page, err := h.catalog.FindAllProducts(r.Context(), q)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, productListResponse{
		Message:          "Products found Successfully",
		Total:            page.Total,
		Products:         toProducts(page.Products),
		MaxProductsPrice: page.MaxPrice,
		MinProductsPrice: page.MinPrice,
	})
}

func parseProductQuery(r *http.Request) domain.ProductQuery {
	qv := r.URL.Query()

	order, _ := strconv.Atoi(qv.Get("order"))
	page, _ := strconv.Atoi(qv.Get("page"))
	limit, _ := strconv.Atoi(qv.Get("limit"))

	return domain.ProductQuery{
		Search:        qv.Get("search"),
		Category:      qv.Get("cat"),
		SubCategories: qv["subCat"],
		SortBy:        qv.Get("sortBy"),
		Order:         order,
		Page:          page,
		Limit:         limit,
	}
}

func (h ProductsHandler) GetNewArrivals(
	w http.ResponseWriter, r *http.Request,
) {
	ps, err := h.catalog.FindNewArrivals(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, productsResponse{
		Message:  "New Arrivals found Successfully",
		Products: toProducts(ps),
	})
}

func (h ProductsHandler) GetPopular(w http.ResponseWriter, r *http.Request) {
	ps, err := h.catalog.FindPopularProducts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, productsResponse{
		Message:  "Popular Products found Successfully",
		Products: toProducts(ps),
	})
}

func (h ProductsHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.catalog.FindProductByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, productResponse{
		Message: "Product found Successfully",
		Product: toProduct(p),
	})
}

func (h ProductsHandler) PostProduct(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.PostProduct"
	log := slog.With("op", op)

	caller, ok := CallerFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized,
			"Unauthorized: User not authenticated")
		return
	}

	if err := r.ParseMultipartForm(maxMultipartMem); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid multipart form")
		log.Warn("failed to parse multipart form", "err", err)
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		writeMessage(w, http.StatusBadRequest, "name is required")
		return
	}

	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil || price < 0 {
		writeMessage(w, http.StatusBadRequest, "invalid price")
		return
	}

	stock, err := strconv.Atoi(r.FormValue("stock"))
	if err != nil || stock < 0 {
		writeMessage(w, http.StatusBadRequest, "invalid stock")
		return
	}

	// Upload only after the form is known to be valid, so a rejected
	// request leaves no orphaned objects in the bucket.
	images, ok := h.storeImages(w, r)
	if !ok {
		return
	}

	p := domain.Product{
		Name:        name,
		Description: r.FormValue("description"),
		Price:       price,
		Category:    r.FormValue("category"),
		SubCategory: r.MultipartForm.Value["subCategory"],
		Brand:       r.FormValue("brand"),
		Images:      images,
		Stock:       stock,
		Seller:      caller.ID,
	}

	p, err = h.catalog.AddProduct(r.Context(), p)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, productResponse{
		Message: "Product Added Successfully",
		Product: toProduct(p),
	})
}

// storeImages uploads the posted image files and returns their URLs. On a
// rejected file it writes the error response and reports false.
func (h ProductsHandler) storeImages(
	w http.ResponseWriter, r *http.Request,
) ([]string, bool) {
	const op = "ProductsHandler.storeImages"
	log := slog.With("op", op)

	fhs := r.MultipartForm.File[imagesFormField]
	if len(fhs) > maxUploadImages {
		writeMessage(w, http.StatusBadRequest, "too many images, maximum is 6")
		return nil, false
	}

	var urls []string
	for _, fh := range fhs {
		ext := strings.ToLower(filepath.Ext(fh.Filename))
		ct, ok := objectstore.ContentType(ext)
		if !ok {
			writeMessage(w, http.StatusBadRequest,
				"unsupported image type, allowed: jpg, jpeg, png, svg")
			return nil, false
		}
		if fh.Size > objectstore.MaxFileSize {
			writeMessage(w, http.StatusBadRequest, "image exceeds 5MB limit")
			return nil, false
		}

		f, err := fh.Open()
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "unreadable image file")
			log.Warn("failed to open uploaded file", "err", err)
			return nil, false
		}

		url, err := h.files.StoreFile(r.Context(), ext, ct, fh.Size, f)
		f.Close()
		if err != nil {
			writeError(w, err)
			return nil, false
		}
		urls = append(urls, url)
	}
	return urls, true
}

func (h ProductsHandler) GetSellerProducts(
	w http.ResponseWriter, r *http.Request,
) {
	caller, ok := CallerFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized,
			"Unauthorized: User not authenticated")
		return
	}

	ps, err := h.catalog.FindProductsBySeller(r.Context(), caller.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, productsResponse{
		Message:  "Seller products found Successfully",
		Products: toProducts(ps),
	})
}

func (h ProductsHandler) PatchProduct(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.PatchProduct"
	log := slog.With("op", op)

	caller, ok := CallerFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized,
			"Unauthorized: User not authenticated")
		return
	}

	var upd ProductUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid JSON data")
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	p, err := h.catalog.UpdateProduct(
		r.Context(), r.PathValue("id"), upd.toDomain(), caller.ID,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, productResponse{
		Message: "Product Updated Successfully",
		Product: toProduct(p),
	})
}

func (h ProductsHandler) DeleteProduct(
	w http.ResponseWriter, r *http.Request,
) {
	caller, ok := CallerFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized,
			"Unauthorized: User not authenticated")
		return
	}

	p, err := h.catalog.RemoveProduct(r.Context(), r.PathValue("id"), caller.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, productResponse{
		Message: "Product Deleted Successfully",
		Product: toProduct(p),
	})
}
