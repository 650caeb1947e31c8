package transport

import (
	"errors"
	"net/http"
	"strings"

	"product-catalog/internal/apperror"
	"product-catalog/internal/middleware"
	"product-catalog/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const basePath = "/api/products"

// ProductCreateRequest represents the product registration payload
type ProductCreateRequest struct {
	Name          string `json:"name" validate:"required,notblank"`
	Price         *int   `json:"price" validate:"required,gte=50,lte=10000"`
	CategoryID    string `json:"categoryId" validate:"required,notblank"`
	StockQuantity *int   `json:"stockQuantity" validate:"required,gte=0,lte=100"`
}

// toDTO builds the candidate product; ids are generated during registration
func (req ProductCreateRequest) toDTO() *service.ProductDTO {
	return &service.ProductDTO{
		Name:     req.Name,
		Price:    req.Price,
		Category: &service.CategoryDTO{ID: req.CategoryID},
		Stock:    &service.StockDTO{Quantity: req.StockQuantity},
	}
}

// ProductHandler handles HTTP requests for catalog operations
type ProductHandler struct {
	register service.RegisterProductInteractor
	search   service.SearchProductInteractor
	logger   *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(
	register service.RegisterProductInteractor,
	search service.SearchProductInteractor,
	logger *zap.Logger,
) *ProductHandler {
	return &ProductHandler{
		register: register,
		search:   search,
		logger:   logger,
	}
}

// RegisterRoutes registers all product routes
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Route(basePath, func(r chi.Router) {
		r.Get("/categories", h.ListCategories)
		r.Get("/categories/{id}", h.GetCategory)
		r.Get("/exists", h.Exists)
		r.Get("/search", h.SearchByName)
		r.Get("/{id}", h.GetProduct)
		r.Post("/", h.Register)
	})
}

// ListCategories handles GET /categories
func (h *ProductHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.register.GetCategories(r.Context())
	if err != nil {
		respondWithAppError(w, r, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, categories)
}

// GetCategory handles GET /categories/{id}
func (h *ProductHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	category, err := h.register.GetCategoryByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondWithAppError(w, r, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, category)
}

// Exists handles GET /exists?name=. 204 means the name is still free.
func (h *ProductHandler) Exists(w http.ResponseWriter, r *http.Request) {
	name, err := requiredQuery(r, "name")
	if err != nil {
		respondWithAppError(w, r, h.logger, err)
		return
	}

	if err := h.register.EnsureNameIsFree(r.Context(), name); err != nil {
		respondWithAppError(w, r, h.logger, err)
		return
	}

	middleware.RespondNoContent(w)
}

// SearchByName handles GET /search?name=
func (h *ProductHandler) SearchByName(w http.ResponseWriter, r *http.Request) {
	name, err := requiredQuery(r, "name")
	if err != nil {
		respondWithAppError(w, r, h.logger, err)
		return
	}

	product, err := h.search.SearchByName(r.Context(), name)
	if err != nil {
		respondWithAppError(w, r, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// GetProduct handles GET /{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.search.GetProductByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondWithAppError(w, r, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Register handles POST / and answers 201 with the stored product
func (h *ProductHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req ProductCreateRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Product registration validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, "request validation failed", validationErrors)
			return
		}

		var malformed *middleware.MalformedBodyError
		if errors.As(err, &malformed) {
			respondWithAppError(w, r, h.logger, apperror.InputValidation("body", "invalid request body"))
			return
		}

		respondWithAppError(w, r, h.logger, apperror.Infrastructure("failed to validate request", err))
		return
	}

	product, err := h.register.AddProduct(r.Context(), req.toDTO())
	if err != nil {
		respondWithAppError(w, r, h.logger, err)
		return
	}

	w.Header().Set("Location", basePath+"/"+product.ID)
	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

func requiredQuery(r *http.Request, key string) (string, error) {
	value := r.URL.Query().Get(key)
	if strings.TrimSpace(value) == "" {
		return "", apperror.InputValidation(key, key+" must not be blank")
	}
	return value, nil
}
