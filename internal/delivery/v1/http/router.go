package http

import (
	"net/http"
	"time"

	_ "github.com/DRSN-tech/hardware-catalog/docs" // Регистрация swagger-спецификации
	"github.com/DRSN-tech/hardware-catalog/internal/usecase"
	"github.com/DRSN-tech/hardware-catalog/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

// UseCases перечисляет сценарии, которые обслуживает HTTP API.
type UseCases struct {
	Category  usecase.CategoryUC
	Product   usecase.ProductUC
	Image     usecase.ImageUC
	Dashboard usecase.DashboardUC
}

// Ограничения загрузки нужны для разбора multipart до вызова usecase.
type ImageLimits struct {
	MaxImageSize int64
	MaxImages    int
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(uc UseCases, limits ImageLimits) {
	r.router.Use(middleware.RequestID)
	r.router.Use(middleware.RealIP)
	r.router.Use(r.logRequests)
	r.router.Use(middleware.Recoverer)

	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.router.Route("/api/v1", func(v1 chi.Router) {
		registerCategoryRoutes(v1, NewCategoryHandler(uc.Category, uc.Product, r.logger))
		registerProductRoutes(v1, NewProductHandler(uc.Product, uc.Category, r.logger))
		registerImageRoutes(v1, NewImageHandler(uc.Image, r.logger, limits.MaxImageSize, limits.MaxImages))
		v1.Get("/dashboard", NewDashboardHandler(uc.Dashboard, r.logger).getDashboard)
	})
}

func registerCategoryRoutes(router chi.Router, h *CategoryHandler) {
	router.Route("/categories", func(c chi.Router) {
		c.Get("/", h.listCategories)
		c.Post("/", h.createCategory)
		c.Put("/{id}", h.updateCategory)
		c.Delete("/{id}", h.deleteCategory)
	})
}

func registerProductRoutes(router chi.Router, h *ProductHandler) {
	router.Route("/products", func(pr chi.Router) {
		pr.Get("/", h.listProducts)
		pr.Post("/", h.createProduct)
		pr.Get("/{id}", h.getProduct)
		pr.Put("/{id}", h.updateProduct)
		pr.Delete("/{id}", h.deleteProduct)
	})
}

func registerImageRoutes(router chi.Router, h *ImageHandler) {
	router.Route("/images", func(im chi.Router) {
		im.Post("/", h.addImages)
		im.Delete("/", h.removeImage)
	})
}

func (r *Router) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, req)

		r.logger.Debugf("%s %s %d %s request_id=%s",
			req.Method, req.URL.Path, ww.Status(), time.Since(start), middleware.GetReqID(req.Context()))
	})
}
