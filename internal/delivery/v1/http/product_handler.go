package http

import (
	"context"
	"net/http"

	"github.com/DRSN-tech/hardware-catalog/internal/usecase"
	"github.com/DRSN-tech/hardware-catalog/pkg/logger"
)

type ProductHandler struct {
	productUsecase  usecase.ProductUC
	categoryUsecase usecase.CategoryUC
	logger          logger.Logger
}

func NewProductHandler(productUsecase usecase.ProductUC, categoryUsecase usecase.CategoryUC, logger logger.Logger) *ProductHandler {
	return &ProductHandler{productUsecase: productUsecase, categoryUsecase: categoryUsecase, logger: logger}
}

// listProducts
//
//	@Summary		Список продуктов
//	@Description	Фильтр по категории, поиск по подстроке имени без учёта регистра, сортировка
//	@Tags			products
//	@Produce		json
//	@Param			category_id	query		int		false	"ID категории"
//	@Param			search		query		string	false	"Подстрока имени"
//	@Param			sort		query		string	false	"Поле сортировки"	Enums(name, price, created_at)
//	@Param			order		query		string	false	"Направление"		Enums(asc, desc)
//	@Success		200			{array}		ProductResponse
//	@Failure		400			{object}	ErrorResponse	"Некорректный фильтр"
//	@Failure		503			{object}	ErrorResponse	"Хранилище недоступно"
//	@Router			/products [get]
func (p *ProductHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	filter, err := parseProductFilter(r)
	if err != nil {
		writeLoggedError(w, r, p.logger, err)
		return
	}

	products, err := p.productUsecase.List(r.Context(), filter)
	if err != nil {
		writeLoggedError(w, r, p.logger, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponses(products))
}

// getProduct
//
//	@Summary	Продукт по ID
//	@Tags		products
//	@Produce	json
//	@Param		id	path		int	true	"ID продукта"
//	@Success	200	{object}	ProductResponse
//	@Failure	404	{object}	ErrorResponse	"Продукт не найден"
//	@Router		/products/{id} [get]
func (p *ProductHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeLoggedError(w, r, p.logger, err)
		return
	}

	product, err := p.productUsecase.Get(r.Context(), id)
	if err != nil {
		writeLoggedError(w, r, p.logger, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponse(product))
}

// createProduct
//
//	@Summary		Создание продукта
//	@Description	Изображения загружаются заранее через POST /images, здесь передаётся итоговый список URL
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			product	body		ProductRequest	true	"Продукт"
//	@Success		201		{object}	ProductResponse
//	@Failure		400		{object}	ErrorResponse	"Ошибка валидации"
//	@Router			/products [post]
func (p *ProductHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	p.saveProduct(w, r, nil, http.StatusCreated)
}

// updateProduct
//
//	@Summary	Обновление продукта
//	@Tags		products
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int				true	"ID продукта"
//	@Param		product	body		ProductRequest	true	"Продукт"
//	@Success	200		{object}	ProductResponse
//	@Failure	400		{object}	ErrorResponse	"Ошибка валидации"
//	@Failure	404		{object}	ErrorResponse	"Продукт не найден"
//	@Router		/products/{id} [put]
func (p *ProductHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeLoggedError(w, r, p.logger, err)
		return
	}

	p.saveProduct(w, r, &id, http.StatusOK)
}

func (p *ProductHandler) saveProduct(w http.ResponseWriter, r *http.Request, id *int64, status int) {
	var req ProductRequest
	if err := decodeJSON(r, &req); err != nil {
		writeLoggedError(w, r, p.logger, err)
		return
	}

	ctx := context.WithoutCancel(r.Context())
	categories, err := p.categoryUsecase.List(ctx)
	if err != nil {
		writeLoggedError(w, r, p.logger, err)
		return
	}

	product, err := p.productUsecase.Save(ctx, id, req.toInput(), categories)
	if err != nil {
		writeLoggedError(w, r, p.logger, err)
		return
	}

	WriteSuccess(w, status, toProductResponse(product))
}

// deleteProduct
//
//	@Summary		Удаление продукта
//	@Description	Сначала удаляются изображения, затем запись. Если изображение удалить не удалось, продукт остаётся
//	@Tags			products
//	@Param			id	path	int	true	"ID продукта"
//	@Success		204
//	@Failure		404	{object}	ErrorResponse	"Продукт не найден"
//	@Failure		502	{object}	ErrorResponse	"Ошибка хранилища изображений"
//	@Router			/products/{id} [delete]
func (p *ProductHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeLoggedError(w, r, p.logger, err)
		return
	}

	ctx := context.WithoutCancel(r.Context())
	product, err := p.productUsecase.Get(ctx, id)
	if err != nil {
		writeLoggedError(w, r, p.logger, err)
		return
	}

	if err := p.productUsecase.Delete(ctx, product); err != nil {
		writeLoggedError(w, r, p.logger, err)
		return
	}

	p.logger.Infof("product %d deleted with %d images", id, len(product.Images))
	w.WriteHeader(http.StatusNoContent)
}
