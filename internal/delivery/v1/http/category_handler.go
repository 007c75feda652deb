package http

import (
	"context"
	"net/http"

	"github.com/DRSN-tech/hardware-catalog/internal/usecase"
	"github.com/DRSN-tech/hardware-catalog/pkg/logger"
)

type CategoryHandler struct {
	categoryUsecase usecase.CategoryUC
	productUsecase  usecase.ProductUC
	logger          logger.Logger
}

func NewCategoryHandler(categoryUsecase usecase.CategoryUC, productUsecase usecase.ProductUC, logger logger.Logger) *CategoryHandler {
	return &CategoryHandler{categoryUsecase: categoryUsecase, productUsecase: productUsecase, logger: logger}
}

// listCategories
//
//	@Summary	Список категорий
//	@Tags		categories
//	@Produce	json
//	@Success	200	{array}		CategoryResponse
//	@Failure	503	{object}	ErrorResponse	"Хранилище недоступно"
//	@Router		/categories [get]
func (c *CategoryHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := c.categoryUsecase.List(r.Context())
	if err != nil {
		writeLoggedError(w, r, c.logger, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toCategoryResponses(categories))
}

// createCategory
//
//	@Summary	Создание категории
//	@Tags		categories
//	@Accept		json
//	@Produce	json
//	@Param		category	body		CategoryRequest	true	"Категория"
//	@Success	201			{object}	CategoryResponse
//	@Failure	400			{object}	ErrorResponse	"Ошибка валидации"
//	@Failure	409			{object}	ErrorResponse	"Имя уже занято"
//	@Router		/categories [post]
func (c *CategoryHandler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeLoggedError(w, r, c.logger, err)
		return
	}

	category, err := c.categoryUsecase.Save(context.WithoutCancel(r.Context()), nil, req.Name)
	if err != nil {
		writeLoggedError(w, r, c.logger, err)
		return
	}

	c.logger.Infof("category %d %q created", category.ID, category.Name)
	WriteSuccess(w, http.StatusCreated, toCategoryResponse(category))
}

// updateCategory
//
//	@Summary	Переименование категории
//	@Tags		categories
//	@Accept		json
//	@Produce	json
//	@Param		id			path		int				true	"ID категории"
//	@Param		category	body		CategoryRequest	true	"Категория"
//	@Success	200			{object}	CategoryResponse
//	@Failure	400			{object}	ErrorResponse	"Ошибка валидации"
//	@Failure	404			{object}	ErrorResponse	"Категория не найдена"
//	@Failure	409			{object}	ErrorResponse	"Имя уже занято"
//	@Router		/categories/{id} [put]
func (c *CategoryHandler) updateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeLoggedError(w, r, c.logger, err)
		return
	}

	var req CategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeLoggedError(w, r, c.logger, err)
		return
	}

	category, err := c.categoryUsecase.Save(context.WithoutCancel(r.Context()), &id, req.Name)
	if err != nil {
		writeLoggedError(w, r, c.logger, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toCategoryResponse(category))
}

// deleteCategory
//
//	@Summary		Удаление категории
//	@Description	Категорию, к которой привязаны продукты, удалить нельзя
//	@Tags			categories
//	@Param			id	path	int	true	"ID категории"
//	@Success		204
//	@Failure		404	{object}	ErrorResponse	"Категория не найдена"
//	@Failure		409	{object}	ErrorResponse	"К категории привязаны продукты"
//	@Router			/categories/{id} [delete]
func (c *CategoryHandler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeLoggedError(w, r, c.logger, err)
		return
	}

	ctx := context.WithoutCancel(r.Context())
	products, err := c.productUsecase.List(ctx, usecase.DefaultProductFilter())
	if err != nil {
		writeLoggedError(w, r, c.logger, err)
		return
	}

	if err := c.categoryUsecase.Delete(ctx, id, products); err != nil {
		writeLoggedError(w, r, c.logger, err)
		return
	}

	c.logger.Infof("category %d deleted", id)
	w.WriteHeader(http.StatusNoContent)
}
