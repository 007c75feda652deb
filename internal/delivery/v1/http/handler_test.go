package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DRSN-tech/hardware-catalog/internal/domain"
	"github.com/DRSN-tech/hardware-catalog/internal/usecase"
	"github.com/DRSN-tech/hardware-catalog/internal/validation"
	"github.com/DRSN-tech/hardware-catalog/pkg/e"
	"github.com/DRSN-tech/hardware-catalog/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock Use Cases ---

type mockCategoryUC struct {
	categories  []domain.Category
	listErr     error
	saveErr     error
	deleteErr   error
	savedID     *int64
	savedName   string
	deletedID   int64
	deleteGuard []domain.Product
}

func (m *mockCategoryUC) List(ctx context.Context) ([]domain.Category, error) {
	return m.categories, m.listErr
}

func (m *mockCategoryUC) Save(ctx context.Context, existingID *int64, name string) (*domain.Category, error) {
	m.savedID, m.savedName = existingID, name
	if m.saveErr != nil {
		return nil, m.saveErr
	}
	id := int64(1)
	if existingID != nil {
		id = *existingID
	}
	return &domain.Category{ID: id, Name: strings.TrimSpace(name)}, nil
}

func (m *mockCategoryUC) Delete(ctx context.Context, id int64, allProducts []domain.Product) error {
	m.deletedID, m.deleteGuard = id, allProducts
	return m.deleteErr
}

type mockProductUC struct {
	products   []domain.Product
	listErr    error
	saveErr    error
	deleteErr  error
	lastFilter usecase.ProductFilter
	lastInput  validation.ProductInput
	lastCats   []domain.Category
	deleted    *domain.Product
}

func (m *mockProductUC) List(ctx context.Context, filter usecase.ProductFilter) ([]domain.Product, error) {
	m.lastFilter = filter
	return m.products, m.listErr
}

func (m *mockProductUC) Get(ctx context.Context, id int64) (*domain.Product, error) {
	for i := range m.products {
		if m.products[i].ID == id {
			return &m.products[i], nil
		}
	}
	return nil, e.Wrap("ProductUseCase.Get", e.ErrNotFound)
}

func (m *mockProductUC) Save(ctx context.Context, existingID *int64, input validation.ProductInput, categories []domain.Category) (*domain.Product, error) {
	m.lastInput, m.lastCats = input, categories
	if m.saveErr != nil {
		return nil, m.saveErr
	}
	price, _ := decimal.NewFromString(input.Price)
	return &domain.Product{ID: 10, Name: input.Name, CategoryID: 1, Price: price, Images: input.Images}, nil
}

func (m *mockProductUC) Delete(ctx context.Context, product *domain.Product) error {
	m.deleted = product
	return m.deleteErr
}

type mockImageUC struct {
	files   []usecase.ProductImage
	current []string
	addErr  error
	rmErr   error
}

func (m *mockImageUC) AddProductImages(ctx context.Context, files []usecase.ProductImage, currentImages []string) (*usecase.AddImagesRes, error) {
	m.files, m.current = files, currentImages
	if m.addErr != nil {
		return nil, m.addErr
	}
	res := &usecase.AddImagesRes{Images: append([]string{}, currentImages...)}
	for _, f := range files {
		if err := validation.Image(validation.ImageFile{Name: f.Name, ContentType: f.MimeType, Size: f.Size}); err != nil {
			res.Results = append(res.Results, usecase.UploadImageResult{FileName: f.Name, Err: err})
			continue
		}
		url := "http://minio/product-images/" + f.Name
		res.Images = append(res.Images, url)
		res.Results = append(res.Results, usecase.UploadImageResult{FileName: f.Name, URL: url})
	}
	return res, nil
}

func (m *mockImageUC) RemoveProductImage(ctx context.Context, url string, currentImages []string) ([]string, error) {
	if m.rmErr != nil {
		return currentImages, m.rmErr
	}
	out := make([]string, 0, len(currentImages))
	for _, u := range currentImages {
		if u != url {
			out = append(out, u)
		}
	}
	return out, nil
}

type mockDashboardUC struct {
	dashboard *usecase.Dashboard
	err       error
}

func (m *mockDashboardUC) Load(ctx context.Context) (*usecase.Dashboard, error) {
	return m.dashboard, m.err
}

type testAPI struct {
	categories *mockCategoryUC
	products   *mockProductUC
	images     *mockImageUC
	dashboard  *mockDashboardUC
	handler    http.Handler
}

func newTestAPI() *testAPI {
	api := &testAPI{
		categories: &mockCategoryUC{},
		products:   &mockProductUC{},
		images:     &mockImageUC{},
		dashboard:  &mockDashboardUC{},
	}

	mux := chi.NewRouter()
	NewRouter(mux, logger.Nop()).Init(UseCases{
		Category:  api.categories,
		Product:   api.products,
		Image:     api.images,
		Dashboard: api.dashboard,
	}, ImageLimits{MaxImageSize: validation.MaxImageSize, MaxImages: 10})
	api.handler = mux

	return api
}

func (a *testAPI) do(method, target string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

// --- Tests: error mapping ---

func TestToHTTPResponse(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "validation", err: e.Wrap("op", e.NewValidationError(map[string]string{"name": "x"})), expected: http.StatusBadRequest},
		{name: "not found", err: e.Wrap("op", e.ErrNotFound), expected: http.StatusNotFound},
		{name: "duplicate", err: e.Wrap("op", e.ErrDuplicateName), expected: http.StatusConflict},
		{name: "in use", err: e.Wrap("op", e.NewCategoryInUseError(3)), expected: http.StatusConflict},
		{name: "too many images", err: &e.TooManyImagesError{Limit: 10, Current: 5}, expected: http.StatusRequestEntityTooLarge},
		{name: "body too large", err: e.Wrap("op", e.ErrRequestTooLarge), expected: http.StatusRequestEntityTooLarge},
		{name: "image cleanup", err: &e.ImageCleanupError{FailedURLs: []string{"u"}}, expected: http.StatusBadGateway},
		{name: "partially deleted", err: e.Wrap("op", e.ErrPartiallyDeleted), expected: http.StatusBadGateway},
		{name: "transient", err: e.Wrap("op", e.ErrTransientService), expected: http.StatusServiceUnavailable},
		{name: "save failed", err: e.Wrap("op", e.ErrSaveFailed), expected: http.StatusInternalServerError},
		{name: "raw", err: errors.New("pq: boom"), expected: http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			code, msg := ToHTTPResponse(tc.err)
			assert.Equal(t, tc.expected, code)
			assert.NotContains(t, msg, "pq:")
		})
	}
}

// --- Tests: categories ---

func TestCategoryRoutes(t *testing.T) {
	api := newTestAPI()
	api.categories.categories = []domain.Category{{ID: 1, Name: "Tools"}}

	rec := api.do(http.MethodGet, "/api/v1/categories", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []CategoryResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	assert.Equal(t, "Tools", list[0].Name)

	rec = api.do(http.MethodPost, "/api/v1/categories", `{"name":" Paint "}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Nil(t, api.categories.savedID)

	rec = api.do(http.MethodPut, "/api/v1/categories/4", `{"name":"Paint"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, api.categories.savedID)
	assert.Equal(t, int64(4), *api.categories.savedID)
}

func TestCreateCategory_ValidationFields(t *testing.T) {
	api := newTestAPI()
	api.categories.saveErr = e.Wrap("CategoryUseCase.Save", e.NewValidationError(map[string]string{"name": "Category name is required"}))

	rec := api.do(http.MethodPost, "/api/v1/categories", `{"name":""}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "Category name is required", resp.Fields["name"])
}

func TestCreateCategory_Duplicate(t *testing.T) {
	api := newTestAPI()
	api.categories.saveErr = e.Wrap("CategoryUseCase.Save", e.ErrDuplicateName)

	rec := api.do(http.MethodPost, "/api/v1/categories", `{"name":"Tools"}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "A category with this name already exists", decodeError(t, rec).Message)
}

func TestDeleteCategory_UsesFreshProductList(t *testing.T) {
	api := newTestAPI()
	api.products.products = []domain.Product{{ID: 1, CategoryID: 3}}
	api.categories.deleteErr = e.NewCategoryInUseError(1)

	rec := api.do(http.MethodDelete, "/api/v1/categories/3", "")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, int64(3), api.categories.deletedID)
	assert.Len(t, api.categories.deleteGuard, 1)
	assert.Equal(t, usecase.DefaultProductFilter(), api.products.lastFilter)
	assert.Contains(t, decodeError(t, rec).Message, "1 product(s)")
}

func TestDeleteCategory_InvalidID(t *testing.T) {
	api := newTestAPI()

	rec := api.do(http.MethodDelete, "/api/v1/categories/abc", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, api.categories.deletedID)
}

// --- Tests: products ---

func TestListProducts_Filter(t *testing.T) {
	api := newTestAPI()
	api.products.products = []domain.Product{{
		ID: 1, Name: "Hammer", CategoryID: 2, Price: decimal.RequireFromString("1234.5"),
		Category: &domain.CategoryRef{ID: 2, Name: "Tools"},
	}}

	rec := api.do(http.MethodGet, "/api/v1/products?category_id=2&search=ham&sort=price&order=desc", "")
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, api.products.lastFilter.CategoryID)
	assert.Equal(t, int64(2), *api.products.lastFilter.CategoryID)
	assert.Equal(t, "ham", api.products.lastFilter.SearchTerm)
	assert.Equal(t, usecase.SortByPrice, api.products.lastFilter.SortField)
	assert.Equal(t, usecase.SortDesc, api.products.lastFilter.SortDirection)

	var list []ProductResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	assert.Equal(t, "1234.50", list[0].Price)
	assert.Equal(t, "LKR 1,234.50", list[0].PriceFormatted)
	assert.Equal(t, "Tools", list[0].Category.Name)
	assert.Equal(t, []string{}, list[0].Images)
}

func TestListProducts_InvalidFilter(t *testing.T) {
	api := newTestAPI()

	for _, q := range []string{"category_id=x", "sort=stock", "order=up"} {
		rec := api.do(http.MethodGet, "/api/v1/products?"+q, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}
}

func TestListProducts_Transient(t *testing.T) {
	api := newTestAPI()
	api.products.listErr = e.Wrap("ProductUseCase.List", e.ErrTransientService)

	rec := api.do(http.MethodGet, "/api/v1/products", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCreateProduct_AcceptsNumbersAndStrings(t *testing.T) {
	api := newTestAPI()
	api.categories.categories = []domain.Category{{ID: 1, Name: "Tools"}}

	rec := api.do(http.MethodPost, "/api/v1/products", `{"name":"Hammer","category_id":1,"price":"15.50","images":["u1"]}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, validation.ProductInput{Name: "Hammer", CategoryID: "1", Price: "15.50", Images: []string{"u1"}}, api.products.lastInput)
	assert.Equal(t, api.categories.categories, api.products.lastCats)
}

func TestCreateProduct_BadJSON(t *testing.T) {
	api := newTestAPI()

	rec := api.do(http.MethodPost, "/api/v1/products", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetProduct_NotFound(t *testing.T) {
	api := newTestAPI()

	rec := api.do(http.MethodGet, "/api/v1/products/99", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteProduct(t *testing.T) {
	api := newTestAPI()
	api.products.products = []domain.Product{{ID: 5, Images: []string{"a", "b"}}}

	rec := api.do(http.MethodDelete, "/api/v1/products/5", "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.NotNil(t, api.products.deleted)
	assert.Equal(t, int64(5), api.products.deleted.ID)
}

func TestDeleteProduct_ImageCleanupFailure(t *testing.T) {
	api := newTestAPI()
	api.products.products = []domain.Product{{ID: 5, Images: []string{"a"}}}
	api.products.deleteErr = e.Wrap("ProductUseCase.Delete", &e.ImageCleanupError{FailedURLs: []string{"a"}})

	rec := api.do(http.MethodDelete, "/api/v1/products/5", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

// --- Tests: images ---

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func multipartBody(t *testing.T, files map[string][]byte, current []string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for name, data := range files {
		fw, err := mw.CreateFormFile("images[]", name)
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	for _, url := range current {
		require.NoError(t, mw.WriteField("current_images[]", url))
	}
	require.NoError(t, mw.Close())

	return body, mw.FormDataContentType()
}

func TestAddImages(t *testing.T) {
	api := newTestAPI()
	body, contentType := multipartBody(t, map[string][]byte{
		"a.png":   pngHeader,
		"doc.txt": []byte("plain text"),
	}, []string{"http://minio/product-images/old.png"})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/images", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	api.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"http://minio/product-images/old.png"}, api.images.current)

	var resp AddImagesResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp.Images, 2)
	assert.Len(t, resp.Results, 2)

	byFile := map[string]ImageResultResponse{}
	for _, r := range resp.Results {
		byFile[r.File] = r
	}
	assert.Equal(t, "http://minio/product-images/a.png", byFile["a.png"].URL)
	assert.Equal(t, validation.MsgInvalidImageType, byFile["doc.txt"].Error)

	for _, f := range api.images.files {
		if f.Name == "a.png" {
			assert.Equal(t, "image/png", f.MimeType)
			assert.Equal(t, int64(len(pngHeader)), f.Size)
		}
	}
}

func TestAddImages_RequiresMultipart(t *testing.T) {
	api := newTestAPI()

	rec := api.do(http.MethodPost, "/api/v1/images", `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, e.ErrExpectedMultipart.Error(), decodeError(t, rec).Message)
}

func TestAddImages_TooMany(t *testing.T) {
	api := newTestAPI()
	api.images.addErr = e.Wrap("ImageUseCase.AddProductImages", &e.TooManyImagesError{Limit: 10, Current: 5})
	body, contentType := multipartBody(t, map[string][]byte{"a.png": pngHeader}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/images", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	api.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "you can only upload up to 10 images total, you currently have 5 images", decodeError(t, rec).Message)
}

func TestAddImages_OversizedFilesReportedPerFile(t *testing.T) {
	api := newTestAPI()
	large := append(append([]byte{}, pngHeader...), make([]byte, 7<<20)...)
	files := map[string][]byte{"small.png": pngHeader}
	// десять файлов по 7 МБ больше прежнего предела тела в 66 МБ
	for _, name := range []string{"a.png", "b.png", "c.png", "d.png", "e.png", "f.png", "g.png", "h.png", "i.png", "j.png"} {
		files[name] = large
	}
	body, contentType := multipartBody(t, files, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/images", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	api.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp AddImagesResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Results, 11)
	assert.Equal(t, []string{"http://minio/product-images/small.png"}, resp.Images)
	for _, r := range resp.Results {
		if r.File == "small.png" {
			assert.Empty(t, r.Error)
			continue
		}
		assert.Equal(t, validation.MsgImageTooLarge, r.Error, r.File)
	}

	for _, f := range api.images.files {
		assert.LessOrEqual(t, len(f.Data), validation.MaxImageSize+1, f.Name)
	}
}

func TestAddImages_BodyOverLimit(t *testing.T) {
	images := &mockImageUC{}
	h := NewImageHandler(images, logger.Nop(), 1<<10, 1)
	body, contentType := multipartBody(t, map[string][]byte{"huge.png": make([]byte, 3<<20)}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/images", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.addImages(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, e.ErrRequestTooLarge.Error(), decodeError(t, rec).Message)
	assert.Nil(t, images.files)
}

func TestUploadBodyLimit(t *testing.T) {
	assert.Equal(t, int64(11*(20<<20+1<<20)), uploadBodyLimit(10, 5<<20))
}

func TestRemoveImage(t *testing.T) {
	api := newTestAPI()

	rec := api.do(http.MethodDelete, "/api/v1/images", `{"url":"u1","images":["u1","u2"]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp ImagesResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, []string{"u2"}, resp.Images)
}

func TestRemoveImage_StorageFailure(t *testing.T) {
	api := newTestAPI()
	api.images.rmErr = e.Wrap("ImageUseCase.RemoveProductImage", e.ErrStorage)

	rec := api.do(http.MethodDelete, "/api/v1/images", `{"url":"u1","images":["u1"]}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

// --- Tests: dashboard ---

func TestGetDashboard(t *testing.T) {
	api := newTestAPI()
	api.dashboard.dashboard = &usecase.Dashboard{
		Categories:    []domain.Category{{ID: 1, Name: "Tools"}},
		Products:      []domain.Product{{ID: 1, CategoryID: 1, Price: decimal.NewFromInt(20)}},
		ProductCounts: map[int64]int{1: 1},
		Stats: usecase.DashboardStats{
			TotalProducts:   1,
			TotalCategories: 1,
			AveragePrice:    decimal.NewFromInt(20),
		},
	}

	rec := api.do(http.MethodGet, "/api/v1/dashboard", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp DashboardResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 1, resp.Categories[0].ProductCount)
	assert.Equal(t, "20.00", resp.Stats.AveragePrice)
	assert.Equal(t, "LKR 20.00", resp.Stats.AveragePriceFormatted)
}
