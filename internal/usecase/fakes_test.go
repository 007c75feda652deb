package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/DRSN-tech/hardware-catalog/internal/domain"
	"github.com/DRSN-tech/hardware-catalog/pkg/e"
)

// callLog записывает порядок вызовов во все фейки одного теста.
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, fmt.Sprintf(format, args...))
}

func (l *callLog) list() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

// --- Mock Repositories ---

type mockCategoryRepo struct {
	log        *callLog
	categories []domain.Category
	listErr    error
	createErr  error
	updateErr  error
	deleteErr  error
	nextID     int64
}

func (m *mockCategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	m.log.add("category.List")
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.categories, nil
}

func (m *mockCategoryRepo) Create(ctx context.Context, name string) (*domain.Category, error) {
	m.log.add("category.Create %s", name)
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.nextID++
	return &domain.Category{ID: m.nextID, Name: name}, nil
}

func (m *mockCategoryRepo) Update(ctx context.Context, id int64, name string) (*domain.Category, error) {
	m.log.add("category.Update %d %s", id, name)
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	return &domain.Category{ID: id, Name: name}, nil
}

func (m *mockCategoryRepo) Delete(ctx context.Context, id int64) error {
	m.log.add("category.Delete %d", id)
	return m.deleteErr
}

type mockProductRepo struct {
	log        *callLog
	products   []domain.Product
	lastSaved  *domain.Product
	listErr    error
	getErr     error
	saveErr    error
	deleteErr  error
	count      int
	countErr   error
	lastFilter ProductFilter
}

func (m *mockProductRepo) List(ctx context.Context, filter ProductFilter) ([]domain.Product, error) {
	m.log.add("product.List")
	m.lastFilter = filter
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.products, nil
}

func (m *mockProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	m.log.add("product.GetByID %d", id)
	if m.getErr != nil {
		return nil, m.getErr
	}
	for i := range m.products {
		if m.products[i].ID == id {
			return &m.products[i], nil
		}
	}
	return nil, e.ErrNotFound
}

func (m *mockProductRepo) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	m.log.add("product.Create %s", product.Name)
	m.lastSaved = product
	if m.saveErr != nil {
		return nil, m.saveErr
	}
	saved := *product
	saved.ID = 1
	return &saved, nil
}

func (m *mockProductRepo) Update(ctx context.Context, id int64, product *domain.Product) (*domain.Product, error) {
	m.log.add("product.Update %d", id)
	m.lastSaved = product
	if m.saveErr != nil {
		return nil, m.saveErr
	}
	saved := *product
	saved.ID = id
	return &saved, nil
}

func (m *mockProductRepo) Delete(ctx context.Context, id int64) error {
	m.log.add("product.Delete %d", id)
	return m.deleteErr
}

func (m *mockProductRepo) CountByCategory(ctx context.Context, categoryID int64) (int, error) {
	m.log.add("product.CountByCategory %d", categoryID)
	return m.count, m.countErr
}

type mockOutboxRepo struct {
	log    *callLog
	events []*OutboxEvent
	err    error
}

func (m *mockOutboxRepo) Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error) {
	m.log.add("outbox.Create %s", event.EventType)
	if m.err != nil {
		return nil, m.err
	}
	m.events = append(m.events, event)
	return event, nil
}

func (m *mockOutboxRepo) GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error) {
	return nil, nil
}

func (m *mockOutboxRepo) MarkAsProcessed(ctx context.Context, id int64) error {
	return nil
}

func (m *mockOutboxRepo) ReleaseStuck(ctx context.Context) (int64, error) {
	return 0, nil
}

type mockCacheRepo struct {
	log     *callLog
	cached  []domain.Category
	getErr  error
	setErr  error
	deleted int
}

func (m *mockCacheRepo) GetCategories(ctx context.Context) ([]domain.Category, error) {
	m.log.add("cache.Get")
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.cached == nil {
		return nil, e.ErrCacheMiss
	}
	return m.cached, nil
}

func (m *mockCacheRepo) SetCategories(ctx context.Context, categories []domain.Category) error {
	m.log.add("cache.Set")
	if m.setErr != nil {
		return m.setErr
	}
	m.cached = categories
	return nil
}

func (m *mockCacheRepo) DeleteCategories(ctx context.Context) error {
	m.log.add("cache.Delete")
	m.deleted++
	m.cached = nil
	return nil
}

// mockTxManager выполняет fn без транзакции, но фиксирует границы.
type mockTxManager struct {
	log *callLog
}

func (m *mockTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.log.add("tx.Begin")
	if err := fn(ctx); err != nil {
		m.log.add("tx.Rollback")
		return err
	}
	m.log.add("tx.Commit")
	return nil
}

// --- Mock Infrastructure ---

type mockImagesInfra struct {
	log        *callLog
	uploaded   []ProductImage
	uploadErrs map[string]error // имя файла -> ошибка загрузки
	deleteErrs map[string]error // ключ объекта -> ошибка удаления
}

func (m *mockImagesInfra) UploadImages(ctx context.Context, req *UploadImagesReq) *UploadImagesRes {
	results := make([]UploadImageResult, len(req.Images))
	for i, img := range req.Images {
		m.log.add("storage.Upload %s", img.Name)
		if err, ok := m.uploadErrs[img.Name]; ok {
			results[i] = UploadImageResult{FileName: img.Name, Err: err}
			continue
		}
		m.uploaded = append(m.uploaded, img)
		results[i] = UploadImageResult{FileName: img.Name, URL: "http://minio/product-images/" + img.Name}
	}
	return NewUploadImagesRes(results)
}

func (m *mockImagesInfra) DeleteImage(ctx context.Context, key string) error {
	m.log.add("storage.Delete %s", key)
	return m.deleteErrs[key]
}

func filterCalls(calls []string, prefixes ...string) []string {
	out := make([]string, 0, len(calls))
	for _, c := range calls {
		for _, p := range prefixes {
			if strings.HasPrefix(c, p) {
				out = append(out, c)
				break
			}
		}
	}
	return out
}
