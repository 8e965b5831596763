package usecase

import (
	"context"

	"imagery-service/internal/core/domain"
)

// fakeImageStorage - хранилище каталога в памяти для тестов use case'ов.
type fakeImageStorage struct {
	images map[string]domain.CatalogImage

	findCalls   int
	lastFilters domain.ImageSearchFilters
	lastLimit   int
	lastOffset  int
	page        *domain.ImagePage
	findErr     error
	getErr      error
}

func newFakeImageStorage(images ...domain.CatalogImage) *fakeImageStorage {
	byID := make(map[string]domain.CatalogImage, len(images))
	for _, img := range images {
		byID[img.CatalogID] = img
	}
	return &fakeImageStorage{images: byID}
}

func (f *fakeImageStorage) FindWithFilters(_ context.Context, filters domain.ImageSearchFilters, limit, offset int) (*domain.ImagePage, error) {
	f.findCalls++
	f.lastFilters = filters
	f.lastLimit = limit
	f.lastOffset = offset
	if f.findErr != nil {
		return nil, f.findErr
	}
	if f.page != nil {
		return f.page, nil
	}
	return &domain.ImagePage{}, nil
}

func (f *fakeImageStorage) GetByID(_ context.Context, catalogID string) (*domain.CatalogImage, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	img, ok := f.images[catalogID]
	if !ok {
		return nil, domain.ErrImageNotFound
	}
	return &img, nil
}

// fakeOrderStorage - хранилище заказов в памяти.
type fakeOrderStorage struct {
	inserted []domain.Order

	findCalls   int
	lastFilters domain.OrderListFilters
	lastLimit   int
	lastOffset  int
	page        *domain.OrderPage
	findErr     error
	insertErr   error
}

func (f *fakeOrderStorage) FindWithFilters(_ context.Context, filters domain.OrderListFilters, limit, offset int) (*domain.OrderPage, error) {
	f.findCalls++
	f.lastFilters = filters
	f.lastLimit = limit
	f.lastOffset = offset
	if f.findErr != nil {
		return nil, f.findErr
	}
	if f.page != nil {
		return f.page, nil
	}
	return &domain.OrderPage{}, nil
}

func (f *fakeOrderStorage) Insert(_ context.Context, order domain.Order) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, order)
	return nil
}

// fakeOrderEvents фиксирует опубликованные события.
type fakeOrderEvents struct {
	published []domain.Order
	err       error
}

func (f *fakeOrderEvents) PublishOrderCreated(_ context.Context, order domain.Order) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, order)
	return nil
}
