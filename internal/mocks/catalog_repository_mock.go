// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/guttosm/pizza-cart/internal/domain/model"
)

type MockCatalogRepositoryInterface struct {
	mock.Mock
}

func (m *MockCatalogRepositoryInterface) Catalog(ctx context.Context) (*model.Catalog, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Catalog), args.Error(1)
}

func (m *MockCatalogRepositoryInterface) SeedIfEmpty(ctx context.Context, cat *model.Catalog) (bool, error) {
	args := m.Called(ctx, cat)
	return args.Bool(0), args.Error(1)
}
