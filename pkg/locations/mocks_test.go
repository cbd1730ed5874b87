package locations_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/bussearch/pkg/busapi"
)

type mockSearcher struct {
	mock.Mock
}

func (m *mockSearcher) SearchLocations(ctx context.Context, req busapi.LocationRequest) (*busapi.LocationResponse, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*busapi.LocationResponse), args.Error(1)
	}
	return nil, args.Error(1)
}
