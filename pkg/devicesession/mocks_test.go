package devicesession_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/bussearch/pkg/busapi"
)

type mockCreator struct {
	mock.Mock
}

func (m *mockCreator) CreateSession(ctx context.Context, req busapi.SessionRequest) (*busapi.SessionResponse, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*busapi.SessionResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func successResponse(sessionID, deviceID string) *busapi.SessionResponse {
	return &busapi.SessionResponse{
		Status: busapi.StatusSuccess,
		Data:   &busapi.SessionData{SessionID: sessionID, DeviceID: deviceID},
	}
}
