package dispatch

import (
	"testing"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/manojbhatti001/Blood-Hero-sub000/internal/requests"
	"github.com/manojbhatti001/Blood-Hero-sub000/pkg/models"
)

type MockDispatchRepository struct {
	mock.Mock
}

func (m *MockDispatchRepository) InsertDispatchRecord(tx *goqu.TxDatabase, d *models.Dispatch) error {
	args := m.Called(tx, d)
	return args.Error(0)
}

func (m *MockDispatchRepository) MarkVehicle(tx *goqu.TxDatabase, vehicleID int, fromStatus, toStatus string) (bool, error) {
	args := m.Called(tx, vehicleID, fromStatus, toStatus)
	return args.Bool(0), args.Error(1)
}

func (m *MockDispatchRepository) UpdateDispatchStatus(tx *goqu.TxDatabase, id int, status string, deliveredAt *time.Time) error {
	args := m.Called(tx, id, status, deliveredAt)
	return args.Error(0)
}

func (m *MockDispatchRepository) GetDispatch(id int) (*models.Dispatch, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Dispatch), args.Error(1)
}

func (m *MockDispatchRepository) GetDispatches(status string) ([]models.Dispatch, error) {
	args := m.Called(status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Dispatch), args.Error(1)
}

type MockRequestRepository struct {
	mock.Mock
}

func (m *MockRequestRepository) InsertRequest(req *models.BloodRequest) error {
	args := m.Called(req)
	return args.Error(0)
}

func (m *MockRequestRepository) GetRequest(id int) (*models.BloodRequest, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BloodRequest), args.Error(1)
}

func (m *MockRequestRepository) GetRequestsByRequester(requesterID int) ([]models.BloodRequest, error) {
	args := m.Called(requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BloodRequest), args.Error(1)
}

func (m *MockRequestRepository) GetRequests(status, bloodType string) ([]models.BloodRequest, error) {
	args := m.Called(status, bloodType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BloodRequest), args.Error(1)
}

func (m *MockRequestRepository) UpdateRequestStatus(id int, status string) error {
	args := m.Called(id, status)
	return args.Error(0)
}

func (m *MockRequestRepository) InsertResponse(requestID, donorID int) error {
	args := m.Called(requestID, donorID)
	return args.Error(0)
}

func (m *MockRequestRepository) GetResponders(requestID int) ([]models.Responder, error) {
	args := m.Called(requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Responder), args.Error(1)
}

func (m *MockRequestRepository) GetDonorIDByUser(userID int) (int, error) {
	args := m.Called(userID)
	return args.Int(0), args.Error(1)
}

func newTestService(repo *MockDispatchRepository, reqRepo *MockRequestRepository) *DispatchService {
	return &DispatchService{r: repo, requests: reqRepo}
}

func TestCreateDispatchGuards(t *testing.T) {
	tests := []struct {
		name        string
		setupMocks  func(reqRepo *MockRequestRepository)
		expectedErr error
	}{
		{
			name: "request missing",
			setupMocks: func(reqRepo *MockRequestRepository) {
				reqRepo.On("GetRequest", 5).Return(nil, nil)
			},
			expectedErr: requests.ErrRequestNotFound,
		},
		{
			name: "pending request cannot be dispatched",
			setupMocks: func(reqRepo *MockRequestRepository) {
				reqRepo.On("GetRequest", 5).Return(&models.BloodRequest{ID: 5, Status: models.RequestStatusPending}, nil)
			},
			expectedErr: ErrRequestNotDispatchable,
		},
		{
			name: "fulfilled request cannot be dispatched",
			setupMocks: func(reqRepo *MockRequestRepository) {
				reqRepo.On("GetRequest", 5).Return(&models.BloodRequest{ID: 5, Status: models.RequestStatusFulfilled}, nil)
			},
			expectedErr: ErrRequestNotDispatchable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockDispatchRepository)
			mockReqRepo := new(MockRequestRepository)
			tt.setupMocks(mockReqRepo)

			service := newTestService(mockRepo, mockReqRepo)

			_, err := service.CreateDispatch(CreateDispatchInput{RequestID: 5, VehicleID: 2, HospitalID: 3})

			assert.ErrorIs(t, err, tt.expectedErr)
			mockRepo.AssertNotCalled(t, "InsertDispatchRecord", mock.Anything, mock.Anything)
			mockReqRepo.AssertExpectations(t)
		})
	}
}

func TestFinishGuards(t *testing.T) {
	tests := []struct {
		name        string
		status      string
		setupMocks  func(repo *MockDispatchRepository)
		expectedErr error
	}{
		{
			name:        "unknown target status",
			status:      "parked",
			setupMocks:  func(repo *MockDispatchRepository) {},
			expectedErr: ErrInvalidDispatchStatus,
		},
		{
			name:   "dispatch missing",
			status: models.DispatchStatusDelivered,
			setupMocks: func(repo *MockDispatchRepository) {
				repo.On("GetDispatch", 9).Return(nil, nil)
			},
			expectedErr: ErrDispatchNotFound,
		},
		{
			name:   "already delivered",
			status: models.DispatchStatusCancelled,
			setupMocks: func(repo *MockDispatchRepository) {
				repo.On("GetDispatch", 9).Return(&models.Dispatch{ID: 9, Status: models.DispatchStatusDelivered}, nil)
			},
			expectedErr: ErrDispatchFinished,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockDispatchRepository)
			tt.setupMocks(mockRepo)

			service := newTestService(mockRepo, new(MockRequestRepository))

			_, err := service.Finish(9, tt.status)

			assert.ErrorIs(t, err, tt.expectedErr)
			mockRepo.AssertNotCalled(t, "UpdateDispatchStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestGetDispatchNotFound(t *testing.T) {
	mockRepo := new(MockDispatchRepository)
	mockRepo.On("GetDispatch", 9).Return(nil, nil)

	service := newTestService(mockRepo, new(MockRequestRepository))

	_, err := service.GetDispatch(9)

	assert.ErrorIs(t, err, ErrDispatchNotFound)
}

func TestListDispatchesForwardsFilter(t *testing.T) {
	mockRepo := new(MockDispatchRepository)
	mockRepo.On("GetDispatches", models.DispatchStatusInTransit).Return([]models.Dispatch{{ID: 1}}, nil)

	service := newTestService(mockRepo, new(MockRequestRepository))

	dispatches, err := service.ListDispatches(models.DispatchStatusInTransit)

	assert.NoError(t, err)
	assert.Len(t, dispatches, 1)
	mockRepo.AssertExpectations(t)
}
