package requests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	custom_error "github.com/manojbhatti001/Blood-Hero-sub000/pkg/errors"
	"github.com/manojbhatti001/Blood-Hero-sub000/pkg/models"
)

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

type MockRegionRepository struct {
	mock.Mock
}

func (m *MockRegionRepository) GetStates() ([]models.StateCities, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.StateCities), args.Error(1)
}

func (m *MockRegionRepository) CityInState(state, city string) (bool, error) {
	args := m.Called(state, city)
	return args.Bool(0), args.Error(1)
}

func validInput() CreateRequestInput {
	return CreateRequestInput{
		PatientName:     "Rahul Sharma",
		ContactName:     "Anita Sharma",
		ContactPhone:    "+919876543210",
		ContactEmail:    "anita@example.com",
		BloodType:       "O+",
		UnitsNeeded:     2,
		Urgency:         "Critical",
		HospitalName:    "City Hospital",
		HospitalAddress: "MG Road, Mumbai",
		City:            "Mumbai",
		State:           "Maharashtra",
		Location:        models.Coordinates{Lat: 19.076, Lng: 72.8777},
	}
}

func TestCreateRequest(t *testing.T) {
	tests := []struct {
		name            string
		mutate          func(in *CreateRequestInput)
		setupMocks      func(repo *MockRequestRepository, regions *MockRegionRepository)
		expectedErr     error
		expectedUrgency string
	}{
		{
			name:   "critical maps to emergency",
			mutate: func(in *CreateRequestInput) { in.Urgency = "Critical" },
			setupMocks: func(repo *MockRequestRepository, regions *MockRegionRepository) {
				regions.On("CityInState", "Maharashtra", "Mumbai").Return(true, nil)
				repo.On("InsertRequest", mock.Anything).Return(nil)
			},
			expectedUrgency: models.UrgencyEmergency,
		},
		{
			name:   "high maps to urgent case-insensitively",
			mutate: func(in *CreateRequestInput) { in.Urgency = "HIGH" },
			setupMocks: func(repo *MockRequestRepository, regions *MockRegionRepository) {
				regions.On("CityInState", "Maharashtra", "Mumbai").Return(true, nil)
				repo.On("InsertRequest", mock.Anything).Return(nil)
			},
			expectedUrgency: models.UrgencyUrgent,
		},
		{
			name:   "unknown label collapses to normal",
			mutate: func(in *CreateRequestInput) { in.Urgency = "whenever" },
			setupMocks: func(repo *MockRequestRepository, regions *MockRegionRepository) {
				regions.On("CityInState", "Maharashtra", "Mumbai").Return(true, nil)
				repo.On("InsertRequest", mock.Anything).Return(nil)
			},
			expectedUrgency: models.UrgencyNormal,
		},
		{
			name:        "coordinates out of range are rejected before any lookup",
			mutate:      func(in *CreateRequestInput) { in.Location = models.Coordinates{Lat: 91, Lng: 0} },
			setupMocks:  func(repo *MockRequestRepository, regions *MockRegionRepository) {},
			expectedErr: ErrInvalidCoordinates,
		},
		{
			name:   "city outside the selected state is rejected",
			mutate: func(in *CreateRequestInput) { in.City = "Pune"; in.State = "Kerala" },
			setupMocks: func(repo *MockRequestRepository, regions *MockRegionRepository) {
				regions.On("CityInState", "Kerala", "Pune").Return(false, nil)
			},
			expectedErr: ErrCityNotInState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRequestRepository)
			mockRegions := new(MockRegionRepository)
			tt.setupMocks(mockRepo, mockRegions)

			service := NewService(mockRepo, mockRegions, nil)

			in := validInput()
			tt.mutate(&in)

			created, err := service.CreateRequest(7, in)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, created)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedUrgency, created.Urgency)
				assert.Equal(t, 7, created.RequesterID)
				assert.Equal(t, models.RequestStatusPending, created.Status)
				assert.NotEmpty(t, created.Reference)
			}

			mockRepo.AssertExpectations(t)
			mockRegions.AssertExpectations(t)
		})
	}
}

func TestCreateRequestDefaultsReason(t *testing.T) {
	mockRepo := new(MockRequestRepository)
	mockRegions := new(MockRegionRepository)
	mockRegions.On("CityInState", "Maharashtra", "Mumbai").Return(true, nil)
	mockRepo.On("InsertRequest", mock.MatchedBy(func(req *models.BloodRequest) bool {
		return req.Reason == models.DefaultRequestReason
	})).Return(nil)

	service := NewService(mockRepo, mockRegions, nil)

	in := validInput()
	in.Notes = ""

	_, err := service.CreateRequest(7, in)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestChangeStatus(t *testing.T) {
	tests := []struct {
		name        string
		current     string
		target      string
		expectedErr error
		updates     bool
	}{
		{name: "pending to in_progress", current: models.RequestStatusPending, target: models.RequestStatusInProgress, updates: true},
		{name: "pending to cancelled", current: models.RequestStatusPending, target: models.RequestStatusCancelled, updates: true},
		{name: "in_progress to fulfilled", current: models.RequestStatusInProgress, target: models.RequestStatusFulfilled, updates: true},
		{name: "pending straight to fulfilled is rejected", current: models.RequestStatusPending, target: models.RequestStatusFulfilled, expectedErr: ErrInvalidTransition},
		{name: "fulfilled is terminal", current: models.RequestStatusFulfilled, target: models.RequestStatusCancelled, expectedErr: ErrInvalidTransition},
		{name: "unknown status is rejected", current: models.RequestStatusPending, target: "done", expectedErr: ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRequestRepository)
			if tt.expectedErr != ErrInvalidStatus {
				mockRepo.On("GetRequest", 5).Return(&models.BloodRequest{ID: 5, Status: tt.current}, nil)
			}
			if tt.updates {
				mockRepo.On("UpdateRequestStatus", 5, tt.target).Return(nil)
			}

			service := NewService(mockRepo, new(MockRegionRepository), nil)

			err := service.ChangeStatus(5, tt.target)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestChangeStatusSameStatusIsNoop(t *testing.T) {
	mockRepo := new(MockRequestRepository)
	mockRepo.On("GetRequest", 5).Return(&models.BloodRequest{ID: 5, Status: models.RequestStatusPending}, nil)

	service := NewService(mockRepo, new(MockRegionRepository), nil)

	err := service.ChangeStatus(5, models.RequestStatusPending)

	assert.NoError(t, err)
	mockRepo.AssertNotCalled(t, "UpdateRequestStatus", mock.Anything, mock.Anything)
}

func TestChangeStatusNotFound(t *testing.T) {
	mockRepo := new(MockRequestRepository)
	mockRepo.On("GetRequest", 99).Return(nil, nil)

	service := NewService(mockRepo, new(MockRegionRepository), nil)

	err := service.ChangeStatus(99, models.RequestStatusCancelled)

	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestRespond(t *testing.T) {
	tests := []struct {
		name        string
		setupMocks  func(repo *MockRequestRepository)
		expectedErr error
	}{
		{
			name: "successful response",
			setupMocks: func(repo *MockRequestRepository) {
				repo.On("GetDonorIDByUser", 3).Return(11, nil)
				repo.On("GetRequest", 5).Return(&models.BloodRequest{ID: 5, Status: models.RequestStatusPending}, nil)
				repo.On("InsertResponse", 5, 11).Return(nil)
			},
		},
		{
			name: "duplicate response is surfaced",
			setupMocks: func(repo *MockRequestRepository) {
				repo.On("GetDonorIDByUser", 3).Return(11, nil)
				repo.On("GetRequest", 5).Return(&models.BloodRequest{ID: 5, Status: models.RequestStatusPending}, nil)
				repo.On("InsertResponse", 5, 11).Return(custom_error.WrapDBError("donor response", "23505"))
			},
			expectedErr: ErrAlreadyResponded,
		},
		{
			name: "cancelled request no longer accepts responses",
			setupMocks: func(repo *MockRequestRepository) {
				repo.On("GetDonorIDByUser", 3).Return(11, nil)
				repo.On("GetRequest", 5).Return(&models.BloodRequest{ID: 5, Status: models.RequestStatusCancelled}, nil)
			},
			expectedErr: ErrRequestNotRespondable,
		},
		{
			name: "user without donor profile",
			setupMocks: func(repo *MockRequestRepository) {
				repo.On("GetDonorIDByUser", 3).Return(0, ErrDonorNotFound)
			},
			expectedErr: ErrDonorNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRequestRepository)
			tt.setupMocks(mockRepo)

			service := NewService(mockRepo, new(MockRegionRepository), nil)

			err := service.Respond(5, 3)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestGetRequestAttachesResponders(t *testing.T) {
	mockRepo := new(MockRequestRepository)
	mockRepo.On("GetRequest", 5).Return(&models.BloodRequest{ID: 5, Status: models.RequestStatusPending}, nil)
	mockRepo.On("GetResponders", 5).Return([]models.Responder{{DonorID: 11, Name: "Priya Patel"}}, nil)

	service := NewService(mockRepo, new(MockRegionRepository), nil)

	req, err := service.GetRequest(5)

	assert.NoError(t, err)
	assert.Len(t, req.Responders, 1)
	assert.Equal(t, "Priya Patel", req.Responders[0].Name)
}

func TestListRequestsRejectsUnknownStatus(t *testing.T) {
	service := NewService(new(MockRequestRepository), new(MockRegionRepository), nil)

	_, err := service.ListRequests("archived", "")

	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestListRequestsForwardsFilters(t *testing.T) {
	mockRepo := new(MockRequestRepository)
	mockRepo.On("GetRequests", models.RequestStatusPending, "O+").Return([]models.BloodRequest{{ID: 1}}, nil)

	service := NewService(mockRepo, new(MockRegionRepository), nil)

	reqs, err := service.ListRequests(models.RequestStatusPending, "O+")

	assert.NoError(t, err)
	assert.Len(t, reqs, 1)
	mockRepo.AssertExpectations(t)
}
