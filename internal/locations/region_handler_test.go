package locations

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/manojbhatti001/Blood-Hero-sub000/pkg/models"
)

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

func TestGetStates(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		setupMock      func(repo *MockRegionRepository)
		expectedStatus int
	}{
		{
			name: "states grouped with their cities",
			setupMock: func(repo *MockRegionRepository) {
				repo.On("GetStates").Return([]models.StateCities{
					{State: "Kerala", Cities: []string{"Kochi", "Thiruvananthapuram"}},
					{State: "Maharashtra", Cities: []string{"Mumbai", "Pune"}},
				}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "repository error",
			setupMock: func(repo *MockRegionRepository) {
				repo.On("GetStates").Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRegionRepository)
			tt.setupMock(mockRepo)
			handler := NewHandler(mockRepo)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("GET", "/location/states", nil)

			handler.GetStates(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				var states []models.StateCities
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &states))
				assert.Len(t, states, 2)
				assert.Equal(t, []string{"Mumbai", "Pune"}, states[1].Cities)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}
