package locations

import (
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/manojbhatti001/Blood-Hero-sub000/internal/repository"
	"github.com/manojbhatti001/Blood-Hero-sub000/pkg/models"
)

type RegionRepository interface {
	GetStates() ([]models.StateCities, error)
	CityInState(state, city string) (bool, error)
}

type regionRepositoryImpl struct {
	repository *repository.Repository
}

func NewRegionRepository(r *repository.Repository) RegionRepository {
	return &regionRepositoryImpl{repository: r}
}

func (r *regionRepositoryImpl) GetStates() ([]models.StateCities, error) {
	var regions []models.Region
	query := r.repository.GoquDBWrapper.
		Select("id", "state", "city").
		From("regions").
		Order(goqu.I("state").Asc(), goqu.I("city").Asc())

	if err := query.Executor().ScanStructs(&regions); err != nil {
		return nil, fmt.Errorf("unable to execute SQL: %w", err)
	}

	var states []models.StateCities
	for _, region := range regions {
		if len(states) == 0 || states[len(states)-1].State != region.State {
			states = append(states, models.StateCities{State: region.State})
		}
		last := &states[len(states)-1]
		last.Cities = append(last.Cities, region.City)
	}

	return states, nil
}

func (r *regionRepositoryImpl) CityInState(state, city string) (bool, error) {
	var count int
	query := r.repository.GoquDBWrapper.
		Select(goqu.COUNT("id")).
		From("regions").
		Where(goqu.Ex{"state": state, "city": city})

	if _, err := query.Executor().ScanVal(&count); err != nil {
		return false, fmt.Errorf("unable to execute SQL: %w", err)
	}

	return count > 0, nil
}
