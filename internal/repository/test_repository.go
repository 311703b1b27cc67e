package repository

import (
	"github.com/lshigami/Servals/internal/model"
	"gorm.io/gorm"
)

type TestRepository interface {
	Create(test *model.Test) error
	FindByID(id uint) (*model.Test, error)
	FindByIDWithClub(id uint) (*model.Test, error)
	FindAllByClub(clubID uint) ([]model.Test, error)
}

type testRepository struct {
	db *gorm.DB
}

func NewTestRepository(db *gorm.DB) TestRepository {
	return &testRepository{db: db}
}

func (r *testRepository) Create(test *model.Test) error {
	return r.db.Create(test).Error
}

func (r *testRepository) FindByID(id uint) (*model.Test, error) {
	var test model.Test
	err := r.db.First(&test, id).Error
	return &test, err
}

func (r *testRepository) FindByIDWithClub(id uint) (*model.Test, error) {
	var test model.Test
	err := r.db.Preload("Club").First(&test, id).Error
	return &test, err
}

func (r *testRepository) FindAllByClub(clubID uint) ([]model.Test, error) {
	var tests []model.Test
	err := r.db.Where("club_id = ?", clubID).Order("scheduled_start ASC").Find(&tests).Error
	return tests, err
}
