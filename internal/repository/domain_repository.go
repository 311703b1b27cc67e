package repository

import (
	"github.com/lshigami/Servals/internal/model"
	"gorm.io/gorm"
)

// DomainRepository is read-only here: domains belong to the question
// subsystem, the lifecycle only hands them back with a started attempt.
type DomainRepository interface {
	FindByTestID(testID uint) ([]model.TestDomain, error)
}

type domainRepository struct {
	db *gorm.DB
}

func NewDomainRepository(db *gorm.DB) DomainRepository {
	return &domainRepository{db: db}
}

func (r *domainRepository) FindByTestID(testID uint) ([]model.TestDomain, error) {
	var domains []model.TestDomain
	err := r.db.Where("test_id = ?", testID).Order("id ASC").Find(&domains).Error
	return domains, err
}
