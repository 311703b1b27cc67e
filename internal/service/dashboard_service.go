package service

import (
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/lshigami/Servals/internal/dto"
	"github.com/lshigami/Servals/internal/lifecycle"
	"github.com/lshigami/Servals/internal/model"
	"github.com/lshigami/Servals/internal/repository"
	"github.com/rs/zerolog/log"
)

// DashboardService projects a student's ledger into the two dashboard
// buckets. Read-only; ordering is ledger insertion order.
type DashboardService interface {
	AppliedTests(studentID uint) (*dto.DashboardDTO, error)
	StartedTests(studentID uint) (*dto.DashboardDTO, error)
}

type dashboardService struct {
	ledgerRepo repository.LedgerRepository
}

func NewDashboardService(ledgerRepo repository.LedgerRepository) DashboardService {
	return &dashboardService{ledgerRepo: ledgerRepo}
}

// AppliedTests lists tests the student applied to but has not started.
func (s *dashboardService) AppliedTests(studentID uint) (*dto.DashboardDTO, error) {
	return s.byStatus(studentID, lifecycle.StatusApplied)
}

// StartedTests lists tests the student started but has not submitted.
func (s *dashboardService) StartedTests(studentID uint) (*dto.DashboardDTO, error) {
	return s.byStatus(studentID, lifecycle.StatusStarted)
}

func (s *dashboardService) byStatus(studentID uint, status string) (*dto.DashboardDTO, error) {
	entries, err := s.ledgerRepo.FindByStudentAndStatus(studentID, status)
	if err != nil {
		log.Error().Err(err).Uint("studentID", studentID).Str("status", status).Msg("dashboard ledger read failed")
		return nil, fmt.Errorf("error fetching %s tests: %w", status, err)
	}
	return &dto.DashboardDTO{Tests: toLedgerDTOs(entries)}, nil
}

func toLedgerDTOs(entries []model.LedgerEntry) []dto.LedgerEntryDTO {
	dtos := make([]dto.LedgerEntryDTO, 0, len(entries))
	for _, e := range entries {
		var d dto.LedgerEntryDTO
		copier.Copy(&d, &e)
		dtos = append(dtos, d)
	}
	return dtos
}
