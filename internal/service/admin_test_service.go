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

// AdminTestService is the club-facing surface: create tests and inspect
// rosters. Test ownership is exclusive; a club only ever sees its own tests.
type AdminTestService interface {
	CreateTest(clubID uint, req dto.TestCreateDTO) (*dto.TestDetailsDTO, error)
	GetTest(clubID, testID uint) (*dto.TestDetailsDTO, error)
	ListTests(clubID uint) ([]dto.TestSummaryDTO, error)
}

type adminTestService struct {
	testRepo   repository.TestRepository
	rosterRepo repository.RosterRepository
}

func NewAdminTestService(testRepo repository.TestRepository, rosterRepo repository.RosterRepository) AdminTestService {
	return &adminTestService{testRepo: testRepo, rosterRepo: rosterRepo}
}

func (s *adminTestService) CreateTest(clubID uint, req dto.TestCreateDTO) (*dto.TestDetailsDTO, error) {
	if !req.ScheduledStart.Before(req.ScheduledEnd) {
		return nil, fmt.Errorf("scheduled_start must be before scheduled_end")
	}

	test := model.Test{
		ClubID:         clubID,
		RoundNumber:    req.RoundNumber,
		RoundType:      req.RoundType,
		Instructions:   req.Instructions,
		Graded:         req.Graded,
		ScheduledStart: req.ScheduledStart,
		ScheduledEnd:   req.ScheduledEnd,
	}
	if err := s.testRepo.Create(&test); err != nil {
		log.Error().Err(err).Uint("clubID", clubID).Msg("CreateTest: database error")
		return nil, fmt.Errorf("database error creating test: %w", err)
	}

	var resp dto.TestDetailsDTO
	if err := copier.Copy(&resp, &test); err != nil {
		log.Error().Err(err).Msg("CreateTest: failed to copy test to DTO")
		return nil, fmt.Errorf("error preparing response data: %w", err)
	}
	return &resp, nil
}

func (s *adminTestService) GetTest(clubID, testID uint) (*dto.TestDetailsDTO, error) {
	test, err := s.testRepo.FindByID(testID)
	if repository.IsNotFound(err) || (err == nil && test.ClubID != clubID) {
		return nil, ErrTestNotFound
	}
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("GetTest: database error")
		return nil, fmt.Errorf("error fetching test %d: %w", testID, err)
	}

	var resp dto.TestDetailsDTO
	if err := copier.Copy(&resp, test); err != nil {
		return nil, fmt.Errorf("error preparing response data: %w", err)
	}
	return &resp, nil
}

func (s *adminTestService) ListTests(clubID uint) ([]dto.TestSummaryDTO, error) {
	tests, err := s.testRepo.FindAllByClub(clubID)
	if err != nil {
		log.Error().Err(err).Uint("clubID", clubID).Msg("ListTests: database error")
		return nil, fmt.Errorf("error fetching tests: %w", err)
	}

	summaries := make([]dto.TestSummaryDTO, 0, len(tests))
	for _, test := range tests {
		var summary dto.TestSummaryDTO
		if err := copier.Copy(&summary.TestDetailsDTO, &test); err != nil {
			log.Error().Err(err).Uint("testID", test.ID).Msg("ListTests: failed to copy test to DTO")
			continue
		}
		for state, dst := range map[lifecycle.State]*int64{
			lifecycle.StateApplied:  &summary.AppliedCount,
			lifecycle.StateStarted:  &summary.StartedCount,
			lifecycle.StateFinished: &summary.FinishedCount,
		} {
			n, err := s.rosterRepo.CountByState(test.ID, state)
			if err != nil {
				log.Error().Err(err).Uint("testID", test.ID).Msg("ListTests: roster count failed")
				return nil, fmt.Errorf("error counting participants for test %d: %w", test.ID, err)
			}
			*dst = n
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}
