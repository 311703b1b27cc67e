package service

import (
	"fmt"
	"time"

	"github.com/lshigami/Servals/internal/dto"
	"github.com/lshigami/Servals/internal/lifecycle"
	"github.com/lshigami/Servals/internal/model"
	"github.com/lshigami/Servals/internal/repository"
	"github.com/rs/zerolog/log"
)

// ReconcileService is the out-of-band repair path for consistency faults.
// The roster is authoritative: a repair rewrites the ledger status from the
// roster state, preserving timestamps that are already set and stamping the
// ones the recovered status requires. Divergence is never healed on read.
type ReconcileService interface {
	Report(clubID, testID, studentID uint) (*dto.ReconcileReportDTO, error)
	Repair(clubID, testID, studentID uint) (*dto.ReconcileReportDTO, error)
}

type reconcileService struct {
	testRepo   repository.TestRepository
	rosterRepo repository.RosterRepository
	ledgerRepo repository.LedgerRepository
	now        func() time.Time
}

func NewReconcileService(
	testRepo repository.TestRepository,
	rosterRepo repository.RosterRepository,
	ledgerRepo repository.LedgerRepository,
) ReconcileService {
	return &reconcileService{
		testRepo:   testRepo,
		rosterRepo: rosterRepo,
		ledgerRepo: ledgerRepo,
		now:        time.Now,
	}
}

func (s *reconcileService) Report(clubID, testID, studentID uint) (*dto.ReconcileReportDTO, error) {
	report, _, err := s.inspect(clubID, testID, studentID)
	return report, err
}

func (s *reconcileService) Repair(clubID, testID, studentID uint) (*dto.ReconcileReportDTO, error) {
	report, entry, err := s.inspect(clubID, testID, studentID)
	if err != nil {
		return nil, err
	}
	if report.Consistent {
		return report, nil
	}
	if entry == nil || report.RosterState == string(lifecycle.StateNone) {
		// One of the two records is missing entirely. Rebuilding or deleting
		// a record is not something this path decides on its own; report only.
		log.Error().Uint("testID", testID).Uint("studentID", studentID).
			Msg("reconcile: record missing on one side, manual intervention required")
		return report, nil
	}

	state := lifecycle.State(report.RosterState)
	entry.Status = state.LedgerStatus()
	now := s.now()
	// Stamp the timestamps the recovered status implies, keeping any that
	// the original transition managed to write.
	switch state {
	case lifecycle.StateStarted:
		if entry.StartedOn == nil {
			entry.StartedOn = &now
		}
	case lifecycle.StateFinished:
		if entry.StartedOn == nil {
			entry.StartedOn = &now
		}
		if entry.SubmittedOn == nil {
			entry.SubmittedOn = &now
		}
	}
	if err := s.ledgerRepo.Save(entry); err != nil {
		log.Error().Err(err).Uint("testID", testID).Uint("studentID", studentID).Msg("reconcile: ledger rewrite failed")
		return nil, fmt.Errorf("error repairing ledger entry: %w", err)
	}

	log.Info().Uint("testID", testID).Uint("studentID", studentID).
		Str("rosterState", report.RosterState).Str("oldStatus", report.LedgerStatus).
		Msg("reconcile: ledger status rewritten from roster")
	report.LedgerStatus = entry.Status
	report.DerivedStatus = lifecycle.StatusFromTimestamps(entry.StartedOn, entry.SubmittedOn)
	report.Consistent = true
	report.Repaired = true
	return report, nil
}

// inspect gathers both sides of the pair and judges agreement. The pair is
// consistent when roster state matches ledger status and the status matches
// the timestamps the entry carries.
func (s *reconcileService) inspect(clubID, testID, studentID uint) (*dto.ReconcileReportDTO, *model.LedgerEntry, error) {
	test, err := s.testRepo.FindByID(testID)
	if repository.IsNotFound(err) || (err == nil && test.ClubID != clubID) {
		return nil, nil, ErrTestNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("error fetching test %d: %w", testID, err)
	}

	state, err := s.rosterRepo.StateOf(testID, studentID)
	if err != nil {
		return nil, nil, fmt.Errorf("error reading roster for test %d: %w", testID, err)
	}

	report := &dto.ReconcileReportDTO{
		TestID:      testID,
		StudentID:   studentID,
		RosterState: string(state),
	}

	entry, err := s.ledgerRepo.FindByStudentAndTest(studentID, testID)
	if repository.IsNotFound(err) {
		report.Consistent = state == lifecycle.StateNone
		return report, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("error reading ledger for test %d: %w", testID, err)
	}

	report.LedgerStatus = entry.Status
	report.DerivedStatus = lifecycle.StatusFromTimestamps(entry.StartedOn, entry.SubmittedOn)
	report.Consistent = lifecycle.Consistent(state, entry.Status) && entry.Status == report.DerivedStatus
	return report, entry, nil
}
