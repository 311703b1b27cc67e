package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/jinzhu/copier"
	"github.com/lshigami/Servals/internal/dto"
	"github.com/lshigami/Servals/internal/lifecycle"
	"github.com/lshigami/Servals/internal/model"
	"github.com/lshigami/Servals/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ErrTestNotFound is returned when the referenced test does not exist or is
// not visible to the caller.
var ErrTestNotFound = errors.New("test not found")

// ErrInconsistentState is a consistency fault: the roster and the ledger
// disagree for a (student, test) pair. The operation is aborted with nothing
// written; repair goes through ReconcileService, never through reads.
var ErrInconsistentState = errors.New("roster and ledger disagree for this student and test")

// errMoveLost marks a conditional roster write that matched no row: the
// eligibility check passed on a snapshot that a concurrent request has since
// invalidated. Resolved into a precise rejection after the transaction.
var errMoveLost = errors.New("conditional roster update matched no row")

// TransitionService is the only writer of the roster and the ledger. Each
// transition validates against a snapshot first, then performs the roster and
// ledger writes inside one transaction; the roster write is conditional on
// the source state, so of two racing identical requests exactly one commits.
type TransitionService interface {
	Apply(testID, studentID uint) (*dto.ApplyResponseDTO, error)
	Start(testID, studentID uint) (*dto.StartResponseDTO, error)
	Finish(testID, studentID uint) (*dto.FinishResponseDTO, error)
}

type transitionService struct {
	testRepo   repository.TestRepository
	rosterRepo repository.RosterRepository
	ledgerRepo repository.LedgerRepository
	domainRepo repository.DomainRepository
	notifier   Notifier
	db         *gorm.DB
	now        func() time.Time
}

func NewTransitionService(
	testRepo repository.TestRepository,
	rosterRepo repository.RosterRepository,
	ledgerRepo repository.LedgerRepository,
	domainRepo repository.DomainRepository,
	notifier Notifier,
	db *gorm.DB,
) TransitionService {
	return &transitionService{
		testRepo:   testRepo,
		rosterRepo: rosterRepo,
		ledgerRepo: ledgerRepo,
		domainRepo: domainRepo,
		notifier:   notifier,
		db:         db,
		now:        time.Now,
	}
}

func (s *transitionService) Apply(testID, studentID uint) (*dto.ApplyResponseDTO, error) {
	test, err := s.findTest(testID)
	if err != nil {
		return nil, err
	}

	state, err := s.rosterRepo.StateOf(testID, studentID)
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Uint("studentID", studentID).Msg("Apply: roster read failed")
		return nil, lifecycle.ErrReadFailed
	}
	if err := lifecycle.CheckApply(state); err != nil {
		return nil, err
	}

	now := s.now()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		inserted, err := s.rosterRepo.InsertApplied(tx, testID, studentID)
		if err != nil {
			return err
		}
		if !inserted {
			return errMoveLost
		}
		entry := &model.LedgerEntry{
			StudentID: studentID,
			TestID:    testID,
			ClubID:    test.ClubID,
			Status:    lifecycle.StatusApplied,
			AppliedOn: now,
		}
		created, err := s.ledgerRepo.Insert(tx, entry)
		if err != nil {
			return err
		}
		if !created {
			// No roster row existed yet a ledger entry does.
			return ErrInconsistentState
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, errMoveLost) {
			// A concurrent apply won the unique index. Re-check for the
			// precise rejection.
			return nil, s.recheckApply(testID, studentID)
		}
		return nil, s.translateWriteError(err, "Apply", testID, studentID)
	}

	s.notify(studentID, fmt.Sprintf("Applied for round %d (%s)", test.RoundNumber, test.RoundType))
	return &dto.ApplyResponseDTO{Status: lifecycle.StatusApplied, TestID: testID, AppliedOn: now}, nil
}

func (s *transitionService) Start(testID, studentID uint) (*dto.StartResponseDTO, error) {
	test, err := s.findTestWithClub(testID)
	if err != nil {
		return nil, err
	}
	window := lifecycle.Window{OpensAt: test.ScheduledStart, ClosesAt: test.ScheduledEnd}

	state, err := s.rosterRepo.StateOf(testID, studentID)
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Uint("studentID", studentID).Msg("Start: roster read failed")
		return nil, lifecycle.ErrReadFailed
	}
	now := s.now()
	if err := lifecycle.CheckStart(state, window, now); err != nil {
		return nil, err
	}

	// Domains are read before the transaction so a projection failure
	// aborts the request with nothing mutated.
	domains, err := s.domainRepo.FindByTestID(testID)
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("Start: domain read failed")
		return nil, lifecycle.ErrReadFailed
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		moved, err := s.rosterRepo.Move(tx, testID, studentID, lifecycle.StateApplied, lifecycle.StateStarted)
		if err != nil {
			return err
		}
		if !moved {
			return errMoveLost
		}
		marked, err := s.ledgerRepo.MarkStarted(tx, studentID, testID, now)
		if err != nil {
			return err
		}
		if !marked {
			return ErrInconsistentState
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, errMoveLost) {
			return nil, s.recheckStart(testID, studentID, window, now)
		}
		return nil, s.translateWriteError(err, "Start", testID, studentID)
	}

	resp := &dto.StartResponseDTO{Status: lifecycle.StatusStarted, Domains: []dto.DomainDTO{}}
	if err := copier.Copy(&resp.TestDetails, test); err != nil {
		log.Error().Err(err).Msg("Start: failed to copy test details to DTO")
		return nil, fmt.Errorf("error preparing start response: %w", err)
	}
	if err := copier.Copy(&resp.ClubDetails, &test.Club); err != nil {
		log.Error().Err(err).Msg("Start: failed to copy club details to DTO")
		return nil, fmt.Errorf("error preparing start response: %w", err)
	}
	for _, d := range domains {
		var dDTO dto.DomainDTO
		copier.Copy(&dDTO, &d)
		resp.Domains = append(resp.Domains, dDTO)
	}
	return resp, nil
}

func (s *transitionService) Finish(testID, studentID uint) (*dto.FinishResponseDTO, error) {
	if _, err := s.findTest(testID); err != nil {
		return nil, err
	}

	state, err := s.rosterRepo.StateOf(testID, studentID)
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Uint("studentID", studentID).Msg("Finish: roster read failed")
		return nil, lifecycle.ErrReadFailed
	}
	if err := lifecycle.CheckFinish(state); err != nil {
		return nil, err
	}

	now := s.now()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		moved, err := s.rosterRepo.Move(tx, testID, studentID, lifecycle.StateStarted, lifecycle.StateFinished)
		if err != nil {
			return err
		}
		if !moved {
			return errMoveLost
		}
		marked, err := s.ledgerRepo.MarkFinished(tx, studentID, testID, now)
		if err != nil {
			return err
		}
		if !marked {
			return ErrInconsistentState
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, errMoveLost) {
			return nil, s.recheckFinish(testID, studentID)
		}
		return nil, s.translateWriteError(err, "Finish", testID, studentID)
	}

	s.notify(studentID, "Your test was submitted")
	return &dto.FinishResponseDTO{Status: lifecycle.StatusFinished, TestID: testID, SubmittedOn: now}, nil
}

func (s *transitionService) findTest(testID uint) (*model.Test, error) {
	test, err := s.testRepo.FindByID(testID)
	if repository.IsNotFound(err) {
		return nil, ErrTestNotFound
	}
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("test read failed")
		return nil, lifecycle.ErrReadFailed
	}
	return test, nil
}

func (s *transitionService) findTestWithClub(testID uint) (*model.Test, error) {
	test, err := s.testRepo.FindByIDWithClub(testID)
	if repository.IsNotFound(err) {
		return nil, ErrTestNotFound
	}
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("test read failed")
		return nil, lifecycle.ErrReadFailed
	}
	return test, nil
}

// recheckApply re-reads the roster after a lost conditional insert so the
// caller gets the rejection matching the state that beat them.
func (s *transitionService) recheckApply(testID, studentID uint) error {
	state, err := s.rosterRepo.StateOf(testID, studentID)
	if err != nil {
		return lifecycle.ErrTransitionFailed
	}
	if cerr := lifecycle.CheckApply(state); cerr != nil {
		return cerr
	}
	return lifecycle.ErrTransitionFailed
}

func (s *transitionService) recheckStart(testID, studentID uint, w lifecycle.Window, now time.Time) error {
	state, err := s.rosterRepo.StateOf(testID, studentID)
	if err != nil {
		return lifecycle.ErrTransitionFailed
	}
	if cerr := lifecycle.CheckStart(state, w, now); cerr != nil {
		return cerr
	}
	return lifecycle.ErrTransitionFailed
}

func (s *transitionService) recheckFinish(testID, studentID uint) error {
	state, err := s.rosterRepo.StateOf(testID, studentID)
	if err != nil {
		return lifecycle.ErrTransitionFailed
	}
	if cerr := lifecycle.CheckFinish(state); cerr != nil {
		return cerr
	}
	return lifecycle.ErrTransitionFailed
}

func (s *transitionService) translateWriteError(err error, op string, testID, studentID uint) error {
	if errors.Is(err, ErrInconsistentState) {
		log.Error().Uint("testID", testID).Uint("studentID", studentID).
			Str("op", op).Msg("consistency fault: roster and ledger disagree, transaction rolled back")
		return ErrInconsistentState
	}
	log.Error().Err(err).Uint("testID", testID).Uint("studentID", studentID).
		Str("op", op).Msg("transition write failed")
	return lifecycle.ErrTransitionFailed
}

// notify is best effort: a lost notification never fails a transition.
func (s *transitionService) notify(studentID uint, message string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(studentID, message); err != nil {
		log.Warn().Err(err).Uint("studentID", studentID).Msg("notification delivery failed")
	}
}
