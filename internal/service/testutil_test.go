package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/lshigami/Servals/internal/model"
	"github.com/lshigami/Servals/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a per-test named in-memory database. cache=shared lets the
// pool's connections see the same data, which the concurrency tests rely on.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Club{},
		&model.Student{},
		&model.Test{},
		&model.TestParticipant{},
		&model.LedgerEntry{},
		&model.TestDomain{},
	))
	return db
}

type fixture struct {
	db         *gorm.DB
	testRepo   repository.TestRepository
	rosterRepo repository.RosterRepository
	ledgerRepo repository.LedgerRepository
	domainRepo repository.DomainRepository

	club    model.Club
	student model.Student
	test    model.Test
}

var (
	windowOpen  = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	windowClose = time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC)
)

// newFixture seeds one club, one student and one test scheduled 10:00-11:00,
// with a single domain attached.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)

	f := &fixture{
		db:         db,
		testRepo:   repository.NewTestRepository(db),
		rosterRepo: repository.NewRosterRepository(db),
		ledgerRepo: repository.NewLedgerRepository(db),
		domainRepo: repository.NewDomainRepository(db),
	}

	f.club = model.Club{Name: "Robotics Club", Email: "robotics@campus.edu", Type: "technical"}
	require.NoError(t, db.Create(&f.club).Error)

	f.student = model.Student{Name: "Asha", Email: "asha@campus.edu"}
	require.NoError(t, db.Create(&f.student).Error)

	f.test = model.Test{
		ClubID:         f.club.ID,
		RoundNumber:    1,
		RoundType:      "quiz",
		Instructions:   "45 minutes, no external tools",
		ScheduledStart: windowOpen,
		ScheduledEnd:   windowClose,
	}
	require.NoError(t, db.Create(&f.test).Error)

	domain := model.TestDomain{TestID: f.test.ID, Name: "aptitude", DomainMarks: 40}
	require.NoError(t, db.Create(&domain).Error)

	return f
}

// transitions returns a TransitionService whose clock reads *clock.
func (f *fixture) transitions(clock *time.Time) TransitionService {
	svc := NewTransitionService(f.testRepo, f.rosterRepo, f.ledgerRepo, f.domainRepo, NewConsoleNotifier(), f.db).(*transitionService)
	svc.now = func() time.Time { return *clock }
	return svc
}

func (f *fixture) newStudent(t *testing.T, name string) model.Student {
	t.Helper()
	s := model.Student{Name: name, Email: name + "@campus.edu"}
	require.NoError(t, f.db.Create(&s).Error)
	return s
}
