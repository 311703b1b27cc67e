package dto

import "time"

// ErrorResponse is the single error shape the API returns. Code is one of the
// stable rejection codes for expected refusals, empty for infra errors.
type ErrorResponse struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// ClubDTO is the owning club as shown to a student starting an attempt.
type ClubDTO struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Type  string `json:"type,omitempty"`
}

// TestDetailsDTO mirrors the test metadata handed back on start and on the
// club's detail view.
type TestDetailsDTO struct {
	ID             uint      `json:"id"`
	ClubID         uint      `json:"club_id"`
	RoundNumber    int       `json:"round_number"`
	RoundType      string    `json:"round_type"`
	Instructions   string    `json:"instructions"`
	Graded         bool      `json:"graded"`
	ScheduledStart time.Time `json:"scheduled_start"`
	ScheduledEnd   time.Time `json:"scheduled_end"`
	CreatedAt      time.Time `json:"created_at"`
}

// DomainDTO is a question section of a started test, read-only here.
type DomainDTO struct {
	ID           uint   `json:"id"`
	TestID       uint   `json:"test_id"`
	Name         string `json:"name"`
	Instructions string `json:"instructions,omitempty"`
	DomainMarks  int    `json:"domain_marks"`
}

// ApplyResponseDTO confirms a successful application.
type ApplyResponseDTO struct {
	Status    string    `json:"status"`
	TestID    uint      `json:"test_id"`
	AppliedOn time.Time `json:"applied_on"`
}

// StartResponseDTO is returned when an attempt begins: the test metadata and
// its domains, plus the owning club, as the attempt screen needs them.
type StartResponseDTO struct {
	Status      string         `json:"status"`
	ClubDetails ClubDTO        `json:"club_details"`
	TestDetails TestDetailsDTO `json:"test_details"`
	Domains     []DomainDTO    `json:"domains"`
}

// FinishResponseDTO confirms a submission.
type FinishResponseDTO struct {
	Status      string    `json:"status"`
	TestID      uint      `json:"test_id"`
	SubmittedOn time.Time `json:"submitted_on"`
}

// LedgerEntryDTO is one row of a student's dashboard.
type LedgerEntryDTO struct {
	TestID      uint       `json:"test_id"`
	ClubID      uint       `json:"club_id"`
	Status      string     `json:"status"`
	AppliedOn   time.Time  `json:"applied_on"`
	StartedOn   *time.Time `json:"started_on,omitempty"`
	SubmittedOn *time.Time `json:"submitted_on,omitempty"`
}

// DashboardDTO wraps a dashboard bucket.
type DashboardDTO struct {
	Tests []LedgerEntryDTO `json:"tests"`
}
