package dto

// TestSummaryDTO is one test in the club's listing, with roster sizes.
type TestSummaryDTO struct {
	TestDetailsDTO
	AppliedCount  int64 `json:"applied_count"`
	StartedCount  int64 `json:"started_count"`
	FinishedCount int64 `json:"finished_count"`
}

// ReconcileReportDTO describes whether the roster and ledger agree for one
// (student, test) pair, and what a repair did or would do.
type ReconcileReportDTO struct {
	TestID        uint   `json:"test_id"`
	StudentID     uint   `json:"student_id"`
	RosterState   string `json:"roster_state"`
	LedgerStatus  string `json:"ledger_status"`
	DerivedStatus string `json:"derived_status"`
	Consistent    bool   `json:"consistent"`
	Repaired      bool   `json:"repaired"`
}
