package club

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Servals/internal/controller"
	"github.com/lshigami/Servals/internal/dto"
	"github.com/lshigami/Servals/internal/middleware"
	"github.com/lshigami/Servals/internal/service"
	"github.com/rs/zerolog/log"
)

type AdminTestController struct {
	adminService     service.AdminTestService
	reconcileService service.ReconcileService
}

func NewAdminTestController(as service.AdminTestService, rs service.ReconcileService) *AdminTestController {
	return &AdminTestController{adminService: as, reconcileService: rs}
}

// CreateTest godoc
// @Summary (Club) Create a recruitment test round
// @Tags Club - Tests
// @Accept json
// @Produce json
// @Param test_data body dto.TestCreateDTO true "Round metadata and schedule window"
// @Success 201 {object} dto.TestDetailsDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid body or schedule window"
// @Router /club/tests [post]
// @Security BearerAuth
func (c *AdminTestController) CreateTest(ctx *gin.Context) {
	id, ok := middleware.CallerIdentity(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "unauthorized"})
		return
	}
	var req dto.TestCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CreateTest: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}
	resp, err := c.adminService.CreateTest(id.UserID, req)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// ListTests godoc
// @Summary (Club) List own tests with roster counts
// @Tags Club - Tests
// @Produce json
// @Success 200 {array} dto.TestSummaryDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /club/tests [get]
// @Security BearerAuth
func (c *AdminTestController) ListTests(ctx *gin.Context) {
	id, ok := middleware.CallerIdentity(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "unauthorized"})
		return
	}
	resp, err := c.adminService.ListTests(id.UserID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetTest godoc
// @Summary (Club) Get one of the club's tests
// @Tags Club - Tests
// @Produce json
// @Param test_id path int true "Test ID"
// @Success 200 {object} dto.TestDetailsDTO
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /club/tests/{test_id} [get]
// @Security BearerAuth
func (c *AdminTestController) GetTest(ctx *gin.Context) {
	clubID, testID, ok := c.pathAndIdentity(ctx)
	if !ok {
		return
	}
	resp, err := c.adminService.GetTest(clubID, testID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ReconcileReport godoc
// @Summary (Club) Check roster/ledger agreement for a student on a test
// @Tags Club - Reconcile
// @Produce json
// @Param test_id path int true "Test ID"
// @Param student_id path int true "Student ID"
// @Success 200 {object} dto.ReconcileReportDTO
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /club/tests/{test_id}/reconcile/{student_id} [get]
// @Security BearerAuth
func (c *AdminTestController) ReconcileReport(ctx *gin.Context) {
	clubID, testID, ok := c.pathAndIdentity(ctx)
	if !ok {
		return
	}
	studentID, ok := c.studentParam(ctx)
	if !ok {
		return
	}
	resp, err := c.reconcileService.Report(clubID, testID, studentID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ReconcileRepair godoc
// @Summary (Club) Repair a diverged ledger entry from the roster
// @Description Rewrites the student's ledger status for this test from the roster state. The roster is authoritative.
// @Tags Club - Reconcile
// @Produce json
// @Param test_id path int true "Test ID"
// @Param student_id path int true "Student ID"
// @Success 200 {object} dto.ReconcileReportDTO
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /club/tests/{test_id}/reconcile/{student_id} [post]
// @Security BearerAuth
func (c *AdminTestController) ReconcileRepair(ctx *gin.Context) {
	clubID, testID, ok := c.pathAndIdentity(ctx)
	if !ok {
		return
	}
	studentID, ok := c.studentParam(ctx)
	if !ok {
		return
	}
	resp, err := c.reconcileService.Repair(clubID, testID, studentID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

func (c *AdminTestController) pathAndIdentity(ctx *gin.Context) (clubID, testID uint, ok bool) {
	id, found := middleware.CallerIdentity(ctx)
	if !found {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "unauthorized"})
		return 0, 0, false
	}
	val, err := strconv.ParseUint(ctx.Param("test_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid test ID format"})
		return 0, 0, false
	}
	return id.UserID, uint(val), true
}

func (c *AdminTestController) studentParam(ctx *gin.Context) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Param("student_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid student ID format"})
		return 0, false
	}
	return uint(val), true
}
