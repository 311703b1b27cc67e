package student

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

type TestController struct {
	transitionService service.TransitionService
	dashboardService  service.DashboardService
}

func NewTestController(ts service.TransitionService, ds service.DashboardService) *TestController {
	return &TestController{transitionService: ts, dashboardService: ds}
}

// Apply godoc
// @Summary (Student) Apply for a test
// @Description Adds the student to the test's applied roster and opens their ledger entry.
// @Tags Student - Tests
// @Produce json
// @Param test_id path int true "Test ID"
// @Success 200 {object} dto.ApplyResponseDTO
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Failure 409 {object} dto.ErrorResponse "Already applied or already attempted"
// @Router /tests/{test_id}/apply [post]
// @Security BearerAuth
func (c *TestController) Apply(ctx *gin.Context) {
	testID, studentID, ok := c.pathAndIdentity(ctx)
	if !ok {
		return
	}
	resp, err := c.transitionService.Apply(testID, studentID)
	if err != nil {
		log.Warn().Err(err).Uint("testID", testID).Uint("studentID", studentID).Msg("apply refused")
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Attempt godoc
// @Summary (Student) Start a test attempt
// @Description Moves the student from applied to started and returns the test, club and domain details needed to take it. Only allowed inside the scheduled window.
// @Tags Student - Tests
// @Produce json
// @Param test_id path int true "Test ID"
// @Success 200 {object} dto.StartResponseDTO
// @Failure 403 {object} dto.ErrorResponse "Not applied, not yet open, or window closed"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Failure 409 {object} dto.ErrorResponse "Already attempted"
// @Router /tests/{test_id}/attempt [post]
// @Security BearerAuth
func (c *TestController) Attempt(ctx *gin.Context) {
	testID, studentID, ok := c.pathAndIdentity(ctx)
	if !ok {
		return
	}
	resp, err := c.transitionService.Start(testID, studentID)
	if err != nil {
		log.Warn().Err(err).Uint("testID", testID).Uint("studentID", studentID).Msg("attempt refused")
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Submit godoc
// @Summary (Student) Submit a started test
// @Description Moves the student from started to finished. A started attempt may be submitted after the window closes.
// @Tags Student - Tests
// @Produce json
// @Param test_id path int true "Test ID"
// @Success 200 {object} dto.FinishResponseDTO
// @Failure 403 {object} dto.ErrorResponse "Not started"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /tests/{test_id}/submit [post]
// @Security BearerAuth
func (c *TestController) Submit(ctx *gin.Context) {
	testID, studentID, ok := c.pathAndIdentity(ctx)
	if !ok {
		return
	}
	resp, err := c.transitionService.Finish(testID, studentID)
	if err != nil {
		log.Warn().Err(err).Uint("testID", testID).Uint("studentID", studentID).Msg("submit refused")
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// AppliedDashboard godoc
// @Summary (Student) List tests applied to but not yet started
// @Tags Student - Dashboard
// @Produce json
// @Success 200 {object} dto.DashboardDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /dashboard/applied [get]
// @Security BearerAuth
func (c *TestController) AppliedDashboard(ctx *gin.Context) {
	id, ok := middleware.CallerIdentity(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "unauthorized"})
		return
	}
	resp, err := c.dashboardService.AppliedTests(id.UserID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// StartedDashboard godoc
// @Summary (Student) List tests started but not yet submitted
// @Tags Student - Dashboard
// @Produce json
// @Success 200 {object} dto.DashboardDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /dashboard/started [get]
// @Security BearerAuth
func (c *TestController) StartedDashboard(ctx *gin.Context) {
	id, ok := middleware.CallerIdentity(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "unauthorized"})
		return
	}
	resp, err := c.dashboardService.StartedTests(id.UserID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

func (c *TestController) pathAndIdentity(ctx *gin.Context) (testID, studentID uint, ok bool) {
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
	return uint(val), id.UserID, true
}
