package api

import (
	"net/http"
	"strings"

	"testdrive-hub/internal/domain/testdrive"
	reqdto "testdrive-hub/internal/handler/dto/request"
	resdto "testdrive-hub/internal/handler/dto/response"
	"testdrive-hub/internal/handler/httperr"
	"testdrive-hub/internal/usecase/commands"
	"testdrive-hub/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	IdempotencyKeyHeader = "Idempotency-Key"
	ReplayedHeader       = "Idempotent-Replayed"
)

type TestDriveHandler struct {
	cmds commands.TestDriveCommands
	q    queries.TestDriveQueries
}

func NewTestDriveHandler(cmds commands.TestDriveCommands, q queries.TestDriveQueries) *TestDriveHandler {
	return &TestDriveHandler{cmds: cmds, q: q}
}

// @Summary Submit test drive request
// @Description Validate and send a test drive request to the vehicle's seller. The form draft is cleared on success.
// @Tags test-drive-requests
// @Accept json
// @Produce json
// @Param vehicleId path string true "Vehicle ID"
// @Param Idempotency-Key header string false "Idempotency key for duplicate prevention"
// @Param X-Session-ID header string false "Anonymous draft session"
// @Param request body reqdto.TestDriveForm true "Test drive form"
// @Success 201 {object} resdto.TestDriveRequestResponse
// @Success 200 {object} resdto.TestDriveRequestResponse "Replayed by idempotency key"
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /vehicles/{vehicleId}/test-drive-requests [post]
func (h *TestDriveHandler) Submit(c *gin.Context) {
	var key *uuid.UUID
	if raw := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader)); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Idempotency-Key must be a UUID", nil)
			return
		}
		key = &parsed
	}

	payload, ok := bindForm(c)
	if !ok {
		return
	}

	result, err := h.cmds.Submit(c.Request.Context(), commands.SubmitCommand{
		VehicleID:      c.Param("vehicleId"),
		Payload:        payload,
		DraftOwner:     draftOwner(c),
		IdempotencyKey: key,
	})
	if err != nil {
		if result != nil && result.Request != nil {
			// the form keeps its data and shows the failed status so the buyer can retry
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to send test drive request",
				gin.H{"status": result.Request.Status().String()})
			return
		}
		abortWithUseCaseError(c, err)
		return
	}

	res := resdto.FromRequestView(queries.ViewOf(result.Request, buyerIdentity(result.Request)))
	if result.IsReplayed {
		c.Header(ReplayedHeader, "true")
		c.JSON(http.StatusOK, res)
		return
	}
	c.Header("Location", "/api/test-drive-requests/"+res.ID)
	c.JSON(http.StatusCreated, res)
}

// @Summary Validate test drive form
// @Description Validate the whole form, or one field when field is set
// @Tags test-drive-requests
// @Accept json
// @Produce json
// @Param request body reqdto.ValidateRequest true "Form and optional field"
// @Success 200 {object} resdto.ValidationResponse
// @Failure 400 {object} httperr.Response
// @Router /test-drive-requests/validate [post]
func (h *TestDriveHandler) Validate(c *gin.Context) {
	var req reqdto.ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}
	payload, err := req.Payload.ToDomain()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	var field *testdrive.Field
	if req.Field != "" {
		f := testdrive.Field(req.Field)
		if !f.IsValid() {
			abortWithUseCaseError(c, commands.ErrUnknownField)
			return
		}
		field = &f
	}

	fe := h.q.Validate(payload, field)
	c.JSON(http.StatusOK, resdto.ValidationResponse{
		Valid:  len(fe) == 0,
		Errors: resdto.FromFieldErrors(fe),
	})
}

// @Summary Seller dashboard
// @Description List the signed-in seller's test drive requests, optionally filtered by status
// @Tags test-drive-requests
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter" Enums(sent, confirmed, rescheduled, declined, cancelled, completed)
// @Success 200 {object} map[string][]resdto.TestDriveRequestResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /seller/test-drive-requests [get]
func (h *TestDriveHandler) ListForSeller(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}

	var status *testdrive.Status
	if v := c.Query("status"); v != "" {
		parsed, err := testdrive.ParseStatus(v)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid status filter", nil)
			return
		}
		status = &parsed
	}

	views, err := h.q.ListForSeller(c.Request.Context(), id, status)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": resdto.FromRequestViews(views)})
}

// @Summary Buyer requests
// @Description List test drive requests submitted with the signed-in buyer's email
// @Tags test-drive-requests
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string][]resdto.TestDriveRequestResponse
// @Failure 401 {object} httperr.Response
// @Router /buyer/test-drive-requests [get]
func (h *TestDriveHandler) ListForBuyer(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	views, err := h.q.ListForBuyer(c.Request.Context(), id)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": resdto.FromRequestViews(views)})
}

// @Summary Get test drive request
// @Tags test-drive-requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} resdto.TestDriveRequestResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /test-drive-requests/{id} [get]
func (h *TestDriveHandler) Get(c *gin.Context) {
	reqID, ok := parseRequestID(c)
	if !ok {
		return
	}
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), reqID, id)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRequestView(view))
}

// @Summary Test drive request history
// @Tags test-drive-requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} map[string][]resdto.HistoryEntryResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /test-drive-requests/{id}/history [get]
func (h *TestDriveHandler) History(c *gin.Context) {
	reqID, ok := parseRequestID(c)
	if !ok {
		return
	}
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	entries, err := h.q.History(c.Request.Context(), reqID, id)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": resdto.FromHistory(entries)})
}

// @Summary Respond to test drive request
// @Description Confirm, reschedule or decline (seller), or cancel (buyer or seller)
// @Tags test-drive-requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param request body reqdto.RespondRequest true "Action"
// @Success 200 {object} resdto.TestDriveRequestResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /test-drive-requests/{id}/respond [post]
func (h *TestDriveHandler) Respond(c *gin.Context) {
	reqID, ok := parseRequestID(c)
	if !ok {
		return
	}
	id, ok := requireIdentity(c)
	if !ok {
		return
	}

	var body reqdto.RespondRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}
	action, message, proposal, err := body.ToDomain()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid action", nil)
		return
	}

	req, err := h.cmds.Respond(c.Request.Context(), commands.RespondCommand{
		RequestID: reqID,
		Action:    action,
		Message:   message,
		Proposal:  proposal,
		Actor:     actorOf(id),
	})
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRequestView(queries.ViewOf(req, id)))
}

// @Summary Download calendar file
// @Description iCalendar file for a confirmed or rescheduled appointment
// @Tags calendar
// @Produce text/calendar
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {file} file
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /test-drive-requests/{id}/calendar.ics [get]
func (h *TestDriveHandler) CalendarFile(c *gin.Context) {
	reqID, ok := parseRequestID(c)
	if !ok {
		return
	}
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	file, err := h.q.CalendarFile(c.Request.Context(), reqID, id)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+file.FileName+`"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", file.Content)
}

// @Summary Calendar provider links
// @Description Add-to-calendar links for a confirmed or rescheduled appointment
// @Tags calendar
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} resdto.CalendarLinksResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /test-drive-requests/{id}/calendar-links [get]
func (h *TestDriveHandler) CalendarLinks(c *gin.Context) {
	reqID, ok := parseRequestID(c)
	if !ok {
		return
	}
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	links, err := h.q.CalendarLinks(c.Request.Context(), reqID, id)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCalendarLinks(links))
}
