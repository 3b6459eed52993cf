package api

import (
	"net/http"
	"time"

	"testdrive-hub/internal/domain/testdrive"
	reqdto "testdrive-hub/internal/handler/dto/request"
	resdto "testdrive-hub/internal/handler/dto/response"
	"testdrive-hub/internal/handler/httperr"
	"testdrive-hub/internal/pkg/config"
	"testdrive-hub/internal/pkg/cookie"
	"testdrive-hub/internal/usecase/commands"
	"testdrive-hub/internal/usecase/drafts"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DraftHandler struct {
	cmds       commands.DraftCommands
	cookieCfg  config.CookieConfig
	sessionTTL time.Duration
}

func NewDraftHandler(cmds commands.DraftCommands, cookieCfg config.CookieConfig, sessionTTL time.Duration) *DraftHandler {
	return &DraftHandler{cmds: cmds, cookieCfg: cookieCfg, sessionTTL: sessionTTL}
}

// @Summary Load form draft
// @Description Restore the caller's saved form for a vehicle
// @Tags drafts
// @Produce json
// @Param vehicleId path string true "Vehicle ID"
// @Param X-Session-ID header string false "Anonymous draft session"
// @Success 200 {object} resdto.DraftResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /vehicles/{vehicleId}/draft [get]
func (h *DraftHandler) Get(c *gin.Context) {
	key, ok := h.key(c, false)
	if !ok {
		return
	}
	d, found := h.cmds.Load(c.Request.Context(), key)
	if !found {
		httperr.AbortWithError(c, http.StatusNotFound, errDraftNotFound, "No saved draft", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.DraftResponse{
		VehicleID: d.VehicleID,
		Payload:   resdto.FromPayload(d.Payload),
		SavedAt:   d.SavedAt,
	})
}

// @Summary Save form draft
// @Description Save the whole form now, replacing any pending autosave
// @Tags drafts
// @Accept json
// @Produce json
// @Param vehicleId path string true "Vehicle ID"
// @Param X-Session-ID header string false "Anonymous draft session"
// @Param request body reqdto.TestDriveForm true "Form"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} httperr.Response
// @Router /vehicles/{vehicleId}/draft [put]
func (h *DraftHandler) Put(c *gin.Context) {
	key, ok := h.key(c, true)
	if !ok {
		return
	}
	payload, ok := bindForm(c)
	if !ok {
		return
	}
	saved := h.cmds.Save(c.Request.Context(), key, payload)
	c.JSON(http.StatusOK, gin.H{"saved": saved})
}

// @Summary Discard form draft
// @Tags drafts
// @Param vehicleId path string true "Vehicle ID"
// @Param X-Session-ID header string false "Anonymous draft session"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Router /vehicles/{vehicleId}/draft [delete]
func (h *DraftHandler) Delete(c *gin.Context) {
	key, ok := h.key(c, false)
	if !ok {
		return
	}
	h.cmds.Discard(c.Request.Context(), key)
	c.Status(http.StatusNoContent)
}

// @Summary Autosave a field edit
// @Description Apply one field edit, validate that field and schedule a debounced draft save
// @Tags drafts
// @Accept json
// @Produce json
// @Param vehicleId path string true "Vehicle ID"
// @Param X-Session-ID header string false "Anonymous draft session"
// @Param request body reqdto.AutosaveRequest true "Current form and the edit"
// @Success 202 {object} resdto.AutosaveResponse
// @Failure 400 {object} httperr.Response
// @Router /vehicles/{vehicleId}/draft/autosave [post]
func (h *DraftHandler) Autosave(c *gin.Context) {
	key, ok := h.key(c, true)
	if !ok {
		return
	}
	var body reqdto.AutosaveRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}
	current, err := body.Current.ToDomain()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.cmds.Autosave(c.Request.Context(), key, current, commands.FieldEdit{
		Field: testdrive.Field(body.Field),
		Value: body.Value,
	})
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}

	res := resdto.AutosaveResponse{
		Payload: resdto.FromPayload(result.Payload),
		Pending: result.Pending,
	}
	if fe := result.FieldError; fe != nil {
		res.FieldError = &resdto.FieldErrorResponse{Field: string(fe.Field), Code: fe.Code, Message: fe.Message}
	}
	c.JSON(http.StatusAccepted, res)
}

// @Summary Flush pending autosave
// @Description Write a pending autosave immediately, e.g. when the buyer leaves the page
// @Tags drafts
// @Produce json
// @Param vehicleId path string true "Vehicle ID"
// @Param X-Session-ID header string false "Anonymous draft session"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} httperr.Response
// @Router /vehicles/{vehicleId}/draft/flush [post]
func (h *DraftHandler) Flush(c *gin.Context) {
	key, ok := h.key(c, false)
	if !ok {
		return
	}
	flushed := h.cmds.Flush(c.Request.Context(), key)
	c.JSON(http.StatusOK, gin.H{"flushed": flushed})
}

// key resolves the draft key. Writers without any identity get a fresh session cookie.
func (h *DraftHandler) key(c *gin.Context, issue bool) (drafts.Key, bool) {
	owner := draftOwner(c)
	if owner == "" && issue {
		session := uuid.NewString()
		cookie.SetDraftSession(c, h.cookieCfg, session, h.sessionTTL)
		owner = "session:" + session
	}
	key := drafts.Key{VehicleID: c.Param("vehicleId"), Owner: owner}
	if !key.Valid() {
		httperr.AbortWithError(c, http.StatusBadRequest, errNoDraftOwner, "Sign in or send X-Session-ID to use drafts", nil)
		return drafts.Key{}, false
	}
	return key, true
}

func bindForm(c *gin.Context) (testdrive.Payload, bool) {
	var form reqdto.TestDriveForm
	if err := c.ShouldBindJSON(&form); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return testdrive.Payload{}, false
	}
	payload, err := form.ToDomain()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return testdrive.Payload{}, false
	}
	return payload, true
}
