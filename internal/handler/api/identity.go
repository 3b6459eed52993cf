package api

import (
	"net/http"
	"strings"

	"testdrive-hub/internal/domain/testdrive"
	"testdrive-hub/internal/domain/user"
	"testdrive-hub/internal/handler/httperr"
	"testdrive-hub/internal/handler/middleware"
	"testdrive-hub/internal/pkg/cookie"
	"testdrive-hub/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const SessionHeader = "X-Session-ID"

var (
	errUnauthenticated = errs.New("unauthenticated")
	errNoDraftOwner    = errs.New("no draft owner")
	errDraftNotFound   = errs.New("draft not found")
)

func requireIdentity(c *gin.Context) (user.Identity, bool) {
	id, ok := middleware.GetIdentity(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return user.Identity{}, false
	}
	return id, true
}

func actorOf(id user.Identity) testdrive.Actor {
	return testdrive.Actor{Email: id.Email, Name: id.Name}
}

// draftOwner resolves whose drafts a request touches: the signed-in user, else the
// anonymous session from the X-Session-ID header or the draft session cookie.
func draftOwner(c *gin.Context) string {
	if id, ok := middleware.GetIdentity(c); ok && id.UserID != "" {
		return "user:" + id.UserID
	}
	if s := strings.TrimSpace(c.GetHeader(SessionHeader)); s != "" {
		return "session:" + s
	}
	if s := cookie.GetDraftSession(c); s != "" {
		return "session:" + s
	}
	return ""
}

func parseRequestID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid test drive request id", nil)
		return uuid.Nil, false
	}
	return id, true
}

// buyerIdentity views a fresh submission as its buyer, who may be anonymous.
func buyerIdentity(req *testdrive.Request) user.Identity {
	b := req.BuyerData()
	return user.Identity{Email: b.Email, Name: b.Name, Role: user.RoleBuyer}
}
