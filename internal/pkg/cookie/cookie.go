package cookie

import (
	"net/http"
	"time"

	"testdrive-hub/internal/pkg/config"

	"github.com/gin-gonic/gin"
)

const (
	AccessTokenCookieName = "access_token"
	// DraftSessionCookieName identifies an anonymous buyer's form drafts.
	DraftSessionCookieName = "draft_session"
)

func GetAccessToken(c *gin.Context) string {
	token, _ := c.Cookie(AccessTokenCookieName)
	return token
}

func GetDraftSession(c *gin.Context) string {
	session, _ := c.Cookie(DraftSessionCookieName)
	return session
}

func SetDraftSession(c *gin.Context, cfg config.CookieConfig, session string, maxAge time.Duration) {
	c.SetSameSite(getSameSite(cfg.SameSite))

	c.SetCookie(
		DraftSessionCookieName,
		session,
		int(maxAge.Seconds()),
		"/",
		cfg.Domain,
		cfg.Secure,
		true, // HttpOnly
	)
}

func getSameSite(sameSite string) http.SameSite {
	switch sameSite {
	case "Strict":
		return http.SameSiteStrictMode
	case "Lax":
		return http.SameSiteLaxMode
	case "None":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
