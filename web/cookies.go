package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/storefront/identity"
)

// FlashCookie carries the success notice of a sign-in to the home page.
const FlashCookie = "sf_flash"

func (h *Handler) setCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", h.cfg.CookieDomain, h.cfg.SecureCookies, true)
}

func (h *Handler) clearCookie(c *gin.Context, name string) {
	h.setCookie(c, name, "", -1)
}

// setSession hands the ID token to the browser until it expires.
func (h *Handler) setSession(c *gin.Context, s *identity.Session) {
	maxAge := 0
	if !s.ExpiresAt.IsZero() {
		maxAge = int(time.Until(s.ExpiresAt).Seconds())
		if maxAge <= 0 {
			maxAge = -1
		}
	}
	h.setCookie(c, SessionCookie, s.IDToken, maxAge)
}

// setFlash stores a one-shot message. gin query-escapes cookie values.
func (h *Handler) setFlash(c *gin.Context, msg string) {
	h.setCookie(c, FlashCookie, msg, 60)
}

// takeFlash returns and clears the flash message.
func (h *Handler) takeFlash(c *gin.Context) string {
	msg, err := c.Cookie(FlashCookie)
	if err != nil || msg == "" {
		return ""
	}
	h.clearCookie(c, FlashCookie)
	return msg
}
