package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/storefront/identity"
	"github.com/kbukum/storefront/logger"
)

type homeView struct {
	SignedIn  bool
	Label     string
	Flash     string
	Account   string
	SignOut   string
	ExpiresAt time.Time
}

// home shows who is signed in. The session cookie is decoded for display
// only; an unreadable or expired token counts as signed out.
func (h *Handler) home(c *gin.Context) {
	view := homeView{
		Flash:   h.takeFlash(c),
		Account: h.cfg.Account,
		SignOut: h.cfg.path("/sign-out"),
	}
	if token, err := c.Cookie(SessionCookie); err == nil && token != "" {
		claims, err := identity.ParseClaims(token)
		switch {
		case err != nil:
			h.log.WithContext(c.Request.Context()).Debug("unreadable session cookie", logger.ErrorFields("parse_claims", err))
		case claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()):
			// expired
		default:
			view.SignedIn = true
			view.Label = claims.Label()
			if claims.ExpiresAt != nil {
				view.ExpiresAt = claims.ExpiresAt.Time
			}
		}
	}
	c.HTML(http.StatusOK, "home.tmpl", view)
}

// signOut drops the session cookie and goes home.
func (h *Handler) signOut(c *gin.Context) {
	h.clearCookie(c, SessionCookie)
	c.Redirect(http.StatusSeeOther, h.cfg.Home)
}
