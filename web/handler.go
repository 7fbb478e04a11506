package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"

	"github.com/kbukum/storefront/authform"
	"github.com/kbukum/storefront/challenge"
	"github.com/kbukum/storefront/formstore"
	"github.com/kbukum/storefront/identity"
	"github.com/kbukum/storefront/logger"
	"github.com/kbukum/storefront/server/middleware"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// FederatedLink is a federated sign-in button.
type FederatedLink struct {
	Name        string
	DisplayName string
}

// Page holds what the account page renders besides the form itself.
type Page struct {
	SiteKey    string
	WidgetSize string
	Federated  []FederatedLink
}

// Handler serves the account page.
type Handler struct {
	cfg   Config
	store formstore.Store
	deps  authform.Deps
	page  Page
	tmpl  *template.Template
	log   *logger.Logger
}

// New creates the handler. deps.HomeRoute is taken from cfg.
func New(cfg Config, store formstore.Store, deps authform.Deps, page Page, log *logger.Logger) (*Handler, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	tmpl, err := template.New("").Funcs(template.FuncMap{"dict": dict}).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, err
	}
	deps.HomeRoute = cfg.Home
	if deps.Logger == nil {
		deps.Logger = log
	}
	return &Handler{
		cfg:   cfg,
		store: store,
		deps:  deps,
		page:  page,
		tmpl:  tmpl,
		log:   log.WithComponent("web"),
	}, nil
}

// Register installs the templates and routes on engine.
func (h *Handler) Register(engine *gin.Engine) {
	engine.SetHTMLTemplate(h.tmpl)

	engine.GET(h.cfg.Home, h.home)
	engine.GET(h.cfg.Account, h.account)

	g := engine.Group(h.cfg.Account)
	g.GET("/federated/:provider", h.beginFederated)
	g.GET("/federated/:provider/callback", h.completeFederated)
	g.POST("/mode", h.switchMode)
	g.POST("/sign-out", h.signOut)

	submit := g.Group("", middleware.RateLimit(middleware.RateLimitConfig{
		RequestsPerMinute: h.cfg.SubmitRateLimit,
		OnLimit:           h.rateLimited,
	}))
	submit.POST("/sign-up", h.signUp)
	submit.POST("/sign-in", h.signIn)
	submit.POST("/reset", h.resetPassword)
	submit.POST("/otp/request", h.requestOTP)
	submit.POST("/otp/verify", h.verifyOTP)
}

// dict builds a map from alternating keys and values for sub-templates.
func dict(kv ...any) (map[string]any, error) {
	if len(kv)%2 != 0 {
		return nil, errors.New("dict: odd number of arguments")
	}
	m := make(map[string]any, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			return nil, errors.New("dict: keys must be strings")
		}
		m[key] = kv[i+1]
	}
	return m, nil
}

type operation func(ctx context.Context, f *authform.Form) authform.Outcome

func (h *Handler) signUp(c *gin.Context) {
	var in authform.SignUpInput
	h.bind(c, &in)
	h.handle(c, func(ctx context.Context, f *authform.Form) authform.Outcome {
		return f.SubmitSignUp(ctx, in)
	})
}

func (h *Handler) signIn(c *gin.Context) {
	var in authform.SignInInput
	h.bind(c, &in)
	h.handle(c, func(ctx context.Context, f *authform.Form) authform.Outcome {
		return f.SubmitSignIn(ctx, in)
	})
}

func (h *Handler) resetPassword(c *gin.Context) {
	var in authform.ResetPasswordInput
	h.bind(c, &in)
	h.handle(c, func(ctx context.Context, f *authform.Form) authform.Outcome {
		return f.RequestPasswordReset(ctx, in)
	})
}

func (h *Handler) requestOTP(c *gin.Context) {
	var in authform.OTPRequestInput
	h.bind(c, &in)
	response := c.PostForm(challenge.FormField)
	h.handle(c, func(ctx context.Context, f *authform.Form) authform.Outcome {
		return f.RequestOTP(challenge.WithResponse(ctx, response), in)
	})
}

func (h *Handler) verifyOTP(c *gin.Context) {
	var in authform.OTPVerifyInput
	h.bind(c, &in)
	h.handle(c, func(ctx context.Context, f *authform.Form) authform.Outcome {
		return f.SubmitOTP(ctx, in)
	})
}

func (h *Handler) beginFederated(c *gin.Context) {
	name := c.Param("provider")
	h.handle(c, func(ctx context.Context, f *authform.Form) authform.Outcome {
		return f.BeginFederated(ctx, name)
	})
}

func (h *Handler) completeFederated(c *gin.Context) {
	name := c.Param("provider")
	query := c.Request.URL.Query()
	h.handle(c, func(ctx context.Context, f *authform.Form) authform.Outcome {
		return f.CompleteFederated(ctx, name, query)
	})
}

// switchMode handles the links between the four forms. The links post the
// active form, so an email typed but not yet submitted is carried over.
func (h *Handler) switchMode(c *gin.Context) {
	target := c.PostForm("mode")
	email, typed := c.GetPostForm("email")
	h.handle(c, func(ctx context.Context, f *authform.Form) authform.Outcome {
		if typed {
			f.SetEmail(email)
		}
		switch target {
		case string(authform.ModeSignUp):
			f.ShowSignUp()
		case string(authform.ModeSignIn):
			f.ShowSignIn()
		case string(authform.ModeResetPassword):
			f.ShowResetPassword()
		case authform.ModeOTPRequest.View():
			f.ShowOTPLogin(ctx)
		}
		return authform.Outcome{}
	})
}

// bind reads the posted form. Malformed bodies leave in empty, which the
// form then rejects as missing input.
func (h *Handler) bind(c *gin.Context, in any) {
	if err := c.ShouldBindWith(in, binding.Form); err != nil {
		h.log.WithContext(c.Request.Context()).Debug("form binding failed", logger.ErrorFields("bind", err))
	}
}

// handle runs op against the visitor's form under the form lock, stores
// the result and redirects.
func (h *Handler) handle(c *gin.Context, op operation) {
	id := h.formID(c)
	ctx := logger.ContextWithFormID(c.Request.Context(), id)
	log := h.log.WithContext(ctx)

	release, err := h.store.Lock(ctx, id)
	if errors.Is(err, formstore.ErrLocked) {
		h.renderAccount(c, http.StatusConflict, h.load(ctx, id),
			&authform.Notice{Kind: authform.NoticeError, Message: authform.MsgRequestInProgress})
		return
	}
	if err != nil {
		log.Error("form lock failed", logger.ErrorFields("lock", err))
		h.renderAccount(c, http.StatusServiceUnavailable, authform.Snapshot{Mode: authform.InitialMode},
			&authform.Notice{Kind: authform.NoticeError, Message: authform.MsgGenericFailure})
		return
	}
	defer release()

	form := authform.Restore(h.deps, h.load(ctx, id))
	out := op(ctx, form)

	if out.Session != nil {
		h.setSession(c, out.Session)
		if out.Notice != nil {
			h.setFlash(c, out.Notice.Message)
		}
		if err := h.store.Delete(ctx, id); err != nil {
			log.Warn("form delete failed", logger.ErrorFields("delete", err))
		}
		h.clearCookie(c, FormCookie)
		c.Redirect(http.StatusSeeOther, out.Redirect)
		return
	}

	snap := form.Snapshot()
	snap.Notice = out.Notice
	if err := h.store.Save(ctx, id, &snap); err != nil {
		log.Error("form save failed", logger.ErrorFields("save", err))
	}
	if out.Redirect != "" {
		// Consent page of a federated provider.
		c.Redirect(http.StatusFound, out.Redirect)
		return
	}
	c.Redirect(http.StatusSeeOther, h.cfg.Account)
}

// account renders the active form and shows the pending notice once.
func (h *Handler) account(c *gin.Context) {
	id := h.formID(c)
	ctx := logger.ContextWithFormID(c.Request.Context(), id)

	snap := h.load(ctx, id)
	notice := snap.Notice
	if notice != nil {
		if release, err := h.store.Lock(ctx, id); err == nil {
			snap.Notice = nil
			if err := h.store.Save(ctx, id, &snap); err != nil {
				h.log.WithContext(ctx).Warn("notice clear failed", logger.ErrorFields("save", err))
			}
			release()
		}
	}
	h.renderAccount(c, http.StatusOK, snap, notice)
}

func (h *Handler) rateLimited(c *gin.Context) {
	id := h.formID(c)
	ctx := logger.ContextWithFormID(c.Request.Context(), id)
	h.log.WithContext(ctx).Warn("submission rate limited", logger.Fields("client_ip", c.ClientIP()))
	h.renderAccount(c, http.StatusTooManyRequests, h.load(ctx, id),
		&authform.Notice{Kind: authform.NoticeError, Message: authform.Message(identity.CodeTooManyRequests)})
}

// load returns the stored snapshot, or a fresh one. A store failure is
// logged and the visitor starts over.
func (h *Handler) load(ctx context.Context, id string) authform.Snapshot {
	snap, err := h.store.Load(ctx, id)
	if err != nil {
		h.log.WithContext(ctx).Warn("form load failed", logger.ErrorFields("load", err))
	}
	if snap == nil {
		return authform.Snapshot{Mode: authform.InitialMode}
	}
	return *snap
}

// formID returns the visitor's form id, issuing one when the cookie is
// missing or malformed.
func (h *Handler) formID(c *gin.Context) string {
	if v, err := c.Cookie(FormCookie); err == nil {
		if id, err := uuid.Parse(v); err == nil {
			return id.String()
		}
	}
	id := uuid.NewString()
	h.setCookie(c, FormCookie, id, 0)
	return id
}

func (h *Handler) renderAccount(c *gin.Context, status int, snap authform.Snapshot, notice *authform.Notice) {
	c.HTML(status, "account.tmpl", newAccountView(h.cfg, h.page, snap, notice))
}
