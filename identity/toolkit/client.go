package toolkit

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/kbukum/storefront/httpclient"
	"github.com/kbukum/storefront/identity"
	"github.com/kbukum/storefront/logger"
	"github.com/kbukum/storefront/util"
)

// Client talks to the Identity Toolkit REST API.
type Client struct {
	http *httpclient.Client
	log  *logger.Logger
	now  func() time.Time
}

var _ identity.Provider = (*Client)(nil)

// New creates a client from cfg.
func New(cfg Config, log *logger.Logger) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	headers := map[string]string{}
	if cfg.Locale != "" {
		headers["X-Firebase-Locale"] = cfg.Locale
	}
	hc, err := httpclient.New(httpclient.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		TLS:     cfg.TLS,
		Headers: headers,
		Auth:    httpclient.APIKeyAuthQuery(cfg.APIKey, "key"),
	})
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Client{http: hc, log: log.WithComponent("identity-toolkit"), now: time.Now}, nil
}

// authResponse is the common shape of every sign-in response.
type authResponse struct {
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	DisplayName  string `json:"displayName"`
	PhoneNumber  string `json:"phoneNumber"`
	IsNewUser    bool   `json:"isNewUser"`
}

func (c *Client) session(r *authResponse) *identity.Session {
	s := &identity.Session{
		UserID:       r.LocalID,
		Email:        r.Email,
		DisplayName:  r.DisplayName,
		PhoneNumber:  r.PhoneNumber,
		IDToken:      r.IDToken,
		RefreshToken: r.RefreshToken,
		NewUser:      r.IsNewUser,
	}
	if secs, err := strconv.Atoi(r.ExpiresIn); err == nil {
		s.ExpiresAt = c.now().Add(time.Duration(secs) * time.Second)
	}
	return s
}

func (c *Client) call(ctx context.Context, method string, body, out any) error {
	start := c.now()
	resp, err := c.http.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   "accounts:" + method,
		Body:   body,
	})
	if err != nil {
		translated := translate(err)
		c.log.WithContext(ctx).Debug("identity toolkit call failed", map[string]any{
			logger.FieldOperation:    method,
			logger.FieldProviderCode: identity.CodeOf(translated),
			logger.FieldError:        err.Error(),
		})
		return translated
	}
	c.log.WithContext(ctx).Debug("identity toolkit call", logger.DurationFields(method, c.now().Sub(start)))
	if out == nil {
		return nil
	}
	if err := resp.JSON(out); err != nil {
		return identity.NewError(identity.CodeInternalError, "malformed response", err)
	}
	return nil
}

func (c *Client) signIn(ctx context.Context, method string, body any) (*identity.Session, error) {
	var r authResponse
	if err := c.call(ctx, method, body, &r); err != nil {
		return nil, err
	}
	return c.session(&r), nil
}

// SignUp creates an email/password account.
func (c *Client) SignUp(ctx context.Context, email, password, displayName string) (*identity.Session, error) {
	c.log.WithContext(ctx).Debug("sign up", map[string]any{logger.FieldEmail: util.MaskEmail(email)})
	s, err := c.signIn(ctx, "signUp", map[string]any{
		"email":             email,
		"password":          password,
		"displayName":       displayName,
		"returnSecureToken": true,
	})
	if s != nil {
		s.NewUser = true
		if s.DisplayName == "" {
			s.DisplayName = displayName
		}
	}
	return s, err
}

// SignInWithPassword signs in an email/password account.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*identity.Session, error) {
	return c.signIn(ctx, "signInWithPassword", map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})
}

// SignInWithIdP signs in with a federated ID token.
func (c *Client) SignInWithIdP(ctx context.Context, cred identity.IdPCredential) (*identity.Session, error) {
	post := url.Values{}
	post.Set("id_token", cred.IDToken)
	post.Set("providerId", cred.ProviderID)
	return c.signIn(ctx, "signInWithIdp", map[string]any{
		"postBody":            post.Encode(),
		"requestUri":          cred.RequestURI,
		"returnSecureToken":   true,
		"returnIdpCredential": true,
	})
}

// SendPasswordReset mails a password-reset link.
func (c *Client) SendPasswordReset(ctx context.Context, email string) error {
	return c.call(ctx, "sendOobCode", map[string]any{
		"requestType": "PASSWORD_RESET",
		"email":       email,
	}, nil)
}

// SendVerificationCode texts a code to phone and returns the pending
// verification bound to the returned session info.
func (c *Client) SendVerificationCode(ctx context.Context, phone, challengeToken string) (identity.PendingVerification, error) {
	var r struct {
		SessionInfo string `json:"sessionInfo"`
	}
	err := c.call(ctx, "sendVerificationCode", map[string]any{
		"phoneNumber":    phone,
		"recaptchaToken": challengeToken,
	}, &r)
	if err != nil {
		return nil, err
	}
	if r.SessionInfo == "" {
		return nil, identity.NewError(identity.CodeInternalError, "missing sessionInfo", nil)
	}
	c.log.WithContext(ctx).Debug("verification code sent", map[string]any{logger.FieldPhone: util.MaskPhone(phone)})
	return &verification{client: c, sessionInfo: r.SessionInfo}, nil
}

// ResumeVerification rebuilds a pending verification from its session info.
func (c *Client) ResumeVerification(handle string) identity.PendingVerification {
	return &verification{client: c, sessionInfo: handle}
}

type verification struct {
	client      *Client
	sessionInfo string
}

func (v *verification) Handle() string { return v.sessionInfo }

func (v *verification) Confirm(ctx context.Context, code string) (*identity.Session, error) {
	return v.client.signIn(ctx, "signInWithPhoneNumber", map[string]any{
		"sessionInfo": v.sessionInfo,
		"code":        code,
	})
}
