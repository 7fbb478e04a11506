package web

import (
	"github.com/kbukum/storefront/authform"
)

type routes struct {
	Mode       string
	SignUp     string
	SignIn     string
	Reset      string
	OTPRequest string
	OTPVerify  string
	Federated  string
}

type accountView struct {
	View         string
	AwaitingCode bool
	Email        string
	DisplayName  string
	Phone        string
	Notice       *authform.Notice
	SiteKey      string
	WidgetSize   string
	Federated    []FederatedLink
	Routes       routes
}

func newAccountView(cfg Config, page Page, snap authform.Snapshot, notice *authform.Notice) accountView {
	mode := snap.Mode
	if !mode.Valid() {
		mode = authform.InitialMode
	}
	return accountView{
		View:         mode.View(),
		AwaitingCode: mode == authform.ModeOTPVerify,
		Email:        snap.Email,
		DisplayName:  snap.DisplayName,
		Phone:        snap.Phone,
		Notice:       notice,
		SiteKey:      page.SiteKey,
		WidgetSize:   page.WidgetSize,
		Federated:    page.Federated,
		Routes: routes{
			Mode:       cfg.path("/mode"),
			SignUp:     cfg.path("/sign-up"),
			SignIn:     cfg.path("/sign-in"),
			Reset:      cfg.path("/reset"),
			OTPRequest: cfg.path("/otp/request"),
			OTPVerify:  cfg.path("/otp/verify"),
			Federated:  cfg.path("/federated/"),
		},
	}
}
