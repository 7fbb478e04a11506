package bootstrap

import (
	"github.com/kbukum/storefront/config"
)

// Config is satisfied by any struct embedding config.ServiceConfig through
// the promoted methods.
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}
