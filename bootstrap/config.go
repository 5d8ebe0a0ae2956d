package bootstrap

import (
	"github.com/kbukum/reqkit/config"
)

// Config is the constraint for application configuration types. Any struct
// embedding config.ServiceConfig satisfies it through promoted methods once
// it also defines ApplyDefaults and Validate, as config.Config does.
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}
