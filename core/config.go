package core

import (
	"fmt"
	"strings"
)

type Config struct {
	ServiceName    string `koanf:"service_name" mapstructure:"service_name"`
	Owner          string `koanf:"owner" mapstructure:"owner"`
	CustodyAccount string `koanf:"custody_account" mapstructure:"custody_account"`
}

func DefaultConfig() Config {
	return Config{
		ServiceName:    "vault",
		CustodyAccount: "vault-custody",
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.ServiceName) == "" {
		return fmt.Errorf("core: service_name is required")
	}
	if strings.TrimSpace(c.CustodyAccount) == "" {
		return fmt.Errorf("core: custody_account is required")
	}
	return nil
}
