package config

import "fmt"

func validate(c *Config) error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0")
	}
	if c.WaitTimeout <= 0 {
		return fmt.Errorf("wait timeout must be > 0")
	}
	if c.SettleDelay < 0 {
		return fmt.Errorf("settle delay must be >= 0")
	}
	if c.LookupTimeout <= 0 {
		return fmt.Errorf("lookup timeout must be > 0")
	}
	if c.WaitTimeout+c.SettleDelay >= c.Timeout {
		return fmt.Errorf("timeout %s leaves no room for the %s wait and %s settle delay", c.Timeout, c.WaitTimeout, c.SettleDelay)
	}
	if c.Marketplace.Host == "" {
		return fmt.Errorf("marketplace host is required")
	}
	return nil
}
