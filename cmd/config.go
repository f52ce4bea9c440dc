package cmd

import (
	"fmt"

	"github.com/spf13/viper"

	"tablesink/internal/store"
)

type StoreConfig struct {
	Name      string `mapstructure:"name"`
	Driver    string `mapstructure:"driver"`
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	Database  string `mapstructure:"database"`
	User      string `mapstructure:"user"`
	Password  string `mapstructure:"password"`
	Namespace string `mapstructure:"namespace"`
	Active    bool   `mapstructure:"active"`
}

func (c StoreConfig) ToStoreConfig() store.Config {
	ns := c.Namespace
	if ns == "" {
		ns = "public"
	}
	return store.Config{
		Driver:    c.Driver,
		Host:      c.Host,
		Port:      c.Port,
		Database:  c.Database,
		User:      c.User,
		Password:  c.Password,
		Namespace: ns,
	}
}

// GetActiveStoreConfig returns the store to use: the one named by --store,
// or the single entry marked active in the config file.
func GetActiveStoreConfig() (*StoreConfig, error) {
	var configs []StoreConfig

	if err := viper.UnmarshalKey("stores", &configs); err != nil {
		return nil, fmt.Errorf("failed to parse stores config: %w", err)
	}

	if storeName != "" {
		for i := range configs {
			if configs[i].Name == storeName {
				return &configs[i], nil
			}
		}
		return nil, fmt.Errorf("store %q not found in config", storeName)
	}

	var active *StoreConfig
	count := 0
	for i := range configs {
		if configs[i].Active {
			active = &configs[i]
			count++
		}
	}

	if count == 0 {
		return nil, fmt.Errorf("no active store found in config (set active: true)")
	}
	if count > 1 {
		return nil, fmt.Errorf("multiple active stores found (only one can be active)")
	}
	return active, nil
}
