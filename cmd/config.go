package cmd

import (
	"fmt"

	"db-ddl/internal/builder"

	"github.com/spf13/viper"
)

type DBConfig struct {
	Name         string `mapstructure:"name"`
	Driver       string `mapstructure:"driver"`
	DSN          string `mapstructure:"dsn"`
	Charset      string `mapstructure:"charset"`
	Collation    string `mapstructure:"collation"`
	Engine       string `mapstructure:"engine"`
	TablePrefix  string `mapstructure:"table_prefix"`
	StrictBefore bool   `mapstructure:"strict_before"`
	Active       bool   `mapstructure:"active"`
}

func setConfigDefaults() {
	viper.SetDefault("database.driver", "mysql")
	viper.SetDefault("database.charset", "utf8mb4")
	viper.SetDefault("database.collation", "utf8mb4_unicode_ci")
	viper.SetDefault("database.engine", "InnoDB")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("settings.default_count", 100)
	viper.SetDefault("settings.batch_size", 100)
}

// GetActiveDBConfig returns the currently active database configuration.
func GetActiveDBConfig() (*DBConfig, error) {
	var configs []DBConfig

	if err := viper.UnmarshalKey("databases", &configs); err != nil {
		return nil, fmt.Errorf("failed to parse databases config: %w", err)
	}

	var activeConfig *DBConfig
	count := 0

	for i := range configs {
		if configs[i].Active {
			activeConfig = &configs[i]
			count++
		}
	}

	if count == 0 {
		return nil, fmt.Errorf("no active database found in config (set active: true)")
	}
	if count > 1 {
		return nil, fmt.Errorf("multiple active databases found (only one can be active)")
	}

	return activeConfig, nil
}

// LoadDBConfig resolves the connection settings: the "database" section first,
// then the active entry of "databases" on top of it. An explicit --dsn wins over both.
func LoadDBConfig() (*DBConfig, error) {
	config := DBConfig{
		Driver:       viper.GetString("database.driver"),
		DSN:          viper.GetString("database.dsn"),
		Charset:      viper.GetString("database.charset"),
		Collation:    viper.GetString("database.collation"),
		Engine:       viper.GetString("database.engine"),
		TablePrefix:  viper.GetString("database.table_prefix"),
		StrictBefore: viper.GetBool("database.strict_before"),
	}

	if viper.IsSet("databases") {
		active, err := GetActiveDBConfig()
		if err != nil {
			return nil, err
		}
		overlay(&config, active)
	}

	if dsn != "" {
		config.DSN = dsn
	}
	if config.DSN == "" {
		return nil, fmt.Errorf("database.dsn is required (via flag or config)")
	}
	return &config, nil
}

func overlay(dst, src *DBConfig) {
	dst.Name = src.Name
	setIf(&dst.Driver, src.Driver)
	setIf(&dst.DSN, src.DSN)
	setIf(&dst.Charset, src.Charset)
	setIf(&dst.Collation, src.Collation)
	setIf(&dst.Engine, src.Engine)
	setIf(&dst.TablePrefix, src.TablePrefix)
	dst.StrictBefore = dst.StrictBefore || src.StrictBefore
	dst.Active = true
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// BuilderConfig maps the connection settings onto the statement builder.
func (c *DBConfig) BuilderConfig() builder.Config {
	cfg := builder.Config{
		Engine:      c.Engine,
		Charset:     c.Charset,
		Collation:   c.Collation,
		TablePrefix: c.TablePrefix,
	}
	if c.StrictBefore {
		cfg.Before = builder.BeforeStrict
	}
	return cfg
}
