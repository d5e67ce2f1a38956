package dialect

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedDriver is returned by GetDialect for drivers outside the MySQL family.
var ErrUnsupportedDriver = errors.New("unsupported driver")

// GetDialect returns the Dialect implementation for a driver name.
// MariaDB and TiDB speak the MySQL dialect through the same driver.
func GetDialect(driver string) (Dialect, error) {
	switch strings.ToLower(driver) {
	case "", "mysql", "mariadb", "tidb":
		return &MysqlDialect{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDriver, driver)
	}
}

// Ensure interface implementation
var _ Dialect = (*MysqlDialect)(nil)
