// internal/config/devicesdb.go
package config

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// devicesQuery selects the columns in DeviceConfig order.
const devicesQuery = `SELECT name, port, baud_rate, data_bits, stop_bits, parity FROM devices`

// LoadDevicesDB reads device descriptors from a sqlite database holding a
// devices table (name, port, baud_rate, data_bits, stop_bits, parity).
func LoadDevicesDB(path string) ([]DeviceConfig, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open devices db %s: %w", path, err)
	}
	defer db.Close()

	rows, err := db.Query(devicesQuery)
	if err != nil {
		return nil, fmt.Errorf("query devices db %s: %w", path, err)
	}
	defer rows.Close()

	var out []DeviceConfig
	for rows.Next() {
		var d DeviceConfig
		if err := rows.Scan(&d.Name, &d.Port, &d.BaudRate, &d.DataBits, &d.StopBits, &d.Parity); err != nil {
			return nil, fmt.Errorf("scan devices db %s: %w", path, err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read devices db %s: %w", path, err)
	}
	return out, nil
}
