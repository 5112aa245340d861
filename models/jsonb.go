package models

import (
	"encoding/json"
	"fmt"

	"database/sql/driver"
)

// jsonbValue marshals a nested struct into a jsonb column parameter.
func jsonbValue(v interface{}) (driver.Value, error) {
	return json.Marshal(v)
}

// jsonbScan reads a jsonb column back into a nested struct.
func jsonbScan(src interface{}, dst interface{}) error {
	if src == nil {
		return nil
	}
	switch b := src.(type) {
	case []byte:
		return json.Unmarshal(b, dst)
	case string:
		return json.Unmarshal([]byte(b), dst)
	default:
		return fmt.Errorf("jsonb scan: unsupported type %T", src)
	}
}
