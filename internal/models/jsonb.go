package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// jsonbValue marshals a Go value for storage in a jsonb column.
func jsonbValue(v interface{}) (driver.Value, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal jsonb value: %w", err)
	}
	return b, nil
}

// jsonbScan unmarshals a jsonb column into dst. NULL columns leave dst untouched.
func jsonbScan(dst interface{}, src interface{}) error {
	if src == nil {
		return nil
	}
	var b []byte
	switch s := src.(type) {
	case []byte:
		b = s
	case string:
		b = []byte(s)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", src)
	}
	if len(b) == 0 {
		return nil
	}
	return json.Unmarshal(b, dst)
}

// StringList is a jsonb-backed list of strings.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return jsonbValue([]string{})
	}
	return jsonbValue([]string(l))
}

func (l *StringList) Scan(src interface{}) error {
	return jsonbScan(l, src)
}

// LookItemList is a jsonb-backed list of look items.
type LookItemList []LookItem

func (l LookItemList) Value() (driver.Value, error) {
	if l == nil {
		return jsonbValue([]LookItem{})
	}
	return jsonbValue([]LookItem(l))
}

func (l *LookItemList) Scan(src interface{}) error {
	return jsonbScan(l, src)
}

// AdjustmentList is a jsonb-backed list of brand compliance adjustments.
type AdjustmentList []ComplianceAdjustment

func (l AdjustmentList) Value() (driver.Value, error) {
	if l == nil {
		return jsonbValue([]ComplianceAdjustment{})
	}
	return jsonbValue([]ComplianceAdjustment(l))
}

func (l *AdjustmentList) Scan(src interface{}) error {
	return jsonbScan(l, src)
}
