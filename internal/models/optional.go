package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

var jsonNull = []byte("null")

// NullSubcategory is a Subcategory that may be absent. Budgets and expenses
// without a subcategory store NULL.
type NullSubcategory struct {
	Subcategory Subcategory
	Valid       bool
}

// SomeSubcategory returns a present NullSubcategory holding s.
func SomeSubcategory(s Subcategory) NullSubcategory {
	return NullSubcategory{Subcategory: s, Valid: true}
}

// NoSubcategory returns an absent NullSubcategory.
func NoSubcategory() NullSubcategory {
	return NullSubcategory{}
}

// Ordinal returns -1 when absent so that absent values sort first.
func (n NullSubcategory) Ordinal() int {
	if !n.Valid {
		return -1
	}
	return n.Subcategory.Ordinal()
}

// Scan implements sql.Scanner.
func (n *NullSubcategory) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*n = NullSubcategory{}
	case string:
		*n = SomeSubcategory(Subcategory(v))
	case []byte:
		*n = SomeSubcategory(Subcategory(v))
	default:
		return fmt.Errorf("cannot scan %T into NullSubcategory", value)
	}
	return nil
}

// Value implements driver.Valuer.
func (n NullSubcategory) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return string(n.Subcategory), nil
}

// GormDataType tells gorm how to migrate the column.
func (NullSubcategory) GormDataType() string { return "string" }

// MarshalJSON encodes an absent subcategory as null.
func (n NullSubcategory) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return jsonNull, nil
	}
	return json.Marshal(string(n.Subcategory))
}

// UnmarshalJSON accepts null or a subcategory name.
func (n *NullSubcategory) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		*n = NullSubcategory{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	sub, ok := ParseSubcategory(s)
	if !ok {
		return fmt.Errorf("unknown subcategory %q", s)
	}
	*n = SomeSubcategory(sub)
	return nil
}

// NullID is a reference to another record that may be absent.
type NullID struct {
	ID    uint
	Valid bool
}

// SomeID returns a present NullID holding id.
func SomeID(id uint) NullID {
	return NullID{ID: id, Valid: true}
}

// NoID returns an absent NullID.
func NoID() NullID {
	return NullID{}
}

// Scan implements sql.Scanner.
func (n *NullID) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*n = NullID{}
	case int64:
		if v < 0 {
			return fmt.Errorf("cannot scan negative id %d into NullID", v)
		}
		*n = SomeID(uint(v))
	case int32:
		*n = SomeID(uint(v))
	case uint64:
		*n = SomeID(uint(v))
	default:
		return fmt.Errorf("cannot scan %T into NullID", value)
	}
	return nil
}

// Value implements driver.Valuer.
func (n NullID) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return int64(n.ID), nil
}

// GormDataType tells gorm how to migrate the column.
func (NullID) GormDataType() string { return "uint" }

// MarshalJSON encodes an absent reference as null.
func (n NullID) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return jsonNull, nil
	}
	return json.Marshal(n.ID)
}

// UnmarshalJSON accepts null or a positive integer.
func (n *NullID) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		*n = NullID{}
		return nil
	}
	var id uint
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	*n = SomeID(id)
	return nil
}
