package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"

	"spendwise/internal/models"
	"spendwise/internal/services"
)

var jsonNull = []byte("null")

// subcategoryPatch tells a missing key (leave unchanged) apart from null
// (clear) in a partial update.
type subcategoryPatch struct {
	Set   bool
	Value models.NullSubcategory
}

func (p *subcategoryPatch) UnmarshalJSON(data []byte) error {
	p.Set = true
	return p.Value.UnmarshalJSON(data)
}

// fieldValue is the value of an expense field update. It accepts a string,
// a number or null. set stays false when the key is missing.
type fieldValue struct {
	value services.FieldValue
	set   bool
}

func (v *fieldValue) UnmarshalJSON(data []byte) error {
	v.set = true
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, jsonNull) {
		v.value = services.AbsentValue()
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		v.value = services.NewFieldValue(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("value must be a string, a number or null")
	}
	v.value = services.NewFieldValue(n.String())
	return nil
}
