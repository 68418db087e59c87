package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// ProductType distinguishes serialised handsets from stocked accessories
type ProductType string

const (
	ProductTypeHandset   ProductType = "HANDSET"
	ProductTypeAccessory ProductType = "ACCESSORY"
)

func (t ProductType) String() string {
	return string(t)
}

// IsValid reports whether t is a known product type
func (t ProductType) IsValid() bool {
	return t == ProductTypeHandset || t == ProductTypeAccessory
}

// ParseProductType accepts either spelling case
func ParseProductType(s string) (ProductType, error) {
	t := ProductType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", fmt.Errorf("unknown product type %q", s)
	}
	return t, nil
}

func (t ProductType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *ProductType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseProductType(str)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t ProductType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *ProductType) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*t = ProductType(v)
	case []byte:
		*t = ProductType(v)
	default:
		return fmt.Errorf("cannot scan %T into ProductType", value)
	}
	return nil
}
