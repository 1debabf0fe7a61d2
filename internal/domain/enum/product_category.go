package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ProductCategory represents the pricing category of a product
type ProductCategory int

const (
	ProductCategoryFood    ProductCategory = 0
	ProductCategoryNonFood ProductCategory = 1
)

var productCategoryNames = [...]string{"FOOD", "NON_FOOD"}

func (c ProductCategory) String() string {
	if !c.IsValid() {
		return fmt.Sprintf("ProductCategory(%d)", int(c))
	}
	return productCategoryNames[c]
}

// DisplayName returns the label used on reports
func (c ProductCategory) DisplayName() string {
	switch c {
	case ProductCategoryFood:
		return "Food products"
	case ProductCategoryNonFood:
		return "Non-Food products"
	}
	return c.String()
}

// IsValid reports whether c is one of the declared categories
func (c ProductCategory) IsValid() bool {
	return c >= ProductCategoryFood && int(c) < len(productCategoryNames)
}

// ParseProductCategory accepts the names returned by String
func ParseProductCategory(s string) (ProductCategory, error) {
	for i, name := range productCategoryNames {
		if name == s {
			return ProductCategory(i), nil
		}
	}
	return 0, fmt.Errorf("unknown product category %q", s)
}

func (c ProductCategory) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *ProductCategory) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*c = ProductCategory(i)
		return nil
	}
	parsed, err := ParseProductCategory(str)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c ProductCategory) Value() (driver.Value, error) {
	return int64(c), nil
}

func (c *ProductCategory) Scan(value interface{}) error {
	if value == nil {
		*c = ProductCategoryFood
		return nil
	}
	switch v := value.(type) {
	case int64:
		*c = ProductCategory(v)
	case int32:
		*c = ProductCategory(v)
	case int:
		*c = ProductCategory(v)
	default:
		return fmt.Errorf("cannot scan %T into ProductCategory", value)
	}
	return nil
}
