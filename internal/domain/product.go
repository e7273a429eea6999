package domain

import (
	"bytes"
	"strconv"
)

// ProductID carries a product identifier in whatever encoding the source
// used: a bare integer or a prefixed slug such as "p-12"/"p_12". It is kept
// verbatim; comparisons go through the ident package.
type ProductID string

func (id ProductID) String() string { return string(id) }

// UnmarshalJSON accepts either a JSON number or a JSON string.
func (id *ProductID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 1 && data[0] == '"' {
		s, err := strconv.Unquote(string(data))
		if err != nil {
			return err
		}
		*id = ProductID(s)
		return nil
	}
	*id = ProductID(data)
	return nil
}

// MarshalJSON emits a number when the identifier is purely numeric so the
// persisted form round-trips the seed encoding.
func (id ProductID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return []byte(strconv.Quote(string(id))), nil
}

// Product represents a catalog item
type Product struct {
	ID          ProductID `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"` // main currency units
	Image       string    `json:"image"` // URL to product image (optional)
	Category    string    `json:"category"`
	Description string    `json:"description"`
}

// ProductQuery is the filter set for catalog listings
type ProductQuery struct {
	Q        string `json:"q" query:"q"`
	Category string `json:"category" query:"category"`
	Page     int    `json:"page" query:"page"`
	PageSize int    `json:"pageSize" query:"pageSize"`
}

// ProductPage is one page of catalog results. Total counts the filtered
// set before slicing.
type ProductPage struct {
	Items    []Product `json:"items"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"pageSize"`
}

// ProductInput is the payload for creating a product. Price is untyped on
// purpose: form clients send strings and malformed values coerce to 0.
type ProductInput struct {
	Name        string      `json:"name" mapstructure:"name"`
	Price       interface{} `json:"price" mapstructure:"price"`
	Image       string      `json:"image" mapstructure:"image"`
	Category    string      `json:"category" mapstructure:"category"`
	Description string      `json:"description" mapstructure:"description"`
}
