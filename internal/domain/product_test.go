package domain

import (
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func genProduct() gopter.Gen {
	return gopter.CombineGens(
		gen.Int64Range(1000, 1005),
		gen.OneConstOf(10.0, 99.99, 123.45),
		gen.OneConstOf("Acme", "Hooli", "Wonderful Widgets"),
		gen.OneConstOf("Anvil", "Nucleus", "Widget 3000"),
		gen.OneConstOf(StatusActive, StatusHidden, StatusDeleted),
	).Map(func(values []interface{}) Product {
		return Product{
			ProductID:   values[0].(int64),
			Price:       values[1].(float64),
			BrandName:   values[2].(string),
			ProductName: values[3].(string),
			Status:      values[4].(ProductStatus),
		}
	})
}

func TestProperty_ProductsWithEqualFieldsCollide(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("separately built products with equal fields are one map key", prop.ForAll(
		func(p Product) bool {
			copied := Product{
				ProductID:   p.ProductID,
				Price:       p.Price,
				BrandName:   p.BrandName,
				ProductName: p.ProductName,
				Status:      p.Status,
			}

			set := map[Product]struct{}{p: {}, copied: {}}
			return p == copied && len(set) == 1
		},
		genProduct(),
	))

	properties.Property("products differing in one field are distinct", prop.ForAll(
		func(p Product) bool {
			other := p
			other.Price += 1
			return p != other
		},
		genProduct(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProductString(t *testing.T) {
	p := Product{
		ProductID:   1001,
		Price:       123.45,
		BrandName:   "Wonderful Widgets",
		ProductName: "Most Wonderful Widget",
		Status:      StatusHidden,
	}

	assert.Equal(t,
		"Id: 1001, BrandName: Wonderful Widgets, ProductName: Most Wonderful Widget, Price: 123.45, Status: Hidden",
		p.String())
}

func TestProductString_WholePriceKeepsDecimal(t *testing.T) {
	tests := []struct {
		price float64
		want  string
	}{
		{10, "10.0"},
		{0, "0.0"},
		{123.45, "123.45"},
		{0.5, "0.5"},
		{1234567, "1234567.0"},
	}

	for _, tt := range tests {
		p := Product{ProductID: 2001, Price: tt.price, BrandName: "Acme", ProductName: "Giant Anvil"}
		assert.Equal(t,
			"Id: 2001, BrandName: Acme, ProductName: Giant Anvil, Price: "+tt.want+", Status: Active",
			p.String())
	}
}

func TestProductField(t *testing.T) {
	p := Product{ProductID: 2004, Price: 10, BrandName: "Hooli", ProductName: "Nucleus", Status: StatusDeleted}

	tests := []struct {
		key  string
		want any
	}{
		{FieldProductID, int64(2004)},
		{FieldPrice, 10.0},
		{FieldBrandName, "Hooli"},
		{FieldProductName, "Nucleus"},
		{FieldStatus, StatusDeleted},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := p.Field(tt.key)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := p.Field("color")
	assert.False(t, ok)
}

func TestParseProductStatus(t *testing.T) {
	tests := []struct {
		name string
		want ProductStatus
	}{
		{"active", StatusActive},
		{"ACTIVE", StatusActive},
		{"Hidden", StatusHidden},
		{"deleted", StatusDeleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseProductStatus(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseProductStatus("archived")
	assert.True(t, errors.Is(err, ErrUnknownStatus))
}

func TestFilterSpecMatches(t *testing.T) {
	p := Product{ProductID: 1, Price: 5, BrandName: "Acme", ProductName: "Anvil", Status: StatusActive}

	assert.True(t, FilterSpec{}.Matches(p))
	assert.True(t, FilterSpec{FieldStatus: StatusActive}.Matches(p))
	assert.True(t, FilterSpec{FieldStatus: StatusActive, FieldBrandName: "Acme"}.Matches(p))
	assert.False(t, FilterSpec{FieldStatus: StatusHidden}.Matches(p))
	assert.False(t, FilterSpec{FieldStatus: StatusActive, FieldBrandName: "Hooli"}.Matches(p))
	assert.False(t, FilterSpec{"color": "red"}.Matches(p))
}
