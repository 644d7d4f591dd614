package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductFilter_Matches(t *testing.T) {
	yes := true
	no := false
	p := &Product{SKU: "723", Slug: "hood-river", Category: "tour", Available: true}

	tests := []struct {
		name   string
		filter ProductFilter
		want   bool
	}{
		{"empty filter matches", ProductFilter{}, true},
		{"category match", ProductFilter{Category: "tour"}, true},
		{"category mismatch", ProductFilter{Category: "adventure"}, false},
		{"slug and sku", ProductFilter{Slug: "hood-river", SKU: "723"}, true},
		{"sku mismatch with matching slug", ProductFilter{Slug: "hood-river", SKU: "446"}, false},
		{"available", ProductFilter{Available: &yes}, true},
		{"unavailable", ProductFilter{Available: &no}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(p))
		})
	}
}

func TestProduct_CloneIsIndependent(t *testing.T) {
	p := &Product{SKU: "HR199", Tags: []string{"sailing"}}
	c := p.Clone()
	c.Tags[0] = "changed"
	c.PackagesSold = 5

	assert.Equal(t, "sailing", p.Tags[0])
	assert.Equal(t, int64(0), p.PackagesSold)
}

func TestDefaultCatalog_UniqueSKUs(t *testing.T) {
	seen := map[string]bool{}
	for _, p := range DefaultCatalog() {
		assert.False(t, seen[p.SKU], "duplicate sku %s", p.SKU)
		seen[p.SKU] = true
		assert.GreaterOrEqual(t, p.PackagesSold, int64(0))
	}
}
