package search

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spotterhq/spotter/internal/stockd"
)

func TestAggregate_ThreeShapesNormalizeIdentically(t *testing.T) {
	// The same logical content in the three envelope shapes the backend is
	// known to emit.
	shapes := map[string]string{
		"data-wrapped": `{
			"products": {"data": [{"id":7,"name":"Laptop","sku":"LP-7"}]},
			"customers": {"data": [{"id":3,"name":"Acme"}]}
		}`,
		"bare-arrays": `{
			"products": [{"id":7,"name":"Laptop","sku":"LP-7"}],
			"customers": [{"id":3,"name":"Acme"}]
		}`,
		"results-nested": `{
			"results": {
				"products": {"data": [{"id":7,"name":"Laptop","sku":"LP-7"}]},
				"customers": {"data": [{"id":3,"name":"Acme"}]}
			}
		}`,
	}

	var reference ResultSet
	for i, name := range []string{"data-wrapped", "bare-arrays", "results-nested"} {
		rs := Aggregate(json.RawMessage(shapes[name]))
		if i == 0 {
			reference = rs
			continue
		}
		assert.Equal(t, reference, rs, "shape %s diverged", name)
	}

	products := reference.Section(stockd.KindProducts)
	require.Len(t, products.Items, 1)
	assert.Equal(t, "Laptop", products.Items[0].Title)
	assert.Equal(t, int64(7), products.Items[0].ID)
	assert.Equal(t, 1, products.TotalCount)
	assert.Equal(t, 2, reference.Total())
}

func TestAggregate_MissingKindsYieldEmptySections(t *testing.T) {
	rs := Aggregate(json.RawMessage(`{"products": {"data": [{"id":1,"name":"Widget"}]}}`))

	require.Len(t, rs.Sections, 7, "every kind must be present")
	for _, kind := range stockd.Kinds() {
		section, ok := rs.Sections[kind]
		require.True(t, ok, "section %s missing", kind)
		if kind == stockd.KindProducts {
			continue
		}
		assert.Empty(t, section.Items, "section %s should be empty", kind)
		assert.Zero(t, section.TotalCount, "section %s total should be zero", kind)
	}
}

func TestAggregate_MalformedPayloadDegradesToEmpty(t *testing.T) {
	cases := map[string]string{
		"not json":           `{nope`,
		"top-level array":    `[1,2,3]`,
		"null":               `null`,
		"string":             `"hello"`,
		"bogus section type": `{"products": 42, "sales": "yes"}`,
		"null sections":      `{"products": null}`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			rs := Aggregate(json.RawMessage(payload))
			require.Len(t, rs.Sections, 7)
			assert.Zero(t, rs.Total())
		})
	}
}

func TestAggregate_BackendTotalWinsWhenLarger(t *testing.T) {
	// per_page truncation: 2 items shipped, 40 matched overall.
	rs := Aggregate(json.RawMessage(`{
		"products": {"data": [{"id":1,"name":"A"},{"id":2,"name":"B"}], "total": 40}
	}`))
	section := rs.Section(stockd.KindProducts)
	assert.Len(t, section.Items, 2)
	assert.Equal(t, 40, section.TotalCount)
	assert.Equal(t, 40, rs.Total())
}

func TestAggregate_UnknownSectionsIgnored(t *testing.T) {
	rs := Aggregate(json.RawMessage(`{
		"gadgets": [{"id":9,"name":"Mystery"}],
		"products": [{"id":1,"name":"Widget"}]
	}`))
	require.Len(t, rs.Sections, 7)
	assert.Equal(t, 1, rs.Total())
}

func TestResultSet_RowsFlattenInKindOrder(t *testing.T) {
	rs := EmptyResultSet()
	rs.Sections[stockd.KindCustomers] = Section{
		Items:      []stockd.Hit{{Kind: stockd.KindCustomers, ID: 3, Title: "Acme"}},
		TotalCount: 1,
	}
	rs.Sections[stockd.KindProducts] = Section{
		Items: []stockd.Hit{
			{Kind: stockd.KindProducts, ID: 7, Title: "Laptop"},
			{Kind: stockd.KindProducts, ID: 8, Title: "Mouse"},
		},
		TotalCount: 2,
	}

	rows := rs.Rows()
	require.Len(t, rows, 3)
	// Products come before customers in the fixed kind order, and insertion
	// order within a section is preserved.
	assert.Equal(t, "products:7", rows[0].RowKey())
	assert.Equal(t, "products:8", rows[1].RowKey())
	assert.Equal(t, "customers:3", rows[2].RowKey())
}
