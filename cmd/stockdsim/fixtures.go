package main

import (
	"fmt"
	"strings"

	"github.com/spotterhq/spotter/internal/stockd"
)

// dataset is the in-memory inventory the simulator searches over.
type dataset struct {
	products  []stockd.Product
	sales     []stockd.Sale
	purchases []stockd.Purchase
	movements []stockd.Movement
	customers []stockd.Customer
	suppliers []stockd.Supplier
	reasons   []stockd.Reason
}

// seedDataset builds a fixed inventory with enough variety to exercise every
// section and a product list long enough to trip windowed rendering.
func seedDataset() *dataset {
	ds := &dataset{
		sales: []stockd.Sale{
			{ID: 1, Reference: "SO-1001", CustomerName: "Acme Retail", Total: 1249.50, Status: "paid", CreatedAt: "2026-08-20 10:12:44"},
			{ID: 2, Reference: "SO-1002", CustomerName: "Blue Harbor Foods", Total: 310.00, Status: "pending", CreatedAt: "2026-08-21 14:03:10"},
			{ID: 3, Reference: "SO-1003", CustomerName: "Cobalt Labs", Total: 88.75, Status: "paid", CreatedAt: "2026-08-22 09:41:02"},
			{ID: 4, Reference: "SO-1004", CustomerName: "Acme Retail", Total: 2210.00, Status: "cancelled", CreatedAt: "2026-08-24 16:55:31"},
		},
		purchases: []stockd.Purchase{
			{ID: 1, Reference: "PO-2001", SupplierName: "Nordic Components", Total: 5400.00, Status: "received", CreatedAt: "2026-08-15 08:30:00"},
			{ID: 2, Reference: "PO-2002", SupplierName: "Delta Packaging", Total: 830.25, Status: "ordered", CreatedAt: "2026-08-23 11:20:45"},
			{ID: 3, Reference: "PO-2003", SupplierName: "Nordic Components", Total: 1275.00, Status: "draft", CreatedAt: "2026-08-26 15:02:12"},
		},
		movements: []stockd.Movement{
			{ID: 1, ProductName: "Laptop Stand Alu", Type: "in", Quantity: 40, Note: "PO-2001 receipt", CreatedAt: "2026-08-15 09:00:00"},
			{ID: 2, ProductName: "USB-C Cable 2m", Type: "out", Quantity: 12, Note: "SO-1001 shipment", CreatedAt: "2026-08-20 11:30:00"},
			{ID: 3, ProductName: "Laptop Stand Alu", Type: "adjust", Quantity: -2, Note: "damaged in transit", CreatedAt: "2026-08-25 13:15:00"},
		},
		customers: []stockd.Customer{
			{ID: 1, Name: "Acme Retail", Email: "orders@acmeretail.example", Phone: "+1 555 0101", City: "Portland"},
			{ID: 2, Name: "Blue Harbor Foods", Email: "purchasing@blueharbor.example", Phone: "+1 555 0102", City: "Seattle"},
			{ID: 3, Name: "Cobalt Labs", Email: "lab@cobalt.example", Phone: "+1 555 0103", City: "Austin"},
		},
		suppliers: []stockd.Supplier{
			{ID: 1, Name: "Nordic Components", Email: "sales@nordic.example", Phone: "+46 8 555 01", City: "Stockholm"},
			{ID: 2, Name: "Delta Packaging", Email: "hello@deltapack.example", Phone: "+1 555 0201", City: "Denver"},
		},
		reasons: []stockd.Reason{
			{ID: 1, Name: "Damaged", Detail: "Item damaged in storage or transit"},
			{ID: 2, Name: "Inventory count", Detail: "Correction after physical count"},
			{ID: 3, Name: "Expired", Detail: "Past shelf life"},
		},
	}

	names := []string{
		"Laptop Stand Alu", "Laptop Sleeve 13\"", "Laptop Sleeve 15\"",
		"USB-C Cable 2m", "USB-C Hub 7-port", "Wireless Mouse",
		"Mechanical Keyboard", "Monitor Arm Single", "Monitor Arm Dual",
		"Desk Mat XL", "Webcam 1080p", "Headset Stereo",
	}
	units := []string{"pcs", "pcs", "box"}
	for i := 0; i < 120; i++ {
		name := names[i%len(names)]
		if i >= len(names) {
			name = fmt.Sprintf("%s v%d", name, i/len(names)+1)
		}
		ds.products = append(ds.products, stockd.Product{
			ID:        int64(i + 1),
			Name:      name,
			SKU:       fmt.Sprintf("SKU-%04d", i+1),
			Barcode:   fmt.Sprintf("59012345%05d", i+1),
			UnitPrice: float64(5+i%40) + 0.99,
			Quantity:  (i * 7) % 250,
			Unit:      units[i%len(units)],
		})
	}
	return ds
}

// section is one kind's matches plus the pre-truncation total.
type section struct {
	items []any
	total int
}

// search matches the query case-insensitively against each kind's searchable
// text and caps every section at perPage items.
func (ds *dataset) search(q string, perPage int) map[stockd.Kind]section {
	needle := strings.ToLower(strings.TrimSpace(q))
	out := make(map[stockd.Kind]section, len(stockd.Kinds()))

	collect := func(kind stockd.Kind, n int, text func(i int) string, item func(i int) any) {
		var s section
		for i := 0; i < n; i++ {
			if needle != "" && !strings.Contains(strings.ToLower(text(i)), needle) {
				continue
			}
			s.total++
			if len(s.items) < perPage {
				s.items = append(s.items, item(i))
			}
		}
		out[kind] = s
	}

	collect(stockd.KindProducts, len(ds.products),
		func(i int) string { p := ds.products[i]; return p.Name + " " + p.SKU + " " + p.Barcode },
		func(i int) any { return ds.products[i] })
	collect(stockd.KindSales, len(ds.sales),
		func(i int) string { s := ds.sales[i]; return s.Reference + " " + s.CustomerName + " " + s.Status },
		func(i int) any { return ds.sales[i] })
	collect(stockd.KindPurchases, len(ds.purchases),
		func(i int) string { p := ds.purchases[i]; return p.Reference + " " + p.SupplierName + " " + p.Status },
		func(i int) any { return ds.purchases[i] })
	collect(stockd.KindMovements, len(ds.movements),
		func(i int) string { m := ds.movements[i]; return m.ProductName + " " + m.Type + " " + m.Note },
		func(i int) any { return ds.movements[i] })
	collect(stockd.KindCustomers, len(ds.customers),
		func(i int) string { c := ds.customers[i]; return c.Name + " " + c.Email + " " + c.City },
		func(i int) any { return ds.customers[i] })
	collect(stockd.KindSuppliers, len(ds.suppliers),
		func(i int) string { s := ds.suppliers[i]; return s.Name + " " + s.Email + " " + s.City },
		func(i int) any { return ds.suppliers[i] })
	collect(stockd.KindReasons, len(ds.reasons),
		func(i int) string { r := ds.reasons[i]; return r.Name + " " + r.Detail },
		func(i int) any { return ds.reasons[i] })

	return out
}

// entity returns the raw entity for a kind and id.
func (ds *dataset) entity(kind stockd.Kind, id int64) (any, bool) {
	switch kind {
	case stockd.KindProducts:
		for _, p := range ds.products {
			if p.ID == id {
				return p, true
			}
		}
	case stockd.KindSales:
		for _, s := range ds.sales {
			if s.ID == id {
				return s, true
			}
		}
	case stockd.KindPurchases:
		for _, p := range ds.purchases {
			if p.ID == id {
				return p, true
			}
		}
	case stockd.KindMovements:
		for _, m := range ds.movements {
			if m.ID == id {
				return m, true
			}
		}
	case stockd.KindCustomers:
		for _, c := range ds.customers {
			if c.ID == id {
				return c, true
			}
		}
	case stockd.KindSuppliers:
		for _, s := range ds.suppliers {
			if s.ID == id {
				return s, true
			}
		}
	case stockd.KindReasons:
		for _, r := range ds.reasons {
			if r.ID == id {
				return r, true
			}
		}
	}
	return nil, false
}
