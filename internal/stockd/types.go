package stockd

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const stockdTimestampLayout = "2006-01-02 15:04:05"

// Product mirrors a product entity in transport-friendly form.
type Product struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	SKU       string  `json:"sku"`
	Barcode   string  `json:"barcode"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	Unit      string  `json:"unit"`
}

// Sale mirrors a sales order entity.
type Sale struct {
	ID           int64   `json:"id"`
	Reference    string  `json:"reference"`
	CustomerName string  `json:"customer_name"`
	Total        float64 `json:"total"`
	Status       string  `json:"status"`
	CreatedAt    string  `json:"created_at"`
}

// Purchase mirrors a purchase order entity.
type Purchase struct {
	ID           int64   `json:"id"`
	Reference    string  `json:"reference"`
	SupplierName string  `json:"supplier_name"`
	Total        float64 `json:"total"`
	Status       string  `json:"status"`
	CreatedAt    string  `json:"created_at"`
}

// Movement mirrors a stock movement entity.
type Movement struct {
	ID          int64  `json:"id"`
	ProductName string `json:"product_name"`
	Type        string `json:"movement_type"`
	Quantity    int    `json:"quantity"`
	Note        string `json:"note"`
	CreatedAt   string `json:"created_at"`
}

// Customer mirrors a customer entity.
type Customer struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	City  string `json:"city"`
}

// Supplier mirrors a supplier entity.
type Supplier struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	City  string `json:"city"`
}

// Reason mirrors a stock adjustment reason entity.
type Reason struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Detail string `json:"detail"`
}

// Hit is the uniform row shape the search console renders regardless of
// which entity kind produced it.
type Hit struct {
	Kind   Kind
	ID     int64
	Title  string
	Detail string
}

// RowKey returns the stable "{section}:{id}" identity for the hit. It stays
// valid even when the row itself is not currently rendered.
func (h Hit) RowKey() string {
	return fmt.Sprintf("%s:%d", h.Kind, h.ID)
}

// DecodeHits converts raw backend entities of a single kind into uniform
// hits. Items that fail to decode are skipped rather than failing the whole
// section; a backend quirk must never take down the search view.
func DecodeHits(kind Kind, items []json.RawMessage) []Hit {
	hits := make([]Hit, 0, len(items))
	for _, raw := range items {
		hit, ok := decodeHit(kind, raw)
		if !ok {
			continue
		}
		hits = append(hits, hit)
	}
	return hits
}

func decodeHit(kind Kind, raw json.RawMessage) (Hit, bool) {
	switch kind {
	case KindProducts:
		var p Product
		if err := json.Unmarshal(raw, &p); err != nil || p.ID == 0 {
			return Hit{}, false
		}
		detail := p.SKU
		if p.Quantity != 0 || p.Unit != "" {
			detail = strings.TrimSpace(fmt.Sprintf("%s  %d %s", p.SKU, p.Quantity, p.Unit))
		}
		return Hit{Kind: kind, ID: p.ID, Title: p.Name, Detail: detail}, true
	case KindSales:
		var s Sale
		if err := json.Unmarshal(raw, &s); err != nil || s.ID == 0 {
			return Hit{}, false
		}
		return Hit{Kind: kind, ID: s.ID, Title: s.Reference, Detail: joinDetail(s.CustomerName, s.Status)}, true
	case KindPurchases:
		var p Purchase
		if err := json.Unmarshal(raw, &p); err != nil || p.ID == 0 {
			return Hit{}, false
		}
		return Hit{Kind: kind, ID: p.ID, Title: p.Reference, Detail: joinDetail(p.SupplierName, p.Status)}, true
	case KindMovements:
		var m Movement
		if err := json.Unmarshal(raw, &m); err != nil || m.ID == 0 {
			return Hit{}, false
		}
		return Hit{Kind: kind, ID: m.ID, Title: m.ProductName, Detail: joinDetail(m.Type, m.Note)}, true
	case KindCustomers:
		var c Customer
		if err := json.Unmarshal(raw, &c); err != nil || c.ID == 0 {
			return Hit{}, false
		}
		return Hit{Kind: kind, ID: c.ID, Title: c.Name, Detail: joinDetail(c.Email, c.City)}, true
	case KindSuppliers:
		var s Supplier
		if err := json.Unmarshal(raw, &s); err != nil || s.ID == 0 {
			return Hit{}, false
		}
		return Hit{Kind: kind, ID: s.ID, Title: s.Name, Detail: joinDetail(s.Email, s.City)}, true
	case KindReasons:
		var r Reason
		if err := json.Unmarshal(raw, &r); err != nil || r.ID == 0 {
			return Hit{}, false
		}
		return Hit{Kind: kind, ID: r.ID, Title: r.Name, Detail: r.Detail}, true
	default:
		return Hit{}, false
	}
}

func joinDetail(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			kept = append(kept, trimmed)
		}
	}
	return strings.Join(kept, " · ")
}

// ParseTime parses the timestamp formats stockd emits, returning the zero
// time when the value is empty or unrecognized.
func ParseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	if t, err := time.ParseInLocation(stockdTimestampLayout, value, time.Local); err == nil {
		return t
	}
	return time.Time{}
}
