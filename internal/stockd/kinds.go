package stockd

// Kind identifies one of the fixed entity categories the stockd search
// endpoint can return. The wire names double as URL path segments.
type Kind string

const (
	KindProducts  Kind = "products"
	KindSales     Kind = "sales"
	KindPurchases Kind = "purchases"
	KindMovements Kind = "movements"
	KindCustomers Kind = "customers"
	KindSuppliers Kind = "suppliers"
	KindReasons   Kind = "reasons"
)

// Kinds returns all entity kinds in display order. Consumers rely on this
// order being stable across calls.
func Kinds() []Kind {
	return []Kind{
		KindProducts,
		KindSales,
		KindPurchases,
		KindMovements,
		KindCustomers,
		KindSuppliers,
		KindReasons,
	}
}

// Valid reports whether k names a known entity kind.
func (k Kind) Valid() bool {
	switch k {
	case KindProducts, KindSales, KindPurchases, KindMovements,
		KindCustomers, KindSuppliers, KindReasons:
		return true
	}
	return false
}

// Label returns the human-readable section heading for the kind.
func (k Kind) Label() string {
	switch k {
	case KindProducts:
		return "Products"
	case KindSales:
		return "Sales"
	case KindPurchases:
		return "Purchases"
	case KindMovements:
		return "Stock Movements"
	case KindCustomers:
		return "Customers"
	case KindSuppliers:
		return "Suppliers"
	case KindReasons:
		return "Adjustment Reasons"
	default:
		return string(k)
	}
}
