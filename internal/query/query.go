// Package query implements the in-memory filter and sort pipeline applied
// to product, user and order listings. Every function returns a new slice;
// the input is never reordered or mutated.
package query

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/marketway/storefront/internal/domain"
)

// Criteria is the optional filter/sort bundle parsed from a listing
// request. Zero values mean "no filter". Kind carries the category for
// products, the role for users and the status for orders; a role or status
// that does not parse into a known enum member is silently ignored.
type Criteria struct {
	Search   string
	Kind     string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Sort     string
}

// Sort keys. Unknown keys leave the order unchanged.
const (
	SortPriceAsc     = "price_asc"
	SortPriceDesc    = "price_desc"
	SortNameAsc      = "name_asc"
	SortNameDesc     = "name_desc"
	SortEmailAsc     = "email_asc"
	SortEmailDesc    = "email_desc"
	SortDateAsc      = "date_asc"
	SortDateDesc     = "date_desc"
	SortCustomerAsc  = "customer_asc"
	SortCustomerDesc = "customer_desc"
)

// Products narrows and sorts a product listing: search over name and
// description, exact category match, inclusive price bounds, then sort.
func Products(products []domain.Product, c Criteria) []domain.Product {
	out := make([]domain.Product, len(products))
	copy(out, products)

	if c.Search != "" {
		out = keepProducts(out, func(p domain.Product) bool {
			return containsFold(p.Name, c.Search) || containsFold(p.Description, c.Search)
		})
	}
	if c.Kind != "" {
		out = keepProducts(out, func(p domain.Product) bool {
			return p.Category != "" && strings.EqualFold(p.Category, c.Kind)
		})
	}
	if c.MinPrice != nil {
		out = keepProducts(out, func(p domain.Product) bool {
			return p.Price.GreaterThanOrEqual(*c.MinPrice)
		})
	}
	if c.MaxPrice != nil {
		out = keepProducts(out, func(p domain.Product) bool {
			return p.Price.LessThanOrEqual(*c.MaxPrice)
		})
	}

	switch c.Sort {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price.LessThan(out[j].Price) })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[j].Price.LessThan(out[i].Price) })
	case SortNameAsc:
		sort.SliceStable(out, func(i, j int) bool { return lessFold(out[i].Name, out[j].Name) })
	case SortNameDesc:
		sort.SliceStable(out, func(i, j int) bool { return lessFold(out[j].Name, out[i].Name) })
	}

	return out
}

// Users narrows and sorts a user listing: search over name and email, exact
// role match, then sort. An unknown role value disables the role filter.
func Users(users []domain.User, c Criteria) []domain.User {
	out := make([]domain.User, len(users))
	copy(out, users)

	if c.Search != "" {
		out = keepUsers(out, func(u domain.User) bool {
			return containsFold(u.Name, c.Search) || containsFold(u.Email, c.Search)
		})
	}
	if c.Kind != "" {
		if role, ok := domain.ParseUserRole(c.Kind); ok {
			out = keepUsers(out, func(u domain.User) bool { return u.Role == role })
		}
	}

	switch c.Sort {
	case SortNameAsc:
		sort.SliceStable(out, func(i, j int) bool { return lessFold(out[i].Name, out[j].Name) })
	case SortNameDesc:
		sort.SliceStable(out, func(i, j int) bool { return lessFold(out[j].Name, out[i].Name) })
	case SortEmailAsc:
		sort.SliceStable(out, func(i, j int) bool { return lessFold(out[i].Email, out[j].Email) })
	case SortEmailDesc:
		sort.SliceStable(out, func(i, j int) bool { return lessFold(out[j].Email, out[i].Email) })
	}

	return out
}

// Orders narrows and sorts an order listing: search over the order id and
// the customer name, exact status match, then sort. Guest orders have no
// customer name and sort lowest on the customer keys.
func Orders(orders []domain.Order, c Criteria) []domain.Order {
	out := make([]domain.Order, len(orders))
	copy(out, orders)

	if c.Search != "" {
		out = keepOrders(out, func(o domain.Order) bool {
			return containsFold(o.ID, c.Search) || (o.CustomerName != "" && containsFold(o.CustomerName, c.Search))
		})
	}
	if c.Kind != "" {
		if status, ok := domain.ParseOrderStatus(c.Kind); ok {
			out = keepOrders(out, func(o domain.Order) bool { return o.Status == status })
		}
	}

	switch c.Sort {
	case SortDateAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].OrderDate.Before(out[j].OrderDate) })
	case SortDateDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[j].OrderDate.Before(out[i].OrderDate) })
	case SortCustomerAsc:
		sort.SliceStable(out, func(i, j int) bool { return lessFold(out[i].CustomerName, out[j].CustomerName) })
	case SortCustomerDesc:
		sort.SliceStable(out, func(i, j int) bool { return lessFold(out[j].CustomerName, out[i].CustomerName) })
	}

	return out
}

func keepProducts(in []domain.Product, keep func(domain.Product) bool) []domain.Product {
	out := in[:0]
	for _, p := range in {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

func keepUsers(in []domain.User, keep func(domain.User) bool) []domain.User {
	out := in[:0]
	for _, u := range in {
		if keep(u) {
			out = append(out, u)
		}
	}
	return out
}

func keepOrders(in []domain.Order, keep func(domain.Order) bool) []domain.Order {
	out := in[:0]
	for _, o := range in {
		if keep(o) {
			out = append(out, o)
		}
	}
	return out
}

// containsFold reports whether s contains substr, case-insensitively. An
// empty s never matches a non-empty substr, so absent optional fields fall
// through to the other searchable fields of the record.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func lessFold(a, b string) bool {
	return strings.ToLower(a) < strings.ToLower(b)
}
