package dataprocessing

import (
	"fmt"
	"sort"
	"strconv"

	"salesdash/pkg/contracts/domain"
)

// Summarize computes the dashboard's header KPIs over a (typically filtered)
// set of transactions. It is a pure function and is safe on empty input:
// every metric is 0 and no ratio divides by zero.
func Summarize(transactions []domain.Transaction) domain.KPISummary {
	var summary domain.KPISummary

	orders := make(map[string]struct{})
	customers := make(map[int64]struct{})

	for _, t := range transactions {
		summary.TotalSales += t.Sales
		summary.TotalProfit += t.Profit
		orders[t.OrderID] = struct{}{}
		customers[t.CustomerID] = struct{}{}
	}

	summary.TotalOrders = len(orders)
	summary.TotalCustomers = len(customers)

	if n := len(transactions); n > 0 {
		summary.AvgOrderValue = summary.TotalSales / float64(n)
	}
	if summary.TotalSales != 0 {
		summary.ProfitMarginPct = summary.TotalProfit / summary.TotalSales * 100
	}

	return summary
}

// GroupBreakdown aggregates transactions by one of the supported grouping
// dimensions: summed sales, profit, and quantity, distinct order count, and
// a derived profit margin percentage per group. Rows are ordered by
// descending sales; ties keep their first-seen relative order.
func GroupBreakdown(transactions []domain.Transaction, dim domain.Dimension) ([]domain.GroupRow, error) {
	keyFn, err := groupKeyFunc(dim)
	if err != nil {
		return nil, err
	}

	type groupAcc struct {
		row    domain.GroupRow
		orders map[string]struct{}
	}

	groups := make(map[string]*groupAcc)
	order := make([]string, 0)

	for _, t := range transactions {
		key := keyFn(t)
		acc, ok := groups[key]
		if !ok {
			acc = &groupAcc{
				row:    domain.GroupRow{Key: key},
				orders: make(map[string]struct{}),
			}
			groups[key] = acc
			order = append(order, key)
		}
		acc.row.Sales += t.Sales
		acc.row.Profit += t.Profit
		acc.row.Quantity += t.QuantityOrZero()
		acc.orders[t.OrderID] = struct{}{}
	}

	rows := make([]domain.GroupRow, 0, len(groups))
	for _, key := range order {
		acc := groups[key]
		acc.row.Orders = len(acc.orders)
		if acc.row.Sales != 0 {
			acc.row.ProfitMarginPct = acc.row.Profit / acc.row.Sales * 100
		}
		rows = append(rows, acc.row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Sales > rows[j].Sales
	})

	return rows, nil
}

// groupKeyFunc maps a dimension to its key extractor. The dimension set is
// closed; anything else is a caller error.
func groupKeyFunc(dim domain.Dimension) (func(domain.Transaction) string, error) {
	switch dim {
	case domain.DimensionProduct:
		return func(t domain.Transaction) string { return t.ProductName }, nil
	case domain.DimensionSubCategory:
		return func(t domain.Transaction) string { return t.SubCategory }, nil
	case domain.DimensionRegion:
		return func(t domain.Transaction) string { return t.Region }, nil
	case domain.DimensionSegment:
		return func(t domain.Transaction) string { return t.Segment }, nil
	case domain.DimensionCustomer:
		return func(t domain.Transaction) string {
			return strconv.FormatInt(t.CustomerID, 10)
		}, nil
	}
	return nil, fmt.Errorf("unsupported grouping dimension: %q", dim)
}
