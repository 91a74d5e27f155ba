package sim

// StockItem is one recovered component sitting in the output warehouse.
type StockItem struct {
	Component string
	OrderID   string
	Revenue   float64
	Time      float64
}

// Warehouse is the passive sink at the end of the shop: recovered
// components and completed orders are appended, never dispatched.
type Warehouse struct {
	Stock     []StockItem
	Completed []*Order
}

// NewWarehouse creates an empty warehouse.
func NewWarehouse() *Warehouse {
	return &Warehouse{}
}

// AddItem records a recovered component.
func (w *Warehouse) AddItem(component, orderID string, revenue, now float64) {
	w.Stock = append(w.Stock, StockItem{
		Component: component,
		OrderID:   orderID,
		Revenue:   revenue,
		Time:      now,
	})
}

// AddOrder records a completed order.
func (w *Warehouse) AddOrder(o *Order) {
	w.Completed = append(w.Completed, o)
}

// TotalRevenue returns the summed revenue of all recovered components.
func (w *Warehouse) TotalRevenue() float64 {
	total := 0.0
	for _, item := range w.Stock {
		total += item.Revenue
	}
	return total
}
