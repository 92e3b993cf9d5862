package models

import "time"

// Exit statuses. Only pending exits reserve stock and are subject to
// expiry-based reconciliation; the others are terminal.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// StockExit is the exit header: a provisional outbound stock movement.
type StockExit struct {
	ID               uint       `gorm:"column:id;primaryKey" json:"id"`
	Reference        string     `gorm:"column:reference;size:64" json:"reference"`
	Status           string     `gorm:"column:status;size:32;index" json:"status"`
	PendingExpiresAt *time.Time `gorm:"column:pending_expires_at;index" json:"pending_expires_at"`
	CreatedAt        time.Time  `gorm:"column:created_at" json:"created_at"`

	Items []StockExitItem `gorm:"foreignKey:ExitID" json:"items"`
}

// TableName overrides the table name.
func (StockExit) TableName() string {
	return "stock_exits"
}

// Expired reports whether the exit is eligible for reconciliation at the
// given instant: pending, with a non-null expiry in the past.
func (e StockExit) Expired(now time.Time) bool {
	if e.Status != StatusPending || e.PendingExpiresAt == nil {
		return false
	}
	return e.PendingExpiresAt.Before(now)
}

// StockExitItem is a single reserved line of an exit.
type StockExitItem struct {
	ID        uint   `gorm:"column:id;primaryKey" json:"id"`
	ExitID    uint   `gorm:"column:exit_id;index" json:"exit_id"`
	ProductID uint   `gorm:"column:product_id" json:"product_id"`
	Warehouse string `gorm:"column:warehouse;size:32" json:"warehouse"`
	Quantity  int    `gorm:"column:quantity" json:"quantity"`
}

// TableName overrides the table name.
func (StockExitItem) TableName() string {
	return "stock_exit_items"
}

// WarehouseStock is the per (product, warehouse) available-quantity counter.
type WarehouseStock struct {
	ID        uint   `gorm:"column:id;primaryKey" json:"id"`
	ProductID uint   `gorm:"column:product_id;uniqueIndex:idx_product_warehouse" json:"product_id"`
	Warehouse string `gorm:"column:warehouse;size:32;uniqueIndex:idx_product_warehouse" json:"warehouse"`
	Quantity  int    `gorm:"column:quantity" json:"quantity"`
}

// TableName overrides the table name.
func (WarehouseStock) TableName() string {
	return "warehouse_stocks"
}

// All lists every model managed by this feature, for schema migration.
func All() []any {
	return []any{&StockExit{}, &StockExitItem{}, &WarehouseStock{}}
}
