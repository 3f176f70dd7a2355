package models

import "fmt"

type InventoryItem struct {
	ID           string `json:"id,omitempty"`
	Name         string `json:"name"`
	Category     string `json:"category,omitempty"`
	Unit         string `json:"unit,omitempty"`
	CurrentStock int    `json:"currentStock"`
	MinStock     int    `json:"minStock,omitempty"`
	CreatedAt    string `json:"createdAt,omitempty"`
	UpdatedAt    string `json:"updatedAt,omitempty"`
}

// ApplyWithdrawal decrements stock by quantity. Stock never goes below
// zero: an over-withdrawal is rejected with no mutation.
func (i *InventoryItem) ApplyWithdrawal(quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}
	if quantity > i.CurrentStock {
		return fmt.Errorf("insufficient stock: have %d, requested %d", i.CurrentStock, quantity)
	}
	i.CurrentStock -= quantity
	return nil
}

// LowStock reports whether the item fell to or below its minimum level.
// Items without a configured minimum use the given fallback threshold.
func (i *InventoryItem) LowStock(fallbackThreshold int) bool {
	threshold := i.MinStock
	if threshold <= 0 {
		threshold = fallbackThreshold
	}
	return i.CurrentStock <= threshold
}

type Withdrawal struct {
	ID              string `json:"id,omitempty"`
	ItemID          string `json:"itemId"`
	ItemName        string `json:"itemName"`
	Quantity        int    `json:"quantity"`
	Purpose         string `json:"purpose,omitempty"`
	WithdrawnBy     string `json:"withdrawnBy"`
	WithdrawnByName string `json:"withdrawnByName"`
	StockAfter      int    `json:"stockAfter"`
	CreatedAt       string `json:"createdAt,omitempty"`
}
