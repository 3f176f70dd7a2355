package models

import "testing"

func TestApplyWithdrawal(t *testing.T) {
	tests := []struct {
		name      string
		stock     int
		quantity  int
		wantErr   bool
		wantStock int
	}{
		{"exact stock", 5, 5, false, 0},
		{"partial", 10, 3, false, 7},
		{"single unit", 1, 1, false, 0},
		{"over stock", 5, 6, true, 5},
		{"zero quantity", 5, 0, true, 5},
		{"negative quantity", 5, -2, true, 5},
		{"empty stock", 0, 1, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := InventoryItem{Name: "gloves", CurrentStock: tt.stock}
			err := item.ApplyWithdrawal(tt.quantity)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ApplyWithdrawal(%d) error = %v, wantErr %v", tt.quantity, err, tt.wantErr)
			}
			if item.CurrentStock != tt.wantStock {
				t.Errorf("stock after withdrawal = %d, want %d", item.CurrentStock, tt.wantStock)
			}
			if item.CurrentStock < 0 {
				t.Errorf("stock went negative: %d", item.CurrentStock)
			}
		})
	}
}

func TestLowStock(t *testing.T) {
	tests := []struct {
		name     string
		item     InventoryItem
		fallback int
		expected bool
	}{
		{"below own min", InventoryItem{CurrentStock: 2, MinStock: 3}, 5, true},
		{"at own min", InventoryItem{CurrentStock: 3, MinStock: 3}, 5, true},
		{"above own min", InventoryItem{CurrentStock: 4, MinStock: 3}, 5, false},
		{"no min, below fallback", InventoryItem{CurrentStock: 4}, 5, true},
		{"no min, above fallback", InventoryItem{CurrentStock: 6}, 5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.item.LowStock(tt.fallback); got != tt.expected {
				t.Errorf("LowStock(%d) = %v, want %v", tt.fallback, got, tt.expected)
			}
		})
	}
}
