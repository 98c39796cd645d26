package production

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

var ErrInsufficientStock = errors.New("insufficient stock")

// Inventory tracks material stock in kilograms, with per-order
// reservations and reorder thresholds.
type Inventory struct {
	Stock         map[string]float64            `yaml:"stock"`
	ReorderPoints map[string]float64            `yaml:"reorder_points"`
	Reservations  map[string]map[string]float64 `yaml:"reservations"` // order id -> material -> kg
}

func NewInventory() *Inventory {
	return &Inventory{
		Stock:         make(map[string]float64),
		ReorderPoints: make(map[string]float64),
		Reservations:  make(map[string]map[string]float64),
	}
}

// LoadInventory reads a YAML inventory snapshot.
func LoadInventory(path string) (*Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading inventory: %w", err)
	}
	inv := NewInventory()
	if err := yaml.Unmarshal(data, inv); err != nil {
		return nil, fmt.Errorf("loading inventory: %w", err)
	}
	if inv.Stock == nil {
		inv.Stock = make(map[string]float64)
	}
	if inv.ReorderPoints == nil {
		inv.ReorderPoints = make(map[string]float64)
	}
	if inv.Reservations == nil {
		inv.Reservations = make(map[string]map[string]float64)
	}
	return inv, nil
}

// Save writes the inventory snapshot as YAML.
func (inv *Inventory) Save(path string) error {
	data, err := yaml.Marshal(inv)
	if err != nil {
		return fmt.Errorf("encoding inventory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("saving inventory: %w", err)
	}
	return nil
}

// Available is stock minus every live reservation for the material.
func (inv *Inventory) Available(material string) float64 {
	available := inv.Stock[material]
	for _, res := range inv.Reservations {
		available -= res[material]
	}
	return available
}

// Reserve holds quantity kg of material against an order.
func (inv *Inventory) Reserve(orderID, material string, quantity float64) error {
	if quantity <= 0 {
		return fmt.Errorf("reserve %s for %s: quantity must be positive, got %g", material, orderID, quantity)
	}
	if available := inv.Available(material); available < quantity {
		return fmt.Errorf("reserve %g kg %s for %s, %g available: %w",
			quantity, material, orderID, available, ErrInsufficientStock)
	}
	if inv.Reservations[orderID] == nil {
		inv.Reservations[orderID] = make(map[string]float64)
	}
	inv.Reservations[orderID][material] += quantity
	return nil
}

// Release drops every reservation held by an order.
func (inv *Inventory) Release(orderID string) {
	delete(inv.Reservations, orderID)
}

// Consume converts an order's reservations into stock draw-down.
func (inv *Inventory) Consume(orderID string) error {
	res, ok := inv.Reservations[orderID]
	if !ok {
		return fmt.Errorf("consume for %s: no reservations held", orderID)
	}
	for material, quantity := range res {
		inv.Stock[material] -= quantity
	}
	delete(inv.Reservations, orderID)
	return nil
}

// Add receives material into stock.
func (inv *Inventory) Add(material string, quantity float64) {
	inv.Stock[material] += quantity
}

type ReorderLine struct {
	Material     string  `json:"material" yaml:"material"`
	AvailableKg  float64 `json:"available_kg" yaml:"available_kg"`
	ReorderPoint float64 `json:"reorder_point_kg" yaml:"reorder_point_kg"`
	ShortfallKg  float64 `json:"shortfall_kg" yaml:"shortfall_kg"`
}

// ReorderReport lists every material at or under its reorder point,
// sorted by material id.
func (inv *Inventory) ReorderReport() []ReorderLine {
	var out []ReorderLine
	for material, point := range inv.ReorderPoints {
		available := inv.Available(material)
		if available <= point {
			out = append(out, ReorderLine{
				Material:     material,
				AvailableKg:  available,
				ReorderPoint: point,
				ShortfallKg:  point - available,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Material < out[j].Material })
	return out
}
