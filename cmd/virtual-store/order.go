package main

import "math/rand/v2"

const (
	minOrderID = 1000
	maxOrderID = 9999
)

// Randomizer is the random source behind order ids and the synthetic CPU gauge.
type Randomizer interface {
	IntN(n int) int
	Float64() float64
}

// globalRand uses the math/rand/v2 top-level functions, which are safe for
// concurrent use.
type globalRand struct{}

func (globalRand) IntN(n int) int   { return rand.IntN(n) }
func (globalRand) Float64() float64 { return rand.Float64() }

// Order is returned to the buyer and never stored.
type Order struct {
	OrderID int     `json:"order_id"`
	Product Product `json:"product"`
}

func newOrder(rnd Randomizer, p Product) Order {
	return Order{
		OrderID: minOrderID + rnd.IntN(maxOrderID-minOrderID+1),
		Product: p,
	}
}
