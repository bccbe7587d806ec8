package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCartRecalculate(t *testing.T) {
	cart := Cart{
		Items: []CartLine{
			{ItemID: "ITM-A", PricePerItem: 250, Quantity: 2},
			{ItemID: "ITM-B", PricePerItem: 99.5, Quantity: 4},
		},
	}

	cart.Recalculate()

	assert.Equal(t, 500.0, cart.Items[0].TotalPrice)
	assert.Equal(t, 398.0, cart.Items[1].TotalPrice)
	assert.Equal(t, 898.0, cart.TotalAmount)

	// Every mutation recomputes line totals from quantity and snapshot.
	cart.Items[0].Quantity = 5
	cart.Recalculate()
	assert.Equal(t, 1250.0, cart.Items[0].TotalPrice)
	assert.Equal(t, 1648.0, cart.TotalAmount)
}

func TestCartRecalculateEmpty(t *testing.T) {
	cart := Cart{Items: []CartLine{}, TotalAmount: 42}
	cart.Recalculate()
	assert.Equal(t, 0.0, cart.TotalAmount)
}
