package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/managio-dev/managio/internal/models"
)

func TestInvoiceTotal(t *testing.T) {
	tests := []struct {
		name  string
		items []models.InvoiceItem
		want  int64
	}{
		{name: "no items", items: nil, want: 0},
		{
			name: "single item",
			items: []models.InvoiceItem{
				{Quantity: 3, UnitPriceCents: 2500},
			},
			want: 7500,
		},
		{
			name: "multiple items",
			items: []models.InvoiceItem{
				{Quantity: 10, UnitPriceCents: 15000},
				{Quantity: 1, UnitPriceCents: 499},
			},
			want: 150499,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, invoiceTotal(tt.items))
		})
	}
}

func TestInvoiceSequence(t *testing.T) {
	tests := []struct {
		name   string
		number string
		want   int
	}{
		{name: "first of the year", number: "INV-3-2026-0001", want: 1},
		{name: "later sequence", number: "INV-3-2026-0112", want: 112},
		{name: "past the padding", number: "INV-3-2026-10234", want: 10234},
		{name: "no separator", number: "garbage", want: 0},
		{name: "non-numeric suffix", number: "INV-3-2026-abcd", want: 0},
		{name: "empty", number: "", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, invoiceSequence(tt.number))
		})
	}
}

func TestTransitionGuard(t *testing.T) {
	tests := []struct {
		name    string
		current string
		target  string
		wantMsg string
	}{
		{name: "draft can be sent", current: "draft", target: "sent"},
		{name: "overdue can be re-sent", current: "overdue", target: "sent"},
		{name: "paid cannot be sent", current: "paid", target: "sent", wantMsg: "Only draft or overdue invoices can be sent"},
		{name: "sent cannot be re-sent", current: "sent", target: "sent", wantMsg: "Only draft or overdue invoices can be sent"},
		{name: "sent can be paid", current: "sent", target: "paid"},
		{name: "overdue can be paid", current: "overdue", target: "paid"},
		{name: "draft cannot be paid", current: "draft", target: "paid", wantMsg: "Only sent or overdue invoices can be paid"},
		{name: "paid cannot be re-paid", current: "paid", target: "paid", wantMsg: "Only sent or overdue invoices can be paid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMsg, transitionGuard(tt.current, tt.target))
		})
	}
}
