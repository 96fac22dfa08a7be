package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntityLink(t *testing.T) {
	id := uint(12)

	tests := []struct {
		name       string
		entityType string
		entityID   *uint
		want       string
	}{
		{name: "task", entityType: "task", entityID: &id, want: "/tasks/12"},
		{name: "project", entityType: "project", entityID: &id, want: "/projects/12"},
		{name: "invoice", entityType: "invoice", entityID: &id, want: "/invoices/12"},
		{name: "client", entityType: "client", entityID: &id, want: "/clients/12"},
		{name: "team member", entityType: "team_member", entityID: &id, want: "/team/12"},
		{name: "unknown entity falls back to dashboard", entityType: "webhook", entityID: &id, want: "/dashboard"},
		{name: "missing id falls back to dashboard", entityType: "task", entityID: nil, want: "/dashboard"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, entityLink(tt.entityType, tt.entityID))
		})
	}
}
