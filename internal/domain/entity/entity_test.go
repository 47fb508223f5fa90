package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/relojeria-admin/internal/domain/entity"
)

func TestNormalizeRole(t *testing.T) {
	tests := map[string]string{
		"user":      entity.RoleCustomer,
		" USER ":    entity.RoleCustomer,
		"Admin":     entity.RoleAdmin,
		"customer":  entity.RoleCustomer,
		"":          "",
		"superuser": "superuser",
	}
	for in, want := range tests {
		assert.Equal(t, want, entity.NormalizeRole(in), "entrada %q", in)
	}
}

func TestServiceRequestPatch_ClearCompletionDate(t *testing.T) {
	done := time.Date(2025, 3, 22, 16, 0, 0, 0, time.UTC)
	s := entity.ServiceRequest{CompletionDate: &done}

	p := entity.ServiceRequestPatch{ClearCompletionDate: true}
	p.Apply(&s)
	assert.Nil(t, s.CompletionDate)
	assert.Equal(t, []entity.Field{{Column: "completion_date", Value: nil}}, p.Fields())
}
