package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTenantValidate(t *testing.T) {
	valid := func() *Tenant {
		id, err := uuid.NewV7()
		require.NoError(t, err)
		return &Tenant{ID: id, Name: "acme"}
	}

	t.Run("valid tenant", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("nil id", func(t *testing.T) {
		tenant := valid()
		tenant.ID = uuid.Nil
		assert.Error(t, tenant.Validate())
	})

	t.Run("empty name", func(t *testing.T) {
		tenant := valid()
		tenant.Name = ""
		assert.Error(t, tenant.Validate())
	})

	t.Run("name too long", func(t *testing.T) {
		tenant := valid()
		tenant.Name = strings.Repeat("x", 256)
		assert.Error(t, tenant.Validate())
	})
}
