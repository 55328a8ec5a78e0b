package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowmesh/flowmesh/internal/pkg/validator"
)

type testRecord struct {
	Name   string `json:"name" validate:"required"`
	Status string `json:"status" validate:"omitempty,oneof=READY DELETING"`
}

func TestValidator(t *testing.T) {
	t.Parallel()

	v := validator.New()
	ctx := t.Context()

	require.NoError(t, v.Validate(ctx, testRecord{Name: "d1"}))
	require.NoError(t, v.Validate(ctx, testRecord{Name: "d1", Status: "READY"}))

	err := v.Validate(ctx, testRecord{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")

	err = v.Validate(ctx, testRecord{Name: "d1", Status: "UNKNOWN"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be one of")
}
