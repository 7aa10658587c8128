package datastorage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRent_MinimumBalance(t *testing.T) {
	rent := DefaultRent

	assert.Equal(t, uint64(890880), rent.MinimumBalance(0))
	assert.Equal(t, uint64((128+HeaderSize)*3480*2), rent.MinimumBalance(HeaderSize))
	assert.Equal(t, rent.MinimumBalance(uint64(AccountSize(3))), rent.CreateCost(3))
	assert.Equal(t, uint64(1_426_800), rent.CreateCost(3))
}

func TestRent_IsExempt(t *testing.T) {
	rent := DefaultRent
	min := rent.MinimumBalance(100)

	assert.True(t, rent.IsExempt(min, 100))
	assert.True(t, rent.IsExempt(min+1, 100))
	assert.False(t, rent.IsExempt(min-1, 100))
}

func TestRent_EditRentDelta(t *testing.T) {
	rent := DefaultRent

	assert.Equal(t, uint64(0), rent.EditRentDelta(10, 10))
	assert.Equal(t, uint64(3480*5*2), rent.EditRentDelta(10, 5))
	assert.Equal(t, uint64(3480*10*2), rent.EditRentDelta(10, 20))

	// grow then shrink by the same amount nets to zero
	assert.Equal(t, rent.EditRentDelta(0, 1000), rent.EditRentDelta(1000, 0))
}

func TestRent_Decode(t *testing.T) {
	data := DefaultRent.marshal()
	require.Len(t, data, SysvarRentStructLen)

	rent, err := DecodeRent(data)
	require.NoError(t, err)
	assert.Equal(t, DefaultRent, *rent)

	_, err = DecodeRent(data[:SysvarRentStructLen-1])
	assert.ErrorIs(t, err, ErrLayout)
}
