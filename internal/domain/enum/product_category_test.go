package enum

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductCategory_JSON(t *testing.T) {
	data, err := json.Marshal(ProductCategoryNonFood)
	require.NoError(t, err)
	assert.Equal(t, `"NON_FOOD"`, string(data))

	var c ProductCategory
	require.NoError(t, json.Unmarshal([]byte(`"FOOD"`), &c))
	assert.Equal(t, ProductCategoryFood, c)

	require.NoError(t, json.Unmarshal([]byte(`1`), &c))
	assert.Equal(t, ProductCategoryNonFood, c)

	assert.Error(t, json.Unmarshal([]byte(`"DRINK"`), &c))
}

func TestProductCategory_IsValid(t *testing.T) {
	assert.True(t, ProductCategoryFood.IsValid())
	assert.True(t, ProductCategoryNonFood.IsValid())
	assert.False(t, ProductCategory(7).IsValid())
	assert.False(t, ProductCategory(-1).IsValid())
	assert.Equal(t, "Food products", ProductCategoryFood.DisplayName())
}

func TestSaleState_String(t *testing.T) {
	assert.Equal(t, "VALIDATING_CASHIER", SaleStateValidatingCashier.String())
	assert.Equal(t, "ISSUED", SaleStateIssued.String())
	assert.True(t, SaleStateFailed.IsTerminal())
	assert.False(t, SaleStateCommitting.IsTerminal())
}
