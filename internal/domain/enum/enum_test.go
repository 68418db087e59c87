package enum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductType_Scan(t *testing.T) {
	var pt ProductType
	require.NoError(t, pt.Scan("ACCESSORY"))
	assert.Equal(t, ProductTypeAccessory, pt)

	require.NoError(t, pt.Scan([]byte("HANDSET")))
	assert.Equal(t, ProductTypeHandset, pt)

	assert.Error(t, pt.Scan(nil))
	assert.Error(t, pt.Scan(42))
}

func TestTransactionType_Scan(t *testing.T) {
	var tt TransactionType
	require.NoError(t, tt.Scan("PAYMENT_RECEIVED"))
	assert.Equal(t, TransactionPaymentReceived, tt)

	assert.Error(t, tt.Scan(nil))
}
