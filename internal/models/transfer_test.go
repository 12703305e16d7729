package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransferStatus(t *testing.T) {
	assert.Equal(t, "PENDING", TransferStatusPending.String())
	assert.Equal(t, "APPROVED", TransferStatusApproved.String())
	assert.Equal(t, "REJECTED", TransferStatusRejected.String())

	assert.False(t, TransferStatusPending.Terminal())
	assert.True(t, TransferStatusApproved.Terminal())
	assert.True(t, TransferStatusRejected.Terminal())
}

func TestTransferType(t *testing.T) {
	assert.Equal(t, "SEND", TransferTypeSend.String())
	assert.Equal(t, "REQUEST", TransferTypeRequest.String())

	assert.True(t, TransferTypeSend.Valid())
	assert.True(t, TransferTypeRequest.Valid())
	assert.False(t, TransferType(0).Valid())
	assert.False(t, TransferType(9).Valid())
}

func TestTransferJSONRendering(t *testing.T) {
	transfer := Transfer{
		ID:          7,
		Type:        TransferTypeSend,
		Status:      TransferStatusPending,
		AccountFrom: 1,
		AccountTo:   2,
		Amount:      decimal.RequireFromString("30.00"),
	}

	data, err := json.Marshal(transfer)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	// Enums render as words, not storage codes.
	assert.Equal(t, "SEND", decoded["type"])
	assert.Equal(t, "PENDING", decoded["status"])
	assert.Equal(t, "30", decoded["amount"])
}

func TestTransferStatusScan(t *testing.T) {
	var status TransferStatus
	require.NoError(t, status.Scan(int64(2)))
	assert.Equal(t, TransferStatusApproved, status)

	assert.Error(t, status.Scan("APPROVED"))
}
