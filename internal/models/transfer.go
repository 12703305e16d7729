package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransferType says who initiated a transfer. Stored as the integer
// code, rendered as a word over the wire.
type TransferType int

const (
	TransferTypeRequest TransferType = 1
	TransferTypeSend    TransferType = 2
)

// TransferStatus is the lifecycle state of a transfer. The only legal
// transitions are PENDING -> APPROVED and PENDING -> REJECTED.
type TransferStatus int

const (
	TransferStatusPending  TransferStatus = 1
	TransferStatusApproved TransferStatus = 2
	TransferStatusRejected TransferStatus = 3
)

func (t TransferType) String() string {
	switch t {
	case TransferTypeRequest:
		return "REQUEST"
	case TransferTypeSend:
		return "SEND"
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(t))
}

func (t TransferType) Valid() bool {
	return t == TransferTypeRequest || t == TransferTypeSend
}

func (t TransferType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t TransferType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *TransferType) Scan(src interface{}) error {
	v, ok := src.(int64)
	if !ok {
		return fmt.Errorf("cannot scan %T into TransferType", src)
	}
	*t = TransferType(v)
	return nil
}

func (s TransferStatus) String() string {
	switch s {
	case TransferStatusPending:
		return "PENDING"
	case TransferStatusApproved:
		return "APPROVED"
	case TransferStatusRejected:
		return "REJECTED"
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(s))
}

// Terminal reports whether the status can never change again.
func (s TransferStatus) Terminal() bool {
	return s == TransferStatusApproved || s == TransferStatusRejected
}

func (s TransferStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s TransferStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *TransferStatus) Scan(src interface{}) error {
	v, ok := src.(int64)
	if !ok {
		return fmt.Errorf("cannot scan %T into TransferStatus", src)
	}
	*s = TransferStatus(v)
	return nil
}

// Transfer records an intended balance movement between two accounts.
// Amount and both parties are immutable once created; only the status
// column is ever updated.
type Transfer struct {
	ID          uint            `gorm:"primarykey;column:transfer_id" json:"transfer_id"`
	Type        TransferType    `gorm:"column:transfer_type_id;not null" json:"type"`
	Status      TransferStatus  `gorm:"column:transfer_status_id;not null;default:1" json:"status"`
	AccountFrom uint            `gorm:"column:account_from;not null;index" json:"account_from"`
	AccountTo   uint            `gorm:"column:account_to;not null;index" json:"account_to"`
	Amount      decimal.Decimal `gorm:"type:numeric(13,2);not null" json:"amount"`
	Reference   string          `gorm:"uniqueIndex;not null" json:"reference"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (Transfer) TableName() string { return "transfers" }
