package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// TransactionType is the direction of a khata ledger entry
type TransactionType string

const (
	// TransactionUdhaarGiven records credit extended to the customer
	TransactionUdhaarGiven TransactionType = "UDHAAR_GIVEN"
	// TransactionPaymentReceived records money received from the customer
	TransactionPaymentReceived TransactionType = "PAYMENT_RECEIVED"
)

func (t TransactionType) String() string {
	return string(t)
}

// Label is the short word used in shared reports
func (t TransactionType) Label() string {
	if t == TransactionPaymentReceived {
		return "Payment"
	}
	return "Udhaar"
}

func (t TransactionType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TransactionType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	switch TransactionType(str) {
	case TransactionUdhaarGiven, TransactionPaymentReceived:
		*t = TransactionType(str)
		return nil
	}
	return fmt.Errorf("unknown transaction type %q", str)
}

func (t TransactionType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *TransactionType) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*t = TransactionType(v)
	case []byte:
		*t = TransactionType(v)
	default:
		return fmt.Errorf("cannot scan %T into TransactionType", value)
	}
	return nil
}
