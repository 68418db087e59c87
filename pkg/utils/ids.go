package utils

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// GenerateReceiptNo builds the printed receipt number for a sale. The sale id
// keeps it traceable; the random suffix keeps reprints distinguishable.
func GenerateReceiptNo(saleID int64) string {
	return fmt.Sprintf("RCPT-%06d-%s", saleID, strings.ToUpper(uuid.New().String()[:4]))
}
