// Package receipt formats finalized sales into print-ready text documents.
// It is pure formatting: nothing here touches the store.
package receipt

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/rogerio-castellano/pos-register/internal/config"
	models "github.com/rogerio-castellano/pos-register/internal/models"
)

// width matches the 40-column thermal printers used at the counter.
const width = 40

// NewRef returns a fresh document reference for a printed receipt.
func NewRef() string {
	return uuid.NewString()
}

// Renderer renders receipts under a fixed merchant header.
type Renderer struct {
	merchant config.Merchant
}

func NewRenderer(merchant config.Merchant) Renderer {
	return Renderer{merchant: merchant}
}

// Render produces the print-ready document for a finalized sale. The ref is
// printed verbatim so reprints can carry a stable reference.
func (r Renderer) Render(sale models.Sale, ref string) string {
	sep := strings.Repeat("=", width)
	dash := strings.Repeat("-", width)

	var b strings.Builder
	writeLine(&b, sep)
	writeLine(&b, center(r.merchant.Name))
	if r.merchant.Address != "" {
		writeLine(&b, center(r.merchant.Address))
	}
	if r.merchant.TaxID != "" {
		writeLine(&b, center(r.merchant.TaxID))
	}
	writeLine(&b, sep)
	writeLine(&b, "NON-FISCAL RECEIPT")
	writeLine(&b, fmt.Sprintf("Sale #%d", sale.ID))
	writeLine(&b, sale.Timestamp)
	writeLine(&b, "Ref "+ref)
	writeLine(&b, dash)

	for _, item := range sale.LineItems {
		writeLine(&b, item.Name)
		qtyByPrice := fmt.Sprintf("  %d x %s", item.Quantity, item.SellPrice.String())
		writeLine(&b, spread(qtyByPrice, item.Subtotal().String()))
	}

	writeLine(&b, dash)
	writeLine(&b, spread("TOTAL", sale.Total.String()))
	writeLine(&b, "Payment: "+string(sale.PaymentMethod))
	writeLine(&b, sep)
	if r.merchant.Footer != "" {
		writeLine(&b, center(r.merchant.Footer))
	}
	return b.String()
}

func writeLine(b *strings.Builder, line string) {
	b.WriteString(line)
	b.WriteByte('\n')
}

func center(s string) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", (width-len(s))/2) + s
}

// spread puts left and right on one line with the right edge aligned to the
// printer width.
func spread(left, right string) string {
	pad := width - len(left) - len(right)
	if pad < 1 {
		pad = 1
	}
	return left + strings.Repeat(" ", pad) + right
}
