package stock

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-implantes/internal/domain/entity"
)

// SanitizePhysical normaliza toda la columna de saldo físico: vacíos, espacios, "None"
// y cualquier texto no numérico pasan a 0; el resto queda como número.
// Aplica a la tabla completa, no solo a la fila que se va a actualizar. Es idempotente.
func SanitizePhysical(table entity.Table) entity.Table {
	out := table.Clone()
	for i := range out.Rows {
		out.Rows[i].PhysicalQuantity = sanitizeCell(out.Rows[i].PhysicalQuantity)
	}
	return out
}

func sanitizeCell(q entity.Quantity) entity.Quantity {
	if q.Numeric {
		return entity.NewQuantity(q.Value)
	}
	s := strings.TrimSpace(q.Raw)
	if s == "" || strings.EqualFold(s, "none") {
		return entity.NewQuantity(decimal.Zero)
	}
	if parsed := entity.ParseQuantity(s); parsed.Numeric {
		return parsed
	}
	return entity.NewQuantity(decimal.Zero)
}
