package inventory

import (
	"context"
	"io"

	"github.com/jhoicas/stock-implantes/internal/domain/entity"
	"github.com/jhoicas/stock-implantes/internal/domain/stock"
)

// AuditLogger registra cada alta y cada suma de stock aplicada con éxito.
type AuditLogger interface {
	Record(ctx context.Context, outcome stock.Outcome) error
}

// ReportExporter genera un reporte de la tabla completa en un formato (xlsx, pdf).
type ReportExporter interface {
	Export(ctx context.Context, table entity.Table, w io.Writer) error
}
