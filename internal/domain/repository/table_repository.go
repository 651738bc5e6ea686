package repository

import (
	"context"

	"github.com/jhoicas/stock-implantes/internal/domain/entity"
)

// TableRepository define el puerto de persistencia del archivo de stock.
// Cada operación carga la tabla completa y, si la modifica, la reescribe completa.
type TableRepository interface {
	Load(ctx context.Context) (entity.Table, error)
	Save(ctx context.Context, table entity.Table) error
}
