// Package cli expone el stock de implantes por consola: el menú interactivo
// numerado y los subcomandos cobra equivalentes.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-implantes/internal/application/inventory"
	"github.com/jhoicas/stock-implantes/internal/domain"
	"github.com/jhoicas/stock-implantes/internal/domain/entity"
	"github.com/jhoicas/stock-implantes/internal/domain/stock"
)

// StockService operaciones que la consola necesita del caso de uso.
type StockService interface {
	TotalQuantity(ctx context.Context, label string) (decimal.Decimal, error)
	FindLot(ctx context.Context, rawLotID string) ([]entity.LotRecord, error)
	LotExists(ctx context.Context, rawLotID string) (bool, error)
	Inspect(ctx context.Context, rawLotID, rawWarehouse string) (inventory.Inspection, error)
	Upsert(ctx context.Context, in stock.UpsertInput) (stock.Outcome, error)
	Export(ctx context.Context, format string, w io.Writer) error
	Formats() []string
}

var _ StockService = (*inventory.StockUseCase)(nil)

// userMessage traduce un error a la línea que ve el usuario.
func userMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrStorageUnavailable):
		return "Error: no se pudo leer el archivo de stock"
	case errors.Is(err, domain.ErrLotNotFound):
		return "Lote no hallado"
	case errors.Is(err, domain.ErrInvalidWarehouse):
		return fmt.Sprintf("Depósito inválido. Solo se permite %s.", strings.Join(entity.Warehouses, " o "))
	case errors.Is(err, domain.ErrInvalidQuantity):
		return "Cantidad inválida. Debe ser un número."
	case errors.Is(err, domain.ErrNegativeQuantity):
		return "No se pueden ingresar cantidades negativas."
	case errors.Is(err, domain.ErrUpdateTargetLost):
		return "No se pudo localizar la fila para actualizar."
	case errors.Is(err, domain.ErrRowAlreadyExists):
		return "La partida ya posee el depósito. Vuelva a elegir la opción para sumar la cantidad."
	case errors.Is(err, domain.ErrUnsupportedFormat):
		return "Formato de exportación no soportado."
	default:
		return "Error: " + err.Error()
	}
}
