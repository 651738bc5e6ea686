// Package stock contiene las reglas puras sobre la tabla de partidas: totales por
// depósito, búsqueda por partida, saneamiento del saldo físico y alta/suma de stock.
// Ninguna función modifica la tabla recibida.
package stock

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-implantes/internal/domain"
	"github.com/jhoicas/stock-implantes/internal/domain/entity"
)

// TotalQuantity suma el saldo de sistema de las filas cuyo depósito es exactamente label.
// Las celdas no numéricas no suman. Devuelve cero si no hay coincidencias.
func TotalQuantity(table entity.Table, label string) decimal.Decimal {
	total := decimal.Zero
	for _, r := range table.Rows {
		if r.Warehouse != label {
			continue
		}
		total = total.Add(r.SystemQuantity.Decimal())
	}
	return total
}

// FindLot devuelve todas las filas de la partida (una por depósito) en el orden de la tabla.
// Devuelve domain.ErrLotNotFound si no hay ninguna.
func FindLot(table entity.Table, rawLotID string) ([]entity.LotRecord, error) {
	lotID := entity.NormalizeLotID(rawLotID)
	var found []entity.LotRecord
	for _, r := range table.Rows {
		if entity.NormalizeLotID(r.LotID) == lotID {
			found = append(found, r)
		}
	}
	if len(found) == 0 {
		return nil, domain.ErrLotNotFound
	}
	return found, nil
}

// hasLot indica si alguna fila tiene la partida (ya normalizada).
func hasLot(table entity.Table, lotID string) bool {
	for _, r := range table.Rows {
		if entity.NormalizeLotID(r.LotID) == lotID {
			return true
		}
	}
	return false
}
