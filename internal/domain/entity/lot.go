package entity

import "strings"

// Depósitos admitidos al crear o actualizar filas.
const (
	WarehouseStock   = "STOCK"
	WarehouseExpired = "EXPIRED"
)

// Warehouses lista los depósitos escribibles en el orden en que se muestran.
var Warehouses = []string{WarehouseStock, WarehouseExpired}

// IsWarehouse indica si label (ya normalizado) es un depósito admitido.
func IsWarehouse(label string) bool {
	for _, w := range Warehouses {
		if w == label {
			return true
		}
	}
	return false
}

// NormalizeWarehouse recorta y pasa a mayúsculas la etiqueta ingresada por el usuario.
func NormalizeWarehouse(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// NormalizeLotID recorta espacios alrededor del número de partida.
func NormalizeLotID(raw string) string {
	return strings.TrimSpace(raw)
}

// LotRecord representa una fila del archivo de stock: una partida en un depósito.
// Una misma partida puede tener una fila por depósito.
type LotRecord struct {
	LotID            string // Partida
	ArticleCode      string // Cód. Artículo
	Description      string
	Warehouse        string   // Descripción depósito
	SystemQuantity   Quantity // saldo informado por el sistema, nunca se modifica
	PhysicalQuantity Quantity // saldo contado en depósito
	Extra            []string // celdas de Table.ExtraColumns, mismo orden; puede ser más corto
}

// Table es el contenido completo del archivo; es la unidad de persistencia.
// ExtraColumns guarda las columnas del archivo que el sistema no interpreta, para
// reescribirlas sin pérdida.
type Table struct {
	Rows         []LotRecord
	ExtraColumns []string
}

// Clone devuelve una copia independiente de la tabla.
func (t Table) Clone() Table {
	var out Table
	if t.ExtraColumns != nil {
		out.ExtraColumns = append([]string(nil), t.ExtraColumns...)
	}
	if t.Rows == nil {
		return out
	}
	out.Rows = make([]LotRecord, len(t.Rows))
	for i, r := range t.Rows {
		if r.Extra != nil {
			r.Extra = append([]string(nil), r.Extra...)
		}
		out.Rows[i] = r
	}
	return out
}

// Len devuelve la cantidad de filas.
func (t Table) Len() int { return len(t.Rows) }
