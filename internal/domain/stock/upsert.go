package stock

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-implantes/internal/domain"
	"github.com/jhoicas/stock-implantes/internal/domain/entity"
)

// Tipos de resultado de Upsert.
const (
	OutcomeNoOp    = "NOOP"    // alta rechazada, la tabla no cambia
	OutcomeCreated = "CREATED" // se agregó la fila de la partida en el depósito
	OutcomeUpdated = "UPDATED" // se sumó la cantidad al saldo físico
)

// UpsertInput parámetros ya recolectados por la capa de presentación.
// Quantity se interpreta solo si la fila partida+depósito existe.
// ConfirmCreate autoriza el alta cuando la fila no existe.
// ExpectExisting indica que quien llama ya vio la fila (y pidió una cantidad); si al
// recargar ya no está, se devuelve domain.ErrUpdateTargetLost en lugar de ofrecer el alta.
// A la inversa, un alta confirmada sobre una fila que apareció entre la consulta y la
// recarga devuelve domain.ErrRowAlreadyExists: no hay cantidad que sumar.
type UpsertInput struct {
	LotID          string
	Warehouse      string
	Quantity       string
	ConfirmCreate  bool
	ExpectExisting bool
}

// Outcome describe el cambio aplicado por Upsert.
type Outcome struct {
	Kind      string
	LotID     string
	Warehouse string
	Delta     decimal.Decimal
	NewTotal  decimal.Decimal
}

// Mutated indica si la tabla cambió y debe persistirse.
func (o Outcome) Mutated() bool {
	return o.Kind == OutcomeCreated || o.Kind == OutcomeUpdated
}

// Message devuelve la línea legible que se muestra al usuario y se registra en el log.
func (o Outcome) Message() string {
	switch o.Kind {
	case OutcomeCreated:
		return fmt.Sprintf("Se agregó la partida %s en depósito %s.", o.LotID, o.Warehouse)
	case OutcomeUpdated:
		return fmt.Sprintf("Se sumaron %s unidades a la partida %s en depósito %s.", o.Delta.String(), o.LotID, o.Warehouse)
	default:
		return "Volviendo al menu principal"
	}
}

// Inspect valida partida y depósito y devuelve si ya existe la fila partida+depósito.
// Devuelve la partida y el depósito normalizados.
func Inspect(table entity.Table, rawLotID, rawWarehouse string) (lotID, warehouse string, exists bool, err error) {
	lotID = entity.NormalizeLotID(rawLotID)
	if !hasLot(table, lotID) {
		return "", "", false, domain.ErrLotNotFound
	}
	warehouse = entity.NormalizeWarehouse(rawWarehouse)
	if !entity.IsWarehouse(warehouse) {
		return "", "", false, domain.ErrInvalidWarehouse
	}
	for _, r := range table.Rows {
		if entity.NormalizeLotID(r.LotID) == lotID && r.Warehouse == warehouse {
			return lotID, warehouse, true, nil
		}
	}
	return lotID, warehouse, false, nil
}

// Upsert crea la fila partida+depósito (si se confirma) o suma la cantidad al saldo físico.
// Alta y suma nunca ocurren en la misma llamada: la fila nueva arranca en cero.
// Ante cualquier error la tabla devuelta es la recibida, sin cambios.
func Upsert(table entity.Table, in UpsertInput) (entity.Table, Outcome, error) {
	lotID, warehouse, exists, err := Inspect(table, in.LotID, in.Warehouse)
	if err != nil {
		return table, Outcome{}, err
	}
	if !exists {
		if in.ExpectExisting {
			return table, Outcome{}, domain.ErrUpdateTargetLost
		}
		if !in.ConfirmCreate {
			return table, Outcome{Kind: OutcomeNoOp, LotID: lotID, Warehouse: warehouse}, nil
		}
		return create(table, lotID, warehouse)
	}
	if in.ConfirmCreate && !in.ExpectExisting {
		return table, Outcome{}, domain.ErrRowAlreadyExists
	}
	return add(table, lotID, warehouse, in.Quantity)
}

// create clona código y descripción de la primera fila de la partida.
func create(table entity.Table, lotID, warehouse string) (entity.Table, Outcome, error) {
	var base entity.LotRecord
	for _, r := range table.Rows {
		if entity.NormalizeLotID(r.LotID) == lotID {
			base = r
			break
		}
	}
	out := table.Clone()
	out.Rows = append(out.Rows, entity.LotRecord{
		LotID:            lotID,
		ArticleCode:      base.ArticleCode,
		Description:      base.Description,
		Warehouse:        warehouse,
		SystemQuantity:   entity.NewQuantity(decimal.Zero),
		PhysicalQuantity: entity.NewQuantity(decimal.Zero),
	})
	return out, Outcome{
		Kind:      OutcomeCreated,
		LotID:     lotID,
		Warehouse: warehouse,
		Delta:     decimal.Zero,
		NewTotal:  decimal.Zero,
	}, nil
}

func add(table entity.Table, lotID, warehouse, rawQuantity string) (entity.Table, Outcome, error) {
	qty, err := ParseDelta(rawQuantity)
	if err != nil {
		return table, Outcome{}, err
	}

	out := SanitizePhysical(table)
	matched := false
	newTotal := decimal.Zero
	for i, r := range out.Rows {
		if entity.NormalizeLotID(r.LotID) != lotID || !strings.EqualFold(r.Warehouse, warehouse) {
			continue
		}
		newTotal = r.PhysicalQuantity.Decimal().Add(qty)
		out.Rows[i].PhysicalQuantity = entity.NewQuantity(newTotal)
		matched = true
	}
	if !matched {
		return table, Outcome{}, domain.ErrUpdateTargetLost
	}
	return out, Outcome{
		Kind:      OutcomeUpdated,
		LotID:     lotID,
		Warehouse: warehouse,
		Delta:     qty,
		NewTotal:  newTotal,
	}, nil
}

// ParseDelta interpreta la cantidad a sumar. Cero es válido, negativos no.
// Exponentes o cantidades de dígitos fuera de entity.PlausibleQuantity son inválidos.
func ParseDelta(raw string) (decimal.Decimal, error) {
	qty, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || !entity.PlausibleQuantity(qty) {
		return decimal.Zero, fmt.Errorf("%w: %q", domain.ErrInvalidQuantity, raw)
	}
	if qty.IsNegative() {
		return decimal.Zero, domain.ErrNegativeQuantity
	}
	return qty, nil
}
