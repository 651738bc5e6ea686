package inventory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-implantes/internal/domain"
	"github.com/jhoicas/stock-implantes/internal/domain/entity"
	"github.com/jhoicas/stock-implantes/internal/domain/repository"
	"github.com/jhoicas/stock-implantes/internal/domain/stock"
	"github.com/jhoicas/stock-implantes/pkg/logger"
)

// StockUseCase expone las operaciones sobre el archivo de partidas.
// Cada operación carga la tabla desde cero; las que modifican la tabla la persisten
// completa antes de devolver. No hay bloqueo entre procesos: el último Save gana.
type StockUseCase struct {
	repo      repository.TableRepository
	audit     AuditLogger
	exporters map[string]ReportExporter
	log       *logger.Logger
}

// NewStockUseCase construye el caso de uso. exporters se indexa por formato (xlsx, pdf).
func NewStockUseCase(
	repo repository.TableRepository,
	audit AuditLogger,
	exporters map[string]ReportExporter,
	log *logger.Logger,
) *StockUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &StockUseCase{
		repo:      repo,
		audit:     audit,
		exporters: exporters,
		log:       log,
	}
}

// TotalQuantity devuelve el saldo de sistema sumado del depósito label.
func (uc *StockUseCase) TotalQuantity(ctx context.Context, label string) (decimal.Decimal, error) {
	table, err := uc.repo.Load(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	total := stock.TotalQuantity(table, label)
	uc.log.Debug().Str("warehouse", label).Str("total", total.String()).Msg("total por depósito")
	return total, nil
}

// FindLot devuelve las filas de la partida o domain.ErrLotNotFound.
func (uc *StockUseCase) FindLot(ctx context.Context, rawLotID string) ([]entity.LotRecord, error) {
	table, err := uc.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return stock.FindLot(table, rawLotID)
}

// LotExists informa si la partida tiene al menos una fila.
func (uc *StockUseCase) LotExists(ctx context.Context, rawLotID string) (bool, error) {
	_, err := uc.FindLot(ctx, rawLotID)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, domain.ErrLotNotFound):
		return false, nil
	default:
		return false, err
	}
}

// Inspection resultado de validar partida y depósito antes de pedir confirmación o cantidad.
type Inspection struct {
	LotID     string
	Warehouse string
	Exists    bool
}

// Inspect valida partida y depósito y dice si la fila partida+depósito ya existe.
func (uc *StockUseCase) Inspect(ctx context.Context, rawLotID, rawWarehouse string) (Inspection, error) {
	table, err := uc.repo.Load(ctx)
	if err != nil {
		return Inspection{}, err
	}
	lotID, warehouse, exists, err := stock.Inspect(table, rawLotID, rawWarehouse)
	if err != nil {
		return Inspection{}, err
	}
	return Inspection{LotID: lotID, Warehouse: warehouse, Exists: exists}, nil
}

// Upsert recarga la tabla, aplica el alta o la suma y, si hubo cambio, persiste y
// registra la auditoría. Validaciones fallidas y altas rechazadas no escriben nada.
func (uc *StockUseCase) Upsert(ctx context.Context, in stock.UpsertInput) (stock.Outcome, error) {
	table, err := uc.repo.Load(ctx)
	if err != nil {
		return stock.Outcome{}, err
	}
	updated, outcome, err := stock.Upsert(table, in)
	if err != nil {
		return stock.Outcome{}, err
	}
	if !outcome.Mutated() {
		return outcome, nil
	}
	if err := uc.repo.Save(ctx, updated); err != nil {
		uc.log.Error().Err(err).Str("lot_id", outcome.LotID).Msg("guardar archivo de stock")
		return stock.Outcome{}, err
	}
	if uc.audit != nil {
		if err := uc.audit.Record(ctx, outcome); err != nil {
			// la tabla ya quedó guardada; solo se informa
			uc.log.Warn().Err(err).Str("lot_id", outcome.LotID).Msg("registrar auditoría")
		}
	}
	uc.log.Debug().
		Str("event", outcome.Kind).
		Str("lot_id", outcome.LotID).
		Str("warehouse", outcome.Warehouse).
		Msg("archivo de stock actualizado")
	return outcome, nil
}

// Formats devuelve los formatos de exportación disponibles, ordenados.
func (uc *StockUseCase) Formats() []string {
	out := make([]string, 0, len(uc.exporters))
	for f := range uc.exporters {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Export escribe en w el reporte de la tabla completa en el formato pedido.
func (uc *StockUseCase) Export(ctx context.Context, format string, w io.Writer) error {
	exp, ok := uc.exporters[strings.ToLower(strings.TrimSpace(format))]
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}
	table, err := uc.repo.Load(ctx)
	if err != nil {
		return err
	}
	return exp.Export(ctx, table, w)
}
