package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jhoicas/stock-implantes/internal/domain/entity"
	"github.com/jhoicas/stock-implantes/internal/domain/stock"
	"github.com/jhoicas/stock-implantes/pkg/logger"
)

// Menu bucle interactivo numerado. Cada opción corre completa antes de volver a mostrar
// el menú; un error en una opción se informa y el menú continúa.
type Menu struct {
	svc StockService
	in  *bufio.Reader
	out io.Writer
	log *logger.Logger
}

// NewMenu construye el menú sobre la entrada y salida indicadas.
func NewMenu(svc StockService, in io.Reader, out io.Writer, log *logger.Logger) *Menu {
	if log == nil {
		log = logger.Nop()
	}
	return &Menu{svc: svc, in: bufio.NewReader(in), out: out, log: log}
}

func (m *Menu) printMenu() {
	fmt.Fprintln(m.out, "\n###LOGISTICA DE IMPLANTES###")
	fmt.Fprintln(m.out)
	fmt.Fprintf(m.out, "1. Cantidad de implantes en %s\n", entity.WarehouseStock)
	fmt.Fprintf(m.out, "2. Cantidad de implantes en %s\n", entity.WarehouseExpired)
	fmt.Fprintln(m.out, "3. Buscar implantes por lote")
	fmt.Fprintln(m.out, "4. Agregar implantes por lote al stock fisico")
	fmt.Fprintln(m.out, "5. Salir")
}

// Run muestra el menú hasta que se elige salir o se agota la entrada.
func (m *Menu) Run(ctx context.Context) error {
	for {
		m.printMenu()
		opcion, err := m.prompt("\nSeleccione una opción: ")
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(m.out, "\nHasta luego")
			return nil
		}
		if err != nil {
			return err
		}

		switch strings.TrimSpace(opcion) {
		case "1":
			m.total(ctx, entity.WarehouseStock)
		case "2":
			m.total(ctx, entity.WarehouseExpired)
		case "3":
			err = m.findLot(ctx)
		case "4":
			err = m.addLot(ctx)
		case "5":
			fmt.Fprintln(m.out, "Hasta luego")
			return nil
		default:
			fmt.Fprintln(m.out, "----Opción no válida.----")
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(m.out, "\nHasta luego")
			return nil
		}
	}
}

// prompt escribe label y lee una línea. Devuelve io.EOF solo si no se leyó nada.
func (m *Menu) prompt(label string) (string, error) {
	fmt.Fprint(m.out, label)
	line, err := m.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (m *Menu) total(ctx context.Context, label string) {
	total, err := m.svc.TotalQuantity(ctx, label)
	if err != nil {
		m.log.Error().Err(err).Str("warehouse", label).Msg("total por depósito")
		fmt.Fprintln(m.out, "Error")
		return
	}
	fmt.Fprintf(m.out, "La cantidad de implantes en %s actualmente es de %s\n", label, total.String())
}

func (m *Menu) findLot(ctx context.Context) error {
	raw, err := m.prompt("Escriba el número de lote: ")
	if err != nil {
		return err
	}
	rows, err := m.svc.FindLot(ctx, raw)
	if err != nil {
		fmt.Fprintln(m.out, userMessage(err))
		return nil
	}
	return renderLots(m.out, rows)
}

func (m *Menu) addLot(ctx context.Context) error {
	rawLot, err := m.prompt("Escriba el número de lote: ")
	if err != nil {
		return err
	}
	ok, err := m.svc.LotExists(ctx, rawLot)
	if err != nil {
		fmt.Fprintln(m.out, userMessage(err))
		return nil
	}
	if !ok {
		fmt.Fprintln(m.out, "Lote no hallado")
		return nil
	}

	rawWarehouse, err := m.prompt(fmt.Sprintf("Escriba el deposito: %s: ", strings.Join(entity.Warehouses, " o ")))
	if err != nil {
		return err
	}
	insp, err := m.svc.Inspect(ctx, rawLot, rawWarehouse)
	if err != nil {
		fmt.Fprintln(m.out, userMessage(err))
		return nil
	}

	in := stock.UpsertInput{LotID: insp.LotID, Warehouse: insp.Warehouse}
	if !insp.Exists {
		answer, err := m.prompt("Este lote no posee el deposito elegido,¿desea crearlo? (s/n)")
		if err != nil {
			return err
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "s":
			in.ConfirmCreate = true
		case "n":
			fmt.Fprintln(m.out, "Volviendo al menu principal")
			return nil
		default:
			fmt.Fprintln(m.out, "Seleccion inválida")
			fmt.Fprintln(m.out, "Volviendo al menu principal")
			return nil
		}
	} else {
		qty, err := m.prompt("Ingrese la cantidad a sumar al stock físico: ")
		if err != nil {
			return err
		}
		in.Quantity = qty
		in.ExpectExisting = true
	}

	outcome, err := m.svc.Upsert(ctx, in)
	if err != nil {
		fmt.Fprintln(m.out, userMessage(err))
		return nil
	}
	fmt.Fprintln(m.out, outcome.Message())
	return nil
}
