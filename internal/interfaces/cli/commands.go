package cli

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jhoicas/stock-implantes/internal/domain"
	"github.com/jhoicas/stock-implantes/internal/domain/entity"
	"github.com/jhoicas/stock-implantes/internal/domain/stock"
	"github.com/jhoicas/stock-implantes/pkg/logger"
)

// Paths rutas de archivos que pueden sobrescribirse con flags.
type Paths struct {
	StockFile string
	AuditFile string
}

// BuildFunc construye el servicio a partir de las rutas efectivas.
type BuildFunc func(paths Paths) (StockService, error)

// RootDeps dependencias del comando raíz.
type RootDeps struct {
	Name     string
	Version  string
	Defaults Paths
	Build    BuildFunc
	Log      *logger.Logger
}

// NewRootCommand arma el árbol de comandos. Sin subcomando corre el menú interactivo.
func NewRootCommand(deps RootDeps) *cobra.Command {
	paths := deps.Defaults
	var svc StockService

	root := &cobra.Command{
		Use:           deps.Name,
		Short:         "Logística de implantes: stock por partida y depósito",
		Long:          "Consulta y actualiza el archivo CSV de stock de implantes por partida (lote) en los depósitos STOCK y EXPIRED.",
		Version:       deps.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			s, err := deps.Build(paths)
			if err != nil {
				return err
			}
			svc = s
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return NewMenu(svc, cmd.InOrStdin(), cmd.OutOrStdout(), deps.Log).Run(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&paths.StockFile, "archivo", paths.StockFile, "Ruta del CSV de stock")
	root.PersistentFlags().StringVar(&paths.AuditFile, "log", paths.AuditFile, "Ruta del log de auditoría")

	service := func() StockService { return svc }
	root.AddCommand(
		newTotalCommand(service),
		newFindCommand(service),
		newAddCommand(service),
		newExportCommand(service),
	)
	return root
}

func newTotalCommand(svc func() StockService) *cobra.Command {
	return &cobra.Command{
		Use:   "total <deposito>",
		Short: "Cantidad de implantes (saldo sistema) en un depósito",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			label := entity.NormalizeWarehouse(args[0])
			total, err := svc().TotalQuantity(cmd.Context(), label)
			if err != nil {
				return errors.New(userMessage(err))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "La cantidad de implantes en %s actualmente es de %s\n", label, total.String())
			return nil
		},
	}
}

func newFindCommand(svc func() StockService) *cobra.Command {
	return &cobra.Command{
		Use:   "buscar <partida>",
		Short: "Muestra las filas de una partida",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := svc().FindLot(cmd.Context(), args[0])
			if err != nil {
				return errors.New(userMessage(err))
			}
			return renderLots(cmd.OutOrStdout(), rows)
		},
	}
}

func newAddCommand(svc func() StockService) *cobra.Command {
	var (
		warehouse string
		quantity  string
		create    bool
	)
	cmd := &cobra.Command{
		Use:   "agregar <partida>",
		Short: "Suma stock físico a una partida o crea su fila en otro depósito",
		Long: "Si la partida ya tiene fila en el depósito, suma --cantidad al saldo físico.\n" +
			"Si no la tiene, la crea en cero solo cuando se indica --crear; la cantidad se suma en una segunda ejecución.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			insp, err := svc().Inspect(ctx, args[0], warehouse)
			if err != nil {
				return errors.New(userMessage(err))
			}
			in := stock.UpsertInput{LotID: insp.LotID, Warehouse: insp.Warehouse, ConfirmCreate: create && !insp.Exists}
			if insp.Exists {
				if !cmd.Flags().Changed("cantidad") {
					return errors.New("falta --cantidad")
				}
				in.Quantity = quantity
				in.ExpectExisting = true
			}
			outcome, err := svc().Upsert(ctx, in)
			if err != nil {
				return errors.New(userMessage(err))
			}
			if outcome.Kind == stock.OutcomeNoOp {
				fmt.Fprintf(cmd.OutOrStdout(), "La partida %s no posee el depósito %s; use --crear para crearlo.\n", insp.LotID, insp.Warehouse)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), outcome.Message())
			return nil
		},
	}
	cmd.Flags().StringVar(&warehouse, "deposito", entity.WarehouseStock, "Depósito: "+strings.Join(entity.Warehouses, " o "))
	cmd.Flags().StringVar(&quantity, "cantidad", "", "Cantidad a sumar al stock físico")
	cmd.Flags().BoolVar(&create, "crear", false, "Crear la fila si la partida no posee el depósito")
	return cmd
}

func newExportCommand(svc func() StockService) *cobra.Command {
	var (
		format string
		output string
	)
	cmd := &cobra.Command{
		Use:   "exportar",
		Short: "Exporta el stock completo como reporte",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			formats := svc().Formats()
			if !slices.Contains(formats, strings.ToLower(format)) {
				return fmt.Errorf("%s Formatos disponibles: %s", userMessage(domain.ErrUnsupportedFormat), strings.Join(formats, ", "))
			}
			if output == "" {
				output = "stock_implantes." + strings.ToLower(format)
			}
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("crear %s: %w", output, err)
			}
			if err := svc().Export(cmd.Context(), format, f); err != nil {
				_ = f.Close()
				_ = os.Remove(output)
				return errors.New(userMessage(err))
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("cerrar %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reporte generado en %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "formato", "xlsx", "Formato del reporte (ver los disponibles con <TAB>)")
	cmd.Flags().StringVarP(&output, "salida", "o", "", "Archivo de salida (por defecto stock_implantes.<formato>)")
	_ = cmd.RegisterFlagCompletionFunc("formato", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return svc().Formats(), cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}
