// implantes consulta y actualiza el stock de implantes por partida.
//
// Uso: implantes [--archivo stock.csv] [--log log.log] [total|buscar|agregar|exportar]
// Sin subcomando abre el menú interactivo.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/stock-implantes/internal/application/inventory"
	"github.com/jhoicas/stock-implantes/internal/infrastructure/audit"
	"github.com/jhoicas/stock-implantes/internal/infrastructure/csvstore"
	"github.com/jhoicas/stock-implantes/internal/infrastructure/pdf"
	"github.com/jhoicas/stock-implantes/internal/infrastructure/xlsx"
	"github.com/jhoicas/stock-implantes/internal/interfaces/cli"
	"github.com/jhoicas/stock-implantes/pkg/config"
	"github.com/jhoicas/stock-implantes/pkg/logger"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Debug().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("stock_file", cfg.Store.File).
		Msg("iniciando aplicación")

	build := func(paths cli.Paths) (cli.StockService, error) {
		store, err := csvstore.New(paths.StockFile, cfg.Store.Encoding)
		if err != nil {
			return nil, err
		}
		exporters := map[string]inventory.ReportExporter{
			"xlsx": xlsx.NewExporter(),
			"pdf":  pdf.NewMarotoReportExporter(""),
		}
		return inventory.NewStockUseCase(store, audit.NewFileLogger(paths.AuditFile), exporters, log), nil
	}

	root := cli.NewRootCommand(cli.RootDeps{
		Name:    "implantes",
		Version: version,
		Defaults: cli.Paths{
			StockFile: cfg.Store.File,
			AuditFile: cfg.Audit.File,
		},
		Build: build,
		Log:   log,
	})

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
