package cli_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-implantes/internal/application/inventory"
	"github.com/jhoicas/stock-implantes/internal/domain"
	"github.com/jhoicas/stock-implantes/internal/domain/stock"
	"github.com/jhoicas/stock-implantes/internal/infrastructure/audit"
	"github.com/jhoicas/stock-implantes/internal/infrastructure/csvstore"
	"github.com/jhoicas/stock-implantes/internal/infrastructure/xlsx"
	"github.com/jhoicas/stock-implantes/internal/interfaces/cli"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const seedCSV = "Partida,Cód. Artículo,Descripción,Descripción depósito,Saldo stock sistema,Saldo stock fisico\n" +
	"123,A-01,Tornillo cortical,STOCK,10,5\n" +
	"456,A-02,Placa bloqueada,STOCK,4,\n" +
	"456,A-02,Placa bloqueada,EXPIRED,2,None\n"

type env struct {
	dir   string
	paths cli.Paths
}

func newEnv(t *testing.T) env {
	t.Helper()
	dir := t.TempDir()
	paths := cli.Paths{
		StockFile: filepath.Join(dir, "stock_implantes_lotes.csv"),
		AuditFile: filepath.Join(dir, "log.log"),
	}
	require.NoError(t, os.WriteFile(paths.StockFile, []byte(seedCSV), 0o644))
	return env{dir: dir, paths: paths}
}

func build(paths cli.Paths) (cli.StockService, error) {
	store, err := csvstore.New(paths.StockFile, "")
	if err != nil {
		return nil, err
	}
	exporters := map[string]inventory.ReportExporter{"xlsx": xlsx.NewExporter()}
	return inventory.NewStockUseCase(store, audit.NewFileLogger(paths.AuditFile), exporters, nil), nil
}

// run ejecuta el comando raíz con args y entrada estándar stdin.
func (e env) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := cli.NewRootCommand(cli.RootDeps{Name: "implantes", Defaults: e.paths, Build: build})
	var out bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&out)
	if args == nil {
		args = []string{} // evita que cobra lea os.Args del binario de test
	}
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func (e env) stockFile(t *testing.T) string {
	t.Helper()
	b, err := os.ReadFile(e.paths.StockFile)
	require.NoError(t, err)
	return string(b)
}

func (e env) auditLines(t *testing.T) []string {
	t.Helper()
	b, err := os.ReadFile(e.paths.AuditFile)
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	return strings.Split(strings.TrimSpace(string(b)), "\n")
}

// ──────────────────────────────────────────────────────────────────────────────
// Menú interactivo
// ──────────────────────────────────────────────────────────────────────────────

func TestMenu_Totales(t *testing.T) {
	e := newEnv(t)
	out, err := e.run(t, "1\n2\n5\n")
	require.NoError(t, err)

	assert.Contains(t, out, "###LOGISTICA DE IMPLANTES###")
	assert.Contains(t, out, "La cantidad de implantes en STOCK actualmente es de 14")
	assert.Contains(t, out, "La cantidad de implantes en EXPIRED actualmente es de 2")
	assert.Contains(t, out, "Hasta luego")
}

func TestMenu_ArchivoInexistenteNoCortaElMenu(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, os.Remove(e.paths.StockFile))

	out, err := e.run(t, "1\n3\n123\n5\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Error")
	assert.Contains(t, out, "Hasta luego")
}

func TestMenu_BuscarLote(t *testing.T) {
	e := newEnv(t)
	out, err := e.run(t, "3\n 456 \n3\n999\n5\n")
	require.NoError(t, err)

	assert.Contains(t, out, "Placa bloqueada")
	assert.Contains(t, out, "EXPIRED")
	assert.Contains(t, out, "Lote no hallado")
}

func TestMenu_OpcionInvalidaYFinDeEntrada(t *testing.T) {
	e := newEnv(t)
	out, err := e.run(t, "9\n")
	require.NoError(t, err)
	assert.Contains(t, out, "----Opción no válida.----")
	assert.Contains(t, out, "Hasta luego")
}

func TestMenu_AltaRechazadaNoEscribe(t *testing.T) {
	e := newEnv(t)
	before := e.stockFile(t)

	out, err := e.run(t, "4\n123\nexpired\nn\n4\n123\nEXPIRED\nquizas\n5\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Volviendo al menu principal")
	assert.Contains(t, out, "Seleccion inválida")
	assert.Equal(t, before, e.stockFile(t))
	assert.Empty(t, e.auditLines(t))
}

func TestMenu_AltaYSuma(t *testing.T) {
	e := newEnv(t)

	out, err := e.run(t, "4\n123\nexpired\ns\n4\n123\nEXPIRED\n3\n5\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Se agregó la partida 123 en depósito EXPIRED.")
	assert.Contains(t, out, "Se sumaron 3 unidades a la partida 123 en depósito EXPIRED.")

	content := e.stockFile(t)
	assert.Contains(t, content, "123,A-01,Tornillo cortical,EXPIRED,0,3\n")
	// el saneamiento alcanza a toda la columna
	assert.Contains(t, content, "456,A-02,Placa bloqueada,EXPIRED,2,0\n")
	assert.Len(t, e.auditLines(t), 2)
}

func TestMenu_ValidacionesDeAgregar(t *testing.T) {
	e := newEnv(t)
	before := e.stockFile(t)

	input := strings.Join([]string{
		"4", "999", // lote inexistente
		"4", "123", "VENCIDO", // depósito inválido
		"4", "123", "STOCK", "abc", // cantidad inválida
		"4", "123", "STOCK", "-1", // cantidad negativa
		"5",
	}, "\n") + "\n"
	out, err := e.run(t, input)
	require.NoError(t, err)

	assert.Contains(t, out, "Lote no hallado")
	assert.Contains(t, out, "Depósito inválido. Solo se permite STOCK o EXPIRED.")
	assert.Contains(t, out, "Cantidad inválida. Debe ser un número.")
	assert.Contains(t, out, "No se pueden ingresar cantidades negativas.")
	assert.Equal(t, before, e.stockFile(t))
	assert.Empty(t, e.auditLines(t))
}

// racedService simula otro escritor que crea la fila entre la consulta y el alta.
type racedService struct {
	cli.StockService
	got stock.UpsertInput
}

func (s *racedService) LotExists(context.Context, string) (bool, error) { return true, nil }

func (s *racedService) Inspect(_ context.Context, lot, wh string) (inventory.Inspection, error) {
	return inventory.Inspection{LotID: lot, Warehouse: strings.ToUpper(wh), Exists: false}, nil
}

func (s *racedService) Upsert(_ context.Context, in stock.UpsertInput) (stock.Outcome, error) {
	s.got = in
	return stock.Outcome{}, domain.ErrRowAlreadyExists
}

func TestMenu_AltaSobreFilaCreadaPorOtroEscritor(t *testing.T) {
	svc := &racedService{}
	var out bytes.Buffer
	in := strings.NewReader("4\n123\nEXPIRED\ns\n5\n")

	require.NoError(t, cli.NewMenu(svc, in, &out, nil).Run(context.Background()))
	assert.True(t, svc.got.ConfirmCreate)
	assert.Empty(t, svc.got.Quantity)
	assert.Contains(t, out.String(), "La partida ya posee el depósito.")
	assert.NotContains(t, out.String(), "Cantidad inválida")
}

// ──────────────────────────────────────────────────────────────────────────────
// Subcomandos
// ──────────────────────────────────────────────────────────────────────────────

func TestCommand_Total(t *testing.T) {
	e := newEnv(t)
	out, err := e.run(t, "", "total", "stock")
	require.NoError(t, err)
	assert.Equal(t, "La cantidad de implantes en STOCK actualmente es de 14\n", out)
}

func TestCommand_Buscar(t *testing.T) {
	e := newEnv(t)
	out, err := e.run(t, "", "buscar", "123")
	require.NoError(t, err)
	assert.Contains(t, out, "Tornillo cortical")

	_, err = e.run(t, "", "buscar", "999")
	assert.EqualError(t, err, "Lote no hallado")
}

func TestCommand_Agregar(t *testing.T) {
	e := newEnv(t)

	out, err := e.run(t, "", "agregar", "456", "--deposito", "stock", "--cantidad", "2.5")
	require.NoError(t, err)
	assert.Contains(t, out, "Se sumaron 2.5 unidades a la partida 456 en depósito STOCK.")
	assert.Contains(t, e.stockFile(t), "456,A-02,Placa bloqueada,STOCK,4,2.5\n")

	out, err = e.run(t, "", "agregar", "123", "--deposito", "EXPIRED")
	require.NoError(t, err)
	assert.Contains(t, out, "use --crear")

	out, err = e.run(t, "", "agregar", "123", "--deposito", "EXPIRED", "--crear")
	require.NoError(t, err)
	assert.Contains(t, out, "Se agregó la partida 123 en depósito EXPIRED.")

	_, err = e.run(t, "", "agregar", "123", "--deposito", "STOCK")
	assert.EqualError(t, err, "falta --cantidad")

	out, err = e.run(t, "", "agregar", "123", "--deposito", "EXPIRED", "--crear", "--cantidad", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Se sumaron 1 unidades a la partida 123 en depósito EXPIRED.")

	_, err = e.run(t, "", "agregar", "123", "--deposito", "STOCK", "--cantidad", "-4")
	assert.EqualError(t, err, "No se pueden ingresar cantidades negativas.")

	assert.Len(t, e.auditLines(t), 3)
}

func TestCommand_Exportar(t *testing.T) {
	e := newEnv(t)
	output := filepath.Join(e.dir, "reporte.xlsx")

	out, err := e.run(t, "", "exportar", "--formato", "xlsx", "--salida", output)
	require.NoError(t, err)
	assert.Contains(t, out, "Reporte generado en")
	info, err := os.Stat(output)
	require.NoError(t, err)
	assert.NotZero(t, info.Size())

	bad := filepath.Join(e.dir, "reporte.docx")
	_, err = e.run(t, "", "exportar", "--formato", "docx", "--salida", bad)
	assert.EqualError(t, err, "Formato de exportación no soportado. Formatos disponibles: xlsx")
	_, statErr := os.Stat(bad)
	assert.True(t, os.IsNotExist(statErr))
}

func TestCommand_FlagArchivo(t *testing.T) {
	e := newEnv(t)
	other := filepath.Join(e.dir, "otro.csv")
	require.NoError(t, os.WriteFile(other, []byte(strings.SplitAfter(seedCSV, "\n")[0]+"1,X,Y,STOCK,99,0\n"), 0o644))

	out, err := e.run(t, "", "--archivo", other, "total", "STOCK")
	require.NoError(t, err)
	assert.Contains(t, out, "es de 99")
}
