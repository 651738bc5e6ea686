// Package csvstore implementa repository.TableRepository sobre el archivo CSV de
// stock de implantes. Cada Load lee el archivo completo y cada Save lo reescribe
// completo (archivo temporal + rename en el mismo directorio).
package csvstore

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/text/transform"

	"github.com/jhoicas/stock-implantes/internal/domain"
	"github.com/jhoicas/stock-implantes/internal/domain/entity"
	"github.com/jhoicas/stock-implantes/internal/domain/repository"
)

var _ repository.TableRepository = (*Store)(nil)

const defaultFileMode os.FileMode = 0o644

// Store adaptador de la tabla de partidas sobre un archivo CSV.
// No es seguro para escritores concurrentes: el último Save gana.
type Store struct {
	path  string
	codec codec
}

// New construye el store. encodingName: utf-8 (por defecto), latin1 o windows-1252.
func New(path, encodingName string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("csvstore: ruta vacía")
	}
	c, err := resolveCodec(encodingName)
	if err != nil {
		return nil, fmt.Errorf("csvstore: %w", err)
	}
	return &Store{path: path, codec: c}, nil
}

// Load lee la tabla completa. Archivo inexistente, ilegible o sin las columnas
// requeridas se informa como domain.ErrStorageUnavailable.
func (s *Store) Load(_ context.Context) (entity.Table, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return entity.Table{}, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	defer f.Close()

	table, err := decode(transform.NewReader(f, s.codec.read.NewDecoder()))
	if err != nil {
		return entity.Table{}, fmt.Errorf("%w: %s: %v", domain.ErrStorageUnavailable, s.path, err)
	}
	return table, nil
}

// Save reescribe el archivo completo: la cabecera canónica seguida de las columnas
// extra de la tabla. Conserva los permisos del archivo existente.
func (s *Store) Save(_ context.Context, table entity.Table) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".stock-*.csv")
	if err != nil {
		return fmt.Errorf("save stock: crear temporal: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := tmp.Chmod(s.fileMode()); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("save stock: permisos: %w", err)
	}

	w := transform.NewWriter(tmp, s.codec.write.NewEncoder())
	if err := encode(w, table); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("save stock: %w", err)
	}
	if err := w.Close(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("save stock: codificar: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("save stock: sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save stock: cerrar temporal: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("save stock: rename: %w", err)
	}
	return nil
}

// fileMode devuelve los permisos del archivo actual, 0644 si todavía no existe.
func (s *Store) fileMode() os.FileMode {
	info, err := os.Stat(s.path)
	if err != nil {
		return defaultFileMode
	}
	return info.Mode().Perm()
}

func decode(r io.Reader) (entity.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return entity.Table{}, fmt.Errorf("archivo vacío, falta la cabecera")
		}
		return entity.Table{}, fmt.Errorf("leer cabecera: %w", err)
	}
	idx, extra, err := indexHeader(header)
	if err != nil {
		return entity.Table{}, err
	}

	var table entity.Table
	for _, i := range extra {
		table.ExtraColumns = append(table.ExtraColumns, header[i])
	}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return entity.Table{}, fmt.Errorf("leer fila %d: %w", table.Len()+2, err)
		}
		if isBlank(rec) {
			continue
		}
		cell := func(col string) string {
			i := idx[col]
			if i >= len(rec) {
				return ""
			}
			return rec[i]
		}
		record := entity.LotRecord{
			LotID:            cell(ColLotID),
			ArticleCode:      cell(ColArticleCode),
			Description:      cell(ColDescription),
			Warehouse:        cell(ColWarehouse),
			SystemQuantity:   entity.ParseQuantity(cell(ColSystemQty)),
			PhysicalQuantity: entity.ParseQuantity(cell(ColPhysicalQty)),
		}
		for _, i := range extra {
			v := ""
			if i < len(rec) {
				v = rec[i]
			}
			record.Extra = append(record.Extra, v)
		}
		table.Rows = append(table.Rows, record)
	}
	return table, nil
}

// indexHeader ubica cada columna requerida por nombre; el orden en el archivo es libre.
// Devuelve además las posiciones de las columnas no canónicas, en el orden del archivo.
func indexHeader(header []string) (map[string]int, []int, error) {
	idx := make(map[string]int, len(Header))
	var extra []int
	for i, h := range header {
		name := strings.TrimSpace(h)
		if _, dup := idx[name]; dup || !slices.Contains(Header, name) {
			extra = append(extra, i)
			continue
		}
		idx[name] = i
	}
	var missing []string
	for _, col := range Header {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, nil, fmt.Errorf("faltan columnas: %s", strings.Join(missing, ", "))
	}
	return idx, extra, nil
}

func isBlank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func encode(w io.Writer, table entity.Table) error {
	cw := csv.NewWriter(w)
	header := append(slices.Clone(Header), table.ExtraColumns...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("escribir cabecera: %w", err)
	}
	for _, r := range table.Rows {
		rec := make([]string, 0, len(header))
		rec = append(rec,
			r.LotID,
			r.ArticleCode,
			r.Description,
			r.Warehouse,
			r.SystemQuantity.String(),
			r.PhysicalQuantity.String(),
		)
		for i := range table.ExtraColumns {
			v := ""
			if i < len(r.Extra) {
				v = r.Extra[i]
			}
			rec = append(rec, v)
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("escribir partida %s: %w", r.LotID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
