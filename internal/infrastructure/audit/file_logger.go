// Package audit registra en un archivo de texto cada alta de depósito y cada suma
// de stock físico. Una línea JSON por evento (time, level, message y campos).
package audit

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stock-implantes/internal/domain/stock"
)

// FileLogger agrega eventos de auditoría al final del archivo configurado.
type FileLogger struct {
	path string
	mu   sync.Mutex
}

// NewFileLogger construye el logger de auditoría; el archivo se crea al primer evento.
func NewFileLogger(path string) *FileLogger {
	return &FileLogger{path: path}
}

// Record escribe una línea con el mensaje legible del resultado.
func (l *FileLogger) Record(_ context.Context, outcome stock.Outcome) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("audit: abrir %s: %w", l.path, err)
	}
	defer f.Close()

	zl := zerolog.New(f).With().Timestamp().Logger()
	zl.Info().
		Str("op_id", uuid.New().String()).
		Str("event", outcome.Kind).
		Str("lot_id", outcome.LotID).
		Str("warehouse", outcome.Warehouse).
		Str("delta", outcome.Delta.String()).
		Str("new_total", outcome.NewTotal.String()).
		Msg(outcome.Message())
	return nil
}
