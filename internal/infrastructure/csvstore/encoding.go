package csvstore

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Codificaciones admitidas para el archivo de stock.
const (
	EncodingUTF8        = "utf-8"
	EncodingLatin1      = "latin1"
	EncodingWindows1252 = "windows-1252"
)

// codec agrupa la codificación de lectura y la de escritura.
// En UTF-8 se descarta el BOM al leer y se escribe sin BOM.
type codec struct {
	read  encoding.Encoding
	write encoding.Encoding
}

func resolveCodec(name string) (codec, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", EncodingUTF8, "utf8":
		return codec{read: unicode.UTF8BOM, write: unicode.UTF8}, nil
	case EncodingLatin1, "iso-8859-1", "iso8859-1":
		return codec{read: charmap.ISO8859_1, write: charmap.ISO8859_1}, nil
	case EncodingWindows1252, "cp1252":
		return codec{read: charmap.Windows1252, write: charmap.Windows1252}, nil
	default:
		return codec{}, fmt.Errorf("codificación no soportada: %q", name)
	}
}
