package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/jhoicas/stock-implantes/internal/domain/entity"
	"github.com/jhoicas/stock-implantes/internal/infrastructure/csvstore"
)

// renderLots imprime las filas de una partida como tabla alineada.
func renderLots(w io.Writer, rows []entity.LotRecord) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.Debug)
	fmt.Fprintln(tw, "#\t"+strings.Join(csvstore.Header, "\t"))
	for i, r := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			i+1,
			r.LotID,
			r.ArticleCode,
			r.Description,
			r.Warehouse,
			r.SystemQuantity.String(),
			r.PhysicalQuantity.String(),
		)
	}
	return tw.Flush()
}
