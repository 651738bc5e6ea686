package csvstore

// Columnas del archivo, en el orden en que se escriben.
const (
	ColLotID       = "Partida"
	ColArticleCode = "Cód. Artículo"
	ColDescription = "Descripción"
	ColWarehouse   = "Descripción depósito"
	ColSystemQty   = "Saldo stock sistema"
	ColPhysicalQty = "Saldo stock fisico"
)

// Header es la cabecera canónica del archivo de stock.
var Header = []string{
	ColLotID,
	ColArticleCode,
	ColDescription,
	ColWarehouse,
	ColSystemQty,
	ColPhysicalQty,
}
