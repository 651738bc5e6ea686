package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrStorageUnavailable = errors.New("archivo de stock no disponible")
	ErrLotNotFound        = errors.New("lote no hallado")
	ErrInvalidWarehouse   = errors.New("depósito inválido")
	ErrInvalidQuantity    = errors.New("cantidad inválida")
	ErrNegativeQuantity   = errors.New("no se pueden ingresar cantidades negativas")
	ErrUpdateTargetLost   = errors.New("no se pudo localizar la fila para actualizar")
	ErrRowAlreadyExists   = errors.New("la partida ya posee el depósito")
	ErrUnsupportedFormat  = errors.New("formato de exportación no soportado")
)
