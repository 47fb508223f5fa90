package entity

// Field par columna/valor de una actualización parcial (usado por el cliente remoto para armar el UPDATE).
type Field struct {
	Column string
	Value  any
}
