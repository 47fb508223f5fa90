package entity

import "time"

// Record lo implementan (con receptor puntero) las entidades que se guardan en el espejo local.
// El almacén local lo usa para asignar identidad y ordenar por fecha de creación.
type Record interface {
	RecordID() string
	RecordCreatedAt() time.Time
	AssignIdentity(id string, createdAt time.Time)
}
