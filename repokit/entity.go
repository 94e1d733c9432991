package repokit

import (
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// Entity is anything the repository can store. Identity is minted by
// the application, never by the database.
type Entity interface {
	ID() uuid.UUID
}

// Base carries the identity for a stored entity; embed it and the
// Entity contract is satisfied
type Base struct {
	id uuid.UUID
}

// NewEntity mints a fresh identity
func NewEntity() Base { return Base{id: uuid.New()} }

// EntityWithID rebuilds the identity of a loaded document
func EntityWithID(id uuid.UUID) Base { return Base{id: id} }

// ID returns the entity identity
func (b Base) ID() uuid.UUID { return b.id }

// Mapper translates between an entity and its stored document.
// Serialize keys the document by the storage id field; Unserialize
// is its inverse.
type Mapper[E Entity] interface {
	Serialize(e E) (bson.M, error)
	Unserialize(doc bson.M) (E, error)
}
