package ecs

import "strconv"

// Entity packs a 32-bit id with the generation it was issued under, so a
// handle kept past DestroyEntity never aliases the id's next owner.
type Entity uint64

type entityID uint32
type generation uint32

const entityIDBits = 32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

func (e Entity) id() entityID {
	return entityID(uint32(e))
}

func (e Entity) generation() generation {
	return generation(uint32(uint64(e) >> entityIDBits))
}

// String renders the handle as "id.generation".
func (e Entity) String() string {
	return strconv.FormatUint(uint64(e.id()), 10) + "." + strconv.FormatUint(uint64(e.generation()), 10)
}

// Valid reports whether e could name an entity. It says nothing about
// liveness.
func (e Entity) Valid() bool {
	return e.id() > 0
}
