package systems

// Event types published on the world bus.
const (
	EventCollision     = "collision"
	EventObjectAdded   = "object.added"
	EventObjectRemoved = "object.removed"
)
