package factory

// Pending is a factory call with a count attached, as in
// factory.Times(50).Create().
type Pending[T any] struct {
	factory *BaseFactory[T]
	count   int
}

// Make builds the models without persisting them.
func (p *Pending[T]) Make() []T {
	return p.factory.Make(p.count)
}

// Create persists the models atomically.
func (p *Pending[T]) Create() ([]T, error) {
	return p.factory.CreateMany(p.count)
}

// Count reports how many models the call produces.
func (p *Pending[T]) Count() int {
	return p.count
}
