package factory

type Factory[T any] interface {
	Build() T
	Create(out *T) error
	CreateMany(n int) ([]T, error)
}

// State mutates a freshly built model, e.g. to force a status.
type State[T any] func(model *T)
