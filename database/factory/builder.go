package factory

import (
	"fmt"
	"sync/atomic"

	"github.com/galaplate/petitions/database"
	"gorm.io/gorm"
)

const defaultBatchSize = 100

type BaseFactory[T any] struct {
	db        *gorm.DB
	seq       *int64
	states    []State[T]
	validate  func(any) error
	batchSize int
	Builder   func(seq int64) T
}

// NewBaseFactory creates a new BaseFactory for a model bound to the global
// connection.
func NewBaseFactory[T any](builder func(seq int64) T) *BaseFactory[T] {
	var s int64
	return &BaseFactory[T]{db: database.Connect, seq: &s, Builder: builder, batchSize: defaultBatchSize}
}

// clone copies the factory; the sequence stays shared.
func (f *BaseFactory[T]) clone() *BaseFactory[T] {
	c := *f
	c.states = append([]State[T](nil), f.states...)
	return &c
}

// On returns a factory that persists through db, typically a transaction.
func (f *BaseFactory[T]) On(db *gorm.DB) *BaseFactory[T] {
	c := f.clone()
	c.db = db
	return c
}

// State returns a factory that applies fn after the definition.
func (f *BaseFactory[T]) State(fn State[T]) *BaseFactory[T] {
	c := f.clone()
	c.states = append(c.states, fn)
	return c
}

// Validate returns a factory that checks every model with fn before
// persisting it.
func (f *BaseFactory[T]) Validate(fn func(any) error) *BaseFactory[T] {
	c := f.clone()
	c.validate = fn
	return c
}

// BatchSize sets how many rows go into one INSERT.
func (f *BaseFactory[T]) BatchSize(n int) *BaseFactory[T] {
	c := f.clone()
	if n > 0 {
		c.batchSize = n
	}
	return c
}

// Times returns a pending builder for n models.
func (f *BaseFactory[T]) Times(n int) *Pending[T] {
	return &Pending[T]{factory: f, count: n}
}

func (f *BaseFactory[T]) nextSeq() int64 {
	return atomic.AddInt64(f.seq, 1)
}

// Build creates an instance but does not persist
func (f *BaseFactory[T]) Build() T {
	val := f.Builder(f.nextSeq())
	for _, state := range f.states {
		state(&val)
	}
	return val
}

// Make builds n instances without persisting them
func (f *BaseFactory[T]) Make(n int) []T {
	if n <= 0 {
		return []T{}
	}
	result := make([]T, 0, n)
	for range n {
		result = append(result, f.Build())
	}
	return result
}

func (f *BaseFactory[T]) check(val *T) error {
	if f.validate == nil {
		return nil
	}
	return f.validate(val)
}

func (f *BaseFactory[T]) conn() (*gorm.DB, error) {
	if f.db == nil {
		return nil, fmt.Errorf("factory has no database connection")
	}
	return f.db, nil
}

// Create builds and persists a new record
func (f *BaseFactory[T]) Create(out *T) error {
	db, err := f.conn()
	if err != nil {
		return err
	}

	val := f.Build()
	if err := f.check(&val); err != nil {
		return fmt.Errorf("invalid %T: %w", val, err)
	}
	if err := db.Create(&val).Error; err != nil {
		return err
	}
	*out = val
	return nil
}

// CreateMany builds and persists n records in one transaction: either all
// of them are stored or none is.
func (f *BaseFactory[T]) CreateMany(n int) ([]T, error) {
	if n < 0 {
		return nil, fmt.Errorf("cannot create %d records", n)
	}
	if n == 0 {
		return []T{}, nil
	}

	result := f.Make(n)
	for i := range result {
		if err := f.check(&result[i]); err != nil {
			return nil, fmt.Errorf("invalid %T #%d: %w", result[i], i+1, err)
		}
	}

	db, err := f.conn()
	if err != nil {
		return nil, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(&result, f.batchSize).Error
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
