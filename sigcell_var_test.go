package sigcell

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVar(t *testing.T) {
	t.Run("read and write", func(t *testing.T) {
		count, err := NewVar(0)
		assert.NoError(t, err)
		assert.Equal(t, 0, count.Read())

		assert.NoError(t, count.Write(10))
		assert.Equal(t, 10, count.Read())
	})

	t.Run("update", func(t *testing.T) {
		count, _ := NewVar(1)

		assert.NoError(t, count.Update(func(v int) int { return v + 41 }))
		assert.Equal(t, 42, count.Read())
	})

	t.Run("concurrent read/write", func(t *testing.T) {
		var wg sync.WaitGroup
		count, _ := NewVar(0)

		wg.Go(func() {
			assert.NoError(t, count.Write(count.Read()+1))
		})

		wg.Wait()
		assert.Equal(t, 1, count.Read())
	})

	t.Run("zero values", func(t *testing.T) {
		sig, err := NewVar[error](nil)
		assert.NoError(t, err)
		assert.Nil(t, sig.Read())

		assert.NoError(t, sig.Write(errors.New("oops")))
		assert.EqualError(t, sig.Read(), "oops")

		assert.NoError(t, sig.Write(nil))
		assert.Nil(t, sig.Read())
	})

	t.Run("documentation", func(t *testing.T) {
		count, _ := NewVar(0, WithDoc("request count"))
		assert.Equal(t, "request count", count.Doc())
	})

	t.Run("rejects an initial value violating the declared type", func(t *testing.T) {
		count, err := NewVar(-1, Check("non-negative int", func(v int) bool { return v >= 0 }))
		assert.Nil(t, count)
		assert.ErrorIs(t, err, ErrTypeMismatch)
	})

	t.Run("rejects writes violating the declared type", func(t *testing.T) {
		count, err := NewVar(5,
			Check("non-negative int", func(v int) bool { return v >= 0 }),
			WithDoc("count"),
		)
		assert.NoError(t, err)

		err = count.Write(-3)
		assert.ErrorIs(t, err, ErrTypeMismatch)
		assert.Contains(t, err.Error(), "count")

		var terr *TypeMismatchError
		assert.ErrorAs(t, err, &terr)
		assert.Equal(t, -3, terr.Value)
		assert.Equal(t, "non-negative int", terr.Want)

		// value untouched by the failed write
		assert.Equal(t, 5, count.Read())
	})
}
