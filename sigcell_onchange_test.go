package sigcell

import (
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOnChange(t *testing.T) {
	t.Run("suppresses equal values", func(t *testing.T) {
		runs := 0

		x, _ := NewVar(1)
		stable, err := OnChange[int](x)
		assert.NoError(t, err)

		double, _ := NewFunc([]Binding{Bind("stable", stable)}, func(v Values) (int, error) {
			runs++
			return As[int](v.Get("stable")) * 2, nil
		})
		assert.Equal(t, 1, runs)

		// same value twice: x propagates, the wrapper's dependents do not run
		assert.NoError(t, x.Write(1))
		assert.NoError(t, x.Write(1))
		assert.Equal(t, 1, runs)

		v, err := stable.Read()
		assert.NoError(t, err)
		assert.Equal(t, 1, v)

		assert.NoError(t, x.Write(2))
		assert.Equal(t, 2, runs)

		v, err = stable.Read()
		assert.NoError(t, err)
		assert.Equal(t, 2, v)

		d, err := double.Read()
		assert.NoError(t, err)
		assert.Equal(t, 4, d)
	})

	t.Run("custom equality", func(t *testing.T) {
		runs := 0

		word, _ := NewVar("go")
		folded, err := OnChange[string](word, WithEqual(strings.EqualFold))
		assert.NoError(t, err)

		shout, _ := NewFunc([]Binding{Bind("word", folded)}, func(v Values) (string, error) {
			runs++
			return strings.ToUpper(As[string](v.Get("word"))), nil
		})
		assert.Equal(t, 1, runs)

		assert.NoError(t, word.Write("GO")) // equal under folding
		assert.Equal(t, 1, runs)

		v, err := folded.Read()
		assert.NoError(t, err)
		assert.Equal(t, "go", v) // keeps the last distinct value

		assert.NoError(t, word.Write("gopher"))
		assert.Equal(t, 2, runs)

		s, err := shout.Read()
		assert.NoError(t, err)
		assert.Equal(t, "GOPHER", s)
	})

	t.Run("structural equality by default", func(t *testing.T) {
		runs := 0

		xs, _ := NewVar([]int{1, 2})
		stable, err := OnChange[[]int](xs)
		assert.NoError(t, err)

		total, _ := NewFunc([]Binding{Bind("xs", stable)}, func(v Values) (int, error) {
			runs++
			sum := 0
			for _, n := range As[[]int](v.Get("xs")) {
				sum += n
			}
			return sum, nil
		})
		assert.Equal(t, 1, runs)

		assert.NoError(t, xs.Write([]int{1, 2})) // deep-equal, different backing array
		assert.Equal(t, 1, runs)

		assert.NoError(t, xs.Write([]int{1, 2, 3}))
		assert.Equal(t, 2, runs)

		v, err := total.Read()
		assert.NoError(t, err)
		assert.Equal(t, 6, v)
	})

	t.Run("deferred writes settle on flush", func(t *testing.T) {
		runs := 0

		x, _ := NewVar(1)
		stable, _ := OnChange[int](x)

		double, _ := NewFunc([]Binding{Bind("stable", stable)}, func(v Values) (int, error) {
			runs++
			return As[int](v.Get("stable")) * 2, nil
		})
		assert.Equal(t, 1, runs)

		// the batch lands back on the recorded value: no change to see
		err := Batch(func() error {
			if err := x.Write(5); err != nil {
				return err
			}
			return x.Write(1)
		})
		assert.NoError(t, err)
		assert.Equal(t, 1, runs)

		v, err := stable.Read()
		assert.NoError(t, err)
		assert.Equal(t, 1, v)

		// a real change recomputes the dependent once for the whole batch
		err = Batch(func() error {
			if err := x.Write(5); err != nil {
				return err
			}
			return x.Write(9)
		})
		assert.NoError(t, err)
		assert.Equal(t, 2, runs)

		d, err := double.Read()
		assert.NoError(t, err)
		assert.Equal(t, 18, d)
	})

	t.Run("concurrent reads see settled values only", func(t *testing.T) {
		x, _ := NewVar(0)
		stable, _ := OnChange[int](x)

		var wg sync.WaitGroup
		wg.Go(func() {
			for i := 2; i <= 200; i += 2 {
				assert.NoError(t, x.Write(i))
			}
		})
		wg.Go(func() {
			// writes are even and increasing; a read that mixed two waves
			// could go backwards or catch a half-applied update
			last := 0
			for range 200 {
				v, err := stable.Read()
				assert.NoError(t, err)
				assert.Zero(t, v%2)
				assert.GreaterOrEqual(t, v, last)
				last = v
			}
		})
		wg.Wait()

		v, err := stable.Read()
		assert.NoError(t, err)
		assert.Equal(t, 200, v)
	})

	t.Run("wrapper keeps its updater alive", func(t *testing.T) {
		x, _ := NewVar(1)
		stable, _ := OnChange[int](x)

		runtime.GC()
		runtime.GC()

		assert.NoError(t, x.Write(2))

		v, err := stable.Read()
		assert.NoError(t, err)
		assert.Equal(t, 2, v)
	})

	t.Run("documentation", func(t *testing.T) {
		x, _ := NewVar(1)
		stable, _ := OnChange[int](x, WithChangeDoc[int]("distinct values of x"))
		assert.Equal(t, "distinct values of x", stable.Doc())
	})
}
