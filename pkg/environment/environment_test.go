package environment

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boristopalov/enactive/pkg/core"
)

func TestFixed(t *testing.T) {
	env := Fixed{}
	for i := 0; i < 3; i++ {
		assert.Equal(t, core.R1, env.Respond(core.E1))
		assert.Equal(t, core.R2, env.Respond(core.E2))
	}
}

func TestAlternating(t *testing.T) {
	t.Run("first call differs from initial previous", func(t *testing.T) {
		env := NewAlternating()
		assert.Equal(t, core.R2, env.Respond(core.E1))
		assert.Equal(t, core.R1, env.Respond(core.E1))
	})

	t.Run("switching experiment yields r2", func(t *testing.T) {
		env := NewAlternating()
		got := []core.Result{
			env.Respond(core.E2),
			env.Respond(core.E1),
			env.Respond(core.E2),
			env.Respond(core.E2),
		}
		assert.Equal(t, []core.Result{core.R1, core.R2, core.R2, core.R1}, got)
	})

	t.Run("custom initial previous", func(t *testing.T) {
		env := NewAlternatingFrom(core.E1)
		assert.Equal(t, core.R1, env.Respond(core.E1))
	})
}

func TestTimeWindowed(t *testing.T) {
	t.Run("default window swaps inside (8,15]", func(t *testing.T) {
		env := NewTimeWindowed(DefaultT1, DefaultT2)
		for clock := 1; clock <= 20; clock++ {
			var want core.Result
			if clock > 8 && clock <= 15 {
				want = core.R2
			} else {
				want = core.R1
			}
			got := env.Respond(core.E1)
			if got != want {
				t.Errorf("clock %d: Respond(e1) = %s, want %s", clock, got, want)
			}
		}
		assert.Equal(t, 20, env.Clock())
	})

	t.Run("tenth call swaps both experiments", func(t *testing.T) {
		e1 := NewTimeWindowed(DefaultT1, DefaultT2)
		e2 := NewTimeWindowed(DefaultT1, DefaultT2)
		for i := 0; i < 9; i++ {
			e1.Respond(core.E1)
			e2.Respond(core.E1)
		}
		assert.Equal(t, core.R2, e1.Respond(core.E1))
		assert.Equal(t, core.R1, e2.Respond(core.E2))
		assert.Equal(t, 10, e1.Clock())
	})
}

func TestNew(t *testing.T) {
	t.Run("canonical kinds", func(t *testing.T) {
		for _, kind := range Kinds() {
			env, err := New(kind)
			require.NoError(t, err, kind)
			require.NotNil(t, env, kind)
		}
	})

	t.Run("aliases", func(t *testing.T) {
		env, err := New("env10")
		require.NoError(t, err)
		assert.IsType(t, Fixed{}, env)

		env, err = New("ENV30")
		require.NoError(t, err)
		assert.IsType(t, &Alternating{}, env)

		env, err = New(" env31 ")
		require.NoError(t, err)
		assert.IsType(t, &TimeWindowed{}, env)
	})

	t.Run("options", func(t *testing.T) {
		env, err := New(KindWindowed, WithWindow(1, 2))
		require.NoError(t, err)
		assert.Equal(t, core.R1, env.Respond(core.E1))
		assert.Equal(t, core.R2, env.Respond(core.E1))
		assert.Equal(t, core.R1, env.Respond(core.E1))

		env, err = New(KindAlternating, WithPrevious(core.E1))
		require.NoError(t, err)
		assert.Equal(t, core.R1, env.Respond(core.E1))
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := New("maze")
		require.Error(t, err)
		assert.True(t, errors.Is(err, core.ErrUnknownEnvironment))
	})
}
