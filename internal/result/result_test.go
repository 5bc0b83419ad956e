package result

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCombine_EmptyInput(t *testing.T) {
	values, errs := Combine([]Result[int]{})
	require.Empty(t, errs)
	require.NotNil(t, values)
	require.Empty(t, values)
}

func TestCombine_AllOk_PreservesOrder(t *testing.T) {
	values, errs := Combine([]Result[int]{Ok(1), Ok(2), Ok(3)})
	require.Empty(t, errs)
	require.Equal(t, []int{1, 2, 3}, values)
}

func TestCombine_CollectsEveryError_InOrder(t *testing.T) {
	e1 := fmt.Errorf("first")
	e2 := fmt.Errorf("second")
	values, errs := Combine([]Result[int]{Err[int](e1), Ok(1), Err[int](e2)})
	require.Nil(t, values)
	require.Equal(t, []error{e1, e2}, errs)
}

// Randomized sequences of Ok/Err must always reduce to exactly the errors
// that occurred (in relative order), or all values (in order) when none did.
func TestCombine_RandomizedTotality(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for round := 0; round < 200; round++ {
		n := rng.Intn(20)
		results := make([]Result[int], 0, n)
		var wantValues []int
		var wantErrs []error

		for i := 0; i < n; i++ {
			if rng.Intn(3) == 0 {
				err := fmt.Errorf("err-%d-%d", round, i)
				results = append(results, Err[int](err))
				wantErrs = append(wantErrs, err)
			} else {
				results = append(results, Ok(i))
				wantValues = append(wantValues, i)
			}
		}

		values, errs := Combine(results)
		if len(wantErrs) > 0 {
			require.Nil(t, values)
			require.Equal(t, wantErrs, errs)
		} else {
			require.Empty(t, errs)
			require.Len(t, values, len(wantValues))
			if len(wantValues) > 0 {
				require.Equal(t, wantValues, values)
			}
		}
	}
}

func TestEach_RunsToCompletion(t *testing.T) {
	var seen []int
	results := Each([]int{1, 2, 3, 4}, func(n int) (int, error) {
		seen = append(seen, n)
		if n%2 == 0 {
			return 0, fmt.Errorf("even: %d", n)
		}
		return n * 10, nil
	})

	require.Equal(t, []int{1, 2, 3, 4}, seen)
	require.Len(t, results, 4)
	require.NoError(t, results[0].Err)
	require.Error(t, results[1].Err)
	require.NoError(t, results[2].Err)
	require.Error(t, results[3].Err)
}
