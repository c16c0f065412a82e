package async

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupEmpty(t *testing.T) {
	parent := Group()
	v, err := parent.Join(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, []any{}, v)
}

func TestGroupCompletenessAndErrorReporting(t *testing.T) {
	boom := errors.New("boom")
	parent := Group(OfValue(1), OfValue(2), OfError(boom))

	v, err := parent.Join(context.Background(), 0)
	require.Error(t, err)

	var ge *GroupedError
	require.ErrorAs(t, err, &ge)
	assert.Same(t, boom, ge.First)
	assert.Len(t, ge.Outcomes, 3)
	assert.Nil(t, v)

	var seen1, seen2, seenErr int
	for _, o := range ge.Outcomes {
		switch o := o.(type) {
		case int:
			if o == 1 {
				seen1++
			}
			if o == 2 {
				seen2++
			}
		case error:
			seenErr++
		}
	}
	assert.Equal(t, 1, seen1)
	assert.Equal(t, 1, seen2)
	assert.Equal(t, 1, seenErr)
}

func TestGroupInOrderPreservesChildOrder(t *testing.T) {
	d1, d2, d3 := New(), New(), New()
	parent := GroupInOrder(d1, d2, d3)

	d3.Complete(30)
	d2.Complete(20)
	d1.Complete(10)

	v, err := parent.Join(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, []any{10, 20, 30}, v)
}

func TestGroupCompletesExactlyOnce(t *testing.T) {
	var calls int
	d1, d2 := New(), New()
	parent := GroupWith([]*Deferred{d1, d2}, WithCompletionHook(func(outcomes []any, err error) {
		calls++
	}))

	d1.Complete(1)
	d2.Complete(2)

	_, err := parent.Join(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestGroupOfAlreadyDoneChildren(t *testing.T) {
	parent := Group(OfValue("a"), OfValue("b"))
	v, err := parent.Join(context.Background(), 0)
	require.NoError(t, err)
	assert.ElementsMatch(t, []any{"a", "b"}, v)
}
