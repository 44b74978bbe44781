package shared

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewPageQuery_Normalizes(t *testing.T) {
	q := NewPageQuery(0, 0)
	assert.Equal(t, PageQuery{Page: 1, PageSize: DefaultPageSize}, q)

	q = NewPageQuery(3, 1000)
	assert.Equal(t, MaxPageSize, q.PageSize)
	assert.Equal(t, 2*MaxPageSize, q.Offset())
	assert.Equal(t, MaxPageSize, q.Limit())
}

func TestMapPage(t *testing.T) {
	p := Page[int]{Items: []int{1, 2}, Total: 7, Page: 2, PageSize: 2}
	out := MapPage(p, func(i int) string { return strings.Repeat("x", i) })
	assert.Equal(t, []string{"x", "xx"}, out.Items)
	assert.Equal(t, int64(7), out.Total)
	assert.Equal(t, 2, out.Page)
}

func TestTransitions(t *testing.T) {
	tr := Transitions[string]{
		"pending":   {"confirmed", "cancelled"},
		"confirmed": {"completed"},
	}
	assert.True(t, tr.Allows("pending", "cancelled"))
	assert.False(t, tr.Allows("confirmed", "pending"))
	assert.False(t, tr.Allows("completed", "pending"))
	assert.True(t, tr.IsTerminal("completed"))
	assert.False(t, tr.IsTerminal("pending"))
}

func TestNewOrderNo(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local)
	no := NewOrderNo("SO", now)
	assert.True(t, strings.HasPrefix(no, "SO20240601120000"))
	assert.Len(t, no, len("SO")+14+6)
}

func TestDomainError_UnwrapsToSentinel(t *testing.T) {
	err := NewInsufficientError("sku", "insufficient stock")
	assert.True(t, errors.Is(err, ErrInsufficient))
	assert.False(t, errors.Is(err, ErrNotFound))

	var stacker Stacker
	assert.True(t, errors.As(err, &stacker))
	assert.NotEmpty(t, stacker.Stack())
}

func TestMoney(t *testing.T) {
	sum, err := Fen(1250).Add(Fen(50))
	assert.NoError(t, err)
	assert.Equal(t, "13.00", sum.Yuan())

	_, err = Fen(1).Add(NewMoney(1, "USD"))
	assert.Error(t, err)

	diff, err := Fen(100).Subtract(Fen(305))
	assert.NoError(t, err)
	assert.True(t, diff.IsNegative())
	assert.Equal(t, "-2.05", diff.Yuan())

	total, err := Fen(8800).Multiply(3)
	assert.NoError(t, err)
	assert.True(t, total.Equals(Fen(26400)))

	_, err = Fen(1).Multiply(-1)
	assert.Error(t, err)
}
