package remote

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewError_Classes(t *testing.T) {
	assert.ErrorIs(t, NewError(401, "", "x"), ErrUnauthorized)
	assert.ErrorIs(t, NewError(404, "", "x"), ErrSchemaAbsent)
	assert.ErrorIs(t, NewError(0, "PGRST205", "x"), ErrSchemaAbsent)
	assert.Nil(t, errors.Unwrap(NewError(500, "", "x")))
}

func TestError_Message(t *testing.T) {
	assert.Equal(t, "remote error 400 (42P01): missing", NewError(400, "42P01", "missing").Error())
	assert.Equal(t, "remote error (23505): dup", NewError(0, "23505", "dup").Error())
	assert.Equal(t, "remote error 500: boom", NewError(500, "", "boom").Error())
}

func TestFilter_EqCopies(t *testing.T) {
	base := Eq("user_id", "u")
	a := base.Eq("quote_id", "a")
	b := base.Eq("quote_id", "b")

	assert.Len(t, base.Conds, 1)
	assert.Equal(t, "a", a.Conds[1].Value)
	assert.Equal(t, "b", b.Conds[1].Value)
	assert.Equal(t, 0, a.Limit)
	assert.Equal(t, 5, a.WithLimit(5).Limit)
}
