package custom_error

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapDBError(t *testing.T) {
	var unique *UniqueViolationError
	err := WrapDBError("donor response", "23505")
	assert.True(t, errors.As(err, &unique))
	assert.Contains(t, unique.Error(), "donor response")

	var fk *ForeignKeyViolationError
	err = WrapDBError("donor", "23503")
	assert.True(t, errors.As(err, &fk))
	assert.Contains(t, fk.Error(), "referenced")

	err = WrapDBError("request", "42P01")
	assert.False(t, errors.As(err, &unique))
	assert.False(t, errors.As(err, &fk))
}
