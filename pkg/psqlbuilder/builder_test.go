package psqlbuilder

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect_UsesDollarPlaceholders(t *testing.T) {
	query, args, err := Select("id", "name").
		From("services").
		Where(squirrel.Eq{"pet_size": "Grande"}).
		Where(squirrel.GtOrEq{"price": 1000}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "SELECT id, name FROM services WHERE pet_size = $1 AND price >= $2", query)
	assert.Equal(t, []interface{}{"Grande", 1000}, args)
}

func TestUpdate_UsesDollarPlaceholders(t *testing.T) {
	query, args, err := Update("appointments").
		Set("status", "cancelled").
		Where(squirrel.Eq{"id": "abc"}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "UPDATE appointments SET status = $1 WHERE id = $2", query)
	assert.Equal(t, []interface{}{"cancelled", "abc"}, args)
}
