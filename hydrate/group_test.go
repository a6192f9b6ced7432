package hydrate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dphaener/hydrate/schema"
)

var groupModel = &schema.Model{Name: "Customer", Attributes: []string{"code", "name"}, PrimaryKey: "code"}

func TestGroupByIdentity(t *testing.T) {
	rows := []Row{
		{"Customer.code": "C1", "Customer.name": "Alice"},
		{"Customer.code": "C2", "Customer.name": "Bob"},
		{"Customer.code": "C1", "Customer.name": "Alice"},
	}

	groups, err := groupByIdentity(rows, groupModel, "Customer")
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Len(t, groups[0], 2)
	assert.Len(t, groups[1], 1)
	assert.Equal(t, "C1", groups[0][0]["Customer.code"])
	assert.Equal(t, "C2", groups[1][0]["Customer.code"])
}

func TestGroupByIdentityEmptyAlias(t *testing.T) {
	_, err := groupByIdentity([]Row{{"Customer.code": "C1"}}, groupModel, "")
	require.ErrorIs(t, err, ErrMissingAlias)
}

func TestGroupByIdentityEmptyRows(t *testing.T) {
	groups, err := groupByIdentity(nil, groupModel, "Customer")
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestGroupByIdentityMissingPrimaryKeyColumn(t *testing.T) {
	rows := []Row{{"Customer.name": "Alice"}}

	_, err := groupByIdentity(rows, groupModel, "Customer")
	require.ErrorIs(t, err, ErrPrimaryKeyColumnNotFound)
	assert.Contains(t, err.Error(), "Customer.code")
}

func TestGroupByIdentitySamplesFirstRowOnly(t *testing.T) {
	// The identity column is checked on the first row only; homogeneity is
	// the orchestrator's concern.
	rows := []Row{
		{"Customer.code": "C1"},
		{"Customer.name": "stray"},
	}

	groups, err := groupByIdentity(rows, groupModel, "Customer")
	require.NoError(t, err)
	require.Len(t, groups, 1)
}

func TestGroupByIdentityDropsFalsyIdentities(t *testing.T) {
	rows := []Row{
		{"Customer.code": nil, "Customer.name": "nobody"},
		{"Customer.code": "", "Customer.name": "empty"},
		{"Customer.code": "C1", "Customer.name": "Alice"},
	}

	groups, err := groupByIdentity(rows, groupModel, "Customer")
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "Alice", groups[0][0]["Customer.name"])
}

func TestGroupByIdentityIntegerKeys(t *testing.T) {
	m := &schema.Model{Name: "User", Attributes: []string{"id"}, PrimaryKey: "id"}
	rows := []Row{
		{"User.id": int64(7)},
		{"User.id": int64(9)},
		{"User.id": int64(7)},
	}

	groups, err := groupByIdentity(rows, m, "User")
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Len(t, groups[0], 2)
}
