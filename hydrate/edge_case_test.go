package hydrate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootAliasOverride(t *testing.T) {
	h := New(testRegistry(t))

	rows := []Row{
		{"Cust.code": "C1", "Cust.name": "Alice"},
	}
	root := &Node{Model: "Customer", Alias: "Cust"}

	results, err := h.Hydrate(rows, root)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, Object{"code": "C1", "name": "Alice"}, results[0])
}

func TestRootAliasOverrideMismatch(t *testing.T) {
	h := New(testRegistry(t))

	// The data is prefixed with the model name, not the override.
	rows := []Row{
		{"Customer.code": "C1", "Customer.name": "Alice"},
	}
	root := &Node{Model: "Customer", Alias: "Cust"}

	_, err := h.Hydrate(rows, root)
	require.ErrorIs(t, err, ErrSchemaAliasMissing)
}

func TestBelongsToManyTwoParents(t *testing.T) {
	h := New(testRegistry(t))

	rows := []Row{
		{
			"Customer.code": "C1", "Customer.name": "Alice",
			"CustomerTag.CustomerId": "C1", "CustomerTag.TagId": "T1",
			"Tags.code": "T1", "Tags.label": "vip",
		},
		{
			"Customer.code": "C2", "Customer.name": "Bob",
			"CustomerTag.CustomerId": "C2", "CustomerTag.TagId": "T1",
			"Tags.code": "T1", "Tags.label": "vip",
		},
		{
			"Customer.code": "C2", "Customer.name": "Bob",
			"CustomerTag.CustomerId": "C2", "CustomerTag.TagId": "T2",
			"Tags.code": "T2", "Tags.label": "trade",
		},
	}

	results, err := h.Hydrate(rows, tagSchema())
	require.NoError(t, err)
	require.Len(t, results, 2)

	aliceTags := results[0]["Tags"].([]Object)
	require.Len(t, aliceTags, 1)
	assert.Equal(t, "T1", aliceTags[0]["code"])

	bobTags := results[1]["Tags"].([]Object)
	require.Len(t, bobTags, 2)
	assert.Equal(t, "T1", bobTags[0]["code"])
	assert.Equal(t, "T2", bobTags[1]["code"])
}

func TestHasManyAttributeCompleteness(t *testing.T) {
	h := New(testRegistry(t))

	// Each child object carries exactly the attributes its columns provided.
	rows := []Row{
		{"Customer.code": "C1", "Products.code": "P1", "Products.name": "Widget"},
		{"Customer.code": "C1", "Products.code": "P2", "Products.name": "Gadget"},
		{"Customer.code": "C1", "Products.code": "P3", "Products.name": "Gizmo"},
	}
	root := &Node{Model: "Customer", Children: []*Node{{Model: "Product", Alias: "Products"}}}

	results, err := h.Hydrate(rows, root)
	require.NoError(t, err)
	products := results[0]["Products"].([]Object)
	require.Len(t, products, 3)
	for _, p := range products {
		assert.Len(t, p, 2)
	}
}

func TestHydrateDoesNotMutateInputRows(t *testing.T) {
	h := New(testRegistry(t))

	rows := []Row{
		{"Customer.code": "C1", "Customer.name": "Alice", "Address.code": "A1", "Address.street": "Main"},
	}
	root := &Node{Model: "Customer", Children: []*Node{{Model: "Address"}}}

	_, err := h.Hydrate(rows, root)
	require.NoError(t, err)

	assert.Equal(t, Row{
		"Customer.code": "C1", "Customer.name": "Alice",
		"Address.code": "A1", "Address.street": "Main",
	}, rows[0])
}

func TestPostProcessReplacesObject(t *testing.T) {
	h := New(testRegistry(t))

	rows := []Row{{"Customer.code": "C1", "Customer.name": "Alice"}}
	root := &Node{
		Model: "Customer",
		PostProcess: func(obj Object, parents *Parents) Object {
			return Object{"id": obj["code"]}
		},
	}

	results, err := h.Hydrate(rows, root)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, Object{"id": "C1"}, results[0])
}
