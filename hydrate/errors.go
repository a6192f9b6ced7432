package hydrate

import "errors"

var (
	// ErrSchemaModelNotFound is returned when the root schema node names a
	// model the registry does not contain
	ErrSchemaModelNotFound = errors.New("schema model not found in registry")

	// ErrNodeModelNotFound is returned when a descendant schema node names a
	// model the registry does not contain
	ErrNodeModelNotFound = errors.New("node model not found in registry")

	// ErrAssociationNotDeclared is returned when a schema node references an
	// association its parent model never declared
	ErrAssociationNotDeclared = errors.New("association not declared")

	// ErrThroughModelMissing is returned when a belongs-to-many association
	// has no resolvable join model at hydration time
	ErrThroughModelMissing = errors.New("belongs-to-many through model missing")

	// ErrSchemaAliasMissing is returned when a schema alias matches no column
	// prefix in the input rows
	ErrSchemaAliasMissing = errors.New("schema alias has no matching column prefix")

	// ErrPrimaryKeyColumnNotFound is returned when the expected identity
	// column is absent from the sampled row
	ErrPrimaryKeyColumnNotFound = errors.New("prefixed primary key column not found")

	// ErrRowShapeMismatch is returned when the input rows carry heterogeneous
	// key sets
	ErrRowShapeMismatch = errors.New("all flat rows must have the same properties")

	// ErrMissingAlias is returned when row grouping is requested with an
	// empty alias
	ErrMissingAlias = errors.New("model is missing an alias")
)
