// Package modelfile loads model, association, and schema-tree definitions
// from YAML files into the registry and node types used by the engine.
package modelfile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dphaener/hydrate/hydrate"
	"github.com/dphaener/hydrate/schema"
)

// File is the top-level model definition document.
type File struct {
	DefaultPrimaryKey string     `yaml:"default_primary_key"`
	ForeignKeySuffix  string     `yaml:"foreign_key_suffix"`
	Models            []ModelDef `yaml:"models"`
}

// ModelDef declares one model and its outgoing associations.
type ModelDef struct {
	Name         string           `yaml:"name"`
	Attributes   []string         `yaml:"attributes"`
	PrimaryKey   string           `yaml:"primary_key"`
	Associations []AssociationDef `yaml:"associations"`
}

// AssociationDef declares one association edge.
type AssociationDef struct {
	Kind       string      `yaml:"kind"`
	Target     string      `yaml:"target"`
	As         string      `yaml:"as"`
	SourceKey  string      `yaml:"source_key"`
	TargetKey  string      `yaml:"target_key"`
	ForeignKey string      `yaml:"foreign_key"`
	Through    *ThroughDef `yaml:"through"`
}

// ThroughDef declares the join model of a belongs-to-many association.
type ThroughDef struct {
	Model     string `yaml:"model"`
	Alias     string `yaml:"alias"`
	ParentKey string `yaml:"parent_key"`
	ChildKey  string `yaml:"child_key"`
}

// SchemaDef declares one node of the schema tree.
type SchemaDef struct {
	Model    string      `yaml:"model"`
	Alias    string      `yaml:"alias"`
	Children []SchemaDef `yaml:"children"`
}

// LoadRegistry reads a model definition file and builds a registry from it.
func LoadRegistry(path string) (*schema.Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseRegistry(data)
}

// ParseRegistry builds a registry from YAML model definitions. Models are
// registered before any association so definition order does not matter.
func ParseRegistry(data []byte) (*schema.Registry, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing model definitions: %w", err)
	}

	var opts []schema.Option
	if file.DefaultPrimaryKey != "" {
		opts = append(opts, schema.WithDefaultPrimaryKey(file.DefaultPrimaryKey))
	}
	if file.ForeignKeySuffix != "" {
		opts = append(opts, schema.WithForeignKeySuffix(file.ForeignKeySuffix))
	}
	reg := schema.NewRegistry(opts...)

	for _, def := range file.Models {
		m := &schema.Model{
			Name:       def.Name,
			Attributes: def.Attributes,
			PrimaryKey: def.PrimaryKey,
		}
		if err := reg.RegisterModel(m); err != nil {
			return nil, err
		}
	}
	for _, def := range file.Models {
		for _, assocDef := range def.Associations {
			assoc, err := buildAssociation(def.Name, assocDef)
			if err != nil {
				return nil, err
			}
			if err := reg.RegisterAssociation(assoc); err != nil {
				return nil, err
			}
		}
	}
	return reg, nil
}

// LoadSchema reads a schema tree definition file.
func LoadSchema(path string) (*hydrate.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSchema(data)
}

// ParseSchema builds a schema tree from a YAML definition.
func ParseSchema(data []byte) (*hydrate.Node, error) {
	var def SchemaDef
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parsing schema tree: %w", err)
	}
	if def.Model == "" {
		return nil, fmt.Errorf("schema tree root has no model")
	}
	return buildNode(def), nil
}

func buildAssociation(source string, def AssociationDef) (*schema.Association, error) {
	kind, err := schema.ParseAssociationKind(def.Kind)
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", source, err)
	}
	assoc := &schema.Association{
		As:         def.As,
		Kind:       kind,
		Source:     source,
		Target:     def.Target,
		SourceKey:  def.SourceKey,
		TargetKey:  def.TargetKey,
		ForeignKey: def.ForeignKey,
	}
	if def.Through != nil {
		assoc.Through = &schema.Through{
			Model:     def.Through.Model,
			Alias:     def.Through.Alias,
			ParentKey: def.Through.ParentKey,
			ChildKey:  def.Through.ChildKey,
		}
	}
	return assoc, nil
}

func buildNode(def SchemaDef) *hydrate.Node {
	node := &hydrate.Node{
		Model: def.Model,
		Alias: def.Alias,
	}
	for _, child := range def.Children {
		node.Children = append(node.Children, buildNode(child))
	}
	return node
}
