package types

import "fmt"

// Category identifies one class of registration call in the decompiled text
type Category string

const (
	CategoryGlobalFunction    Category = "global_function"
	CategoryTypeMethod        Category = "type_method"
	CategoryGlobalValue       Category = "global_value"
	CategoryDatablockProperty Category = "datablock_property"
)

// Categories lists all entity categories in scan order
var Categories = []Category{
	CategoryGlobalFunction,
	CategoryTypeMethod,
	CategoryGlobalValue,
	CategoryDatablockProperty,
}

// UnresolvedPropertyType marks a datablock property whose value type was
// never inferred from the registration call. Type inference for properties
// is a known gap carried over from the original reference build, not a
// default to be filled in later by the scanner.
const UnresolvedPropertyType = "unresolved"

// EngineComponent holds the attributes common to every entity pulled from
// the pseudo source code.
type EngineComponent struct {
	// Name is the unescaped, trimmed literal text between the quotes of
	// the registration call.
	Name string

	// Address is a bare uppercase hexadecimal string with no prefix.
	// Empty when the registration call carries no address field.
	Address string

	// TypeName is the owning object type for bound methods, or the
	// unresolved marker for datablock properties. Empty otherwise.
	TypeName string

	// Description is the usage text registered alongside the entity,
	// with any neutralized semicolons restored.
	Description string
}

// Function represents a callable engine function exposed to the script
// runtime. When TypeName is set it is a method bound to an object type,
// otherwise a global function.
type Function struct {
	EngineComponent

	MinArgs int
	MaxArgs int
}

// Validate checks the function invariants enforced at extraction time
func (f *Function) Validate() error {
	if f.Name == "" {
		return ErrEmptyName
	}
	if f.MinArgs > f.MaxArgs {
		return fmt.Errorf("min args %d exceeds max args %d", f.MinArgs, f.MaxArgs)
	}
	return nil
}

// IsMethod returns true if the function is bound to an object type
func (f *Function) IsMethod() bool {
	return f.TypeName != ""
}

// GlobalVariable represents a process-wide named value exposed by the
// runtime. TypeCode is the small integer primitive-type code from the
// registration call; its human-readable label lives in configuration and
// is resolved by the renderer, not here.
type GlobalVariable struct {
	EngineComponent

	TypeCode int
}

// Property is a tunable field of a datablock type. It is owned exclusively
// by its parent Datablock.
type Property struct {
	EngineComponent
}

// Datablock represents a simulation record type used to synchronize
// tunable parameters across the network. It describes the type itself,
// never a specific instance.
type Datablock struct {
	Name string

	// Properties is keyed by property name; keys are unique within one
	// datablock and insertion order is irrelevant.
	Properties map[string]Property
}

// NewDatablock creates an empty datablock for a resolved type name
func NewDatablock(name string) *Datablock {
	return &Datablock{
		Name:       name,
		Properties: make(map[string]Property),
	}
}

// SetProperty records a property under its name, replacing any previous
// registration of the same name.
func (d *Datablock) SetProperty(p Property) {
	d.Properties[p.Name] = p
}
