package mutators

import "fmt"

// Composite group names in the built-in catalog.
const (
	GroupRemoveConditionals = "REMOVE_CONDITIONALS"
	GroupRemoveSwitch       = "REMOVE_SWITCH"
	GroupDefaults           = "DEFAULTS"
	GroupStronger           = "STRONGER"
	GroupAll                = "ALL"
)

// removeSwitchVariants is the number of generated switch-label
// permutation mutators; they are addressable only through the
// REMOVE_SWITCH group.
const removeSwitchVariants = 100

// NewRegistry builds the full built-in catalog. Composite groups are
// computed here, once, from entries registered before them.
func NewRegistry() *Registry {
	r := NewEmptyRegistry()
	add := func(id, description string) {
		r.Add(id, Mutator{ID: id, Description: description})
	}

	add("INVERT_NEGS", "inverts negation of integer and floating point numbers")
	add("RETURN_VALS", "mutates the return values of methods")
	add("INLINE_CONSTS", "mutates integer and floating point inline constants")
	add("MATH", "mutates binary arithmetic operations")
	add("VOID_METHOD_CALLS", "removes calls to void methods")
	add("NEGATE_CONDITIONALS", "negates conditionals")
	add("CONDITIONALS_BOUNDARY", "replaces relational operators with their boundary counterpart")
	add("INCREMENTS", "mutates increments, decrements and assignment increments of local variables")
	add("REMOVE_INCREMENTS", "removes local variable increments")
	add("NON_VOID_METHOD_CALLS", "removes calls to non void methods")
	add("CONSTRUCTOR_CALLS", "replaces constructor calls with null values")

	add("REMOVE_CONDITIONALS_EQ_IF", "removes equality conditionals, guarded statements always execute")
	add("REMOVE_CONDITIONALS_EQ_ELSE", "removes equality conditionals, guarded statements never execute")
	add("REMOVE_CONDITIONALS_ORD_IF", "removes ordering conditionals, guarded statements always execute")
	add("REMOVE_CONDITIONALS_ORD_ELSE", "removes ordering conditionals, guarded statements never execute")
	r.AddGroup(GroupRemoveConditionals, mustResolve(r, []string{
		"REMOVE_CONDITIONALS_EQ_IF",
		"REMOVE_CONDITIONALS_EQ_ELSE",
		"REMOVE_CONDITIONALS_ORD_IF",
		"REMOVE_CONDITIONALS_ORD_ELSE",
	}))

	add("EXPERIMENTAL_MEMBER_VARIABLE", "removes assignments to member variables")
	add("EXPERIMENTAL_SWITCH", "swaps labels in switch statements")
	add("EXPERIMENTAL_ARGUMENT_PROPAGATION", "replaces method call with one of its parameters of matching type")
	add("EXPERIMENTAL_NAKED_RECEIVER", "replaces method call with its receiver")

	add("OBBN", "mutates bitwise and/or operators")
	add("ROR", "replaces relational operators")
	add("AOD", "deletes first operand of arithmetic operations")
	add("AOD2", "deletes second operand of arithmetic operations")
	add("AOR", "replaces arithmetic operators")
	add("UOI", "inserts unary operators on variables")
	add("ABS", "replaces variables with their negation")
	add("CRCR", "mutates constants with boundary replacements")

	r.AddGroup(GroupRemoveSwitch, removeSwitchMutators())
	r.AddGroup(GroupDefaults, mustResolve(r, defaultNames()))
	r.AddGroup(GroupStronger, mustResolve(r, strongerNames()))
	r.AddGroup(GroupAll, mustResolve(r, r.Names()))

	return r
}

// defaultNames is the balanced default set: strength versus run cost.
func defaultNames() []string {
	return []string{
		"INVERT_NEGS",
		"RETURN_VALS",
		"MATH",
		"VOID_METHOD_CALLS",
		"NEGATE_CONDITIONALS",
		"CONDITIONALS_BOUNDARY",
		"INCREMENTS",
	}
}

func strongerNames() []string {
	return append(defaultNames(),
		"REMOVE_CONDITIONALS_EQ_ELSE",
		"EXPERIMENTAL_SWITCH",
	)
}

func removeSwitchMutators() []Mutator {
	out := make([]Mutator, 0, removeSwitchVariants)
	for i := 0; i < removeSwitchVariants; i++ {
		out = append(out, Mutator{
			ID:          fmt.Sprintf("REMOVE_SWITCH_%d", i),
			Description: fmt.Sprintf("replaces switch destination %d with the default destination", i),
		})
	}
	return out
}
