package pack

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer/stateful"
)

// Relation tags are needed for the participle parser package.
//
//nolint
type Relation struct {
	Op      string `parser:"@( \">\" \"=\" | \"<\" \"=\" | \"=\" \"=\" | \"=\" | \">\" | \"<\" )"`
	Version string `parser:"@Atom"`
}

// Constraint is a single dependency constraint: a package name with an
// optional relational operator and version. Operator and version are both
// present or both absent.
//
//nolint
type Constraint struct {
	Name     string    `parser:"@Atom"`
	Relation *Relation `parser:"@@?"`
}

// RelationKind is the dependency category a constraint belongs to.
type RelationKind int

const (
	KindRequires RelationKind = iota
	KindProvides
	KindConflicts
	KindObsoletes
	KindRecommends
	KindSuggests
	KindSupplements
	KindEnhances
)

// kindTags holds the tag triplet of one relation-kind plus the sense bit
// identifying the kind in the flags array.
type kindTags struct {
	names    int
	versions int
	flags    int
	sense    int32
}

var tagsByKind = map[RelationKind]kindTags{
	KindRequires:    {tagRequireName, tagRequireVersion, tagRequireFlags, rpmSenseFindRequires},
	KindProvides:    {tagProvideName, tagProvideVersion, tagProvideFlags, rpmSenseFindProvides},
	KindConflicts:   {tagConflictName, tagConflictVersion, tagConflictFlags, 0},
	KindObsoletes:   {tagObsoleteName, tagObsoleteVersion, tagObsoleteFlags, 0},
	KindRecommends:  {tagRecommendName, tagRecommendVersion, tagRecommendFlags, rpmSenseMissingOK},
	KindSuggests:    {tagSuggestName, tagSuggestVersion, tagSuggestFlags, rpmSenseMissingOK},
	KindSupplements: {tagSupplementName, tagSupplementVersion, tagSupplementFlags, rpmSenseMissingOK},
	KindEnhances:    {tagEnhanceName, tagEnhanceVersion, tagEnhanceFlags, rpmSenseMissingOK},
}

func getLexer() *stateful.Definition {
	return stateful.MustSimple([]stateful.Rule{
		{
			Name:    "Atom",
			Pattern: `[^<>=\s]+`,
			Action:  nil,
		},
		{
			Name:    "Op",
			Pattern: `[<>=]`,
			Action:  nil,
		},
		{
			Name:    "Whitespace",
			Pattern: `[ \t]+`,
			Action:  nil,
		},
	})
}

var constraintParser = participle.MustBuild(
	&Constraint{},
	participle.Lexer(getLexer()),
	participle.Elide("Whitespace"),
)

// ParseConstraint parses a dependency string of the form
// "<name> [<op> <version>]". The accepted operators are <, <=, =, ==, >=
// and >; a bare name means the dependency is unconstrained.
func ParseConstraint(raw string) (Constraint, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Constraint{}, &ParseError{Input: raw, Msg: "empty constraint"}
	}

	parsed := Constraint{}
	if err := constraintParser.ParseString("", trimmed, &parsed); err != nil {
		return Constraint{}, &ParseError{Input: raw, Msg: err.Error()}
	}

	return parsed, nil
}

// ParseConstraints parses a slice of dependency strings, skipping empty
// lines.
func ParseConstraints(rawDeps []string) ([]Constraint, error) {
	var constraints []Constraint
	for _, raw := range rawDeps {
		if strings.TrimSpace(raw) == "" {
			continue
		}

		parsed, err := ParseConstraint(raw)
		if err != nil {
			return nil, err
		}
		constraints = append(constraints, parsed)
	}

	return constraints, nil
}

// relationFlags returns the sense bits for the string representation of a
// relational operator.
func relationFlags(op string) int32 {
	switch op {
	case ">":
		return rpmSenseGreater
	case ">=":
		return rpmSenseGreater | rpmSenseEqual
	case "<":
		return rpmSenseLess
	case "<=":
		return rpmSenseLess | rpmSenseEqual
	case "=", "==":
		return rpmSenseEqual
	}

	return 0
}

// encodeConstraints flattens constraints of one relation-kind into the
// three index-correlated tag arrays Names, Versions and Flags.
func encodeConstraints(kind RelationKind, constraints []Constraint) (names []string,
	versions []string, flags []int32,
) {
	sense := tagsByKind[kind].sense

	for _, c := range constraints {
		names = append(names, c.Name)
		if c.Relation != nil {
			versions = append(versions, c.Relation.Version)
			flags = append(flags, relationFlags(c.Relation.Op)|sense)
		} else {
			versions = append(versions, "")
			flags = append(flags, sense)
		}
	}

	return names, versions, flags
}

// addDependencyTags writes the tag triplet of one relation-kind to the
// header tag set. Nothing is emitted for an empty constraint set.
func addDependencyTags(header *rpmTagSetType, kind RelationKind, constraints []Constraint) {
	if len(constraints) == 0 {
		return
	}

	names, versions, flags := encodeConstraints(kind, constraints)
	kt := tagsByKind[kind]

	header.addTags([]rpmTagType{
		{ID: kt.names, Type: rpmTypeStringArray, Value: names},
		{ID: kt.flags, Type: rpmTypeInt32, Value: flags},
		{ID: kt.versions, Type: rpmTypeStringArray, Value: versions},
	}...)
}
