// SPDX-License-Identifier: MPL-2.0

package nodemod

import "fmt"

const (
	// DepOptional marks a package reached only through optionalDependencies.
	DepOptional DepType = iota
	// DepDevOptional marks an optional dependency of a development dependency.
	DepDevOptional
	// DepDev marks a package reached only through the root's devDependencies.
	DepDev
	// DepProd marks a package required at runtime.
	DepProd
	// DepRoot marks the package the walk started from.
	DepRoot
)

// DepType is the relationship by which a package was reached.
// Values are ordered by strength, weakest first.
type DepType int

// String returns the lowercase name of the dependency type.
func (d DepType) String() string {
	switch d {
	case DepOptional:
		return "optional"
	case DepDevOptional:
		return "dev-optional"
	case DepDev:
		return "dev"
	case DepProd:
		return "prod"
	case DepRoot:
		return "root"
	default:
		return fmt.Sprintf("DepType(%d)", int(d))
	}
}

// Greater reports whether d outranks other.
func (d DepType) Greater(other DepType) bool {
	return d > other
}

// IsOptional reports whether a package of this type may be missing from an install.
func (d DepType) IsOptional() bool {
	return d == DepOptional || d == DepDevOptional
}

// MarshalText implements encoding.TextMarshaler.
func (d DepType) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *DepType) UnmarshalText(text []byte) error {
	parsed, err := ParseDepType(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDepType converts a name produced by [DepType.String] back to a DepType.
func ParseDepType(s string) (DepType, error) {
	switch s {
	case "optional":
		return DepOptional, nil
	case "dev-optional":
		return DepDevOptional, nil
	case "dev":
		return DepDev, nil
	case "prod":
		return DepProd, nil
	case "root":
		return DepRoot, nil
	default:
		return 0, &InvalidDepTypeError{Value: s}
	}
}

// ChildDepType returns the type a dependency inherits when it is reached from a
// package of type parent through an edge of type edge (DepProd, DepOptional or DepDev).
//
// The root passes the edge type through unchanged. Below the root the weaker of
// the two wins, except that an optional edge under a dev package yields DepDevOptional.
func ChildDepType(parent, edge DepType) DepType {
	if edge == DepRoot {
		panic("nodemod: a dependency edge cannot be of type root")
	}

	switch parent {
	case DepRoot:
		return edge
	case DepProd:
		return edge
	case DepDev:
		if edge == DepOptional {
			return DepDevOptional
		}
		return DepDev
	case DepDevOptional:
		return DepDevOptional
	default:
		return DepOptional
	}
}
