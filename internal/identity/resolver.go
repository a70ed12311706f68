// Package identity computes stable, human-readable identifiers for test units.
package identity

import (
	"fmt"

	"github.com/fjglira/tcbridge/internal/domain"
)

// maxUnwrapDepth bounds how far nested real-test references are followed.
const maxUnwrapDepth = 16

// DefaultDocTestKinds lists the type names whose descriptions are never used.
// Besides DocTest it names the doctest case types of foreign hosts, which
// report them through domain.TypeNamer.
var DefaultDocTestKinds = []string{
	"doctest.DocTestCase",
	"nose.plugins.doctests.DocTestCase",
	domain.KindOf(&domain.DocTest{}),
}

// Resolver maps test units to their TestIdentity.
type Resolver struct {
	docTestKinds map[string]struct{}
}

// NewResolver creates a Resolver treating the given type names as doc-test kinds.
// A nil slice selects DefaultDocTestKinds.
func NewResolver(docTestKinds []string) *Resolver {
	if docTestKinds == nil {
		docTestKinds = DefaultDocTestKinds
	}
	kinds := make(map[string]struct{}, len(docTestKinds))
	for _, k := range docTestKinds {
		kinds[k] = struct{}{}
	}
	return &Resolver{docTestKinds: kinds}
}

var defaultResolver = NewResolver(nil)

// Resolve computes the identity of unit with the default doc-test kinds.
func Resolve(unit any) string {
	return defaultResolver.Resolve(unit)
}

// Resolve returns unit unchanged when it is a string. For a TestUnit it returns
// the raw id, or "<id> (<description>)" when the unit carries a description that
// differs from the id and the innermost real test is not a doc-test kind.
func (r *Resolver) Resolve(unit any) string {
	switch u := unit.(type) {
	case nil:
		return ""
	case string:
		return u
	case domain.TestUnit:
		id := safeID(u)
		if r.IsDocTest(Unwrap(u)) {
			return id
		}
		desc := safeDescription(u)
		if desc != "" && desc != id {
			return fmt.Sprintf("%s (%s)", id, desc)
		}
		return id
	default:
		return fmt.Sprint(u)
	}
}

// IsDocTest reports whether unit's type name is a configured doc-test kind.
func (r *Resolver) IsDocTest(unit domain.TestUnit) bool {
	_, ok := r.docTestKinds[domain.KindOf(unit)]
	return ok
}

// Unwrap follows RealTest references down to the innermost real test.
func Unwrap(unit domain.TestUnit) domain.TestUnit {
	current := unit
	for i := 0; i < maxUnwrapDepth; i++ {
		w, ok := current.(domain.Wrapper)
		if !ok {
			break
		}
		next := safeRealTest(w)
		if next == nil {
			break
		}
		current = next
	}
	return current
}

func safeID(u domain.TestUnit) (id string) {
	defer func() {
		if recover() != nil {
			id = ""
		}
	}()
	return u.ID()
}

func safeDescription(u domain.TestUnit) (desc string) {
	defer func() {
		if recover() != nil {
			desc = ""
		}
	}()
	if d, ok := u.(domain.Describer); ok {
		return d.ShortDescription()
	}
	return ""
}

func safeRealTest(w domain.Wrapper) (real domain.TestUnit) {
	defer func() {
		if recover() != nil {
			real = nil
		}
	}()
	return w.RealTest()
}
