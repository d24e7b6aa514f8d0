// Package guard implements the constructor-guard pattern used by value
// objects, commands and queries throughout the application. Embedding a
// ConstructorGuard in a struct makes its zero value detectably invalid, so
// code can reject objects that were not created through their designated
// constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when a nil validation
// error is supplied, so that validation of a zero-value object always fails
// with a meaningful message.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as properly constructed. The zero value
// of the guard is "not constructed"; NewConstructorGuard flips the flag.
//
// Example:
//
//	type Package struct {
//	    weight int
//	    guard  guard.ConstructorGuard
//	}
//
//	func NewPackage(weight int) (Package, error) {
//	    if weight <= 0 {
//	        return Package{}, errors.New("weight must be positive")
//	    }
//	    return Package{weight: weight, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (p Package) Validate() error {
//	    return p.guard.Validate(ErrPackageIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard marking the enclosing object as
// properly constructed. Call it in every constructor.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a properly constructed object. For a zero-value
// guard it returns validationError, or ErrDefaultConstructorGuard when
// validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
