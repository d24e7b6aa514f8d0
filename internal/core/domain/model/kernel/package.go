package kernel

import (
	"errors"
	"fmt"

	"logistic/internal/pkg/errs"
	"logistic/internal/pkg/guard"
)

const (
	// MaxPackageWeightGrams is the heaviest parcel any configured carrier accepts.
	MaxPackageWeightGrams = 1_000_000
	// MaxPackageDimensionMm is the longest side any configured carrier accepts.
	MaxPackageDimensionMm = 13_600
)

// ErrPackageIsNotConstructed is returned when attempting to use an improperly
// initialized Package. Packages must be created via the NewPackage constructor.
var ErrPackageIsNotConstructed = errs.NewValueIsRequiredError(
	"package must be created via NewPackage constructor")

// Package represents one parcel in a delivery request: weight in grams and
// length/width/height in millimetres. Package is an immutable value object;
// all four values are strictly positive for properly constructed instances.
// The zero value is invalid and fails validation - use the constructor.
//
// Example:
//
//	p, err := kernel.NewPackage(5000, 300, 200, 150)
//	if err != nil {
//	    // handle validation error
//	}
//	fmt.Printf("%.1f kg", p.WeightKg()) // Output: 5.0 kg
type Package struct { //nolint:recvcheck //using for validation
	weight Grams
	length Millimetres
	width  Millimetres
	height Millimetres

	guard guard.ConstructorGuard
}

// Grams is a parcel weight in grams.
type Grams int

// Millimetres is a parcel dimension in millimetres.
type Millimetres int

// NewPackage creates a Package from a weight in grams and three dimensions in
// millimetres. Every value must be positive and within the carrier-wide
// maximums. Returns a validation error otherwise.
func NewPackage(weight Grams, length, width, height Millimetres) (Package, error) {
	p := Package{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setWeight(weight),
		p.setLength(length),
		p.setWidth(width),
		p.setHeight(height),
	); err != nil {
		return Package{}, err
	}

	return p, nil
}

// Validate checks that the Package was created through its constructor.
func (p Package) Validate() error {
	return p.guard.Validate(ErrPackageIsNotConstructed)
}

// Weight returns the parcel weight in grams.
func (p Package) Weight() Grams {
	return p.weight
}

// Length returns the parcel length in millimetres.
func (p Package) Length() Millimetres {
	return p.length
}

// Width returns the parcel width in millimetres.
func (p Package) Width() Millimetres {
	return p.width
}

// Height returns the parcel height in millimetres.
func (p Package) Height() Millimetres {
	return p.height
}

// WeightKg returns the weight converted to kilograms, the unit every
// configured carrier API expects.
func (p Package) WeightKg() float64 {
	return float64(p.weight) / 1000
}

// LengthMetres returns the length converted to metres.
func (p Package) LengthMetres() float64 {
	return float64(p.length) / 1000
}

// WidthMetres returns the width converted to metres.
func (p Package) WidthMetres() float64 {
	return float64(p.width) / 1000
}

// HeightMetres returns the height converted to metres.
func (p Package) HeightMetres() float64 {
	return float64(p.height) / 1000
}

// VolumeCubicMetres returns the parcel volume in cubic metres.
func (p Package) VolumeCubicMetres() float64 {
	return p.LengthMetres() * p.WidthMetres() * p.HeightMetres()
}

// String returns a human-readable representation useful for logging.
func (p Package) String() string {
	return fmt.Sprintf("Package(%dg %dx%dx%dmm)", p.weight, p.length, p.width, p.height)
}

func (p *Package) setWeight(weight Grams) error {
	if weight <= 0 || weight > MaxPackageWeightGrams {
		return errs.NewValueIsOutOfRangeError("weight", weight, 1, MaxPackageWeightGrams)
	}

	p.weight = weight
	return nil
}

func (p *Package) setLength(length Millimetres) error {
	if length <= 0 || length > MaxPackageDimensionMm {
		return errs.NewValueIsOutOfRangeError("length", length, 1, MaxPackageDimensionMm)
	}

	p.length = length
	return nil
}

func (p *Package) setWidth(width Millimetres) error {
	if width <= 0 || width > MaxPackageDimensionMm {
		return errs.NewValueIsOutOfRangeError("width", width, 1, MaxPackageDimensionMm)
	}

	p.width = width
	return nil
}

func (p *Package) setHeight(height Millimetres) error {
	if height <= 0 || height > MaxPackageDimensionMm {
		return errs.NewValueIsOutOfRangeError("height", height, 1, MaxPackageDimensionMm)
	}

	p.height = height
	return nil
}
