package units

import (
	"errors"
	"fmt"
	"strconv"
)

// Errors of operators on quantities.
var (
	ErrDimensionMismatch = errors.New("dimension mismatch")
	ErrCompoundUnit      = errors.New("quantities cannot be combined")
	ErrDivisionByZero    = errors.New("division by zero")
)

// Quantity is a number together with a unit. Quantities without a unit are
// plain numbers (scalars).
type Quantity struct {
	Value float64
	Unit  Unit
}

// Scalar creates a quantity without a unit.
func Scalar(v float64) Quantity {
	return Quantity{Value: v}
}

// IsScalar is true for quantities without a unit.
func (q Quantity) IsScalar() bool {
	return q.Unit.Symbol == ""
}

// Dimension returns the dimension of the quantity's unit, or "" for scalars.
func (q Quantity) Dimension() Dimension {
	return q.Unit.Dimension
}

func (q Quantity) String() string {
	v := strconv.FormatFloat(q.Value, 'g', 6, 64)
	if q.IsScalar() {
		return v
	}
	return v + " " + q.Unit.Symbol
}

// In converts q to unit u. u must be of the same dimension as q. Scalars may be
// converted to any unit; they simply take it on.
func (q Quantity) In(u Unit) (Quantity, error) {
	if q.IsScalar() {
		return Quantity{Value: q.Value, Unit: u}, nil
	}
	if q.Unit.Dimension != u.Dimension {
		return Quantity{}, fmt.Errorf("%w: cannot convert %s (%s) to %s (%s)", ErrDimensionMismatch,
			q.Unit.Symbol, q.Unit.Dimension, u.Symbol, u.Dimension)
	}
	if q.Unit.Symbol == u.Symbol {
		return q, nil
	}
	return Quantity{Value: q.Value * q.Unit.Factor / u.Factor, Unit: u}, nil
}

// Add adds two quantities of the same dimension. The result is in the unit of q.
func (q Quantity) Add(other Quantity) (Quantity, error) {
	o, err := q.commensurable(other)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{Value: q.Value + o.Value, Unit: q.Unit}, nil
}

// Sub subtracts two quantities of the same dimension. The result is in the unit of q.
func (q Quantity) Sub(other Quantity) (Quantity, error) {
	o, err := q.commensurable(other)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{Value: q.Value - o.Value, Unit: q.Unit}, nil
}

// commensurable converts other to q's unit.
func (q Quantity) commensurable(other Quantity) (Quantity, error) {
	if q.IsScalar() != other.IsScalar() || q.Unit.Dimension != other.Unit.Dimension {
		return Quantity{}, fmt.Errorf("%w: %s and %s", ErrDimensionMismatch, describe(q), describe(other))
	}
	if q.IsScalar() {
		return other, nil
	}
	return other.In(q.Unit)
}

// Mul multiplies two quantities, at most one of which may have a unit.
func (q Quantity) Mul(other Quantity) (Quantity, error) {
	switch {
	case q.IsScalar():
		return Quantity{Value: q.Value * other.Value, Unit: other.Unit}, nil
	case other.IsScalar():
		return Quantity{Value: q.Value * other.Value, Unit: q.Unit}, nil
	}
	return Quantity{}, fmt.Errorf("%w: %s * %s", ErrCompoundUnit, q.Unit, other.Unit)
}

// Div divides q by other, which must be a scalar.
func (q Quantity) Div(other Quantity) (Quantity, error) {
	if !other.IsScalar() {
		return Quantity{}, fmt.Errorf("%w: division by %s", ErrCompoundUnit, other.Unit)
	}
	if other.Value == 0 {
		return Quantity{}, ErrDivisionByZero
	}
	return Quantity{Value: q.Value / other.Value, Unit: q.Unit}, nil
}

func describe(q Quantity) string {
	if q.IsScalar() {
		return "number"
	}
	return fmt.Sprintf("%s (%s)", q.Unit.Symbol, q.Unit.Dimension)
}
