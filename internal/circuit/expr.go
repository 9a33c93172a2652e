package circuit

// Expr is an affine combination of named parameters used as a gate angle:
// value = Const + sum(Coeff[name] * resolver[name]).
//
// A single gate angle may therefore fan out to several named parameters,
// each with its own chain-rule coefficient.
type Expr struct {
	Const float64
	Coeff map[string]float64
}

// ConstExpr returns an expression with a fixed value and no parameters.
func ConstExpr(v float64) Expr {
	return Expr{Const: v}
}

// ParamExpr returns an expression equal to the named parameter.
func ParamExpr(name string) Expr {
	return Expr{Coeff: map[string]float64{name: 1}}
}

// ScaledParamExpr returns coeff times the named parameter.
func ScaledParamExpr(name string, coeff float64) Expr {
	return Expr{Coeff: map[string]float64{name: coeff}}
}

// Value resolves the expression against pr.
func (e Expr) Value(pr *ParameterResolver) float64 {
	v := e.Const
	for name, c := range e.Coeff {
		v += c * pr.Value(name)
	}
	return v
}

// Trainable reports whether any parameter of the expression requires a
// gradient under pr.
func (e Expr) Trainable(pr *ParameterResolver) bool {
	for name := range e.Coeff {
		if pr.RequiresGrad(name) {
			return true
		}
	}
	return false
}

// Negated returns the expression for the negated angle, used when building
// adjoint circuits.
func (e Expr) Negated() Expr {
	out := Expr{Const: -e.Const}
	if len(e.Coeff) > 0 {
		out.Coeff = make(map[string]float64, len(e.Coeff))
		for name, c := range e.Coeff {
			out.Coeff[name] = -c
		}
	}
	return out
}

// IsParameterized reports whether the expression references any parameter.
func (e Expr) IsParameterized() bool {
	return len(e.Coeff) > 0
}
