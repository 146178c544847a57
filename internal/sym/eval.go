package sym

import (
	"fmt"
	"math"
	"math/rand"
)

// Values maps the printed name of a symbol or dynamic symbol (derivatives
// included, e.g. "q1'") to a number.
type Values map[string]float64

// Set binds e, which should be a Symbol or Dynamic, to val.
func (v Values) Set(e Expr, val float64) { v[e.String()] = val }

// Merge copies every entry of other into v, overwriting existing keys.
func (v Values) Merge(other Values) {
	for k, val := range other {
		v[k] = val
	}
}

// Dt returns the total time derivative of e.
func Dt(e Expr) Expr {
	switch v := e.(type) {
	case Num, *Symbol:
		return Num(0)
	case *Dynamic:
		return v.Diff()
	case *Sum:
		terms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			terms[i] = Dt(t)
		}
		return Add(terms...)
	case *Product:
		terms := make([]Expr, 0, len(v.factors))
		for i, f := range v.factors {
			df := Dt(f)
			if IsZero(df) {
				continue
			}
			factors := make([]Expr, 0, len(v.factors))
			factors = append(factors, v.factors[:i]...)
			factors = append(factors, df)
			factors = append(factors, v.factors[i+1:]...)
			terms = append(terms, Mul(factors...))
		}
		return Add(terms...)
	case *Power:
		return Mul(Num(v.exp), Pow(v.base, v.exp-1), Dt(v.base))
	case *Func:
		switch v.name {
		case "sin":
			return Mul(Cos(v.arg), Dt(v.arg))
		case "cos":
			return Mul(Num(-1), Sin(v.arg), Dt(v.arg))
		}
	}
	panic(fmt.Sprintf("sym: cannot differentiate %T", e))
}

// Eval evaluates e numerically.
func Eval(e Expr, vals Values) (float64, error) {
	switch v := e.(type) {
	case Num:
		return float64(v), nil
	case *Symbol, *Dynamic:
		val, ok := vals[v.String()]
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrUnboundSymbol, v.String())
		}
		return val, nil
	case *Sum:
		total := 0.0
		for _, t := range v.terms {
			x, err := Eval(t, vals)
			if err != nil {
				return 0, err
			}
			total += x
		}
		return total, nil
	case *Product:
		total := 1.0
		for _, f := range v.factors {
			x, err := Eval(f, vals)
			if err != nil {
				return 0, err
			}
			total *= x
		}
		return total, nil
	case *Power:
		x, err := Eval(v.base, vals)
		if err != nil {
			return 0, err
		}
		return math.Pow(x, v.exp), nil
	case *Func:
		x, err := Eval(v.arg, vals)
		if err != nil {
			return 0, err
		}
		switch v.name {
		case "sin":
			return math.Sin(x), nil
		case "cos":
			return math.Cos(x), nil
		}
	}
	return 0, fmt.Errorf("sym: cannot evaluate %T", e)
}

// Free returns the symbols and dynamic symbols e depends on, in order of
// first appearance.
func Free(e Expr) []Expr {
	seen := make(map[string]bool)
	var out []Expr
	var walk func(Expr)
	walk = func(e Expr) {
		switch v := e.(type) {
		case *Symbol, *Dynamic:
			if !seen[v.String()] {
				seen[v.String()] = true
				out = append(out, v)
			}
		case *Sum:
			for _, t := range v.terms {
				walk(t)
			}
		case *Product:
			for _, f := range v.factors {
				walk(f)
			}
		case *Power:
			walk(v.base)
		case *Func:
			walk(v.arg)
		}
	}
	walk(e)
	return out
}

// Subs replaces atoms of e whose printed name is a key of repl.
func Subs(e Expr, repl map[string]Expr) Expr {
	switch v := e.(type) {
	case *Symbol, *Dynamic:
		if r, ok := repl[v.String()]; ok {
			return r
		}
		return v
	case *Sum:
		terms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			terms[i] = Subs(t, repl)
		}
		return Add(terms...)
	case *Product:
		factors := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			factors[i] = Subs(f, repl)
		}
		return Mul(factors...)
	case *Power:
		return Pow(Subs(v.base, repl), v.exp)
	case *Func:
		arg := Subs(v.arg, repl)
		if v.name == "sin" {
			return Sin(arg)
		}
		return Cos(arg)
	}
	return e
}

const zeroCheckSeed = 20240613

// RandomValues draws a value in [0, 1) for every free symbol of the given
// expressions.
func RandomValues(rng *rand.Rand, exprs ...Expr) Values {
	vals := make(Values)
	for _, e := range exprs {
		for _, f := range Free(e) {
			if _, ok := vals[f.String()]; !ok {
				vals[f.String()] = rng.Float64()
			}
		}
	}
	return vals
}

// CheckZero reports whether e evaluates to zero (within atol) for n random
// assignments of its free symbols. False negatives are possible when the
// random values land on a root; false positives are unlikely.
func CheckZero(e Expr, n int, atol float64) bool {
	if c, ok := e.(Num); ok {
		return math.Abs(float64(c)) <= atol
	}
	rng := rand.New(rand.NewSource(zeroCheckSeed))
	for i := 0; i < n; i++ {
		x, err := Eval(e, RandomValues(rng, e))
		if err != nil || math.IsNaN(x) || math.Abs(x) > atol {
			return false
		}
	}
	return true
}
