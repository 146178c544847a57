package sym

import (
	"math"
	"strconv"
	"strings"
)

// Expr is a symbolic expression. Expressions are immutable once built.
type Expr interface {
	String() string
	expr()
}

// Num is a numeric constant.
type Num float64

func (n Num) String() string { return strconv.FormatFloat(float64(n), 'g', -1, 64) }
func (Num) expr()            {}

// Symbol is a named constant parameter.
type Symbol struct {
	name string
}

// NewSymbol creates a symbol. Two symbols with the same name evaluate to the
// same entry of a Values table.
func NewSymbol(name string) *Symbol {
	return &Symbol{name: name}
}

// Symbols creates one symbol per name.
func Symbols(names ...string) []*Symbol {
	out := make([]*Symbol, len(names))
	for i, n := range names {
		out[i] = NewSymbol(n)
	}
	return out
}

func (s *Symbol) Name() string   { return s.name }
func (s *Symbol) String() string { return s.name }
func (*Symbol) expr()            {}

// Dynamic is a named function of time. Its derivatives are themselves
// Dynamic values with increasing Order, printed with trailing primes.
type Dynamic struct {
	name  string
	order int
	deriv *Dynamic
}

// NewDynamic creates a time-varying symbol.
func NewDynamic(name string) *Dynamic {
	return &Dynamic{name: name}
}

// Dynamics creates one dynamic symbol per name.
func Dynamics(names ...string) []*Dynamic {
	out := make([]*Dynamic, len(names))
	for i, n := range names {
		out[i] = NewDynamic(n)
	}
	return out
}

func (d *Dynamic) Name() string { return d.name }
func (d *Dynamic) Order() int   { return d.order }

// Diff returns the time derivative. Repeated calls return the same value.
func (d *Dynamic) Diff() *Dynamic {
	if d.deriv == nil {
		d.deriv = &Dynamic{name: d.name, order: d.order + 1}
	}
	return d.deriv
}

func (d *Dynamic) String() string { return d.name + strings.Repeat("'", d.order) }
func (*Dynamic) expr()            {}

// Sum is a sum of two or more terms.
type Sum struct {
	terms []Expr
	str   string
}

func (s *Sum) Terms() []Expr { return append([]Expr(nil), s.terms...) }
func (*Sum) expr()           {}

func (s *Sum) String() string {
	if s.str != "" {
		return s.str
	}
	var b strings.Builder
	for i, t := range s.terms {
		coef, rest := splitCoef(t)
		if n, ok := t.(Num); ok {
			coef, rest = float64(n), nil
		}
		neg := coef < 0
		switch {
		case i == 0 && neg:
			b.WriteString("-")
		case i > 0 && neg:
			b.WriteString(" - ")
		case i > 0:
			b.WriteString(" + ")
		}
		b.WriteString(termString(math.Abs(coef), rest))
	}
	s.str = b.String()
	return s.str
}

func termString(coef float64, rest Expr) string {
	if rest == nil {
		return Num(coef).String()
	}
	if coef == 1 {
		return rest.String()
	}
	return Num(coef).String() + "*" + factorString(rest)
}

// Product is a product of two or more factors. A numeric coefficient, when
// present, is always the first factor.
type Product struct {
	factors []Expr
	str     string
}

func (p *Product) Factors() []Expr { return append([]Expr(nil), p.factors...) }
func (*Product) expr()             {}

func (p *Product) String() string {
	if p.str != "" {
		return p.str
	}
	parts := make([]string, 0, len(p.factors))
	prefix := ""
	for i, f := range p.factors {
		if n, ok := f.(Num); ok && i == 0 && n == -1 {
			prefix = "-"
			continue
		}
		parts = append(parts, factorString(f))
	}
	p.str = prefix + strings.Join(parts, "*")
	return p.str
}

func factorString(e Expr) string {
	switch e.(type) {
	case *Sum:
		return "(" + e.String() + ")"
	case Num:
		if e.(Num) < 0 {
			return "(" + e.String() + ")"
		}
	}
	return e.String()
}

// Power is base raised to a constant exponent.
type Power struct {
	base Expr
	exp  float64
	str  string
}

func (p *Power) Base() Expr        { return p.base }
func (p *Power) Exponent() float64 { return p.exp }
func (*Power) expr()               {}

func (p *Power) String() string {
	if p.str != "" {
		return p.str
	}
	switch p.exp {
	case 0.5:
		p.str = "sqrt(" + p.base.String() + ")"
	default:
		exp := Num(p.exp).String()
		if p.exp < 0 {
			exp = "(" + exp + ")"
		}
		base := p.base.String()
		switch p.base.(type) {
		case *Sum, *Product, *Power:
			base = "(" + base + ")"
		}
		p.str = base + "^" + exp
	}
	return p.str
}

// Func is an elementary function applied to an argument.
type Func struct {
	name string
	arg  Expr
	str  string
}

func (f *Func) Name() string { return f.name }
func (f *Func) Arg() Expr    { return f.arg }
func (*Func) expr()          {}

func (f *Func) String() string {
	if f.str == "" {
		f.str = f.name + "(" + f.arg.String() + ")"
	}
	return f.str
}

// Add returns the sum of xs with constants folded and like terms collected.
// Nil arguments are ignored.
func Add(xs ...Expr) Expr {
	type group struct {
		coef float64
		rest Expr
	}
	var (
		constant float64
		order    []string
		groups   = make(map[string]*group)
	)
	var push func(e Expr)
	push = func(e Expr) {
		switch v := e.(type) {
		case nil:
		case Num:
			constant += float64(v)
		case *Sum:
			for _, t := range v.terms {
				push(t)
			}
		default:
			coef, rest := splitCoef(v)
			key := rest.String()
			g, ok := groups[key]
			if !ok {
				g = &group{rest: rest}
				groups[key] = g
				order = append(order, key)
			}
			g.coef += coef
		}
	}
	for _, x := range xs {
		push(x)
	}

	terms := make([]Expr, 0, len(order)+1)
	for _, key := range order {
		g := groups[key]
		if g.coef == 0 {
			continue
		}
		if g.coef == 1 {
			terms = append(terms, g.rest)
			continue
		}
		terms = append(terms, Mul(Num(g.coef), g.rest))
	}
	if constant != 0 {
		terms = append(terms, Num(constant))
	}
	switch len(terms) {
	case 0:
		return Num(0)
	case 1:
		return terms[0]
	}
	return &Sum{terms: terms}
}

// splitCoef separates the numeric coefficient of a product.
func splitCoef(e Expr) (float64, Expr) {
	p, ok := e.(*Product)
	if !ok {
		return 1, e
	}
	n, ok := p.factors[0].(Num)
	if !ok {
		return 1, e
	}
	rest := p.factors[1:]
	if len(rest) == 1 {
		return float64(n), rest[0]
	}
	return float64(n), &Product{factors: rest}
}

// Mul returns the product of xs with constants folded and equal bases
// combined into powers. Nil arguments are ignored.
func Mul(xs ...Expr) Expr {
	type group struct {
		base Expr
		exp  float64
	}
	var (
		coef   = 1.0
		order  []string
		groups = make(map[string]*group)
	)
	var push func(e Expr)
	push = func(e Expr) {
		var base Expr
		exp := 1.0
		switch v := e.(type) {
		case nil:
			return
		case Num:
			coef *= float64(v)
			return
		case *Product:
			for _, f := range v.factors {
				push(f)
			}
			return
		case *Power:
			base, exp = v.base, v.exp
		default:
			base = v
		}
		key := base.String()
		g, ok := groups[key]
		if !ok {
			g = &group{base: base}
			groups[key] = g
			order = append(order, key)
		}
		g.exp += exp
	}
	for _, x := range xs {
		push(x)
	}
	if coef == 0 {
		return Num(0)
	}

	factors := make([]Expr, 0, len(order)+1)
	if coef != 1 {
		factors = append(factors, Num(coef))
	}
	for _, key := range order {
		g := groups[key]
		if g.exp == 0 {
			continue
		}
		factors = append(factors, Pow(g.base, g.exp))
	}
	switch len(factors) {
	case 0:
		return Num(1)
	case 1:
		return factors[0]
	}
	return &Product{factors: factors}
}

// Pow raises base to a constant exponent.
func Pow(base Expr, exp float64) Expr {
	switch {
	case exp == 0:
		return Num(1)
	case exp == 1:
		return base
	}
	switch b := base.(type) {
	case Num:
		return Num(math.Pow(float64(b), exp))
	case *Power:
		if exp == math.Trunc(exp) {
			return Pow(b.base, b.exp*exp)
		}
	}
	return &Power{base: base, exp: exp}
}

func Neg(x Expr) Expr    { return Mul(Num(-1), x) }
func Sub(a, b Expr) Expr { return Add(a, Neg(b)) }
func Div(a, b Expr) Expr { return Mul(a, Pow(b, -1)) }
func Sqrt(x Expr) Expr   { return Pow(x, 0.5) }
func Square(x Expr) Expr { return Pow(x, 2) }

// IsZero reports whether x is structurally the constant zero.
func IsZero(x Expr) bool {
	n, ok := x.(Num)
	return ok && n == 0
}

// Sin returns sin(x), folded when x is numeric.
func Sin(x Expr) Expr {
	if n, ok := x.(Num); ok {
		return Num(math.Sin(float64(n)))
	}
	return &Func{name: "sin", arg: x}
}

// Cos returns cos(x), folded when x is numeric.
func Cos(x Expr) Expr {
	if n, ok := x.(Num); ok {
		return Num(math.Cos(float64(n)))
	}
	return &Func{name: "cos", arg: x}
}
