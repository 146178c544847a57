package mechanics

import (
	"fmt"
)

// Point is a location related to other points by position vectors.
type Point struct {
	name  string
	links []link
	vel   map[*Frame]Vector
}

type link struct {
	other *Point
	pos   Vector
}

// NewPoint creates a point with no position or velocity information.
func NewPoint(name string) *Point {
	return &Point{name: name, vel: make(map[*Frame]Vector)}
}

func (p *Point) Name() string   { return p.name }
func (p *Point) String() string { return p.name }

// SetPos sets the position of p relative to other, replacing an earlier
// relation between the two.
func (p *Point) SetPos(other *Point, pos Vector) {
	p.setLink(other, pos)
	other.setLink(p, pos.Neg())
}

func (p *Point) setLink(other *Point, pos Vector) {
	for i := range p.links {
		if p.links[i].other == other {
			p.links[i].pos = pos
			return
		}
	}
	p.links = append(p.links, link{other: other, pos: pos})
}

// PosFrom returns the position of p relative to other.
func (p *Point) PosFrom(other *Point) (Vector, error) {
	if p == other {
		return Vector{}, nil
	}
	path := p.path(other)
	if path == nil {
		return Vector{}, fmt.Errorf("%w: %s and %s", ErrUnrelatedPoints, p.name, other.name)
	}
	var pos Vector
	for _, l := range path {
		pos = pos.Add(l.pos)
	}
	return pos, nil
}

// path returns the links walked from p to target along a shortest route. A
// link stored on a point holds that point relative to the link's other end,
// so the positions along the route sum to p relative to target.
func (p *Point) path(target *Point) []link {
	type visit struct {
		from *Point
		via  link
	}
	prev := map[*Point]visit{p: {}}
	queue := []*Point{p}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == target {
			var out []link
			for n := target; n != p; n = prev[n].from {
				out = append(out, prev[n].via)
			}
			return out
		}
		for _, l := range cur.links {
			if _, ok := prev[l.other]; ok {
				continue
			}
			prev[l.other] = visit{from: cur, via: l}
			queue = append(queue, l.other)
		}
	}
	return nil
}

// SetVel sets the velocity of p as observed from f.
func (p *Point) SetVel(f *Frame, v Vector) {
	p.vel[f] = v
}

// Vel returns the velocity of p in f. When none was set explicitly it is
// derived from the nearest point (by position links) whose velocity in f is
// known: v = v_other + d/dt(p relative to other).
func (p *Point) Vel(f *Frame) (Vector, error) {
	if v, ok := p.vel[f]; ok {
		return v, nil
	}
	for _, q := range p.reachable() {
		v, ok := q.vel[f]
		if !ok {
			continue
		}
		pos, err := p.PosFrom(q)
		if err != nil {
			return Vector{}, err
		}
		d, err := pos.Dt(f)
		if err != nil {
			return Vector{}, err
		}
		return v.Add(d), nil
	}
	return Vector{}, fmt.Errorf("%w: %s in %s", ErrVelocityUndefined, p.name, f.name)
}

// reachable lists the points related to p in breadth-first order, excluding p.
func (p *Point) reachable() []*Point {
	seen := map[*Point]bool{p: true}
	queue := []*Point{p}
	var out []*Point
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, l := range cur.links {
			if seen[l.other] {
				continue
			}
			seen[l.other] = true
			out = append(out, l.other)
			queue = append(queue, l.other)
		}
	}
	return out
}
