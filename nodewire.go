package nodewire

import "math"

// Vec2 is a 2D vector used for payload locations and directions and for editor
// position hints.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Rotate returns v rotated counter-clockwise by angle radians.
func (v Vec2) Rotate(angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{v.X*cos - v.Y*sin, v.X*sin + v.Y*cos}
}

// Vec2FromAngle returns the unit vector pointing at angle radians.
func Vec2FromAngle(angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{cos, sin}
}

// Entity is an opaque reference to a game object outside the graph, such as the
// target of a damage effect. The zero value means "no entity".
type Entity uint64

// Field is a bitmask of Payload fields. Values can be combined with bitwise OR
// (e.g. FieldLoc | FieldTarget).
type Field uint8

const (
	FieldLoc    Field = 1 << iota // Payload.Loc is set
	FieldDir                      // Payload.Dir is set
	FieldTarget                   // Payload.Target is set
)

// Payload is the event data threaded unmodified from a firing to the activation
// it causes. Every field is optional; the Has* flags report presence. Payload is
// comparable so two payloads can be checked for field-for-field equality with ==.
type Payload struct {
	Loc    Vec2
	Dir    Vec2
	Target Entity

	HasLoc    bool
	HasDir    bool
	HasTarget bool
}

// WithLoc returns a copy of p with Loc set.
func (p Payload) WithLoc(loc Vec2) Payload {
	p.Loc, p.HasLoc = loc, true
	return p
}

// WithDir returns a copy of p with Dir set.
func (p Payload) WithDir(dir Vec2) Payload {
	p.Dir, p.HasDir = dir, true
	return p
}

// WithTarget returns a copy of p with Target set.
func (p Payload) WithTarget(target Entity) Payload {
	p.Target, p.HasTarget = target, true
	return p
}

// Fields reports which fields are present.
func (p Payload) Fields() Field {
	var f Field
	if p.HasLoc {
		f |= FieldLoc
	}
	if p.HasDir {
		f |= FieldDir
	}
	if p.HasTarget {
		f |= FieldTarget
	}
	return f
}

// Has reports whether every field in want is present.
func (p Payload) Has(want Field) bool {
	return p.Fields()&want == want
}
