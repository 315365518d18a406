package models

import (
	"math"
	"math/rand/v2"
)

// Vector3 is a world-space position, direction or scale.
type Vector3 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

var (
	Zero = Vector3{}
	Up   = Vector3{Y: 1}
	Down = Vector3{Y: -1}
)

func Vec3(x, y, z float64) Vector3 { return Vector3{X: x, Y: y, Z: z} }

// Uniform returns a vector with every component set to s.
func Uniform(s float64) Vector3 { return Vector3{X: s, Y: s, Z: s} }

func (v Vector3) Add(o Vector3) Vector3 { return Vector3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vector3) Sub(o Vector3) Vector3 { return Vector3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vector3) Scale(f float64) Vector3 {
	return Vector3{v.X * f, v.Y * f, v.Z * f}
}
func (v Vector3) Mul(o Vector3) Vector3 { return Vector3{v.X * o.X, v.Y * o.Y, v.Z * o.Z} }
func (v Vector3) Dot(o Vector3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vector3) Length() float64       { return math.Sqrt(v.Dot(v)) }

func (v Vector3) Normalize() Vector3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// Lerp interpolates between v and o; t is not clamped.
func (v Vector3) Lerp(o Vector3, t float64) Vector3 {
	return Vector3{
		X: v.X + (o.X-v.X)*t,
		Y: v.Y + (o.Y-v.Y)*t,
		Z: v.Z + (o.Z-v.Z)*t,
	}
}

func (v Vector3) Distance(o Vector3) float64 { return v.Sub(o).Length() }

func (v Vector3) MaxComponent() float64 { return math.Max(v.X, math.Max(v.Y, v.Z)) }

// IsUniform reports whether all components are equal within eps.
func (v Vector3) IsUniform(eps float64) bool {
	return math.Abs(v.X-v.Y) <= eps && math.Abs(v.X-v.Z) <= eps
}

func (v Vector3) ApproxEqual(o Vector3, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps && math.Abs(v.Z-o.Z) <= eps
}

// Box is an axis-aligned volume described by its center and full size.
type Box struct {
	Center Vector3 `json:"center" yaml:"center"`
	Size   Vector3 `json:"size" yaml:"size"`
}

func (b Box) Min() Vector3 { return b.Center.Sub(b.Size.Scale(0.5)) }
func (b Box) Max() Vector3 { return b.Center.Add(b.Size.Scale(0.5)) }

func (b Box) Contains(p Vector3) bool {
	lo, hi := b.Min(), b.Max()
	return p.X >= lo.X && p.X <= hi.X &&
		p.Y >= lo.Y && p.Y <= hi.Y &&
		p.Z >= lo.Z && p.Z <= hi.Z
}

// RandomPoint samples a point uniformly inside the volume.
func (b Box) RandomPoint(r *rand.Rand) Vector3 {
	lo, hi := b.Min(), b.Max()
	return Vector3{
		X: lo.X + r.Float64()*(hi.X-lo.X),
		Y: lo.Y + r.Float64()*(hi.Y-lo.Y),
		Z: lo.Z + r.Float64()*(hi.Z-lo.Z),
	}
}

// Ray is a half line; Direction is expected to be normalized.
type Ray struct {
	Origin    Vector3
	Direction Vector3
}

func (r Ray) PointAt(distance float64) Vector3 {
	return r.Origin.Add(r.Direction.Scale(distance))
}
