package core

import (
	"math"
	"testing"
)

func TestVec3_Normalize(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vec3
		expected Vec3
	}{
		{"Unit X", NewVec3(3, 0, 0), NewVec3(1, 0, 0)},
		{"Diagonal", NewVec3(1, 1, 0), NewVec3(1/math.Sqrt2, 1/math.Sqrt2, 0)},
		{"Zero stays zero", NewVec3(0, 0, 0), NewVec3(0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.vector.Normalize()

			const tolerance = 1e-9
			if result.Subtract(tt.expected).Length() > tolerance {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestVec3_CrossAndDot(t *testing.T) {
	x := NewVec3(1, 0, 0)
	y := NewVec3(0, 1, 0)

	if got := x.Cross(y); got != NewVec3(0, 0, 1) {
		t.Errorf("x cross y = %v, expected (0,0,1)", got)
	}
	if got := x.Dot(y); got != 0 {
		t.Errorf("x dot y = %v, expected 0", got)
	}
	if got := NewVec3(1, 2, 3).Dot(NewVec3(4, 5, 6)); got != 32 {
		t.Errorf("dot = %v, expected 32", got)
	}
}

func TestReflect(t *testing.T) {
	v := NewVec3(1, -1, 0)
	n := NewVec3(0, 1, 0)
	expected := NewVec3(1, 1, 0)

	if got := Reflect(v, n); got.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Reflect = %v, expected %v", got, expected)
	}
}

func TestRefract(t *testing.T) {
	n := NewVec3(0, 1, 0)

	// Head-on rays pass straight through regardless of index
	straight := Refract(NewVec3(0, -1, 0), n, 1.0/1.5)
	if straight.Subtract(NewVec3(0, -1, 0)).Length() > 1e-9 {
		t.Errorf("Head-on refraction bent the ray: %v", straight)
	}

	// Matching indices leave any ray unchanged
	in := NewVec3(1, -1, 0).Normalize()
	same := Refract(in, n, 1.0)
	if same.Subtract(in).Length() > 1e-9 {
		t.Errorf("Index 1.0 refraction changed the ray: got %v, expected %v", same, in)
	}

	// Snell's law: sin(out) = eta * sin(in)
	eta := 1.0 / 1.5
	out := Refract(in, n, eta)
	sinIn := math.Sqrt(1 - math.Pow(in.Negate().Dot(n), 2))
	sinOut := math.Sqrt(1 - math.Pow(out.Normalize().Negate().Dot(n), 2))
	if math.Abs(sinOut-eta*sinIn) > 1e-9 {
		t.Errorf("Snell's law violated: sinOut=%f, eta*sinIn=%f", sinOut, eta*sinIn)
	}
}

func TestVec3_NearZeroAndNaN(t *testing.T) {
	if !NewVec3(1e-9, -1e-9, 0).NearZero() {
		t.Error("Expected tiny vector to be near zero")
	}
	if NewVec3(1e-7, 0, 0).NearZero() {
		t.Error("Expected 1e-7 component to not be near zero")
	}

	v := NewVec3(math.NaN(), 1, math.NaN()).ReplaceNaN()
	if v != NewVec3(0, 1, 0) {
		t.Errorf("ReplaceNaN = %v, expected (0,1,0)", v)
	}
}

func TestInterval(t *testing.T) {
	empty := EmptyInterval()
	i := NewInterval(1, 3)

	if !empty.IsEmpty() {
		t.Error("Empty interval should be empty")
	}
	if empty.Union(i) != i {
		t.Errorf("Empty union should be identity, got %v", empty.Union(i))
	}
	if !i.Intersection(NewInterval(4, 5)).IsEmpty() {
		t.Error("Disjoint intersection should be empty")
	}
	if got := i.Intersection(NewInterval(2, 5)); got != NewInterval(2, 3) {
		t.Errorf("Intersection = %v, expected [2,3]", got)
	}
	if !i.Contains(1) || i.Surrounds(1) {
		t.Error("Contains is closed and Surrounds is open on the bounds")
	}
	if got := i.Clamp(10); got != 3 {
		t.Errorf("Clamp(10) = %v, expected 3", got)
	}
	if got := i.Expand(2); got != NewInterval(0, 4) {
		t.Errorf("Expand(2) = %v, expected [0,4]", got)
	}
	if got := NewIntervalAB(5, 2); got != NewInterval(2, 5) {
		t.Errorf("NewIntervalAB = %v, expected [2,5]", got)
	}
}

func TestONB_Orthonormal(t *testing.T) {
	normals := []Vec3{
		NewVec3(0, 0, 1),
		NewVec3(1, 0, 0),
		NewVec3(0, -1, 0),
		NewVec3(1, 2, 3),
		NewVec3(-0.95, 0.1, 0.2),
	}

	for _, n := range normals {
		onb := NewONB(n)
		const tolerance = 1e-9

		for _, axis := range []Vec3{onb.U, onb.V, onb.W} {
			if math.Abs(axis.Length()-1) > tolerance {
				t.Errorf("ONB(%v) axis %v is not unit length", n, axis)
			}
		}
		if math.Abs(onb.U.Dot(onb.V)) > tolerance || math.Abs(onb.V.Dot(onb.W)) > tolerance || math.Abs(onb.U.Dot(onb.W)) > tolerance {
			t.Errorf("ONB(%v) axes are not orthogonal", n)
		}
		if onb.W.Subtract(n.Normalize()).Length() > tolerance {
			t.Errorf("ONB(%v) W = %v, expected normalized input", n, onb.W)
		}
		if got := onb.Transform(NewVec3(0, 0, 1)); got.Subtract(onb.W).Length() > tolerance {
			t.Errorf("Transform(+Z) = %v, expected W", got)
		}
	}
}
