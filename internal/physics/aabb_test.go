package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestNewAABBFromCenter(t *testing.T) {
	b := NewAABBFromCenter(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{2, -4, 6})
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, b.Min)
	assert.Equal(t, mgl32.Vec3{2, 4, 6}, b.Max)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, b.Center())
}

func TestAABBIntersects(t *testing.T) {
	a := NewAABBFromCenter(mgl32.Vec3{}, mgl32.Vec3{2, 2, 2})
	tests := []struct {
		name string
		b    AABB
		want bool
	}{
		{"overlap", NewAABBFromCenter(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{2, 2, 2}), true},
		{"touching", NewAABBFromCenter(mgl32.Vec3{2, 0, 0}, mgl32.Vec3{2, 2, 2}), true},
		{"apart", NewAABBFromCenter(mgl32.Vec3{5, 0, 0}, mgl32.Vec3{2, 2, 2}), false},
		{"empty", EmptyAABB(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Intersects(tt.b))
			assert.Equal(t, tt.want, tt.b.Intersects(a))
		})
	}
}

func TestAABBContains(t *testing.T) {
	outer := NewAABBFromCenter(mgl32.Vec3{}, mgl32.Vec3{4, 4, 4})
	inner := NewAABBFromCenter(mgl32.Vec3{1, 0, 0}, mgl32.Vec3{1, 1, 1})
	straddling := NewAABBFromCenter(mgl32.Vec3{2, 0, 0}, mgl32.Vec3{1, 1, 1})

	assert.True(t, outer.Contains(inner))
	assert.True(t, outer.Contains(outer))
	assert.False(t, outer.Contains(straddling))
	assert.False(t, inner.Contains(outer))
	assert.False(t, outer.Contains(EmptyAABB()))
}

func TestAABBUnion(t *testing.T) {
	a := AABB{Min: mgl32.Vec3{0, 0, 0}, Max: mgl32.Vec3{1, 1, 1}}
	b := AABB{Min: mgl32.Vec3{-1, 2, 0}, Max: mgl32.Vec3{0, 3, 5}}

	u := a.Union(b)
	assert.Equal(t, mgl32.Vec3{-1, 0, 0}, u.Min)
	assert.Equal(t, mgl32.Vec3{1, 3, 5}, u.Max)
	assert.Equal(t, a, a.Union(EmptyAABB()))
	assert.Equal(t, a, EmptyAABB().Union(a))
}

func TestAABBTransform(t *testing.T) {
	a := AABB{Min: mgl32.Vec3{0, 0, 0}, Max: mgl32.Vec3{2, 1, 1}}
	rot := mgl32.HomogRotate3DY(mgl32.DegToRad(90))

	got := a.Transform(mgl32.Translate3D(1, 0, 0).Mul4(rot))
	assert.InDelta(t, 1, got.Min.X(), 1e-5)
	assert.InDelta(t, 2, got.Max.X(), 1e-5)
	assert.InDelta(t, -2, got.Min.Z(), 1e-5)
	assert.InDelta(t, 0, got.Max.Z(), 1e-5)
}
