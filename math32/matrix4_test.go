// Copyright 2024 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const tol = float32(1.0e-5)

func assertEqualVector3(t *testing.T, vt, va Vector3) {
	t.Helper()
	assert.InDelta(t, vt.X, va.X, float64(tol))
	assert.InDelta(t, vt.Y, va.Y, float64(tol))
	assert.InDelta(t, vt.Z, va.Z, float64(tol))
}

func TestMatrix4Rotation(t *testing.T) {
	vx := Vec3(1, 0, 0)
	vy := Vec3(0, 1, 0)
	vz := Vec3(0, 0, 1)

	var my Matrix4
	my.SetRotationY(DegToRad(90))
	assertEqualVector3(t, Vec3(0, 0, -1), vx.MulMatrix4(&my))
	assertEqualVector3(t, vy, vy.MulMatrix4(&my))
	assertEqualVector3(t, vx, vz.MulMatrix4(&my))

	var mx Matrix4
	mx.SetRotationX(DegToRad(90))
	assertEqualVector3(t, vz, vy.MulMatrix4(&mx))

	var mz Matrix4
	mz.SetRotationZ(DegToRad(90))
	assertEqualVector3(t, vy, vx.MulMatrix4(&mz))
}

func TestMatrix4Inverse(t *testing.T) {
	var rot Matrix4
	rot.SetRotationY(0.77)
	inv, err := rot.Inverse()
	assert.NoError(t, err)

	id := rot.Mul(inv)
	var ident Matrix4
	ident.SetIdentity()
	for i := range ident {
		assert.InDelta(t, ident[i], id[i], float64(tol))
	}

	var zero Matrix4
	_, err = zero.Inverse()
	assert.Error(t, err)
}

func TestMatrix4Translation(t *testing.T) {
	var m Matrix4
	m.SetTranslation(1, 2, 3)
	assertEqualVector3(t, Vec3(1, 2, 3), Vec3(0, 0, 0).MulMatrix4(&m))
	assert.Equal(t, Vec3(1, 2, 3), m.Pos())
}

// TestMatrix4Projection runs points through the standard camera view
// and projection transform pipeline.
func TestMatrix4Projection(t *testing.T) {
	pts := []Vector3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {0.5, 0.5, 0.5}, {-0.5, -0.5, -0.5}}

	campos := Vec3(0, 0, 10)
	target := Vec3(0, 0, 0)
	var lookq Quat
	lookq.SetFromRotationMatrix(NewLookAt(campos, target, Vec3(0, 1, 0)))
	scale := Vec3(1, 1, 1)
	var cview Matrix4
	cview.SetTransform(campos, lookq, scale)
	view, err := cview.Inverse()
	assert.NoError(t, err)

	var prjn Matrix4
	prjn.SetPerspective(90, 1.5, 0.01, 100)

	var proj Matrix4
	proj.MulMatrices(&prjn, view)

	for _, pt := range pts {
		pjpt := pt.MulMatrix4(&proj)
		assert.False(t, IsNaN(pjpt.X) || IsNaN(pjpt.Y) || IsNaN(pjpt.Z))
	}

	// the camera at z=10 looking at the origin inverts to a -10 z translation
	assertEqualVector3(t, Vec3(0, 0, -10), Vec3(0, 0, 0).MulMatrix4(view))

	// points at the near and far planes map to 0 and 1 depth
	near := Vec3(0, 0, 10-0.01).MulMatrix4(&proj)
	far := Vec3(0, 0, 10-100).MulMatrix4(&proj)
	assert.InDelta(t, 0, near.Z, float64(tol))
	assert.InDelta(t, 1, far.Z, 1.0e-3)
}

func TestVector4Homogeneous(t *testing.T) {
	var m Matrix4
	m.SetTranslation(1, 2, 3)

	// w=1 point is translated, w=0 direction is not
	pt := Vector4FromVector3(Vec3(0, 0, 0), 1).MulMatrix4(&m)
	assert.Equal(t, Vec4(1, 2, 3, 1), pt)
	dir := Vector4FromVector3(Vec3(0, 0, 1), 0).MulMatrix4(&m)
	assert.Equal(t, Vec4(0, 0, 1, 0), dir)

	var prjn Matrix4
	prjn.SetPerspective(90, 1, 0.01, 100)
	pj := Vector4FromVector3(Vec3(0, 0, -10), 1).MulMatrix4(&prjn)
	assertEqualVector3(t, Vec3(0, 0, -10).MulMatrix4(&prjn), pj.PerspDiv())
}

func TestQuatAxisAngle(t *testing.T) {
	q := NewQuatAxisAngle(Vec3(0, 1, 0), DegToRad(90))
	assertEqualVector3(t, Vec3(0, 0, -1), Vec3(1, 0, 0).MulQuat(q))

	var rot Matrix4
	rot.SetRotationY(DegToRad(90))
	var qm Quat
	qm.SetFromRotationMatrix(&rot)
	assert.InDelta(t, q.X, qm.X, float64(tol))
	assert.InDelta(t, q.Y, qm.Y, float64(tol))
	assert.InDelta(t, q.Z, qm.Z, float64(tol))
	assert.InDelta(t, q.W, qm.W, float64(tol))
}
