package warp

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/doctorjana/FunnyFaceSwap/mesh"
)

// tpsPivotEps is the LU pivot magnitude below which the spline system
// is reported as near-singular instead of being solved.
const tpsPivotEps = 1e-12

// ErrSingular is returned when the thin-plate spline system cannot be
// solved reliably. Callers are expected to fall back to the affine
// triangle warp rather than retry.
var ErrSingular = errors.New("warp: thin-plate spline system is near-singular")

// TPS is a thin-plate spline fit through n control points:
// f(x,y) = a0 + a1*x + a2*y + sum_i w_i * U(|(x,y) - p_i|), evaluated
// independently for the x and y output coordinates.
type TPS struct {
	ctrl   []mesh.Point
	wx, wy []float64
	ax, ay [3]float64
}

// tpsKernel is the radial basis U(r) = r^2 * ln(r), defined as 0 at
// r = 0. It is computed from the squared distance to avoid a sqrt.
func tpsKernel(r2 float64) float64 {
	if r2 == 0 {
		return 0
	}
	return 0.5 * r2 * math.Log(r2)
}

// SolveTPS fits the spline mapping src control points onto dst ones by
// solving the (n+3)x(n+3) bordered system once per output coordinate.
// At least 3 matched points are required. A pivot magnitude below
// 1e-12 yields ErrSingular.
func SolveTPS(src, dst []mesh.Point) (*TPS, error) {
	n := len(src)
	if n != len(dst) {
		return nil, errors.Errorf("warp: control point count mismatch: %d vs %d", n, len(dst))
	}
	if n < 3 {
		return nil, errors.Errorf("warp: need at least 3 control points, got %d", n)
	}

	size := n + 3
	a := mat.NewDense(size, size, nil)
	bx := mat.NewVecDense(size, nil)
	by := mat.NewVecDense(size, nil)

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			u := tpsKernel(distSq(src[i], src[j]))
			a.Set(i, j, u)
			a.Set(j, i, u)
		}
		// P block: each control point augmented with [1, x, y].
		a.Set(i, n, 1)
		a.Set(i, n+1, src[i].X)
		a.Set(i, n+2, src[i].Y)
		a.Set(n, i, 1)
		a.Set(n+1, i, src[i].X)
		a.Set(n+2, i, src[i].Y)

		bx.SetVec(i, dst[i].X)
		by.SetVec(i, dst[i].Y)
	}

	var lu mat.LU
	lu.Factorize(a)

	var u mat.TriDense
	lu.UTo(&u)
	for i := 0; i < size; i++ {
		if math.Abs(u.At(i, i)) < tpsPivotEps {
			return nil, ErrSingular
		}
	}

	var sx, sy mat.VecDense
	if err := lu.SolveVecTo(&sx, false, bx); err != nil {
		if _, ok := err.(mat.Condition); !ok {
			return nil, ErrSingular
		}
	}
	if err := lu.SolveVecTo(&sy, false, by); err != nil {
		if _, ok := err.(mat.Condition); !ok {
			return nil, ErrSingular
		}
	}

	t := &TPS{
		ctrl: append([]mesh.Point(nil), src...),
		wx:   make([]float64, n),
		wy:   make([]float64, n),
	}
	for i := 0; i < n; i++ {
		t.wx[i] = sx.AtVec(i)
		t.wy[i] = sy.AtVec(i)
	}
	for i := 0; i < 3; i++ {
		t.ax[i] = sx.AtVec(n + i)
		t.ay[i] = sy.AtVec(n + i)
	}
	return t, nil
}

// Transform evaluates the spline at a single coordinate.
func (t *TPS) Transform(x, y float64) (float64, float64) {
	ox := t.ax[0] + t.ax[1]*x + t.ax[2]*y
	oy := t.ay[0] + t.ay[1]*x + t.ay[2]*y
	for i, p := range t.ctrl {
		dx, dy := x-p.X, y-p.Y
		u := tpsKernel(dx*dx + dy*dy)
		ox += t.wx[i] * u
		oy += t.wy[i] * u
	}
	return ox, oy
}

func distSq(a, b mesh.Point) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx*dx + dy*dy
}
