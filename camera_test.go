package balloons

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/tanema/gween/ease"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func TestCameraDefaults(t *testing.T) {
	cam := NewCamera()
	if cam.Distance != defaultCameraDistance {
		t.Errorf("Distance = %f, want %f", cam.Distance, defaultCameraDistance)
	}
	if cam.FOV != defaultCameraFOV {
		t.Errorf("FOV = %f, want %f", cam.FOV, defaultCameraFOV)
	}
	if cam.Focusing() {
		t.Error("new camera should not be focusing")
	}
}

func TestCameraPositionOnAxes(t *testing.T) {
	cam := NewCamera()
	cam.Elevation = 0
	p := cam.Position()
	if !approxEqual(p.X, 0, epsilon) || !approxEqual(p.Y, 0, epsilon) || !approxEqual(p.Z, 8, epsilon) {
		t.Errorf("Position = %v, want (0,0,8)", p)
	}

	cam.Azimuth = math.Pi / 2
	p = cam.Position()
	if !approxEqual(p.X, 8, epsilon) || !approxEqual(p.Z, 0, epsilon) {
		t.Errorf("Position at azimuth 90° = %v, want (8,0,0)", p)
	}

	cam.Target = r3.Vector{X: 1, Y: 2, Z: 3}
	if got := cam.Position().Distance(cam.Target); !approxEqual(got, cam.Distance, 1e-9) {
		t.Errorf("distance to target = %f, want %f", got, cam.Distance)
	}
}

func TestCameraProjectTargetToCentre(t *testing.T) {
	cam := NewCamera()
	cam.Azimuth = 0.7
	cam.Elevation = 0.4
	sx, sy, scale, ok := cam.Project(cam.Target, 800, 600)
	if !ok {
		t.Fatal("target should be in front of the camera")
	}
	if !approxEqual(sx, 400, 1e-6) || !approxEqual(sy, 300, 1e-6) {
		t.Errorf("Project(target) = (%f,%f), want (400,300)", sx, sy)
	}
	if scale <= 0 {
		t.Errorf("scale = %f, want > 0", scale)
	}
}

func TestCameraProjectOrientation(t *testing.T) {
	cam := NewCamera()
	cam.Elevation = 0

	rx, _, _, _ := cam.Project(r3.Vector{X: 1}, 800, 600)
	if rx <= 400 {
		t.Errorf("+X projected to x=%f, want right of centre", rx)
	}
	_, uy, _, _ := cam.Project(r3.Vector{Y: 1}, 800, 600)
	if uy >= 300 {
		t.Errorf("+Y projected to y=%f, want above centre", uy)
	}

	_, _, near, _ := cam.Project(r3.Vector{Z: 4}, 800, 600)
	_, _, far, _ := cam.Project(r3.Vector{Z: -4}, 800, 600)
	if near <= far {
		t.Errorf("nearer point scale %f <= farther point scale %f", near, far)
	}
}

func TestCameraProjectBehind(t *testing.T) {
	cam := NewCamera()
	cam.Elevation = 0
	if _, _, _, ok := cam.Project(r3.Vector{Z: 20}, 800, 600); ok {
		t.Error("point behind the camera reported visible")
	}
}

func TestCameraDepth(t *testing.T) {
	cam := NewCamera()
	if d := cam.Depth(cam.Target); !approxEqual(d, cam.Distance, 1e-9) {
		t.Errorf("Depth(target) = %f, want %f", d, cam.Distance)
	}
}

func TestCameraZoomClamps(t *testing.T) {
	cam := NewCamera()
	cam.Zoom(0.01)
	if cam.Distance != cam.MinDistance {
		t.Errorf("Distance = %f, want clamped to %f", cam.Distance, cam.MinDistance)
	}
	cam.Zoom(1000)
	if cam.Distance != cam.MaxDistance {
		t.Errorf("Distance = %f, want clamped to %f", cam.Distance, cam.MaxDistance)
	}
	cam.Zoom(-1)
	if cam.Distance != cam.MaxDistance {
		t.Error("non-positive zoom factor should be ignored")
	}
}

func TestCameraOrbitClampsElevation(t *testing.T) {
	cam := NewCamera()
	cam.Orbit(0, 10)
	if cam.Elevation != maxElevation {
		t.Errorf("Elevation = %f, want %f", cam.Elevation, maxElevation)
	}
	cam.Orbit(0, -20)
	if cam.Elevation != -maxElevation {
		t.Errorf("Elevation = %f, want %f", cam.Elevation, -maxElevation)
	}
	cam.Orbit(3*math.Pi, 0)
	if cam.Azimuth < -2*math.Pi || cam.Azimuth > 2*math.Pi {
		t.Errorf("Azimuth = %f, want wrapped", cam.Azimuth)
	}
}

func TestCameraFocusOnReachesPoint(t *testing.T) {
	cam := NewCamera()
	dest := r3.Vector{X: 1.5, Y: -0.5, Z: 2}
	cam.FocusOn(dest, 1.0, ease.Linear)
	if !cam.Focusing() {
		t.Fatal("expected Focusing after FocusOn")
	}

	cam.Update(0.5)
	if cam.Focusing() == false {
		t.Fatal("focus finished at halfway")
	}
	if !approxEqual(cam.Target.X, 0.75, 0.01) {
		t.Errorf("Target.X at halfway = %f, want ~0.75", cam.Target.X)
	}

	cam.Update(0.5)
	if cam.Focusing() {
		t.Error("focus should be done after full duration")
	}
	if cam.Target.Distance(dest) > 0.01 {
		t.Errorf("Target = %v, want ~%v", cam.Target, dest)
	}
}

func TestCameraUpdateWithoutFocus(t *testing.T) {
	cam := NewCamera()
	cam.Update(1)
	if cam.Target != (r3.Vector{}) {
		t.Errorf("Target moved without focus: %v", cam.Target)
	}
}
