// Package scenefile loads scenes described in JSON.
//
// A scene file looks like:
//
//	{
//	  "width": 640, "height": 360, "fov": 90, "samples": 64, "maxDepth": 4,
//	  "gammaColors": true,
//	  "background": [0, 0, 0],
//	  "camera": {"position": [0, 0, 0], "lookAt": [0, 0, 1], "up": [0, 1, 0]},
//	  "geometry": [
//	    {"sphere": {"center": [0, 0, 5], "radius": 1},
//	     "material": {"diffuse": {"color": [0.5, 0, 0.2], "albedo": 0.4}}},
//	    {"plane": {"point": [0, -1, 0], "normal": [0, 1, 0]},
//	     "material": {"reflective": {"color": [0.1, 0, 0.1], "albedo": 0.4}}}
//	  ],
//	  "lights": [
//	    {"global": {"direction": [1, -1, 1], "color": [1, 1, 1], "intensity": 15}},
//	    {"spherical": {"position": [1, 1, 1], "color": [1, 1, 1], "intensity": 100}}
//	  ]
//	}
//
// With gammaColors set, every color is taken to be in display space and is
// converted to linear light on load.
package scenefile

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"lumen/camera"
	"lumen/geometry"
	"lumen/light"
	"lumen/material"
	"lumen/rgb"
	"lumen/scene"
	"lumen/vmath/vec3"

	"github.com/golang/glog"
)

type File struct {
	Width       int        `json:"width"`
	Height      int        `json:"height"`
	FOV         float64    `json:"fov"`
	Samples     int        `json:"samples"`
	MaxDepth    int        `json:"maxDepth"`
	GammaColors bool       `json:"gammaColors"`
	Background  [3]float64 `json:"background"`
	Camera      *Camera    `json:"camera"`
	Geometry    []Geometry `json:"geometry"`
	Lights      []Light    `json:"lights"`
}

type Camera struct {
	Position [3]float64  `json:"position"`
	LookAt   *[3]float64 `json:"lookAt"`
	Up       *[3]float64 `json:"up"`
}

type Geometry struct {
	Sphere   *Sphere  `json:"sphere"`
	Plane    *Plane   `json:"plane"`
	Material Material `json:"material"`
}

type Sphere struct {
	Center [3]float64 `json:"center"`
	Radius float64    `json:"radius"`
}

type Plane struct {
	Point  [3]float64 `json:"point"`
	Normal [3]float64 `json:"normal"`
}

type Material struct {
	Diffuse    *Surface `json:"diffuse"`
	Reflective *Surface `json:"reflective"`
}

type Surface struct {
	Color  [3]float64 `json:"color"`
	Albedo float64    `json:"albedo"`
}

type Light struct {
	Global    *GlobalLight    `json:"global"`
	Spherical *SphericalLight `json:"spherical"`
}

type GlobalLight struct {
	Direction [3]float64 `json:"direction"`
	Color     [3]float64 `json:"color"`
	Intensity float64    `json:"intensity"`
}

type SphericalLight struct {
	Position  [3]float64 `json:"position"`
	Color     [3]float64 `json:"color"`
	Intensity float64    `json:"intensity"`
}

func LoadScene(fileName string) (*scene.Scene, *camera.PinholeCamera, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, nil, fmt.Errorf("while opening scene file: %w", err)
	}
	defer f.Close()

	s, cam, err := ReadScene(f)
	if err != nil {
		return nil, nil, fmt.Errorf("while reading scene file %s: %w", fileName, err)
	}
	return s, cam, nil
}

// ReadScene decodes and validates a scene file.
func ReadScene(in io.Reader) (*scene.Scene, *camera.PinholeCamera, error) {
	dec := json.NewDecoder(in)
	dec.DisallowUnknownFields()

	file := &File{}
	if err := dec.Decode(file); err != nil {
		return nil, nil, fmt.Errorf("while decoding JSON: %w", err)
	}

	return file.Build()
}

// Build validates f and constructs the scene and camera it describes.
func (f *File) Build() (*scene.Scene, *camera.PinholeCamera, error) {
	if f.Width <= 0 || f.Height <= 0 {
		return nil, nil, fmt.Errorf("image size must be positive, got %dx%d", f.Width, f.Height)
	}
	if f.Width < f.Height {
		glog.Warningf("Scene is %dx%d; the field of view assumes a landscape image", f.Width, f.Height)
	}
	if f.Samples <= 0 {
		return nil, nil, fmt.Errorf("samples must be positive, got %d", f.Samples)
	}
	if !(f.FOV > 0 && f.FOV < 180) {
		return nil, nil, fmt.Errorf("fov must be in (0, 180) degrees, got %v", f.FOV)
	}

	s := scene.New(f.Width, f.Height, f.FOV, f.Samples, f.color(f.Background))
	if f.MaxDepth != 0 {
		if f.MaxDepth < 0 {
			return nil, nil, fmt.Errorf("maxDepth must not be negative, got %d", f.MaxDepth)
		}
		s.MaxDepth = f.MaxDepth
	}

	for i, g := range f.Geometry {
		built, err := f.buildGeometry(g)
		if err != nil {
			return nil, nil, fmt.Errorf("in geometry %d: %w", i, err)
		}
		s.AddGeometry(built)
	}

	for i, l := range f.Lights {
		built, err := f.buildLight(l)
		if err != nil {
			return nil, nil, fmt.Errorf("in light %d: %w", i, err)
		}
		s.AddLight(built)
	}

	cam := camera.NewPinhole(vec3.T{}, f.FOV)
	if f.Camera != nil {
		cam.Center = vec3.T(f.Camera.Position)
		up := vec3.T{0, 1, 0}
		if f.Camera.Up != nil {
			up = vec3.T(*f.Camera.Up)
		}
		if f.Camera.LookAt != nil {
			if _, ok := vec3.NormalizeChecked(vec3.SubVV(vec3.T(*f.Camera.LookAt), cam.Center)); !ok {
				return nil, nil, fmt.Errorf("camera lookAt coincides with its position")
			}
			cam.LookAt(vec3.T(*f.Camera.LookAt), up)
		} else if f.Camera.Up != nil {
			cam.SetUp(up)
		}
	}

	return s, cam, nil
}

func (f *File) color(c [3]float64) rgb.T {
	if f.GammaColors {
		return rgb.DecodeGamma(rgb.T(c))
	}
	return rgb.T(c)
}

func (f *File) buildGeometry(g Geometry) (geometry.Geometry, error) {
	m, err := f.buildMaterial(g.Material)
	if err != nil {
		return geometry.Geometry{}, err
	}

	switch {
	case g.Sphere != nil && g.Plane != nil:
		return geometry.Geometry{}, fmt.Errorf("both sphere and plane given")
	case g.Sphere != nil:
		if !(g.Sphere.Radius > 0) {
			return geometry.Geometry{}, fmt.Errorf("sphere radius must be positive, got %v", g.Sphere.Radius)
		}
		return geometry.NewSphere(vec3.T(g.Sphere.Center), g.Sphere.Radius, m), nil
	case g.Plane != nil:
		if _, ok := vec3.NormalizeChecked(vec3.T(g.Plane.Normal)); !ok {
			return geometry.Geometry{}, fmt.Errorf("plane normal must not be zero")
		}
		return geometry.NewPlane(vec3.T(g.Plane.Point), vec3.T(g.Plane.Normal), m), nil
	}
	return geometry.Geometry{}, fmt.Errorf("no shape given")
}

func (f *File) buildMaterial(m Material) (material.Material, error) {
	switch {
	case m.Diffuse != nil && m.Reflective != nil:
		return material.Material{}, fmt.Errorf("both diffuse and reflective given")
	case m.Diffuse != nil:
		if err := checkAlbedo(m.Diffuse.Albedo); err != nil {
			return material.Material{}, err
		}
		return material.NewDiffuse(f.color(m.Diffuse.Color), m.Diffuse.Albedo), nil
	case m.Reflective != nil:
		if err := checkAlbedo(m.Reflective.Albedo); err != nil {
			return material.Material{}, err
		}
		return material.NewReflective(f.color(m.Reflective.Color), m.Reflective.Albedo), nil
	}
	return material.Material{}, fmt.Errorf("no material given")
}

func checkAlbedo(albedo float64) error {
	if math.IsNaN(albedo) || albedo < 0 || albedo > 1 {
		return fmt.Errorf("albedo must be in [0, 1], got %v", albedo)
	}
	return nil
}

func (f *File) buildLight(l Light) (light.Light, error) {
	switch {
	case l.Global != nil && l.Spherical != nil:
		return light.Light{}, fmt.Errorf("both global and spherical given")
	case l.Global != nil:
		if _, ok := vec3.NormalizeChecked(vec3.T(l.Global.Direction)); !ok {
			return light.Light{}, fmt.Errorf("global light direction must not be zero")
		}
		return light.NewGlobal(vec3.T(l.Global.Direction), f.color(l.Global.Color), l.Global.Intensity), nil
	case l.Spherical != nil:
		return light.NewSpherical(vec3.T(l.Spherical.Position), f.color(l.Spherical.Color), l.Spherical.Intensity), nil
	}
	return light.Light{}, fmt.Errorf("no light given")
}
