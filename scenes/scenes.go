// Package scenes holds the built-in scenes the renderer can draw without a
// scene file.
package scenes

import (
	"fmt"
	"sort"

	"lumen/camera"
	"lumen/geometry"
	"lumen/light"
	"lumen/material"
	"lumen/rgb"
	"lumen/scene"
	"lumen/vmath/vec3"
)

// BuildFunc constructs a fresh scene and the camera that views it.
type BuildFunc func() (*scene.Scene, *camera.PinholeCamera)

var presets = map[string]BuildFunc{
	"basic":   Basic,
	"cornell": Cornell,
	"mirrors": Mirrors,
}

// Names lists the presets in sorted order.
func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func Lookup(name string) (BuildFunc, error) {
	build, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("no preset scene named %q (have %v)", name, Names())
	}
	return build, nil
}

// display converts a color picked on screen to linear light.
func display(r, g, b float64) rgb.T {
	return rgb.DecodeGamma(rgb.T{r, g, b})
}

// Basic is a few diffuse spheres and a mirror ball on a floor, lit by a point
// light and a sun.
func Basic() (*scene.Scene, *camera.PinholeCamera) {
	s := scene.New(1280, 720, 90, 500, rgb.Black)

	const floor = -1.5

	s.AddLight(light.NewSpherical(vec3.T{1, 1, 1}, display(1, 1, 1), 100))
	s.AddLight(light.NewGlobal(vec3.T{1, -1, 1}, display(0.9, 1, 0.5), 15))

	s.AddGeometry(geometry.NewSphere(vec3.T{4, floor + 1, 5}, 1, material.NewDiffuse(display(0.5, 0, 0.2), 0.4)))
	s.AddGeometry(geometry.NewSphere(vec3.T{1, floor + 0.8, 4}, 0.8, material.NewDiffuse(display(1, 0, 1), 0.3)))
	s.AddGeometry(geometry.NewSphere(vec3.T{-3, floor + 2.5, 6}, 2.5, material.NewDiffuse(display(0, 1, 0), 0.3)))
	s.AddGeometry(geometry.NewPlane(vec3.T{0, floor, 10}, vec3.T{0, 1, 0}, material.NewDiffuse(display(0.4, 0.1, 0.3), 0.4)))
	s.AddGeometry(geometry.NewSphere(vec3.T{1, floor + 1.5, 6}, 1.5, material.NewReflective(display(0.1, 0, 0.1), 0.4)))

	return s, camera.NewPinhole(vec3.T{0, 0, 0}, s.FOV)
}

// Cornell is a closed box with colored side walls and a point light near the
// ceiling.
func Cornell() (*scene.Scene, *camera.PinholeCamera) {
	s := scene.New(1280, 720, 90, 1000, rgb.Black)

	const (
		halfHeight = 7.0
		zOffset    = 5.0
		albedo     = 0.18
	)

	s.AddLight(light.NewSpherical(vec3.T{0, halfHeight - 0.5, 1.5 + zOffset}, display(1, 1, 1), 200))

	s.AddGeometry(geometry.NewSphere(vec3.T{4, -halfHeight + 1, 5 + zOffset}, 1, material.NewDiffuse(display(0.5, 0, 0.2), albedo)))
	s.AddGeometry(geometry.NewSphere(vec3.T{1, -halfHeight + 0.8, 4 + zOffset}, 0.8, material.NewDiffuse(display(1, 0, 1), albedo)))
	s.AddGeometry(geometry.NewSphere(vec3.T{-3, -halfHeight + 2.5, 6 + zOffset}, 2.5, material.NewDiffuse(display(0, 1, 0), albedo)))
	s.AddGeometry(geometry.NewSphere(vec3.T{1, -halfHeight + 1.5, 6 + zOffset}, 1.5, material.NewReflective(display(0.1, 0, 0.1), albedo)))

	// Floor, back wall, left, right, ceiling.
	s.AddGeometry(geometry.NewPlane(vec3.T{0, -halfHeight, 10 + zOffset}, vec3.T{0, 1, 0}, material.NewDiffuse(display(0.4, 0.1, 0.3), albedo)))
	s.AddGeometry(geometry.NewPlane(vec3.T{0, 0, 15 + zOffset}, vec3.T{0, 0, -1}, material.NewDiffuse(display(1, 1, 1), albedo)))
	s.AddGeometry(geometry.NewPlane(vec3.T{-10, 0, 0}, vec3.T{1, 0, 0}, material.NewDiffuse(display(1, 0, 0), albedo)))
	s.AddGeometry(geometry.NewPlane(vec3.T{10, 0, 0}, vec3.T{-1, 0, 0}, material.NewDiffuse(display(0, 0, 1), albedo)))
	s.AddGeometry(geometry.NewPlane(vec3.T{0, halfHeight, 10 + zOffset}, vec3.T{0, -1, 0}, material.NewDiffuse(display(1, 1, 1), albedo)))

	return s, camera.NewPinhole(vec3.T{0, 0, 0}, s.FOV)
}

// Mirrors puts a diffuse ball between two facing mirrors, so every mirror
// bounce chain runs until the depth limit stops it.
func Mirrors() (*scene.Scene, *camera.PinholeCamera) {
	s := scene.New(960, 540, 70, 200, display(0.05, 0.05, 0.1))
	s.MaxDepth = 8

	s.AddLight(light.NewSpherical(vec3.T{0, 4, 6}, display(1, 1, 1), 150))
	s.AddLight(light.NewGlobal(vec3.T{0.2, -1, 0.3}, display(1, 0.95, 0.8), 4))

	s.AddGeometry(geometry.NewPlane(vec3.T{-4, 0, 0}, vec3.T{1, 0, 0}, material.NewReflective(display(0.9, 0.9, 0.9), 0.9)))
	s.AddGeometry(geometry.NewPlane(vec3.T{4, 0, 0}, vec3.T{-1, 0, 0}, material.NewReflective(display(0.9, 0.9, 0.9), 0.9)))
	s.AddGeometry(geometry.NewPlane(vec3.T{0, -1, 0}, vec3.T{0, 1, 0}, material.NewDiffuse(display(0.6, 0.6, 0.6), 0.5)))
	s.AddGeometry(geometry.NewSphere(vec3.T{0, 0, 8}, 1, material.NewDiffuse(display(0.9, 0.3, 0.1), 0.6)))
	s.AddGeometry(geometry.NewSphere(vec3.T{-1.5, -0.5, 6}, 0.5, material.NewReflective(display(0.8, 0.8, 0.8), 0.7)))

	cam := camera.NewPinhole(vec3.T{0, 1, 0}, s.FOV)
	cam.LookAt(vec3.T{0, 0, 8}, vec3.T{0, 1, 0})
	return s, cam
}
