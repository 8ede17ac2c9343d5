package server

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Vec3) string {
	return fmt.Sprintf("#%02x%02x%02x",
		renderer.QuantizeComponent(c.X), renderer.QuantizeComponent(c.Y), renderer.QuantizeComponent(c.Z))
}

// extractTextureInfo describes a texture, sampling it at the hit for the color
func extractTextureInfo(tex material.Texture, hit *material.HitRecord) map[string]interface{} {
	properties := map[string]interface{}{
		"color": hexColor(tex.Evaluate(hit.UV, hit.Point)),
	}
	switch t := tex.(type) {
	case *material.SolidColor:
		properties["type"] = "solid"
		properties["value"] = vecArray(t.Color)
	case *material.CheckerTexture:
		properties["type"] = "checker"
	case *material.ImageTexture:
		properties["type"] = "image"
		properties["size"] = [2]int{t.Width, t.Height}
	case *material.NoiseTexture:
		properties["type"] = "noise"
	default:
		properties["type"] = "unknown"
	}
	return properties
}

// extractMaterialInfo extracts detailed material information with type assertions
func extractMaterialInfo(mat material.Material, hit *material.HitRecord) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Lambertian:
		properties["albedo"] = extractTextureInfo(m.Albedo, hit)
		return "lambertian", properties

	case *material.Metal:
		properties["albedo"] = vecArray(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		properties["fuzzness"] = m.Fuzzness
		return "metal", properties

	case *material.Dielectric:
		properties["refractiveIndex"] = m.RefractiveIndex
		properties["color"] = "#ffffff"
		return "dielectric", properties

	case *material.DiffuseLight:
		properties["emission"] = extractTextureInfo(m.Emission, hit)
		return "diffuse_light", properties

	case *material.Isotropic:
		properties["albedo"] = extractTextureInfo(m.Albedo, hit)
		return "isotropic", properties

	default:
		return "unknown", properties
	}
}

// inspectPixel casts a ray through the pixel and reports the first surface it hits
func inspectPixel(sceneObj *scene.Scene, config renderer.CameraConfig, pixelX, pixelY int) (material.HitRecord, bool) {
	// A pinhole camera and a fixed seed give the same ray for every request
	config.DefocusAngle = 0
	config.SamplesPerPixel = 1
	camera := renderer.NewCamera(config)
	sampler := core.NewSeededSampler(0)
	ray := camera.GetRay(pixelX, pixelY, 0, 0, sampler)

	var hit material.HitRecord
	isHit := sceneObj.World().Objects.Hit(ray, core.Interval{Min: 0.001, Max: math.Inf(1)}, sampler, &hit)
	return hit, isHit
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := parseRenderRequest(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	pipeline, err := s.setupRenderingPipeline(req, NewWebLogger(newRenderID(), s.logger))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	camera := pipeline.Raytracer.Camera()
	if pixelX < 0 || pixelX >= camera.ImageWidth() || pixelY < 0 || pixelY >= camera.ImageHeight() {
		writeError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	hit, isHit := inspectPixel(pipeline.Scene, camera.Config(), pixelX, pixelY)
	if !isHit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false})
		return
	}

	materialType, properties := extractMaterialInfo(hit.Material, &hit)
	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		Point:        vecArray(hit.Point),
		Normal:       vecArray(hit.Normal),
		Distance:     hit.T,
		FrontFace:    hit.FrontFace,
		Properties:   properties,
	})
}
