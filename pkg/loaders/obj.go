package loaders

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/udhos/gwob"
)

// DefaultOBJColor is the albedo of faces without a usable material
var DefaultOBJColor = core.NewVec3(0.8, 0.8, 0.8)

// OBJMaterial holds the MTL statements the loader understands
type OBJMaterial struct {
	Name       string
	Diffuse    *core.Vec3 // Kd
	Specular   *core.Vec3 // Ks
	Shininess  float64    // Ns
	DiffuseMap string     // map_Kd, relative to the MTL file
}

// OBJData contains the triangulated geometry of an OBJ file
type OBJData struct {
	Vertices      []core.Vec3
	Faces         []int    // Triangle indices (3 per triangle), zero based
	FaceMaterials []string // Material name of each triangle, "" if none
	MaterialLib   string   // mtllib file name, "" if none
}

// TriangleCount returns the number of triangles after triangulation
func (d *OBJData) TriangleCount() int {
	return len(d.Faces) / 3
}

// newOBJData flattens a parsed OBJ into positions, triangle indices and the
// material name of every triangle
func newOBJData(obj *gwob.Obj) (*OBJData, error) {
	stride := obj.StrideSize / 4
	offset := obj.StrideOffsetPosition / 4
	if stride < 3 {
		return nil, fmt.Errorf("unexpected vertex stride %d", obj.StrideSize)
	}

	data := &OBJData{MaterialLib: obj.Mtllib}
	for i := 0; i+offset+2 < len(obj.Coord); i += stride {
		data.Vertices = append(data.Vertices, core.NewVec3(
			float64(obj.Coord[i+offset]),
			float64(obj.Coord[i+offset+1]),
			float64(obj.Coord[i+offset+2]),
		))
	}

	for _, idx := range obj.Indices {
		if idx < 0 || idx >= len(data.Vertices) {
			return nil, fmt.Errorf("face index %d out of range for %d vertices", idx, len(data.Vertices))
		}
	}
	data.Faces = obj.Indices[:len(obj.Indices)/3*3]

	data.FaceMaterials = make([]string, data.TriangleCount())
	for _, group := range obj.Groups {
		first := group.IndexBegin / 3
		for t := first; t < first+group.IndexCount/3 && t < len(data.FaceMaterials); t++ {
			data.FaceMaterials[t] = group.Usemtl
		}
	}
	return data, nil
}

// newOBJMaterials converts an MTL library. A zero Kd or Ks counts as absent.
func newOBJMaterials(lib gwob.MaterialLib) map[string]*OBJMaterial {
	materials := make(map[string]*OBJMaterial, len(lib.Lib))
	for name, m := range lib.Lib {
		om := &OBJMaterial{
			Name:       name,
			Shininess:  float64(m.Ns),
			DiffuseMap: m.MapKd,
		}
		if c := vec3From(m.Kd); !c.IsBlack() {
			om.Diffuse = &c
		}
		if c := vec3From(m.Ks); !c.IsBlack() {
			om.Specular = &c
		}
		materials[name] = om
	}
	return materials
}

func vec3From(c [3]float32) core.Vec3 {
	return core.NewVec3(float64(c[0]), float64(c[1]), float64(c[2]))
}

// OBJMaterialResolver turns MTL entries into renderer materials
type OBJMaterialResolver struct {
	baseDir   string
	logger    core.Logger
	fallback  material.Material
	resolved  map[string]material.Material
	materials map[string]*OBJMaterial
}

// Resolve returns the material for name. A diffuse color wins over a
// specular one, which wins over a diffuse texture map; anything else gets
// the default gray Lambertian.
func (r *OBJMaterialResolver) Resolve(name string) material.Material {
	if mat, ok := r.resolved[name]; ok {
		return mat
	}

	mat := r.fallback
	if m, ok := r.materials[name]; ok {
		switch {
		case m.Diffuse != nil:
			mat = material.NewLambertian(*m.Diffuse)
		case m.Specular != nil:
			fuzz := 1.0 - core.NewInterval(0, 1).Clamp(m.Shininess/1000.0)
			mat = material.NewMetal(*m.Specular, fuzz)
		case m.DiffuseMap != "":
			mapPath := m.DiffuseMap
			if !filepath.IsAbs(mapPath) {
				mapPath = filepath.Join(r.baseDir, mapPath)
			}
			mat = material.NewTexturedLambertian(LoadImageTexture(mapPath, r.logger))
		}
	} else if name != "" {
		r.logger.Printf("OBJ material %q not found, using default\n", name)
	}

	r.resolved[name] = mat
	return mat
}

// LoadOBJ loads an OBJ model with its MTL library into a triangle mesh
// scaled uniformly by scale. A missing OBJ file is an error; a missing or
// invalid MTL file is logged and its faces fall back to the default material.
func LoadOBJ(filename string, scale float64, logger core.Logger) (*geometry.TriangleMesh, error) {
	startTime := time.Now()
	if logger == nil {
		logger = core.DiscardLogger
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open OBJ file: %w", err)
	}
	defer file.Close()

	options := parserOptions(logger)
	obj, err := gwob.NewObjFromReader(filename, file, options)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	data, err := newOBJData(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	if data.TriangleCount() == 0 {
		return nil, fmt.Errorf("OBJ file %s contains no faces", filename)
	}

	baseDir := filepath.Dir(filename)
	resolver := &OBJMaterialResolver{
		baseDir:   baseDir,
		logger:    logger,
		fallback:  material.NewLambertian(DefaultOBJColor),
		resolved:  make(map[string]material.Material),
		materials: loadMaterialLib(baseDir, data.MaterialLib, options, logger),
	}

	materials := make([]material.Material, data.TriangleCount())
	for i, name := range data.FaceMaterials {
		materials[i] = resolver.Resolve(name)
	}

	mesh, err := geometry.NewTriangleMesh(data.Vertices, data.Faces, resolver.fallback, &geometry.TriangleMeshOptions{
		Materials: materials,
		Scale:     scale,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build mesh from %s: %w", filename, err)
	}

	logger.Printf("Loaded %s: %d vertices, %d triangles in %v\n",
		filename, len(data.Vertices), data.TriangleCount(), time.Since(startTime))
	return mesh, nil
}

func parserOptions(logger core.Logger) *gwob.ObjParserOptions {
	return &gwob.ObjParserOptions{
		Logger: func(msg string) {
			logger.Printf("OBJ: %s\n", msg)
		},
	}
}

func loadMaterialLib(baseDir, lib string, options *gwob.ObjParserOptions, logger core.Logger) map[string]*OBJMaterial {
	if lib == "" {
		return nil
	}
	path := filepath.Join(baseDir, lib)
	f, err := os.Open(path)
	if err != nil {
		logger.Printf("Could not open MTL file %s: %v\n", path, err)
		return nil
	}
	defer f.Close()

	mtl, err := gwob.ReadMaterialLibFromReader(f, options)
	if err != nil {
		logger.Printf("Could not parse MTL file %s: %v\n", path, err)
		return nil
	}
	return newOBJMaterials(mtl)
}
