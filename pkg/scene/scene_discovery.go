package scene

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Builder constructs a scene. Builders are deterministic for a given seed.
type Builder func(opts Options) (*Scene, error)

// SceneInfo describes a registered scene
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Name        string `json:"name"`        // Scene name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

type registration struct {
	info  SceneInfo
	build Builder
}

var registry = map[string]registration{}

// Register adds a scene under id. The display name is derived from the id.
func Register(id, group, description string, build Builder) {
	if _, exists := registry[id]; exists {
		panic(fmt.Sprintf("scene %q registered twice", id))
	}
	registry[id] = registration{
		info: SceneInfo{
			ID:          id,
			Name:        titleCase(id),
			Description: description,
			Group:       group,
		},
		build: build,
	}
}

func init() {
	Register("ground", "Spheres", "Diffuse, glass and metal spheres on a ground sphere", NewGroundScene)
	Register("spheres", "Spheres", "Random spheres with motion blur and depth of field", NewSpheresScene)
	Register("checkered", "Textures", "Two spheres with a spatial checker texture", NewCheckeredScene)
	Register("perlin", "Textures", "Marble spheres from Perlin turbulence", NewPerlinScene)
	Register("earth", "Textures", "Image-textured globe", NewEarthScene)
	Register("uv", "Textures", "UV debug texture on a sphere, a quad and a disc", NewUVScene)
	Register("quads", "Lights", "Five colored quads", NewQuadsScene)
	Register("simple-light", "Lights", "Marble spheres lit by a quad light and a sphere light", NewSimpleLightScene)
	Register("cornell", "Cornell", "Cornell box with a tall box and a glass sphere", NewCornellScene)
	Register("cornell-smoke", "Cornell", "Cornell box with smoke and fog volumes", NewCornellSmokeScene)
	Register("obj", "Cornell", "OBJ model in a Cornell box", NewOBJScene)
	Register("final", "Showcase", "Boxes, volumes, textures and a sphere cluster", NewFinalScene)
}

// ErrUnknownScene is returned by Build for ids that were never registered
var ErrUnknownScene = errors.New("unknown scene")

// Build constructs the scene registered under id
func Build(id string, opts Options) (*Scene, error) {
	reg, ok := registry[id]
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownScene, id, strings.Join(SceneIDs(), ", "))
	}
	if opts.Logger == nil {
		opts.Logger = core.DiscardLogger
	}

	s, err := reg.build(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to build scene %q: %w", id, err)
	}
	return s, nil
}

// SceneIDs returns the registered scene ids in sorted order
func SceneIDs() []string {
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ListAllScenes returns every registered scene, grouped by category. Groups
// are sorted by name, scenes within a group by id.
func ListAllScenes() ScenesResponse {
	var response ScenesResponse

	groupMap := make(map[string][]SceneInfo)
	for _, id := range SceneIDs() {
		info := registry[id].info
		groupMap[info.Group] = append(groupMap[info.Group], info)
	}

	groupNames := make([]string, 0, len(groupMap))
	for groupName := range groupMap {
		groupNames = append(groupNames, groupName)
	}
	sort.Strings(groupNames)

	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   groupName,
			Scenes: groupMap[groupName],
		})
	}

	return response
}

// titleCase converts a filename-style string to title case
// e.g., "cornell-smoke" -> "Cornell Smoke"
func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	// Title case each word
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
