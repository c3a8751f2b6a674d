package reader

import (
	"strings"

	"github.com/achilleasa/hybris/asset"
	"github.com/achilleasa/hybris/asset/compiler/input"
	"github.com/pkg/errors"
)

var (
	ErrUnsupportedFormat = errors.New("reader: unsupported file format")
	ErrMalformedMesh     = errors.New("reader: malformed mesh")
	ErrEmptyMesh         = errors.New("reader: mesh contains no triangles")
	ErrInvalidManifest   = errors.New("reader: invalid scene manifest")
	ErrUnknownMaterial   = errors.New("reader: unknown material")
)

// The MeshReader interface is implemented by all mesh readers.
type MeshReader interface {
	// Read a mesh as a vertex stream where each run of 3 vertices
	// defines a triangle.
	Read(*asset.Resource) ([]input.Vertex, error)
}

// Select a mesh reader based on the lower-cased file extension (including
// the leading dot). Returns nil if the extension is not supported.
func MeshReaderFor(ext string) MeshReader {
	switch strings.ToLower(ext) {
	case ".obj":
		return newWavefrontReader()
	}
	return nil
}

// Returns true if a mesh reader exists for the extension of path.
func IsMeshFormat(path string) bool {
	dot := strings.LastIndexByte(path, '.')
	if dot == -1 || strings.ContainsAny(path[dot:], `/\`) {
		return false
	}
	return MeshReaderFor(path[dot:]) != nil
}

// Read the triangle soup of a mesh resource. The resource vertex stream must
// contain a non-zero multiple of 3 vertices.
func ReadMesh(res *asset.Resource) ([]input.Triangle, error) {
	reader := MeshReaderFor(res.Ext())
	if reader == nil {
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%s", res.Path())
	}

	vertices, err := reader.Read(res)
	if err != nil {
		return nil, err
	}

	return Triangulate(res.Path(), vertices)
}

// Group a vertex stream into triangles after validating its length.
func Triangulate(name string, vertices []input.Vertex) ([]input.Triangle, error) {
	if len(vertices) == 0 {
		return nil, errors.Wrapf(ErrEmptyMesh, "%s", name)
	}
	if len(vertices)%3 != 0 {
		return nil, errors.Wrapf(ErrMalformedMesh, "%s: vertex count %d is not a multiple of 3", name, len(vertices))
	}
	return input.Triangulate(vertices), nil
}
