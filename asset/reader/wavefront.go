package reader

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/achilleasa/hybris/asset"
	"github.com/achilleasa/hybris/asset/compiler/input"
	"github.com/achilleasa/hybris/log"
	"github.com/achilleasa/hybris/types"
	"github.com/pkg/errors"
)

// Reads wavefront .obj files as a triangle soup. Material, group and
// smoothing statements are ignored; materials are assigned per placement.
type wavefrontReader struct {
	logger log.Logger

	vertexList []types.Vec3
	normalList []types.Vec3
	uvList     []types.Vec2

	out []input.Vertex

	faceCount int

	// Resources currently being parsed; used to detect include cycles.
	includeStack []string
}

func newWavefrontReader() *wavefrontReader {
	return &wavefrontReader{
		logger:     log.New("wavefront reader"),
		vertexList: make([]types.Vec3, 0),
		normalList: make([]types.Vec3, 0),
		uvList:     make([]types.Vec2, 0),
		out:        make([]input.Vertex, 0),
	}
}

// Read mesh from a resource and return its vertex stream.
func (r *wavefrontReader) Read(res *asset.Resource) ([]input.Vertex, error) {
	start := time.Now()
	if err := r.parse(res); err != nil {
		return nil, err
	}

	r.logger.Infof(
		"parsed %q in %d ms: %d vertices, %d faces, %d triangles",
		res.Path(), time.Since(start).Nanoseconds()/1e6,
		len(r.vertexList), r.faceCount, len(r.out)/3,
	)
	return r.out, nil
}

// Generate a malformed mesh error annotated with the file and line it refers to.
func emitError(file string, line int, msgFormat string, args ...interface{}) error {
	return errors.Wrapf(ErrMalformedMesh, "[%s: %d] %s", file, line, fmt.Sprintf(msgFormat, args...))
}

func (r *wavefrontReader) parse(res *asset.Resource) error {
	for _, path := range r.includeStack {
		if path == res.Path() {
			return errors.Wrapf(ErrMalformedMesh, "include cycle detected while parsing %q", res.Path())
		}
	}
	r.includeStack = append(r.includeStack, res.Path())
	defer func() { r.includeStack = r.includeStack[:len(r.includeStack)-1] }()

	// Included files use 1-based indices relative to the coords they define
	relVertexOffset := len(r.vertexList)
	relUvOffset := len(r.uvList)
	relNormalOffset := len(r.normalList)

	lineNum := 0
	scanner := bufio.NewScanner(res)
	for scanner.Scan() {
		lineNum++
		lineTokens := strings.Fields(scanner.Text())
		if len(lineTokens) == 0 || strings.HasPrefix(lineTokens[0], "#") {
			continue
		}

		switch lineTokens[0] {
		case "call":
			if len(lineTokens) != 2 {
				return emitError(res.Path(), lineNum, `unsupported syntax for "call"; expected 1 argument; got %d`, len(lineTokens)-1)
			}

			incRes, err := asset.NewResource(lineTokens[1], res)
			if err != nil {
				return errors.Wrapf(err, "[%s: %d]", res.Path(), lineNum)
			}
			err = r.parse(incRes)
			incRes.Close()
			if err != nil {
				return err
			}
		case "v":
			v, err := parseVec3(lineTokens)
			if err != nil {
				return emitError(res.Path(), lineNum, "%s", err)
			}
			r.vertexList = append(r.vertexList, v)
		case "vn":
			v, err := parseVec3(lineTokens)
			if err != nil {
				return emitError(res.Path(), lineNum, "%s", err)
			}
			r.normalList = append(r.normalList, v)
		case "vt":
			v, err := parseVec2(lineTokens)
			if err != nil {
				return emitError(res.Path(), lineNum, "%s", err)
			}
			r.uvList = append(r.uvList, v)
		case "f":
			if err := r.parseFace(lineTokens, relVertexOffset, relUvOffset, relNormalOffset); err != nil {
				return emitError(res.Path(), lineNum, "%s", err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return errors.Wrapf(err, "reader: could not read %q", res.Path())
	}

	return nil
}

// Parse face definition. Each face definition consists of 3 or more
// arguments, one for each vertex. Each one of the vertex arguments is
// comprised of 1, 2 or 3 indices separated by a slash character:
// - vertexIndex
// - vertexIndex/uvIndex
// - vertexIndex//normalIndex
// - vertexIndex/uvIndex/normalIndex
//
// Indices start from 1 and may be negative to indicate an offset off the
// end of the coord list. Faces with more than 3 vertices are split into a
// triangle fan. Vertices without a normal get a zero normal.
func (r *wavefrontReader) parseFace(lineTokens []string, relVertexOffset, relUvOffset, relNormalOffset int) error {
	if len(lineTokens) < 4 {
		return fmt.Errorf(`unsupported syntax for "f"; expected at least 3 arguments; got %d`, len(lineTokens)-1)
	}

	faceVerts := make([]input.Vertex, len(lineTokens)-1)
	expIndices := 0
	for arg := range faceVerts {
		vTokens := strings.Split(lineTokens[arg+1], "/")

		// The first arg defines the format for the following args
		if arg == 0 {
			expIndices = len(vTokens)
			if expIndices > 3 {
				return fmt.Errorf("face argument %d contains %d indices; expected at most 3", arg, expIndices)
			}
		} else if len(vTokens) != expIndices {
			return fmt.Errorf("expected each face argument to contain %d indices; arg %d contains %d indices", expIndices, arg, len(vTokens))
		}

		if vTokens[0] == "" {
			return fmt.Errorf("face argument %d does not include a vertex index", arg)
		}

		offset, err := selectFaceCoordIndex(vTokens[0], len(r.vertexList), relVertexOffset)
		if err != nil {
			return fmt.Errorf("could not parse vertex coord for face argument %d: %s", arg, err.Error())
		}
		faceVerts[arg].Position = r.vertexList[offset]

		if expIndices > 1 && vTokens[1] != "" {
			offset, err = selectFaceCoordIndex(vTokens[1], len(r.uvList), relUvOffset)
			if err != nil {
				return fmt.Errorf("could not parse tex coord for face argument %d: %s", arg, err.Error())
			}
			faceVerts[arg].UV = r.uvList[offset]
		}

		if expIndices > 2 && vTokens[2] != "" {
			offset, err = selectFaceCoordIndex(vTokens[2], len(r.normalList), relNormalOffset)
			if err != nil {
				return fmt.Errorf("could not parse normal coord for face argument %d: %s", arg, err.Error())
			}
			faceVerts[arg].Normal = r.normalList[offset]
		}
	}

	for i := 1; i+1 < len(faceVerts); i++ {
		r.out = append(r.out, faceVerts[0], faceVerts[i], faceVerts[i+1])
	}
	r.faceCount++
	return nil
}

// Given an index for a face coord type (vertex, normal, tex) calculate the
// proper offset into the coord list. Wavefront format can also use negative
// indices to reference elements from the end of the coord list.
func selectFaceCoordIndex(indexToken string, coordListLen int, relOffset int) (int, error) {
	index, err := strconv.ParseInt(indexToken, 10, 32)
	if err != nil {
		return -1, err
	}

	var offset int
	switch {
	case index < 0:
		offset = coordListLen + int(index)
	case index == 0:
		return -1, fmt.Errorf("index 0 is not valid")
	default:
		offset = relOffset + int(index-1)
	}
	if offset < 0 || offset >= coordListLen {
		return -1, fmt.Errorf("index out of bounds")
	}
	return offset, nil
}

// Parse a Vec3 row.
func parseVec3(lineTokens []string) (types.Vec3, error) {
	if len(lineTokens) < 4 {
		return types.Vec3{}, fmt.Errorf(`unsupported syntax for "%s"; expected 3 arguments; got %d`, lineTokens[0], len(lineTokens)-1)
	}

	v := types.Vec3{}
	for tokIdx := 1; tokIdx <= 3; tokIdx++ {
		coord, err := strconv.ParseFloat(lineTokens[tokIdx], 32)
		if err != nil {
			return v, err
		}
		v[tokIdx-1] = float32(coord)
	}
	return v, nil
}

// Parse a Vec2 row.
func parseVec2(lineTokens []string) (types.Vec2, error) {
	if len(lineTokens) < 3 {
		return types.Vec2{}, fmt.Errorf(`unsupported syntax for "%s"; expected 2 arguments; got %d`, lineTokens[0], len(lineTokens)-1)
	}

	v := types.Vec2{}
	for tokIdx := 1; tokIdx <= 2; tokIdx++ {
		coord, err := strconv.ParseFloat(lineTokens[tokIdx], 32)
		if err != nil {
			return v, err
		}
		v[tokIdx-1] = float32(coord)
	}
	return v, nil
}
