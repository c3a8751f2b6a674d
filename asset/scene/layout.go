package scene

import (
	"bytes"
	"encoding/binary"
)

// Size of packed buffer elements in bytes.
const (
	SizeofBvhNode  = 48
	SizeofInstance = 112
	SizeofMaterial = 48
	SizeofVec4     = 16
	SizeofVec2     = 8
)

// Little-endian buffer contents ready for upload to the tracer.
type EncodedBuffers struct {
	Instances []byte
	BvhNodes  []byte
	Vertices  []byte
	Normals   []byte
	UVs       []byte
	Materials []byte
}

// Total encoded size in bytes.
func (e *EncodedBuffers) Len() int {
	return len(e.Instances) + len(e.BvhNodes) + len(e.Vertices) + len(e.Normals) + len(e.UVs) + len(e.Materials)
}

// Serialize each buffer into its little-endian device layout.
func (b *Buffers) Encode() (*EncodedBuffers, error) {
	var err error
	out := &EncodedBuffers{}

	if out.Instances, err = encodeSlice(b.Instances); err != nil {
		return nil, err
	}
	if out.BvhNodes, err = encodeSlice(b.BvhNodes); err != nil {
		return nil, err
	}
	if out.Vertices, err = encodeSlice(b.VertexList); err != nil {
		return nil, err
	}
	if out.Normals, err = encodeSlice(b.NormalList); err != nil {
		return nil, err
	}
	if out.UVs, err = encodeSlice(b.UvList); err != nil {
		return nil, err
	}
	if out.Materials, err = encodeSlice(b.Materials); err != nil {
		return nil, err
	}

	return out, nil
}

func encodeSlice(data interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
