package camera

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// CameraUniformWGSL is the WGSL declaration matching CameraUniform.
const CameraUniformWGSL = `struct CameraUniform {
    view_proj: mat4x4<f32>,
    camera_position: vec3<f32>,
};
`

// CameraUniform is the GPU-aligned camera block handed to an external renderer.
// Size: 80 bytes (std430 / WGSL aligned).
type CameraUniform struct {
	ViewProj       mgl32.Mat4 // offset  0: combined view-projection matrix, column-major
	CameraPosition mgl32.Vec3 // offset 64: world-space eye position
	_pad           float32    // offset 76: padding to 80 bytes
}

// Size returns the size of the CameraUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (80)
func (g *CameraUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the uniform into a little-endian byte buffer suitable for upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *CameraUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.ViewProj[i]))
	}
	for i := range 3 {
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(g.CameraPosition[i]))
	}
	binary.LittleEndian.PutUint32(buf[76:], 0) // _pad
	return buf
}
