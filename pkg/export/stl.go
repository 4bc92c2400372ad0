// Package export writes build results to interchange formats: binary
// STL for the printable solids, DXF for the gasket cutting outline and
// PDF for a dimension sheet.
package export

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/chazu/enclosure/pkg/kernel"
)

// stlHeaderSize is the fixed comment block at the start of a binary STL.
const stlHeaderSize = 80

// WriteSTL writes the mesh as binary STL.
func WriteSTL(w io.Writer, m *kernel.Mesh) error {
	if m.IsEmpty() {
		return fmt.Errorf("export: refusing to write an empty mesh")
	}

	var header [stlHeaderSize]byte
	copy(header[:], "binary STL")
	if _, err := w.Write(header[:]); err != nil {
		return err
	}

	triCount := m.TriangleCount()
	if err := binary.Write(w, binary.LittleEndian, uint32(triCount)); err != nil {
		return err
	}

	// 12 floats (normal + 3 vertices) and the attribute word per facet.
	var facet [12]float32
	for i := 0; i < triCount; i++ {
		n := m.Indices[i*3] * 3
		facet[0], facet[1], facet[2] = m.Normals[n], m.Normals[n+1], m.Normals[n+2]
		for j := 0; j < 3; j++ {
			v := m.Indices[i*3+j] * 3
			facet[3+j*3] = m.Vertices[v]
			facet[4+j*3] = m.Vertices[v+1]
			facet[5+j*3] = m.Vertices[v+2]
		}
		if err := binary.Write(w, binary.LittleEndian, facet); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, uint16(0)); err != nil {
			return err
		}
	}
	return nil
}

// SaveSTL writes the mesh as binary STL to the given path.
func SaveSTL(path string, m *kernel.Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	if err := WriteSTL(bw, m); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
