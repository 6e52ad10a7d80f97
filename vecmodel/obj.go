package vecmodel

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// WriteOBJ writes the mesh in Wavefront OBJ format: one "v" line per
// vertex and one "f" line per face, with 1-based vertex references.
func (m *Mesh) WriteOBJ(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, p := range m.Points.Pos {
		fmt.Fprintf(bw, "v %f %f %f\n", p.X, p.Y, p.Z)
	}
	for _, f := range m.Faces {
		bw.WriteString("f")
		for _, v := range f {
			fmt.Fprintf(bw, " %d", v+1)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// WriteOBJFile writes the mesh to the named OBJ file.
func (m *Mesh) WriteOBJFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := m.WriteOBJ(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
