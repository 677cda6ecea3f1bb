// Package export writes materialized meshes to interchange formats. OBJ
// keeps one named object per mesh; STL is single-solid, so a multi-mesh
// scene is first combined by boolean union.
package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cad-engine/internal/mesh"
)

// WriteOBJ writes meshes as a Wavefront OBJ document, one object per mesh.
func WriteOBJ(w io.Writer, meshes []mesh.NamedMesh) error {
	bw := bufio.NewWriter(w)
	base := 1 // OBJ indices are 1-based and global across objects
	for _, nm := range meshes {
		if _, err := fmt.Fprintf(bw, "o %s\n", nm.Name); err != nil {
			return err
		}
		for _, v := range nm.Mesh.Vertices {
			if _, err := fmt.Fprintf(bw, "v %g %g %g\n", v[0], v[1], v[2]); err != nil {
				return err
			}
		}
		for _, f := range nm.Mesh.Faces {
			if _, err := fmt.Fprintf(bw, "f %d %d %d\n", base+f[0], base+f[1], base+f[2]); err != nil {
				return err
			}
		}
		base += len(nm.Mesh.Vertices)
	}
	return bw.Flush()
}

// WriteSTL writes meshes as one ASCII STL solid. STL carries a single
// solid, so the meshes are union-combined first.
func WriteSTL(w io.Writer, name string, meshes []mesh.NamedMesh) error {
	parts := make([]*mesh.Mesh, len(meshes))
	for i, nm := range meshes {
		parts[i] = nm.Mesh
	}
	combined := mesh.CombineUnion(parts)

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "solid %s\n", name); err != nil {
		return err
	}
	for i := range combined.Faces {
		n := combined.FaceNormal(i)
		if l := n.Length(); l > 0 {
			n = n.Scale(1 / l)
		}
		f := combined.Faces[i]
		fmt.Fprintf(bw, "  facet normal %g %g %g\n", n[0], n[1], n[2])
		fmt.Fprintf(bw, "    outer loop\n")
		for _, vi := range f {
			v := combined.Vertices[vi]
			fmt.Fprintf(bw, "      vertex %g %g %g\n", v[0], v[1], v[2])
		}
		fmt.Fprintf(bw, "    endloop\n")
		fmt.Fprintf(bw, "  endfacet\n")
	}
	if _, err := fmt.Fprintf(bw, "endsolid %s\n", name); err != nil {
		return err
	}
	return bw.Flush()
}

// WriteFile writes meshes to path, picking the format from the extension
// (.obj or .stl).
func WriteFile(path string, meshes []mesh.NamedMesh) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return WriteOBJ(f, meshes)
	case ".stl":
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		return WriteSTL(f, name, meshes)
	default:
		return fmt.Errorf("unsupported export format %q (use .obj or .stl)", filepath.Ext(path))
	}
}
