// Package volume flattens a shape-homogeneous stack into a dense 3D grid
// with physical voxel sizes and offers numeric slice, region, and
// projection extraction. Everything here returns numbers; rendering is a
// downstream concern.
package volume

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"microstack/pkg/stack"
)

// Axis names one of the three volume axes.
type Axis int

const (
	X Axis = iota
	Y
	Z
)

// ParseAxis maps "x", "y", "z" (any case) to an Axis.
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "x", "X":
		return X, nil
	case "y", "Y":
		return Y, nil
	case "z", "Z":
		return Z, nil
	}
	return 0, fmt.Errorf("invalid axis %q (must be x, y, or z)", s)
}

func (a Axis) String() string { return [...]string{"x", "y", "z"}[a] }

// Volume is a dense 3D intensity grid in row-major order, z-major like
// the stack it came from, with the physical size of one voxel attached.
type Volume struct {
	data   []float64
	width  int
	height int
	depth  int
	voxel  [3]float64
	unit   string
}

// FromStack flattens st into a volume. Every slice must share one shape.
// zDist is the physical distance between consecutive slices, in the
// stack's unit; the in-plane voxel size comes from the first slice's
// pixel length.
func FromStack(st *stack.Stack, zDist float64) (*Volume, error) {
	rows, cols, ok := st.Dims()
	if !ok {
		return nil, fmt.Errorf("cannot flatten stack: empty or heterogeneous slice shapes")
	}
	slices := st.Slices()
	px := slices[0].PixelLength()

	v := &Volume{
		data:   make([]float64, cols*rows*len(slices)),
		width:  cols,
		height: rows,
		depth:  len(slices),
		voxel:  [3]float64{px, px, zDist},
		unit:   slices[0].Unit(),
	}
	for z, sl := range slices {
		d := sl.Data()
		for y := 0; y < rows; y++ {
			for x := 0; x < cols; x++ {
				v.data[z*cols*rows+y*cols+x] = d.At(y, x)
			}
		}
	}
	return v, nil
}

// FromStackFilled flattens st like FromStack but replicates each slice
// round(zDist/pixelLength) times along z, so voxels come out roughly
// cubic when the slice spacing is larger than the pixel length. The
// z voxel size of the result is the pixel length.
func FromStackFilled(st *stack.Stack, zDist float64) (*Volume, error) {
	flat, err := FromStack(st, zDist)
	if err != nil {
		return nil, err
	}
	px := flat.voxel[0]
	if px <= 0 {
		return nil, fmt.Errorf("cannot z-fill: stack has no pixel length")
	}
	repeat := int(math.Round(zDist / px))
	if repeat < 1 {
		repeat = 1
	}

	planeSize := flat.width * flat.height
	out := &Volume{
		data:   make([]float64, planeSize*flat.depth*repeat),
		width:  flat.width,
		height: flat.height,
		depth:  flat.depth * repeat,
		voxel:  [3]float64{px, px, px},
		unit:   flat.unit,
	}
	for z := 0; z < flat.depth; z++ {
		plane := flat.data[z*planeSize : (z+1)*planeSize]
		for r := 0; r < repeat; r++ {
			copy(out.data[(z*repeat+r)*planeSize:(z*repeat+r+1)*planeSize], plane)
		}
	}
	return out, nil
}

// Dims returns the grid size as (width, height, depth).
func (v *Volume) Dims() (w, h, d int) { return v.width, v.height, v.depth }

// VoxelSize returns the physical size of one voxel along x, y, z.
func (v *Volume) VoxelSize() (x, y, z float64) { return v.voxel[0], v.voxel[1], v.voxel[2] }

// Unit returns the physical unit of the voxel size.
func (v *Volume) Unit() string { return v.unit }

// At returns the intensity at grid position (x, y, z).
func (v *Volume) At(x, y, z int) float64 {
	return v.data[z*v.width*v.height+y*v.width+x]
}

// Raw returns the flattened grid data in z-major row-major order.
func (v *Volume) Raw() []float64 { return v.data }

// ExtractSlice cuts a 2D plane perpendicular to axis at position. The x
// axis yields a height-by-depth matrix, y yields depth-by-width, z yields
// the familiar height-by-width image plane.
func (v *Volume) ExtractSlice(axis Axis, position int) (*mat.Dense, error) {
	if position < 0 {
		return nil, fmt.Errorf("position must be non-negative")
	}
	switch axis {
	case X:
		if position >= v.width {
			return nil, fmt.Errorf("position %d exceeds width %d", position, v.width)
		}
		m := mat.NewDense(v.height, v.depth, nil)
		for y := 0; y < v.height; y++ {
			for z := 0; z < v.depth; z++ {
				m.Set(y, z, v.At(position, y, z))
			}
		}
		return m, nil

	case Y:
		if position >= v.height {
			return nil, fmt.Errorf("position %d exceeds height %d", position, v.height)
		}
		m := mat.NewDense(v.depth, v.width, nil)
		for z := 0; z < v.depth; z++ {
			for x := 0; x < v.width; x++ {
				m.Set(z, x, v.At(x, position, z))
			}
		}
		return m, nil

	case Z:
		if position >= v.depth {
			return nil, fmt.Errorf("position %d exceeds depth %d", position, v.depth)
		}
		m := mat.NewDense(v.height, v.width, nil)
		for y := 0; y < v.height; y++ {
			for x := 0; x < v.width; x++ {
				m.Set(y, x, v.At(x, y, position))
			}
		}
		return m, nil
	}
	return nil, fmt.Errorf("invalid axis %d", axis)
}

// ExtractRegion cuts a rectangular subvolume, keeping the voxel size.
func (v *Volume) ExtractRegion(startX, startY, startZ, sizeX, sizeY, sizeZ int) (*Volume, error) {
	if startX < 0 || startY < 0 || startZ < 0 {
		return nil, fmt.Errorf("start coordinates must be non-negative")
	}
	if sizeX <= 0 || sizeY <= 0 || sizeZ <= 0 {
		return nil, fmt.Errorf("size dimensions must be positive")
	}
	if startX+sizeX > v.width || startY+sizeY > v.height || startZ+sizeZ > v.depth {
		return nil, fmt.Errorf("region extends beyond volume boundaries")
	}

	out := &Volume{
		data:   make([]float64, sizeX*sizeY*sizeZ),
		width:  sizeX,
		height: sizeY,
		depth:  sizeZ,
		voxel:  v.voxel,
		unit:   v.unit,
	}
	for z := 0; z < sizeZ; z++ {
		for y := 0; y < sizeY; y++ {
			for x := 0; x < sizeX; x++ {
				out.data[z*sizeX*sizeY+y*sizeX+x] = v.At(startX+x, startY+y, startZ+z)
			}
		}
	}
	return out, nil
}

// MaxProject collapses the volume along axis, keeping the brightest voxel
// per ray. The result is a plain matrix with the same orientation as
// ExtractSlice for that axis.
func (v *Volume) MaxProject(axis Axis) (*mat.Dense, error) {
	var size int
	switch axis {
	case X:
		size = v.width
	case Y:
		size = v.height
	case Z:
		size = v.depth
	default:
		return nil, fmt.Errorf("invalid axis %d", axis)
	}
	if size == 0 {
		return nil, fmt.Errorf("empty volume")
	}

	out, err := v.ExtractSlice(axis, 0)
	if err != nil {
		return nil, err
	}
	for pos := 1; pos < size; pos++ {
		plane, err := v.ExtractSlice(axis, pos)
		if err != nil {
			return nil, err
		}
		r, c := out.Dims()
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				if p := plane.At(i, j); p > out.At(i, j) {
					out.Set(i, j, p)
				}
			}
		}
	}
	return out, nil
}
