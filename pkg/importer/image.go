package importer

import (
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/tiff" // register TIFF decoder

	"gonum.org/v1/gonum/mat"

	"microstack/internal/models"
)

// fromImage decodes path as single-channel intensity. Values are scaled
// to [0,1] and cast to the configured precision. 16-bit grayscale keeps
// its full range; every other color model goes through an 8-bit luminance
// conversion.
func fromImage(path string, opts Options) (*mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, &models.DecodeError{Path: path, Attempts: 1, Err: err}
	}

	if g16, ok := img.(*image.Gray16); ok {
		return gray16ToDense(g16, opts.DType), nil
	}

	gray := imaging.Grayscale(img)
	b := gray.Bounds()
	m := mat.NewDense(b.Dy(), b.Dx(), nil)
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			i := gray.PixOffset(b.Min.X+x, b.Min.Y+y)
			m.Set(y, x, opts.DType.Cast(float64(gray.Pix[i])/255.0))
		}
	}
	return m, nil
}

func gray16ToDense(img *image.Gray16, dtype models.DType) *mat.Dense {
	b := img.Bounds()
	m := mat.NewDense(b.Dy(), b.Dx(), nil)
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			v := img.Gray16At(b.Min.X+x, b.Min.Y+y).Y
			m.Set(y, x, dtype.Cast(float64(v)/65535.0))
		}
	}
	return m
}
