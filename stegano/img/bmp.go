package img
import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/bmp"
	"steglsb/stegano/lsb"
)

// LoadRGB copies the color channels of src into a 3-channel buffer.
func LoadRGB( src image.Image ) *lsb.RGB {
	bounds := src.Bounds()
	buf := lsb.NewRGB( bounds )
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert( src.At(x, y) ).(color.NRGBA)
			off := buf.PixOffset( x, y )
			buf.Pix[off] = c.R
			buf.Pix[off+1] = c.G
			buf.Pix[off+2] = c.B
		}
	}
	return buf
}

// RGBImage turns a 3-channel buffer back into an opaque image.
func RGBImage( buf *lsb.RGB ) *image.RGBA {
	dst := image.NewRGBA( buf.Rect )
	for y := buf.Rect.Min.Y; y < buf.Rect.Max.Y; y++ {
		for x := buf.Rect.Min.X; x < buf.Rect.Max.X; x++ {
			off := buf.PixOffset( x, y )
			dst.SetRGBA( x, y, color.RGBA{ buf.Pix[off], buf.Pix[off+1], buf.Pix[off+2], 0xff } )
		}
	}
	return dst
}

// 24-bit bitmaps have no alpha, so only color channels are used.
func bmpBuffer( decoy []byte, opts Options ) (*lsb.RGB, error) {
	if opts.Alpha {
		return nil, fmt.Errorf("%w: bmp with alpha channel", ErrUnsupported)
	}
	src, err := bmp.Decode( bytes.NewReader( decoy ) )
	if err != nil {
		return nil, err
	}
	return LoadRGB( src ), nil
}

func HideInBMP( decoy, data []byte, opts Options ) ([]byte, error) {
	buf, err := bmpBuffer( decoy, opts )
	if err != nil {
		return nil, err
	}
	if err = opts.embed( buf, data ); err != nil {
		return nil, err
	}

	out := new(bytes.Buffer)
	if err = bmp.Encode( out, RGBImage( buf ) ); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func RevealFromBMP( decoy []byte, opts Options ) ([]byte, error) {
	buf, err := bmpBuffer( decoy, opts )
	if err != nil {
		return nil, err
	}
	return opts.extract( buf )
}
