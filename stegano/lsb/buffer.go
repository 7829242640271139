package lsb
import (
	"image"
)

/*
 * Pixel buffers. A buffer is a raster-ordered sequence of pixels, every pixel
 * being a tuple of 8-bit samples. All pixels of one buffer must have the same
 * amount of channels (3 or 4); the codec looks only at the first one.
 */
type PixelBuffer interface {
	// amount of pixels in the buffer
	Len() int
	// samples of the i-th pixel in raster order. The returned slice
	// aliases the buffer, so writes into it modify the buffer.
	Pixel( i int ) []uint8
}

// RGB is a packed 3-channel buffer, laid out like image.RGBA without alpha.
type RGB struct {
	Pix	[]uint8
	Stride	int
	Rect	image.Rectangle
}

func NewRGB( r image.Rectangle ) *RGB {
	w, h := r.Dx(), r.Dy()
	return &RGB{
		Pix: make( []uint8, 3 * w * h ),
		Stride: 3 * w,
		Rect: r,
	}
}

func(b *RGB) Len() int {
	return b.Rect.Dx() * b.Rect.Dy()
}

func(b *RGB) Pixel( i int ) []uint8 {
	w := b.Rect.Dx()
	off := (i / w) * b.Stride + (i % w) * 3
	return b.Pix[ off : off+3 : off+3 ]
}

// PixOffset returns the index of the first sample of pixel (x, y).
func(b *RGB) PixOffset( x, y int ) int {
	return (y - b.Rect.Min.Y) * b.Stride + (x - b.Rect.Min.X) * 3
}

// NRGBA exposes image.NRGBA as a 4-channel buffer. Non-premultiplied
// storage keeps color samples intact when the alpha channel changes.
type NRGBA struct {
	Img	*image.NRGBA
}

func(b NRGBA) Len() int {
	return b.Img.Rect.Dx() * b.Img.Rect.Dy()
}

func(b NRGBA) Pixel( i int ) []uint8 {
	w := b.Img.Rect.Dx()
	off := (i / w) * b.Img.Stride + (i % w) * 4
	return b.Img.Pix[ off : off+4 : off+4 ]
}

// Samples is a plain list of pixel tuples in raster order.
type Samples [][]uint8

func(s Samples) Len() int {
	return len(s)
}

func(s Samples) Pixel( i int ) []uint8 {
	return s[i]
}

// Clone returns a deep copy, useful to snapshot a buffer before encoding.
func(s Samples) Clone() Samples {
	res := make( Samples, len(s) )
	for i, px := range s {
		res[i] = append( []uint8(nil), px... )
	}
	return res
}
