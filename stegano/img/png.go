package img
import (
	"bytes"
	"image"
	"image/png"

	"steglsb/stegano/lsb"
)

// LoadNRGBA copies src into a 4-channel buffer.
func LoadNRGBA( src image.Image ) lsb.NRGBA {
	bounds := src.Bounds()
	if n, ok := src.(*image.NRGBA); ok {
		// already non-premultiplied, keep the exact samples
		dst := image.NewNRGBA( bounds )
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			copy( dst.Pix[ dst.PixOffset(bounds.Min.X, y): ],
				n.Pix[ n.PixOffset(bounds.Min.X, y) : n.PixOffset(bounds.Max.X, y) ] )
		}
		return lsb.NRGBA{ Img: dst }
	}

	dst := image.NewNRGBA( bounds )
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			dst.Set( x, y, src.At(x, y) )
		}
	}
	return lsb.NRGBA{ Img: dst }
}

func pngBuffer( decoy []byte ) (lsb.NRGBA, error) {
	src, err := png.Decode( bytes.NewReader( decoy ) )
	if err != nil {
		return lsb.NRGBA{}, err
	}
	return LoadNRGBA( src ), nil
}

func HideInPNG( decoy, data []byte, opts Options ) ([]byte, error) {
	buf, err := pngBuffer( decoy )
	if err != nil {
		return nil, err
	}
	if err = opts.embed( buf, data ); err != nil {
		return nil, err
	}

	out := new(bytes.Buffer)
	enc := png.Encoder{ CompressionLevel: png.BestCompression }
	if err = enc.Encode( out, buf.Img ); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func RevealFromPNG( decoy []byte, opts Options ) ([]byte, error) {
	buf, err := pngBuffer( decoy )
	if err != nil {
		return nil, err
	}
	return opts.extract( buf )
}
