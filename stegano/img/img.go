/*
 * Package img moves LSB payloads in and out of image files. Only lossless
 * containers are accepted: JPEG recompression and GIF palette quantization
 * would destroy the low bits, so such decoys are refused.
 */
package img
import (
	"bytes"
	"errors"
	"fmt"

	"steglsb/stegano/lsb"
)

var (
	ErrLossyFormat = errors.New("lossy image format can't carry LSB data")
	ErrUnsupported = errors.New("unsupported image format")
)

const (
	PNG = "png"
	BMP = "bmp"
	JPEG = "jpeg"
	GIF = "gif"
)

/*
 * Options must be the same for Hide and Reveal of one payload.
 * Without Framed, Reveal needs the payload length in Length.
 */
type Options struct {
	Mode	lsb.Mode	// low bits per channel, 1 or 2
	Alpha	bool		// let the alpha channel carry data
	Framed	bool		// prepend the payload with its length
	Length	int		// payload length for unframed Reveal
}

func DefaultOptions() Options {
	return Options{
		Mode: lsb.OneBit,
		Framed: true,
	}
}

func(o Options) codec() lsb.Codec {
	return lsb.Codec{ Mode: o.Mode, SkipAlpha: !o.Alpha }
}

func(o Options) embed( buf lsb.PixelBuffer, data []byte ) error {
	if o.Framed {
		return lsb.EncodeFramed( o.codec(), buf, data )
	}
	return o.codec().Encode( buf, data )
}

func(o Options) extract( buf lsb.PixelBuffer ) ([]byte, error) {
	if o.Framed {
		return lsb.DecodeFramed( o.codec(), buf )
	}
	return o.codec().Decode( buf, o.Length )
}

func(o Options) capacity( buf lsb.PixelBuffer ) int {
	if o.Framed {
		return lsb.FramedCapacity( o.codec(), buf )
	}
	return o.codec().Capacity( buf ) / 8
}

// Format tells the container format by its magic bytes.
func Format( decoy []byte ) string {
	switch {
	case bytes.HasPrefix( decoy, []byte("\x89PNG\r\n\x1a\n") ):
		return PNG
	case bytes.HasPrefix( decoy, []byte("BM") ):
		return BMP
	case bytes.HasPrefix( decoy, []byte{0xff, 0xd8, 0xff} ):
		return JPEG
	case bytes.HasPrefix( decoy, []byte("GIF") ):
		return GIF
	}
	return ""
}

func checkFormat( decoy []byte ) (string, error) {
	f := Format( decoy )
	switch f {
	case PNG, BMP:
		return f, nil
	case JPEG, GIF:
		return "", fmt.Errorf("%w: %s", ErrLossyFormat, f)
	}
	return "", ErrUnsupported
}

// Hide returns a copy of decoy with data embedded, in the same format.
func Hide( decoy, data []byte, opts Options ) ([]byte, error) {
	f, err := checkFormat( decoy )
	if err != nil {
		return nil, err
	}
	if f == BMP {
		return HideInBMP( decoy, data, opts )
	}
	return HideInPNG( decoy, data, opts )
}

func Reveal( decoy []byte, opts Options ) ([]byte, error) {
	f, err := checkFormat( decoy )
	if err != nil {
		return nil, err
	}
	if f == BMP {
		return RevealFromBMP( decoy, opts )
	}
	return RevealFromPNG( decoy, opts )
}

// Capacity returns how many payload bytes fit into decoy with opts.
func Capacity( decoy []byte, opts Options ) (int, error) {
	f, err := checkFormat( decoy )
	if err != nil {
		return 0, err
	}
	var buf lsb.PixelBuffer
	if f == BMP {
		buf, err = bmpBuffer( decoy, opts )
	} else {
		buf, err = pngBuffer( decoy )
	}
	if err != nil {
		return 0, err
	}
	return opts.capacity( buf ), nil
}
