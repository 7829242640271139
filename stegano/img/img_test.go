package img
import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"steglsb/stegano/lsb"
)

func randomNRGBA( w, h int, opaque bool ) *image.NRGBA {
	rnd := rand.New( rand.NewSource( int64(w * h) ) )
	m := image.NewNRGBA( image.Rect(0, 0, w, h) )
	rnd.Read( m.Pix )
	if opaque {
		for i := 3; i < len(m.Pix); i += 4 {
			m.Pix[i] = 0xff
		}
	}
	return m
}

func encodeWith( t *testing.T, enc func( *bytes.Buffer, image.Image ) error, m image.Image ) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	require.NoError( t, enc( buf, m ) )
	return buf.Bytes()
}

func pngBytes( t *testing.T, m image.Image ) []byte {
	return encodeWith( t, func( b *bytes.Buffer, m image.Image ) error { return png.Encode( b, m ) }, m )
}

func bmpBytes( t *testing.T, m image.Image ) []byte {
	return encodeWith( t, func( b *bytes.Buffer, m image.Image ) error { return bmp.Encode( b, m ) }, m )
}

func TestFormat( t *testing.T ) {
	small := randomNRGBA( 4, 4, true )
	assert.Equal( t, PNG, Format( pngBytes( t, small ) ) )
	assert.Equal( t, BMP, Format( bmpBytes( t, small ) ) )
	assert.Equal( t, "", Format( nil ) )
	assert.Equal( t, "", Format( []byte("hello") ) )
}

func TestPNG( t *testing.T ) {
	images := map[string][]byte{
		"opaque": pngBytes( t, randomNRGBA( 64, 48, true ) ),
		"transparent": pngBytes( t, randomNRGBA( 64, 48, false ) ),
	}

	tests := [][]byte{
		nil,
		[]byte{},
		[]byte("Hello world!"),
		bytes.Repeat( []byte("a"), 1000 ),
	}

	modes := []Options{
		{ Mode: lsb.OneBit, Framed: true },
		{ Mode: lsb.TwoBits, Framed: true },
		{ Mode: lsb.OneBit, Alpha: true, Framed: true },
		{ Mode: lsb.TwoBits, Alpha: true, Framed: true },
	}

	for _, data := range tests {
		for name, decoy := range images {
			for _, opts := range modes {
				enc, err := Hide( decoy, data, opts )
				if err != nil {
					t.Errorf("Failed to encode data into %s image: %v", name, err)
					continue
				}
				dec, err := Reveal( enc, opts )
				if err != nil {
					t.Errorf("Failed to extract data: %v", err)
				} else if bytes.Equal( data, dec ) == false {
					t.Errorf("Steganography spoiled the data. %v != %v", data, dec)
				}
			}
		}
	}
}

func TestPNGKeepsTransparency( t *testing.T ) {
	src := randomNRGBA( 32, 32, false )
	enc, err := Hide( pngBytes( t, src ), []byte("no alpha touched"), DefaultOptions() )
	require.NoError( t, err )

	out, err := png.Decode( bytes.NewReader( enc ) )
	require.NoError( t, err )
	n, ok := out.(*image.NRGBA)
	require.True( t, ok, "got %T", out )
	for i := 3; i < len(src.Pix); i += 4 {
		if src.Pix[i] != n.Pix[i] {
			t.Fatalf("Alpha changed at sample %d: %d -> %d", i, src.Pix[i], n.Pix[i])
		}
	}
}

func TestPNGUnframed( t *testing.T ) {
	decoy := pngBytes( t, randomNRGBA( 16, 16, true ) )
	data := []byte("raw payload")
	opts := Options{ Mode: lsb.TwoBits }

	enc, err := Hide( decoy, data, opts )
	require.NoError( t, err )
	opts.Length = len(data)
	dec, err := Reveal( enc, opts )
	require.NoError( t, err )
	assert.Equal( t, data, dec )
}

func TestBMP( t *testing.T ) {
	decoy := bmpBytes( t, randomNRGBA( 40, 30, true ) )
	for _, data := range [][]byte{ nil, []byte("Hello world!"), bytes.Repeat( []byte("A"), 400 ) } {
		for _, mode := range []lsb.Mode{ lsb.OneBit, lsb.TwoBits } {
			opts := Options{ Mode: mode, Framed: true }
			enc, err := Hide( decoy, data, opts )
			require.NoError( t, err )
			assert.Equal( t, BMP, Format( enc ) )
			dec, err := Reveal( enc, opts )
			require.NoError( t, err )
			assert.True( t, bytes.Equal( data, dec ), "%v != %v", data, dec )
		}
	}

	_, err := Hide( decoy, []byte("x"), Options{ Mode: lsb.OneBit, Alpha: true } )
	assert.ErrorIs( t, err, ErrUnsupported )
}

func TestCapacity( t *testing.T ) {
	decoy := pngBytes( t, randomNRGBA( 10, 10, true ) )
	n, err := Capacity( decoy, Options{ Mode: lsb.OneBit } )
	require.NoError( t, err )
	assert.Equal( t, 100 * 3 / 8, n )

	n, err = Capacity( decoy, Options{ Mode: lsb.TwoBits, Alpha: true, Framed: true } )
	require.NoError( t, err )
	assert.Equal( t, 100 * 4 * 2 / 8 - lsb.HeaderSize, n )

	n, err = Capacity( bmpBytes( t, randomNRGBA( 10, 10, true ) ), Options{ Mode: lsb.TwoBits } )
	require.NoError( t, err )
	assert.Equal( t, 75, n )

	_, err = Hide( decoy, make( []byte, 100 ), DefaultOptions() )
	assert.ErrorIs( t, err, lsb.ErrInsufficientCapacity )
}

func TestLossyFormatsRefused( t *testing.T ) {
	src := randomNRGBA( 8, 8, true )
	jpg := encodeWith( t, func( b *bytes.Buffer, m image.Image ) error { return jpeg.Encode( b, m, nil ) }, src )
	pal := image.NewPaletted( src.Bounds(), color.Palette{ color.Black, color.White } )
	gf := encodeWith( t, func( b *bytes.Buffer, m image.Image ) error { return gif.Encode( b, m, nil ) }, pal )

	for _, decoy := range [][]byte{ jpg, gf } {
		_, err := Hide( decoy, []byte("x"), DefaultOptions() )
		assert.ErrorIs( t, err, ErrLossyFormat )
		_, err = Reveal( decoy, DefaultOptions() )
		assert.ErrorIs( t, err, ErrLossyFormat )
	}

	_, err := Hide( []byte("not an image"), []byte("x"), DefaultOptions() )
	assert.ErrorIs( t, err, ErrUnsupported )
}

func TestLoadRGBRoundTrip( t *testing.T ) {
	src := randomNRGBA( 5, 3, true )
	buf := LoadRGB( src )
	require.Equal( t, 15, buf.Len() )
	out := RGBImage( buf )
	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			want := src.NRGBAAt( x, y )
			got := out.RGBAAt( x, y )
			assert.Equal( t, color.RGBA{ want.R, want.G, want.B, 0xff }, got )
		}
	}
}
