/*
 * Package lsb hides bytes in the least significant bits of pixel samples.
 *
 * Payload bits are written MSB-first, Mode bits per visited channel, pixels in
 * raster order and channels in storage order. Nothing but the payload itself is
 * written: the reader has to know its length (or use the framed variant).
 *
 * The buffer must come from and go to a lossless pixel format (PNG, BMP, raw).
 * Any lossy re-encoding after Encode destroys the payload.
 */
package lsb
import (
	"errors"
	"fmt"
)

var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrInsufficientCapacity = errors.New("insufficient capacity")
)

// Mode is the number of low-order bits of every channel which carry data.
type Mode uint8

const (
	OneBit = Mode(1)
	TwoBits = Mode(2)
)

func(m Mode) Valid() bool {
	return m == OneBit || m == TwoBits
}

func(m Mode) mask() uint8 {
	return uint8(1 << m) - 1
}

/*
 * Codec is a configured packer/unpacker. With SkipAlpha set, 4-channel buffers
 * keep their alpha channel untouched; by default alpha carries data as well,
 * which gives a third more capacity but changes transparency.
 */
type Codec struct {
	Mode		Mode
	SkipAlpha	bool
}

func Encode( buf PixelBuffer, payload []byte, mode Mode ) error {
	return Codec{ Mode: mode }.Encode( buf, payload )
}

func Decode( buf PixelBuffer, length int, mode Mode ) ([]byte, error) {
	return Codec{ Mode: mode }.Decode( buf, length )
}

// Capacity returns the amount of payload bits buf can carry, 0 for invalid mode.
func Capacity( buf PixelBuffer, mode Mode ) int {
	return Codec{ Mode: mode }.Capacity( buf )
}

func(c Codec) validate() error {
	if !c.Mode.Valid() {
		return fmt.Errorf("%w: lsb mode %d, must be 1 or 2", ErrInvalidParameter, c.Mode)
	}
	return nil
}

// channels detects from the first pixel how many samples per pixel are visited.
func(c Codec) channels( buf PixelBuffer ) (int, error) {
	if buf.Len() == 0 {
		return 0, nil
	}
	n := len( buf.Pixel(0) )
	switch {
	case n == 3:
		return 3, nil
	case n == 4 && c.SkipAlpha:
		return 3, nil
	case n == 4:
		return 4, nil
	}
	return 0, fmt.Errorf("%w: %d channels per pixel, must be 3 or 4", ErrInvalidParameter, n)
}

func(c Codec) Capacity( buf PixelBuffer ) int {
	if c.validate() != nil {
		return 0
	}
	n, err := c.channels( buf )
	if err != nil {
		return 0
	}
	return buf.Len() * n * int(c.Mode)
}

/*
 * Encode overwrites the low Mode bits of the buffer with payload bits.
 * On ErrInsufficientCapacity the buffer already holds a truncated prefix
 * of the payload and must be re-initialised by the caller.
 */
func(c Codec) Encode( buf PixelBuffer, payload []byte ) error {
	if err := c.validate(); err != nil {
		return err
	}
	visit, err := c.channels( buf )
	if err != nil {
		return err
	}
	if len(payload) == 0 {
		return nil
	}

	mode := uint(c.Mode)
	mask := c.Mode.mask()
	byteIdx, bitOff := 0, uint(0)

	for i := 0; i < buf.Len(); i++ {
		px := buf.Pixel(i)
		for ch := 0; ch < visit; ch++ {
			bits := (payload[byteIdx] >> (8 - mode - bitOff)) & mask
			px[ch] = (px[ch] &^ mask) | bits

			bitOff += mode
			if bitOff >= 8 {
				bitOff = 0
				byteIdx++
			}
			if byteIdx >= len(payload) {
				return nil
			}
		}
	}
	return fmt.Errorf("%w: %d of %d bytes fit into %d pixels",
		ErrInsufficientCapacity, byteIdx, len(payload), buf.Len())
}

// Decode reads length bytes back from the buffer.
func(c Codec) Decode( buf PixelBuffer, length int ) ([]byte, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}
	if length < 0 {
		return nil, fmt.Errorf("%w: negative length %d", ErrInvalidParameter, length)
	}
	visit, err := c.channels( buf )
	if err != nil {
		return nil, err
	}
	result := make( []byte, length )
	if length == 0 {
		return result, nil
	}

	mode := uint(c.Mode)
	mask := c.Mode.mask()
	byteIdx, bitOff := 0, uint(0)

	for i := 0; i < buf.Len(); i++ {
		px := buf.Pixel(i)
		for ch := 0; ch < visit; ch++ {
			result[byteIdx] |= (px[ch] & mask) << (8 - mode - bitOff)

			bitOff += mode
			if bitOff >= 8 {
				bitOff = 0
				byteIdx++
			}
			if byteIdx >= length {
				return result, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: only %d of %d bytes in %d pixels",
		ErrInsufficientCapacity, byteIdx, length, buf.Len())
}
