package lsb
import (
	"errors"
	"fmt"
	"encoding/binary"
)

/*
 * Framed payloads: the payload is prefixed with its length as 8 bytes
 * little-endian, both written with the same LSB scheme. This way the reader
 * doesn't need to know the length in advance.
 */
const HeaderSize = 8

var ErrNoPayload = errors.New("there is no encoded data")

func EncodeFramed( c Codec, buf PixelBuffer, payload []byte ) error {
	framed := make( []byte, HeaderSize + len(payload) )
	binary.LittleEndian.PutUint64( framed, uint64(len(payload)) )
	copy( framed[HeaderSize:], payload )
	return c.Encode( buf, framed )
}

func DecodeFramed( c Codec, buf PixelBuffer ) ([]byte, error) {
	header, err := c.Decode( buf, HeaderSize )
	if errors.Is( err, ErrInsufficientCapacity ) {
		return nil, ErrNoPayload
	}
	if err != nil {
		return nil, err
	}

	length := binary.LittleEndian.Uint64( header )
	available := uint64( c.Capacity(buf) / 8 - HeaderSize )
	if length > available {
		return nil, fmt.Errorf("%w: header claims %d bytes, image holds %d",
			ErrInsufficientCapacity, length, available)
	}

	data, err := c.Decode( buf, HeaderSize + int(length) )
	if err != nil {
		return nil, err
	}
	return data[HeaderSize:], nil
}

// FramedCapacity returns how many payload bytes fit in buf with a header.
func FramedCapacity( c Codec, buf PixelBuffer ) int {
	n := c.Capacity(buf) / 8 - HeaderSize
	if n < 0 {
		return 0
	}
	return n
}
