package base

import (
	"encoding/binary"
	"fmt"
	"github.com/ValentinKolb/sfc/rpc/common"
	"io"
	"net"
)

// writeFrame writes a frame to the writer with the format:
// - 4 bytes: data length (int32, big endian)
// - N bytes: data payload
func writeFrame(w io.Writer, data []byte) error {
	if len(data) > common.MaxFramePayload {
		return fmt.Errorf("%w: %d bytes", common.ErrFrameTooLarge, len(data))
	}

	header := make([]byte, common.FrameHeaderSize)
	binary.BigEndian.PutUint32(header, uint32(int32(len(data))))

	// net.Buffers combines header and payload into a single write where supported
	b := net.Buffers{header, data}
	_, err := b.WriteTo(w)
	return err
}

// readFrame reads one frame from the reader
// The declared length is checked against maxSize before the payload buffer is allocated
// A declared length of 0 yields an empty, non nil payload
func readFrame(r io.Reader, maxSize int) ([]byte, error) {
	header := make([]byte, common.FrameHeaderSize)

	// Read header
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, err
	}

	// Parse header
	contentLength := int32(binary.BigEndian.Uint32(header))

	if contentLength < 0 {
		return nil, fmt.Errorf("%w: %d", common.ErrNegativeLength, contentLength)
	}
	if int(contentLength) > maxSize {
		return nil, fmt.Errorf("%w: declared %d bytes, limit is %d", common.ErrFrameTooLarge, contentLength, maxSize)
	}

	// If no data, return empty slice
	if contentLength == 0 {
		return []byte{}, nil
	}

	// Read data
	buf := make([]byte, contentLength)
	if _, err := io.ReadFull(r, buf); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}

	return buf, nil
}
