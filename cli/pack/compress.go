package pack

import (
	"bytes"
	"compress/gzip"
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// Compression selects the payload compression algorithm. The set is closed:
// it is fixed by the package format.
type Compression string

const (
	CompressionGzip Compression = "gzip"
	CompressionZstd Compression = "zstd"
	CompressionNone Compression = "none"
)

// level returns the compression level string recorded in the payload flags
// tag, or an empty string when the tag is not emitted.
func (c Compression) level() string {
	switch c {
	case CompressionGzip:
		return "9"
	case CompressionZstd:
		return "3"
	}
	return ""
}

// compressPayload compresses the serialized archive with the selected
// algorithm. CompressionNone is the identity function.
func compressPayload(payload []byte, algo Compression) ([]byte, error) {
	switch algo {
	case CompressionGzip:
		var buf bytes.Buffer
		writer, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
		if err != nil {
			return nil, &CompressionError{Algorithm: string(algo), Err: err}
		}
		if _, err := writer.Write(payload); err != nil {
			return nil, &CompressionError{Algorithm: string(algo), Err: err}
		}
		if err := writer.Close(); err != nil {
			return nil, &CompressionError{Algorithm: string(algo), Err: err}
		}

		return buf.Bytes(), nil

	case CompressionZstd:
		var buf bytes.Buffer
		writer, err := zstd.NewWriter(&buf, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, &CompressionError{Algorithm: string(algo), Err: err}
		}
		if _, err := writer.Write(payload); err != nil {
			return nil, &CompressionError{Algorithm: string(algo), Err: err}
		}
		if err := writer.Close(); err != nil {
			return nil, &CompressionError{Algorithm: string(algo), Err: err}
		}

		return buf.Bytes(), nil

	case CompressionNone:
		return payload, nil
	}

	return nil, &CompressionError{
		Algorithm: string(algo),
		Err:       fmt.Errorf("unknown algorithm"),
	}
}
