// Package content stores file bytes outside the record store. Handles are
// engine-assigned and unrelated to record ids or logical names.
package content

import (
	"context"
	"encoding/base64"
	"errors"
	"strconv"
)

// ErrInvalidData is returned by Store when the payload is not base64.
var ErrInvalidData = errors.New("invalid base64 data")

// Engine reads and writes opaque blobs. Read returns common.ErrorNotFound
// when the blob is absent; write failures are reported as common.ErrorStorage.
type Engine interface {
	// Store decodes a base64 payload, writes it under a fresh handle and
	// returns that handle.
	Store(ctx context.Context, dataBase64 string) (string, error)
	Read(ctx context.Context, ref string) ([]byte, error)
	// Write stores raw bytes under a caller-chosen handle. It is used for
	// derived blobs such as thumbnails.
	Write(ctx context.Context, ref string, data []byte) error
	Delete(ctx context.Context, ref string) error
}

// VariantRef names the derived blob of ref for the given image width.
func VariantRef(ref string, width int) string {
	return ref + "_" + strconv.Itoa(width)
}

func decodeBase64(s string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err == nil {
		return b, nil
	}
	if b, rawErr := base64.RawStdEncoding.DecodeString(s); rawErr == nil {
		return b, nil
	}
	return nil, ErrInvalidData
}
