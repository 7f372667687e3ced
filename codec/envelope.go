/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2026 Markus Stenberg
 *
 * Created:       Tue Oct 13 10:20:37 2026 mstenber
 * Last modified: Thu Oct 15 14:12:09 2026 mstenber
 * Edit time:     16 min
 *
 */

package codec

import (
	"github.com/pkg/errors"
	ugorji "github.com/ugorji/go/codec"
)

// Envelopes are msgpack encoded as arrays, so field order below is
// the wire format; only append.

var msgpackHandle ugorji.MsgpackHandle

func init() {
	msgpackHandle.StructToArray = true
}

type EncryptedData struct {
	// nonce used for AES GCM
	Nonce []byte

	// EncryptedData is AES GCM encrypted payload
	EncryptedData []byte
}

type CompressionType byte

const (
	CompressionType_UNSET CompressionType = iota

	// The data has not been compressed.
	CompressionType_PLAIN

	// The data is compressed with Snappy.
	CompressionType_SNAPPY
)

type CompressedData struct {
	// CompressionType describes how the data has been compressed.
	CompressionType CompressionType

	// RawData is the raw data of the client (whatever it is)
	RawData []byte
}

func encodeEnvelope(v interface{}) (b []byte, err error) {
	err = ugorji.NewEncoderBytes(&b, &msgpackHandle).Encode(v)
	if err != nil {
		err = errors.Wrap(err, "envelope encode")
	}
	return
}

func decodeEnvelope(b []byte, v interface{}) error {
	err := ugorji.NewDecoderBytes(b, &msgpackHandle).Decode(v)
	return errors.Wrap(err, "envelope decode")
}
