/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2026 Markus Stenberg
 *
 * Created:       Tue Oct 13 09:42:12 2026 mstenber
 * Last modified: Fri Oct 16 16:58:40 2026 mstenber
 * Edit time:     63 min
 *
 */

// codec library is responsible for transforming data + additionalData
// to different kind of data. This means in practise either
// encrypting/decrypting, authenticating, or compressing/uncompressing
// on case-by-case basis.
//
// CodecChain makes it possible to combine multiple Codecs that do the
// particular sub-EncodeBytes/DecodeBytes steps.
package codec

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/subtle"
	"encoding/binary"
	"log"

	"github.com/fingon/go-bookshelf/util"
	"github.com/golang/snappy"
	"github.com/jacobsa/crypto/cmac"
	"github.com/minio/sha256-simd"
	"github.com/pkg/errors"
	"golang.org/x/crypto/pbkdf2"
)

var ErrAuthentication = errors.New("message authentication failed")

// Codec
//
// Single transformation of byte slices.
type Codec interface {
	DecodeBytes(data, additionalData []byte) (ret []byte, err error)
	EncodeBytes(data, additionalData []byte) (ret []byte, err error)
}

const keySize = 32

func deriveKey(password, salt []byte, iter int) []byte {
	return pbkdf2.Key(password, salt, iter, keySize, sha256.New)
}

// EncryptingCodec
//
// AES GCM based encrypting/decrypting (+authenticating) Codec.
type EncryptingCodec struct {
	gcm cipher.AEAD
}

func (self EncryptingCodec) Init(password, salt []byte, iter int) *EncryptingCodec {
	block, err := aes.NewCipher(deriveKey(password, salt, iter))
	if err != nil {
		log.Panic(err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		log.Panic(err)
	}
	self.gcm = gcm
	return &self
}

func (self *EncryptingCodec) DecodeBytes(data, additionalData []byte) (ret []byte, err error) {
	var ed EncryptedData
	if err = decodeEnvelope(data, &ed); err != nil {
		return
	}
	ret, err = self.gcm.Open(nil, ed.Nonce, ed.EncryptedData, additionalData)
	if err != nil {
		err = errors.Wrap(ErrAuthentication, err.Error())
	}
	return
}

func (self *EncryptingCodec) EncodeBytes(data, additionalData []byte) (ret []byte, err error) {
	nonce := make([]byte, self.gcm.NonceSize())
	if _, err = rand.Read(nonce); err != nil {
		return
	}
	ciphertext := self.gcm.Seal(nil, nonce, data, additionalData)
	return encodeEnvelope(&EncryptedData{Nonce: nonce, EncryptedData: ciphertext})
}

// AuthenticatingCodec
//
// AES-CMAC tag is appended to the (plaintext) data; decoding fails
// if data or additional data has been changed.
type AuthenticatingCodec struct {
	key []byte
}

func (self AuthenticatingCodec) Init(password, salt []byte, iter int) *AuthenticatingCodec {
	self.key = deriveKey(password, salt, iter)
	return &self
}

func (self *AuthenticatingCodec) tag(data, additionalData []byte) []byte {
	// cmac.Hash is stateful, so one per call
	h, err := cmac.New(self.key)
	if err != nil {
		log.Panic(err)
	}
	// length prefix keeps additionalData/data boundary unambiguous
	var l [4]byte
	binary.BigEndian.PutUint32(l[:], uint32(len(additionalData)))
	h.Write(l[:])
	h.Write(additionalData)
	h.Write(data)
	return h.Sum(nil)
}

func (self *AuthenticatingCodec) DecodeBytes(data, additionalData []byte) (ret []byte, err error) {
	n := len(data) - aes.BlockSize
	if n < 0 {
		return nil, errors.Wrap(ErrAuthentication, "too short")
	}
	ret = data[:n]
	if subtle.ConstantTimeCompare(data[n:], self.tag(ret, additionalData)) != 1 {
		return nil, ErrAuthentication
	}
	return ret, nil
}

func (self *AuthenticatingCodec) EncodeBytes(data, additionalData []byte) (ret []byte, err error) {
	return util.ConcatBytes(data, self.tag(data, additionalData)), nil
}

// CompressingCodec
//
// On-the-fly compressing Codec. If the result does not improve, the
// result is marked to be plaintext and passed as-is (at cost of few
// bytes of envelope).
type CompressingCodec struct {
}

func (self *CompressingCodec) DecodeBytes(data, additionalData []byte) (ret []byte, err error) {
	var cd CompressedData
	if err = decodeEnvelope(data, &cd); err != nil {
		return
	}
	switch cd.CompressionType {
	case CompressionType_PLAIN:
		ret = cd.RawData
	case CompressionType_SNAPPY:
		ret, err = snappy.Decode(nil, cd.RawData)
		if err != nil {
			err = errors.Wrap(err, "snappy.Decode")
		}
	default:
		err = errors.Errorf("unknown compression type %d", cd.CompressionType)
	}
	return
}

func (self *CompressingCodec) EncodeBytes(data, additionalData []byte) (ret []byte, err error) {
	cd := CompressedData{CompressionType: CompressionType_SNAPPY,
		RawData: snappy.Encode(nil, data)}
	if len(cd.RawData) >= len(data) {
		cd.CompressionType = CompressionType_PLAIN
		cd.RawData = data
	}
	return encodeEnvelope(&cd)
}

type CodecChain struct {
	codecs, reverseCodecs []Codec
}

// Init method initializes the codec chain.
//
// codecs are given in decryption order, so e.g.
// encrypting one should be given before compressing one.
func (self CodecChain) Init(codecs ...Codec) *CodecChain {
	self.codecs = codecs
	// Reverse the codec slice for encryption purposes
	rc := make([]Codec, len(codecs))
	for i, c := range codecs {
		rc[len(codecs)-i-1] = c
	}
	self.reverseCodecs = rc
	return &self
}

func (self *CodecChain) DecodeBytes(data, additionalData []byte) (ret []byte, err error) {
	ret = data
	for _, c := range self.codecs {
		ret, err = c.DecodeBytes(ret, additionalData)
		if err != nil {
			return
		}
	}
	return
}

func (self *CodecChain) EncodeBytes(data, additionalData []byte) (ret []byte, err error) {
	ret = data
	for _, c := range self.reverseCodecs {
		ret, err = c.EncodeBytes(ret, additionalData)
		if err != nil {
			return
		}
	}
	return
}
