package util

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"

	"github.com/google/uuid"
)

// bufferSpace namespaces pixel buffer fingerprints.
var bufferSpace = uuid.MustParse("6f1c7a52-3b7e-4d0a-9a49-5c2f1e8d0b11")

// Md5ThenHex is the hex MD5 digest of an encoded file, as printed by info.
func Md5ThenHex(raw []byte) string {
	sum := md5.Sum(raw)
	return hex.EncodeToString(sum[:])
}

// Fingerprint names a pixel buffer by content; equal buffers share a fingerprint.
func Fingerprint(pix []byte) string {
	return uuid.NewMD5(bufferSpace, pix).String()
}

// HashUUID derives a UUID from the JSON form of value, e.g. an operation's parameters.
func HashUUID(value any) string {
	raw, err := json.Marshal(value)
	if err != nil {
		return ""
	}
	hash := md5.Sum(raw)
	id, err := uuid.FromBytes(hash[:])
	if err != nil {
		return ""
	}
	return id.String()
}

// NewRunID returns a random id used to correlate the log lines of one invocation.
func NewRunID() string {
	return uuid.NewString()
}
