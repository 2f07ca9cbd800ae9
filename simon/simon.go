// Package simon implements the SIMON block cipher with a 128-bit block and
// 128-, 192-, or 256-bit keys, as specified by Beaulieu et al.
// (https://eprint.iacr.org/2013/404).
//
// SIMON is a Feistel cipher over two 64-bit halves whose round function is
// the bitwise f(x) = (x<<<1 & x<<<8) ^ x<<<2; there are no S-boxes and no
// separate diffusion layer. The key schedule is a linear-feedback recurrence
// over 64-bit words, with an irregular closed-form tail for the last few
// subkeys of each variant.
package simon

import (
	"crypto/cipher"
	"encoding/binary"
	"math/bits"
	"strconv"
)

// BlockSize is the SIMON 128/x block size in bytes.
const BlockSize = 16

// The key schedule constant c = 2^64 - 4 and the per-variant z sequences,
// packed as words and consumed from the least significant bit up.
const (
	keyConst = 0xfffffffffffffffc

	z128 = 0x7369f885192c0ef5
	z192 = 0xfc2ce51207a635db
	z256 = 0xfdc94c3a046d678b
)

// KeySizeError is returned by NewCipher for keys that are not 16, 24, or
// 32 bytes long.
type KeySizeError int

func (k KeySizeError) Error() string { return "simon: invalid key size " + strconv.Itoa(int(k)) }

type simonCipher struct {
	// 68, 69, or 72 subkeys for 128-, 192-, and 256-bit keys.
	k []uint64
}

// NewCipher returns a cipher.Block implementing SIMON 128/128, 128/192, or
// 128/256 according to the key length. Any other length returns a
// KeySizeError.
func NewCipher(key []byte) (cipher.Block, error) {
	switch len(key) {
	case 16, 24, 32:
	default:
		return nil, KeySizeError(len(key))
	}

	kw := make([]uint64, len(key)/8)
	for i := range kw {
		// The first subkey is the last key word.
		kw[len(kw)-1-i] = binary.BigEndian.Uint64(key[8*i:])
	}
	return &simonCipher{k: expandKey(kw)}, nil
}

// expandKey runs the linear-feedback recurrence seeded with the reversed key
// words. The final two to four subkeys of each variant fall outside the
// z-sequence recurrence and use the exact closed forms of the specification.
func expandKey(kw []uint64) []uint64 {
	switch len(kw) {
	case 2:
		k := make([]uint64, 68)
		copy(k, kw)
		z := uint64(z128)
		for i := 2; i < 66; i++ {
			k[i] = keyConst ^ z&1 ^ k[i-2] ^ rotr(k[i-1], 3) ^ rotr(k[i-1], 4)
			z >>= 1
		}
		k[66] = keyConst ^ 1 ^ k[64] ^ rotr(k[65], 3) ^ rotr(k[65], 4)
		k[67] = keyConst ^ k[65] ^ rotr(k[66], 3) ^ rotr(k[66], 4)
		return k
	case 3:
		k := make([]uint64, 69)
		copy(k, kw)
		z := uint64(z192)
		for i := 3; i < 67; i++ {
			k[i] = keyConst ^ z&1 ^ k[i-3] ^ rotr(k[i-1], 3) ^ rotr(k[i-1], 4)
			z >>= 1
		}
		k[67] = keyConst ^ k[64] ^ rotr(k[66], 3) ^ rotr(k[66], 4)
		k[68] = keyConst ^ 1 ^ k[65] ^ rotr(k[67], 3) ^ rotr(k[67], 4)
		return k
	default: // 4
		k := make([]uint64, 72)
		copy(k, kw)
		z := uint64(z256)
		for i := 4; i < 68; i++ {
			k[i] = keyConst ^ z&1 ^ k[i-4] ^ rotr(k[i-1], 3) ^ k[i-3] ^ rotr(k[i-1], 4) ^ rotr(k[i-3], 1)
			z >>= 1
		}
		k[68] = keyConst ^ k[64] ^ rotr(k[67], 3) ^ k[65] ^ rotr(k[67], 4) ^ rotr(k[65], 1)
		k[69] = keyConst ^ 1 ^ k[65] ^ rotr(k[68], 3) ^ k[66] ^ rotr(k[68], 4) ^ rotr(k[66], 1)
		k[70] = keyConst ^ k[66] ^ rotr(k[69], 3) ^ k[67] ^ rotr(k[69], 4) ^ rotr(k[67], 1)
		k[71] = keyConst ^ k[67] ^ rotr(k[70], 3) ^ k[68] ^ rotr(k[70], 4) ^ rotr(k[68], 1)
		return k
	}
}

func (s *simonCipher) BlockSize() int { return BlockSize }

func (s *simonCipher) Encrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("simon: input not full block")
	}
	if len(dst) < BlockSize {
		panic("simon: output not full block")
	}

	x := binary.BigEndian.Uint64(src)
	y := binary.BigEndian.Uint64(src[8:])

	k := s.k
	if len(k)%2 == 1 {
		// SIMON 128/192: the odd subkey takes a trailing half-round and a
		// halves swap after the regular two-round macros.
		for i := 0; i < len(k)-1; i += 2 {
			x, y = round2(x, y, k[i], k[i+1])
		}
		y ^= f(x) ^ k[len(k)-1]
		x, y = y, x
	} else {
		for i := 0; i < len(k); i += 2 {
			x, y = round2(x, y, k[i], k[i+1])
		}
	}

	binary.BigEndian.PutUint64(dst, x)
	binary.BigEndian.PutUint64(dst[8:], y)
}

func (s *simonCipher) Decrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("simon: input not full block")
	}
	if len(dst) < BlockSize {
		panic("simon: output not full block")
	}

	x := binary.BigEndian.Uint64(src)
	y := binary.BigEndian.Uint64(src[8:])

	k := s.k
	if len(k)%2 == 1 {
		// Undo the odd half-round and swap before unwinding the macros.
		x, y = y, x
		y ^= k[len(k)-1] ^ f(x)
		for i := len(k) - 2; i >= 0; i -= 2 {
			y, x = round2(y, x, k[i], k[i-1])
		}
	} else {
		for i := len(k) - 1; i >= 0; i -= 2 {
			y, x = round2(y, x, k[i], k[i-1])
		}
	}

	binary.BigEndian.PutUint64(dst, x)
	binary.BigEndian.PutUint64(dst[8:], y)
}

// round2 is the two-round Feistel macro, consuming one subkey per half.
func round2(x, y, k, l uint64) (uint64, uint64) {
	y ^= f(x) ^ k
	x ^= f(y) ^ l
	return x, y
}

func f(x uint64) uint64 {
	return bits.RotateLeft64(x, 1)&bits.RotateLeft64(x, 8) ^ bits.RotateLeft64(x, 2)
}

func rotr(x uint64, n int) uint64 { return bits.RotateLeft64(x, -n) }
