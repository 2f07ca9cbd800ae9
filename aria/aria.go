// Package aria implements the ARIA block cipher with a 128-bit key, as
// specified in RFC 5794.
//
// ARIA is a substitution-permutation network over 128-bit blocks: each round
// XORs a round key into the state, passes every byte through one of four
// 8-bit S-boxes, and mixes the result with an involutive GF(2)-linear byte
// transform. Decryption runs the same round structure over a reordered,
// diffusion-adjusted copy of the encryption schedule.
package aria

import (
	"crypto/cipher"
	"encoding/binary"
	"strconv"
)

const (
	// BlockSize is the ARIA block size in bytes.
	BlockSize = 16

	// KeySize is the ARIA key size in bytes. Only 128-bit keys are supported.
	KeySize = 16

	rounds = 13
)

// KeySizeError is returned by NewCipher for keys of any length other than
// KeySize.
type KeySizeError int

func (k KeySizeError) Error() string { return "aria: invalid key size " + strconv.Itoa(int(k)) }

// The 128-bit key schedule constants CK1..CK3, the binary expansion of
// 1/pi split into three blocks.
var ck = [3][4]uint32{ //nolint:gochecknoglobals // these are constants
	{0x517cc1b7, 0x27220a94, 0xfe13abe8, 0xfa9a6ee0},
	{0x6db14acc, 0x9e21c820, 0xff28b1d5, 0xef5de2b0},
	{0xdb92371d, 0x2126e970, 0x03249775, 0x04e8c90e},
}

type ariaCipher struct {
	ek [rounds][4]uint32
	dk [rounds][4]uint32
}

// NewCipher returns a cipher.Block implementing ARIA-128. The key must be
// exactly 16 bytes; any other length returns a KeySizeError.
func NewCipher(key []byte) (cipher.Block, error) {
	if len(key) != KeySize {
		return nil, KeySizeError(len(key))
	}
	c := new(ariaCipher)
	c.expandKey(key)
	return c, nil
}

func (c *ariaCipher) BlockSize() int { return BlockSize }

func (c *ariaCipher) Encrypt(dst, src []byte) { c.crypt(dst, src, &c.ek) }

func (c *ariaCipher) Decrypt(dst, src []byte) { c.crypt(dst, src, &c.dk) }

func (c *ariaCipher) crypt(dst, src []byte, rk *[rounds][4]uint32) {
	if len(src) < BlockSize {
		panic("aria: input not full block")
	}
	if len(dst) < BlockSize {
		panic("aria: output not full block")
	}

	var p [4]uint32
	for i := range p {
		p[i] = binary.BigEndian.Uint32(src[4*i:])
	}

	// 11 alternating odd/even rounds, then SL2 between the last two keys.
	for r := 0; r < 11; r++ {
		if r%2 == 0 {
			p = fo(p, rk[r])
		} else {
			p = fe(p, rk[r])
		}
	}
	p = xor(sl2(xor(p, rk[11])), rk[12])

	for i := range p {
		binary.BigEndian.PutUint32(dst[4*i:], p[i])
	}
}

// expandKey derives both round key schedules from the master key. The
// decryption schedule is the encryption schedule reversed, with the interior
// keys passed through the diffusion layer (RFC 5794, section 2.4.4).
func (c *ariaCipher) expandKey(key []byte) {
	var w0 [4]uint32
	for i := range w0 {
		w0[i] = binary.BigEndian.Uint32(key[4*i:])
	}

	// KR is all zero for a 128-bit key, so the XOR into W1 drops out.
	w1 := fo(w0, ck[0])
	w2 := xor(fe(w1, ck[1]), w0)
	w3 := xor(fo(w2, ck[2]), w1)

	c.ek[0] = xor(w0, rotr(w1, 19))
	c.ek[1] = xor(w1, rotr(w2, 19))
	c.ek[2] = xor(w2, rotr(w3, 19))
	c.ek[3] = xor(rotr(w0, 19), w3)
	c.ek[4] = xor(w0, rotr(w1, 31))
	c.ek[5] = xor(w1, rotr(w2, 31))
	c.ek[6] = xor(w2, rotr(w3, 31))
	c.ek[7] = xor(rotr(w0, 31), w3)
	c.ek[8] = xor(w0, rotl(w1, 61))
	c.ek[9] = xor(w1, rotl(w2, 61))
	c.ek[10] = xor(w2, rotl(w3, 61))
	c.ek[11] = xor(rotl(w0, 61), w3)
	c.ek[12] = xor(w0, rotl(w1, 31))

	c.dk[0] = c.ek[rounds-1]
	for i := 1; i < rounds-1; i++ {
		c.dk[i] = diffuse(c.ek[rounds-1-i])
	}
	c.dk[rounds-1] = c.ek[0]
}

// fo is the odd round function A(SL1(d ^ rk)).
func fo(d, rk [4]uint32) [4]uint32 { return diffuse(sl1(xor(d, rk))) }

// fe is the even round function A(SL2(d ^ rk)).
func fe(d, rk [4]uint32) [4]uint32 { return diffuse(sl2(xor(d, rk))) }

func sl1(x [4]uint32) [4]uint32 {
	var y [4]uint32
	for i, w := range x {
		y[i] = uint32(sb1[byte(w>>24)])<<24 |
			uint32(sb2[byte(w>>16)])<<16 |
			uint32(sb3[byte(w>>8)])<<8 |
			uint32(sb4[byte(w)])
	}
	return y
}

// sl2 is sl1 with the S-box assignment rotated by two byte positions.
func sl2(x [4]uint32) [4]uint32 {
	var y [4]uint32
	for i, w := range x {
		y[i] = uint32(sb3[byte(w>>24)])<<24 |
			uint32(sb4[byte(w>>16)])<<16 |
			uint32(sb1[byte(w>>8)])<<8 |
			uint32(sb2[byte(w)])
	}
	return y
}

// diffuse applies the diffusion layer A: each output byte is the XOR of seven
// fixed input bytes. A is an involution, which the decryption schedule relies
// on.
func diffuse(in [4]uint32) [4]uint32 {
	var x [16]byte
	for i, w := range in {
		binary.BigEndian.PutUint32(x[4*i:], w)
	}

	var y [16]byte
	y[0] = x[3] ^ x[4] ^ x[6] ^ x[8] ^ x[9] ^ x[13] ^ x[14]
	y[1] = x[2] ^ x[5] ^ x[7] ^ x[8] ^ x[9] ^ x[12] ^ x[15]
	y[2] = x[1] ^ x[4] ^ x[6] ^ x[10] ^ x[11] ^ x[12] ^ x[15]
	y[3] = x[0] ^ x[5] ^ x[7] ^ x[10] ^ x[11] ^ x[13] ^ x[14]
	y[4] = x[0] ^ x[2] ^ x[5] ^ x[8] ^ x[11] ^ x[14] ^ x[15]
	y[5] = x[1] ^ x[3] ^ x[4] ^ x[9] ^ x[10] ^ x[14] ^ x[15]
	y[6] = x[0] ^ x[2] ^ x[7] ^ x[9] ^ x[10] ^ x[12] ^ x[13]
	y[7] = x[1] ^ x[3] ^ x[6] ^ x[8] ^ x[11] ^ x[12] ^ x[13]
	y[8] = x[0] ^ x[1] ^ x[4] ^ x[7] ^ x[10] ^ x[13] ^ x[15]
	y[9] = x[0] ^ x[1] ^ x[5] ^ x[6] ^ x[11] ^ x[12] ^ x[14]
	y[10] = x[2] ^ x[3] ^ x[5] ^ x[6] ^ x[8] ^ x[13] ^ x[15]
	y[11] = x[2] ^ x[3] ^ x[4] ^ x[7] ^ x[9] ^ x[12] ^ x[14]
	y[12] = x[1] ^ x[2] ^ x[6] ^ x[7] ^ x[9] ^ x[11] ^ x[12]
	y[13] = x[0] ^ x[3] ^ x[6] ^ x[7] ^ x[8] ^ x[10] ^ x[13]
	y[14] = x[0] ^ x[3] ^ x[4] ^ x[5] ^ x[9] ^ x[11] ^ x[14]
	y[15] = x[1] ^ x[2] ^ x[4] ^ x[5] ^ x[8] ^ x[10] ^ x[15]

	var out [4]uint32
	for i := range out {
		out[i] = binary.BigEndian.Uint32(y[4*i:])
	}
	return out
}

func xor(a, b [4]uint32) [4]uint32 {
	return [4]uint32{a[0] ^ b[0], a[1] ^ b[1], a[2] ^ b[2], a[3] ^ b[3]}
}

// rotr rotates a 128-bit value (most significant word first) right by n bits,
// 0 < n < 128.
func rotr(x [4]uint32, n uint) [4]uint32 {
	q, r := n/32, n%32
	var y [4]uint32
	for i := range y {
		y[i] = x[(uint(i)+4-q)%4]
	}
	if r == 0 {
		return y
	}
	var z [4]uint32
	for i := range z {
		z[i] = y[i]>>r | y[(i+3)%4]<<(32-r)
	}
	return z
}

func rotl(x [4]uint32, n uint) [4]uint32 { return rotr(x, 128-n) }
