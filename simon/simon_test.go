package simon //nolint:testpackage // testing internals

import (
	"bytes"
	"encoding/hex"
	"errors"
	"golang.org/x/crypto/sha3"
	"math/rand"
	"testing"
	"time"

	fuzz "github.com/trailofbits/go-fuzz-utils"
)

func TestKnownAnswer(t *testing.T) {
	// Simon128/128, /192, and /256 vectors from appendix C of the
	// specification.
	for _, test := range []struct {
		name           string
		key            string
		plaintext      string
		wantCiphertext string
	}{
		{
			"128-bit key",
			"0f0e0d0c0b0a09080706050403020100",
			"63736564207372656c6c657661727420",
			"49681b1e1e54fe3f65aa832af84e0bbc",
		},
		{
			"192-bit key",
			"17161514131211100f0e0d0c0b0a09080706050403020100",
			"206572656874206e6568772065626972",
			"c4ac61effcdc0d4f6c9c8d6e2597b85b",
		},
		{
			"256-bit key",
			"1f1e1d1c1b1a191817161514131211100f0e0d0c0b0a09080706050403020100",
			"74206e69206d6f6f6d69732061207369",
			"8d2b5579afc8a3a03bf72a87efe7b868",
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			key, _ := hex.DecodeString(test.key)
			plaintext, _ := hex.DecodeString(test.plaintext)

			c, err := NewCipher(key)
			if err != nil {
				t.Fatal(err)
			}

			ciphertext := make([]byte, BlockSize)
			c.Encrypt(ciphertext, plaintext)
			if got, want := hex.EncodeToString(ciphertext), test.wantCiphertext; got != want {
				t.Errorf("Encrypt = %s, want = %s", got, want)
			}

			decrypted := make([]byte, BlockSize)
			c.Decrypt(decrypted, ciphertext)
			if got, want := decrypted, plaintext; !bytes.Equal(got, want) {
				t.Errorf("Decrypt = %x, want = %x", got, want)
			}
		})
	}
}

func TestSubkeyCounts(t *testing.T) {
	for _, test := range []struct {
		keySize int
		want    int
	}{
		{16, 68},
		{24, 69},
		{32, 72},
	} {
		c, err := NewCipher(make([]byte, test.keySize))
		if err != nil {
			t.Fatal(err)
		}
		if got, want := len(c.(*simonCipher).k), test.want; got != want {
			t.Errorf("key size %d: %d subkeys, want = %d", test.keySize, got, want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for _, keySize := range []int{16, 24, 32} {
		key := make([]byte, keySize)
		plaintext := make([]byte, BlockSize)
		ciphertext := make([]byte, BlockSize)
		decrypted := make([]byte, BlockSize)

		for i := 0; i < 100; i++ {
			rng.Read(key)
			rng.Read(plaintext)

			c, err := NewCipher(key)
			if err != nil {
				t.Fatal(err)
			}

			c.Encrypt(ciphertext, plaintext)
			c.Decrypt(decrypted, ciphertext)
			if !bytes.Equal(decrypted, plaintext) {
				t.Errorf("key size %d, iteration %d: round trip = %x, want = %x",
					keySize, i, decrypted, plaintext)
			}
		}
	}
}

func TestInvalidKeySizes(t *testing.T) {
	for _, n := range []int{0, 8, 12, 13, 15, 17, 23, 25, 31, 33, 64} {
		c, err := NewCipher(make([]byte, n))
		if c != nil {
			t.Errorf("NewCipher(%d bytes) returned a cipher", n)
		}

		var kse KeySizeError
		if !errors.As(err, &kse) {
			t.Errorf("NewCipher(%d bytes) = %v, want KeySizeError", n, err)
		}
	}
}

func FuzzRoundTrip(f *testing.F) {
	drbg := sha3.NewShake128()
	_, _ = drbg.Write([]byte("simon round trip"))

	for i := 0; i < 10; i++ {
		seed := make([]byte, 64)
		_, _ = drbg.Read(seed)
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		tp, err := fuzz.NewTypeProvider(data)
		if err != nil {
			t.Skip(err)
		}

		sel, err := tp.GetByte()
		if err != nil {
			t.Skip(err)
		}

		keySize := []int{16, 24, 32}[sel%3]
		key, err := tp.GetNBytes(keySize)
		if err != nil {
			t.Skip(err)
		}

		plaintext, err := tp.GetNBytes(BlockSize)
		if err != nil {
			t.Skip(err)
		}

		c, err := NewCipher(key)
		if err != nil {
			t.Fatal(err)
		}

		ciphertext := make([]byte, BlockSize)
		decrypted := make([]byte, BlockSize)
		c.Encrypt(ciphertext, plaintext)
		c.Decrypt(decrypted, ciphertext)
		if got, want := decrypted, plaintext; !bytes.Equal(got, want) {
			t.Errorf("round trip = %x, want = %x", got, want)
		}
	})
}

func BenchmarkEncrypt(b *testing.B) {
	c, err := NewCipher(make([]byte, 16))
	if err != nil {
		b.Fatal(err)
	}

	block := make([]byte, BlockSize)
	b.SetBytes(BlockSize)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		c.Encrypt(block, block)
	}
}

func BenchmarkDecrypt(b *testing.B) {
	c, err := NewCipher(make([]byte, 16))
	if err != nil {
		b.Fatal(err)
	}

	block := make([]byte, BlockSize)
	b.SetBytes(BlockSize)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		c.Decrypt(block, block)
	}
}
