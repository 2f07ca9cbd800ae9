package present //nolint:testpackage // testing internals

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
	// All-zero key and plaintext vectors from the CHES 2007 paper (80-bit)
	// and the reference implementation (128-bit).
	for _, test := range []struct {
		name           string
		keySize        int
		wantCiphertext string
	}{
		{"80-bit key", 10, "5579c1387b228445"},
		{"128-bit key", 16, "04bdd5f4eaefcc19"},
	} {
		t.Run(test.name, func(t *testing.T) {
			c, err := NewCipher(make([]byte, test.keySize))
			if err != nil {
				t.Fatal(err)
			}

			plaintext := make([]byte, BlockSize)
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

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for _, keySize := range []int{10, 16} {
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

func TestPermuteInverse(t *testing.T) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for i := 0; i < 100; i++ {
		state := rng.Uint64()
		if got, want := permuteInv(permute(state)), state; got != want {
			t.Errorf("iteration %d: permuteInv(permute(x)) = %016x, want = %016x", i, got, want)
		}
	}
}

func TestSubstituteInverse(t *testing.T) {
	for i, s := range sbox {
		if got, want := int(sboxInv[s]), i; got != want {
			t.Errorf("sboxInv[sbox[%x]] = %x, want = %x", i, got, want)
		}
	}
}

func TestInvalidKeySizes(t *testing.T) {
	for _, n := range []int{0, 8, 9, 11, 15, 17, 32} {
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
	_, _ = drbg.Write([]byte("present round trip"))

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

		keySize := 10
		if sel%2 == 1 {
			keySize = 16
		}

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
	c, err := NewCipher(make([]byte, 10))
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
	c, err := NewCipher(make([]byte, 10))
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
