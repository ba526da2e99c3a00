package crate

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"

	bin "github.com/saylorsolutions/binmap"
	"golang.org/x/crypto/scrypt"
)

const (
	DefaultLongIterations  uint64 = 1 << 20
	DefaultShortIterations uint64 = 1 << 15
	DefaultRelBlockSize    uint8  = 8
	DefaultCpuCost         uint8  = 1
	AES256KeySize          uint8  = 256 / 8
	AES128KeySize          uint8  = 128 / 8
)

var (
	ErrEmptyPassPhrase = errors.New("cannot use an empty passphrase")
	ErrInvalidData     = errors.New("unable to use input data")
)

// KeyGenerator derives AES keys from a passphrase with scrypt.
type KeyGenerator struct {
	iterations        uint64
	relativeBlockSize uint8
	cpuCost           uint8
	aesKeySize        uint8
}

func (g *KeyGenerator) mapper() bin.Mapper {
	return bin.MapSequence(
		bin.Int(&g.iterations),
		bin.Byte(&g.relativeBlockSize),
		bin.Byte(&g.cpuCost),
		bin.Byte(&g.aesKeySize),
	)
}

type GeneratorOpt = func(*KeyGenerator) error

func SetAES256KeySize() GeneratorOpt {
	return func(gen *KeyGenerator) error {
		gen.aesKeySize = AES256KeySize
		return nil
	}
}

func SetAES128KeySize() GeneratorOpt {
	return func(gen *KeyGenerator) error {
		gen.aesKeySize = AES128KeySize
		return nil
	}
}

// SetLongDelayIterations sets a higher iteration count, for stores that are opened rarely.
func SetLongDelayIterations() GeneratorOpt {
	return func(gen *KeyGenerator) error {
		gen.iterations = DefaultLongIterations
		return nil
	}
}

// SetShortDelayIterations sets a lower iteration count, and is the default.
// It's recommended to use longer passphrases with this approach.
func SetShortDelayIterations() GeneratorOpt {
	return func(gen *KeyGenerator) error {
		gen.iterations = DefaultShortIterations
		return nil
	}
}

// SetIterations allows the caller to customize the iteration count.
// Only use this option if you know what you're doing.
func SetIterations(iterations uint64) GeneratorOpt {
	return func(gen *KeyGenerator) error {
		if iterations <= 1 {
			return errors.New("iterations cannot be <= 1")
		}
		if iterations&(iterations-1) != 0 {
			return errors.New("iterations must be a power of 2")
		}
		gen.iterations = iterations
		return nil
	}
}

// SetCPUCost sets the parallelism factor for key generation from the default of 1.
// Only use this option if you know what you're doing.
func SetCPUCost(cost uint8) GeneratorOpt {
	return func(gen *KeyGenerator) error {
		if cost < DefaultCpuCost {
			return errors.New("cpu cost must be at least 1")
		}
		gen.cpuCost = cost
		return nil
	}
}

// SetRelativeBlockSize sets the relative block size.
// Only use this option if you know what you're doing.
func SetRelativeBlockSize(size uint8) GeneratorOpt {
	return func(gen *KeyGenerator) error {
		if size < DefaultRelBlockSize {
			return errors.New("relative block size must be at least 8")
		}
		gen.relativeBlockSize = size
		return nil
	}
}

// NewKeyGenerator creates a new KeyGenerator using the options provided as zero or more GeneratorOpt.
// By default, the generator generates a key for AES256KeySize using DefaultShortIterations.
func NewKeyGenerator(opts ...GeneratorOpt) (*KeyGenerator, error) {
	gen := &KeyGenerator{
		iterations:        DefaultShortIterations,
		relativeBlockSize: DefaultRelBlockSize,
		cpuCost:           DefaultCpuCost,
		aesKeySize:        AES256KeySize,
	}
	for _, opt := range opts {
		if err := opt(gen); err != nil {
			return nil, err
		}
	}
	return gen, nil
}

func (g *KeyGenerator) validate() error {
	if g.iterations <= 1 || g.iterations&(g.iterations-1) != 0 {
		return fmt.Errorf("%w: invalid iteration count %d", ErrInvalidData, g.iterations)
	}
	if g.relativeBlockSize < DefaultRelBlockSize || g.cpuCost < DefaultCpuCost {
		return fmt.Errorf("%w: invalid scrypt parameters", ErrInvalidData)
	}
	if g.aesKeySize != AES256KeySize && g.aesKeySize != AES128KeySize {
		return fmt.Errorf("%w: invalid AES key size %d", ErrInvalidData, g.aesKeySize)
	}
	return nil
}

// GenerateKey will generate an AES key and a new random salt.
func (g *KeyGenerator) GenerateKey(pass []byte) (key, salt []byte, err error) {
	if len(pass) == 0 {
		return nil, nil, ErrEmptyPassPhrase
	}
	salt = make([]byte, g.aesKeySize)
	if _, err = rand.Read(salt); err != nil {
		return nil, nil, err
	}
	key, err = scrypt.Key(pass, salt, int(g.iterations), int(g.relativeBlockSize), int(g.cpuCost), int(g.aesKeySize))
	return key, salt, err
}

// DeriveKey will recover a key with the salt at the end of a sealed payload and the given passphrase.
// This doesn't ensure that the given passphrase is the *correct* passphrase used to seal the payload.
func (g *KeyGenerator) DeriveKey(pass []byte, sealed []byte) (key []byte, err error) {
	if len(pass) == 0 {
		return nil, ErrEmptyPassPhrase
	}
	if len(sealed) <= int(g.aesKeySize) {
		return nil, fmt.Errorf("%w: input data isn't long enough to contain a key salt", ErrInvalidData)
	}
	salt := sealed[len(sealed)-int(g.aesKeySize):]
	return scrypt.Key(pass, salt, int(g.iterations), int(g.relativeBlockSize), int(g.cpuCost), int(g.aesKeySize))
}

// Lock will encrypt the payload with the given key, and append the given salt to the payload.
// Tampering with the salt or the payload would prevent Unlock from recovering the payload.
func Lock(key, salt, data []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	return append(gcm.Seal(nonce, nonce, data, nil), salt...), nil
}

// Unlock will decrypt the payload after stripping the salt from the end of it.
// The salt length is expected to match the key length, which is enforced by KeyGenerator.
func Unlock(key, data []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize+gcm.Overhead()+len(key) {
		return nil, fmt.Errorf("%w: sealed payload is too short", ErrInvalidData)
	}
	nonce, cipherText := data[:nonceSize], data[nonceSize:len(data)-len(key)]
	plain, err := gcm.Open(nil, nonce, cipherText, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	return plain, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Sealer encrypts store payloads with a key derived from a passphrase.
type Sealer struct {
	gen  *KeyGenerator
	pass []byte
}

// NewSealer creates a Sealer for the passphrase. If gen is nil, a default KeyGenerator is used.
func NewSealer(pass []byte, gen *KeyGenerator) (*Sealer, error) {
	if len(pass) == 0 {
		return nil, ErrEmptyPassPhrase
	}
	if gen == nil {
		var err error
		gen, err = NewKeyGenerator()
		if err != nil {
			return nil, err
		}
	}
	return &Sealer{
		gen:  gen,
		pass: append([]byte(nil), pass...),
	}, nil
}

// Seal encrypts data with a freshly salted key.
func (s *Sealer) Seal(data []byte) ([]byte, error) {
	key, salt, err := s.gen.GenerateKey(s.pass)
	if err != nil {
		return nil, err
	}
	return Lock(key, salt, data)
}

// Unseal decrypts data that was sealed with the settings of gen.
func (s *Sealer) Unseal(gen *KeyGenerator, data []byte) ([]byte, error) {
	if err := gen.validate(); err != nil {
		return nil, err
	}
	key, err := gen.DeriveKey(s.pass, data)
	if err != nil {
		return nil, err
	}
	return Unlock(key, data)
}
