package secret

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/kms"
	"github.com/aws/aws-sdk-go/service/kms/kmsiface"
	"github.com/convox/ftprelay/pkg/structs"
	"github.com/convox/logger"
	"github.com/pkg/errors"
	"golang.org/x/crypto/nacl/secretbox"
)

const (
	KeyLength   = 32
	NonceLength = 24
)

type envelope struct {
	Ciphertext   []byte `json:"c"`
	EncryptedKey []byte `json:"k"`
	Nonce        []byte `json:"n"`
}

// Resolver turns the encrypted credential into plaintext. Resolution
// happens at most once; the plaintext, or the failure, is kept for the life
// of the process.
type Resolver struct {
	KMS        kmsiface.KMSAPI
	Ciphertext string

	err      error
	logger   *logger.Logger
	once     sync.Once
	password string
}

func New(k kmsiface.KMSAPI, ciphertext string) *Resolver {
	return &Resolver{
		KMS:        k,
		Ciphertext: ciphertext,
		logger:     logger.New("ns=secret"),
	}
}

// Password resolves the credential on first use. The result outlives the
// caller, so cancellation of ctx does not reach the KMS call.
func (r *Resolver) Password(ctx context.Context) (string, error) {
	r.once.Do(func() {
		r.password, r.err = r.resolve(context.WithoutCancel(ctx))
	})

	return r.password, r.err
}

func (r *Resolver) resolve(ctx context.Context) (string, error) {
	log := r.logger.At("resolve").Start()

	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(r.Ciphertext))
	if err != nil {
		return "", log.Error(structs.ErrSecretUnavailable.Wrap(errors.WithStack(err)))
	}

	plain, err := Decrypt(ctx, r.KMS, data)
	if err != nil {
		return "", log.Error(err)
	}

	log.Success()

	return string(plain), nil
}

// Decrypt accepts a raw KMS ciphertext blob or a JSON envelope holding a
// KMS encrypted data key and a secretbox sealed payload.
func Decrypt(ctx context.Context, k kmsiface.KMSAPI, data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, structs.ErrSecretUnavailable.Errorf("empty ciphertext")
	}

	if e, ok := parseEnvelope(data); ok {
		return decryptEnvelope(ctx, k, e)
	}

	res, err := k.DecryptWithContext(ctx, &kms.DecryptInput{
		CiphertextBlob: data,
	})
	if err != nil {
		return nil, structs.ErrSecretUnavailable.Wrap(errors.WithStack(err))
	}

	return res.Plaintext, nil
}

func decryptEnvelope(ctx context.Context, k kmsiface.KMSAPI, e *envelope) ([]byte, error) {
	if len(e.Nonce) < NonceLength {
		return nil, structs.ErrSecretUnavailable.Errorf("invalid envelope nonce")
	}

	res, err := k.DecryptWithContext(ctx, &kms.DecryptInput{
		CiphertextBlob: e.EncryptedKey,
	})
	if err != nil {
		return nil, structs.ErrSecretUnavailable.Wrap(errors.WithStack(err))
	}

	if len(res.Plaintext) < KeyLength {
		return nil, structs.ErrSecretUnavailable.Errorf("invalid data key")
	}

	var key [KeyLength]byte
	copy(key[:], res.Plaintext[0:KeyLength])

	var nonce [NonceLength]byte
	copy(nonce[:], e.Nonce[0:NonceLength])

	dec, ok := secretbox.Open(nil, e.Ciphertext, &nonce, &key)
	if !ok {
		return nil, structs.ErrSecretUnavailable.Errorf("failed decryption")
	}

	return dec, nil
}

func parseEnvelope(data []byte) (*envelope, bool) {
	if !bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
		return nil, false
	}

	var e envelope

	if err := json.Unmarshal(data, &e); err != nil {
		return nil, false
	}

	if len(e.EncryptedKey) == 0 {
		return nil, false
	}

	return &e, true
}

// Encrypt produces a value suitable for the password variable. With envelope
// set the payload is sealed locally under a fresh KMS data key.
func Encrypt(ctx context.Context, k kmsiface.KMSAPI, keyID string, plain []byte, envelope bool) (string, error) {
	if keyID == "" {
		return "", fmt.Errorf("key required")
	}

	var data []byte
	var err error

	if envelope {
		data, err = encryptEnvelope(ctx, k, keyID, plain)
	} else {
		data, err = encryptRaw(ctx, k, keyID, plain)
	}
	if err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(data), nil
}

func encryptRaw(ctx context.Context, k kmsiface.KMSAPI, keyID string, plain []byte) ([]byte, error) {
	res, err := k.EncryptWithContext(ctx, &kms.EncryptInput{
		KeyId:     aws.String(keyID),
		Plaintext: plain,
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return res.CiphertextBlob, nil
}

func encryptEnvelope(ctx context.Context, k kmsiface.KMSAPI, keyID string, plain []byte) ([]byte, error) {
	res, err := k.GenerateDataKeyWithContext(ctx, &kms.GenerateDataKeyInput{
		KeyId:         aws.String(keyID),
		NumberOfBytes: aws.Int64(KeyLength),
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if len(res.Plaintext) < KeyLength {
		return nil, fmt.Errorf("invalid data key")
	}

	var key [KeyLength]byte
	copy(key[:], res.Plaintext[0:KeyLength])

	nres, err := k.GenerateRandomWithContext(ctx, &kms.GenerateRandomInput{
		NumberOfBytes: aws.Int64(NonceLength),
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if len(nres.Plaintext) < NonceLength {
		return nil, fmt.Errorf("invalid nonce")
	}

	var nonce [NonceLength]byte
	copy(nonce[:], nres.Plaintext[0:NonceLength])

	e := &envelope{
		Ciphertext:   secretbox.Seal(nil, plain, &nonce, &key),
		EncryptedKey: res.CiphertextBlob,
		Nonce:        nonce[:],
	}

	return json.Marshal(e)
}
