package jwt

import (
	"strings"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestGenerateParse_IdaYVuelta(t *testing.T) {
	tok, err := Generate(testSecret, 42, 2, "softlink-test", 5)
	require.NoError(t, err)

	claims, err := Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, 2, claims.RoleID)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "softlink-test", claims.Issuer)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := Generate("", 1, 1, "x", 5)
	assert.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := Generate(testSecret, 1, 1, "x", -1)
	require.NoError(t, err)

	_, err = Parse(testSecret, tok)
	require.Error(t, err)
	assert.ErrorIs(t, err, gojwt.ErrTokenExpired)
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := Generate(testSecret, 1, 1, "x", 5)
	require.NoError(t, err)

	_, err = Parse("otro-secret", tok)
	assert.ErrorIs(t, err, gojwt.ErrTokenSignatureInvalid)
}

func TestParse_FirmaManipulada(t *testing.T) {
	tok, err := Generate(testSecret, 1, 1, "x", 5)
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = Parse(testSecret, tampered)
	assert.Error(t, err)
}

func TestParse_AlgoritmoNone(t *testing.T) {
	claims := Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   "1",
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: 1,
		RoleID: 1,
	}
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, claims).SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = Parse(testSecret, tok)
	assert.Error(t, err)
}
