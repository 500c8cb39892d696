package auth

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSign_GoldenSHA256(t *testing.T) {
	// Known-good vector produced by a reference client.
	canonical := CanonicalRequestString(
		"POST",
		"/v1/merchant",
		"22 02 2018 01:51:03",
		"aherrington@bluepay.com",
		"3da8f17aeb10a49d798f82c7d2b97592",
	)

	sig, err := Sign("password", canonical, HmacSHA256)
	require.NoError(t, err)
	assert.Equal(t, "5ZOOQBRxVHftINfZ73vkrtmaj9iSVMNycDCbKjjKJA8=", sig)
}

func TestSign_GoldenSHA1(t *testing.T) {
	sig, err := Sign("marketplace-secret", "date: Thu, 22 Feb 2018 01:51:03 GMT", HmacSHA1)
	require.NoError(t, err)
	assert.Equal(t, "X74jdMNMW2svqKUptA6dJepu/QM=", sig)
}

func TestSign_Deterministic(t *testing.T) {
	first, err := Sign("secret", "payload", HmacSHA256)
	require.NoError(t, err)
	second, err := Sign("secret", "payload", HmacSHA256)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSign_UnsupportedAlgorithm(t *testing.T) {
	_, err := Sign("secret", "payload", Algorithm("hmac-md5"))
	assert.Error(t, err)
	assert.False(t, Verify("secret", "payload", "anything", Algorithm("hmac-md5")))
}

func TestVerify_RoundTrip(t *testing.T) {
	for _, algorithm := range []Algorithm{HmacSHA1, HmacSHA256} {
		sig, err := Sign("secret", "some canonical string", algorithm)
		require.NoError(t, err)
		assert.True(t, Verify("secret", "some canonical string", sig, algorithm))
	}
}

func TestVerify_RejectsMutatedSignature(t *testing.T) {
	sig, err := Sign("secret", "some canonical string", HmacSHA256)
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(sig)
	require.NoError(t, err)

	// Flip a single bit anywhere in the digest and re-encode.
	for i := range raw {
		mutated := make([]byte, len(raw))
		copy(mutated, raw)
		mutated[i] ^= 0x01
		candidate := base64.StdEncoding.EncodeToString(mutated)
		assert.False(t, Verify("secret", "some canonical string", candidate, HmacSHA256),
			"bit flip at byte %d must fail verification", i)
	}
}

func TestVerify_RejectsWrongSecret(t *testing.T) {
	sig, err := Sign("secret", "canonical", HmacSHA256)
	require.NoError(t, err)
	assert.False(t, Verify("other-secret", "canonical", sig, HmacSHA256))
}

func TestCanonicalRequestString_NoDelimiters(t *testing.T) {
	canonical := CanonicalRequestString("GET", "/v1/payment", "date", "user", "md5")
	assert.Equal(t, "GET/v1/paymentdateusermd5", canonical)
}
