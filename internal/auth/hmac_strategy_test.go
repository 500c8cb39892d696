package auth

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/aherrington/merchant-api/internal/domain"
)

func TestHMACStrategy_ValidSignature(t *testing.T) {
	store := newFakeCredentialStore(domain.NewPrincipal("aherrington@bluepay.com", "password"))
	strategy := NewHMACStrategy(store, "", zaptest.NewLogger(t))

	r := httptest.NewRequest("POST", "/v1/merchant", nil)
	r.Header.Set("Authorization", "5ZOOQBRxVHftINfZ73vkrtmaj9iSVMNycDCbKjjKJA8=")
	r.Header.Set("Date", "22 02 2018 01:51:03")
	r.Header.Set("Content-MD5", "3da8f17aeb10a49d798f82c7d2b97592")
	r.Header.Set("user", "aherrington@bluepay.com")

	principal := strategy.Authenticate(context.Background(), r)
	require.NotNil(t, principal)
	assert.Equal(t, "aherrington@bluepay.com", principal.Name)
	assert.True(t, principal.HasAuthority(domain.RoleUser))
}

func TestHMACStrategy_AlteredSignature(t *testing.T) {
	store := newFakeCredentialStore(domain.NewPrincipal("aherrington@bluepay.com", "password"))
	strategy := NewHMACStrategy(store, "", zaptest.NewLogger(t))

	r := httptest.NewRequest("POST", "/v1/merchant", nil)
	// Last character before the padding differs by one.
	r.Header.Set("Authorization", "5ZOOQBRxVHftINfZ73vkrtmaj9iSVMNycDCbKjjKJA9=")
	r.Header.Set("Date", "22 02 2018 01:51:03")
	r.Header.Set("Content-MD5", "3da8f17aeb10a49d798f82c7d2b97592")
	r.Header.Set("user", "aherrington@bluepay.com")

	assert.Nil(t, strategy.Authenticate(context.Background(), r))
}

func TestHMACStrategy_MissingHeadersPassThrough(t *testing.T) {
	headers := map[string]string{
		"Authorization": "5ZOOQBRxVHftINfZ73vkrtmaj9iSVMNycDCbKjjKJA8=",
		"Date":          "22 02 2018 01:51:03",
		"Content-MD5":   "3da8f17aeb10a49d798f82c7d2b97592",
		"user":          "aherrington@bluepay.com",
	}

	for omitted := range headers {
		t.Run("without "+omitted, func(t *testing.T) {
			store := newFakeCredentialStore(domain.NewPrincipal("aherrington@bluepay.com", "password"))
			strategy := NewHMACStrategy(store, "", zaptest.NewLogger(t))

			r := httptest.NewRequest("POST", "/v1/merchant", nil)
			for name, value := range headers {
				if name != omitted {
					r.Header.Set(name, value)
				}
			}

			assert.Nil(t, strategy.Authenticate(context.Background(), r))
			// No header set means no lookup: existence must not leak.
			assert.Equal(t, 0, store.lookups)
		})
	}
}

func TestHMACStrategy_QueryStringNotSigned(t *testing.T) {
	store := newFakeCredentialStore(domain.NewPrincipal("aherrington@bluepay.com", "password"))
	strategy := NewHMACStrategy(store, "", zaptest.NewLogger(t))

	// Clients sign the path only; the query string is outside the
	// signature, so the same signature must verify with and without it.
	canonical := CanonicalRequestString("GET", "/v1/merchant", "Thu, 22 Feb 2018 01:51:03 GMT",
		"aherrington@bluepay.com", "d41d8cd98f00b204e9800998ecf8427e")
	sig, err := Sign("password", canonical, HmacSHA256)
	require.NoError(t, err)

	for _, target := range []string{"/v1/merchant", "/v1/merchant?page=2", "/v1/merchant?page=2&size=50"} {
		t.Run(target, func(t *testing.T) {
			r := httptest.NewRequest("GET", target, nil)
			r.Header.Set("Authorization", sig)
			r.Header.Set("Date", "Thu, 22 Feb 2018 01:51:03 GMT")
			r.Header.Set("Content-MD5", "d41d8cd98f00b204e9800998ecf8427e")
			r.Header.Set("user", "aherrington@bluepay.com")

			require.NotNil(t, strategy.Authenticate(context.Background(), r))
		})
	}
}

func TestHMACStrategy_InactivePrincipal(t *testing.T) {
	principal := domain.NewPrincipal("aherrington@bluepay.com", "password")
	principal.Active = false
	store := newFakeCredentialStore(principal)
	strategy := NewHMACStrategy(store, "", zaptest.NewLogger(t))

	r := httptest.NewRequest("POST", "/v1/merchant", nil)
	r.Header.Set("Authorization", "5ZOOQBRxVHftINfZ73vkrtmaj9iSVMNycDCbKjjKJA8=")
	r.Header.Set("Date", "22 02 2018 01:51:03")
	r.Header.Set("Content-MD5", "3da8f17aeb10a49d798f82c7d2b97592")
	r.Header.Set("user", "aherrington@bluepay.com")

	assert.Nil(t, strategy.Authenticate(context.Background(), r))
}

func TestHMACStrategy_UnknownPrincipal(t *testing.T) {
	store := newFakeCredentialStore()
	strategy := NewHMACStrategy(store, "", zaptest.NewLogger(t))

	r := httptest.NewRequest("POST", "/v1/merchant", nil)
	r.Header.Set("Authorization", "5ZOOQBRxVHftINfZ73vkrtmaj9iSVMNycDCbKjjKJA8=")
	r.Header.Set("Date", "22 02 2018 01:51:03")
	r.Header.Set("Content-MD5", "3da8f17aeb10a49d798f82c7d2b97592")
	r.Header.Set("user", "nobody@bluepay.com")

	assert.Nil(t, strategy.Authenticate(context.Background(), r))
}

func TestHMACStrategy_StoreFailurePassThrough(t *testing.T) {
	store := newFakeCredentialStore()
	store.err = errors.New("connection refused")
	strategy := NewHMACStrategy(store, "", zaptest.NewLogger(t))

	r := httptest.NewRequest("POST", "/v1/merchant", nil)
	r.Header.Set("Authorization", "irrelevant")
	r.Header.Set("Date", "22 02 2018 01:51:03")
	r.Header.Set("Content-MD5", "3da8f17aeb10a49d798f82c7d2b97592")
	r.Header.Set("user", "aherrington@bluepay.com")

	assert.Nil(t, strategy.Authenticate(context.Background(), r))
}

func TestHMACStrategy_CustomPrincipalHeader(t *testing.T) {
	store := newFakeCredentialStore(domain.NewPrincipal("aherrington@bluepay.com", "password"))
	strategy := NewHMACStrategy(store, "X-Api-User", zaptest.NewLogger(t))

	canonical := CanonicalRequestString("GET", "/v1/payment", "Thu, 22 Feb 2018 01:51:03 GMT",
		"aherrington@bluepay.com", "d41d8cd98f00b204e9800998ecf8427e")
	sig, err := Sign("password", canonical, HmacSHA256)
	require.NoError(t, err)

	r := httptest.NewRequest("GET", "/v1/payment", nil)
	r.Header.Set("Authorization", sig)
	r.Header.Set("Date", "Thu, 22 Feb 2018 01:51:03 GMT")
	r.Header.Set("Content-MD5", "d41d8cd98f00b204e9800998ecf8427e")
	r.Header.Set("X-Api-User", "aherrington@bluepay.com")

	require.NotNil(t, strategy.Authenticate(context.Background(), r))
}
