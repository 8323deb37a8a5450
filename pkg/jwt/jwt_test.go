package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateYParse(t *testing.T) {
	token, err := Generate("secreto", "ops", RoleAdmin, "product-taxonomy", 5)
	require.NoError(t, err)

	subject, role, err := Parse("secreto", "product-taxonomy", token)
	require.NoError(t, err)
	assert.Equal(t, "ops", subject)
	assert.Equal(t, RoleAdmin, role)
}

func TestParse_Rechaza(t *testing.T) {
	token, err := Generate("secreto", "ops", RoleAdmin, "product-taxonomy", 5)
	require.NoError(t, err)
	expired, err := Generate("secreto", "ops", RoleAdmin, "product-taxonomy", -1)
	require.NoError(t, err)

	cases := map[string]struct{ secret, issuer, token string }{
		"firma incorrecta": {"otro", "", token},
		"emisor distinto":  {"secreto", "otro-emisor", token},
		"expirado":         {"secreto", "", expired},
		"basura":           {"secreto", "", "no.es.jwt"},
		"secret vacío":     {"", "", token},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := Parse(tc.secret, tc.issuer, tc.token)
			assert.Error(t, err)
		})
	}
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := Generate("", "ops", RoleAdmin, "", 5)
	assert.Error(t, err)
}
