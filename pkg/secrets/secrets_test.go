package secrets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "aegis/pkg/domain-errors"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("export-key")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.NoError(t, Verify("export-key", hash))

	err = Verify("wrong-key", hash)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestHashRejectsEmptySecret(t *testing.T) {
	_, err := Hash("")
	require.Error(t, err)
}

func TestGenerateProducesUniqueSecrets(t *testing.T) {
	first, err := Generate()
	require.NoError(t, err)
	second, err := Generate()
	require.NoError(t, err)

	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
}
