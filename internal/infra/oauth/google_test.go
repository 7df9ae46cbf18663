package oauth

import (
	"context"
	"testing"

	"markeep/internal/domain/entity"
	"markeep/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoogleClient_PassThrough(t *testing.T) {
	client := NewGoogleClient()
	assert.Equal(t, entity.ProviderGoogle, client.Provider())

	profile, err := client.FetchProfile(context.Background(), service.ProviderLogin{
		Email:    "carol@gmail.com",
		Nickname: "carol",
	})
	require.NoError(t, err)
	assert.Equal(t, "carol@gmail.com", profile.Email)
	assert.Equal(t, "carol", profile.Nickname)
}

func TestGoogleClient_RequiresEmail(t *testing.T) {
	client := NewGoogleClient()

	_, err := client.FetchProfile(context.Background(), service.ProviderLogin{Nickname: "anon"})
	assert.Error(t, err)
}
