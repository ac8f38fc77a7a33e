package cathay

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/grez-lucas/cathay-scraper/internal/scraper/bank"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestResolveCredentials_FromArgs(t *testing.T) {
	creds, err := ResolveCredentials([]string{"A123456789", "myaccount", "mypassword"}, lookupFrom(nil))

	require.NoError(t, err)
	assert.Equal(t, Credentials{ID: "A123456789", Account: "myaccount", Password: "mypassword"}, creds)
}

func TestResolveCredentials_EnvWins(t *testing.T) {
	env := map[string]string{
		EnvID:       "B987654321",
		EnvAccount:  "envaccount",
		EnvPassword: "envpassword",
	}

	creds, err := ResolveCredentials([]string{"A123456789", "myaccount", "mypassword"}, lookupFrom(env))

	require.NoError(t, err)
	assert.Equal(t, Credentials{ID: "B987654321", Account: "envaccount", Password: "envpassword"}, creds)
}

func TestResolveCredentials_EmptyEnvStillCounts(t *testing.T) {
	creds, err := ResolveCredentials([]string{"A123456789", "myaccount", "mypassword"}, lookupFrom(map[string]string{EnvAccount: ""}))

	require.NoError(t, err)
	assert.Equal(t, "", creds.Account)
	assert.Equal(t, "A123456789", creds.ID)
}

func TestResolveCredentials_ExtraArgsIgnored(t *testing.T) {
	creds, err := ResolveCredentials([]string{"id", "acct", "pw", "extra"}, lookupFrom(nil))

	require.NoError(t, err)
	assert.Equal(t, "pw", creds.Password)
}

func TestResolveCredentials_TooFewArgs(t *testing.T) {
	for _, args := range [][]string{nil, {"id"}, {"id", "acct"}} {
		// Env vars do not make up for missing args.
		env := map[string]string{EnvID: "x", EnvAccount: "y", EnvPassword: "z"}

		_, err := ResolveCredentials(args, lookupFrom(env))

		assert.ErrorIs(t, err, bank.ErrUsage, "args=%v", args)
	}
}

func TestCredentials_LogValueHidesSecrets(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	logger.Info("login", "credentials", Credentials{ID: "A123456789", Account: "myaccount", Password: "mypassword"})

	out := buf.String()
	assert.NotContains(t, out, "mypassword")
	assert.NotContains(t, out, "A123456789")
	assert.Contains(t, out, "credentials.id=A1***")
	assert.Contains(t, out, "credentials.account=my***")
}
