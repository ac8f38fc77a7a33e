package cathay

import (
	"fmt"
	"log/slog"

	"github.com/grez-lucas/cathay-scraper/internal/scraper/bank"
)

// Environment variables that take precedence over the positional arguments.
const (
	EnvID       = "CATHAY_ID"
	EnvAccount  = "CATHAY_ACCOUNT"
	EnvPassword = "CATHAY_PASSWORD"
)

// Credentials are passed to the login form as-is; nothing is validated.
type Credentials struct {
	ID       string // national ID (身分證號碼)
	Account  string // user code
	Password string
}

// LogValue keeps the password and most of the ID out of logs.
func (c Credentials) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("id", mask(c.ID)),
		slog.String("account", mask(c.Account)),
	)
}

// ResolveCredentials takes id, account and password from the first three
// args. Each is replaced by its environment variable when lookup reports it
// set. Fewer than three args is a usage error.
func ResolveCredentials(args []string, lookup func(string) (string, bool)) (Credentials, error) {
	if len(args) < 3 {
		return Credentials{}, fmt.Errorf("%w: expected <id> <account> <password>, got %d argument(s)", bank.ErrUsage, len(args))
	}

	return Credentials{
		ID:       envOr(lookup, EnvID, args[0]),
		Account:  envOr(lookup, EnvAccount, args[1]),
		Password: envOr(lookup, EnvPassword, args[2]),
	}, nil
}

func envOr(lookup func(string) (string, bool), key, fallback string) string {
	if v, ok := lookup(key); ok {
		return v
	}
	return fallback
}

func mask(s string) string {
	r := []rune(s)
	if len(r) <= 2 {
		return "**"
	}
	return string(r[:2]) + "***"
}
