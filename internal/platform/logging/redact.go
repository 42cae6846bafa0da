package logging

import (
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

// sensitiveKeys are attribute keys whose values are always masked. "claims"
// is the raw gateway claims header logged when a request is denied.
var sensitiveKeys = []string{
	"claims",
	"authorization", "auth", "bearer", "cookie", "session",
	"password", "secret", "credential", "credentials",
	"token", "accessToken", "access_token", "refreshToken", "refresh_token",
	"apiKey", "apikey", "api_key",
	"privateKey", "private_key", "secretKey", "secret_key",
}

// sensitivePrefixes mask any key starting with them.
var sensitivePrefixes = []string{"secret", "private"}

// sensitiveValues mask matching values under any key.
var sensitiveValues = []*regexp.Regexp{
	regexp.MustCompile(`^eyJ[A-Za-z0-9_-]*\.eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]*$`), // JWT
	regexp.MustCompile(`(?i)^(bearer|basic)\s+.+$`),
}

func redactOptions() []masq.Option {
	opts := make([]masq.Option, 0, len(sensitiveKeys)+len(sensitivePrefixes)+len(sensitiveValues))

	for _, k := range sensitiveKeys {
		opts = append(opts, masq.WithFieldName(k))
	}

	for _, p := range sensitivePrefixes {
		opts = append(opts, masq.WithFieldPrefix(p))
	}

	for _, re := range sensitiveValues {
		opts = append(opts, masq.WithRegex(re))
	}

	return opts
}

// NewReplaceAttr returns a slog ReplaceAttr func that masks credentials and
// gateway claims. extra adds rules on top of the built-in ones.
func NewReplaceAttr(extra ...masq.Option) func(groups []string, a slog.Attr) slog.Attr {
	return masq.New(append(redactOptions(), extra...)...)
}
