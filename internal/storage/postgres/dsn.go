package postgres

import (
	"fmt"
	"net/url"
	"strings"
)

// ConnParams are discrete connection settings used when no DSN is given.
type ConnParams struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// DSN returns dsn when set, otherwise builds a URL from params.
// It returns "" when neither a DSN nor a host is configured.
func DSN(dsn string, params ConnParams) string {
	if strings.TrimSpace(dsn) != "" {
		return strings.TrimSpace(dsn)
	}
	if strings.TrimSpace(params.Host) == "" {
		return ""
	}

	port := params.Port
	if port == 0 {
		port = 5432
	}
	sslMode := params.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	u := url.URL{
		Scheme:   "postgres",
		Host:     fmt.Sprintf("%s:%d", params.Host, port),
		Path:     "/" + params.Database,
		RawQuery: "sslmode=" + url.QueryEscape(sslMode),
	}
	if params.User != "" {
		if params.Password != "" {
			u.User = url.UserPassword(params.User, params.Password)
		} else {
			u.User = url.User(params.User)
		}
	}
	return u.String()
}
