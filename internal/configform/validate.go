package configform

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"

	"github.com/gperfar/chatbot-admin/internal/domain"
	"github.com/gperfar/chatbot-admin/internal/domain/entity"
)

// checkConfig applies the per-type checks that go beyond required fields.
// config is the output of BuildConfig.
func checkConfig(t entity.DataSourceType, config map[string]any) error {
	switch t {
	case entity.DataSourceRESTAPI:
		return checkRESTAPI(config)
	case entity.DataSourceDatabase:
		return checkDatabase(config)
	}
	return nil
}

func checkRESTAPI(config map[string]any) error {
	baseURL, _ := config[KeyBaseURL].(string)
	if err := domain.ValidateVar(KeyBaseURL, strings.TrimSpace(baseURL), "http_url"); err != nil {
		return err
	}
	method, _ := config[KeyMethod].(string)
	if err := domain.ValidateVar(KeyMethod, strings.ToUpper(method), "oneof=GET POST PUT PATCH DELETE"); err != nil {
		return err
	}
	return nil
}

func checkDatabase(config map[string]any) error {
	dbType, _ := config[KeyDBType].(string)
	if err := domain.ValidateVar(KeyDBType, dbType, "oneof=postgresql mysql sqlite"); err != nil {
		return err
	}
	dsn, _ := config[KeyConnectionString].(string)
	if err := checkDSN(dbType, dsn); err != nil {
		return domain.NewValidationError(KeyConnectionString, err.Error())
	}
	return nil
}

// checkDSN parses dsn with the driver of dbType. Connection strings stored
// for the backend may carry a SQLAlchemy-style "dialect+driver://" scheme,
// which is reduced to the bare dialect first.
func checkDSN(dbType, dsn string) error {
	dsn = strings.TrimSpace(dsn)
	switch dbType {
	case DBPostgreSQL:
		if _, err := pgx.ParseConfig(withoutTLSFiles(stripDriver(dsn))); err != nil {
			return fmt.Errorf("invalid PostgreSQL connection string: %w", err)
		}
	case DBMySQL:
		if strings.Contains(dsn, "://") {
			u, err := url.Parse(stripDriver(dsn))
			if err != nil || u.Scheme != DBMySQL || u.Host == "" {
				return fmt.Errorf("invalid MySQL connection URL")
			}
			return nil
		}
		if _, err := mysql.ParseDSN(dsn); err != nil {
			return fmt.Errorf("invalid MySQL DSN: %w", err)
		}
	}
	return nil
}

func stripDriver(dsn string) string {
	scheme, rest, ok := strings.Cut(dsn, "://")
	if !ok {
		return dsn
	}
	dialect, _, _ := strings.Cut(scheme, "+")
	return dialect + "://" + rest
}

// tlsFileParams name files read from the machine that opens the
// connection, which is the backend and not this one.
var tlsFileParams = []string{"sslcert", "sslkey", "sslrootcert", "sslcrl", "sslpassword"}

var tlsFileKeywords = regexp.MustCompile(`(?:^|\s)(?:sslcert|sslkey|sslrootcert|sslcrl|sslpassword)\s*=\s*(?:'(?:[^'\\]|\\.)*'|\S*)`)

// withoutTLSFiles drops the TLS file parameters from a PostgreSQL URL or
// keyword/value connection string so parsing never touches the filesystem.
func withoutTLSFiles(dsn string) string {
	if !strings.HasPrefix(dsn, "postgres://") && !strings.HasPrefix(dsn, "postgresql://") {
		return tlsFileKeywords.ReplaceAllString(dsn, "")
	}
	u, err := url.Parse(dsn)
	if err != nil {
		return dsn
	}
	q := u.Query()
	for _, p := range tlsFileParams {
		q.Del(p)
	}
	u.RawQuery = q.Encode()
	return u.String()
}
