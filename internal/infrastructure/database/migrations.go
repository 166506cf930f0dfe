package database

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// migrationURL monta a URL de banco no formato esperado pelo migrate
func migrationURL() string {
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" && strings.HasPrefix(dbURL, "postgres") {
		return dbURL
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		getEnv("DB_USER", "postgres"),
		url.QueryEscape(getEnv("DB_PASSWORD", "postgres")),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_NAME", "creatinamax"),
		getEnv("DB_SSL_MODE", "disable"),
	)
}

// RunMigrations aplica as migrações pendentes do diretório informado
func RunMigrations(migrationsPath string) error {
	sourceURL := fmt.Sprintf("file://%s", migrationsPath)

	m, err := migrate.New(sourceURL, migrationURL())
	if err != nil {
		return fmt.Errorf("erro ao criar migrate: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("erro ao aplicar migrações: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && err != migrate.ErrNilVersion {
		return fmt.Errorf("erro ao consultar versão das migrações: %w", err)
	}
	log.Printf("Migrações aplicadas: versão=%d dirty=%v", version, dirty)
	return nil
}
