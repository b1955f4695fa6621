package postgres

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPgx5URL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/app?sslmode=disable", pgx5URL("postgres://u:p@db:5432/app?sslmode=disable"))
	assert.Equal(t, "pgx5://u@db/app", pgx5URL("postgresql://u@db/app"))
	assert.Equal(t, "pgx5://ya/adaptado", pgx5URL("pgx5://ya/adaptado"))
}

func TestMigracionesEmbebidasPareadas(t *testing.T) {
	files, err := fs.Glob(migrationsFS, "migrations/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	ups, downs := 0, 0
	for _, f := range files {
		switch {
		case len(f) > len(".up.sql") && f[len(f)-len(".up.sql"):] == ".up.sql":
			ups++
		case len(f) > len(".down.sql") && f[len(f)-len(".down.sql"):] == ".down.sql":
			downs++
		}
	}
	assert.Equal(t, ups, downs, "cada migración up tiene su down")
}
