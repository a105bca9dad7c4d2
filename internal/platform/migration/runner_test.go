// Copyright (c) 2026 ShopHub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToPgx5DSN(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"postgres://u:p@db:5432/shop", "pgx5://u:p@db:5432/shop"},
		{"postgresql://u:p@db/shop?sslmode=disable", "pgx5://u:p@db/shop?sslmode=disable"},
		{"pgx5://u@db/shop", "pgx5://u@db/shop"},
		{"host=db user=u", "host=db user=u"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ToPgx5DSN(tt.input))
		})
	}
}

// Every up migration needs a matching down migration.
func TestEmbeddedMigrations_ArePaired(t *testing.T) {
	entries, err := fs.ReadDir(embedded, "sql")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	names := make(map[string]bool, len(entries))
	for _, entry := range entries {
		names[entry.Name()] = true
	}

	for name := range names {
		if strings.HasSuffix(name, ".up.sql") {
			down := strings.TrimSuffix(name, ".up.sql") + ".down.sql"
			assert.True(t, names[down], "missing %s", down)
		}
	}
}
