package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/shop_records/internal/config"
	"github.com/Skotchmaster/shop_records/internal/events"
	"github.com/Skotchmaster/shop_records/internal/repo"
	"github.com/Skotchmaster/shop_records/internal/seed"
	"github.com/Skotchmaster/shop_records/internal/service"
	pkgdb "github.com/Skotchmaster/shop_records/pkg/db"
	"github.com/Skotchmaster/shop_records/pkg/logging"
)

type testEnv struct {
	T      *testing.T
	E      *echo.Echo
	Repo   *repo.GormRepo
	Events *events.Recorder
}

type envOption func(*Deps)

func withSearch(s Searcher) envOption {
	return func(d *Deps) { d.Search = &SearchHTTP{Index: s} }
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	ctx := context.Background()
	db, err := pkgdb.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	r := repo.New(db)
	_, err = (&seed.Seeder{Repo: r}).Bootstrap(ctx, config.SeedAlways)
	require.NoError(t, err)

	rec := &events.Recorder{}
	deps := &Deps{
		Svc:    service.NewShopService(r, nil, rec),
		Health: &HealthHTTP{DB: r},
	}
	for _, opt := range opts {
		opt(deps)
	}

	logger := logging.NewWithWriter(io.Discard, "error")
	return &testEnv{T: t, E: NewServer(logger, deps), Repo: r, Events: rec}
}

// do sends body as JSON; a string body is sent verbatim.
func (env *testEnv) do(method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	env.T.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(env.T, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 && rec.Body.Bytes()[0] == '{' {
		require.NoError(env.T, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec, out
}

func (env *testEnv) list(path string) []map[string]any {
	env.T.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	require.Equal(env.T, http.StatusOK, rec.Code)

	var out []map[string]any
	require.NoError(env.T, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}
