// Package store caches assembled reports keyed by their request inputs.
package store

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/config"
	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/model"
)

// Cache stores reports by key. Get returns (nil, nil) on a miss or an
// expired entry. A ttl of zero stores without expiry.
type Cache interface {
	Get(ctx context.Context, key string) (*model.Report, error)
	Set(ctx context.Context, key string, r *model.Report, ttl time.Duration) error
	Invalidate(ctx context.Context, key string) error
	Close() error
}

// Open returns the cache selected by cfg.Driver. The "none" driver returns
// a nil Cache, which disables caching.
func Open(ctx context.Context, cfg config.StoreConfig) (Cache, error) {
	switch cfg.Driver {
	case "", "memory":
		return NewMemory(), nil
	case "none":
		return nil, nil
	case "sqlite":
		s, err := NewSQLite(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := s.Migrate(ctx); err != nil {
			s.Close() //nolint:errcheck
			return nil, err
		}
		return s, nil
	case "postgres":
		s, err := NewPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := s.Migrate(ctx); err != nil {
			s.Close() //nolint:errcheck
			return nil, err
		}
		return s, nil
	case "redis":
		return NewRedis(ctx, cfg.RedisURL)
	default:
		return nil, eris.Errorf("store: unsupported driver %q", cfg.Driver)
	}
}

// Key derives the cache key for a request scored under the policy with the
// given fingerprint: the hex sha256 of the fingerprint, the framework, the
// trimmed sector, the company data and every module payload in module order.
// Payloads are canonicalized, so formatting and object key order do not
// change the key. The sector keeps its case because reports carry it.
func Key(req model.AnalysisRequest, policy string) (string, error) {
	h := sha256.New()
	write := func(parts ...string) {
		for _, p := range parts {
			h.Write([]byte(p))
			h.Write([]byte{0})
		}
	}

	write(policy, string(req.Framework), strings.TrimSpace(req.Sector))

	company, err := json.Marshal(req.CompanyData)
	if err != nil {
		return "", eris.Wrap(err, "store: marshal company data")
	}
	write(string(company))

	for _, m := range model.Modules {
		raw, ok := req.Modules[m]
		if !ok || len(raw) == 0 {
			write(string(m), "")
			continue
		}
		canon, err := canonicalJSON(raw)
		if err != nil {
			return "", eris.Wrapf(err, "store: canonicalize %s", m)
		}
		write(string(m), string(canon))
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// canonicalJSON re-encodes raw with sorted object keys and literal numbers.
func canonicalJSON(raw []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

func encodeReport(r *model.Report) ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, eris.Wrap(err, "store: marshal report")
	}
	return data, nil
}

func decodeReport(data []byte) (*model.Report, error) {
	var r model.Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, eris.Wrap(err, "store: unmarshal report")
	}
	return &r, nil
}
