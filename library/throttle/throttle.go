// Package throttle rate-limits login attempts per account.
package throttle

import (
	"context"
	"sync"

	"github.com/Laisky/errors/v2"
	gutils "github.com/Laisky/go-utils/v6"
	"github.com/Laisky/zap"

	"github.com/aahabhisheksingh/studyhub-api/library/log"
)

// LoginThrottleCfg configuration for LoginThrottle
type LoginThrottleCfg struct {
	TotalNPerSec, TotalBurst             int
	EachAccountNPerSec, EachAccountBurst int
}

// LoginThrottle limits login attempts both globally and per account,
// so one hammered account cannot lock everyone out and vice versa.
type LoginThrottle struct {
	sync.Mutex
	cfg             *LoginThrottleCfg
	totalLimiter    *gutils.RateLimiter
	accountLimiters *sync.Map
}

// NewLoginThrottle create new LoginThrottle
func NewLoginThrottle(ctx context.Context, cfg *LoginThrottleCfg) (t *LoginThrottle, err error) {
	if cfg.TotalNPerSec <= 0 || cfg.EachAccountNPerSec <= 0 {
		return nil, errors.Errorf("NPerSec must bigger than 0")
	}
	if cfg.TotalBurst < cfg.TotalNPerSec || cfg.EachAccountBurst < cfg.EachAccountNPerSec {
		return nil, errors.Errorf("burst must bigger than NPerSec")
	}

	var tl *gutils.RateLimiter
	if tl, err = gutils.NewRateLimiter(ctx, gutils.RateLimiterArgs{
		Max:     cfg.TotalBurst,
		NPerSec: cfg.TotalNPerSec,
	}); err != nil {
		return nil, errors.Wrap(err, "create total limiter")
	}

	t = &LoginThrottle{
		totalLimiter:    tl,
		accountLimiters: new(sync.Map),
		cfg:             cfg,
	}
	return t, nil
}

// Allow is allow account to attempt a login
func (t *LoginThrottle) Allow(account string) (ok bool) {
	var (
		ali interface{}
		al  *gutils.RateLimiter
	)
	if ali, ok = t.accountLimiters.Load(account); !ok {
		t.Lock()
		if ali, ok = t.accountLimiters.Load(account); !ok {
			var err error
			if al, err = gutils.NewRateLimiter(
				context.Background(),
				gutils.RateLimiterArgs{
					Max:     t.cfg.EachAccountBurst,
					NPerSec: t.cfg.EachAccountNPerSec,
				}); err != nil {
				log.Logger.Panic("create new limiter for account", zap.Error(err),
					zap.Int("Max", t.cfg.EachAccountBurst),
					zap.Int("NPerSec", t.cfg.EachAccountNPerSec))
			}
			t.accountLimiters.Store(account, al)
		} else {
			al = ali.(*gutils.RateLimiter)
		}
		t.Unlock()
	} else {
		al = ali.(*gutils.RateLimiter)
	}

	return al.Allow() && t.totalLimiter.Allow()
}
