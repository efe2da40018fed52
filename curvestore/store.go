package curvestore

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/godruoyi/go-snowflake"
	"github.com/patrickmn/go-cache"
	"github.com/sgostarter/i/l"
	"honnef.co/go/altcurve"
)

const DefaultCacheTTL = time.Minute

// Store reads and writes named curves through a [Storage], keeping decoded
// curves in memory for a while. It is safe for concurrent use.
//
// The cache is not invalidated by changes made through other stores sharing
// the same storage.
type Store struct {
	logger   l.Wrapper
	storage  Storage
	format   Format
	sanitize bool
	cacheTTL time.Duration

	cachedCurves *cache.Cache
}

type Option func(*Store)

func WithLogger(logger l.Wrapper) Option {
	return func(s *Store) { s.logger = logger }
}

// WithCacheTTL sets how long decoded curves are cached. A TTL of zero or
// less disables caching.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Store) { s.cacheTTL = ttl }
}

// WithSanitize controls whether loaded curves are sanitized. It is enabled
// by default.
func WithSanitize(sanitize bool) Option {
	return func(s *Store) { s.sanitize = sanitize }
}

// WithFormat sets the encoding used for stored curves. It defaults to the
// storage's own format, if it has one, and JSON otherwise.
func WithFormat(format Format) Option {
	return func(s *Store) { s.format = format }
}

// NewStore returns a store backed by storage.
func NewStore(storage Storage, opts ...Option) *Store {
	s := &Store{
		storage:  storage,
		sanitize: true,
		cacheTTL: DefaultCacheTTL,
	}
	if f, ok := storage.(interface{ Format() Format }); ok {
		s.format = f.Format()
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = l.NewNopLoggerWrapper()
	}

	s.logger = s.logger.WithFields(l.StringField(l.ClsKey, "curveStore"))

	if storage == nil {
		s.logger.Fatal("no storage")
	}

	if s.cacheTTL > 0 {
		s.cachedCurves = cache.New(s.cacheTTL, s.cacheTTL*2)
	}

	return s
}

// Get returns the curve stored under name.
func (s *Store) Get(ctx context.Context, name string) (altcurve.Curve, error) {
	if err := CheckName(name); err != nil {
		return altcurve.Curve{}, err
	}

	if s.cachedCurves != nil {
		if i, ok := s.cachedCurves.Get(name); ok {
			c, _ := i.(altcurve.Curve)

			return c, nil
		}
	}

	d, err := s.storage.Load(ctx, name)
	if err != nil {
		return altcurve.Curve{}, fmt.Errorf("curve %q: %w", name, err)
	}

	c, err := s.format.Decode(d)
	if err != nil {
		s.logger.WithFields(l.ErrorField(err), l.StringField("name", name)).Error("decode curve failed")

		return altcurve.Curve{}, fmt.Errorf("curve %q: %w", name, err)
	}

	if s.sanitize {
		keys, rep := altcurve.SanitizeReport(c.Keyframes())
		if rep.Changed() {
			s.logger.WithFields(l.StringField("name", name), l.IntField("removed", len(rep.Removed)),
				l.StringField("reordered", strconv.FormatBool(rep.Reordered))).Debug("sanitized curve")

			c = c.WithKeyframes(keys)
		}
	}

	if s.cachedCurves != nil {
		s.cachedCurves.Set(name, c, cache.DefaultExpiration)
	}

	return c, nil
}

// Put stores c under name, replacing any existing curve.
func (s *Store) Put(ctx context.Context, name string, c altcurve.Curve) error {
	if err := CheckName(name); err != nil {
		return err
	}

	d, err := s.format.Encode(c)
	if err != nil {
		return fmt.Errorf("curve %q: %w", name, err)
	}

	if err = s.storage.Save(ctx, name, d); err != nil {
		return fmt.Errorf("curve %q: %w", name, err)
	}

	if s.cachedCurves != nil {
		s.cachedCurves.Delete(name)
	}

	return nil
}

// Add stores c under a newly generated name and returns the name.
func (s *Store) Add(ctx context.Context, c altcurve.Curve) (string, error) {
	name := strconv.FormatUint(snowflake.ID(), 36)

	if err := s.Put(ctx, name, c); err != nil {
		return "", err
	}

	return name, nil
}

// Delete removes the curve stored under name.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := CheckName(name); err != nil {
		return err
	}

	if s.cachedCurves != nil {
		s.cachedCurves.Delete(name)
	}

	if err := s.storage.Delete(ctx, name); err != nil {
		return fmt.Errorf("curve %q: %w", name, err)
	}

	return nil
}

// List returns the names of all stored curves in ascending order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	return s.storage.List(ctx)
}

// Eval evaluates the curve stored under name at time t.
func (s *Store) Eval(ctx context.Context, name string, t float64) (float64, error) {
	c, err := s.Get(ctx, name)
	if err != nil {
		return 0, err
	}

	return c.Eval(t), nil
}
