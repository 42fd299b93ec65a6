package service

import (
	"context"
	"strconv"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/yndnr/tokmint/internal/core/domain"
	"github.com/yndnr/tokmint/internal/telemetry/logger"
	"github.com/yndnr/tokmint/internal/telemetry/metric"
	"github.com/yndnr/tokmint/pkg/token"
)

// Result is one generated token.
type Result struct {
	// Name is the definition's variable name.
	Name string
	// Value is the final token, after affixes.
	Value string
	// Header is the response header to emit the token in, if any.
	Header string
	// Cached reports whether Value came from the TTL cache.
	Cached bool
}

// Assembler generates the tokens of a scope for one request.
// It is safe for concurrent use.
type Assembler struct {
	source  *token.Source
	log     logger.Logger
	metrics *metric.Registry
}

// Option configures the Assembler.
type Option func(*Assembler)

// WithSource sets the random source. Tests use it to inject failures.
func WithSource(src *token.Source) Option {
	return func(a *Assembler) {
		a.source = src
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(a *Assembler) {
		a.log = l
	}
}

// WithMetrics sets the metrics registry.
func WithMetrics(m *metric.Registry) Option {
	return func(a *Assembler) {
		a.metrics = m
	}
}

// NewAssembler creates an Assembler backed by crypto/rand.
func NewAssembler(opts ...Option) *Assembler {
	a := &Assembler{
		source: token.NewSource(nil),
		log:    logger.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Generate produces every token scope defines for a request to path.
//
// Nothing is returned when the scope has no definitions or its URL
// pattern does not match path. A definition whose random source fails is
// omitted from the results and its error is included in the returned
// multierror; the remaining definitions are still generated.
func (a *Assembler) Generate(ctx context.Context, scope *Scope, path string, now time.Time) ([]Result, error) {
	if scope == nil || len(scope.Config.Tokens) == 0 {
		return nil, nil
	}
	if !scope.Config.Matches(path) {
		return nil, nil
	}

	start := time.Now()
	defer func() {
		a.metrics.ObserveAssembly(time.Since(start).Seconds())
	}()

	log := a.log.WithContext(ctx).With("scope", scope.Location)

	var errs *multierror.Error
	results := make([]Result, 0, len(scope.Config.Tokens))

	for _, def := range scope.Config.Tokens {
		res, err := a.generateOne(log, scope, def, now)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		results = append(results, res)
	}

	return results, errs.ErrorOrNil()
}

func (a *Assembler) generateOne(log logger.Logger, scope *Scope, def domain.TokenDefinition, now time.Time) (Result, error) {
	// 1-2. Resolve effective parameters, clamping drift.
	params, drift := scope.Config.Resolve(def)
	for _, d := range drift {
		a.metrics.RecordDrift(d.Field)
		log.Warn("parameter out of range, using default",
			"code", domain.ErrParameterDrift.Code,
			"definition", def.Name,
			"field", d.Field,
			"configured", d.Value,
			"used", d.Used)
	}

	res := Result{Name: def.Name, Header: def.Header}

	// 3. Cache lookup.
	useCache := params.TTL > 0
	if useCache {
		value, hit, err := scope.cache.Get(def.ID, now, params.TTL)
		switch {
		case err != nil:
			log.Warn("token cache unavailable, generating uncached",
				"code", domain.GetErrorCode(err),
				"definition", def.Name)
			useCache = false
		case hit:
			a.metrics.RecordCacheHit()
			res.Value = value
			res.Cached = true
			return res, nil
		default:
			a.metrics.RecordCacheMiss()
		}
	}

	// 4. Generate and encode.
	value, err := a.source.GenerateString(params.Length, params.Encoding)
	if err != nil {
		a.metrics.RecordEntropyFailure()
		log.Error("token generation failed",
			"severity", "critical",
			"code", domain.ErrEntropy.Code,
			"definition", def.Name,
			"error", err)
		return Result{}, domain.ErrEntropy.WithDetails(def.Name).WithCause(err)
	}
	a.metrics.RecordGenerated(params.Encoding.Format().String())

	// 5. Timestamp.
	if params.IncludeTimestamp {
		value = strconv.FormatInt(now.Unix(), 10) + "-" + value
	}

	// 6. Metadata.
	if params.Signed() {
		if params.SigningKey == "" {
			log.Warn("metadata encoding enabled without a signing key, token is unsigned",
				"definition", def.Name)
		}
		value = token.Sign(value, params.Expiry, params.SigningKey, now)
	}

	// 7. Affixes.
	value = params.Prefix + value + params.Suffix

	// 8. Cache write.
	if useCache {
		if err := scope.cache.Put(def.ID, value, now); err != nil {
			log.Warn("token cache unavailable, value not cached",
				"code", domain.GetErrorCode(err),
				"definition", def.Name)
		}
	}

	res.Value = value
	return res, nil
}
