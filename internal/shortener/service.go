package shortener

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// DefaultMaxAttempts bounds the generate-and-insert loop.
const DefaultMaxAttempts = 32

// Observer receives notifications about the insertion loop.
type Observer interface {
	CodeConflict()
	URLConflict()
	Created(attempts int)
	StoreError()
}

type noopObserver struct{}

func (noopObserver) CodeConflict() {}
func (noopObserver) URLConflict()  {}
func (noopObserver) Created(int)   {}
func (noopObserver) StoreError()   {}

// Option configures a Service.
type Option func(*Service)

// WithMaxAttempts sets how many candidate codes Shorten tries before giving up.
// Zero means no limit.
func WithMaxAttempts(n int) Option {
	return func(s *Service) {
		s.maxAttempts = n
	}
}

// WithObserver attaches an Observer to the insertion loop.
func WithObserver(o Observer) Option {
	return func(s *Service) {
		s.observer = o
	}
}

// WithReservedCodes excludes codes that must never be handed out, such as
// path segments already routed elsewhere. A generated reserved code is
// discarded like a taken one.
func WithReservedCodes(codes ...string) Option {
	return func(s *Service) {
		if s.reserved == nil {
			s.reserved = make(map[Code]struct{}, len(codes))
		}

		for _, c := range codes {
			s.reserved[Code(c)] = struct{}{}
		}
	}
}

// Service assigns short codes to URLs and resolves them back.
// It keeps no mapping state; uniqueness is enforced by the Repository.
type Service struct {
	store        Repository
	generateCode CodeGenerator
	maxAttempts  int
	observer     Observer
	reserved     map[Code]struct{}
	logger       *zap.Logger
}

// NewService creates a new shortening service.
func NewService(store Repository, generator CodeGenerator, logger *zap.Logger, opts ...Option) *Service {
	s := &Service{
		store:        store,
		generateCode: generator,
		maxAttempts:  DefaultMaxAttempts,
		observer:     noopObserver{},
		logger:       logger,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Shorten returns the mapping for rawURL, creating it on first submission.
// The boolean result reports whether this call created the mapping.
func (s *Service) Shorten(ctx context.Context, rawURL string) (*Mapping, bool, error) {
	if err := ValidateURL(rawURL); err != nil {
		return nil, false, err
	}

	existing, err := s.findExisting(ctx, rawURL)
	if err == nil {
		return existing, false, nil
	}

	if !errors.Is(err, ErrNotFound) {
		return nil, false, err
	}

	for attempt := 1; s.maxAttempts == 0 || attempt <= s.maxAttempts; attempt++ {
		if err = ctx.Err(); err != nil {
			return nil, false, err
		}

		mapping := &Mapping{
			Code:        Code(s.generateCode()),
			OriginalURL: rawURL,
			CreatedAt:   time.Now().UTC(),
		}

		if _, ok := s.reserved[mapping.Code]; ok {
			s.observer.CodeConflict()

			continue
		}

		err = s.store.Insert(ctx, mapping)
		if err == nil {
			s.observer.Created(attempt)

			return mapping, true, nil
		}

		kind, ok := ConflictKindOf(err)

		switch {
		case ok && kind == CodeConflict:
			s.observer.CodeConflict()
			s.logger.Debug("short code taken, regenerating",
				zap.String("code", string(mapping.Code)),
				zap.Int("attempt", attempt),
			)

			continue
		case ok && kind == URLConflict:
			// A concurrent writer stored the same URL first; its code wins.
			s.observer.URLConflict()

			winner, findErr := s.findExisting(ctx, rawURL)
			if findErr != nil {
				return nil, false, fmt.Errorf("resolve url conflict: %w", findErr)
			}

			return winner, false, nil
		default:
			s.observer.StoreError()

			return nil, false, fmt.Errorf("insert mapping: %w", err)
		}
	}

	s.observer.StoreError()

	return nil, false, fmt.Errorf("%w (%d)", ErrAttemptsExhausted, s.maxAttempts)
}

// Resolve returns the mapping stored under code, or ErrNotFound.
func (s *Service) Resolve(ctx context.Context, code Code) (*Mapping, error) {
	mapping, err := s.store.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}

		s.observer.StoreError()

		return nil, fmt.Errorf("find by code: %w", err)
	}

	return mapping, nil
}

func (s *Service) findExisting(ctx context.Context, rawURL string) (*Mapping, error) {
	mapping, err := s.store.FindByURL(ctx, rawURL)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}

		s.observer.StoreError()

		return nil, fmt.Errorf("find by url: %w", err)
	}

	if mapping.Code == "" {
		return nil, fmt.Errorf("%w: %s", ErrCorruptMapping, rawURL)
	}

	return mapping, nil
}
