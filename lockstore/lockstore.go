package lockstore

import (
	"context"
	"errors"
	"log/slog"

	"github.com/hupe1980/meshdist/codec"
	"github.com/hupe1980/meshdist/model"
)

type options struct {
	codec       codec.Codec
	compression Compression
	logger      *slog.Logger
}

// Option configures Load and Save.
type Option func(*options)

// WithCodec sets the codec used by Save. Load detects the codec from the
// payload.
func WithCodec(c codec.Codec) Option {
	return func(o *options) { o.codec = c }
}

// WithCompression sets the compression used by Save.
func WithCompression(c Compression) Option {
	return func(o *options) { o.compression = c }
}

// WithLogger sets the logger for recovered failures.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func applyOptions(optFns []Option) options {
	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

// Load reads the selection stored under key.
//
// A missing key and an unreadable payload both yield an empty selection and
// a nil error; the latter is logged at warn. Only store failures are
// returned.
func Load(ctx context.Context, s Store, key string, optFns ...Option) (model.LockedSelection, error) {
	o := applyOptions(optFns)

	data, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return model.LockedSelection{}, nil
	}
	if err != nil {
		return nil, err
	}

	sel, err := Decode(data)
	if err != nil {
		o.logger.WarnContext(ctx, "discarding locked selection", "key", key, "error", err)
		return model.LockedSelection{}, nil
	}
	return sel, nil
}

// Save encodes sel and stores it under key.
func Save(ctx context.Context, s Store, key string, sel model.LockedSelection, optFns ...Option) error {
	o := applyOptions(optFns)

	data, err := Encode(sel, o.codec, o.compression)
	if err != nil {
		return err
	}
	return s.Put(ctx, key, data)
}

// Clear removes the selection stored under key.
func Clear(ctx context.Context, s Store, key string) error {
	return s.Delete(ctx, key)
}
