package storage

import (
	"context"

	"github.com/LuciCodesStuff/GP2040-CE/pkg/options"
)

// AnimationState supplies the live animation-engine options that Save
// persists
type AnimationState interface {
	AnimationOptions() options.AnimationOptions
}

// AnimationStateFunc adapts a function to AnimationState
type AnimationStateFunc func() options.AnimationOptions

// AnimationOptions implements AnimationState
func (f AnimationStateFunc) AnimationOptions() options.AnimationOptions {
	return f()
}

// AnimationStorage persists the animation record. Its saves are dirty
// checked: media is committed only when the candidate differs from the
// persisted record.
type AnimationStorage struct {
	storage *Storage
	state   AnimationState
}

// NewAnimationStorage creates animation storage on top of s. state may be nil
// when only SaveIfChanged is used.
func NewAnimationStorage(s *Storage, state AnimationState) *AnimationStorage {
	return &AnimationStorage{storage: s, state: state}
}

// GetAnimationOptions returns the animation record. A record failing its
// checksum (including blank memory) is replaced by the defaults, which are
// written to the image at once and reported as StatusHealed. The returned
// record always has a zero Checksum.
func (a *AnimationStorage) GetAnimationOptions() (options.AnimationOptions, Status) {
	return a.storage.animation.Get()
}

// SetAnimationOptions writes opts with a freshly computed checksum. The
// Checksum field of opts is ignored.
func (a *AnimationStorage) SetAnimationOptions(opts options.AnimationOptions) {
	a.storage.animation.Set(opts)
}

// Save persists the current animation-engine options when they differ from
// the persisted record and reports whether media was committed
func (a *AnimationStorage) Save(ctx context.Context) (bool, error) {
	if a.state == nil {
		return false, ErrNoAnimation
	}
	return a.SaveIfChanged(ctx, a.state.AnimationOptions())
}

// SaveIfChanged compares candidate byte for byte with the persisted record.
// If they differ it writes candidate and commits media; otherwise it neither
// writes nor commits.
func (a *AnimationStorage) SaveIfChanged(ctx context.Context, candidate options.AnimationOptions) (bool, error) {
	if !a.storage.animation.SetIfChanged(candidate) {
		a.storage.metrics.RecordCommitSkipped()
		a.storage.logger.Debug("animation unchanged, commit skipped")
		return false, nil
	}

	if err := a.storage.Save(ctx); err != nil {
		return false, err
	}
	a.storage.logger.Debug("animation saved")
	return true, nil
}
