// Package mixer holds the single-step bit-mixing transforms driven by the
// engine's workers. Every transform implements Mixer; callers depend on that
// interface only, and Registry resolves implementations by name.
//
// None of the mixers are cryptographically secure.
package mixer

//go:generate mockgen -destination=mocks/mock_mixer.go -package=mocks github.com/agbru/mixrng/internal/mixer Mixer
