// Package reconcile applies a local change before the server confirms it
// and puts the cache back in line with the server when the request fails.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"slices"
)

// Store is the cached collection being mutated. listview.View satisfies it.
type Store[T any] interface {
	Items() []T
	SetItems(items []T)
}

// Fallback repairs store after the remote call failed. snapshot is the
// collection as it was before the optimistic change.
type Fallback[T any] func(ctx context.Context, store Store[T], snapshot []T) error

// Restore puts the snapshot back.
func Restore[T any]() Fallback[T] {
	return func(_ context.Context, store Store[T], snapshot []T) error {
		store.SetItems(snapshot)
		return nil
	}
}

// Refetch reloads the collection from the server. When the reload fails
// too, the snapshot is restored and the reload error is returned.
func Refetch[T any](fetch func(ctx context.Context) ([]T, error)) Fallback[T] {
	return func(ctx context.Context, store Store[T], snapshot []T) error {
		items, err := fetch(ctx)
		if err != nil {
			store.SetItems(snapshot)
			return fmt.Errorf("refetch: %w", err)
		}
		store.SetItems(items)
		return nil
	}
}

// Apply runs local against the cached items, then remote. On a remote
// failure fallback repairs the cache and the remote error is returned,
// joined with the fallback's own error if it had one.
func Apply[T any](ctx context.Context, store Store[T], local func([]T) []T, remote func(ctx context.Context) error, fallback Fallback[T]) error {
	snapshot := store.Items()
	store.SetItems(local(slices.Clone(snapshot)))

	err := remote(ctx)
	if err == nil {
		return nil
	}
	if ferr := fallback(context.WithoutCancel(ctx), store, snapshot); ferr != nil {
		return errors.Join(err, ferr)
	}
	return err
}

// Without drops every item for which match is true.
func Without[T any](match func(T) bool) func([]T) []T {
	return func(items []T) []T {
		return slices.DeleteFunc(items, match)
	}
}

// Replace rewrites every item for which match is true.
func Replace[T any](match func(T) bool, change func(T) T) func([]T) []T {
	return func(items []T) []T {
		for i := range items {
			if match(items[i]) {
				items[i] = change(items[i])
			}
		}
		return items
	}
}
