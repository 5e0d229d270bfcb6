// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package utils

// Map returns a new slice holding f applied to each element of a.
func Map[T any, R any](a []T, f func(T) R) []R {
	b := make([]R, len(a))
	for i, v := range a {
		b[i] = f(v)
	}
	return b
}

// ForEach applies f to each element of a in order.
func ForEach[T any](a []T, f func(T)) {
	for _, v := range a {
		f(v)
	}
}
