// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Maxim Levchenko (WoozyMasta)
// Source: github.com/woozymasta/korobin

package korobin

import "errors"

// Package errors. Use errors.New for static messages, fmt.Errorf when values are needed.
var (
	ErrInputTooShort    = errors.New("not enough data for container header")
	ErrBadMagic         = errors.New("container header magic mismatch")
	ErrUnexpectedEOF    = errors.New("unexpected end of input while reading flags")
	ErrUnexpectedEOFBit = errors.New("unexpected end of input inside flags block")
	ErrNilReader        = errors.New("reader is nil")
)
