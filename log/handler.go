// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"reflect"
	"sync"
	"time"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// Format selects how records are written.
type Format string

const (
	FormatTerminal Format = "terminal"
	FormatJSON     Format = "json"
	FormatLogfmt   Format = "logfmt"
)

// ParseFormat accepts the names of the supported formats. An empty name is the terminal format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case "":
		return FormatTerminal, nil
	case FormatTerminal, FormatJSON, FormatLogfmt:
		return f, nil
	}
	return "", errors.Errorf("unknown log format %q", s)
}

// NewHandler writes records at or above lvl to wr. Color only applies to the terminal format.
func NewHandler(wr io.Writer, format Format, lvl *slog.LevelVar, useColor bool) slog.Handler {
	opts := &slog.HandlerOptions{Level: lvl}
	switch format {
	case FormatJSON:
		opts.ReplaceAttr = replaceAttr(false)
		return slog.NewJSONHandler(wr, opts)
	case FormatLogfmt:
		opts.ReplaceAttr = replaceAttr(true)
		return slog.NewTextHandler(wr, opts)
	}
	return NewTerminalHandler(wr, lvl, useColor)
}

// TerminalHandler prints aligned, optionally colored records for humans:
//
//	INFO [10-18|09:12:01.021] stake added       pkg=staker asset=principal amount=100
type TerminalHandler struct {
	mu       sync.Mutex
	wr       io.Writer
	lvl      *slog.LevelVar
	useColor bool
	attrs    []slog.Attr
	// widest value seen per key, used to align the columns
	fieldPadding map[string]int

	buf []byte
}

func NewTerminalHandler(wr io.Writer, lvl *slog.LevelVar, useColor bool) *TerminalHandler {
	return &TerminalHandler{
		wr:           wr,
		lvl:          lvl,
		useColor:     useColor,
		fieldPadding: make(map[string]int),
	}
}

func (h *TerminalHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.buf = h.format(h.buf[:0], r, h.useColor)
	_, err := h.wr.Write(h.buf)
	return err
}

func (h *TerminalHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.lvl.Level()
}

func (h *TerminalHandler) WithGroup(_ string) slog.Handler {
	return h
}

func (h *TerminalHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := NewTerminalHandler(h.wr, h.lvl, h.useColor)
	next.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return next
}

// replaceAttr renames the time and level keys to t and lvl and prints numbers, errors and
// stringers as text.
func replaceAttr(logfmt bool) func([]string, slog.Attr) slog.Attr {
	return func(_ []string, attr slog.Attr) slog.Attr {
		switch attr.Key {
		case slog.TimeKey:
			if attr.Value.Kind() == slog.KindTime {
				if logfmt {
					return slog.String("t", attr.Value.Time().Format(timeFormat))
				}
				return slog.Attr{Key: "t", Value: attr.Value}
			}
		case slog.LevelKey:
			if l, ok := attr.Value.Any().(slog.Level); ok {
				return slog.String("lvl", LevelString(l))
			}
		}
		if s, ok := textValue(attr.Value.Any(), logfmt); ok {
			attr.Value = slog.StringValue(s)
		}
		return attr
	}
}

func textValue(v any, logfmt bool) (string, bool) {
	switch v := v.(type) {
	case time.Time:
		return v.Format(timeFormat), logfmt
	case *big.Int:
		if v == nil {
			return "<nil>", true
		}
		return v.String(), true
	case *uint256.Int:
		if v == nil {
			return "<nil>", true
		}
		return v.Dec(), true
	case error:
		if v == nil {
			return "", false
		}
		return v.Error(), true
	case fmt.Stringer:
		if v == nil || (reflect.ValueOf(v).Kind() == reflect.Pointer && reflect.ValueOf(v).IsNil()) {
			return "<nil>", true
		}
		return v.String(), true
	}
	return "", false
}
