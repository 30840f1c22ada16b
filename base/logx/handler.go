// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/muesli/termenv"
)

// UseColor is whether to use color in the log messages.
// It is on by default.
var UseColor = true

// colorProfile is the termenv color profile for the current terminal,
// used to degrade colors gracefully on terminals with limited support.
var colorProfile = termenv.ColorProfile()

// levelString returns the possibly colored label for the given level.
func levelString(level slog.Level) string {
	str := level.String()
	if !UseColor {
		return str
	}
	s := termenv.String(str)
	switch {
	case level >= slog.LevelError:
		s = s.Foreground(colorProfile.Color("1")).Bold() // red
	case level >= slog.LevelWarn:
		s = s.Foreground(colorProfile.Color("3")) // yellow
	case level < slog.LevelInfo:
		s = s.Faint()
	default:
		return str
	}
	return s.String()
}

// groupOrAttrs holds either a group name or a list of [slog.Attr]s.
type groupOrAttrs struct {
	group string
	attrs []slog.Attr
}

// Handler is a console [slog.Handler] with colored log levels.
// The verbosity is controlled by [UserLevel].
type Handler struct {
	goas []groupOrAttrs
	mu   *sync.Mutex
	out  io.Writer
}

// NewHandler returns a new [Handler] writing to the given writer.
func NewHandler(out io.Writer) *Handler {
	return &Handler{out: out, mu: &sync.Mutex{}}
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= UserLevel
}

func (h *Handler) withGroupOrAttrs(goa groupOrAttrs) *Handler {
	h2 := *h
	h2.goas = make([]groupOrAttrs, len(h.goas)+1)
	copy(h2.goas, h.goas)
	h2.goas[len(h2.goas)-1] = goa
	return &h2
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return h.withGroupOrAttrs(groupOrAttrs{group: name})
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	return h.withGroupOrAttrs(groupOrAttrs{attrs: attrs})
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	buf := make([]byte, 0, 128)
	if !r.Time.IsZero() {
		buf = r.Time.AppendFormat(buf, time.DateTime)
		buf = append(buf, '\t')
	}
	buf = append(buf, levelString(r.Level)...)
	buf = append(buf, '\t')
	buf = append(buf, r.Message...)

	indentLevel := 0
	// handle state from WithGroup and WithAttrs; only process groups
	// if there are attrs to go in them
	goas := h.goas
	if r.NumAttrs() == 0 {
		for len(goas) > 0 && goas[len(goas)-1].group != "" {
			goas = goas[:len(goas)-1]
		}
	}
	for _, goa := range goas {
		if goa.group != "" {
			buf = fmt.Appendf(buf, "\t%s:", goa.group)
			indentLevel++
		} else {
			for _, a := range goa.attrs {
				buf = h.appendAttr(buf, a, indentLevel)
			}
		}
	}
	r.Attrs(func(a slog.Attr) bool {
		buf = h.appendAttr(buf, a, indentLevel)
		return true
	})
	buf = append(buf, '\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.Write(buf)
	return err
}

func (h *Handler) appendAttr(buf []byte, a slog.Attr, indentLevel int) []byte {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return buf
	}
	switch a.Value.Kind() {
	case slog.KindString:
		buf = fmt.Appendf(buf, "\t%s: %s", a.Key, strconv.Quote(a.Value.String()))
	case slog.KindTime:
		buf = fmt.Appendf(buf, "\t%s: %s", a.Key, a.Value.Time().Format(time.DateTime))
	case slog.KindGroup:
		attrs := a.Value.Group()
		if len(attrs) == 0 {
			return buf
		}
		if a.Key != "" {
			buf = fmt.Appendf(buf, "\t%s:", a.Key)
			indentLevel++
		}
		for _, ga := range attrs {
			buf = h.appendAttr(buf, ga, indentLevel)
		}
	default:
		buf = fmt.Appendf(buf, "\t%s: %s", a.Key, a.Value)
	}
	return buf
}
