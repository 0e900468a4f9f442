package log

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the styles used by the pretty text handler. Styles are bound
// to a renderer for the handler's writer, so color is dropped automatically
// when the writer is not a terminal.
type palette struct {
	key    lipgloss.Style
	str    lipgloss.Style
	num    lipgloss.Style
	yes    lipgloss.Style
	no     lipgloss.Style
	dur    lipgloss.Style
	when   lipgloss.Style
	trace  lipgloss.Style
	debug  lipgloss.Style
	info   lipgloss.Style
	warn   lipgloss.Style
	severe lipgloss.Style
}

func makePalette(w io.Writer) palette {
	r := lipgloss.NewRenderer(w)
	fg := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return palette{
		key:    fg("8"),
		str:    fg("6"),
		num:    fg("3"),
		yes:    fg("2"),
		no:     fg("1"),
		dur:    fg("5"),
		when:   fg("4"),
		trace:  fg("5"),
		debug:  fg("4"),
		info:   fg("2"),
		warn:   fg("3").Bold(true),
		severe: fg("1").Bold(true),
	}
}

func (p palette) level(l slog.Level) lipgloss.Style {
	switch {
	case l >= slog.LevelError:
		return p.severe

	case l >= slog.LevelWarn:
		return p.warn

	case l >= slog.LevelInfo:
		return p.info

	case l >= slog.LevelDebug:
		return p.debug

	default:
		return p.trace
	}
}

// prefixed is an attribute added with [slog.Handler.WithAttrs], qualified by
// the groups open at the time.
type prefixed struct {
	prefix string
	attr   slog.Attr
}

// prettyTextHandler writes one line per record as key=value pairs with
// unquoted, colorized values. Group and [slog.LogValuer] attributes are
// flattened into dotted keys.
type prettyTextHandler struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	pal    palette
	attrs  []prefixed
	prefix string
}

func newPrettyTextHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
) *prettyTextHandler {
	return &prettyTextHandler{
		opts: *opts,
		mu:   &sync.Mutex{},
		w:    w,
		pal:  makePalette(w),
	}
}

func (h *prettyTextHandler) Enabled(_ context.Context, level slog.Level) bool {
	floor := slog.LevelInfo
	if h.opts.Level != nil {
		floor = h.opts.Level.Level()
	}

	return level >= floor
}

func (h *prettyTextHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	if !r.Time.IsZero() {
		if a := h.replace(slog.Time(slog.TimeKey, r.Time)); a.Key != "" {
			h.writeKey(buf, a.Key)
			buf.WriteString(h.pal.when.Render(a.Value.Resolve().String()))
		}
	}

	if a := h.replace(slog.Any(slog.LevelKey, r.Level)); a.Key != "" {
		h.writeKey(buf, a.Key)
		buf.WriteString(h.pal.level(r.Level).Render(a.Value.Resolve().String()))
	}

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			h.writeAttr(buf, "", slog.String(slog.SourceKey,
				src.File+":"+strconv.Itoa(src.Line)))
		}
	}

	h.writeAttr(buf, "", slog.String(slog.MessageKey, r.Message))

	for _, p := range h.attrs {
		h.writeAttr(buf, p.prefix, p.attr)
	}

	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(buf, h.prefix, a)

		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	c := *h
	c.attrs = make([]prefixed, len(h.attrs), len(h.attrs)+len(attrs))
	copy(c.attrs, h.attrs)

	for _, a := range attrs {
		c.attrs = append(c.attrs, prefixed{prefix: h.prefix, attr: a})
	}

	return &c
}

func (h *prettyTextHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.prefix = h.prefix + name + "."

	return &c
}

// replace applies the configured ReplaceAttr function to a built-in
// attribute.
func (h *prettyTextHandler) replace(a slog.Attr) slog.Attr {
	if h.opts.ReplaceAttr == nil {
		return a
	}

	return h.opts.ReplaceAttr(nil, a)
}

func (h *prettyTextHandler) writeKey(buf *bytes.Buffer, key string) {
	if buf.Len() > 0 {
		buf.WriteByte(' ')
	}

	buf.WriteString(h.pal.key.Render(key))
	buf.WriteByte('=')
}

func (h *prettyTextHandler) writeAttr(buf *bytes.Buffer, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()

	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			prefix += a.Key + "."
		}

		for _, ga := range a.Value.Group() {
			h.writeAttr(buf, prefix, ga)
		}

		return
	}

	h.writeKey(buf, prefix+a.Key)
	h.writeValue(buf, a.Value)
}

func (h *prettyTextHandler) writeValue(buf *bytes.Buffer, v slog.Value) {
	switch v.Kind() {
	case slog.KindInt64:
		buf.WriteString(h.pal.num.Render(strconv.FormatInt(v.Int64(), 10)))

	case slog.KindUint64:
		buf.WriteString(h.pal.num.Render(strconv.FormatUint(v.Uint64(), 10)))

	case slog.KindFloat64:
		buf.WriteString(h.pal.num.Render(strconv.FormatFloat(v.Float64(), 'g', -1, 64)))

	case slog.KindBool:
		if v.Bool() {
			buf.WriteString(h.pal.yes.Render("true"))
		} else {
			buf.WriteString(h.pal.no.Render("false"))
		}

	case slog.KindDuration:
		buf.WriteString(h.pal.dur.Render(v.Duration().String()))

	case slog.KindTime:
		buf.WriteString(h.pal.when.Render(v.Time().String()))

	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			buf.WriteString(h.pal.severe.Render(err.Error()))

			return
		}

		buf.WriteString(h.pal.str.Render(v.String()))

	case slog.KindString, slog.KindGroup, slog.KindLogValuer:
		buf.WriteString(h.pal.str.Render(v.String()))

	default:
		buf.WriteString(h.pal.str.Render(v.String()))
	}
}
