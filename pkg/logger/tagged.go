package logger

import "strings"

// TagSeparator joins nested component names inside one tag.
const TagSeparator = "/"

// Tag renders the marker the host prints in front of plugin output,
// "[NotificationWhitelist/http]". Empty parts are skipped; no parts gives "".
func Tag(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return ""
	}
	return "[" + strings.Join(kept, TagSeparator) + "]"
}

// TaggedLogger writes every message behind the Tag of its component path.
type TaggedLogger struct {
	inner Logger
	path  []string
	tag   string
}

// NewTaggedLogger tags inner with name. Tagging a TaggedLogger nests the name
// under the existing path instead of stacking a second tag.
func NewTaggedLogger(inner Logger, name string) *TaggedLogger {
	if t, ok := inner.(*TaggedLogger); ok {
		return t.Sub(name)
	}
	return newTagged(inner, []string{name})
}

func newTagged(inner Logger, path []string) *TaggedLogger {
	return &TaggedLogger{
		inner: inner,
		path:  path,
		tag:   Tag(path...),
	}
}

// Sub returns a logger for a component under this one.
func (t *TaggedLogger) Sub(name string) *TaggedLogger {
	path := make([]string, len(t.path), len(t.path)+1)
	copy(path, t.path)
	return newTagged(t.inner, append(path, name))
}

// Path is the component path without brackets, "NotificationWhitelist/http".
func (t *TaggedLogger) Path() string {
	return strings.Trim(t.tag, "[]")
}

func (t *TaggedLogger) msg(m string) string {
	if t.tag == "" {
		return m
	}
	return t.tag + " " + m
}

func (t *TaggedLogger) SetLogLevel(levelStr string) {
	t.inner.SetLogLevel(levelStr)
}

func (t *TaggedLogger) GetLogLevel() string {
	return t.inner.GetLogLevel()
}

func (t *TaggedLogger) Trace(msg string, args ...any) {
	t.inner.Trace(t.msg(msg), args...)
}

func (t *TaggedLogger) Debug(msg string, args ...any) {
	t.inner.Debug(t.msg(msg), args...)
}

func (t *TaggedLogger) Info(msg string, args ...any) {
	t.inner.Info(t.msg(msg), args...)
}

func (t *TaggedLogger) Warn(msg string, args ...any) {
	t.inner.Warn(t.msg(msg), args...)
}

func (t *TaggedLogger) Error(msg string, err error, args ...any) {
	t.inner.Error(t.msg(msg), err, args...)
}

func (t *TaggedLogger) Fatal(msg string, err error, args ...any) {
	t.inner.Fatal(t.msg(msg), err, args...)
}
