package scidata

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	j "github.com/goccy/go-json"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	eng "github.com/scidatatool/scidata/internal/engine"
	js "github.com/scidatatool/scidata/jsonschema"
	"github.com/scidatatool/scidata/source/gojson"
)

// Severity selects how a recoverable input problem (such as a duplicate key)
// is treated.
type Severity int

const (
	SeverityIgnore Severity = iota
	SeverityWarn
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityIgnore:
		return "ignore"
	case SeverityWarn:
		return "warn"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// ParseSeverity maps "ignore", "warn" and "error" to a Severity.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ignore":
		return SeverityIgnore, nil
	case "warn", "":
		return SeverityWarn, nil
	case "error":
		return SeverityError, nil
	default:
		return SeverityWarn, fmt.Errorf("unknown severity %q", s)
	}
}

type ioOptions struct {
	logger   *zap.Logger
	maxDepth int
	maxBytes int64
	dup      Severity
	validate bool
}

// IOOption configures Load, LoadInitDict, Save and the *FromPath
// constructors.
type IOOption func(*ioOptions)

// WithLogger routes load and save diagnostics to l. The default discards them.
func WithLogger(l *zap.Logger) IOOption { return func(o *ioOptions) { o.logger = l } }

// WithMaxDepth caps container nesting; 0 means unlimited.
func WithMaxDepth(n int) IOOption { return func(o *ioOptions) { o.maxDepth = n } }

// WithMaxBytes caps the size of the file being loaded; 0 means unlimited.
func WithMaxBytes(n int64) IOOption { return func(o *ioOptions) { o.maxBytes = n } }

// WithDuplicateKeys sets the handling of repeated JSON object keys. The
// default is SeverityWarn: the last value wins and a warning is logged.
func WithDuplicateKeys(s Severity) IOOption { return func(o *ioOptions) { o.dup = s } }

// WithSchemaValidation checks loaded dicts against the JSON Schema of the
// class named by their ClassKey entry.
func WithSchemaValidation(enabled bool) IOOption { return func(o *ioOptions) { o.validate = enabled } }

func collectOptions(opts []IOOption) ioOptions {
	o := ioOptions{dup: SeverityWarn}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	return o
}

// Load reads the file at path and rebuilds the record its ClassKey names.
func Load(ctx context.Context, path string, opts ...IOOption) (Record, error) {
	_, m, err := LoadInitDict(ctx, path, opts...)
	if err != nil {
		return nil, err
	}
	return FromDict(m)
}

// LoadInitDict reads the init dict stored at path. JSON files go through the
// streaming token engine; .yaml and .yml files through yaml.v3. The class is
// the ClassKey entry of the dict, or "" when absent.
func LoadInitDict(ctx context.Context, path string, opts ...IOOption) (string, map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}
	o := collectOptions(opts)
	log := o.logger.With(zap.String("path", path))

	data, err := readLimited(path, o.maxBytes)
	if err != nil {
		return "", nil, err
	}

	var root any
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		root, err = decodeJSON(data, o, log)
	case ".yaml", ".yml":
		root, err = decodeYAML(data, o)
	default:
		return "", nil, singleIssue(CodeParseError, fmt.Sprintf("unsupported file extension %q", ext))
	}
	if err != nil {
		return "", nil, err
	}

	m, ok := root.(map[string]any)
	if !ok {
		return "", nil, malformedInitDict("Record", root)
	}
	class, _ := m[ClassKey].(string)
	if o.validate {
		if err := validateDict(class, m); err != nil {
			return "", nil, err
		}
	}
	log.Debug("loaded init dict", zap.String("class", class), zap.Int("keys", len(m)))
	return class, m, nil
}

// Save writes the dict form of r to path as JSON or YAML depending on the
// extension. A path without extension gets ".json". Missing parent
// directories are created. It returns the path actually written.
func Save(ctx context.Context, r Record, path string, opts ...IOOption) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if isNilRecord(r) {
		return "", singleIssue(CodeMalformedInitDict, "nil record")
	}
	o := collectOptions(opts)
	if filepath.Ext(path) == "" {
		path += ".json"
	}

	var (
		out []byte
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		out, err = j.MarshalIndent(r.AsDict(), "", "    ")
	case ".yaml", ".yml":
		out, err = yaml.Marshal(r.AsDict())
	default:
		return "", singleIssue(CodeParseError, fmt.Sprintf("unsupported file extension %q", ext))
	}
	if err != nil {
		return "", fmt.Errorf("scidata: encode %s: %w", r.ClassName(), err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("scidata: create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return "", fmt.Errorf("scidata: write %s: %w", path, err)
	}
	o.logger.Info("saved record", zap.String("class", r.ClassName()), zap.String("path", path), zap.Int("bytes", len(out)))
	return path, nil
}

func fromPath[T Record](ctx context.Context, path string, opts []IOOption, build func(any) (T, error)) (T, error) {
	var zero T
	_, m, err := LoadInitDict(ctx, path, opts...)
	if err != nil {
		return zero, err
	}
	return build(m)
}

// readLimited enforces the size cap up front by reading one byte past it.
func readLimited(path string, maxBytes int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, AppendIssues(nil, Issue{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err})
	}
	defer f.Close()
	var r io.Reader = f
	if maxBytes > 0 {
		r = io.LimitReader(f, maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, AppendIssues(nil, Issue{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err})
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, singleIssue(CodeTruncated, "max bytes exceeded")
	}
	return data, nil
}

func decodeJSON(data []byte, o ioOptions, log *zap.Logger) (any, error) {
	lim := eng.Limits{MaxDepth: o.maxDepth}
	switch o.dup {
	case SeverityIgnore:
		lim.Duplicates = eng.DupIgnore
	case SeverityError:
		lim.Duplicates = eng.DupError
	default:
		lim.Duplicates = eng.DupWarn
		lim.OnIssue = func(ie eng.IssueError) {
			log.Warn("duplicate key", zap.String("pointer", ie.Path))
		}
	}
	v, err := eng.DecodeAny(eng.Enforce(gojson.NewReader(bytes.NewReader(data)), lim))
	if err != nil {
		return nil, toIssues(err)
	}
	return v, nil
}

func decodeYAML(data []byte, o ioOptions) (any, error) {
	var node any
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, AppendIssues(nil, Issue{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err})
	}
	if m := yamlAnyToStringMap(node); m != nil {
		node = m
	}
	if o.maxDepth > 0 {
		if p, ok := exceedsDepth(node, o.maxDepth, 0, rootPath()); ok {
			return nil, Issues{{Path: p.pointer(), Code: CodeParseError, Message: "max depth exceeded"}}
		}
	}
	return node, nil
}

// yamlAnyToStringMap converts YAML-decoded values (which may contain
// map[any]any) into JSON-like map[string]any recursively. Non-map roots
// return nil.
func yamlAnyToStringMap(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = yamlNormalizeValue(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[fmt.Sprint(k)] = yamlNormalizeValue(vv)
		}
		return out
	default:
		return nil
	}
}

func yamlNormalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any, map[any]any:
		return yamlAnyToStringMap(t)
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = yamlNormalizeValue(t[i])
		}
		return arr
	default:
		return v
	}
}

// exceedsDepth reports the pointer of the first container opened beyond max.
func exceedsDepth(v any, max, depth int, at pathRef) (pathRef, bool) {
	switch t := v.(type) {
	case map[string]any:
		if depth+1 > max {
			return at, true
		}
		for k, vv := range t {
			if p, ok := exceedsDepth(vv, max, depth+1, at.field(k)); ok {
				return p, true
			}
		}
	case []any:
		if depth+1 > max {
			return at, true
		}
		for i, vv := range t {
			if p, ok := exceedsDepth(vv, max, depth+1, at.index(i)); ok {
				return p, true
			}
		}
	}
	return pathRef{}, false
}

func pointerOrRoot(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

var validators sync.Map // *Class -> *js.Validator

func validatorFor(c *Class) (*js.Validator, error) {
	if v, ok := validators.Load(c); ok {
		return v.(*js.Validator), nil
	}
	vd, err := js.Compile(c.JSONSchema())
	if err != nil {
		return nil, err
	}
	actual, _ := validators.LoadOrStore(c, vd)
	return actual.(*js.Validator), nil
}

// ValidateDict checks m against the JSON Schema of the class registered as
// class. Unregistered classes report unknown_class.
func ValidateDict(class string, m map[string]any) error {
	return validateDict(class, m)
}

func validateDict(class string, m map[string]any) error {
	c, ok := LookupClass(class)
	if !ok {
		return Issues{{Path: fieldPath(ClassKey).pointer(), Code: CodeUnknownClass, Message: unknownClassMessage(class)}}
	}
	vd, err := validatorFor(c)
	if err != nil {
		return fmt.Errorf("scidata: compile schema for %s: %w", class, err)
	}
	violations, err := vd.Validate(m)
	if err != nil {
		return fmt.Errorf("scidata: validate %s: %w", class, err)
	}
	if len(violations) == 0 {
		return nil
	}
	iss := make(Issues, 0, len(violations))
	for _, v := range violations {
		iss = append(iss, Issue{Path: v.Path, Code: CodeSchemaViolation, Message: v.Message})
	}
	return iss
}

// toIssues maps engine and decoder errors onto Issues.
func toIssues(err error) Issues {
	if err == nil {
		return nil
	}
	if ii, ok := AsIssues(err); ok {
		return ii
	}
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return AppendIssues(nil, Issue{Code: ie.Code, Path: pointerOrRoot(ie.Path), Message: ie.Message, Cause: err})
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return AppendIssues(nil, Issue{Code: CodeTruncated, Path: "/", Message: "unexpected end of input", Cause: err})
	}
	return AppendIssues(nil, Issue{Code: CodeParseError, Path: "/", Message: err.Error(), Cause: err})
}
