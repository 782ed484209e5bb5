package i18n

import (
	"sort"
	"strings"
	"sync"
)

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "field" or "expected").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator. Templates use
// {key} placeholders filled from data.
type dictTranslator struct{ lang string }

var templates = map[string]map[string]string{
	"en": {
		"type_mismatch":       "field {field} expects {expected}, got {got}",
		"unknown_attribute":   "{class} has no field {field}",
		"malformed_init_dict": "{class} init dict must be a mapping, got {got}",
		"unknown_class":       "unknown class {class}",
		"parse_error":         "parse error",
		"duplicate_key":       "duplicate key",
		"truncated":           "truncated",
		"trailing_data":       "trailing data",
		"schema_violation":    "schema violation",
	},
	"ja": {
		"type_mismatch":       "フィールド {field} は {expected} 型が必要です ({got} が与えられました)",
		"unknown_attribute":   "{class} にフィールド {field} はありません",
		"malformed_init_dict": "{class} の初期化辞書はマップである必要があります ({got} が与えられました)",
		"unknown_class":       "未知のクラスです: {class}",
		"parse_error":         "解析エラー",
		"duplicate_key":       "キーが重複しています",
		"truncated":           "打ち切られました",
		"trailing_data":       "ルート値の後に余分なデータがあります",
		"schema_violation":    "スキーマ違反です",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	tpl, ok := templates[t.lang][code]
	if !ok {
		return code
	}
	if len(data) == 0 {
		return tpl
	}
	// sorted keys keep replacement order stable
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, "{"+k+"}", data[k])
	}
	return strings.NewReplacer(pairs...).Replace(tpl)
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	mu.Lock()
	currentTranslator = dictTranslator{lang: lang}
	mu.Unlock()
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
