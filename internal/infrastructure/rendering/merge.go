package rendering

import (
	"bytes"
	"html/template"
	"maps"
	"math"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/docgen/backend/internal/domain/rendering"
)

// MergeEngine substitutes record fields into template markup. It uses Go's
// html/template package with formatting functions for user templates.
type MergeEngine struct {
	funcMap template.FuncMap
}

// MergeEngineOption configures the merge engine
type MergeEngineOption func(*MergeEngine)

// WithFuncs adds extra template functions to the engine
func WithFuncs(funcs template.FuncMap) MergeEngineOption {
	return func(e *MergeEngine) {
		maps.Copy(e.funcMap, funcs)
	}
}

// NewMergeEngine creates a new merge engine with default configuration
func NewMergeEngine(opts ...MergeEngineOption) *MergeEngine {
	e := &MergeEngine{}

	e.funcMap = template.FuncMap{
		// Money formatting
		"formatMoney":    formatMoney,
		"formatMoneyRaw": formatMoneyRaw,

		// Date formatting
		"formatDate":     formatDate,
		"formatDateTime": formatDateTime,
		"formatTime":     formatTime,

		// Number formatting
		"formatDecimal": formatDecimal,
		"formatInt":     formatInt,
		"formatPercent": formatPercent,

		// String utilities
		"truncate":  truncate,
		"join":      strings.Join,
		"upper":     strings.ToUpper,
		"lower":     strings.ToLower,
		"title":     titleCase,
		"trim":      strings.TrimSpace,
		"replace":   strings.ReplaceAll,
		"split":     strings.Split,
		"contains":  strings.Contains,
		"hasPrefix": strings.HasPrefix,
		"hasSuffix": strings.HasSuffix,
		"repeat":    strings.Repeat,

		// Comparison
		"numEq": func(a, b interface{}) bool { return toDecimal(a).Equal(toDecimal(b)) },
		"numLt": func(a, b interface{}) bool { return toDecimal(a).LessThan(toDecimal(b)) },
		"numLe": func(a, b interface{}) bool { return toDecimal(a).LessThanOrEqual(toDecimal(b)) },
		"numGt": func(a, b interface{}) bool { return toDecimal(a).GreaterThan(toDecimal(b)) },
		"numGe": func(a, b interface{}) bool { return toDecimal(a).GreaterThanOrEqual(toDecimal(b)) },

		// Arithmetic
		"add":      add,
		"sub":      sub,
		"mul":      mul,
		"div":      div,
		"abs":      absFunc,
		"round":    roundFunc,
		"roundUp":  roundUp,
		"sum":      sum,
		"sumField": sumField,

		// Conditional
		"default":  defaultFunc,
		"ternary":  ternary,
		"coalesce": coalesce,
		"empty":    empty,
		"notEmpty": notEmpty,

		// Safe HTML
		"safeHTML": safeHTML,
		"safeCSS":  safeCSS,

		// Misc
		"shortUUID": shortUUID,
		"now":       time.Now,
		"seq":       seq,
		"dict":      dict,
		"list":      list,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Render merges a record into the given markup. The record's fields form the
// substitution data, plus "id" and "entityType"; extra values fill keys the
// record does not carry.
func (e *MergeEngine) Render(record *rendering.Record, markup string, extra map[string]any) (string, error) {
	if markup == "" {
		return "", nil
	}

	data := make(map[string]any, len(extra)+8)
	maps.Copy(data, extra)
	if record != nil {
		maps.Copy(data, record.Fields)
		data["id"] = record.ID
		data["entityType"] = record.EntityType.String()
	}

	name := "inline"
	if record != nil {
		name = record.ID.String()
	}

	tmpl, err := template.New(name).Funcs(e.funcMap).Parse(markup)
	if err != nil {
		return "", NewRenderError(ErrCodeInvalidMarkup, "failed to parse template markup", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", NewRenderError(ErrCodeRenderFailed, "failed to execute template markup", err)
	}

	return buf.String(), nil
}

// GetFuncMap returns a copy of the template function map
func (e *MergeEngine) GetFuncMap() template.FuncMap {
	funcMap := make(template.FuncMap, len(e.funcMap))
	maps.Copy(funcMap, e.funcMap)
	return funcMap
}

// =============================================================================
// Template Functions - Money Formatting
// =============================================================================

// formatMoney formats a value as currency with the given symbol
// Example: formatMoney 1234.56 "$" -> "$1,234.56"
func formatMoney(v interface{}, symbol string) string {
	return symbol + formatMoneyRaw(v)
}

// formatMoneyRaw formats a value as currency without symbol
// Example: 1234.56 -> "1,234.56"
func formatMoneyRaw(v interface{}) string {
	d := toDecimal(v)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	parts := strings.Split(d.StringFixed(2), ".")
	intPart := parts[0]
	decPart := "00"
	if len(parts) > 1 {
		decPart = parts[1]
	}

	var result strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(c)
	}

	return sign + result.String() + "." + decPart
}

// =============================================================================
// Template Functions - Date Formatting
// =============================================================================

// formatDate formats a time value as date string
// Example: time.Now() -> "2024-01-15"
func formatDate(v interface{}) string {
	t := toTime(v)
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

// formatDateTime formats a time value as datetime string
func formatDateTime(v interface{}) string {
	t := toTime(v)
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}

// formatTime formats a time value as time string
func formatTime(v interface{}) string {
	t := toTime(v)
	if t.IsZero() {
		return ""
	}
	return t.Format("15:04:05")
}

// =============================================================================
// Template Functions - Number Formatting
// =============================================================================

// formatDecimal formats a decimal with specified precision
func formatDecimal(v interface{}, precision int) string {
	return toDecimal(v).StringFixed(int32(precision))
}

// formatInt formats as integer
func formatInt(v interface{}) string {
	return toDecimal(v).Round(0).String()
}

// formatPercent formats as percentage
// Example: 0.15 -> "15%"
func formatPercent(v interface{}, precision int) string {
	percent := toDecimal(v).Mul(decimal.NewFromInt(100))
	return percent.StringFixed(int32(precision)) + "%"
}

// =============================================================================
// Template Functions - String Utilities
// =============================================================================

// truncate truncates a string to max runes with optional suffix.
// Uses rune count for proper UTF-8 handling.
func truncate(s string, max int, suffix ...string) string {
	suf := "..."
	if len(suffix) > 0 {
		suf = suffix[0]
	}
	runes := []rune(s)
	sufRunes := []rune(suf)
	if len(runes) <= max {
		return s
	}
	if max <= len(sufRunes) {
		return suf[:max]
	}
	return string(runes[:max-len(sufRunes)]) + suf
}

// titleCase converts string to title case using proper Unicode handling
func titleCase(s string) string {
	caser := cases.Title(language.English)
	return caser.String(s)
}

// =============================================================================
// Template Functions - Arithmetic
// =============================================================================

func add(a, b interface{}) decimal.Decimal {
	return toDecimal(a).Add(toDecimal(b))
}

func sub(a, b interface{}) decimal.Decimal {
	return toDecimal(a).Sub(toDecimal(b))
}

func mul(a, b interface{}) decimal.Decimal {
	return toDecimal(a).Mul(toDecimal(b))
}

func div(a, b interface{}) decimal.Decimal {
	bDec := toDecimal(b)
	if bDec.IsZero() {
		return decimal.Zero
	}
	return toDecimal(a).Div(bDec)
}

func absFunc(v interface{}) decimal.Decimal {
	return toDecimal(v).Abs()
}

func roundFunc(v interface{}, places int) decimal.Decimal {
	return toDecimal(v).Round(int32(places))
}

func roundUp(v interface{}, places int) decimal.Decimal {
	mult := decimal.NewFromFloat(math.Pow(10, float64(places)))
	return toDecimal(v).Mul(mult).Ceil().Div(mult)
}

func sum(vals ...interface{}) decimal.Decimal {
	result := decimal.Zero
	for _, v := range vals {
		result = result.Add(toDecimal(v))
	}
	return result
}

// sumField sums a field from a slice of structs/maps
// Usage in template: {{ sumField .items "amount" }}
func sumField(slice interface{}, field string) decimal.Decimal {
	result := decimal.Zero
	rv := reflect.ValueOf(slice)
	if rv.Kind() != reflect.Slice {
		return result
	}
	for i := 0; i < rv.Len(); i++ {
		elem := rv.Index(i)
		if elem.Kind() == reflect.Ptr || elem.Kind() == reflect.Interface {
			elem = elem.Elem()
		}
		var fieldVal reflect.Value
		switch elem.Kind() {
		case reflect.Struct:
			fieldVal = elem.FieldByName(field)
		case reflect.Map:
			fieldVal = elem.MapIndex(reflect.ValueOf(field))
		}
		if fieldVal.IsValid() {
			result = result.Add(toDecimal(fieldVal.Interface()))
		}
	}
	return result
}

// =============================================================================
// Template Functions - Conditional
// =============================================================================

func defaultFunc(val, def interface{}) interface{} {
	if empty(val) {
		return def
	}
	return val
}

func ternary(condition bool, trueVal, falseVal interface{}) interface{} {
	if condition {
		return trueVal
	}
	return falseVal
}

func coalesce(vals ...interface{}) interface{} {
	for _, v := range vals {
		if !empty(v) {
			return v
		}
	}
	return nil
}

func empty(v interface{}) bool {
	if v == nil {
		return true
	}
	switch val := v.(type) {
	case string:
		return val == ""
	case []interface{}:
		return len(val) == 0
	case []string:
		return len(val) == 0
	case map[string]interface{}:
		return len(val) == 0
	case int:
		return val == 0
	case int64:
		return val == 0
	case float64:
		return val == 0
	case bool:
		return !val
	}
	return false
}

func notEmpty(v interface{}) bool {
	return !empty(v)
}

// =============================================================================
// Template Functions - Safe HTML
// =============================================================================
// SECURITY WARNING: these bypass Go's built-in HTML escaping. Only use with
// trusted content that is NOT user-generated.
// =============================================================================

// safeHTML marks a string as safe HTML, bypassing automatic escaping
func safeHTML(s string) template.HTML {
	return template.HTML(s)
}

// safeCSS marks a string as safe CSS, bypassing automatic escaping
func safeCSS(s string) template.CSS {
	return template.CSS(s)
}

// =============================================================================
// Template Functions - Misc
// =============================================================================

func shortUUID(id uuid.UUID) string {
	s := id.String()
	if len(s) >= 8 {
		return s[:8]
	}
	return s
}

// seq generates a sequence of integers from 0 to n-1
func seq(n int) []int {
	if n <= 0 {
		return []int{}
	}
	result := make([]int, n)
	for i := 0; i < n; i++ {
		result[i] = i
	}
	return result
}

// dict creates a map from key-value pairs
func dict(pairs ...interface{}) map[string]interface{} {
	result := make(map[string]interface{})
	for i := 0; i < len(pairs)-1; i += 2 {
		key, ok := pairs[i].(string)
		if ok {
			result[key] = pairs[i+1]
		}
	}
	return result
}

// list creates a slice from values
func list(vals ...interface{}) []interface{} {
	return vals
}

// =============================================================================
// Helper Functions
// =============================================================================

// toDecimal converts various types to decimal.Decimal
func toDecimal(v interface{}) decimal.Decimal {
	switch val := v.(type) {
	case decimal.Decimal:
		return val
	case *decimal.Decimal:
		if val == nil {
			return decimal.Zero
		}
		return *val
	case int:
		return decimal.NewFromInt(int64(val))
	case int32:
		return decimal.NewFromInt(int64(val))
	case int64:
		return decimal.NewFromInt(val)
	case float32:
		return decimal.NewFromFloat(float64(val))
	case float64:
		return decimal.NewFromFloat(val)
	case string:
		d, err := decimal.NewFromString(val)
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}

// toTime converts various types to time.Time
func toTime(v interface{}) time.Time {
	switch val := v.(type) {
	case time.Time:
		return val
	case *time.Time:
		if val == nil {
			return time.Time{}
		}
		return *val
	case string:
		formats := []string{
			time.RFC3339,
			"2006-01-02T15:04:05Z",
			"2006-01-02 15:04:05",
			"2006-01-02",
		}
		for _, f := range formats {
			if t, err := time.Parse(f, val); err == nil {
				return t
			}
		}
		return time.Time{}
	case int64:
		return time.Unix(val, 0)
	default:
		return time.Time{}
	}
}
