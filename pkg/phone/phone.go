// Package phone normalizes freeform phone numbers into E.164 for SMS delivery.
// Clients type numbers in whatever national format they know; the default
// country code decides how national-format inputs are interpreted.
package phone

import (
	"errors"
	"regexp"
	"strings"
)

var (
	// ErrInvalid is returned for inputs that cannot be a phone number at all
	// (empty, too short, too long after cleaning).
	ErrInvalid = errors.New("invalid phone number")

	// ErrAmbiguous is returned for a bare 9-15 digit string with no leading
	// "+", "00" or trunk "0" and no recognizable country code. Such input may
	// be a local number missing its country code or plain garbage; callers
	// that want to accept it must opt in with AllowBareLocal.
	ErrAmbiguous = errors.New("ambiguous phone number: no country prefix")
)

var e164Pattern = regexp.MustCompile(`^\+[1-9]\d{1,14}$`)

// Context selects the default dialing code used to complete national-format
// numbers. The zero value is ContextFrance.
type Context int

const (
	ContextFrance Context = iota
	ContextBurkina
	ContextCoteIvoire
	ContextSenegal
	ContextMali
	ContextNiger
	ContextTogo
	ContextBenin
	ContextGhana
	ContextNigeria
)

var dialingCodes = map[Context]string{
	ContextFrance:     "33",
	ContextBurkina:    "226",
	ContextCoteIvoire: "225",
	ContextSenegal:    "221",
	ContextMali:       "223",
	ContextNiger:      "227",
	ContextTogo:       "228",
	ContextBenin:      "229",
	ContextGhana:      "233",
	ContextNigeria:    "234",
}

// isoContexts maps ISO 3166-1 alpha-2 codes stored on client records to a
// normalization context. Countries outside the service area fall back to
// France, where most senders are.
var isoContexts = map[string]Context{
	"FR": ContextFrance,
	"BF": ContextBurkina,
	"CI": ContextCoteIvoire,
	"SN": ContextSenegal,
	"ML": ContextMali,
	"NE": ContextNiger,
	"TG": ContextTogo,
	"BJ": ContextBenin,
	"GH": ContextGhana,
	"NG": ContextNigeria,
}

// ContextForCountryCode resolves an ISO alpha-2 country code to a context.
func ContextForCountryCode(iso string) Context {
	if ctx, ok := isoContexts[strings.ToUpper(strings.TrimSpace(iso))]; ok {
		return ctx
	}
	return ContextFrance
}

// DialingCode returns the international dialing code for a context.
func (c Context) DialingCode() string {
	if code, ok := dialingCodes[c]; ok {
		return code
	}
	return dialingCodes[ContextFrance]
}

type options struct {
	allowBareLocal bool
}

// Option adjusts normalization behavior.
type Option func(*options)

// AllowBareLocal accepts a 9-15 digit string without any recognizable prefix
// as a local-format number and completes it with the default country code.
// Without this option such input yields ErrAmbiguous.
func AllowBareLocal() Option {
	return func(o *options) { o.allowBareLocal = true }
}

// Normalize converts a freeform phone string into E.164 using the given
// default dialing code (digits only, e.g. "33").
func Normalize(raw, defaultCountryCode string, opts ...Option) (string, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	cleaned := clean(raw)
	if cleaned == "" {
		return "", ErrInvalid
	}

	// International dial prefix "00" is equivalent to "+".
	if strings.HasPrefix(cleaned, "00") {
		cleaned = cleaned[2:]
		if cleaned == "" {
			return "", ErrInvalid
		}
		return "+" + cleaned, nil
	}

	// Already international. Digit count is checked separately by IsValidE164
	// at the call sites that care.
	if strings.HasPrefix(cleaned, "+") {
		return cleaned, nil
	}

	// National trunk prefix: 0X XX XX XX XX -> +<cc>XXXXXXXXX.
	if strings.HasPrefix(cleaned, "0") {
		return "+" + defaultCountryCode + cleaned[1:], nil
	}

	// Country code typed without "+".
	if strings.HasPrefix(cleaned, defaultCountryCode) {
		return "+" + cleaned, nil
	}

	// Bare local number without trunk prefix. Length is the only heuristic
	// left, so acceptance is opt-in per call site.
	if len(cleaned) >= 9 && len(cleaned) <= 15 {
		if !o.allowBareLocal {
			return "", ErrAmbiguous
		}
		return "+" + defaultCountryCode + cleaned, nil
	}

	return "", ErrInvalid
}

// SmartNormalize resolves the context to a dialing code and delegates to
// Normalize. Inputs already in valid E.164 form are returned unchanged,
// bypassing the context entirely.
func SmartNormalize(raw string, ctx Context, opts ...Option) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if IsValidE164(trimmed) {
		return trimmed, nil
	}
	return Normalize(raw, ctx.DialingCode(), opts...)
}

// IsValidE164 reports whether s matches ^\+[1-9]\d{1,14}$.
func IsValidE164(s string) bool {
	return e164Pattern.MatchString(s)
}

// FormatForDisplay pretty-prints an E.164 number. French numbers are grouped
// as "+33 X XX XX XX XX"; other valid numbers get a generic 3-digit country
// code followed by the remainder in pairs. Anything else is returned as-is.
func FormatForDisplay(s string) string {
	if !IsValidE164(s) {
		return s
	}

	digits := s[1:]

	if strings.HasPrefix(digits, "33") && len(digits) == 11 {
		rest := digits[2:]
		return "+33 " + rest[:1] + " " + rest[1:3] + " " + rest[3:5] + " " + rest[5:7] + " " + rest[7:9]
	}

	if len(digits) > 3 {
		var b strings.Builder
		b.WriteString("+")
		b.WriteString(digits[:3])
		rest := digits[3:]
		for i := 0; i < len(rest); i += 2 {
			end := i + 2
			if end > len(rest) {
				end = len(rest)
			}
			b.WriteString(" ")
			b.WriteString(rest[i:end])
		}
		return b.String()
	}

	return s
}

// clean strips whitespace and common punctuation, keeping digits and a
// leading "+".
func clean(raw string) string {
	trimmed := strings.TrimSpace(raw)
	var b strings.Builder
	for i, r := range trimmed {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '.' || r == '(' || r == ')':
			// stripped
		default:
			return ""
		}
	}
	return b.String()
}
