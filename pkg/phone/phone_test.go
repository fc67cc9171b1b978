package phone

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize_frenchNationalFormats(t *testing.T) {
	inputs := []string{
		"0745371282",
		"07 45 37 12 82",
		"07-45-37-12-82",
		"07.45.37.12.82",
		"07 45-37.12 82",
		" 0745371282 ",
	}
	for _, in := range inputs {
		got, err := Normalize(in, "33")
		require.NoError(t, err, "input %q", in)
		require.Equal(t, "+33745371282", got, "input %q", in)
	}
}

func TestNormalize_internationalPrefixes(t *testing.T) {
	got, err := Normalize("0033745371282", "33")
	require.NoError(t, err)
	require.Equal(t, "+33745371282", got)

	got, err = Normalize("+226 70 12 34 56", "33")
	require.NoError(t, err)
	require.Equal(t, "+22670123456", got)

	// Country code typed without the plus sign.
	got, err = Normalize("33745371282", "33")
	require.NoError(t, err)
	require.Equal(t, "+33745371282", got)
}

func TestNormalize_bareLocalIsOptIn(t *testing.T) {
	// 9 digits, no trunk prefix, no country code: ambiguous by default.
	_, err := Normalize("745371282", "33")
	require.ErrorIs(t, err, ErrAmbiguous)

	got, err := Normalize("745371282", "33", AllowBareLocal())
	require.NoError(t, err)
	require.Equal(t, "+33745371282", got)
}

func TestNormalize_rejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "   ", "abc", "12 34", "123456", "+33 abc 45"} {
		_, err := Normalize(in, "33")
		require.Error(t, err, "input %q", in)
	}
}

func TestSmartNormalize_contexts(t *testing.T) {
	got, err := SmartNormalize("70 12 34 56 78", ContextBurkina, AllowBareLocal())
	require.NoError(t, err)
	require.Equal(t, "+2267012345678", got)

	got, err = SmartNormalize("0745371282", ContextFrance)
	require.NoError(t, err)
	require.Equal(t, "+33745371282", got)
}

func TestSmartNormalize_e164ShortCircuit(t *testing.T) {
	// Already valid E.164: returned unchanged regardless of context.
	for _, ctx := range []Context{ContextFrance, ContextBurkina, ContextGhana} {
		got, err := SmartNormalize("+22670123456", ctx)
		require.NoError(t, err)
		require.Equal(t, "+22670123456", got)
	}
}

func TestContextForCountryCode(t *testing.T) {
	require.Equal(t, ContextBurkina, ContextForCountryCode("BF"))
	require.Equal(t, ContextBurkina, ContextForCountryCode(" bf "))
	require.Equal(t, ContextNiger, ContextForCountryCode("NE"))
	require.Equal(t, ContextNigeria, ContextForCountryCode("NG"))
	// Outside the service area falls back to France.
	require.Equal(t, ContextFrance, ContextForCountryCode("DE"))
	require.Equal(t, ContextFrance, ContextForCountryCode(""))
}

func TestIsValidE164(t *testing.T) {
	require.True(t, IsValidE164("+33745371282"))
	require.True(t, IsValidE164("+22670123456"))
	require.False(t, IsValidE164("0745371282"))
	require.False(t, IsValidE164(""))
	require.False(t, IsValidE164("+0745371282"))
	require.False(t, IsValidE164("+3374537128212345678"))
}

func TestFormatForDisplay_french(t *testing.T) {
	require.Equal(t, "+33 7 45 37 12 82", FormatForDisplay("+33745371282"))
}

func TestFormatForDisplay_generic(t *testing.T) {
	require.Equal(t, "+226 70 12 34 56", FormatForDisplay("+22670123456"))
}

func TestFormatForDisplay_passthrough(t *testing.T) {
	require.Equal(t, "not a phone", FormatForDisplay("not a phone"))
	require.Equal(t, "0745371282", FormatForDisplay("0745371282"))
}

func TestFormatForDisplay_roundTrip(t *testing.T) {
	normalized, err := Normalize("07 45 37 12 82", "33")
	require.NoError(t, err)
	require.Equal(t, "+33 7 45 37 12 82", FormatForDisplay(normalized))
}
