package identity

import (
	"testing"

	"github.com/YusovID/fraud-registry/internal/apperrors"
	"github.com/YusovID/fraud-registry/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func TestClassify(t *testing.T) {
	testCases := []struct {
		query    string
		expected FieldSet
	}{
		{"+1 (555) 123-4567", FieldSet{Phone}},
		{"  0501234567 ", FieldSet{Phone}},
		{"John@Example.com", FieldSet{Email}},
		{"https://facebook.com/john.doe", FieldSet{Facebook}},
		{"fb.com/someone", FieldSet{Facebook}},
		{"john", FieldSet{Email, Phone, Facebook}},
		{"john@mail", FieldSet{Email, Phone, Facebook}},
		{"", FieldSet{Email, Phone, Facebook}},
	}

	for _, tc := range testCases {
		t.Run(tc.query, func(t *testing.T) {
			assert.Equal(t, tc.expected, Classify(tc.query))
		})
	}
}

func TestClassify_EmailRuleBeatsFacebook(t *testing.T) {
	// contains both '@' and '.', so the email rule fires first
	assert.Equal(t, FieldSet{Email}, Classify("user@facebook.com"))
}

func TestClassify_NeverEmpty(t *testing.T) {
	for _, q := range []string{"", " ", "()", "a", "@", "."} {
		assert.NotEmpty(t, Classify(q), q)
	}
}

func TestMatches(t *testing.T) {
	r := &domain.Report{
		Email:      strptr("Scammer@Mail.com"),
		FacebookID: strptr("facebook.com/bad.guy"),
	}

	assert.True(t, Matches(r, FieldSet{Email}, "scammer@mail"))
	assert.True(t, Matches(r, FieldSet{Email}, "  MAIL.COM "))
	assert.False(t, Matches(r, FieldSet{Phone}, "mail"))
	assert.False(t, Matches(r, FieldSet{Email}, "bad.guy"))
	assert.True(t, Matches(r, All, "bad.guy"))
	assert.False(t, Matches(r, All, ""))
	assert.False(t, Matches(r, nil, "mail"))
}

func TestMatchedOnAndSummary(t *testing.T) {
	r := &domain.Report{
		Email: strptr("a@b.com"),
		Phone: strptr("+100"),
	}

	assert.Equal(t, FieldSet{Email}, MatchedOn(r, All, "b.com"))
	assert.Equal(t, "Email: a@b.com, Phone: +100", Summary(r, All))
	assert.Equal(t, "Phone: +100", Summary(r, FieldSet{Phone, Facebook}))
}

func TestParseFields(t *testing.T) {
	set, err := ParseFields("phone, EMAIL,phone,,")
	require.NoError(t, err)
	assert.Equal(t, FieldSet{Phone, Email}, set)
	assert.Equal(t, []string{"phone", "email"}, set.Names())

	set, err = ParseFields("")
	require.NoError(t, err)
	assert.Empty(t, set)

	_, err = ParseFields("email,twitter")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestFieldSet_Intersect(t *testing.T) {
	assert.Equal(t, FieldSet{Email, Facebook}, All.Intersect(FieldSet{Facebook, Email}))
	assert.Empty(t, FieldSet{Phone}.Intersect(FieldSet{Email}))
}
