package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeverity_String(t *testing.T) {
	assert.Equal(t, "CRITICAL", SeverityCritical.String())
	assert.Equal(t, "HIGH", SeverityHigh.String())
	assert.Equal(t, "MEDIUM", SeverityMedium.String())
	assert.Equal(t, "LOW", SeverityLow.String())
	assert.Equal(t, "Severity(9)", Severity(9).String())
}

func TestSeverity_Ordering(t *testing.T) {
	for i := 1; i < len(Severities); i++ {
		assert.Greater(t, Severities[i-1], Severities[i])
	}
}

func TestParseSeverity(t *testing.T) {
	s, err := ParseSeverity("high")
	require.NoError(t, err)
	assert.Equal(t, SeverityHigh, s)

	_, err = ParseSeverity("urgent")
	assert.Error(t, err)
}

func TestNewFinding(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		f, err := NewFinding(CategoryStorage, SeverityHigh, "S3 Bucket: b", "public", "block")
		require.NoError(t, err)
		assert.Equal(t, CategoryStorage, f.Category)
		assert.Equal(t, SeverityHigh, f.Severity)
	})

	t.Run("empty fields", func(t *testing.T) {
		_, err := NewFinding(CategoryStorage, SeverityHigh, "", "public", "block")
		assert.Error(t, err)
		_, err = NewFinding(CategoryStorage, SeverityHigh, "r", " ", "block")
		assert.Error(t, err)
		_, err = NewFinding(CategoryStorage, SeverityHigh, "r", "public", "")
		assert.Error(t, err)
	})

	t.Run("unknown severity", func(t *testing.T) {
		_, err := NewFinding(CategoryStorage, Severity(42), "r", "i", "x")
		assert.Error(t, err)
	})
}

func TestParseCategories(t *testing.T) {
	assert.Nil(t, ParseCategories())
	assert.Nil(t, ParseCategories("", "  "))
	assert.Equal(t, []Category{CategoryStorage, CategoryIdentity}, ParseCategories(" S3", "IAM "))
}
