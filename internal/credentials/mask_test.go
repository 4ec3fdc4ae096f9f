package credentials

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func Test_MaskToken_ShouldKeepOnlyLastFourCharacters(t *testing.T) {
	masked := MaskToken("ntn_1234567890abcd")

	assert.Equal(t, maskPrefix+"abcd", masked)
	assert.True(t, IsMasked(masked))
	assert.NotContains(t, masked, "ntn_")
	assert.Equal(t, "", MaskToken(""))
}

func Test_ResolveToken(t *testing.T) {
	stored := "ntn_storedtoken"

	assert.Equal(t, stored, ResolveToken("", true, stored))
	assert.Equal(t, stored, ResolveToken(MaskToken(stored), false, stored))
	assert.Equal(t, "ntn_new", ResolveToken("  ntn_new ", false, stored))
	assert.Equal(t, "", ResolveToken("", false, stored))
}
