package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/passgate/policy"
)

func TestProcessText_DropsBlankLines(t *testing.T) {
	text := "\n\n1-3 a: abbcde\n   \n1-3 b: cdefg\n\t\n2-9 c: ccccccccc\n\n"

	results := policy.ProcessText(text)

	require.Len(t, results, 3)
	assert.Equal(t, policy.Result{Line: "1-3 a: abbcde", Valid: true}, results[0])
	assert.Equal(t, policy.Result{Line: "1-3 b: cdefg", Valid: false}, results[1])
	assert.Equal(t, policy.Result{Line: "2-9 c: ccccccccc", Valid: true}, results[2])
}

func TestProcessText_CRLF(t *testing.T) {
	results := policy.ProcessText("1-3 a: abbcde\r\n1-3 b: cdefg\r\n")

	require.Len(t, results, 2)
	assert.Equal(t, "1-3 a: abbcde", results[0].Line)
	assert.True(t, results[0].Valid)
	assert.Equal(t, "1-3 b: cdefg", results[1].Line)
}

func TestProcessText_MalformedCarriesReason(t *testing.T) {
	results := policy.ProcessText("garbage")

	require.Len(t, results, 1)
	assert.False(t, results[0].Valid)
	assert.Equal(t, "garbage", results[0].Line)
	assert.NotEmpty(t, results[0].Reason)
}

func TestProcessText_Empty(t *testing.T) {
	assert.Empty(t, policy.ProcessText(""))
	assert.Empty(t, policy.ProcessText(" \n\t\n "))
}

func TestProcessText_PreservesOrder(t *testing.T) {
	lines := []string{"1-1 a: a", "1-1 a: b", "0-0 a: b", "2-2 a: aa", "x"}
	text := ""
	for _, l := range lines {
		text += l + "\n"
	}

	results := policy.ProcessText(text)

	require.Len(t, results, len(lines))
	for i, l := range lines {
		assert.Equal(t, l, results[i].Line)
	}
}

func TestSummarize(t *testing.T) {
	results := policy.ProcessText("1-3 a: abbcde\n1-3 b: cdefg")

	assert.Equal(t, policy.Summary{Valid: 1, Total: 2}, policy.Summarize(results))
	assert.Equal(t, policy.Summary{}, policy.Summarize(nil))
}
