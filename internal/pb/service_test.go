package pb

import (
	"os"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The hand-written descriptor must list exactly the rpcs of the schema.
func TestServiceMatchesSchema(t *testing.T) {
	src, err := os.ReadFile("slotswap/v1/slotswap.proto")
	require.NoError(t, err)

	var fromSchema []string
	for _, m := range regexp.MustCompile(`(?m)^\s*rpc (\w+)\(`).FindAllStringSubmatch(string(src), -1) {
		fromSchema = append(fromSchema, m[1])
	}
	var fromDesc []string
	for _, m := range ServiceDesc.Methods {
		fromDesc = append(fromDesc, m.MethodName)
	}
	assert.Equal(t, fromSchema, fromDesc)
	assert.Regexp(t, `package slotswap\.v1;`, string(src))
	assert.Equal(t, "slotswap.v1.SlotSwapService", ServiceName)
}
