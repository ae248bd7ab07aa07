package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderHTML(t *testing.T) {
	svc := NewService(WithGFM())

	out, err := svc.RenderHTML([]byte("## Noah Smith\n\n- **Feedings:** 2\n- ~~old~~\n"))
	require.NoError(t, err)
	assert.Contains(t, out, "<h2>Noah Smith</h2>")
	assert.Contains(t, out, "<li><strong>Feedings:</strong> 2</li>")
	assert.Contains(t, out, "<del>old</del>")

	out, err = svc.RenderHTML([]byte("<script>alert(1)</script>"))
	require.NoError(t, err)
	assert.NotContains(t, out, "<script>")
}
