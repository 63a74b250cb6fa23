package blogflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostFilename(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		title string
		want  string
	}{
		{name: "spaces become underscores", n: 1, title: "LRU Cache", want: "Blog_Post_1_LRU_Cache.md"},
		{name: "hyphens survive", n: 2, title: "Write-Through Cache", want: "Blog_Post_2_Write-Through_Cache.md"},
		{name: "slashes are neutralized", n: 3, title: "TCP/IP Basics", want: "Blog_Post_3_TCP-IP_Basics.md"},
		{name: "colons are neutralized", n: 4, title: "Caching: A Primer", want: "Blog_Post_4_Caching-_A_Primer.md"},
		{name: "path traversal cannot escape", n: 5, title: "../../etc/passwd", want: "Blog_Post_5_..-..-etc-passwd.md"},
		{name: "empty title gets a placeholder", n: 6, title: "   ", want: "Blog_Post_6_untitled.md"},
		{name: "dots and digits pass through", n: 7, title: "Go 1.22 Routing", want: "Blog_Post_7_Go_1.22_Routing.md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PostFilename(tt.n, tt.title))
		})
	}
}
