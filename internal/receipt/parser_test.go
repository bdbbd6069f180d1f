package receipt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanModelJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "raw json untouched",
			in:   `[{"name":"Coffee","unitPrice":3.5,"quantity":1}]`,
			want: `[{"name":"Coffee","unitPrice":3.5,"quantity":1}]`,
		},
		{
			name: "json fence stripped",
			in:   "```json\n[{\"name\":\"Tea\"}]\n```",
			want: `[{"name":"Tea"}]`,
		},
		{
			name: "bare fence stripped",
			in:   "```\n[]\n```",
			want: "[]",
		},
		{
			name: "surrounding prose trimmed",
			in:   "Here are the items:\n[{\"name\":\"Pie\"}]\nLet me know!",
			want: `[{"name":"Pie"}]`,
		},
		{
			name: "whitespace trimmed",
			in:   "  \n[]\n  ",
			want: "[]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanModelJSON(tt.in))
		})
	}
}
