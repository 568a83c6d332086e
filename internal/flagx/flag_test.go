package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "keeps flag with separate value",
			args:    []string{"-f", "http://feed", "-x", "junk"},
			allowed: []string{"-f"},
			want:    []string{"-f", "http://feed"},
		},
		{
			name:    "keeps equals form",
			args:    []string{"--config=conf.json", "-z"},
			allowed: []string{"--config"},
			want:    []string{"--config=conf.json"},
		},
		{
			name:    "drops everything when nothing allowed",
			args:    []string{"-a", "1", "-b"},
			allowed: nil,
			want:    nil,
		},
		{
			name:    "does not eat a following flag as value",
			args:    []string{"-v", "-d", "test.db"},
			allowed: []string{"-v", "-d"},
			want:    []string{"-v", "-d", "test.db"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}
