package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubstitute(t *testing.T) {
	t.Setenv("REPORTDECK_TEST_HOST", "db.internal")
	t.Setenv("REPORTDECK_TEST_EMPTY", "")

	tests := []struct {
		name  string
		value string
		want  string
	}{
		{name: "no placeholders", value: "postgresql://localhost/slf", want: "postgresql://localhost/slf"},
		{name: "one placeholder", value: "postgresql://{{ env.REPORTDECK_TEST_HOST }}/slf", want: "postgresql://db.internal/slf"},
		{name: "tight spacing", value: "{{env.REPORTDECK_TEST_HOST}}", want: "db.internal"},
		{name: "repeated", value: "{{ env.REPORTDECK_TEST_HOST }},{{ env.REPORTDECK_TEST_HOST }}", want: "db.internal,db.internal"},
		{name: "set but empty", value: "x{{ env.REPORTDECK_TEST_EMPTY }}y", want: "xy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Substitute(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSubstitute_Unset(t *testing.T) {
	_, err := Substitute("{{ env.REPORTDECK_TEST_NEVER_SET }}")
	assert.EqualError(t, err, "environment variable 'REPORTDECK_TEST_NEVER_SET' not found")
}
