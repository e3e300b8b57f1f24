package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "short flag with separate value",
			args:         []string{"-c", "conf.json", "-p", "3000"},
			allowedFlags: []string{"-c", "-config"},
			want:         []string{"-c", "conf.json"},
		},
		{
			name:         "flag with equals",
			args:         []string{"-config=alt.json", "-p", "3000"},
			allowedFlags: []string{"-c", "-config"},
			want:         []string{"-config=alt.json"},
		},
		{
			name:         "unknown flags ignored",
			args:         []string{"-x", "1", "-y=2", "positional"},
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
		{
			name:         "flag without value at end is kept",
			args:         []string{"-c"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c"},
		},
		{
			name:         "next dash-starting token is not a value",
			args:         []string{"-c", "-d", "postgres://x"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c"},
		},
		{
			name:         "several allowed flags keep their order",
			args:         []string{"-d", "postgres://db", "-c", "conf.json", "-m", "production"},
			allowedFlags: []string{"-c", "-d"},
			want:         []string{"-d", "postgres://db", "-c", "conf.json"},
		},
		{
			name:         "empty args",
			args:         []string{},
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowedFlags))
		})
	}
}

func TestConfigFile(t *testing.T) {
	assert.Equal(t, "/etc/short.json", ConfigFile([]string{"-c", "/etc/short.json"}))
	assert.Equal(t, "/etc/long.json", ConfigFile([]string{"-p", "8080", "-config", "/etc/long.json"}))
	assert.Equal(t, "/etc/2.json", ConfigFile([]string{"-c", "/etc/1.json", "-config=/etc/2.json"}))
	assert.Empty(t, ConfigFile([]string{"-x", "1"}))
	assert.Empty(t, ConfigFile(nil))
}

func TestEnvFile(t *testing.T) {
	assert.Equal(t, ".env", EnvFile(nil, ".env"))
	assert.Equal(t, "prod.env", EnvFile([]string{"-e", "prod.env"}, ".env"))
	assert.Equal(t, "ci.env", EnvFile([]string{"-env-file=ci.env", "-d", "x"}, ".env"))
}

func TestPositional(t *testing.T) {
	valueFlags := []string{"-d", "-c", "-m"}

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{name: "empty", args: nil, want: nil},
		{name: "command only", args: []string{"up"}, want: []string{"up"}},
		{name: "flags before", args: []string{"-d", "postgres://x", "-m=test", "status"}, want: []string{"status"}},
		{name: "command with args", args: []string{"up-to", "3", "-c", "cfg.json"}, want: []string{"up-to", "3"}},
		{name: "bool flag does not eat command", args: []string{"-migrate", "down"}, want: []string{"down"}},
		{name: "double dash", args: []string{"-d", "x", "--", "-weird"}, want: []string{"-weird"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Positional(tt.args, valueFlags))
		})
	}
}
