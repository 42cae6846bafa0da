package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/builder-service/internal/domain"
)

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	var out, errOut bytes.Buffer

	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)

	err = root.Execute()

	return out.String(), errOut.String(), err
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		want       *bookJSON
		violations []string
	}{
		{
			name: "required fields only",
			args: []string{"build", "--isbn", "978-0", "--title", "Go"},
			want: &bookJSON{ISBN: "978-0", Title: "Go"},
		},
		{
			name: "optional fields",
			args: []string{"build", "--isbn", "1", "--title", "Go", "--author", "Rob", "--genre", ""},
			want: &bookJSON{ISBN: "1", Title: "Go", Author: stringPtr("Rob"), Genre: stringPtr("")},
		},
		{
			name:       "nothing set",
			args:       []string{"build"},
			violations: []string{domain.MsgISBNRequired, domain.MsgTitleRequired},
		},
		{
			name:       "empty title is set but too short",
			args:       []string{"build", "--isbn", "1", "--title", ""},
			violations: []string{domain.MsgTitleTooShort},
		},
		{
			name: "description over the limit",
			args: []string{"build", "--isbn", "1", "--title", "Go", "--description", strings.Repeat("x", 501)},
			violations: []string{
				domain.MsgDescriptionTooLong,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, err := execute(t, append(tt.args, "--log-level", "error")...)

			if tt.violations != nil {
				require.ErrorIs(t, err, errRejected)
				assert.Empty(t, stdout)
				assert.Equal(t, strings.Join(tt.violations, "\n")+"\n", stderr)

				return
			}

			require.NoError(t, err)

			var got bookJSON
			require.NoError(t, json.Unmarshal([]byte(stdout), &got))
			assert.Equal(t, *tt.want, got)
		})
	}
}

func TestBuild_RejectsArgs(t *testing.T) {
	_, _, err := execute(t, "build", "extra")

	require.Error(t, err)
	assert.NotErrorIs(t, err, errRejected)
}

func TestPhone(t *testing.T) {
	stdout, _, err := execute(t, "phone", "--preset", "iphone")

	require.NoError(t, err)
	assert.Equal(t, "Mobile is Single\nWith network connection Available\nWith roaming Not Allowed\nManufactured in USA\n", stdout)

	stdout, _, err = execute(t, "phone", "--preset", "Android")

	require.NoError(t, err)
	assert.Contains(t, stdout, "Manufactured in India")
}

func TestPhone_Errors(t *testing.T) {
	_, _, err := execute(t, "phone")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "preset")

	_, _, err = execute(t, "phone", "--preset", "nokia", "--log-level", "error")
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}
