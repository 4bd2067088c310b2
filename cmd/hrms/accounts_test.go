package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrms/internal/domain/auth"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{raw: "1", want: 1},
		{raw: " 0 ", want: 0},
		{raw: "-1", want: -1},
		{raw: "2", wantErr: true},
		{raw: "admin", wantErr: true},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.raw, func(t *testing.T) {
			got, err := parseLevel(tc.raw)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestHashPasswordFromStdin(t *testing.T) {
	var out bytes.Buffer
	hashPasswordCmd.SetIn(strings.NewReader("admin123\n"))
	hashPasswordCmd.SetOut(&out)
	t.Cleanup(func() {
		hashPasswordCmd.SetIn(nil)
		hashPasswordCmd.SetOut(nil)
	})

	require.NoError(t, hashPasswordCmd.RunE(hashPasswordCmd, nil))
	hash := strings.TrimSpace(out.String())
	require.NoError(t, auth.CheckPassword(hash, "admin123"))
}
