package main

import (
	"bytes"
	"encoding/json"
	"testing"

	domain "wegrowup-api/internal/domain/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"data"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())

	var got domain.User
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, domain.Sample(), got)
}

func TestRootCommand_Flags(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("config-path")
	require.NotNil(t, flag)
	assert.NotEmpty(t, flag.DefValue)

	names := make([]string, 0, len(rootCmd.Commands()))
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "serve")
	assert.Contains(t, names, "data")
}
