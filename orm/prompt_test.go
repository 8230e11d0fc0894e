package orm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptConnectionString(t *testing.T) {
	var out bytes.Buffer
	dsn, err := PromptConnectionString(strings.NewReader("\n   \nserver=db;database=wallet\n"), &out)
	require.NoError(t, err)

	assert.Equal(t, "server=db;database=wallet", dsn)
	assert.Equal(t, strings.Repeat("Enter connection string: ", 3), out.String())
}

func TestPromptConnectionString_lastLineWithoutNewline(t *testing.T) {
	dsn, err := PromptConnectionString(strings.NewReader("host=localhost"), nil)
	require.NoError(t, err)
	assert.Equal(t, "host=localhost", dsn)
}

func TestPromptConnectionString_eof(t *testing.T) {
	_, err := PromptConnectionString(strings.NewReader("\n\n"), nil)
	assert.ErrorIs(t, err, ErrEmptyConnectionString)
}

func TestParseDriver(t *testing.T) {
	for _, name := range []string{"sqlserver", "postgres", "sqlite"} {
		d, err := ParseDriver(name)
		require.NoError(t, err)
		assert.Equal(t, Driver(name), d)

		_, err = d.Dialector("dsn")
		assert.NoError(t, err)
	}

	_, err := ParseDriver("mysql")
	assert.ErrorIs(t, err, ErrUnknownDriver)
}
