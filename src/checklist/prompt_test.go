package checklist

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsolePrompterSelect(t *testing.T) {
	var out bytes.Buffer
	p := NewConsolePrompter(strings.NewReader("maybe\nNO\n\n"), &out)
	ctx := context.Background()

	got, err := p.Select(ctx, "Built assets?", []string{"yes", "no"}, "yes")
	require.NoError(t, err)
	assert.Equal(t, "no", got)
	assert.Contains(t, out.String(), `Value "maybe" is invalid`)
	assert.Equal(t, 2, strings.Count(out.String(), "Built assets? [yes, no] "))

	got, err = p.Select(ctx, "README?", []string{"yes", "no"}, "yes")
	require.NoError(t, err)
	assert.Equal(t, "yes", got, "empty answer selects the default")
}

func TestConsolePrompterLastLineWithoutNewline(t *testing.T) {
	p := NewConsolePrompter(strings.NewReader("no"), &bytes.Buffer{})

	got, err := p.Select(context.Background(), "q", []string{"yes", "no"}, "yes")
	require.NoError(t, err)
	assert.Equal(t, "no", got)
}

func TestConsolePrompterEOF(t *testing.T) {
	p := NewConsolePrompter(strings.NewReader(""), &bytes.Buffer{})

	_, err := p.Select(context.Background(), "q", []string{"yes", "no"}, "yes")
	assert.Error(t, err)
}

func TestDefaultPrompter(t *testing.T) {
	got, err := DefaultPrompter{}.Select(context.Background(), "q", []string{"yes", "no"}, "yes")
	require.NoError(t, err)
	assert.Equal(t, "yes", got)
}
