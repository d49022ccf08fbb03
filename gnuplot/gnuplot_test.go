// Copyright 2021 Daniel Erat <dan@erat.org>.
// All rights reserved.

package gnuplot

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteData(t *testing.T) {
	p, err := WriteData(
		[]string{"Date", "United States", "India"},
		[][]string{
			{"2021-01-01", "100", "200"},
			{"2021-01-02", "?", "210"},
		})
	require.NoError(t, err)
	defer os.Remove(p)

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t,
		"Date\tUnited States\tIndia\n2021-01-01\t100\t200\n2021-01-02\t?\t210\n",
		string(b))
}
