package zfixture

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redodson01/zinc/pkg/zinc"
)

// TestGolden runs every testdata/*.txtar case through the full
// parse/analyze/emit pipeline, the same shape as esbuild's snapshot
// suite but sourced from txtar archives instead of a bespoke splitter.
// A case with an empty "want.diagnostics" file must compile cleanly
// and produce non-empty output; a case with expected diagnostic
// substrings must fail at the phase those substrings name.
func TestGolden(t *testing.T) {
	cases, err := Load("testdata")
	require.NoError(t, err)
	require.NotEmpty(t, cases)

	for _, c := range cases {
		c := c
		t.Run(c.Name, func(t *testing.T) {
			res := zinc.Compile(c.Source, zinc.Options{BaseName: c.Name})

			if len(c.WantDiagnostics) == 0 {
				assert.Zero(t, res.ParseErrors, "unexpected parse errors: %v", res.Diagnostics)
				assert.Zero(t, res.SemaErrors, "unexpected semantic errors: %v", res.Diagnostics)
				assert.NotEmpty(t, res.Header)
				assert.NotEmpty(t, res.Source)
				return
			}

			var texts []string
			for _, d := range res.Diagnostics {
				texts = append(texts, d.Text)
			}
			for _, want := range c.WantDiagnostics {
				found := false
				for _, text := range texts {
					if strings.Contains(text, want) {
						found = true
						break
					}
				}
				assert.True(t, found, "looking for substring %q in %v", want, texts)
			}
		})
	}
}
