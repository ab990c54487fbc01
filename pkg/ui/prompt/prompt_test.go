// pkg/ui/prompt/prompt_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test the non-interactive prompter

package prompt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/typst-community/utpm/pkg/types"
	"github.com/typst-community/utpm/pkg/ui/prompt"
)

var (
	_ types.Prompter = (*prompt.Terminal)(nil)
	_ types.Prompter = prompt.Defaults{}
)

func TestDefaults(t *testing.T) {
	d := prompt.Defaults{}

	ok, err := d.Confirm("Delete?", false)
	assert.NoError(t, err)
	assert.False(t, ok)

	s, err := d.Input("Name", "example")
	assert.NoError(t, err)
	assert.Equal(t, "example", s)

	s, err = d.Select("License", []string{"MIT", "Unlicense"}, "")
	assert.NoError(t, err)
	assert.Equal(t, "MIT", s)

	s, err = d.Select("License", []string{"MIT", "Unlicense"}, "Unlicense")
	assert.NoError(t, err)
	assert.Equal(t, "Unlicense", s)
}
