package cli

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalkCommands(t *testing.T) {
	parent := &cobra.Command{Use: "parent"}
	childA := &cobra.Command{Use: "a"}
	childB := &cobra.Command{Use: "b"}
	grandchild := &cobra.Command{Use: "deep"}
	childA.AddCommand(grandchild)
	parent.AddCommand(childA, childB)

	var visited []string
	walkCommands(parent, func(cmd *cobra.Command) {
		visited = append(visited, cmd.Name())
	})

	assert.ElementsMatch(t, []string{"parent", "a", "deep", "b"}, visited)
}

func TestEnrichParentLong(t *testing.T) {
	parent := &cobra.Command{
		Use:  "parent",
		Long: "Parent description.",
	}
	parent.AddCommand(&cobra.Command{
		Use:   "child",
		Short: "Does child things",
		Run:   func(*cobra.Command, []string) {},
	})

	enrichParentLong(parent)

	require.Contains(t, parent.Long, "Parent description.")
	assert.Contains(t, parent.Long, "Subcommands:")
	assert.Contains(t, parent.Long, "child")
	assert.Contains(t, parent.Long, "Does child things")
}

func TestEnrichParentLong_NoSubcommands(t *testing.T) {
	cmd := &cobra.Command{
		Use:  "leaf",
		Long: "Leaf description.",
	}

	enrichParentLong(cmd)

	assert.Equal(t, "Leaf description.", cmd.Long)
}
