package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAliasTableClass(t *testing.T) {
	aliases := DefaultAliasTable()

	t.Run("known spelling returns full class", func(t *testing.T) {
		class := aliases.Class("Miata")

		assert.Equal(t, "miata", class[0], "queried spelling comes first")
		assert.Contains(t, class, "mx-5")
		assert.Contains(t, class, "roadster")
	})

	t.Run("accent variants share a class", func(t *testing.T) {
		assert.Equal(t, aliases.Class("Huracán"), aliases.Class("Huracan"))
	})

	t.Run("canonical and variant resolve to same members", func(t *testing.T) {
		assert.ElementsMatch(t, aliases.Class("3 Series"), aliases.Class("M3"))
	})

	t.Run("unknown name returns itself", func(t *testing.T) {
		assert.Equal(t, []string{"countach"}, aliases.Class("Countach"))
	})

	t.Run("empty name returns nil", func(t *testing.T) {
		assert.Nil(t, aliases.Class("   "))
	})
}

func TestNewAliasTableFirstClassWins(t *testing.T) {
	table := NewAliasTable([][]string{
		{"Golf", "Rabbit"},
		{"Rabbit", "Hare"},
	})

	class := table.Class("Rabbit")
	assert.Contains(t, class, "golf")
	assert.NotContains(t, class, "hare", "later classes never overwrite earlier entries")
}

func TestNewAliasTableDropsDuplicateSpellings(t *testing.T) {
	table := NewAliasTable([][]string{{"Golf", "golf", "GOLF", "Rabbit"}})

	assert.Equal(t, []string{"golf", "rabbit"}, table.Class("Golf"))
}
