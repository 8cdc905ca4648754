package cfr

import (
	"fmt"

	"github.com/behrlich/gto-solver/pkg/bettingtree"
	"github.com/behrlich/gto-solver/pkg/cards"
	"github.com/behrlich/gto-solver/pkg/ranges"
)

// InfosetKey is the string form of an infoset's identity: its canonical
// path key, dynamic board, acting player, and private combo, joined by
// infosetKey. It is an alias (not a distinct type) so InfosetTable can keep
// using plain strings internally while pkg/report's public API names the
// concept.
type InfosetKey = string

// infosetKey builds the canonical infoset key: the node's fixed
// action-history path, the dynamically-dealt board visible at this point,
// the acting player, and that player's private combo. Two traversals
// sharing all four components share one Infoset.
func infosetKey(node *bettingtree.TreeNode, board []cards.Card, combo ranges.Combo) InfosetKey {
	return fmt.Sprintf("%s|%s|%d|%s", node.PathKey, cards.FormatCards(board), node.ToAct, combo.String())
}
