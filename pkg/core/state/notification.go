package state

import (
	"github.com/synapse-chain/synapse/pkg/util"
	"github.com/synapse-chain/synapse/pkg/vm/stackitem"
)

// NotificationEvent is one entry of a session's notification log: a
// contract-emitted event alongside the script hash that raised it and
// the container it ran under.
type NotificationEvent struct {
	ScriptContainer util.Uint256
	ScriptHash      util.Uint160
	Payload         stackitem.Item
}
