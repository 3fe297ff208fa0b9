// Package runtime implements the System.Runtime and
// System.ExecutionEngine syscalls: execution-context introspection,
// witness checking, notifications, logging, time and the
// Serialize/Deserialize delegation to the stackitem codec.
package runtime

import (
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/synapse-chain/synapse/pkg/core/interop"
	"github.com/synapse-chain/synapse/pkg/core/interop/interopnames"
	"github.com/synapse-chain/synapse/pkg/core/state"
	"github.com/synapse-chain/synapse/pkg/core/transaction"
	"github.com/synapse-chain/synapse/pkg/crypto/keys"
	"github.com/synapse-chain/synapse/pkg/util"
	"github.com/synapse-chain/synapse/pkg/vm/stackitem"
)

// Platform is the constant string System.Runtime.Platform pushes; its
// exact bytes are externally observable and must never change.
const Platform = "NEO"

// MaxLogSize bounds the payload Log will emit, mirroring the size
// discipline the codec applies to stack values generally. Notify applies
// no size cap of its own.
const (
	MaxLogSize = 1024
)

// Register adds every System.Runtime / System.ExecutionEngine handler to
// reg.
func Register(reg *interop.Registry) {
	reg.RegisterName(interopnames.SystemExecutionEngineGetScriptContainer, 1, GetScriptContainer)
	reg.RegisterName(interopnames.SystemExecutionEngineGetExecutingScriptHash, 1, GetExecutingScriptHash)
	reg.RegisterName(interopnames.SystemExecutionEngineGetCallingScriptHash, 1, GetCallingScriptHash)
	reg.RegisterName(interopnames.SystemExecutionEngineGetEntryScriptHash, 1, GetEntryScriptHash)
	reg.RegisterName(interopnames.SystemRuntimePlatform, 1, PlatformHandler)
	reg.RegisterName(interopnames.SystemRuntimeGetTrigger, 1, GetTrigger)
	reg.RegisterName(interopnames.SystemRuntimeCheckWitness, 200, CheckWitness)
	reg.RegisterName(interopnames.SystemRuntimeNotify, 1, Notify)
	reg.RegisterName(interopnames.SystemRuntimeLog, 1, Log)
	reg.RegisterName(interopnames.SystemRuntimeGetTime, 1, GetTime)
	reg.RegisterName(interopnames.SystemRuntimeSerialize, 1, Serialize)
	reg.RegisterName(interopnames.SystemRuntimeDeserialize, 1, Deserialize)
}

// GetScriptContainer pushes the session's script container interop
// handle.
func GetScriptContainer(ic *interop.Context) error {
	ic.VM.Estack.Push(ic.Container)
	return nil
}

// GetExecutingScriptHash pushes the current call frame's script hash.
func GetExecutingScriptHash(ic *interop.Context) error {
	ic.VM.Estack.PushVal(ic.VM.ScriptHash.BytesBE())
	return nil
}

// GetCallingScriptHash pushes the calling frame's script hash, or an
// empty byte string for the entry frame, which has no caller.
func GetCallingScriptHash(ic *interop.Context) error {
	caller := ic.VM.Caller()
	if caller == nil {
		ic.VM.Estack.PushVal([]byte{})
		return nil
	}
	ic.VM.Estack.PushVal(caller.ScriptHash.BytesBE())
	return nil
}

// GetEntryScriptHash pushes the root call frame's script hash.
func GetEntryScriptHash(ic *interop.Context) error {
	ic.VM.Estack.PushVal(ic.VM.Entry().ScriptHash.BytesBE())
	return nil
}

// PlatformHandler pushes the constant platform name.
func PlatformHandler(ic *interop.Context) error {
	ic.VM.Estack.PushVal([]byte(Platform))
	return nil
}

// GetTrigger pushes the session's trigger kind as an integer.
func GetTrigger(ic *interop.Context) error {
	ic.VM.Estack.PushVal(int64(ic.Trigger))
	return nil
}

// CheckWitness accepts a 20-byte script hash or a 33-byte compressed
// public key and reports whether that identity is among the script
// container's required signers.
func CheckWitness(ic *interop.Context) error {
	scalar := ic.VM.Estack.PopBytes()

	var hash util.Uint160
	switch len(scalar) {
	case util.Uint160Size:
		var err error
		hash, err = util.Uint160DecodeBytesBE(scalar)
		if err != nil {
			ic.VM.Estack.PushVal(false)
			return nil
		}
	case keys.PublicKeySize:
		pub, err := keys.NewPublicKeyFromBytes(scalar)
		if err != nil {
			ic.VM.Estack.PushVal(false)
			return nil
		}
		hash = pub.ScriptHash()
	default:
		ic.VM.Estack.PushVal(false)
		return nil
	}

	required := containerSigners(ic.Container)
	for _, r := range required {
		if r == hash {
			ic.VM.Estack.PushVal(true)
			return nil
		}
	}
	ic.VM.Estack.PushVal(false)
	return nil
}

func containerSigners(container stackitem.Item) []util.Uint160 {
	interopItem, ok := container.(*stackitem.Interop)
	if !ok {
		return nil
	}
	tx, ok := interopItem.Value().(*transaction.Transaction)
	if !ok {
		return nil
	}
	return tx.RequiredSigners()
}

// Notify pops one stack value and records it as a notification event
// from the executing script. It never fails. The popped item is
// snapshotted with stackitem.DeepCopy before it's recorded: the
// executing script keeps running after this call and may go on to
// mutate the same container in place (Array.Append, Map.Add), which
// must not retroactively change an already-recorded notification.
func Notify(ic *interop.Context) error {
	payload := stackitem.DeepCopy(ic.VM.Estack.Pop())
	ic.Notify(state.NotificationEvent{
		ScriptContainer: containerHash(ic.Container),
		ScriptHash:      ic.VM.ScriptHash,
		Payload:         payload,
	})
	if ic.Log.Core().Enabled(zap.DebugLevel) {
		if js, err := stackitem.ToJSON(payload); err == nil {
			ic.Log.Debug("contract notification",
				zap.Stringer("script", ic.VM.ScriptHash),
				zap.ByteString("payload", js),
			)
		}
	}
	return nil
}

func containerHash(container stackitem.Item) util.Uint256 {
	interopItem, ok := container.(*stackitem.Interop)
	if !ok {
		return util.Uint256{}
	}
	tx, ok := interopItem.Value().(*transaction.Transaction)
	if !ok {
		return util.Uint256{}
	}
	return tx.Hash()
}

// Log pops one UTF-8 byte string and emits it through the session
// logger. Oversized or invalid payloads are silently dropped rather than
// failing the handler, since logging must never influence consensus.
func Log(ic *interop.Context) error {
	msg := ic.VM.Estack.PopBytes()
	if len(msg) > MaxLogSize || !utf8.Valid(msg) {
		return nil
	}
	ic.Log.Info("contract log",
		zap.Stringer("script", ic.VM.ScriptHash),
		zap.String("message", string(msg)),
	)
	return nil
}

// GetTime pushes the current session timestamp per
// interop.Context.CurrentTimestamp's documented (and consensus-frozen)
// fallback rule.
func GetTime(ic *interop.Context) error {
	ic.VM.Estack.PushVal(int64(ic.CurrentTimestamp()))
	return nil
}

// Serialize pops a stack item and pushes its binary encoding.
func Serialize(ic *interop.Context) error {
	item := ic.VM.Estack.Pop()
	data, err := stackitem.Serialize(item)
	if err != nil {
		return err
	}
	ic.VM.Estack.PushVal(data)
	return nil
}

// Deserialize pops a byte string and pushes the stack item it decodes
// to.
func Deserialize(ic *interop.Context) error {
	data := ic.VM.Estack.PopBytes()
	item, err := stackitem.Deserialize(data)
	if err != nil {
		return err
	}
	ic.VM.Estack.Push(item)
	return nil
}
