// Package interopnames holds the dotted ASCII names of every registered
// syscall and the single-SHA256-derived identifier the registry actually
// keys handlers by.
package interopnames

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
)

// Names of every syscall this layer registers, grouped the way §6 lists
// them.
const (
	SystemExecutionEngineGetScriptContainer = "System.ExecutionEngine.GetScriptContainer"
	SystemExecutionEngineGetExecutingScriptHash = "System.ExecutionEngine.GetExecutingScriptHash"
	SystemExecutionEngineGetCallingScriptHash = "System.ExecutionEngine.GetCallingScriptHash"
	SystemExecutionEngineGetEntryScriptHash = "System.ExecutionEngine.GetEntryScriptHash"

	SystemRuntimePlatform      = "System.Runtime.Platform"
	SystemRuntimeGetTrigger    = "System.Runtime.GetTrigger"
	SystemRuntimeCheckWitness  = "System.Runtime.CheckWitness"
	SystemRuntimeNotify        = "System.Runtime.Notify"
	SystemRuntimeLog           = "System.Runtime.Log"
	SystemRuntimeGetTime       = "System.Runtime.GetTime"
	SystemRuntimeSerialize     = "System.Runtime.Serialize"
	SystemRuntimeDeserialize   = "System.Runtime.Deserialize"

	SystemBlockchainGetHeight           = "System.Blockchain.GetHeight"
	SystemBlockchainGetHeader           = "System.Blockchain.GetHeader"
	SystemBlockchainGetBlock            = "System.Blockchain.GetBlock"
	SystemBlockchainGetTransaction      = "System.Blockchain.GetTransaction"
	SystemBlockchainGetTransactionHeight = "System.Blockchain.GetTransactionHeight"
	SystemBlockchainGetContract         = "System.Blockchain.GetContract"

	SystemHeaderGetIndex     = "System.Header.GetIndex"
	SystemHeaderGetHash      = "System.Header.GetHash"
	SystemHeaderGetPrevHash  = "System.Header.GetPrevHash"
	SystemHeaderGetTimestamp = "System.Header.GetTimestamp"

	SystemBlockGetTransactionCount = "System.Block.GetTransactionCount"
	SystemBlockGetTransactions     = "System.Block.GetTransactions"
	SystemBlockGetTransaction      = "System.Block.GetTransaction"

	SystemTransactionGetHash = "System.Transaction.GetHash"

	SystemContractDestroy           = "System.Contract.Destroy"
	SystemContractGetStorageContext = "System.Contract.GetStorageContext"

	SystemStorageGetContext         = "System.Storage.GetContext"
	SystemStorageGetReadOnlyContext = "System.Storage.GetReadOnlyContext"
	SystemStorageGet                = "System.Storage.Get"
	SystemStoragePut                = "System.Storage.Put"
	SystemStoragePutEx              = "System.Storage.PutEx"
	SystemStorageDelete             = "System.Storage.Delete"
	SystemStorageFind               = "System.Storage.Find"

	SystemStorageContextAsReadOnly = "System.StorageContext.AsReadOnly"
)

// names lists every identifier above, used to build the id→name table.
var names = []string{
	SystemExecutionEngineGetScriptContainer,
	SystemExecutionEngineGetExecutingScriptHash,
	SystemExecutionEngineGetCallingScriptHash,
	SystemExecutionEngineGetEntryScriptHash,
	SystemRuntimePlatform,
	SystemRuntimeGetTrigger,
	SystemRuntimeCheckWitness,
	SystemRuntimeNotify,
	SystemRuntimeLog,
	SystemRuntimeGetTime,
	SystemRuntimeSerialize,
	SystemRuntimeDeserialize,
	SystemBlockchainGetHeight,
	SystemBlockchainGetHeader,
	SystemBlockchainGetBlock,
	SystemBlockchainGetTransaction,
	SystemBlockchainGetTransactionHeight,
	SystemBlockchainGetContract,
	SystemHeaderGetIndex,
	SystemHeaderGetHash,
	SystemHeaderGetPrevHash,
	SystemHeaderGetTimestamp,
	SystemBlockGetTransactionCount,
	SystemBlockGetTransactions,
	SystemBlockGetTransaction,
	SystemTransactionGetHash,
	SystemContractDestroy,
	SystemContractGetStorageContext,
	SystemStorageGetContext,
	SystemStorageGetReadOnlyContext,
	SystemStorageGet,
	SystemStoragePut,
	SystemStoragePutEx,
	SystemStorageDelete,
	SystemStorageFind,
	SystemStorageContextAsReadOnly,
}

var errNotFound = errors.New("interop: method not found")

// ToID derives a method's 32-bit little-endian identifier from the first
// 4 bytes of a single SHA256 hash of its ASCII name.
func ToID(name []byte) uint32 {
	h := sha256.Sum256(name)
	return binary.LittleEndian.Uint32(h[:4])
}

var idToName map[uint32]string

func init() {
	idToName = make(map[uint32]string, len(names))
	for _, n := range names {
		idToName[ToID([]byte(n))] = n
	}
}

// FromID reverses ToID for any name registered in this package, used by
// diagnostics and tests; it is not on the hot invocation path.
func FromID(id uint32) (string, error) {
	name, ok := idToName[id]
	if !ok {
		return "", errNotFound
	}
	return name, nil
}
