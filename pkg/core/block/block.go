package block

import (
	"encoding/json"
	"errors"
	"math"

	"github.com/synapse-chain/synapse/pkg/core/transaction"
	"github.com/synapse-chain/synapse/pkg/io"
	"github.com/synapse-chain/synapse/pkg/util"
)

// MaxTransactionsPerBlock is the maximum number of transactions a block
// may carry.
const MaxTransactionsPerBlock = math.MaxUint16

// ErrMaxContentsPerBlock is returned when a block's declared transaction
// count exceeds MaxTransactionsPerBlock.
var ErrMaxContentsPerBlock = errors.New("the number of contents exceeds the maximum number of contents per block")

// ErrTxIndexOutOfRange is returned by GetTransaction for an index beyond
// the block's transaction count.
var ErrTxIndexOutOfRange = errors.New("transaction index out of range")

// Block is a Header plus the transactions it commits to via MerkleRoot.
// This layer only ever reads already-persisted blocks through the
// blockchain query syscalls, so there's no merkle-tree construction or
// consensus validation here; those belong to the collaborators this spec
// treats as external.
type Block struct {
	Header
	Transactions []*transaction.Transaction
}

// auxBlockOut is used for JSON marshaling.
type auxBlockOut struct {
	Transactions []*transaction.Transaction `json:"tx"`
}

// auxBlockIn is used for JSON unmarshaling.
type auxBlockIn struct {
	Transactions []json.RawMessage `json:"tx"`
}

// EncodeBinary implements the io.Serializable interface.
func (b *Block) EncodeBinary(bw *io.BinWriter) {
	b.Header.EncodeBinary(bw)
	bw.WriteVarUint(uint64(len(b.Transactions)))
	for _, tx := range b.Transactions {
		tx.EncodeBinary(bw)
	}
}

// DecodeBinary implements the io.Serializable interface.
func (b *Block) DecodeBinary(br *io.BinReader) {
	b.Header.DecodeBinary(br)
	n := br.ReadVarUint()
	if n > MaxTransactionsPerBlock {
		br.Err = ErrMaxContentsPerBlock
		return
	}
	b.Transactions = make([]*transaction.Transaction, n)
	for i := range b.Transactions {
		b.Transactions[i] = &transaction.Transaction{}
		b.Transactions[i].DecodeBinary(br)
	}
}

// TransactionCount returns the number of transactions in the block.
func (b *Block) TransactionCount() int {
	return len(b.Transactions)
}

// GetTransaction returns the transaction at idx, or an error if idx is
// out of range.
func (b *Block) GetTransaction(idx int) (*transaction.Transaction, error) {
	if idx < 0 || idx >= len(b.Transactions) {
		return nil, ErrTxIndexOutOfRange
	}
	return b.Transactions[idx], nil
}

// Hashes returns the hashes of every transaction in the block, in order.
func (b *Block) Hashes() []util.Uint256 {
	hashes := make([]util.Uint256, len(b.Transactions))
	for i, tx := range b.Transactions {
		hashes[i] = tx.Hash()
	}
	return hashes
}

// MarshalJSON implements the json.Marshaler interface.
func (b Block) MarshalJSON() ([]byte, error) {
	auxb, err := json.Marshal(auxBlockOut{Transactions: b.Transactions})
	if err != nil {
		return nil, err
	}
	baseBytes, err := json.Marshal(b.Header)
	if err != nil {
		return nil, err
	}
	if baseBytes[len(baseBytes)-1] != '}' || auxb[0] != '{' {
		return nil, errors.New("can't merge internal jsons")
	}
	baseBytes[len(baseBytes)-1] = ','
	baseBytes = append(baseBytes, auxb[1:]...)
	return baseBytes, nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (b *Block) UnmarshalJSON(data []byte) error {
	auxb := new(auxBlockIn)
	if err := json.Unmarshal(data, auxb); err != nil {
		return err
	}
	if err := json.Unmarshal(data, &b.Header); err != nil {
		return err
	}
	if len(auxb.Transactions) != 0 {
		b.Transactions = make([]*transaction.Transaction, 0, len(auxb.Transactions))
		for _, txBytes := range auxb.Transactions {
			tx := &transaction.Transaction{}
			if err := json.Unmarshal(txBytes, tx); err != nil {
				return err
			}
			b.Transactions = append(b.Transactions, tx)
		}
	}
	return nil
}
