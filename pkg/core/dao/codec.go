package dao

import (
	"github.com/synapse-chain/synapse/pkg/core/block"
	"github.com/synapse-chain/synapse/pkg/core/state"
	"github.com/synapse-chain/synapse/pkg/core/transaction"
	"github.com/synapse-chain/synapse/pkg/io"
	"github.com/synapse-chain/synapse/pkg/util"
)

func encodeContract(c *state.Contract) []byte {
	buf := io.NewBufBinWriter()
	bw := buf.BinWriter
	bw.WriteBytes(c.ScriptHash.BytesLE())
	bw.WriteVarBytes(c.Script)
	bw.WriteBool(c.HasStorage)
	bw.WriteBytes(c.Creator.BytesLE())
	return buf.Bytes()
}

func decodeContract(b []byte) (*state.Contract, error) {
	br := io.NewBinReaderFromBuf(b)
	scriptHashBytes := make([]byte, util.Uint160Size)
	br.ReadBytes(scriptHashBytes)
	script := br.ReadVarBytes()
	hasStorage := br.ReadBool()
	creatorBytes := make([]byte, util.Uint160Size)
	br.ReadBytes(creatorBytes)
	if br.Err != nil {
		return nil, br.Err
	}
	scriptHash, err := util.Uint160DecodeBytesLE(scriptHashBytes)
	if err != nil {
		return nil, err
	}
	creator, err := util.Uint160DecodeBytesLE(creatorBytes)
	if err != nil {
		return nil, err
	}
	return &state.Contract{
		ScriptHash: scriptHash,
		Script:     script,
		HasStorage: hasStorage,
		Creator:    creator,
	}, nil
}

func encodeBlock(b *block.Block) ([]byte, error) {
	buf := io.NewBufBinWriter()
	b.EncodeBinary(buf.BinWriter)
	if buf.BinWriter.Err != nil {
		return nil, buf.BinWriter.Err
	}
	return buf.Bytes(), nil
}

func decodeBlock(raw []byte) (*block.Block, error) {
	br := io.NewBinReaderFromBuf(raw)
	b := &block.Block{}
	b.DecodeBinary(br)
	if br.Err != nil {
		return nil, br.Err
	}
	return b, nil
}

func encodeTransactionWithHeight(tx *transaction.Transaction, height uint32) ([]byte, error) {
	buf := io.NewBufBinWriter()
	bw := buf.BinWriter
	bw.WriteU32LE(height)
	tx.EncodeBinary(bw)
	if bw.Err != nil {
		return nil, bw.Err
	}
	return buf.Bytes(), nil
}

func decodeTransactionWithHeight(raw []byte) (*transaction.Transaction, uint32, error) {
	br := io.NewBinReaderFromBuf(raw)
	height := br.ReadU32LE()
	tx := &transaction.Transaction{}
	tx.DecodeBinary(br)
	if br.Err != nil {
		return nil, 0, br.Err
	}
	return tx, height, nil
}

func decodeTransaction(raw []byte) (*transaction.Transaction, error) {
	tx, _, err := decodeTransactionWithHeight(raw)
	return tx, err
}
