package block

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/synapse-chain/synapse/pkg/core/transaction"
	"github.com/synapse-chain/synapse/pkg/crypto/hash"
	"github.com/synapse-chain/synapse/pkg/io"
	"github.com/synapse-chain/synapse/pkg/util"
)

// VersionInitial is the only header version this layer recognizes.
const VersionInitial uint32 = 0

// Header holds a block's fields minus its transaction list: everything
// the interop layer's header/block accessors (§4.6) need without pulling
// in consensus or P2P framing.
type Header struct {
	Version uint32

	// PrevHash is the hash of the previous block.
	PrevHash util.Uint256

	// MerkleRoot is the root hash of the block's transaction list.
	MerkleRoot util.Uint256

	// Timestamp is a millisecond-precision timestamp; by convention later
	// than the previous block's.
	Timestamp uint64

	// Nonce is a block-level random value.
	Nonce uint64

	// Index is the block's height.
	Index uint32

	// NextConsensus is the contract address of the next block's signer.
	NextConsensus util.Uint160

	// Script is the witness authorizing this header; not part of the
	// hashable field set.
	Script transaction.Witness

	// PrimaryIndex is the index of the primary consensus node.
	PrimaryIndex byte

	hash util.Uint256
}

type headerAux struct {
	Hash          util.Uint256          `json:"hash"`
	Version       uint32                `json:"version"`
	PrevHash      util.Uint256          `json:"previousblockhash"`
	MerkleRoot    util.Uint256          `json:"merkleroot"`
	Timestamp     uint64                `json:"time"`
	Nonce         string                `json:"nonce"`
	Index         uint32                `json:"index"`
	NextConsensus string                `json:"nextconsensus"`
	PrimaryIndex  byte                  `json:"primary"`
	Witnesses     []transaction.Witness `json:"witnesses"`
}

// Hash returns the block's hash, double-SHA256 of its hashable fields.
// It's cached internally; re-encode/decode the Header to refresh it
// after any mutation.
func (h *Header) Hash() util.Uint256 {
	if h.hash.Equals(util.Uint256{}) {
		h.createHash()
	}
	return h.hash
}

// DecodeBinary implements the io.Serializable interface.
func (h *Header) DecodeBinary(br *io.BinReader) {
	h.decodeHashableFields(br)
	witnessCount := br.ReadVarUint()
	if br.Err == nil && witnessCount != 1 {
		br.Err = errors.New("wrong witness count")
		return
	}
	h.Script.DecodeBinary(br)
}

// EncodeBinary implements the io.Serializable interface.
func (h *Header) EncodeBinary(bw *io.BinWriter) {
	h.encodeHashableFields(bw)
	bw.WriteVarUint(1)
	h.Script.EncodeBinary(bw)
}

func (h *Header) createHash() {
	buf := io.NewBufBinWriter()
	h.encodeHashableFields(buf.BinWriter)
	h.hash = hash.Hash256(buf.Bytes())
}

func (h *Header) encodeHashableFields(bw *io.BinWriter) {
	bw.WriteU32LE(h.Version)
	bw.WriteBytes(h.PrevHash[:])
	bw.WriteBytes(h.MerkleRoot[:])
	bw.WriteU64LE(h.Timestamp)
	bw.WriteU64LE(h.Nonce)
	bw.WriteU32LE(h.Index)
	bw.WriteB(h.PrimaryIndex)
	bw.WriteBytes(h.NextConsensus[:])
}

func (h *Header) decodeHashableFields(br *io.BinReader) {
	h.Version = br.ReadU32LE()
	br.ReadBytes(h.PrevHash[:])
	br.ReadBytes(h.MerkleRoot[:])
	h.Timestamp = br.ReadU64LE()
	h.Nonce = br.ReadU64LE()
	h.Index = br.ReadU32LE()
	h.PrimaryIndex = br.ReadB()
	br.ReadBytes(h.NextConsensus[:])
	if br.Err == nil {
		h.createHash()
	}
}

// MarshalJSON implements the json.Marshaler interface.
func (h Header) MarshalJSON() ([]byte, error) {
	aux := headerAux{
		Hash:          h.Hash(),
		Version:       h.Version,
		PrevHash:      h.PrevHash,
		MerkleRoot:    h.MerkleRoot,
		Timestamp:     h.Timestamp,
		Nonce:         fmt.Sprintf("%016X", h.Nonce),
		Index:         h.Index,
		PrimaryIndex:  h.PrimaryIndex,
		NextConsensus: h.NextConsensus.Address(),
		Witnesses:     []transaction.Witness{h.Script},
	}
	return json.Marshal(aux)
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (h *Header) UnmarshalJSON(data []byte) error {
	aux := new(headerAux)
	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}

	var nonce uint64
	var err error
	if len(aux.Nonce) != 0 {
		nonce, err = strconv.ParseUint(aux.Nonce, 16, 64)
		if err != nil {
			return err
		}
	}
	nextC, err := util.AddressToUint160(aux.NextConsensus)
	if err != nil {
		return err
	}
	if len(aux.Witnesses) != 1 {
		return errors.New("wrong number of witnesses")
	}

	h.Version = aux.Version
	h.PrevHash = aux.PrevHash
	h.MerkleRoot = aux.MerkleRoot
	h.Timestamp = aux.Timestamp
	h.Nonce = nonce
	h.Index = aux.Index
	h.PrimaryIndex = aux.PrimaryIndex
	h.NextConsensus = nextC
	h.Script = aux.Witnesses[0]

	if !aux.Hash.Equals(h.Hash()) {
		return errors.New("json 'hash' doesn't match block hash")
	}
	return nil
}
