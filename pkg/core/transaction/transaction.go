package transaction

import (
	"github.com/synapse-chain/synapse/pkg/crypto/hash"
	"github.com/synapse-chain/synapse/pkg/io"
	"github.com/synapse-chain/synapse/pkg/util"
)

// Signer names one account hash of a transaction's required-signer set.
// The witness scripts live separately, in Transaction.Witnesses.
type Signer struct {
	Account util.Uint160
}

// Transaction is the minimal UTXO/account-model envelope the interop
// layer needs as a script container: something with a hash and a set of
// accounts CheckWitness can match against.
type Transaction struct {
	Version    uint8
	Nonce      uint32
	SystemFee  int64
	NetworkFee int64
	ValidUntil uint32
	Signers    []Signer
	Script     []byte
	Witnesses  []Witness

	hash util.Uint256
}

// Hash returns the transaction's hash, computed (and cached) over every
// field except the witnesses.
func (t *Transaction) Hash() util.Uint256 {
	if t.hash.Equals(util.Uint256{}) {
		buf := io.NewBufBinWriter()
		t.encodeHashableFields(buf.BinWriter)
		t.hash = hash.Sha256(buf.Bytes())
	}
	return t.hash
}

func (t *Transaction) encodeHashableFields(bw *io.BinWriter) {
	bw.WriteB(t.Version)
	bw.WriteU32LE(t.Nonce)
	bw.WriteU64LE(uint64(t.SystemFee))
	bw.WriteU64LE(uint64(t.NetworkFee))
	bw.WriteU32LE(t.ValidUntil)
	bw.WriteVarUint(uint64(len(t.Signers)))
	for _, s := range t.Signers {
		bw.WriteBytes(s.Account[:])
	}
	bw.WriteVarBytes(t.Script)
}

// EncodeBinary implements the io.Serializable interface.
func (t *Transaction) EncodeBinary(bw *io.BinWriter) {
	t.encodeHashableFields(bw)
	bw.WriteVarUint(uint64(len(t.Witnesses)))
	for i := range t.Witnesses {
		t.Witnesses[i].EncodeBinary(bw)
	}
}

// DecodeBinary implements the io.Serializable interface.
func (t *Transaction) DecodeBinary(br *io.BinReader) {
	t.Version = br.ReadB()
	t.Nonce = br.ReadU32LE()
	t.SystemFee = int64(br.ReadU64LE())
	t.NetworkFee = int64(br.ReadU64LE())
	t.ValidUntil = br.ReadU32LE()

	nSigners := br.ReadVarUint()
	t.Signers = make([]Signer, nSigners)
	for i := range t.Signers {
		var acc util.Uint160
		br.ReadBytes(acc[:])
		t.Signers[i] = Signer{Account: acc}
	}
	t.Script = br.ReadVarBytes()

	if br.Err == nil {
		t.createHash(br)
	}

	nWitnesses := br.ReadVarUint()
	if nWitnesses == 0 {
		t.Witnesses = nil
		return
	}
	t.Witnesses = make([]Witness, nWitnesses)
	for i := range t.Witnesses {
		t.Witnesses[i].DecodeBinary(br)
	}
}

func (t *Transaction) createHash(br *io.BinReader) {
	buf := io.NewBufBinWriter()
	t.encodeHashableFields(buf.BinWriter)
	if buf.Err == nil {
		t.hash = hash.Sha256(buf.Bytes())
	}
}

// RequiredSigners returns the set of account hashes that must have signed
// this transaction, the set CheckWitness matches its argument against.
func (t *Transaction) RequiredSigners() []util.Uint160 {
	accounts := make([]util.Uint160, len(t.Signers))
	for i, s := range t.Signers {
		accounts[i] = s.Account
	}
	return accounts
}
